// Package naming maps page titles to on-disk vault paths and recognizes
// journal-dated titles.
package naming

import (
	"path"
	"strings"
)

// The vault's fixed top-level subdirectories. MetaDir is reserved for the
// consuming tool's own bookkeeping and left empty by the exporter.
const (
	PagesDir    = "pages"
	JournalsDir = "journals"
	MetaDir     = "logseq"
)

// MapTitle converts a page title to a vault-relative file path plus an
// optional preamble line. The preamble declares the literal title whenever
// escaping changed it, or when the title contains a literal "." that would
// otherwise be ambiguous with the "/" escape; in all other cases the
// filename stem alone round-trips to the title.
func MapTitle(title string) (relPath, preamble string) {
	stem := strings.ReplaceAll(title, "/", ".")
	stem = strings.ReplaceAll(stem, ":", "_")
	if stem != title || strings.Contains(title, ".") {
		preamble = "title:: " + title
	}
	return path.Join(PagesDir, stem+".md"), preamble
}
