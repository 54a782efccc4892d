// Package resolver computes the global reference rewrite map: every
// ((ref)) token found anywhere in the graph is assigned a stable
// identifier before any page is rendered.
package resolver

import (
	"regexp"

	"github.com/google/uuid"

	"github.com/nborders/grove/internal/models"
)

// refPattern matches ((<hex-identifier>)) reference tokens. Tokens whose
// contents are not hex never match, so malformed references pass through
// as plain text instead of failing the run.
var refPattern = regexp.MustCompile(`\(\(([0-9a-fA-F]+)\)\)`)

// namespace seeds the name-based UUID derivation. Fixed so identifiers
// are stable across runs and machines.
var namespace = uuid.MustParse("8e2f9e6a-3e61-4f0d-9c5a-7d25b8f2ce14")

// Rewrites is the result of the reference pre-scan. It is computed once
// up front and read-only afterwards, so page processing order can never
// affect assigned identifiers.
type Rewrites struct {
	byRef map[string]string
}

// Resolve scans every block's text for reference tokens and derives a
// stable identifier for each distinct reference. A reference whose target
// block does not exist still gets an identifier; the target is simply
// never serialized, but rewritten text stays internally consistent.
func Resolve(blocks []*models.Block) *Rewrites {
	rw := &Rewrites{byRef: make(map[string]string)}
	for _, b := range blocks {
		for _, m := range refPattern.FindAllStringSubmatch(b.Text, -1) {
			ref := m[1]
			if _, ok := rw.byRef[ref]; ok {
				continue
			}
			rw.byRef[ref] = Derive(ref)
		}
	}
	return rw
}

// Derive returns the version-5-style UUID for a source reference. The
// same ref always derives the same identifier.
func Derive(ref string) string {
	return uuid.NewSHA1(namespace, []byte(ref)).String()
}

// ID returns the identifier assigned to ref during the pre-scan. The
// second return is false when ref was never referenced anywhere.
func (r *Rewrites) ID(ref string) (string, bool) {
	id, ok := r.byRef[ref]
	return id, ok
}

// Len returns the number of distinct references found.
func (r *Rewrites) Len() int { return len(r.byRef) }

// RewriteText replaces every scanned ((ref)) token in text with its
// assigned identifier. Tokens that never appeared in the pre-scan are
// left untouched.
func (r *Rewrites) RewriteText(text string) string {
	return refPattern.ReplaceAllStringFunc(text, func(tok string) string {
		ref := tok[2 : len(tok)-2]
		if id, ok := r.byRef[ref]; ok {
			return "((" + id + "))"
		}
		return tok
	})
}
