package naming

import (
	"fmt"
	"regexp"
	"strconv"
)

// journalPattern matches titles of the form "July 16, 2021". Anything
// looser (abbreviated month, missing comma, trailing text) is treated as
// an ordinary page title, never an error.
var journalPattern = regexp.MustCompile(
	`^(January|February|March|April|May|June|July|August|September|October|November|December) ([0-9]{1,2}), ([0-9]+)$`)

var months = map[string]int{
	"January": 1, "February": 2, "March": 3, "April": 4,
	"May": 5, "June": 6, "July": 7, "August": 8,
	"September": 9, "October": 10, "November": 11, "December": 12,
}

// JournalDate is the parsed calendar date of a journal page title.
// It is derived per export run and never persisted.
type JournalDate struct {
	Year  int
	Month int
	Day   int
}

// RelPath returns the vault-relative journal file path,
// e.g. journals/2021_07_16.md. Journal files carry no preamble: the title
// is fully recoverable from the date format by convention.
func (d JournalDate) RelPath() string {
	return fmt.Sprintf("%s/%d_%02d_%02d.md", JournalsDir, d.Year, d.Month, d.Day)
}

// ClassifyJournal parses a journal-dated title. ok is false for any title
// that does not strictly match the "<Month> <day>, <year>" form.
func ClassifyJournal(title string) (JournalDate, bool) {
	m := journalPattern.FindStringSubmatch(title)
	if m == nil {
		return JournalDate{}, false
	}
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	return JournalDate{Year: year, Month: months[m[1]], Day: day}, true
}
