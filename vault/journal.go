package vault

import (
	"time"
)

// DefaultJournalFormat is the journal filename format used when none
// is configured.
const DefaultJournalFormat = "YYYY-MM-DD"

// JournalFormat describes one supported journal filename convention.
type JournalFormat struct {
	Id      string
	Label   string
	Example string
}

// JournalFormats lists the supported journal filename formats, in the
// order they are offered to the user.
var JournalFormats = []JournalFormat{
	{Id: "YYYY-MM-DD", Label: "YYYY-MM-DD", Example: "2026-02-19"},
	{Id: "YYYY_MM_DD", Label: "YYYY_MM_DD", Example: "2026_02_19"},
	{Id: "YYYY.MM.DD", Label: "YYYY.MM.DD", Example: "2026.02.19"},
	{Id: "YYYYMMDD", Label: "YYYYMMDD", Example: "20260219"},
	{Id: "DD-MM-YYYY", Label: "DD-MM-YYYY", Example: "19-02-2026"},
	{Id: "DD_MM_YYYY", Label: "DD_MM_YYYY", Example: "19_02_2026"},
	{Id: "MM-DD-YYYY", Label: "MM-DD-YYYY", Example: "02-19-2026"},
	{Id: "MM_DD_YYYY", Label: "MM_DD_YYYY", Example: "02_19_2026"},
	{Id: "YYYY-MM-DD-ddd", Label: "YYYY-MM-DD-ddd", Example: "2026-02-19-Thu"},
	{Id: "ddd-YYYY-MM-DD", Label: "ddd-YYYY-MM-DD", Example: "Thu-2026-02-19"},
}

// journalLayouts maps format ids to Go time layouts.
var journalLayouts = map[string]string{
	"YYYY-MM-DD":     "2006-01-02",
	"YYYY_MM_DD":     "2006_01_02",
	"YYYY.MM.DD":     "2006.01.02",
	"YYYYMMDD":       "20060102",
	"DD-MM-YYYY":     "02-01-2006",
	"DD_MM_YYYY":     "02_01_2006",
	"MM-DD-YYYY":     "01-02-2006",
	"MM_DD_YYYY":     "01_02_2006",
	"YYYY-MM-DD-ddd": "2006-01-02-Mon",
	"ddd-YYYY-MM-DD": "Mon-2006-01-02",
}

// FormatJournalDate formats a date into a journal filename stem.
// Unknown format ids fall back to the default format.
func FormatJournalDate(date time.Time, formatId string) string {
	layout, ok := journalLayouts[formatId]
	if !ok {
		layout = journalLayouts[DefaultJournalFormat]
	}
	return date.Format(layout)
}

// ParseJournalStem parses a journal filename stem back into a date.
func ParseJournalStem(stem, formatId string) (time.Time, error) {
	layout, ok := journalLayouts[formatId]
	if !ok {
		return time.Time{}, ErrUnknownJournalFormat
	}
	return time.Parse(layout, stem)
}

// JournalPath returns the vault-relative path of the journal note for
// the given date. This is the canonical "daily document" identifier.
func JournalPath(date time.Time, formatId string) string {
	return "journals/" + FormatJournalDate(date, formatId) + ".md"
}
