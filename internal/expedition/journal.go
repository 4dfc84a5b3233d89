package expedition

import (
	"fmt"
	"math"
)

// DefaultJournalSize is the number of entries the journal keeps.
const DefaultJournalSize = 40

// Entry is one journal line stamped with the in-game time it was written.
type Entry struct {
	Hour float64
	Text string
}

// String formats the entry as "[HH:MM] text".
func (e Entry) String() string {
	return fmt.Sprintf("[%s] %s", FormatHour(e.Hour), e.Text)
}

// FormatHour renders an hour of day such as 13.5 as "13:30".
func FormatHour(hour float64) string {
	minutes := int(math.Round(hour * 60))
	h, m := minutes/60, minutes%60
	return fmt.Sprintf("%02d:%02d", h%24, m)
}

// Journal is a bounded narrative log, newest entry first.
type Journal struct {
	entries []Entry
	size    int
}

// NewJournal creates a journal keeping at most size entries.
func NewJournal(size int) *Journal {
	if size <= 0 {
		size = DefaultJournalSize
	}
	return &Journal{size: size}
}

// Add prepends an entry and drops the oldest beyond capacity.
func (j *Journal) Add(hour float64, text string) {
	j.entries = append([]Entry{{Hour: hour, Text: text}}, j.entries...)
	if len(j.entries) > j.size {
		j.entries = j.entries[:j.size]
	}
}

// Entries returns the entries, newest first.
func (j *Journal) Entries() []Entry {
	return append([]Entry(nil), j.entries...)
}

// Len returns the number of entries.
func (j *Journal) Len() int {
	return len(j.entries)
}
