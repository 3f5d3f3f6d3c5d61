package payload

import (
	"fmt"
	"unicode/utf8"

	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

// ChangeStats summarizes how a transform changed the payload.
type ChangeStats struct {
	Inserted int
	Deleted  int
}

// Unchanged returns true if nothing was inserted or deleted.
func (s ChangeStats) Unchanged() bool {
	return s.Inserted == 0 && s.Deleted == 0
}

// String renders the stats as "+N -M".
func (s ChangeStats) String() string {
	return fmt.Sprintf("+%d -%d", s.Inserted, s.Deleted)
}

// Diff counts inserted and deleted runes between two payload versions.
func Diff(before, after string) ChangeStats {
	var stats ChangeStats
	if before == after {
		return stats
	}
	d := dmp.New()
	for _, df := range d.DiffMain(before, after, false) {
		switch df.Type {
		case dmp.DiffInsert:
			stats.Inserted += utf8.RuneCountInString(df.Text)
		case dmp.DiffDelete:
			stats.Deleted += utf8.RuneCountInString(df.Text)
		}
	}
	return stats
}
