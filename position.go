package shlok

import (
	"strconv"
	"strings"
)

// Position is a global verse index resolved against a chapter table.
type Position struct {
	Chapter Chapter `json:"chapter"`

	// Verse is the 1-based verse number within Chapter.
	Verse int `json:"verse"`

	// Progress is the index as a percentage of all verses. It is not
	// clamped, so indices past the end report more than 100.
	Progress float64 `json:"progress"`
}

// Resolve maps a 1-based global verse index onto chapters.
//
// The first chapter whose range contains index wins. An index that falls in
// no chapter resolves to the first chapter with Verse equal to index.
func Resolve(index int, chapters []Chapter) Position {
	var pos Position
	if len(chapters) > 0 {
		pos.Chapter = chapters[0]
	}
	pos.Verse = index

	cumulative := 0
	for _, c := range chapters {
		if index > cumulative && index <= cumulative+c.VerseCount {
			pos.Chapter = c
			pos.Verse = index - cumulative
			break
		}
		cumulative += c.VerseCount
	}

	if total := CountVerses(chapters); total > 0 {
		pos.Progress = float64(index) / float64(total) * 100
	}
	return pos
}

// ParseIndex parses a global verse index from user input.
// Returns EINVALID if s is empty or not an integer.
func ParseIndex(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, Errorf(EINVALID, "missing index")
	}
	index, err := strconv.Atoi(s)
	if err != nil {
		return 0, Errorf(EINVALID, "invalid index %q", s)
	}
	return index, nil
}
