package shlok

import (
	"fmt"
	"math"
)

// Navigation describes everything a page needs to render the position of a
// verse and the ways to move away from it.
type Navigation struct {
	Index    int      `json:"index"`
	Position Position `json:"position"`

	// Prev is the index of the previous verse, or 0 at the first verse.
	Prev int `json:"prev"`

	// Next is the index of the following verse. It is not bounded by the
	// total, matching the page's historical behavior.
	Next int `json:"next"`

	// AtFirst reports that there is no previous verse.
	AtFirst bool `json:"atFirst"`

	Marks []ChapterMark `json:"marks"`
}

// ChapterMark is a chapter boundary on the navigation timeline.
type ChapterMark struct {
	Chapter Chapter `json:"chapter"`

	// Start is the global index of the chapter's first verse.
	Start int `json:"start"`

	// Offset is the percentage along the timeline where the chapter begins.
	Offset float64 `json:"offset"`
}

// Navigate computes the navigation state for the verse at index.
func Navigate(index int, chapters []Chapter) Navigation {
	nav := Navigation{
		Index:    index,
		Position: Resolve(index, chapters),
		Next:     index + 1,
		Marks:    ChapterMarks(chapters),
	}
	if index > 1 {
		nav.Prev = index - 1
	} else {
		nav.AtFirst = true
	}
	return nav
}

// ChapterMarks returns one timeline mark per chapter, in table order.
func ChapterMarks(chapters []Chapter) []ChapterMark {
	total := CountVerses(chapters)
	marks := make([]ChapterMark, 0, len(chapters))
	for _, c := range chapters {
		start := ChapterStart(chapters, c.Number)
		var offset float64
		if total > 0 {
			offset = float64(start-1) / float64(total) * 100
		}
		marks = append(marks, ChapterMark{
			Chapter: c,
			Start:   start,
			Offset:  offset,
		})
	}
	return marks
}

// ChapterLabel returns the chapter heading shown on the timeline,
// e.g. "Chapter 2: Sankhya Yoga".
func (p Position) ChapterLabel() string {
	return fmt.Sprintf("Chapter %d: %s", p.Chapter.Number, p.Chapter.Name)
}

// ProgressLabel returns the progress line shown on the timeline,
// e.g. "Verse 1/72 (7% of Gita)".
func (p Position) ProgressLabel() string {
	return fmt.Sprintf("Verse %d/%d (%d%% of Gita)",
		p.Verse, p.Chapter.VerseCount, int(math.Round(p.Progress)))
}
