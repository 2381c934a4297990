package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fwojciec/shlok"
)

// Run executes the chapters command.
func (c *ChaptersCmd) Run(deps *Dependencies) error {
	w := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tVERSES\tSTART")
	for _, m := range shlok.ChapterMarks(shlok.Chapters) {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\n", m.Chapter.Number, m.Chapter.Name, m.Chapter.VerseCount, m.Start)
	}
	fmt.Fprintf(w, "\t\t%d\t\n", shlok.TotalVerses)
	return w.Flush()
}
