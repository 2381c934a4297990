package main

import (
	"fmt"

	"github.com/fwojciec/shlok"
)

// Run executes the resolve command.
func (c *ResolveCmd) Run(deps *Dependencies) error {
	index, err := shlok.ParseIndex(c.Index)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", shlok.ErrorMessage(err))
		return err
	}

	pos := shlok.Resolve(index, shlok.Chapters)
	fmt.Fprintf(deps.Stdout, "%d.%d\n%s\n%s\n",
		pos.Chapter.Number, pos.Verse, pos.ChapterLabel(), pos.ProgressLabel())
	return nil
}
