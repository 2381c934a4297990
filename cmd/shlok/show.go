package main

import (
	"fmt"

	"github.com/fwojciec/shlok"
	shlokhttp "github.com/fwojciec/shlok/http"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	index, err := shlok.ParseIndex(c.Index)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", shlok.ErrorMessage(err))
		return err
	}

	v, err := deps.Verses.FindVerse(deps.Ctx, index)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", shlok.ErrorMessage(err))
		return err
	}

	pos := shlok.Resolve(index, shlok.Chapters)
	if !c.Markdown {
		fmt.Fprintln(deps.Stdout, shlok.FormatVerse(v, pos))
		return nil
	}

	html, err := shlokhttp.RenderVerseCard(v)
	if err != nil {
		return fmt.Errorf("render verse: %w", err)
	}
	md, err := deps.Converter.Convert(html)
	if err != nil {
		return fmt.Errorf("convert verse: %w", err)
	}

	fmt.Fprintf(deps.Stdout, "%s\n\n_%s · %s_\n", md, pos.ChapterLabel(), pos.ProgressLabel())
	return nil
}
