package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/shlok"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	format := c.format()
	dec, ok := deps.Decoders[format]
	if !ok {
		err := shlok.Errorf(shlok.EINVALID, "unsupported dataset format %q", format)
		fmt.Fprintf(deps.Stderr, "error: %s\n", shlok.ErrorMessage(err))
		return err
	}

	f, err := os.Open(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: cannot open %s\n", c.File)
		return fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	verses, err := dec.DecodeVerses(f)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", shlok.ErrorMessage(err))
		return err
	}
	if len(verses) == 0 {
		fmt.Fprintf(deps.Stdout, "No verses found in %s\n", c.File)
		return nil
	}

	result, err := deps.Importer.ImportVerses(deps.Ctx, verses)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", shlok.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported %d verses from %s (%d new, %d updated, %d unchanged)\n",
		len(verses), c.File, result.Inserted, result.Updated, result.Unchanged)

	if deps.Invalidator != nil {
		c.invalidate(deps, result.UpdatedIndices)
	}
	return nil
}

// invalidate drops cached copies of updated verses. The import has already
// committed, so failures are reported and leave entries to expire by TTL.
func (c *ImportCmd) invalidate(deps *Dependencies, indices []int) {
	failed := 0
	for _, index := range indices {
		if err := deps.Invalidator.Invalidate(deps.Ctx, index); err != nil {
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintf(deps.Stderr, "warning: could not invalidate %d cached verses; they expire after the cache TTL\n", failed)
	}
	if n := len(indices) - failed; n > 0 {
		fmt.Fprintf(deps.Stdout, "Invalidated %d cached verses\n", n)
	}
}

// format returns the explicit format or one derived from the file extension.
func (c *ImportCmd) format() string {
	if c.Format != "" && c.Format != "auto" {
		return c.Format
	}
	switch strings.ToLower(filepath.Ext(c.File)) {
	case ".xml":
		return "xml"
	default:
		return "json"
	}
}
