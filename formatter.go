package shlok

import "strings"

// FormatVerse formats a verse and its resolved position for terminal output.
// Empty text fields are skipped; sections are separated by blank lines.
func FormatVerse(v *Verse, pos Position) string {
	if v == nil {
		return ""
	}

	header := pos.ChapterLabel() + "\n" + pos.ProgressLabel()
	if v.Chapter != "" || v.Verse != "" {
		header = v.Chapter + " - " + v.Verse + "\n" + header
	}

	parts := []string{header}
	for _, s := range []string{v.Shlok, v.Transliteration, v.Translation} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}

	return strings.Join(parts, "\n\n")
}
