package shlok

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment, such as a rendered verse card,
	// into Markdown.
	Convert(html string) (string, error)
}
