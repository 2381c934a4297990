package mock

import "github.com/fwojciec/shlok"

var _ shlok.Converter = (*Converter)(nil)

// Converter is a mock implementation of shlok.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
