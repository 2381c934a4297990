// Package mongoexport decodes verse datasets exported from a MongoDB
// collection with mongoexport, either as a JSON array (--jsonArray) or as
// one document per line.
package mongoexport

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/fwojciec/shlok"
)

var _ shlok.VerseDecoder = (*Decoder)(nil)

// Decoder reads verses from mongoexport output.
type Decoder struct{}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// document mirrors an exported verse. Fields other than these, such as _id,
// are ignored.
type document struct {
	Index           json.RawMessage `json:"index"`
	Chapter         string          `json:"chapter"`
	Verse           string          `json:"verse"`
	Shlok           string          `json:"shlok"`
	Transliteration string          `json:"transliteration"`
	Translation     string          `json:"translation"`
}

// DecodeVerses reads every exported document.
// Returns EINVALID if the input is not valid JSON or a document has no
// integer index.
func (d *Decoder) DecodeVerses(r io.Reader) ([]*shlok.Verse, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if errors.Is(err, io.EOF) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var docs []document
	dec := json.NewDecoder(br)
	if first == '[' {
		if err := dec.Decode(&docs); err != nil {
			return nil, shlok.WrapError(shlok.EINVALID, err, "parsing verse JSON: %v", err)
		}
	} else {
		for {
			var doc document
			if err := dec.Decode(&doc); errors.Is(err, io.EOF) {
				break
			} else if err != nil {
				return nil, shlok.WrapError(shlok.EINVALID, err, "parsing verse JSON: %v", err)
			}
			docs = append(docs, doc)
		}
	}

	verses := make([]*shlok.Verse, 0, len(docs))
	for i, doc := range docs {
		index, err := parseIndex(doc.Index)
		if err != nil {
			return nil, shlok.WrapError(shlok.EINVALID, err, "document %d: %v", i+1, err)
		}
		verses = append(verses, &shlok.Verse{
			Index:           index,
			Chapter:         doc.Chapter,
			Verse:           doc.Verse,
			Shlok:           doc.Shlok,
			Transliteration: doc.Transliteration,
			Translation:     doc.Translation,
		})
	}
	return verses, nil
}

// parseIndex accepts a plain JSON number or a canonical extended JSON
// wrapper such as {"$numberInt": "6"}.
func parseIndex(raw json.RawMessage) (int, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("missing index")
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}

	var wrapped map[string]string
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		for _, k := range []string{"$numberInt", "$numberLong"} {
			if s, ok := wrapped[k]; ok {
				return strconv.Atoi(s)
			}
		}
	}
	return 0, fmt.Errorf("invalid index %s", raw)
}

// peekNonSpace returns the first non-whitespace byte without consuming it.
func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}
