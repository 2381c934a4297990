// Package etree decodes verse datasets from XML.
//
// The expected layout is
//
//	<verses>
//	  <verse index="1" chapter="Chapter 1" verse="Verse 1">
//	    <shlok>...</shlok>
//	    <transliteration>...</transliteration>
//	    <translation>...</translation>
//	  </verse>
//	</verses>
package etree

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/shlok"
)

var _ shlok.VerseDecoder = (*Decoder)(nil)

// Decoder reads verses from XML documents.
type Decoder struct{}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// DecodeVerses parses every <verse> element under the root element.
// Returns EINVALID if the document is malformed or a verse lacks a numeric
// index attribute.
func (d *Decoder) DecodeVerses(r io.Reader) ([]*shlok.Verse, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, shlok.WrapError(shlok.EINVALID, err, "parsing verse XML")
	}

	root := doc.Root()
	if root == nil {
		return nil, shlok.Errorf(shlok.EINVALID, "verse XML has no root element")
	}

	var verses []*shlok.Verse
	for i, el := range root.SelectElements("verse") {
		v, err := decodeVerse(el)
		if err != nil {
			return nil, shlok.WrapError(shlok.EINVALID, err, "verse element %d: %v", i+1, err)
		}
		verses = append(verses, v)
	}
	return verses, nil
}

func decodeVerse(el *etree.Element) (*shlok.Verse, error) {
	raw := el.SelectAttrValue("index", "")
	index, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid index %q", raw)
	}

	return &shlok.Verse{
		Index:           index,
		Chapter:         el.SelectAttrValue("chapter", ""),
		Verse:           el.SelectAttrValue("verse", ""),
		Shlok:           childText(el, "shlok"),
		Transliteration: childText(el, "transliteration"),
		Translation:     childText(el, "translation"),
	}, nil
}

// childText returns the trimmed text of the named child, or "" if absent.
func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}
