package flyweight

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// Test domain types used across tests

// glyphKey identifies a character glyph by its intrinsic fields.
type glyphKey struct {
	Ch    rune
	Font  string
	Style string
}

// glyph is a shared payload holding precomputed outline data.
type glyph struct {
	Outline string
}

// newGlyph constructs a glyph payload from its key.
func newGlyph(k glyphKey) *glyph {
	return &glyph{Outline: fmt.Sprintf("%c/%s/%s", k.Ch, k.Font, k.Style)}
}

// keyFor is shorthand for a glyphKey in the default font.
func keyFor(ch rune) glyphKey {
	return glyphKey{Ch: ch, Font: "Arial", Style: "regular"}
}

// makeCountingFactory wraps newGlyph and counts invocations.
func makeCountingFactory(count *atomic.Int32) Factory[glyphKey, *glyph] {
	return func(k glyphKey) *glyph {
		count.Add(1)
		return newGlyph(k)
	}
}

// glyphSizer reports a payload's outline length as its size.
func glyphSizer(g *glyph) int64 {
	if g == nil {
		return 0
	}
	return int64(len(g.Outline))
}

// requireFont rejects keys without a font.
func requireFont(k glyphKey) error {
	if k.Font == "" {
		return errors.New("font is required")
	}
	return nil
}
