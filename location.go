package pgquery

import (
	"sort"
	"unicode/utf8"
)

// locationMap converts byte offsets into one input text to character
// offsets. ASCII input maps every offset to itself.
type locationMap struct {
	n     int   // byte length of the text
	chars []int // chars[b] is the character index of byte offset b; nil for ASCII
}

func newLocationMap(text string) *locationMap {
	m := &locationMap{n: len(text)}
	ascii := true
	for i := 0; i < len(text); i++ {
		if text[i] >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return m
	}

	m.chars = make([]int, len(text)+1)
	c := 0
	for i := range text {
		// Continuation bytes map to the character they belong to.
		for j := i; j < len(text) && (j == i || !utf8.RuneStart(text[j])); j++ {
			m.chars[j] = c
		}
		c++
	}
	m.chars[len(text)] = c
	return m
}

// charOffset returns the 0-based character offset of byte offset b.
// Negative offsets are unknown and returned unchanged.
func (m *locationMap) charOffset(b int) int {
	switch {
	case b < 0:
		return b
	case b > m.n:
		b = m.n
	}
	if m.chars == nil {
		return b
	}
	return m.chars[b]
}

// translateError converts the byte offset of e into the 1-based character
// position PostgreSQL reports. An error at the end of input is placed one
// past the last character.
func (m *locationMap) translateError(e *ParseError) {
	e.Location = m.charOffset(e.Location) + 1
}

// translateWarnings returns ws with 1-based character positions, in the
// order they occur in the text. Warnings at the same place keep the order
// they were raised in.
func (m *locationMap) translateWarnings(ws []Warning) []Warning {
	if len(ws) == 0 {
		return nil
	}
	out := make([]Warning, len(ws))
	for i, w := range ws {
		out[i] = Warning{Message: w.Message, Location: m.charOffset(w.Location) + 1}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Location < out[j].Location
	})
	return out
}
