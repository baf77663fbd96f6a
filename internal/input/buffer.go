// Package input holds the typed answer of the current round.
package input

import "regexp"

var allowed = regexp.MustCompile(`^[a-zA-Z0-9\-! ]$`)

// Buffer accumulates allowed keystrokes
type Buffer struct {
	runes []rune
}

// Allowed reports whether r may be typed into a buffer
func Allowed(r rune) bool {
	return allowed.MatchString(string(r))
}

// Type appends r when it is allowed and reports whether it was kept
func (b *Buffer) Type(r rune) bool {
	if !Allowed(r) {
		return false
	}
	b.runes = append(b.runes, r)
	return true
}

// Backspace removes the last character, if any
func (b *Buffer) Backspace() {
	if len(b.runes) == 0 {
		return
	}
	b.runes = b.runes[:len(b.runes)-1]
}

// Reset empties the buffer
func (b *Buffer) Reset() {
	b.runes = b.runes[:0]
}

// String returns the buffer content
func (b *Buffer) String() string {
	return string(b.runes)
}

// Len returns the number of characters in the buffer
func (b *Buffer) Len() int {
	return len(b.runes)
}
