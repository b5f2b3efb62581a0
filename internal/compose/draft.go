// Package compose holds the post being written: the draft text, the
// optional image attachment, the publish target selection, and the
// publisher that fans the post out to connected platforms.
package compose

import "strings"

// Draft is the editable post text.
type Draft struct {
	Text string
}

// CharCount returns the draft length in runes.
func (d Draft) CharCount() int {
	return len([]rune(d.Text))
}

// Empty reports whether the draft has no publishable content.
func (d Draft) Empty() bool {
	return strings.TrimSpace(d.Text) == ""
}
