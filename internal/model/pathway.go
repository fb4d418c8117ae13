// Package model defines the data structures for pathway corruption.
package model

// Path represents a file system path.
type Path string

// Pathway is an ordered list of short textual statements describing a
// biological mechanism, plus a title. The ID is derived from the stem of
// the file the pathway was loaded from.
type Pathway struct {
	ID    string
	Title string
	Steps []string
}

// Len returns the number of steps in the pathway.
func (p Pathway) Len() int {
	return len(p.Steps)
}
