package core

// Principal identifies an authenticated caller.
// Two principals are the same caller iff their bytes are equal.
type Principal string

// Note is the central entity of the domain.
// Both fields are opaque text; the store never inspects them.
type Note struct {
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}
