// Package models defines the domain types for Grove.
package models

// Block is a node in the source outliner graph. A block may carry text,
// an ordered list of children, or both; a block with no text but with
// children is a pure container.
type Block struct {
	EID      int64   // internal graph identifier
	UID      string  // stable source identifier, referenced inline as ((uid))
	Text     string  // raw block text, may be empty
	Order    int     // sibling position under the parent
	Children []int64 // child EIDs in sibling order
}

// HasText reports whether the block carries renderable text.
func (b *Block) HasText() bool { return b.Text != "" }

// Page is a titled root block representing a top-level document.
type Page struct {
	Title string `json:"title"`
	Root  int64  `json:"root"` // EID of the page's root block
}
