// Package graph provides a read-only in-memory view over an outliner
// snapshot. The whole snapshot is materialized once before any export
// work begins; after Build the graph is never mutated.
package graph

import (
	"fmt"
	"sort"

	"github.com/nborders/grove/internal/apperr"
	"github.com/nborders/grove/internal/models"
)

// Store is the query surface the export pipeline depends on.
// Consumers should depend on this interface rather than the concrete
// *Graph type to facilitate testing with small fixtures.
type Store interface {
	// PageRoot returns the root block of the page with the given title.
	PageRoot(title string) (*models.Block, error)
	// Block returns the block with the given internal identifier.
	Block(eid int64) (*models.Block, bool)
	// Children resolves b's child references in sibling order.
	Children(b *models.Block) []*models.Block
	// Titles enumerates every page title in the snapshot.
	Titles() []string
	// TextBlocks enumerates every block carrying non-empty text.
	TextBlocks() []*models.Block
}

// Verify *Graph satisfies Store at compile time.
var _ Store = (*Graph)(nil)

// Graph is the fully materialized snapshot.
type Graph struct {
	blocks map[int64]*models.Block
	pages  map[string]int64
}

// Builder assembles a Graph from loader or test input.
type Builder struct {
	g *Graph
}

// NewBuilder returns an empty graph builder.
func NewBuilder() *Builder {
	return &Builder{g: &Graph{
		blocks: make(map[int64]*models.Block),
		pages:  make(map[string]int64),
	}}
}

// AddBlock registers a block. A later registration with the same EID wins.
func (b *Builder) AddBlock(blk *models.Block) *Builder {
	b.g.blocks[blk.EID] = blk
	return b
}

// AddPage registers a page title with the EID of its root block.
func (b *Builder) AddPage(title string, root int64) *Builder {
	b.g.pages[title] = root
	return b
}

// Build finalizes sibling order and returns the graph.
func (b *Builder) Build() *Graph {
	b.g.sortChildren()
	return b.g
}

// PageRoot returns the root block of the page with the given title.
func (g *Graph) PageRoot(title string) (*models.Block, error) {
	eid, ok := g.pages[title]
	if !ok {
		return nil, fmt.Errorf("graph: page %q: %w", title, apperr.ErrNotFound)
	}
	b, ok := g.blocks[eid]
	if !ok {
		return nil, fmt.Errorf("graph: page %q root block %d: %w", title, eid, apperr.ErrNotFound)
	}
	return b, nil
}

// Block returns the block with the given internal identifier.
func (g *Graph) Block(eid int64) (*models.Block, bool) {
	b, ok := g.blocks[eid]
	return b, ok
}

// Children resolves b's child references in sibling order. Dangling
// child references are skipped.
func (g *Graph) Children(b *models.Block) []*models.Block {
	out := make([]*models.Block, 0, len(b.Children))
	for _, eid := range b.Children {
		if c, ok := g.blocks[eid]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Titles returns every page title, sorted so logs and error reports are
// stable across runs.
func (g *Graph) Titles() []string {
	out := make([]string, 0, len(g.pages))
	for t := range g.pages {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// TextBlocks returns every block carrying non-empty text, ordered by EID
// so the reference pre-scan is deterministic.
func (g *Graph) TextBlocks() []*models.Block {
	var out []*models.Block
	for _, b := range g.blocks {
		if b.HasText() {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EID < out[j].EID })
	return out
}

// sortChildren orders each block's child list by the children's Order
// field ascending. The sort is stable, so ties keep the order the loader
// inserted them in. Dangling references keep their slot.
func (g *Graph) sortChildren() {
	for _, b := range g.blocks {
		sort.SliceStable(b.Children, func(i, j int) bool {
			ci, iok := g.blocks[b.Children[i]]
			cj, jok := g.blocks[b.Children[j]]
			if !iok || !jok {
				return false
			}
			return ci.Order < cj.Order
		})
	}
}
