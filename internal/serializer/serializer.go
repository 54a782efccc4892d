// Package serializer renders a page's block tree into indentation-based
// Markdown the target outliner understands.
package serializer

import (
	"strings"

	"github.com/nborders/grove/internal/graph"
	"github.com/nborders/grove/internal/models"
	"github.com/nborders/grove/internal/resolver"
)

const indentUnit = "  "

// taskMarkers maps the source outliner's task tokens to bare keywords.
// The substitution is textual and position-preserving: the target only
// honors a keyword at the start of a line, so markers embedded
// mid-sentence survive as plain text. Known-lossy, kept as documented
// behavior rather than silently reordering user content.
var taskMarkers = strings.NewReplacer(
	"{{[[TODO]]}}", "TODO",
	"{{TODO}}", "TODO",
	"{{[[DONE]]}}", "DONE",
	"{{DONE}}", "DONE",
)

// Renderer turns block trees into Markdown using a frozen rewrite map.
type Renderer struct {
	store    graph.Store
	rewrites *resolver.Rewrites
}

// New returns a Renderer over the given store and rewrite map.
func New(store graph.Store, rewrites *resolver.Rewrites) *Renderer {
	return &Renderer{store: store, rewrites: rewrites}
}

// RenderPage renders the page rooted at root. The root's identity is the
// page title and is never emitted; its children start at depth zero.
// Task-marker substitution is applied once to the joined output.
func (r *Renderer) RenderPage(root *models.Block) string {
	var lines []string
	for _, child := range r.store.Children(root) {
		lines = r.renderBlock(lines, child, 0)
	}
	if len(lines) == 0 {
		return ""
	}
	return taskMarkers.Replace(strings.Join(lines, "\n") + "\n")
}

// renderBlock appends the lines for b and its subtree. Only the children
// relation is descended; reference edges are rewritten in place and never
// followed into their content, so reference cycles cannot recurse.
func (r *Renderer) renderBlock(lines []string, b *models.Block, depth int) []string {
	indent := strings.Repeat(indentUnit, depth)

	if b.HasText() {
		text := r.rewrites.RewriteText(b.Text)
		for i, line := range strings.Split(text, "\n") {
			if i == 0 {
				lines = append(lines, indent+"- "+line)
			} else {
				lines = append(lines, indent+indentUnit+line)
			}
		}
		// Blocks that are referenced elsewhere carry their assigned
		// identifier so incoming ((id)) links resolve.
		if id, ok := r.rewrites.ID(b.UID); ok {
			lines = append(lines, indent+indentUnit+"id:: "+id)
		}
	}

	// A block with no text emits no empty bullet; its children are still
	// rendered one level down.
	for _, c := range r.store.Children(b) {
		lines = r.renderBlock(lines, c, depth+1)
	}
	return lines
}
