package serializer

import (
	"strings"
	"testing"

	"github.com/nborders/grove/internal/graph"
	"github.com/nborders/grove/internal/models"
	"github.com/nborders/grove/internal/resolver"
)

func render(t *testing.T, g *graph.Graph, title string) string {
	t.Helper()
	root, err := g.PageRoot(title)
	if err != nil {
		t.Fatalf("PageRoot: %v", err)
	}
	rw := resolver.Resolve(g.TextBlocks())
	return New(g, rw).RenderPage(root)
}

func TestRenderPage_NestingIndent(t *testing.T) {
	g := graph.NewBuilder().
		AddPage("Nest", 1).
		AddBlock(&models.Block{EID: 1, Children: []int64{2}}).
		AddBlock(&models.Block{EID: 2, UID: "aa01", Text: "parent", Children: []int64{3}}).
		AddBlock(&models.Block{EID: 3, UID: "aa02", Text: "child", Children: []int64{4}}).
		AddBlock(&models.Block{EID: 4, UID: "aa03", Text: "grandchild"}).
		Build()

	want := "- parent\n  - child\n    - grandchild\n"
	if got := render(t, g, "Nest"); got != want {
		t.Errorf("rendered = %q, want %q", got, want)
	}
}

func TestRenderPage_SiblingOrder(t *testing.T) {
	g := graph.NewBuilder().
		AddPage("Order", 1).
		// Children registered out of order; the Order field wins.
		AddBlock(&models.Block{EID: 1, Children: []int64{4, 2, 3}}).
		AddBlock(&models.Block{EID: 2, UID: "bb01", Text: "first", Order: 0}).
		AddBlock(&models.Block{EID: 3, UID: "bb02", Text: "second", Order: 1}).
		AddBlock(&models.Block{EID: 4, UID: "bb03", Text: "third", Order: 2}).
		Build()

	want := "- first\n- second\n- third\n"
	if got := render(t, g, "Order"); got != want {
		t.Errorf("rendered = %q, want %q", got, want)
	}
}

func TestRenderPage_PureContainer(t *testing.T) {
	// A block with no text emits no empty bullet; children stay one
	// level down.
	g := graph.NewBuilder().
		AddPage("Container", 1).
		AddBlock(&models.Block{EID: 1, Children: []int64{2}}).
		AddBlock(&models.Block{EID: 2, Children: []int64{3}}).
		AddBlock(&models.Block{EID: 3, UID: "cc01", Text: "inner"}).
		Build()

	want := "  - inner\n"
	if got := render(t, g, "Container"); got != want {
		t.Errorf("rendered = %q, want %q", got, want)
	}
}

func TestRenderPage_ReferencedBlockAnnotated(t *testing.T) {
	g := graph.NewBuilder().
		AddPage("Refs", 1).
		AddBlock(&models.Block{EID: 1, Children: []int64{2, 3}}).
		AddBlock(&models.Block{EID: 2, UID: "dd01", Text: "see ((dd02))", Order: 0}).
		AddBlock(&models.Block{EID: 3, UID: "dd02", Text: "the target", Order: 1}).
		Build()

	id := resolver.Derive("dd02")
	want := "- see ((" + id + "))\n- the target\n  id:: " + id + "\n"
	if got := render(t, g, "Refs"); got != want {
		t.Errorf("rendered = %q, want %q", got, want)
	}
}

func TestRenderPage_AnnotationPrecedesChildren(t *testing.T) {
	g := graph.NewBuilder().
		AddPage("Props", 1).
		AddBlock(&models.Block{EID: 1, Children: []int64{2, 4}}).
		AddBlock(&models.Block{EID: 2, UID: "ee01", Text: "target with child", Order: 0, Children: []int64{3}}).
		AddBlock(&models.Block{EID: 3, UID: "ee02", Text: "kid"}).
		AddBlock(&models.Block{EID: 4, UID: "ee03", Text: "((ee01))", Order: 1}).
		Build()

	got := render(t, g, "Props")
	id := resolver.Derive("ee01")
	want := "- target with child\n  id:: " + id + "\n  - kid\n- ((" + id + "))\n"
	if got != want {
		t.Errorf("rendered = %q, want %q", got, want)
	}
}

func TestRenderPage_CycleSafe(t *testing.T) {
	// A references B and B references A. Reference edges are never
	// followed into content, so rendering terminates and both targets
	// get stable identifiers.
	g := graph.NewBuilder().
		AddPage("Cycle", 1).
		AddBlock(&models.Block{EID: 1, Children: []int64{2, 3}}).
		AddBlock(&models.Block{EID: 2, UID: "ab01", Text: "points to ((ab02))", Order: 0}).
		AddBlock(&models.Block{EID: 3, UID: "ab02", Text: "points to ((ab01))", Order: 1}).
		Build()

	got := render(t, g, "Cycle")
	idA := resolver.Derive("ab01")
	idB := resolver.Derive("ab02")
	want := "- points to ((" + idB + "))\n  id:: " + idA + "\n" +
		"- points to ((" + idA + "))\n  id:: " + idB + "\n"
	if got != want {
		t.Errorf("rendered = %q, want %q", got, want)
	}
}

func TestRenderPage_TaskMarkersMidSentence(t *testing.T) {
	g := graph.NewBuilder().
		AddPage("Tasks", 1).
		AddBlock(&models.Block{EID: 1, Children: []int64{2, 3}}).
		AddBlock(&models.Block{EID: 2, UID: "ff01", Text: "start {{[[TODO]]}} end", Order: 0}).
		AddBlock(&models.Block{EID: 3, UID: "ff02", Text: "{{DONE}} early", Order: 1}).
		Build()

	// Substitution is textual: the keyword stays where the marker was.
	want := "- start TODO end\n- DONE early\n"
	if got := render(t, g, "Tasks"); got != want {
		t.Errorf("rendered = %q, want %q", got, want)
	}
}

func TestRenderPage_MultilineText(t *testing.T) {
	g := graph.NewBuilder().
		AddPage("Multi", 1).
		AddBlock(&models.Block{EID: 1, Children: []int64{2}}).
		AddBlock(&models.Block{EID: 2, UID: "aa99", Text: "first line\nsecond line"}).
		Build()

	want := "- first line\n  second line\n"
	if got := render(t, g, "Multi"); got != want {
		t.Errorf("rendered = %q, want %q", got, want)
	}
}

func TestRenderPage_EmptyPage(t *testing.T) {
	g := graph.NewBuilder().
		AddPage("Empty", 1).
		AddBlock(&models.Block{EID: 1}).
		Build()

	if got := render(t, g, "Empty"); got != "" {
		t.Errorf("rendered = %q, want empty", got)
	}
}

func TestRenderPage_IdempotentAcrossCalls(t *testing.T) {
	g := graph.NewBuilder().
		AddPage("Stable", 1).
		AddBlock(&models.Block{EID: 1, Children: []int64{2}}).
		AddBlock(&models.Block{EID: 2, UID: "ba01", Text: "((ba01)) self ref"}).
		Build()

	first := render(t, g, "Stable")
	second := render(t, g, "Stable")
	if first != second {
		t.Errorf("renders differ:\n%q\n%q", first, second)
	}
	if !strings.Contains(first, "id:: "+resolver.Derive("ba01")) {
		t.Errorf("self-referenced block not annotated: %q", first)
	}
}
