package graph

import (
	"errors"
	"testing"

	"github.com/nborders/grove/internal/apperr"
	"github.com/nborders/grove/internal/models"
)

func TestPageRoot_Found(t *testing.T) {
	g := NewBuilder().
		AddPage("Home", 1).
		AddBlock(&models.Block{EID: 1, UID: "aa01"}).
		Build()

	b, err := g.PageRoot("Home")
	if err != nil {
		t.Fatalf("PageRoot: %v", err)
	}
	if b.EID != 1 {
		t.Errorf("EID = %d, want 1", b.EID)
	}
}

func TestPageRoot_Missing(t *testing.T) {
	g := NewBuilder().Build()
	_, err := g.PageRoot("Nope")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestPageRoot_DanglingRootBlock(t *testing.T) {
	g := NewBuilder().AddPage("Ghost", 99).Build()
	_, err := g.PageRoot("Ghost")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestChildren_OrderFieldWins(t *testing.T) {
	g := NewBuilder().
		AddBlock(&models.Block{EID: 1, Children: []int64{3, 2}}).
		AddBlock(&models.Block{EID: 2, Order: 0, Text: "a"}).
		AddBlock(&models.Block{EID: 3, Order: 1, Text: "b"}).
		Build()

	b, _ := g.Block(1)
	kids := g.Children(b)
	if len(kids) != 2 || kids[0].EID != 2 || kids[1].EID != 3 {
		t.Errorf("children = %v", kids)
	}
}

func TestChildren_TiesKeepInsertionOrder(t *testing.T) {
	g := NewBuilder().
		AddBlock(&models.Block{EID: 1, Children: []int64{5, 4}}).
		AddBlock(&models.Block{EID: 4, Order: 0, Text: "second"}).
		AddBlock(&models.Block{EID: 5, Order: 0, Text: "first"}).
		Build()

	b, _ := g.Block(1)
	kids := g.Children(b)
	if len(kids) != 2 || kids[0].EID != 5 || kids[1].EID != 4 {
		t.Errorf("tie order changed: %v, want [5 4]", []int64{kids[0].EID, kids[1].EID})
	}
}

func TestChildren_SkipsDangling(t *testing.T) {
	g := NewBuilder().
		AddBlock(&models.Block{EID: 1, Children: []int64{2, 77, 3}}).
		AddBlock(&models.Block{EID: 2, Order: 0, Text: "a"}).
		AddBlock(&models.Block{EID: 3, Order: 1, Text: "b"}).
		Build()

	b, _ := g.Block(1)
	if kids := g.Children(b); len(kids) != 2 {
		t.Errorf("len(children) = %d, want 2", len(kids))
	}
}

func TestTextBlocks_ExcludesEmptyAndSorts(t *testing.T) {
	g := NewBuilder().
		AddBlock(&models.Block{EID: 3, Text: "later"}).
		AddBlock(&models.Block{EID: 1, Text: "earlier"}).
		AddBlock(&models.Block{EID: 2}).
		Build()

	tb := g.TextBlocks()
	if len(tb) != 2 || tb[0].EID != 1 || tb[1].EID != 3 {
		t.Errorf("text blocks = %v", tb)
	}
}

func TestTitles_Sorted(t *testing.T) {
	g := NewBuilder().
		AddPage("Zebra", 1).
		AddPage("Alpha", 2).
		AddBlock(&models.Block{EID: 1}).
		AddBlock(&models.Block{EID: 2}).
		Build()

	titles := g.Titles()
	if len(titles) != 2 || titles[0] != "Alpha" || titles[1] != "Zebra" {
		t.Errorf("titles = %v", titles)
	}
}
