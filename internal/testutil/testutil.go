// Package testutil provides shared helpers for building fixture graphs
// and output vaults in tests.
package testutil

import (
	"testing"

	"github.com/nborders/grove/internal/graph"
	"github.com/nborders/grove/internal/models"
	"github.com/nborders/grove/internal/storage"
)

// TestGraph builds the fixture graph used across package tests: a regular
// page whose title needs escaping, a journal page, a block reference with
// an annotated target, a task marker, and two-level nesting.
func TestGraph(t *testing.T) *graph.Graph {
	t.Helper()
	return graph.NewBuilder().
		AddPage("Project/Notes", 1).
		AddBlock(&models.Block{EID: 1, Children: []int64{2, 3}}).
		AddBlock(&models.Block{EID: 2, UID: "aa11", Text: "Hello ((bb22)) world", Order: 0}).
		AddBlock(&models.Block{EID: 3, UID: "bb22", Text: "{{[[TODO]]}} target", Order: 1, Children: []int64{4}}).
		AddBlock(&models.Block{EID: 4, UID: "cc33", Text: "nested", Order: 0}).
		AddPage("July 16, 2021", 10).
		AddBlock(&models.Block{EID: 10, Children: []int64{11}}).
		AddBlock(&models.Block{EID: 11, UID: "dd44", Text: "journal entry", Order: 0}).
		Build()
}

// TestVault creates a temporary output vault rooted in a fresh directory.
func TestVault(t *testing.T) (string, *storage.Vault) {
	t.Helper()
	dir := t.TempDir()
	v, err := storage.NewVault(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, v
}
