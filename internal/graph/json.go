package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nborders/grove/internal/models"
)

// jsonSnapshot is the JSON dump layout. Child arrays carry explicit
// sibling order; the order field breaks ties across merged dumps.
type jsonSnapshot struct {
	Pages  []models.Page `json:"pages"`
	Blocks []jsonBlock   `json:"blocks"`
}

type jsonBlock struct {
	EID      int64   `json:"eid"`
	UID      string  `json:"uid"`
	Text     string  `json:"text"`
	Order    int     `json:"order"`
	Children []int64 `json:"children"`
}

// loadJSON materializes a snapshot from a JSON dump.
func loadJSON(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("graph: read snapshot: %w", err)
	}

	var snap jsonSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("graph: decode snapshot %s: %w", path, err)
	}

	b := NewBuilder()
	for _, jb := range snap.Blocks {
		b.AddBlock(&models.Block{
			EID:      jb.EID,
			UID:      jb.UID,
			Text:     jb.Text,
			Order:    jb.Order,
			Children: jb.Children,
		})
	}
	for _, p := range snap.Pages {
		b.AddPage(p.Title, p.Root)
	}
	return b.Build(), nil
}
