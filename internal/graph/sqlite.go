package graph

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/nborders/grove/internal/models"
)

// loadSQLite materializes a snapshot from a SQLite database with the layout:
//
//	pages(eid INTEGER, title TEXT)
//	blocks(eid INTEGER PRIMARY KEY, uid TEXT, text TEXT, ord INTEGER, parent INTEGER)
//
// parent is NULL for root blocks; sibling order is ord ascending, ties by
// eid scan order.
func loadSQLite(path string) (*Graph, error) {
	conn, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("graph: open snapshot: %w", err)
	}
	defer conn.Close()
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("graph: ping snapshot: %w", err)
	}

	b := NewBuilder()
	if err := scanBlocks(conn, b); err != nil {
		return nil, err
	}
	if err := scanPages(conn, b); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

func scanBlocks(conn *sql.DB, b *Builder) error {
	rows, err := conn.Query(`
		SELECT eid, COALESCE(uid, ''), COALESCE(text, ''), COALESCE(ord, 0), parent
		FROM blocks
		ORDER BY eid
	`)
	if err != nil {
		return fmt.Errorf("graph: query blocks: %w", err)
	}
	defer rows.Close()

	type edge struct{ parent, child int64 }
	var edges []edge
	byEID := make(map[int64]*models.Block)

	for rows.Next() {
		var blk models.Block
		var parent sql.NullInt64
		if err := rows.Scan(&blk.EID, &blk.UID, &blk.Text, &blk.Order, &parent); err != nil {
			return fmt.Errorf("graph: scan block: %w", err)
		}
		if parent.Valid {
			edges = append(edges, edge{parent: parent.Int64, child: blk.EID})
		}
		byEID[blk.EID] = &blk
		b.AddBlock(&blk)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("graph: read blocks: %w", err)
	}

	// Attach children in scan order; Build applies the ord sort.
	for _, e := range edges {
		if p, ok := byEID[e.parent]; ok {
			p.Children = append(p.Children, e.child)
		}
	}
	return nil
}

func scanPages(conn *sql.DB, b *Builder) error {
	rows, err := conn.Query(`SELECT eid, title FROM pages`)
	if err != nil {
		return fmt.Errorf("graph: query pages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var eid int64
		var title string
		if err := rows.Scan(&eid, &title); err != nil {
			return fmt.Errorf("graph: scan page: %w", err)
		}
		b.AddPage(title, eid)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("graph: read pages: %w", err)
	}
	return nil
}
