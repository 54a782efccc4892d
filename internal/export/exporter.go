// Package export drives the full snapshot-to-vault transform: layout
// scaffolding, the global reference pre-pass, per-page rendering, and
// file writes.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/nborders/grove/internal/checksum"
	"github.com/nborders/grove/internal/graph"
	"github.com/nborders/grove/internal/naming"
	"github.com/nborders/grove/internal/resolver"
	"github.com/nborders/grove/internal/serializer"
	"github.com/nborders/grove/internal/storage"
)

// Exporter writes every page of a loaded graph into the output vault.
type Exporter struct {
	store   graph.Store
	vault   storage.Provider
	logger  *slog.Logger
	workers int
}

// New returns an Exporter. workers bounds how many pages are rendered
// and written concurrently; values below 1 are treated as 1.
func New(store graph.Store, vault storage.Provider, logger *slog.Logger, workers int) *Exporter {
	if workers < 1 {
		workers = 1
	}
	return &Exporter{store: store, vault: vault, logger: logger, workers: workers}
}

// Run performs one full export. The reference rewrite map is computed
// exactly once before any file is written, so page processing order never
// affects assigned identifiers. A failed page is reported but does not
// stop the remaining pages.
func (e *Exporter) Run(ctx context.Context) error {
	if err := e.vault.EnsureLayout(naming.PagesDir, naming.JournalsDir, naming.MetaDir); err != nil {
		return err
	}

	rewrites := resolver.Resolve(e.store.TextBlocks())
	renderer := serializer.New(e.store, rewrites)

	titles := e.store.Titles()
	e.logger.Info("export: starting",
		slog.Int("pages", len(titles)),
		slog.Int("references", rewrites.Len()))

	e.warnCollisions(titles)

	var mu sync.Mutex
	var failures []error

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for _, title := range titles {
		title := title
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			if err := e.exportPage(renderer, title); err != nil {
				e.logger.Error("export: page failed",
					slog.String("title", title),
					slog.String("error", err.Error()))
				mu.Lock()
				failures = append(failures, fmt.Errorf("page %q: %w", title, err))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if len(failures) > 0 {
		return fmt.Errorf("export: %d page(s) failed: %w", len(failures), errors.Join(failures...))
	}
	e.logger.Info("export: finished", slog.Int("pages", len(titles)))
	return nil
}

// exportPage renders a single page and writes it to its mapped location.
// Writes are skipped when the file already holds identical content, which
// keeps mtimes stable across reruns.
func (e *Exporter) exportPage(renderer *serializer.Renderer, title string) error {
	root, err := e.store.PageRoot(title)
	if err != nil {
		return err
	}

	relPath, preamble := pageLocation(title)
	content := renderer.RenderPage(root)
	if preamble != "" {
		content = preamble + "\n" + content
	}

	data := []byte(content)
	if prev, err := e.vault.Read(relPath); err == nil && checksum.Sum(prev) == checksum.Sum(data) {
		e.logger.Debug("export: unchanged", slog.String("path", relPath))
		return nil
	}
	if err := e.vault.Write(relPath, data); err != nil {
		return err
	}
	e.logger.Debug("export: wrote", slog.String("path", relPath))
	return nil
}

// pageLocation maps a title to its vault-relative path. Journal-dated
// titles go under journals/ with no preamble; everything else is a
// regular page.
func pageLocation(title string) (relPath, preamble string) {
	if d, ok := naming.ClassifyJournal(title); ok {
		return d.RelPath(), ""
	}
	return naming.MapTitle(title)
}

// warnCollisions reports distinct titles whose escaped filenames collide.
// Last write still wins; the warning makes the overwrite visible instead
// of silent.
func (e *Exporter) warnCollisions(titles []string) {
	byPath := make(map[string]string, len(titles))
	for _, t := range titles {
		rel, _ := pageLocation(t)
		if prev, ok := byPath[rel]; ok {
			e.logger.Warn("export: filename collision",
				slog.String("path", rel),
				slog.String("title", t),
				slog.String("conflicts_with", prev))
			continue
		}
		byPath[rel] = t
	}
}
