// Package pipeline sequences the build: classify, resolve identity, reset the
// output directory, emit the TOC, link prev/next, render, and lint sources.
package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/bookit/internal/book"
	"git.home.luguber.info/inful/bookit/internal/config"
	"git.home.luguber.info/inful/bookit/internal/errors"
	"git.home.luguber.info/inful/bookit/internal/identity"
	"git.home.luguber.info/inful/bookit/internal/links"
	"git.home.luguber.info/inful/bookit/internal/logfields"
	"git.home.luguber.info/inful/bookit/internal/render"
	"git.home.luguber.info/inful/bookit/internal/storage"
	"git.home.luguber.info/inful/bookit/internal/toc"
)

// Pipeline is the build orchestrator.
type Pipeline struct {
	cfg   *config.Config
	store storage.Store
}

// New creates a pipeline over the given configuration and store.
func New(cfg *config.Config, store storage.Store) *Pipeline {
	return &Pipeline{cfg: cfg, store: store}
}

// Build runs the whole pipeline once and returns the flat file list it
// produced. Per-file render failures are logged and skipped; every other
// failure aborts the build.
func (p *Pipeline) Build(ctx context.Context) ([]*book.FlatFile, error) {
	slog.Debug("building book", logfields.Path(p.cfg.SrcPath))

	classifier := book.NewClassifier(p.store, p.cfg)
	sections, err := classifier.Classify()
	if err != nil {
		return nil, err
	}

	resolver := identity.NewResolver(p.store, p.cfg)
	resolved, err := resolver.ResolveAll(ctx, sections)
	if err != nil {
		return nil, err
	}

	slog.Debug("cleaning book folder", logfields.Path(p.cfg.BookPath))
	if err := p.store.RemoveAll(p.cfg.BookPath); err != nil {
		return nil, errors.FSOpFailed("remove", p.cfg.BookPath, err)
	}
	if err := p.store.MkdirAll(p.cfg.BookPath); err != nil {
		return nil, errors.FSOpFailed("mkdir", p.cfg.BookPath, err)
	}

	if err := resolver.RepairAll(ctx, resolved); err != nil {
		return nil, err
	}

	lctx := links.NewContext(validFiles(resolved),
		p.cfg.Root, p.cfg.SrcPath, p.cfg.ImgPath, p.cfg.BookPath)

	builder := toc.NewBuilder(p.store, p.cfg)
	flat, err := builder.Build(resolved, lctx)
	if err != nil {
		return nil, err
	}

	toc.Sequence(flat)

	if err := p.renderAll(ctx, flat, lctx); err != nil {
		return nil, err
	}

	if p.cfg.LintSrc {
		if err := p.lintAll(ctx, flat, lctx); err != nil {
			return nil, err
		}
	}

	slog.Info("book built", logfields.Count(len(flat)))
	return flat, nil
}

// renderAll fans out one render task per file. Failures degrade that file
// only; they are logged and never abort the build.
func (p *Pipeline) renderAll(ctx context.Context, flat []*book.FlatFile, lctx links.Context) error {
	slog.Debug("rendering files", logfields.Count(len(flat)))
	renderer := render.New(p.store, p.cfg)
	g, _ := errgroup.WithContext(ctx)
	for _, f := range flat {
		g.Go(func() error {
			if err := renderer.RenderFile(f, lctx); err != nil {
				slog.Error("render failed, skipping file",
					logfields.File(f.SrcFile), logfields.Error(err))
			}
			return nil
		})
	}
	return g.Wait()
}

// lintAll rewrites each source file's links to point at the build output.
// The file is only written when linting changed it.
func (p *Pipeline) lintAll(ctx context.Context, flat []*book.FlatFile, lctx links.Context) error {
	slog.Debug("linting source files", logfields.Count(len(flat)))
	g, _ := errgroup.WithContext(ctx)
	for _, f := range flat {
		g.Go(func() error {
			return p.lintFile(f, lctx)
		})
	}
	return g.Wait()
}

func (p *Pipeline) lintFile(f *book.FlatFile, lctx links.Context) error {
	srcPath := filepath.Join(p.cfg.SrcPath, filepath.FromSlash(f.SrcFile))
	content, err := p.store.ReadFile(srcPath)
	if err != nil {
		return errors.FSOpFailed("read", srcPath, err)
	}
	linted := links.LintFile(string(content), srcPath, lctx)
	if linted == string(content) {
		return nil
	}
	if err := p.store.WriteFile(srcPath, []byte(linted)); err != nil {
		return errors.FSOpFailed("write", srcPath, err)
	}
	slog.Debug("linted source file", logfields.File(f.SrcFile))
	return nil
}

func validFiles(sections []book.ResolvedSection) []*book.BookFile {
	var out []*book.BookFile
	for i := range sections {
		out = append(out, sections[i].ValidFiles()...)
	}
	return out
}
