// Package identity assigns and validates the permanent UUID identity that
// gives each source file its stable output filename.
package identity

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/bookit/internal/book"
	"git.home.luguber.info/inful/bookit/internal/config"
	"git.home.luguber.info/inful/bookit/internal/errors"
	"git.home.luguber.info/inful/bookit/internal/logfields"
	"git.home.luguber.info/inful/bookit/internal/storage"
)

// probeLineLimit is how many leading lines are inspected for identity and title.
const probeLineLimit = 5

// IsUUID reports whether s is a canonical 36-character UUID.
func IsUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// looksLikeUUID reports whether s starts with a canonical UUID without being
// one, e.g. a UUID with a trailing suffix. Such a first line is a malformed
// identity rather than ordinary content.
func looksLikeUUID(s string) bool {
	return len(s) > 36 && IsUUID(s[:36])
}

// NewUUID returns a fresh random v4 identity in canonical form.
func NewUUID() string {
	return uuid.NewString()
}

// Resolver probes source files for identity and title, and repairs files
// lacking an identity by writing a fresh UUID into them.
type Resolver struct {
	store storage.Store
	cfg   *config.Config
}

// NewResolver creates a resolver over the configured source and output roots.
func NewResolver(store storage.Store, cfg *config.Config) *Resolver {
	return &Resolver{store: store, cfg: cfg}
}

// ResolveAll probes every file of every section concurrently and reassembles
// the results in the classifier's canonical order. Probe failures are fatal.
func (r *Resolver) ResolveAll(ctx context.Context, sections []book.Section) ([]book.ResolvedSection, error) {
	resolved := make([]book.ResolvedSection, len(sections))
	g, _ := errgroup.WithContext(ctx)
	for i, s := range sections {
		resolved[i] = book.ResolvedSection{
			Section: s,
			Files:   make([]*book.BookFile, len(s.Files)),
		}
		for j, name := range s.Files {
			srcFile := s.FolderName + "/" + name
			out := &resolved[i].Files[j]
			g.Go(func() error {
				f, err := r.Probe(srcFile)
				if err != nil {
					return err
				}
				*out = f
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resolved, nil
}

// Probe streams at most the first 5 lines of a source file. A canonical UUID
// on line 1 becomes the file's identity; the first "# " heading within the
// probed lines becomes its title. Title scanning does not depend on line-1
// validity; validity alone decides whether the file joins the build.
func (r *Resolver) Probe(srcFile string) (*book.BookFile, error) {
	f := &book.BookFile{SrcFile: srcFile}

	path := filepath.Join(r.cfg.SrcPath, filepath.FromSlash(srcFile))
	n := 0
	err := r.store.EachLine(path, func(line string) bool {
		n++
		if n > probeLineLimit || f.Title != "" {
			return false
		}
		if n == 1 {
			trimmed := strings.TrimSpace(line)
			switch {
			case IsUUID(trimmed):
				f.FileName = trimmed + ".md"
				f.FilePath = filepath.Join(r.cfg.BookPath, f.FileName)
			case looksLikeUUID(trimmed):
				f.Malformed = true
			}
			return true
		}
		if strings.HasPrefix(line, "# ") {
			f.Title = line[2:]
		}
		return true
	})
	if err != nil {
		return nil, errors.IdentityProbeFailed(srcFile, err)
	}
	if f.Malformed {
		slog.Error("no valid uuid on line 1, file will be skipped; replace the malformed identity",
			logfields.File(srcFile),
			slog.String("suggested", NewUUID()))
	}
	return f, nil
}

// RepairAll writes a fresh UUID into every probed file lacking an identity,
// fanning out one task per file. Malformed identities are left untouched.
// Any write failure aborts the build; the corpus may be partially repaired.
func (r *Resolver) RepairAll(ctx context.Context, sections []book.ResolvedSection) error {
	g, _ := errgroup.WithContext(ctx)
	for i := range sections {
		for _, f := range sections[i].Files {
			if f.HasIdentity() || f.Malformed {
				continue
			}
			g.Go(func() error {
				return r.repair(f)
			})
		}
	}
	return g.Wait()
}

// repair performs the read-modify-write transaction for one file. Each path
// is owned by exactly one task, so no two writers ever interleave on a file.
func (r *Resolver) repair(f *book.BookFile) error {
	id := NewUUID()
	path := filepath.Join(r.cfg.SrcPath, filepath.FromSlash(f.SrcFile))

	content, err := r.store.ReadFile(path)
	if err != nil {
		return errors.IdentityWriteFailed(f.SrcFile, err)
	}
	data := make([]byte, 0, len(id)+2+len(content))
	data = append(data, id...)
	data = append(data, '\r', '\n')
	data = append(data, content...)
	if err := r.store.WriteFile(path, data); err != nil {
		return errors.IdentityWriteFailed(f.SrcFile, err)
	}

	f.FileName = id + ".md"
	f.FilePath = filepath.Join(r.cfg.BookPath, f.FileName)
	slog.Debug("added uuid to source file", logfields.File(f.SrcFile), logfields.UUID(id))
	return nil
}
