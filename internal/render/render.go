// Package render streams source files into their published form: navigation
// header, section strip, link-rewritten body, and navigation footer.
package render

import (
	"log/slog"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/bookit/internal/book"
	"git.home.luguber.info/inful/bookit/internal/config"
	"git.home.luguber.info/inful/bookit/internal/errors"
	"git.home.luguber.info/inful/bookit/internal/identity"
	"git.home.luguber.info/inful/bookit/internal/links"
	"git.home.luguber.info/inful/bookit/internal/logfields"
	"git.home.luguber.info/inful/bookit/internal/storage"
	"git.home.luguber.info/inful/bookit/internal/toc"
)

// Renderer writes output files for flat entries.
type Renderer struct {
	store storage.Store
	cfg   *config.Config
}

// New creates a renderer over the configured roots.
func New(store storage.Store, cfg *config.Config) *Renderer {
	return &Renderer{store: store, cfg: cfg}
}

// RenderFile streams one source file into its output file. Line 1 must match
// the file's assigned identity; a mismatch skips the file (logged at error
// level, no output written) and is not an error. Every body line goes through
// the link translator. All output is CRLF terminated.
func (r *Renderer) RenderFile(f *book.FlatFile, lctx links.Context) error {
	nav := NavLine(f) + "\r\n\r\n"
	header := sectionHeader(f)

	srcPath := filepath.Join(r.cfg.SrcPath, filepath.FromSlash(f.SrcFile))

	var w storage.LineWriter
	var werr error
	n := 0
	err := r.store.EachLine(srcPath, func(line string) bool {
		n++
		if n == 1 {
			if strings.TrimSpace(line) != f.UUID() {
				slog.Error("no valid uuid on line 1, add one to the first line of the file",
					logfields.File(f.SrcFile),
					slog.String("suggested", identity.NewUUID()))
				return false
			}
			if w, werr = r.store.NewLineWriter(f.FilePath); werr != nil {
				return false
			}
			if werr = w.WriteString(nav); werr != nil {
				return false
			}
			if len(f.SectionNav) > 1 {
				werr = w.WriteString(header)
			}
			return werr == nil
		}
		werr = w.WriteString(links.FormatLine(line, lctx) + "\r\n")
		return werr == nil
	})
	if err == nil {
		err = werr
	}
	if err != nil {
		if w != nil {
			_ = w.Close()
		}
		return errors.RenderFailed(f.SrcFile, err)
	}
	if w == nil {
		// Identity mismatch: skipped, nothing written.
		return nil
	}
	if err := w.WriteString("\r\n\r\n---\r\n\r\n" + nav); err != nil {
		_ = w.Close()
		return errors.RenderFailed(f.SrcFile, err)
	}
	if err := w.Close(); err != nil {
		return errors.RenderFailed(f.SrcFile, err)
	}
	slog.Debug("rendered file", logfields.File(f.SrcFile), logfields.UUID(f.UUID()))
	return nil
}

// NavLine formats the cross-book navigation line, omitting the PREV or NEXT
// segment at the book boundaries.
func NavLine(f *book.FlatFile) string {
	parts := make([]string, 0, 3)
	if f.Prev != "" {
		parts = append(parts, "**[⏪ PREV](./"+f.Prev+")**")
	}
	parts = append(parts, "**[HOME](./"+toc.IndexFile+")**")
	if f.Next != "" {
		parts = append(parts, "**[NEXT ⏩](./"+f.Next+")**")
	}
	return strings.Join(parts, " | ")
}

// sectionHeader formats the in-page section strip: quoted section title and
// the pipe-separated nav list with the current file bolded instead of linked.
func sectionHeader(f *book.FlatFile) string {
	entries := make([]string, 0, len(f.SectionNav))
	for _, n := range f.SectionNav {
		if n.FileName == f.FileName {
			entries = append(entries, "**"+n.Title+"**")
		} else {
			entries = append(entries, "["+n.Title+"](./"+n.FileName+")")
		}
	}
	return "> " + f.SectionTitle + "\r\n>\r\n> " + strings.Join(entries, " |\r\n") + "\r\n\r\n"
}
