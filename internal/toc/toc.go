// Package toc builds the table of contents document and the authoritative
// flat ordered file list the rest of the pipeline consumes.
package toc

import (
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/bookit/internal/book"
	"git.home.luguber.info/inful/bookit/internal/config"
	"git.home.luguber.info/inful/bookit/internal/errors"
	"git.home.luguber.info/inful/bookit/internal/links"
	"git.home.luguber.info/inful/bookit/internal/logfields"
	"git.home.luguber.info/inful/bookit/internal/storage"
)

// IndexFile is the name of the generated TOC document.
const IndexFile = "index.md"

// Builder emits index.md and computes the flat file list.
type Builder struct {
	store storage.Store
	cfg   *config.Config
}

// NewBuilder creates a TOC builder over the configured roots.
func NewBuilder(store storage.Store, cfg *config.Config) *Builder {
	return &Builder{store: store, cfg: cfg}
}

// Build writes index.md and returns the flat file list in emission order:
// preface, foreword, introduction, chapters ascending, glossary, appendix.
// Only files with a valid identity appear; sections left without any such
// file are skipped entirely. If the home document exists its rewritten
// content is prepended to the TOC.
func (b *Builder) Build(sections []book.ResolvedSection, lctx links.Context) ([]*book.FlatFile, error) {
	slog.Debug("building toc", logfields.Stage("toc"))

	indexPath := filepath.Join(b.cfg.BookPath, IndexFile)
	w, err := b.store.NewLineWriter(indexPath)
	if err != nil {
		return nil, errors.TOCWriteFailed(err)
	}

	flat, err := b.write(w, sections, lctx)
	if err != nil {
		_ = w.Close()
		return nil, errors.TOCWriteFailed(err)
	}
	if err := w.Close(); err != nil {
		return nil, errors.TOCWriteFailed(err)
	}
	return flat, nil
}

func (b *Builder) write(w storage.LineWriter, sections []book.ResolvedSection, lctx links.Context) ([]*book.FlatFile, error) {
	if err := b.writeHome(w, lctx); err != nil {
		return nil, err
	}
	if err := w.WriteString("\r\n\r\n"); err != nil {
		return nil, err
	}

	byKind := make(map[book.SectionKind][]book.ResolvedSection)
	for _, s := range sections {
		byKind[s.Section.Kind] = append(byKind[s.Section.Kind], s)
	}

	var flat []*book.FlatFile
	for _, kind := range book.KindOrder {
		for _, section := range byKind[kind] {
			files := section.ValidFiles()
			if len(files) == 0 {
				slog.Warn("section has no renderable files, skipping",
					logfields.Folder(section.Section.FolderName))
				continue
			}
			var entries []*book.FlatFile
			var err error
			if kind == book.KindChapter {
				entries, err = writeChapter(w, section, files)
			} else {
				entries, err = writeNonChapter(w, section, files)
			}
			if err != nil {
				return nil, err
			}
			flat = append(flat, entries...)
		}
	}
	return flat, nil
}

func (b *Builder) writeHome(w storage.LineWriter, lctx links.Context) error {
	home := b.cfg.HomePath()
	if !b.store.Exists(home) {
		slog.Debug("no home document found, toc will have no header")
		return nil
	}
	var werr error
	err := b.store.EachLine(home, func(line string) bool {
		werr = w.WriteString(links.FormatLine(line, lctx) + "\r\n")
		return werr == nil
	})
	if err != nil {
		return err
	}
	if werr != nil {
		return werr
	}
	slog.Debug("home document prepended to toc")
	return nil
}

func writeNonChapter(w storage.LineWriter, section book.ResolvedSection, files []*book.BookFile) ([]*book.FlatFile, error) {
	title := SectionTitle(section.Section, files)
	if err := w.WriteString(title + "\r\n---\r\n"); err != nil {
		return nil, err
	}

	nav := make([]book.NavEntry, 0, len(files))
	for i, f := range files {
		nav = append(nav, book.NavEntry{
			Title:    fmt.Sprintf("page %d", i+1),
			FileName: f.FileName,
		})
	}
	return flatEntries(files, title, nav), nil
}

func writeChapter(w storage.LineWriter, section book.ResolvedSection, files []*book.BookFile) ([]*book.FlatFile, error) {
	title := SectionTitle(section.Section, files)
	if err := w.WriteString(title + "\r\n---\r\n"); err != nil {
		return nil, err
	}

	nav := make([]book.NavEntry, 0, len(files))
	for i, f := range files {
		nav = append(nav, book.NavEntry{
			Title:    fmt.Sprintf("%d.%d", section.Section.Chapter, i),
			FileName: f.FileName,
		})
		bullet := "- " + ChapterFileLink(f, section.Section.Chapter, i)
		if err := w.WriteString(bullet + "\r\n"); err != nil {
			return nil, err
		}
		slog.Debug(bullet)
	}
	if err := w.WriteString("\r\n"); err != nil {
		return nil, err
	}
	return flatEntries(files, title, nav), nil
}

func flatEntries(files []*book.BookFile, title string, nav []book.NavEntry) []*book.FlatFile {
	out := make([]*book.FlatFile, 0, len(files))
	for _, f := range files {
		out = append(out, &book.FlatFile{
			BookFile:     f,
			SectionTitle: title,
			SectionNav:   nav,
		})
	}
	return out
}

// SectionTitle formats a section heading. Chapters render as
// "Chapter N: **Title**", with the title segment omitted entirely when no
// title is configured. Other sections render as a link to their first file.
func SectionTitle(s book.Section, files []*book.BookFile) string {
	if s.Kind == book.KindChapter {
		if s.Title != "" {
			return fmt.Sprintf("Chapter %d: **%s**", s.Chapter, s.Title)
		}
		return fmt.Sprintf("Chapter %d:", s.Chapter)
	}
	return fmt.Sprintf("[**%s**](./%s)", s.Title, files[0].FileName)
}

var separatorRuns = regexp.MustCompile(`[-_\d]+`)

// ChapterFileLink formats one chapter TOC bullet. The label is the file's
// title, or its filename with digit/dash/underscore runs collapsed to spaces.
func ChapterFileLink(f *book.BookFile, chapter, index int) string {
	label := f.Title
	if label == "" {
		stem, _, _ := strings.Cut(path.Base(f.SrcFile), ".")
		label = strings.TrimSpace(separatorRuns.ReplaceAllString(stem, " "))
	}
	return fmt.Sprintf("[%d.%d %s](./%s)", chapter, index, label, f.FileName)
}
