package book

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/bookit/internal/config"
	"git.home.luguber.info/inful/bookit/internal/errors"
	"git.home.luguber.info/inful/bookit/internal/logfields"
	"git.home.luguber.info/inful/bookit/internal/storage"
)

// Classifier scans the source root and classifies its immediate subfolders
// into front matter, chapters, and back matter.
type Classifier struct {
	store storage.Store
	cfg   *config.Config
}

// NewClassifier creates a classifier over the configured source root.
func NewClassifier(store storage.Store, cfg *config.Config) *Classifier {
	return &Classifier{store: store, cfg: cfg}
}

// Classify lists the source root and returns the recognized sections in
// listing order: front matter, then chapters sorted by ascending chapter
// number, then back matter. Folders matching none of the predicates are
// ignored. Two chapter folders resolving to the same chapter number violate
// the section uniqueness invariant and fail classification.
func (c *Classifier) Classify() ([]Section, error) {
	entries, err := c.store.ListDir(c.cfg.SrcPath)
	if err != nil {
		return nil, errors.FSOpFailed("list", c.cfg.SrcPath, err)
	}

	titleCaser := cases.Title(language.English)

	var front, chapters, back []Section
	byNumber := make(map[int]string)
	for _, name := range entries {
		switch {
		case IsFrontMatterFolder(name):
			front = append(front, Section{
				Kind:       SectionKind(name),
				FolderName: name,
				Title:      titleCaser.String(name),
			})
		case IsChapterFolder(name):
			number := chapterNumber(name)
			if number < 1 {
				slog.Warn("ignoring chapter folder without a number", logfields.Folder(name))
				continue
			}
			if prev, dup := byNumber[number]; dup {
				return nil, errors.ClassificationFailed(name,
					fmt.Sprintf("chapter %d already claimed by folder %q", number, prev))
			}
			byNumber[number] = name
			chapters = append(chapters, Section{
				Kind:       KindChapter,
				FolderName: name,
				Title:      c.cfg.ChapterTitle(number),
				Chapter:    number,
			})
		case IsBackMatterFolder(name):
			back = append(back, Section{
				Kind:       SectionKind(name),
				FolderName: name,
				Title:      titleCaser.String(name),
			})
		}
	}
	sort.SliceStable(chapters, func(i, j int) bool { return chapters[i].Chapter < chapters[j].Chapter })

	sections := make([]Section, 0, len(front)+len(chapters)+len(back))
	sections = append(sections, front...)
	sections = append(sections, chapters...)
	sections = append(sections, back...)

	for i := range sections {
		files, err := c.listMarkdown(sections[i].FolderName)
		if err != nil {
			return nil, err
		}
		sections[i].Files = files
	}

	slog.Debug("source classified",
		slog.Int("front", len(front)),
		slog.Int("chapters", len(chapters)),
		slog.Int("back", len(back)))
	return sections, nil
}

func (c *Classifier) listMarkdown(folder string) ([]string, error) {
	dir := filepath.Join(c.cfg.SrcPath, folder)
	entries, err := c.store.ListDir(dir)
	if err != nil {
		return nil, errors.FSOpFailed("list", dir, err)
	}
	files := make([]string, 0, len(entries))
	for _, name := range entries {
		if IsMarkdownFile(name) {
			files = append(files, name)
		}
	}
	return files, nil
}

// IsChapterFolder reports whether a folder name denotes a chapter: it
// contains "chapter" and no "." character.
func IsChapterFolder(name string) bool {
	return strings.Contains(name, "chapter") && !strings.Contains(name, ".")
}

// IsFrontMatterFolder reports whether a folder name is a front matter kind.
func IsFrontMatterFolder(name string) bool {
	return slices.Contains(FrontMatterKinds, SectionKind(name))
}

// IsBackMatterFolder reports whether a folder name is a back matter kind.
func IsBackMatterFolder(name string) bool {
	return slices.Contains(BackMatterKinds, SectionKind(name))
}

// IsMarkdownFile reports whether a file name is a markdown source.
func IsMarkdownFile(name string) bool {
	return strings.HasSuffix(name, ".md")
}

// chapterNumber extracts the digits of a folder name as one number; zero when
// the name has no digits.
func chapterNumber(name string) int {
	n := 0
	seen := false
	for _, r := range name {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
			seen = true
		}
	}
	if !seen {
		return 0
	}
	return n
}
