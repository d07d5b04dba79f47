// Package book holds the build pipeline's data model and the corpus
// classifier that maps source folders to book sections.
package book

import "strings"

// SectionKind classifies a source folder.
type SectionKind string

const (
	KindPreface      SectionKind = "preface"
	KindForeword     SectionKind = "foreword"
	KindIntroduction SectionKind = "introduction"
	KindChapter      SectionKind = "chapter"
	KindGlossary     SectionKind = "glossary"
	KindAppendix     SectionKind = "appendix"
)

// KindOrder is the fixed emission order of section kinds in the TOC and the
// flat file list.
var KindOrder = []SectionKind{
	KindPreface,
	KindForeword,
	KindIntroduction,
	KindChapter,
	KindGlossary,
	KindAppendix,
}

// FrontMatterKinds are the folder names recognized as front matter.
var FrontMatterKinds = []SectionKind{KindPreface, KindForeword, KindIntroduction}

// BackMatterKinds are the folder names recognized as back matter.
var BackMatterKinds = []SectionKind{KindGlossary, KindAppendix}

// Section is one classified source folder.
type Section struct {
	Kind       SectionKind
	FolderName string
	// Title is the folder-derived display title for non-chapters, or the
	// configured chapter title. Empty means "no title configured", which
	// downstream formatting branches on.
	Title string
	// Chapter is the parsed chapter number; zero unless Kind is KindChapter.
	Chapter int
	// Files are the markdown file names of the folder in listing order.
	Files []string
}

// BookFile is one source file enriched with its output identity.
type BookFile struct {
	// SrcFile is folder/name relative to the source root.
	SrcFile string
	// Title is the first "# " heading within the first 5 lines, if any.
	Title string
	// FileName is "<uuid>.md"; empty while the file has no valid identity.
	FileName string
	// FilePath is the absolute output path; empty while FileName is empty.
	FilePath string
	// Malformed marks a first line that looks like an identity but is not a
	// canonical UUID. Such files are excluded from the build and never
	// repaired.
	Malformed bool
}

// HasIdentity reports whether the file has been assigned an output identity.
func (f *BookFile) HasIdentity() bool {
	return f.FileName != ""
}

// UUID returns the textual identity (output file name without extension).
func (f *BookFile) UUID() string {
	return strings.TrimSuffix(f.FileName, ".md")
}

// ResolvedSection pairs a classified section with its identity-resolved files.
type ResolvedSection struct {
	Section Section
	Files   []*BookFile
}

// ValidFiles returns the section's files that carry a valid identity.
func (s *ResolvedSection) ValidFiles() []*BookFile {
	out := make([]*BookFile, 0, len(s.Files))
	for _, f := range s.Files {
		if f.HasIdentity() {
			out = append(out, f)
		}
	}
	return out
}

// NavEntry is one item of an in-page section navigation strip.
type NavEntry struct {
	Title    string
	FileName string
}

// FlatFile is a BookFile annotated with its position in the whole book.
type FlatFile struct {
	*BookFile
	// SectionTitle is the owning section's formatted heading.
	SectionTitle string
	// SectionNav lists every file of the owning section in order.
	SectionNav []NavEntry
	// Prev and Next are the adjacent output file names; empty at the book
	// boundaries.
	Prev string
	Next string
}
