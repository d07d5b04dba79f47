// Package links rewrites markdown link targets between the source, image,
// and output address spaces.
//
// Rewriting is deliberately textual: a matched target is replaced wherever
// that exact substring occurs in the text, not via a parsed link tree.
// Identical target strings serving different purposes on one line therefore
// collide; callers accepting that trade-off get rewriting that never mangles
// surrounding markdown. A structural parser can replace this package without
// touching call sites.
package links

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/bookit/internal/book"
	"git.home.luguber.info/inful/bookit/internal/identity"
)

// linkTarget captures the target inside "(...)" immediately following a
// bracketed label.
var linkTarget = regexp.MustCompile(`\[[^\]]*\]\(([^)]+)\)`)

// Context carries the corpus index and roots needed to translate targets.
// It is a pure value; building one has no side effects.
type Context struct {
	// basenames preserves flat-list order so ties resolve deterministically.
	basenames []string
	byName    map[string][]*book.BookFile

	SrcPath  string // absolute source root
	ImgPath  string // absolute image root
	BookPath string // absolute output root
	Root     string // absolute project root
}

// NewContext indexes the corpus by source basename. Files sharing a basename
// are kept in order; the first one wins on lookup.
func NewContext(files []*book.BookFile, root, srcPath, imgPath, bookPath string) Context {
	ctx := Context{
		byName:   make(map[string][]*book.BookFile, len(files)),
		Root:     root,
		SrcPath:  srcPath,
		ImgPath:  imgPath,
		BookPath: bookPath,
	}
	for _, f := range files {
		name := path.Base(f.SrcFile)
		if _, seen := ctx.byName[name]; !seen {
			ctx.basenames = append(ctx.basenames, name)
		}
		ctx.byName[name] = append(ctx.byName[name], f)
	}
	return ctx
}

// Targets extracts every link target of text in order of appearance.
func Targets(text string) []string {
	matches := linkTarget.FindAllStringSubmatch(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

// FormatLine rewrites one output line. Passes, in order: source-file links to
// output UUID links, image links to output-relative paths, and already-output
// UUID links to output-local references. Targets matching no pass are left
// untouched.
func FormatLine(line string, ctx Context) string {
	out := line
	for _, target := range Targets(line) {
		if repl, ok := ctx.formatTarget(target); ok {
			out = strings.ReplaceAll(out, target, repl)
		}
	}
	return out
}

func (ctx Context) formatTarget(target string) (string, bool) {
	if f, ok := ctx.lookupSource(target); ok {
		return "./" + f.FileName, true
	}
	if repl, ok := ctx.relocateImage(target); ok {
		return repl, true
	}
	if repl, ok := ctx.localizeOutput(target); ok {
		return repl, true
	}
	return "", false
}

// lookupSource finds the first known source basename contained in target.
func (ctx Context) lookupSource(target string) (*book.BookFile, bool) {
	for _, name := range ctx.basenames {
		if strings.Contains(target, name) {
			return ctx.byName[name][0], true
		}
	}
	return nil, false
}

// relocateImage rewrites a target containing the image folder's root-relative
// path into a path relative to the output root.
func (ctx Context) relocateImage(target string) (string, bool) {
	imgSeg, err := filepath.Rel(ctx.Root, ctx.ImgPath)
	if err != nil {
		return "", false
	}
	imgSeg = filepath.ToSlash(imgSeg)
	idx := strings.Index(target, imgSeg)
	if idx < 0 {
		return "", false
	}
	rel, err := filepath.Rel(ctx.BookPath, ctx.ImgPath)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel) + target[idx+len(imgSeg):], true
}

// localizeOutput strips the output root from a target that already addresses
// an output UUID file.
func (ctx Context) localizeOutput(target string) (string, bool) {
	bookSeg := path.Base(ctx.BookPath) + "/"
	if !strings.Contains(target, bookSeg) {
		return "", false
	}
	name := path.Base(target)
	if !identity.IsUUID(strings.TrimSuffix(name, path.Ext(name))) {
		return "", false
	}
	return "./" + name, true
}

// LintFile rewrites a whole source file's links so that source-file targets
// point at the build output, relative to the source file's own directory.
// This is the only pass applied to source files.
func LintFile(content, srcFilePath string, ctx Context) string {
	srcDir := filepath.Dir(srcFilePath)
	rel, err := filepath.Rel(srcDir, ctx.BookPath)
	if err != nil {
		return content
	}
	prefix := filepath.ToSlash(rel)

	out := content
	for _, target := range Targets(content) {
		f, ok := ctx.lookupSource(target)
		if !ok {
			continue
		}
		out = strings.ReplaceAll(out, target, prefix+"/"+f.FileName)
	}
	return out
}
