package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bookit/internal/book"
	"git.home.luguber.info/inful/bookit/internal/config"
	"git.home.luguber.info/inful/bookit/internal/links"
	"git.home.luguber.info/inful/bookit/internal/storage"
)

const fileInstallNode = "f377f770-261c-4d5a-b752-0a94f18ff0b8\r\n" +
	"\r\n" +
	"# Install Node\r\n" +
	"\r\n" +
	"Blob\r\n"

func renderConfig() *config.Config {
	return &config.Config{
		Root:     "testProject",
		SrcPath:  "testProject/src",
		BookPath: "testProject/book",
		ImgPath:  "testProject/img",
	}
}

func chapterFlatFile() *book.FlatFile {
	return &book.FlatFile{
		BookFile: &book.BookFile{
			SrcFile:  "chapter01/01-node.md",
			Title:    "Install Node",
			FileName: "f377f770-261c-4d5a-b752-0a94f18ff0b8.md",
			FilePath: "testProject/book/f377f770-261c-4d5a-b752-0a94f18ff0b8.md",
		},
		SectionTitle: "Chapter 1: **Install Tools**",
		SectionNav: []book.NavEntry{
			{Title: "1.0", FileName: "f377f770-261c-4d5a-b752-0a94f18ff0b8.md"},
			{Title: "1.1", FileName: "700af3c6-9a77-4964-bfa7-489b6c208e16.md"},
		},
	}
}

func TestRenderFile_FullOutput(t *testing.T) {
	store := storage.NewMockStore().
		AddFile("testProject/src/chapter01/01-node.md", fileInstallNode)

	f := chapterFlatFile()
	require.NoError(t, New(store, renderConfig()).RenderFile(f, links.Context{}))

	got := store.Content("testProject/book/f377f770-261c-4d5a-b752-0a94f18ff0b8.md")
	require.Equal(t, []string{
		"**[HOME](./index.md)**",
		"",
		"> Chapter 1: **Install Tools**",
		">",
		"> **1.0** |",
		"[1.1](./700af3c6-9a77-4964-bfa7-489b6c208e16.md)",
		"",
		"",
		"# Install Node",
		"",
		"Blob",
		"",
		"",
		"---",
		"",
		"**[HOME](./index.md)**",
		"",
		"",
	}, strings.Split(got, "\r\n"))
}

func TestRenderFile_IdentityMismatchSkips(t *testing.T) {
	store := storage.NewMockStore().
		AddFile("testProject/src/chapter01/02-ide.md", "# Integrated Dev Env\r\n")

	f := chapterFlatFile()
	f.SrcFile = "chapter01/02-ide.md"

	require.NoError(t, New(store, renderConfig()).RenderFile(f, links.Context{}))
	require.Equal(t, []string{"testProject/src/chapter01/02-ide.md"}, store.Files())
}

func TestRenderFile_SingleFileSectionOmitsHeader(t *testing.T) {
	store := storage.NewMockStore().
		AddFile("testProject/src/chapter01/01-node.md", fileInstallNode)

	f := chapterFlatFile()
	f.SectionNav = f.SectionNav[:1]

	require.NoError(t, New(store, renderConfig()).RenderFile(f, links.Context{}))

	got := store.Content("testProject/book/f377f770-261c-4d5a-b752-0a94f18ff0b8.md")
	require.Equal(t,
		"**[HOME](./index.md)**\r\n\r\n"+
			"\r\n# Install Node\r\n\r\nBlob\r\n"+
			"\r\n\r\n---\r\n\r\n"+
			"**[HOME](./index.md)**\r\n\r\n",
		got)
}

func TestRenderFile_BodyLinksRewritten(t *testing.T) {
	other := &book.BookFile{
		SrcFile:  "chapter01/02-ide.md",
		FileName: "972a9e51-d22a-484f-a1fa-8ac24288d282.md",
	}
	lctx := links.NewContext([]*book.BookFile{other},
		"testProject", "testProject/src", "testProject/img", "testProject/book")

	content := "f377f770-261c-4d5a-b752-0a94f18ff0b8\r\n" +
		"\r\n" +
		"see [ide](../chapter01/02-ide.md)\r\n"
	store := storage.NewMockStore().
		AddFile("testProject/src/chapter01/01-node.md", content)

	f := chapterFlatFile()
	f.SectionNav = f.SectionNav[:1]
	require.NoError(t, New(store, renderConfig()).RenderFile(f, lctx))

	got := store.Content("testProject/book/f377f770-261c-4d5a-b752-0a94f18ff0b8.md")
	require.Contains(t, got, "see [ide](./972a9e51-d22a-484f-a1fa-8ac24288d282.md)\r\n")
}

func TestNavLine_MiddleOfBook(t *testing.T) {
	f := chapterFlatFile()
	f.Prev = "c227518b-3fc1-4afe-8c3e-27b6455617b3.md"
	f.Next = "972a9e51-d22a-484f-a1fa-8ac24288d282.md"

	require.Equal(t,
		"**[⏪ PREV](./c227518b-3fc1-4afe-8c3e-27b6455617b3.md)**"+
			" | **[HOME](./index.md)**"+
			" | **[NEXT ⏩](./972a9e51-d22a-484f-a1fa-8ac24288d282.md)**",
		NavLine(f))
}

func TestNavLine_BookBoundaries(t *testing.T) {
	first := chapterFlatFile()
	first.Next = "x.md"
	require.Equal(t, "**[HOME](./index.md)** | **[NEXT ⏩](./x.md)**", NavLine(first))

	last := chapterFlatFile()
	last.Prev = "y.md"
	require.Equal(t, "**[⏪ PREV](./y.md)** | **[HOME](./index.md)**", NavLine(last))
}
