package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bookit/internal/errors"
)

func writeConfig(t *testing.T, root, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "bookit.yml", "{}\n")

	cfg, err := Load(root, Options{})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "src"), cfg.SrcPath)
	require.Equal(t, filepath.Join(root, "book"), cfg.BookPath)
	require.Equal(t, filepath.Join(root, "img"), cfg.ImgPath)
	require.True(t, cfg.LintSrc)
	require.Empty(t, cfg.ChapterTitles)
}

func TestLoad_ExplicitPaths(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "bookit.yaml",
		"bookSrc: sources\nbookDst: dist/handbook\nimgDir: assets/img\n")

	cfg, err := Load(root, Options{})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "sources"), cfg.SrcPath)
	require.Equal(t, filepath.Join(root, "dist", "handbook"), cfg.BookPath)
	require.Equal(t, filepath.Join(root, "assets", "img"), cfg.ImgPath)
}

func TestLoad_LintSrcFromFile(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "bookit.yml", "lintSrc: false\n")

	cfg, err := Load(root, Options{})
	require.NoError(t, err)
	require.False(t, cfg.LintSrc)
}

func TestLoad_NoLintOverridesFile(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "bookit.yml", "lintSrc: true\n")

	cfg, err := Load(root, Options{NoLint: true})
	require.NoError(t, err)
	require.False(t, cfg.LintSrc)
}

func TestLoad_ChapterTitles(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "bookit.yml", "chapterTitles:\n  1: Tool Setup\n  3: Advanced\n")

	cfg, err := Load(root, Options{})
	require.NoError(t, err)
	require.Equal(t, "Tool Setup", cfg.ChapterTitle(1))
	require.Equal(t, "", cfg.ChapterTitle(2))
	require.Equal(t, "Advanced", cfg.ChapterTitle(3))
}

func TestLoad_NoConfigFile(t *testing.T) {
	root := t.TempDir()

	_, err := Load(root, Options{})
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryConfig))
}

func TestLoad_TwoConfigFiles(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "bookit.yml", "{}\n")
	writeConfig(t, root, "bookit.yaml", "{}\n")

	_, err := Load(root, Options{})
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryConfig))
}

func TestLoad_EnvExpansion(t *testing.T) {
	root := t.TempDir()
	t.Setenv("BOOKIT_TEST_SRC", "manuscript")
	writeConfig(t, root, "bookit.yml", "bookSrc: ${BOOKIT_TEST_SRC}\n")

	cfg, err := Load(root, Options{})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "manuscript"), cfg.SrcPath)
}

func TestHomePath(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "bookit.yml", "{}\n")

	cfg, err := Load(root, Options{})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "src", "home.md"), cfg.HomePath())
}
