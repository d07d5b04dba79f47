// Package config loads the bookit project configuration.
//
// Exactly one of bookit.yml or bookit.yaml must exist at the project root.
// All defaults are resolved once at load time; the resulting Config carries
// absolute paths and is not mutated afterwards.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/bookit/internal/errors"
)

// AllowedFiles are the supported config file names, in discovery order.
var AllowedFiles = []string{"bookit.yml", "bookit.yaml"}

// Defaults applied when the corresponding key is absent.
const (
	DefaultSrcDir = "src"
	DefaultDstDir = "book"
	DefaultImgDir = "img"
)

// HomeFile is the optional source document prepended to the TOC.
const HomeFile = "home.md"

// fileConfig is the raw on-disk shape; optional fields stay pointers so
// "absent" and "explicitly false" are distinguishable.
type fileConfig struct {
	BookSrc       string         `yaml:"bookSrc,omitempty"`
	BookDst       string         `yaml:"bookDst,omitempty"`
	ImgDir        string         `yaml:"imgDir,omitempty"`
	LintSrc       *bool          `yaml:"lintSrc,omitempty"`
	ChapterTitles map[int]string `yaml:"chapterTitles,omitempty"`
}

// Config is the resolved, immutable project configuration.
type Config struct {
	Root       string // absolute project root
	ConfigFile string // absolute path of the loaded config file

	SrcPath  string // absolute source root
	BookPath string // absolute output root
	ImgPath  string // absolute image root

	LintSrc       bool
	ChapterTitles map[int]string
}

// Options carries CLI overrides applied during load.
type Options struct {
	// NoLint forces LintSrc off regardless of the config file.
	NoLint bool
}

// Discover returns the single allowed config file at root, or a fatal config
// error when zero or multiple candidates exist.
func Discover(root string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", errors.FSOpFailed("list", root, err)
	}
	var found []string
	for _, e := range entries {
		if slices.Contains(AllowedFiles, e.Name()) {
			found = append(found, e.Name())
		}
	}
	if len(found) != 1 {
		return "", errors.ConfigConflict(found, AllowedFiles)
	}
	return filepath.Join(root, found[0]), nil
}

// Load discovers and parses the project configuration under root and resolves
// every default. A .env/.env.local file at the root is loaded first so the
// YAML may reference process environment via the caller's shell.
func Load(root string, opts Options) (*Config, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.FSOpFailed("abs", root, err)
	}

	loadDotenv(absRoot)

	configFile, err := Discover(absRoot)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, errors.ConfigLoadFailed(configFile, err)
	}

	var raw fileConfig
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &raw); err != nil {
		return nil, errors.ConfigLoadFailed(configFile, err)
	}

	cfg := resolve(absRoot, configFile, raw)
	if opts.NoLint {
		cfg.LintSrc = false
	}

	slog.Debug("configuration loaded",
		"bookSrc", cfg.SrcPath,
		"bookDst", cfg.BookPath,
		"imgDir", cfg.ImgPath,
		"lintSrc", cfg.LintSrc)
	return cfg, nil
}

func resolve(root, configFile string, raw fileConfig) *Config {
	srcDir := raw.BookSrc
	if srcDir == "" {
		srcDir = DefaultSrcDir
	}
	dstDir := raw.BookDst
	if dstDir == "" {
		dstDir = DefaultDstDir
	}
	imgDir := raw.ImgDir
	if imgDir == "" {
		imgDir = DefaultImgDir
	}
	lint := true
	if raw.LintSrc != nil {
		lint = *raw.LintSrc
	}
	titles := raw.ChapterTitles
	if titles == nil {
		titles = map[int]string{}
	}
	return &Config{
		Root:          root,
		ConfigFile:    configFile,
		SrcPath:       filepath.Join(root, srcDir),
		BookPath:      filepath.Join(root, dstDir),
		ImgPath:       filepath.Join(root, imgDir),
		LintSrc:       lint,
		ChapterTitles: titles,
	}
}

// ChapterTitle returns the configured title for a chapter number, or "" when
// the chapter has no configured title.
func (c *Config) ChapterTitle(n int) string {
	return c.ChapterTitles[n]
}

// HomePath returns the absolute path of the optional home document.
func (c *Config) HomePath() string {
	return filepath.Join(c.SrcPath, HomeFile)
}

func loadDotenv(root string) {
	for _, name := range []string{".env", ".env.local"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			fmt.Fprintf(os.Stderr, "Note: %s could not be loaded: %v\n", name, err)
			continue
		}
		slog.Debug("environment loaded", "path", p)
		return
	}
}
