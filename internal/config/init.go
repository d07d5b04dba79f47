package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/bookit/internal/errors"
)

// InitOptions controls project scaffolding.
type InitOptions struct {
	// Force overwrites an existing config file.
	Force bool
	// Title seeds chapterTitles[1]; empty picks a placeholder.
	Title string
	// Sections lists front/back matter folders to seed (e.g. "preface").
	Sections []string
}

const seedChapterFile = "01-getting-started.md"

const seedChapterContent = "\r\n" +
	"# Let's Get Started!\r\n" +
	"\r\n" +
	"Create markdown (*.md) files in their respective folder locations.\r\n"

// Init scaffolds a new bookit project at root: config file, source tree with
// a seeded first chapter, home document, and the image/output directories.
func Init(root string, opts InitOptions) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return errors.FSOpFailed("abs", root, err)
	}

	configPath := filepath.Join(absRoot, AllowedFiles[0])
	for _, name := range AllowedFiles {
		p := filepath.Join(absRoot, name)
		if _, statErr := os.Stat(p); statErr == nil {
			if !opts.Force {
				return errors.New(errors.CategoryConfig, errors.SeverityFatal,
					"config file already exists, use --force to overwrite").
					WithContext("path", p)
			}
			configPath = p
			break
		}
	}

	title := opts.Title
	if title == "" {
		title = "Hello World!"
	}
	raw := fileConfig{
		BookSrc:       DefaultSrcDir,
		BookDst:       DefaultDstDir,
		ImgDir:        DefaultImgDir,
		ChapterTitles: map[int]string{1: title},
	}
	data, err := yaml.Marshal(raw)
	if err != nil {
		return errors.ConfigLoadFailed(configPath, err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.FSOpFailed("write", configPath, err)
	}

	cfg := resolve(absRoot, configPath, raw)
	for _, dir := range []string{cfg.SrcPath, cfg.BookPath, cfg.ImgPath} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.FSOpFailed("mkdir", dir, err)
		}
	}

	chapterDir := filepath.Join(cfg.SrcPath, "chapter01")
	if _, err := os.Stat(chapterDir); os.IsNotExist(err) {
		if err := os.MkdirAll(chapterDir, 0o750); err != nil {
			return errors.FSOpFailed("mkdir", chapterDir, err)
		}
		seed := filepath.Join(chapterDir, seedChapterFile)
		if err := os.WriteFile(seed, []byte(seedChapterContent), 0o644); err != nil {
			return errors.FSOpFailed("write", seed, err)
		}
	}

	home := cfg.HomePath()
	if _, err := os.Stat(home); os.IsNotExist(err) {
		content := fmt.Sprintf("# %s\r\n\r\nWelcome to your book.\r\n", title)
		if err := os.WriteFile(home, []byte(content), 0o644); err != nil {
			return errors.FSOpFailed("write", home, err)
		}
	}

	for _, section := range opts.Sections {
		section = strings.ToLower(strings.TrimSpace(section))
		if section == "" {
			continue
		}
		dir := filepath.Join(cfg.SrcPath, section)
		if _, err := os.Stat(dir); err == nil {
			continue
		}
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.FSOpFailed("mkdir", dir, err)
		}
		seed := filepath.Join(dir, section+".md")
		content := fmt.Sprintf("\r\nReplace me with desired %s content!\r\n", section)
		if err := os.WriteFile(seed, []byte(content), 0o644); err != nil {
			return errors.FSOpFailed("write", seed, err)
		}
	}

	return nil
}
