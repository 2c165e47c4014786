package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// File names making up a content bundle. A content directory may provide
// any subset of them; missing files come from the embedded defaults.
const (
	StepsFile    = "steps.yaml"
	GitFile      = "git.yaml"
	TerminalFile = "terminal.yaml"
	UseCaseFile  = "usecase.yaml"
)

// ErrNoSteps is returned when a tutorial defines no steps.
var ErrNoSteps = errors.New("tutorial has no steps")

//go:embed data/*.yaml
var embedded embed.FS

// Bundle holds every piece of static copy the application renders.
type Bundle struct {
	Tutorial Tutorial
	Git      Catalog
	Terminal Catalog
	UseCase  UseCase
}

var (
	defaultBundle *Bundle
	defaultErr    error
	defaultOnce   sync.Once
)

// Default returns the embedded bundle. It is decoded on first use and
// shared afterwards; callers must treat it as read-only.
func Default() (*Bundle, error) {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embedded, "data")
		if err != nil {
			defaultErr = err
			return
		}
		defaultBundle, defaultErr = Load(sub)
	})
	return defaultBundle, defaultErr
}

// Load decodes a bundle from the root of fsys and validates it.
func Load(fsys fs.FS) (*Bundle, error) {
	b := &Bundle{}
	files := []struct {
		name string
		dst  any
	}{
		{StepsFile, &b.Tutorial},
		{GitFile, &b.Git},
		{TerminalFile, &b.Terminal},
		{UseCaseFile, &b.UseCase},
	}
	for _, f := range files {
		if err := decodeFile(fsys, f.name, f.dst); err != nil {
			return nil, err
		}
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// LoadDir loads a bundle from dir, falling back to the embedded copy of
// any file the directory does not contain. An empty dir yields Default.
func LoadDir(dir string) (*Bundle, error) {
	if dir == "" {
		return Default()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content directory: %s is not a directory", dir)
	}
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return Load(overlayFS{top: os.DirFS(dir), base: sub})
}

func decodeFile(fsys fs.FS, name string, dst any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// overlayFS opens names from top first and falls back to base when top
// does not have them.
type overlayFS struct {
	top  fs.FS
	base fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	f, err := o.top.Open(name)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return o.base.Open(name)
}

// Validate checks the bundle and returns every problem found, joined.
func (b *Bundle) Validate() error {
	var errs []error
	errs = append(errs, b.Tutorial.validate()...)
	errs = append(errs, b.Git.validate(GitFile)...)
	errs = append(errs, b.Terminal.validate(TerminalFile)...)
	// Copy results are routed to a panel by catalog ID.
	if b.Git.ID != "" && b.Git.ID == b.Terminal.ID {
		errs = append(errs, fmt.Errorf("%s and %s: id %q is used by both catalogs", GitFile, TerminalFile, b.Git.ID))
	}
	if b.UseCase.Title == "" {
		errs = append(errs, fmt.Errorf("%s: title is required", UseCaseFile))
	}
	for i, p := range b.UseCase.Plan {
		if p.Minutes < 0 {
			errs = append(errs, fmt.Errorf("%s: plan[%d] %q: minutes must not be negative", UseCaseFile, i, p.Title))
		}
	}
	return errors.Join(errs...)
}

func (t *Tutorial) validate() []error {
	if len(t.Steps) == 0 {
		return []error{fmt.Errorf("%s: %w", StepsFile, ErrNoSteps)}
	}
	var errs []error
	for i, s := range t.Steps {
		if s.Title == "" {
			errs = append(errs, fmt.Errorf("%s: steps[%d]: title is required", StepsFile, i))
		}
		if s.EstimatedTime < 0 {
			errs = append(errs, fmt.Errorf("%s: steps[%d] %q: estimated_time must not be negative", StepsFile, i, s.Title))
		}
		if s.Content == "" && s.Guide == "" {
			errs = append(errs, fmt.Errorf("%s: steps[%d] %q: content or guide is required", StepsFile, i, s.Title))
		}
	}
	return errs
}

func (c *Catalog) validate(file string) []error {
	var errs []error
	if c.ID == "" {
		errs = append(errs, fmt.Errorf("%s: id is required", file))
	}
	if c.Title == "" {
		errs = append(errs, fmt.Errorf("%s: title is required", file))
	}
	declared := make(map[string]bool, len(c.Tags))
	for _, t := range c.Tags {
		if t.Tag == "" {
			errs = append(errs, fmt.Errorf("%s: tag with label %q has no name", file, t.Label))
			continue
		}
		if declared[t.Tag] {
			errs = append(errs, fmt.Errorf("%s: tag %q declared twice", file, t.Tag))
		}
		declared[t.Tag] = true
	}
	for i, cmd := range c.Commands {
		if cmd.Command == "" {
			errs = append(errs, fmt.Errorf("%s: commands[%d]: command is required", file, i))
		}
		if cmd.Category == "" {
			errs = append(errs, fmt.Errorf("%s: commands[%d] %q: category is required", file, i, cmd.Command))
		}
		if cmd.Tag != "" && !declared[cmd.Tag] {
			errs = append(errs, fmt.Errorf("%s: commands[%d] %q: tag %q is not declared", file, i, cmd.Command, cmd.Tag))
		}
		if !cmd.OS.valid() {
			errs = append(errs, fmt.Errorf("%s: commands[%d] %q: os %q must be mac, windows or both", file, i, cmd.Command, cmd.OS))
		}
	}
	return errs
}

// Files lists the bundle file names in load order.
func Files() []string {
	return []string{StepsFile, GitFile, TerminalFile, UseCaseFile}
}

// ExportDefaults writes the embedded content files into dir so they can be
// edited and passed back with --content. Existing files are left alone
// unless overwrite is set.
func ExportDefaults(dir string, overwrite bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	var written []string
	for _, name := range Files() {
		dst := filepath.Join(dir, name)
		if !overwrite {
			if _, err := os.Stat(dst); err == nil {
				continue
			}
		}
		data, err := embedded.ReadFile("data/" + name)
		if err != nil {
			return written, err
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", dst, err)
		}
		written = append(written, dst)
	}
	return written, nil
}
