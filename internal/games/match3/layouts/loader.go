// Package layouts loads fixed starting boards for match-3.
// This package depends on core but core does not depend on layouts.
package layouts

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/vovakirdan/match3/internal/games/match3/core"
	"github.com/vovakirdan/match3/internal/games/match3/layouts/formats"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Layout is a fixed starting board with its spawn settings.
type Layout struct {
	ID            string
	Name          string
	Types         int
	Board         *core.Board
	SpawnDisabled []int
	Metadata      map[string]string
	FilePath      string
}

// Apply returns base with the layout's dimensions, types and spawn flags.
func (l Layout) Apply(base core.Config) core.Config {
	cfg := base
	cfg.Rows = l.Board.Rows()
	cfg.Cols = l.Board.Cols()
	cfg.TypeCount = l.Types
	cfg.SpawnColumns = make([]bool, cfg.Cols)
	for i := range cfg.SpawnColumns {
		cfg.SpawnColumns[i] = !slices.Contains(l.SpawnDisabled, i)
	}
	return cfg
}

// NewEngine builds an engine that starts from this layout.
func (l Layout) NewEngine(base core.Config, opts ...core.Option) (*core.Engine, error) {
	opts = append(opts, core.WithInitialBoard(l.Board))
	return core.New(l.Apply(base), opts...)
}

// Loader reads layout files from a filesystem.
type Loader struct {
	fsys fs.FS
	root string
}

// NewLoader creates a loader over a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{fsys: os.DirFS(root), root: root}
}

// Builtin returns a loader over the layouts compiled into the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err) // embedded path is fixed
	}
	return &Loader{fsys: sub, root: "builtin"}
}

// LoadAll recursively scans and loads all layout files.
// Invalid files are skipped. Layouts are sorted by ID.
func (l *Loader) LoadAll() ([]Layout, error) {
	var out []Layout

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		layout, err := l.LoadFile(p)
		if err != nil {
			return nil
		}
		out = append(out, layout)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", l.root, err)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// LoadFile loads a single layout file, relative to the loader root.
func (l *Loader) LoadFile(name string) (Layout, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return Layout{}, fmt.Errorf("reading file %s: %w", name, err)
	}

	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(name)))
	if err != nil {
		return Layout{}, fmt.Errorf("parsing file %s: %w", name, err)
	}

	return Layout{
		ID:            parsed.ID,
		Name:          parsed.Name,
		Types:         parsed.Types,
		Board:         parsed.Board,
		SpawnDisabled: parsed.SpawnDisabled,
		Metadata:      parsed.Metadata,
		FilePath:      path.Join(l.root, name),
	}, nil
}

// LoadByID loads a specific layout by ID.
func (l *Loader) LoadByID(id string) (Layout, error) {
	all, err := l.LoadAll()
	if err != nil {
		return Layout{}, err
	}
	for _, layout := range all {
		if layout.ID == id {
			return layout, nil
		}
	}
	return Layout{}, fmt.Errorf("layout not found: %s", id)
}

// ListIDs returns all layout IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	all, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(all))
	for i, layout := range all {
		ids[i] = layout.ID
	}
	return ids, nil
}

// Resolve finds a layout by reference: a path to a file on disk, or an ID
// searched in dir (when set) and then among the builtin layouts.
func Resolve(ref, dir string) (Layout, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return NewLoader(filepath.Dir(ref)).LoadFile(filepath.Base(ref))
	}
	if dir != "" {
		if layout, err := NewLoader(dir).LoadByID(ref); err == nil {
			return layout, nil
		}
	}
	return Builtin().LoadByID(ref)
}

func isSupportedExtension(ext string) bool {
	return slices.Contains(formats.FormatExtensions(), ext)
}

func parseByExtension(data []byte, ext string) (formats.Layout, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Layout{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
