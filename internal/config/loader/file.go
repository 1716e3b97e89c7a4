package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// IncludeKey lists files merged underneath the including file.
const IncludeKey = "@include"

// MaxIncludeDepth bounds nested includes.
const MaxIncludeDepth = 8

// ErrIncludeDepth is returned when includes nest deeper than MaxIncludeDepth.
var ErrIncludeDepth = errors.New("include depth exceeded")

// Format is a configuration file syntax.
type Format struct {
	Name      string
	Unmarshal func(data []byte, v any) error
}

// Supported formats.
var (
	TOML = Format{Name: "toml", Unmarshal: toml.Unmarshal}
	YAML = Format{Name: "yaml", Unmarshal: yaml.Unmarshal}
)

// FileLoader loads a configuration file and the files it includes.
type FileLoader struct {
	fs     FileSystem
	path   string
	format Format
}

// NewFileLoader creates a loader for path in the given format.
func NewFileLoader(fsys FileSystem, path string, format Format) *FileLoader {
	if fsys == nil {
		fsys = DefaultFS()
	}
	return &FileLoader{fs: fsys, path: path, format: format}
}

// Path returns the loaded path.
func (l *FileLoader) Path() string { return l.path }

// Load implements Loader. Included files are loaded first so that the
// including file overrides them.
func (l *FileLoader) Load() (map[string]any, error) {
	return l.load(l.path, MaxIncludeDepth)
}

func (l *FileLoader) load(path string, depth int) (map[string]any, error) {
	if depth <= 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrIncludeDepth)
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	config, err := l.parse(path, data)
	if err != nil {
		return nil, err
	}
	if config == nil {
		config = make(map[string]any)
	}

	includes, err := includeList(config[IncludeKey])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	delete(config, IncludeKey)

	base := filepath.Dir(path)
	merged := make(map[string]any)
	for _, inc := range includes {
		if !filepath.IsAbs(inc) {
			inc = filepath.Join(base, inc)
		}
		incLoader := l
		if f, err := FormatFor(inc); err == nil {
			incLoader = NewFileLoader(l.fs, inc, f)
		}
		incConfig, err := incLoader.load(inc, depth-1)
		if err != nil {
			return nil, fmt.Errorf("loading include %s: %w", inc, err)
		}
		merged = DeepMerge(merged, incConfig)
	}
	return DeepMerge(merged, config), nil
}

func (l *FileLoader) parse(path string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := l.format.Unmarshal(data, &config); err != nil {
		perr := &ParseError{Path: path, Format: l.format.Name, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	return normalize(config), nil
}

func includeList(v any) ([]string, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s must be a string or a list of strings", IncludeKey)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%s must be a string or a list of strings, got %T", IncludeKey, v)
}

// normalize converts YAML's int values to int64 so that both formats
// produce the same map types.
func normalize(m map[string]any) map[string]any {
	for k, v := range m {
		m[k] = normalizeValue(v)
	}
	return m
}

func normalizeValue(v any) any {
	switch v := v.(type) {
	case int:
		return int64(v)
	case map[string]any:
		return normalize(v)
	case []any:
		for i := range v {
			v[i] = normalizeValue(v[i])
		}
		return v
	}
	return v
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Format  string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("%s parse error in %s at line %d, column %d: %s", e.Format, e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s parse error in %s: %s", e.Format, e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
