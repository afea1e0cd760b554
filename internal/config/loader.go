package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SourceKind tells where an effective value came from.
type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceBuiltin SourceKind = "builtin"
	SourceFile    SourceKind = "file"
)

// Source locates a value. Line and Column are set for file values; Name
// names the builtin preset for builtin values.
type Source struct {
	Kind   SourceKind
	Name   string
	File   string
	Line   int
	Column int
}

// LoadResult is a validated config plus the positions of every key that
// the file set, keyed by dotted YAML path.
type LoadResult struct {
	Config  *Config
	Sources map[string]Source
	Files   []string // empty when running on defaults
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/screenplace/config.yaml,
// usually ~/.config/screenplace/config.yaml.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "screenplace", "config.yaml"), nil
}

// LoadFromPath reads path over the defaults and validates the result. A
// missing file means the defaults.
func LoadFromPath(path string) (*LoadResult, error) {
	file, err := resolve(path)
	if errors.Is(err, os.ErrNotExist) {
		return Parse("", nil)
	}
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("%s: read: %w", file, err)
	}
	return Parse(file, data)
}

// Parse decodes data over the defaults. Unknown keys are rejected. name is
// used in error positions; an empty name with no data yields the defaults.
func Parse(name string, data []byte) (*LoadResult, error) {
	res := &LoadResult{Config: DefaultConfig(), Sources: map[string]Source{}}

	if name != "" || len(data) > 0 {
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%s: parse yaml: %w", name, err)
		}

		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(res.Config); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		index := sourceIndex{file: name, out: res.Sources}
		index.walk(rootNode(&doc), "")
		if name != "" {
			res.Files = []string{name}
		}
	}

	if err := res.Config.Validate(); err != nil {
		return nil, res.locate(err)
	}
	return res, nil
}

// resolve makes path absolute and follows symlinks so errors and sources
// name the real file.
func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", err
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real, nil
	}
	return abs, nil
}

func rootNode(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0]
	}
	return doc
}

// sourceIndex records the position of every mapping value and sequence
// item under its dotted path, e.g. "static.monitors[1].bounds".
type sourceIndex struct {
	file string
	out  map[string]Source
}

func (s sourceIndex) mark(path string, n *yaml.Node) {
	s.out[path] = Source{Kind: SourceFile, File: s.file, Line: n.Line, Column: n.Column}
}

func (s sourceIndex) walk(n *yaml.Node, prefix string) {
	switch n.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			path := n.Content[i].Value
			if prefix != "" {
				path = prefix + "." + path
			}
			s.mark(path, n.Content[i+1])
			s.walk(n.Content[i+1], path)
		}
	case yaml.SequenceNode:
		if prefix != "" {
			s.mark(prefix, n)
		}
		for i, item := range n.Content {
			path := fmt.Sprintf("%s[%d]", prefix, i)
			s.mark(path, item)
			s.walk(item, path)
		}
	}
}

// lookup returns the source of path or of its nearest recorded parent.
func (r *LoadResult) lookup(path string) (Source, bool) {
	for p := path; p != ""; p = parentPath(p) {
		if src, ok := r.Sources[p]; ok {
			return src, true
		}
	}
	return Source{}, false
}

// locate attaches a file position to a ValidationError.
func (r *LoadResult) locate(err error) error {
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path == "" {
		return err
	}
	if src, ok := r.lookup(verr.Path); ok {
		verr.Source = src
	}
	return verr
}

func parentPath(path string) string {
	i := strings.LastIndexAny(path, ".[")
	if i < 0 {
		return ""
	}
	return path[:i]
}
