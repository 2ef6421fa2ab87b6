// Package formats decodes level files. Each format is a Parser registered
// under the file extensions it handles.
package formats

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Level is a decoded level file. Layout rows are not interpreted here.
type Level struct {
	ID        string
	Name      string
	MoveLimit int
	Layout    []string
	Metadata  map[string]string
}

// Parser decodes one level file.
type Parser func(data []byte) (Level, error)

var parsers = map[string]Parser{
	".yaml": ParseYAML,
	".yml":  ParseYAML,
}

// ForPath returns the parser for a file name, matched on its extension.
func ForPath(name string) (Parser, bool) {
	p, ok := parsers[strings.ToLower(path.Ext(name))]
	return p, ok
}

// Extensions lists the handled extensions in sorted order.
func Extensions() []string {
	exts := make([]string, 0, len(parsers))
	for ext := range parsers {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

type yamlLevel struct {
	ID        string            `yaml:"id"`
	Name      string            `yaml:"name"`
	MoveLimit int               `yaml:"move_limit"`
	Layout    layoutRows        `yaml:"layout"`
	Metadata  map[string]string `yaml:"metadata,omitempty"`
}

// layoutRows accepts either a list of rows or one block scalar with a row per line.
type layoutRows []string

func (r *layoutRows) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		*r = nil
		for _, line := range strings.Split(strings.TrimRight(n.Value, "\n"), "\n") {
			*r = append(*r, strings.TrimRight(line, " \t"))
		}
		return nil
	case yaml.SequenceNode:
		var rows []string
		if err := n.Decode(&rows); err != nil {
			return err
		}
		*r = rows
		return nil
	}
	return fmt.Errorf("line %d: layout must be a list of rows or a block of text", n.Line)
}

// ParseYAML decodes a YAML level file. Unknown keys are rejected so typos
// don't silently drop settings.
func ParseYAML(data []byte) (Level, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var yl yamlLevel
	if err := dec.Decode(&yl); err != nil {
		if errors.Is(err, io.EOF) {
			return Level{}, errors.New("empty level file")
		}
		return Level{}, fmt.Errorf("yaml: %w", err)
	}
	if yl.ID == "" {
		return Level{}, errors.New("level has no id")
	}
	if yl.Name == "" {
		yl.Name = "Level " + yl.ID
	}

	return Level{
		ID:        yl.ID,
		Name:      yl.Name,
		MoveLimit: yl.MoveLimit,
		Layout:    yl.Layout,
		Metadata:  yl.Metadata,
	}, nil
}
