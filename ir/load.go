package ir

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of an IR document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf guesses the document format from a file name.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	default:
		return "", false
	}
}

// LoadFile reads one service document.
func LoadFile(path string) (*Service, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, fmt.Errorf("unsupported IR file %s: want .json, .yaml or .yml", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read IR: %w", err)
	}
	svc, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	svc.setFile(path)
	return svc, nil
}

// Parse decodes a service document.
func Parse(data []byte, format Format) (*Service, error) {
	var svc Service
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&svc); err != nil {
			return nil, err
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&svc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	if svc.Name == "" {
		return nil, fmt.Errorf("service name is required")
	}
	return &svc, nil
}

func (s *Service) setFile(path string) {
	s.File = path
	for _, i := range s.Interfaces {
		i.Pos.File = path
		for _, m := range i.Methods {
			m.Pos.File = path
			for _, p := range m.Parameters {
				p.Pos.File = path
			}
		}
	}
	for _, t := range s.Types {
		t.Pos.File = path
		for _, p := range t.Properties {
			p.Pos.File = path
		}
	}
	for _, e := range s.Enums {
		e.Pos.File = path
	}
	for _, u := range s.Unions {
		u.Pos.File = path
	}
}

// decodeNode decodes node into out and records where it started.
func decodeNode[T any](node *yaml.Node, out *T, pos *Position) error {
	if err := node.Decode(out); err != nil {
		return err
	}
	*pos = Position{Line: node.Line, Column: node.Column}
	return nil
}

func (i *Interface) UnmarshalYAML(node *yaml.Node) error {
	type plain Interface
	return decodeNode(node, (*plain)(i), &i.Pos)
}

func (m *Method) UnmarshalYAML(node *yaml.Node) error {
	type plain Method
	return decodeNode(node, (*plain)(m), &m.Pos)
}

func (t *Type) UnmarshalYAML(node *yaml.Node) error {
	type plain Type
	return decodeNode(node, (*plain)(t), &t.Pos)
}

func (m *Member) UnmarshalYAML(node *yaml.Node) error {
	type plain Member
	return decodeNode(node, (*plain)(m), &m.Pos)
}

func (e *Enum) UnmarshalYAML(node *yaml.Node) error {
	type plain Enum
	return decodeNode(node, (*plain)(e), &e.Pos)
}

func (u *Union) UnmarshalYAML(node *yaml.Node) error {
	type plain Union
	return decodeNode(node, (*plain)(u), &u.Pos)
}
