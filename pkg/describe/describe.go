// Package describe publishes a machine-readable description of the note operations.
package describe

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind tells whether an operation reads or writes.
type Kind string

const (
	KindQuery  Kind = "query"
	KindUpdate Kind = "update"
)

// Format is an output encoding for Encode.
type Format string

const (
	FormatYAML   Format = "yaml"
	FormatJSON   Format = "json"
	FormatCandid Format = "candid"
)

// Field is a named, typed slot. Types use Candid spelling (text, nat64, opt T, vec T).
type Field struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Record describes a named record type.
type Record struct {
	Name   string  `json:"name" yaml:"name"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Binding is the HTTP rendering of an operation.
type Binding struct {
	Method string `json:"method" yaml:"method"`
	Path   string `json:"path" yaml:"path"`
}

// Operation describes one entry point.
type Operation struct {
	Name   string  `json:"name" yaml:"name"`
	Kind   Kind    `json:"kind" yaml:"kind"`
	Doc    string  `json:"doc" yaml:"doc"`
	Args   []Field `json:"args" yaml:"args"`
	Result string  `json:"result" yaml:"result"`
	HTTP   Binding `json:"http" yaml:"http"`
}

// Interface is the full description.
type Interface struct {
	Service    string      `json:"service" yaml:"service"`
	Version    string      `json:"version" yaml:"version"`
	Types      []Record    `json:"types" yaml:"types"`
	Operations []Operation `json:"operations" yaml:"operations"`
}

// Describe returns the description of the note service at the given version.
func Describe(version string) Interface {
	index := Field{Name: "index", Type: "nat64"}
	title := Field{Name: "title", Type: "text"}
	content := Field{Name: "content", Type: "text"}

	return Interface{
		Service: "notebox",
		Version: version,
		Types: []Record{
			{Name: "Note", Fields: []Field{title, content}},
		},
		Operations: []Operation{
			{
				Name:   "add",
				Kind:   KindUpdate,
				Doc:    "Append a note to the caller's sequence. Always true.",
				Args:   []Field{title, content},
				Result: "bool",
				HTTP:   Binding{Method: "POST", Path: "/v1/notes"},
			},
			{
				Name:   "list",
				Kind:   KindQuery,
				Doc:    "Return the caller's notes in insertion order.",
				Args:   []Field{},
				Result: "vec Note",
				HTTP:   Binding{Method: "GET", Path: "/v1/notes"},
			},
			{
				Name:   "get",
				Kind:   KindQuery,
				Doc:    "Return the note at index, or null when out of range.",
				Args:   []Field{index},
				Result: "opt Note",
				HTTP:   Binding{Method: "GET", Path: "/v1/notes/{index}"},
			},
			{
				Name:   "delete",
				Kind:   KindUpdate,
				Doc:    "Remove the note at index, shifting later notes down. True iff removed.",
				Args:   []Field{index},
				Result: "bool",
				HTTP:   Binding{Method: "DELETE", Path: "/v1/notes/{index}"},
			},
			{
				Name:   "edit",
				Kind:   KindUpdate,
				Doc:    "Replace title and content of the note at index; null when out of range.",
				Args:   []Field{index, {Name: "new_title", Type: "text"}, {Name: "new_content", Type: "text"}},
				Result: "opt Note",
				HTTP:   Binding{Method: "PUT", Path: "/v1/notes/{index}"},
			},
		},
	}
}

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatYAML, FormatJSON, FormatCandid:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "did":
		return FormatCandid, nil
	default:
		return "", fmt.Errorf("unknown descriptor format %q", s)
	}
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Encode writes iface to w in the given format.
func Encode(w io.Writer, iface Interface, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(iface)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(iface); err != nil {
			return err
		}
		return enc.Close()
	case FormatCandid:
		_, err := io.WriteString(w, candid(iface))
		return err
	default:
		return fmt.Errorf("unknown descriptor format %q", format)
	}
}

// candid renders iface as a Candid service definition.
func candid(iface Interface) string {
	var b strings.Builder
	for _, r := range iface.Types {
		fields := make([]string, 0, len(r.Fields))
		for _, f := range r.Fields {
			fields = append(fields, fmt.Sprintf("%s : %s", f.Name, f.Type))
		}
		fmt.Fprintf(&b, "type %s = record { %s };\n", r.Name, strings.Join(fields, "; "))
	}
	b.WriteString("service : {\n")
	for _, op := range iface.Operations {
		args := make([]string, 0, len(op.Args))
		for _, a := range op.Args {
			args = append(args, a.Type)
		}
		suffix := ""
		if op.Kind == KindQuery {
			suffix = " query"
		}
		fmt.Fprintf(&b, "  %s : (%s) -> (%s)%s;\n", op.Name, strings.Join(args, ", "), op.Result, suffix)
	}
	b.WriteString("}\n")
	return b.String()
}
