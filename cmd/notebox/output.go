package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/notebox/pkg/core"
)

// render writes v in the selected --output format. text is used for the
// plain format and may be nil when v has no text rendering.
func render(w io.Writer, format string, v any, text func(io.Writer)) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	case "text", "":
		if text != nil {
			text(w)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func printNote(w io.Writer, n core.Note) {
	fmt.Fprintf(w, "# %s\n%s\n", n.Title, n.Content)
}

func parseIndex(s string) (uint64, error) {
	index, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	return index, nil
}
