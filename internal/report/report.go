// Package report builds deterministic analysis documents from the catalog
// and renders them as JSON, YAML or Markdown. Builders take the timestamp
// as an argument, so output for a fixed catalog and clock is byte-stable.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ParseFormat maps a CLI flag value onto a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML, FormatMarkdown:
		return Format(s), nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown report format %q", s)
	}
}

// Marker is implemented by documents that can render themselves as
// Markdown; JSON and YAML come from struct tags.
type Marker interface {
	Markdown(w io.Writer) error
}

// Render writes the document in the requested format.
func Render(w io.Writer, format Format, doc any) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		return nil
	case FormatYAML:
		data, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		return nil
	case FormatMarkdown:
		m, ok := doc.(Marker)
		if !ok {
			return fmt.Errorf("report %T has no markdown rendering", doc)
		}
		return m.Markdown(w)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// stamp normalizes report timestamps to whole seconds UTC so the same
// instant renders identically across formats.
func stamp(now time.Time) time.Time {
	return now.UTC().Truncate(time.Second)
}
