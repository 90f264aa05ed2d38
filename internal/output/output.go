package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mj1618/grabtext/internal/model"
	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatYAML, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use yaml or json)", s)
	}
}

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// Writer is where Print writes. Tests replace it.
var Writer io.Writer = os.Stdout

// GrabResult is the output of `grab` and of the daemon's print action.
type GrabResult struct {
	OK     bool        `yaml:"ok"               json:"ok"`
	Action string      `yaml:"action"           json:"action"`
	Point  model.Point `yaml:"point"            json:"point"`
	Text   string      `yaml:"text"             json:"text"`
	Rect   model.Rect  `yaml:"rect"             json:"rect"`
	Copied bool        `yaml:"copied,omitempty" json:"copied,omitempty"`
	Image  string      `yaml:"image,omitempty"  json:"image,omitempty"`
}

// NewGrabResult wraps a resolution. OK is false for the empty result.
func NewGrabResult(action string, p model.Point, res model.ResolvedText) GrabResult {
	return GrabResult{
		OK:     !res.IsEmpty(),
		Action: action,
		Point:  p,
		Text:   res.Text,
		Rect:   res.Rect,
	}
}

// Print serializes v to Writer in the current output format.
func Print(v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		return PrintJSON(Writer, v, PrettyOutput)
	case FormatYAML:
		return PrintYAML(Writer, v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// PrintJSON serializes v as JSON, indented when pretty is set.
func PrintJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// PrintYAML serializes v as YAML.
func PrintYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
