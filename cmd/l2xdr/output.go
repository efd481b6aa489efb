package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tempusfrangit/l2switch-xdr/l2switch"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// printer writes decoded values in one output format.
type printer struct {
	out    io.Writer
	format string
	count  int
}

func newPrinter(out io.Writer, format string) (*printer, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case formatText, "":
		return &printer{out: out, format: formatText}, nil
	case formatJSON:
		return &printer{out: out, format: formatJSON}, nil
	case formatYAML, "yml":
		return &printer{out: out, format: formatYAML}, nil
	default:
		return nil, fmt.Errorf("invalid output format: %q (valid: text, json, yaml)", format)
	}
}

// updateView is the structured form of an EndpointUpdate.
type updateView struct {
	Kind  string `json:"kind" yaml:"kind"`
	Value any    `json:"value,omitempty" yaml:"value,omitempty"`
}

// Print writes v. Several YAML values are separated by document markers.
func (p *printer) Print(v any) error {
	defer func() { p.count++ }()

	if p.format == formatText {
		_, err := fmt.Fprintln(p.out, v)
		return err
	}

	if u, ok := v.(l2switch.Update); ok {
		view := updateView{Kind: u.Discriminant().String()}
		if u.Size() > 0 {
			view.Value = u
		}
		v = view
	}

	switch p.format {
	case formatJSON:
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(p.out, string(data))
		return err
	default:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		if p.count > 0 {
			if _, err := io.WriteString(p.out, "---\n"); err != nil {
				return err
			}
		}
		_, err = p.out.Write(data)
		return err
	}
}
