// Package yamlfile loads network definitions from YAML (or JSON)
// documents into the typed netdef model.
package yamlfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/strata/pkg/netdef"
	"github.com/aretw0/strata/pkg/schema"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// document mirrors the on-disk structure. Layers and fields are lists,
// not maps: declaration order is significant for the planner.
type document struct {
	Layers []layerDoc `mapstructure:"layers"`
	Wires  []wireDoc  `mapstructure:"wires"`
}

type layerDoc struct {
	Name      string     `mapstructure:"name"`
	Inputs    []fieldDoc `mapstructure:"inputs"`
	Outputs   []fieldDoc `mapstructure:"outputs"`
	Params    []fieldDoc `mapstructure:"params"`
	Internals []fieldDoc `mapstructure:"internals"`
}

type fieldDoc struct {
	Name    string `mapstructure:"name"`
	Shape   []any  `mapstructure:"shape"`
	Context int    `mapstructure:"context"`
}

type wireDoc struct {
	From string `mapstructure:"from"` // "layer.output"
	To   string `mapstructure:"to"`   // "layer.input"
}

// LoadFile reads and parses a network definition file.
func LoadFile(path string) (*netdef.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read network definition: %w", err)
	}
	return Load(data)
}

// Load parses a network definition document. JSON is a subset of YAML,
// so both formats pass through the same decoder.
func Load(data []byte) (*netdef.Registry, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}

	var doc document
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &doc,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid network definition: %w", err)
	}

	b := netdef.NewBuilder()
	for _, l := range doc.Layers {
		lb := b.Add(l.Name)
		if err := addFields(lb.Input, l.Inputs); err != nil {
			return nil, fmt.Errorf("layer %q inputs: %w", l.Name, err)
		}
		if err := addFields(lb.Output, l.Outputs); err != nil {
			return nil, fmt.Errorf("layer %q outputs: %w", l.Name, err)
		}
		if err := addFields(lb.Param, l.Params); err != nil {
			return nil, fmt.Errorf("layer %q params: %w", l.Name, err)
		}
		if err := addFields(lb.Internal, l.Internals); err != nil {
			return nil, fmt.Errorf("layer %q internals: %w", l.Name, err)
		}
	}
	for _, w := range doc.Wires {
		srcLayer, output, err := splitPort(w.From)
		if err != nil {
			return nil, fmt.Errorf("wire from: %w", err)
		}
		dstLayer, input, err := splitPort(w.To)
		if err != nil {
			return nil, fmt.Errorf("wire to: %w", err)
		}
		b.Connect(srcLayer, output, dstLayer, input)
	}
	return b.Build()
}

func addFields(add func(string, schema.Template) *netdef.LayerBuilder, fields []fieldDoc) error {
	for _, f := range fields {
		tmpl, err := parseShape(f.Shape, f.Context)
		if err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
		add(f.Name, tmpl)
	}
	return nil
}

func parseShape(entries []any, context int) (schema.Template, error) {
	dims := make([]schema.Dim, len(entries))
	for i, e := range entries {
		switch v := e.(type) {
		case string:
			switch v {
			case "B":
				dims[i] = schema.Batch
			case "T":
				dims[i] = schema.Time
			default:
				return schema.Template{}, fmt.Errorf("unknown shape wildcard %q", v)
			}
		case int:
			dims[i] = schema.Dim(v)
		case float64:
			dims[i] = schema.Dim(int(v))
		default:
			return schema.Template{}, fmt.Errorf("invalid shape entry %v (%T)", e, e)
		}
	}
	tmpl := schema.New(dims...)
	if context != 0 {
		tmpl = tmpl.WithContext(context)
	}
	return tmpl, nil
}

func splitPort(ref string) (layer, port string, err error) {
	parts := strings.SplitN(ref, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("port reference %q is not of the form layer.port", ref)
	}
	return parts[0], parts[1], nil
}
