package layout

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/schema"
)

// The tree marshals to the nested-mapping interchange format: every
// node carries a @type discriminator and @index; array leaves add
// @shape, @context_size, @slice and @hub. Attribute order and child
// order are fixed, so equal trees produce identical bytes.

const (
	typeView  = "BufferView"
	typeArray = "array"
)

// MarshalJSON implements json.Marshaler with deterministic output.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) encode(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	if n.Kind == KindView {
		fmt.Fprintf(buf, `"@type":%q,"@index":%d`, typeView, n.Index)
		for _, c := range n.ordered() {
			name, err := json.Marshal(c.name)
			if err != nil {
				return err
			}
			buf.WriteByte(',')
			buf.Write(name)
			buf.WriteByte(':')
			if err := c.node.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	}

	fmt.Fprintf(buf, `"@type":%q,"@index":%d`, typeArray, n.Index)
	if n.Shape != nil {
		attrs := n.Shape.Attrs()
		shape, err := json.Marshal(attrs["@shape"])
		if err != nil {
			return err
		}
		buf.WriteString(`,"@shape":`)
		buf.Write(shape)
		if c, ok := attrs["@context_size"]; ok {
			fmt.Fprintf(buf, `,"@context_size":%d`, c)
		}
	}
	if n.Slice != nil {
		fmt.Fprintf(buf, `,"@slice":[%d,%d]`, n.Slice.Start, n.Slice.Stop)
	}
	if n.Hub >= 0 {
		fmt.Fprintf(buf, `,"@hub":%d`, n.Hub)
	}
	buf.WriteByte('}')
	return nil
}

// UnmarshalJSON reconstructs a tree from the interchange format.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var kind string
	if err := json.Unmarshal(raw["@type"], &kind); err != nil {
		return fmt.Errorf("node @type: %w", err)
	}
	if m := raw["@index"]; m != nil {
		if err := json.Unmarshal(m, &n.Index); err != nil {
			return fmt.Errorf("node @index: %w", err)
		}
	}
	n.Hub = -1

	switch kind {
	case typeView:
		n.Kind = KindView
		n.children = make(map[string]*Node)
		for key, msg := range raw {
			if len(key) > 0 && key[0] == '@' {
				continue
			}
			child := &Node{}
			if err := json.Unmarshal(msg, child); err != nil {
				return fmt.Errorf("child %q: %w", key, err)
			}
			n.children[key] = child
		}
		return nil
	case typeArray:
		n.Kind = KindArray
		return n.decodeArrayAttrs(raw)
	default:
		return fmt.Errorf("unknown node type %q", kind)
	}
}

func (n *Node) decodeArrayAttrs(raw map[string]json.RawMessage) error {
	if m := raw["@shape"]; m != nil {
		var entries []any
		if err := json.Unmarshal(m, &entries); err != nil {
			return fmt.Errorf("node @shape: %w", err)
		}
		dims := make([]schema.Dim, len(entries))
		for i, e := range entries {
			d, err := parseDim(e)
			if err != nil {
				return err
			}
			dims[i] = d
		}
		shape := schema.New(dims...)
		if m := raw["@context_size"]; m != nil {
			var c int
			if err := json.Unmarshal(m, &c); err != nil {
				return fmt.Errorf("node @context_size: %w", err)
			}
			shape = shape.WithContext(c)
		}
		n.Shape = &shape
	}
	if m := raw["@slice"]; m != nil {
		var pair [2]int
		if err := json.Unmarshal(m, &pair); err != nil {
			return fmt.Errorf("node @slice: %w", err)
		}
		n.Slice = &domain.Slice{Start: pair[0], Stop: pair[1]}
	}
	if m := raw["@hub"]; m != nil {
		if err := json.Unmarshal(m, &n.Hub); err != nil {
			return fmt.Errorf("node @hub: %w", err)
		}
	}
	return nil
}

func parseDim(entry any) (schema.Dim, error) {
	switch v := entry.(type) {
	case string:
		switch v {
		case "B":
			return schema.Batch, nil
		case "T":
			return schema.Time, nil
		}
		return 0, fmt.Errorf("unknown shape wildcard %q", v)
	case float64:
		return schema.Dim(int(v)), nil
	default:
		return 0, fmt.Errorf("invalid shape entry %v (%T)", entry, entry)
	}
}
