package yamlfile

import (
	"testing"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleNetwork = `
layers:
  - name: input
    outputs:
      - {name: out, shape: [B, 4]}
  - name: dense
    inputs:
      - {name: x, shape: [B, 4]}
    outputs:
      - {name: out, shape: [B, 8]}
    params:
      - {name: W, shape: [4, 8]}
      - {name: b, shape: [8]}
  - name: rec
    inputs:
      - {name: x, shape: [B, 8]}
    internals:
      - {name: state, shape: [T, B, 8], context: 1}
wires:
  - {from: input.out, to: dense.x}
  - {from: dense.out, to: rec.x}
`

func TestLoad(t *testing.T) {
	reg, err := Load([]byte(sampleNetwork))
	require.NoError(t, err)
	require.Equal(t, 3, reg.Len())

	// Declaration order preserved.
	layers := reg.Layers()
	assert.Equal(t, "input", layers[0].Name)
	assert.Equal(t, "dense", layers[1].Name)
	assert.Equal(t, "rec", layers[2].Name)

	dense := layers[1]
	assert.Equal(t, []string{"W", "b"}, dense.Params.Names())
	w, ok := dense.Params.Get("W")
	require.True(t, ok)
	assert.Equal(t, 32, w.ElementCount())
	assert.Equal(t, domain.BufferGlobal, w.BufferType())

	rec := layers[2]
	state, ok := rec.Internals.Get("state")
	require.True(t, ok)
	assert.Equal(t, domain.BufferSequence, state.BufferType())
	assert.Equal(t, 1, state.Context())

	// Wires attach to their source layers.
	require.Len(t, layers[0].Outgoing, 1)
	assert.Equal(t, "dense", layers[0].Outgoing[0].DstLayer)
	assert.Equal(t, "x", layers[0].Outgoing[0].Input)
}

func TestLoad_JSONDocument(t *testing.T) {
	doc := `{"layers": [{"name": "a", "outputs": [{"name": "out", "shape": ["B", 2]}]}]}`
	reg, err := Load([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad wildcard", `{"layers": [{"name": "a", "outputs": [{"name": "o", "shape": ["Q"]}]}]}`},
		{"bad wire ref", `{"layers": [{"name": "a"}], "wires": [{"from": "a", "to": "a.x"}]}`},
		{"unknown key", `{"layerz": []}`},
		{"not yaml", "\t{"},
	}

	for _, tt := range tests {
		if _, err := Load([]byte(tt.doc)); err == nil {
			t.Errorf("%s: Load() should have failed", tt.name)
		}
	}
}
