package domain

import "strings"

// Section names inside a layer's buffer view.
const (
	SectionInputs     = "inputs"
	SectionOutputs    = "outputs"
	SectionParameters = "parameters"
	SectionInternals  = "internals"
)

// GlobalParameters is the root-level consumer that aggregates every
// layer parameter into one flat address space.
const GlobalParameters = "parameters"

// PortPath builds the canonical dotted path for a layer endpoint,
// e.g. PortPath("dense", SectionOutputs, "y") == "dense.outputs.y".
func PortPath(layer, section, name string) string {
	return layer + "." + section + "." + name
}

// SplitPath splits a dotted endpoint path into its segments.
func SplitPath(path string) []string {
	return strings.Split(path, ".")
}
