package domain

// ForcedOrder is a group of endpoint paths that must occupy contiguous,
// order-preserving positions wherever their hub places them (a layer's
// full parameter block, or its internal-state block).
//
// Groups carry a stable integer ID assigned at extraction time; set
// membership comparisons use the ID, never object identity.
type ForcedOrder struct {
	ID    int      `json:"id"`
	Paths []string `json:"paths"`
}

// Contains reports whether path is a member of the group.
func (f ForcedOrder) Contains(path string) bool {
	for _, p := range f.Paths {
		if p == path {
			return true
		}
	}
	return false
}
