package domain

// Connection declares that the consumer endpoint reads from the
// producer endpoint's memory region. Both ends are canonical dotted
// paths.
type Connection struct {
	Source string `json:"source" yaml:"source"`
	Sink   string `json:"sink" yaml:"sink"`
}

// Less orders connections lexicographically by (Source, Sink), the
// canonical order used throughout planning.
func (c Connection) Less(other Connection) bool {
	if c.Source != other.Source {
		return c.Source < other.Source
	}
	return c.Sink < other.Sink
}

// Slice is a half-open element range [Start, Stop) inside a hub buffer.
type Slice struct {
	Start int `json:"start"`
	Stop  int `json:"stop"`
}

// Len returns the number of elements covered by the slice.
func (s Slice) Len() int { return s.Stop - s.Start }
