package domain

import "fmt"

// BufferType classifies how an endpoint's storage scales with the data
// fed through the network. All producers sharing a hub must agree on it.
// The int backing gives the total order used to sort hubs.
type BufferType int

const (
	// BufferGlobal is allocated once per network (parameters, constants).
	BufferGlobal BufferType = iota
	// BufferBatch scales with the number of samples in a batch.
	BufferBatch
	// BufferSequence scales with sequence length times batch size.
	BufferSequence
)

func (b BufferType) String() string {
	switch b {
	case BufferGlobal:
		return "global"
	case BufferBatch:
		return "batch"
	case BufferSequence:
		return "sequence"
	default:
		return fmt.Sprintf("BufferType(%d)", int(b))
	}
}
