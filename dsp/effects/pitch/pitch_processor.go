package pitch

// BlockProcessor is a mono in-place block processor that can be reset.
//
// Implementations must not allocate or block in ProcessBlock.
type BlockProcessor interface {
	SampleRate() float64
	Reset()
	ProcessBlock(buf []float64)
}

// OffsetShifter is a pitch shifter controlled by a pitch offset multiplier.
type OffsetShifter interface {
	BlockProcessor
	SetPitchOffset(mult float64)
}

var _ OffsetShifter = (*Jungle)(nil)
