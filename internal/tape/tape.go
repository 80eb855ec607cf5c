// Package tape provides tape sources for the fast loader. A source yields
// the data blocks of a tape container one at a time, in order. Each block
// is the raw bytes that a real Spectrum would have read from the tape: a
// type byte, the payload, and a trailing checksum byte.
package tape

// Source produces the blocks of an attached tape. Once exhausted a source
// stays exhausted; starting over means building a new source from the
// container bytes.
type Source interface {
	// NextBlock returns the next data block, or ok=false once the tape has
	// run out.
	NextBlock() (block []byte, ok bool)
}
