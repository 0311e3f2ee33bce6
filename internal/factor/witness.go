package factor

// WitnessRange is a contiguous slice [Start, End) of the witness index space
// [0, iterations) assigned to one worker of the parallel primality test.
type WitnessRange struct {
	// Start is the first witness index of the range (inclusive).
	Start int
	// End is the last witness index of the range (exclusive).
	End int
}

// Len returns the number of witness rounds in the range.
func (r WitnessRange) Len() int {
	return r.End - r.Start
}

// PartitionWitnesses splits the witness index space [0, iterations) into at
// most `workers` contiguous, disjoint ranges whose union covers the space
// exactly once. The split is balanced: range sizes differ by at most one,
// with the remainder distributed to the first ranges. The partition is
// deterministic given its inputs, so tests can predict range boundaries.
//
// Parameters:
//   - iterations: The total number of witness rounds (>= 0).
//   - workers: The requested number of workers (>= 1). If workers exceeds
//     iterations, only `iterations` non-empty ranges are produced.
//
// Returns:
//   - []WitnessRange: The ordered partition, or nil if iterations is 0.
func PartitionWitnesses(iterations, workers int) []WitnessRange {
	if iterations <= 0 || workers <= 0 {
		return nil
	}
	if workers > iterations {
		workers = iterations
	}

	base := iterations / workers
	rem := iterations % workers

	ranges := make([]WitnessRange, 0, workers)
	start := 0
	for i := 0; i < workers; i++ {
		size := base
		if i < rem {
			size++
		}
		ranges = append(ranges, WitnessRange{Start: start, End: start + size})
		start += size
	}
	return ranges
}
