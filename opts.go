package gref

// Opts configures a new Graph. The zero value is not valid on its own --
// use DefaultOpts as a starting point, as fusion.DefaultOpts is used in the
// ancestor codebase.
type Opts struct {
	// K is the seed length: every k-mer the index tracks is exactly this
	// many bases. Must be in [1,32].
	K int

	// HashBucketHint sizes the initial capacity of the internal name->id
	// map. Purely a performance hint; never affects correctness.
	HashBucketHint int

	// SeqFormat selects how AppendSegment interprets its seq argument.
	SeqFormat SeqFormat

	// CopyMode selects how AppendSegment copies its input (see CopyMode;
	// neither mode adopts the caller's array). NoCopy is only valid when
	// SeqFormat is FourBitFormat.
	CopyMode CopyMode

	// IndexMode selects what Build constructs.
	IndexMode IndexMode

	// NumThreads sets how many chunks a large link or k-mer tuple sort is
	// split into for parallel sorting (see sort.go). It does not bound the
	// per-segment walk fan-out in Build. 0 means "let the implementation
	// decide" (runtime.NumCPU()).
	NumThreads int
}

// DefaultOpts holds the default configuration: k=14, a modest name-map
// hint, ASCII input copied into an owned buffer, a hashed index, and
// sorter parallelism left to the implementation.
var DefaultOpts = Opts{
	K:              14,
	HashBucketHint: 1024,
	SeqFormat:      ASCIIFormat,
	CopyMode:       Copy,
	IndexMode:      HashIndexMode,
	NumThreads:     0,
}

// validate checks the configuration-rejection rules: k must fit in [1,32],
// the one unsupported format/copy-mode combination (SeqFormat==ASCIIFormat
// with CopyMode==NoCopy) is rejected, and HashBucketHint and NumThreads
// must be non-negative. FourBitFormat is accepted with either CopyMode.
func (o Opts) validate() error {
	if o.K < 1 || o.K > 32 {
		return badParam("k must be in [1,32], got", o.K)
	}
	if o.SeqFormat == ASCIIFormat && o.CopyMode == NoCopy {
		return badParam("NoCopy is only valid with FourBitFormat input")
	}
	if o.HashBucketHint < 0 {
		return badParam("HashBucketHint must be non-negative, got", o.HashBucketHint)
	}
	if o.NumThreads < 0 {
		return badParam("NumThreads must be non-negative, got", o.NumThreads)
	}
	return nil
}
