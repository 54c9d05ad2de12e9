package omr

// ScanOptions holds the per-sheet parameters of a fluent scan.
type ScanOptions struct {
	// Expected number of questions; 0 means unknown
	questions int

	// Options per question; 0 means the scanner's layout default
	options int
}

// defaultOptions returns the default scan options.
func defaultOptions() ScanOptions {
	return ScanOptions{
		questions: 0,
		options:   0,
	}
}

// clone creates a copy of ScanOptions.
func (o ScanOptions) clone() ScanOptions {
	return ScanOptions{
		questions: o.questions,
		options:   o.options,
	}
}

// request converts the options to a scanner request.
func (o ScanOptions) request() Request {
	return Request{Questions: o.questions, Options: o.options}
}
