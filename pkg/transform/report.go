package transform

// FailureKind classifies why a macro was left unexecuted.
type FailureKind int

const (
	// FailureUnknownMacro: no registry entry for the identifier.
	FailureUnknownMacro FailureKind = iota
	// FailureExecution: the implementation returned an error or panicked.
	FailureExecution
	// FailureRecursionLimit: the macro sits at the maximum depth. This is a
	// policy outcome rather than an error.
	FailureRecursionLimit
)

func (k FailureKind) String() string {
	switch k {
	case FailureUnknownMacro:
		return "unknown-macro"
	case FailureExecution:
		return "execution"
	case FailureRecursionLimit:
		return "recursion-limit"
	default:
		return "unknown"
	}
}

// Failure describes one macro left in the tree.
type Failure struct {
	Kind    FailureKind
	MacroID string
	Depth   int
	Err     error
}

// IsError reports whether f is an error. A macro stopped at the depth limit
// is a policy outcome and is not.
func (f Failure) IsError() bool {
	return f.Kind != FailureRecursionLimit
}

// Report summarizes a transformation run.
type Report struct {
	// Passes is the number of passes that executed at least one macro.
	Passes   int
	Executed int
	Failures []Failure
}

func (r *Report) add(f Failure) {
	r.Failures = append(r.Failures, f)
}

// HasFailures reports whether any macro was left unexecuted.
func (r *Report) HasFailures() bool {
	return len(r.Failures) > 0
}

// Errors returns the failures that are errors, in the order they occurred.
func (r *Report) Errors() []Failure {
	var out []Failure
	for _, f := range r.Failures {
		if f.IsError() {
			out = append(out, f)
		}
	}
	return out
}

// Count returns the number of failures of kind k.
func (r *Report) Count(k FailureKind) int {
	n := 0
	for _, f := range r.Failures {
		if f.Kind == k {
			n++
		}
	}
	return n
}
