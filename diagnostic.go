package formula

import (
	"fmt"
	"strings"
)

// ErrorKind categorizes the problems a formula can have. All three are
// non-fatal: every input, however malformed, still produces a complete
// Diagnostic.
type ErrorKind int

const (
	ErrSyntax         ErrorKind = iota // malformed top-level structure (separator count)
	ErrUnknownVar                      // term names a variable not in the dataset
	ErrInvalidElement                  // term contains disallowed characters or numeric literals
)

func (k ErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "syntax error"
	case ErrUnknownVar:
		return "unknown variable"
	case ErrInvalidElement:
		return "invalid element"
	default:
		return "error"
	}
}

// Diagnostic is the immutable result of validating one formula. It
// aggregates every detectable problem in one pass so a caller can show
// a complete diagnosis instead of a sequence of single-error prompts.
type Diagnostic struct {
	// Input is the formula exactly as the caller supplied it.
	Input string

	HasErrors          bool
	HasSyntaxErrors    bool
	HasUnknownVars     bool
	HasInvalidElements bool

	SyntaxErrors         []string
	UnknownVarErrors     []string
	InvalidElementErrors []string

	// UnknownVars lists each unknown variable name once, in order of
	// first occurrence across the LHS and RHS.
	UnknownVars []string

	// Suggestions maps an unknown variable to the closest known
	// variable by fuzzy ranking. Absent when nothing ranks.
	Suggestions map[string]string

	// FixedEquation is the formula rebuilt from only the terms that
	// passed validation, "<lhs> ~ <terms joined by ' + '>". The LHS is
	// never dropped, only flagged.
	FixedEquation string

	// TermCount is the number of RHS terms that passed validation.
	TermCount int
}

// Messages returns the message list for one error category.
func (d Diagnostic) Messages(kind ErrorKind) []string {
	switch kind {
	case ErrSyntax:
		return d.SyntaxErrors
	case ErrUnknownVar:
		return d.UnknownVarErrors
	case ErrInvalidElement:
		return d.InvalidElementErrors
	default:
		return nil
	}
}

// Summary renders a one-line status for the diagnostic: the validated
// term count on success, or the error lines joined for display.
func (d Diagnostic) Summary() string {
	if !d.HasErrors {
		if d.TermCount == 1 {
			return "validated 1 term"
		}
		return fmt.Sprintf("validated %d terms", d.TermCount)
	}
	var lines []string
	lines = append(lines, d.SyntaxErrors...)
	lines = append(lines, d.UnknownVarErrors...)
	lines = append(lines, d.InvalidElementErrors...)
	return strings.Join(lines, "; ")
}
