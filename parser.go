// Package formula validates statistical model formulas of the form
// "response ~ predictors" against a dataset's known-variable set. It is
// a pure function library: no shared state, no I/O, safe to call on
// every keystroke. All problems are returned as data on the Diagnostic,
// never as Go errors, so any input yields a complete result.
package formula

import (
	"strings"

	"github.com/statbox/formula/schema"
)

const syntaxErrMsg = "formula must contain exactly one '~' separator"

// Parse validates input against the known-variable set and returns the
// aggregated diagnostic. A nil VarSet skips the membership check only;
// character and numeric-literal checks always run.
func Parse(input string, vars *schema.VarSet) Diagnostic {
	d := Diagnostic{Input: input}

	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		// Nothing to validate yet. Not an error.
		return d
	}

	parts := strings.Split(trimmed, "~")
	if len(parts) != 2 {
		d.HasErrors = true
		d.HasSyntaxErrors = true
		d.SyntaxErrors = append(d.SyntaxErrors, syntaxErrMsg)
		return d
	}

	lhs := strings.TrimSpace(parts[0])
	rhs := strings.TrimSpace(parts[1])

	var results []termResult

	// The left side is the response and is never an interaction; it is
	// validated as one simple term. It is also never dropped from the
	// fixed equation, only flagged, so a corrected formula always keeps
	// its response variable.
	if lhs != "" {
		results = append(results, checkSimpleTerm(lhs, vars))
	}

	rhsStart := len(results)
	for _, term := range splitTerms(rhs) {
		results = append(results, checkTerm(term, vars))
	}

	var fixedTerms []string
	for _, res := range results[rhsStart:] {
		// A bare "*" decomposes to zero components; like a stray "+",
		// it is dropped silently rather than reconstructed as an empty
		// term.
		if res.valid && res.fixed != "" {
			fixedTerms = append(fixedTerms, res.fixed)
		}
	}

	for _, res := range results {
		if !res.valid {
			d.HasErrors = true
		}
		if len(res.unknownMsgs) > 0 {
			d.HasUnknownVars = true
			d.UnknownVarErrors = append(d.UnknownVarErrors, res.unknownMsgs...)
		}
		if len(res.invalidMsgs) > 0 {
			d.HasInvalidElements = true
			d.InvalidElementErrors = append(d.InvalidElementErrors, res.invalidMsgs...)
		}
		d.UnknownVars = append(d.UnknownVars, res.unknown...)
	}
	d.UnknownVars = dedupe(d.UnknownVars)

	if vars != nil {
		d.Suggestions = suggest(d.UnknownVars, vars)
	}

	d.FixedEquation = lhs + " ~ " + strings.Join(fixedTerms, " + ")
	d.TermCount = len(fixedTerms)

	return d
}

// AnalyzeErrors is an alias for Parse, retained for call sites in the
// host UI that use the analyze naming.
func AnalyzeErrors(input string, vars *schema.VarSet) Diagnostic {
	return Parse(input, vars)
}
