package formula

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/statbox/formula/schema"
)

// invalidCharPattern matches any character outside the permitted set for
// formula terms. The permitted set mirrors what model syntax can carry:
// identifiers plus the operator and grouping characters of the formula
// notation itself.
var invalidCharPattern = regexp.MustCompile(`[^A-Za-z0-9_ .\-()\[\]+*:~^$|/?]`)

// numericLiteralPattern matches a standalone integer or decimal token.
// Word-boundary delimited, so the digits inside an identifier like x1
// do not match.
var numericLiteralPattern = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)

// termResult is the outcome of validating one term (or one interaction
// component). A term is valid only when none of the three checks fired.
type termResult struct {
	raw     string
	fixed   string // canonical reconstruction, used only when valid
	valid   bool
	unknown []string // unknown variable names, in order of occurrence

	unknownMsgs []string
	invalidMsgs []string
}

// splitTerms decomposes one side of a formula into its +-delimited
// terms. Pieces are trimmed and empty pieces dropped, so consecutive or
// trailing + signs are tolerated rather than reported.
func splitTerms(side string) []string {
	var terms []string
	for _, piece := range strings.Split(side, "+") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		terms = append(terms, piece)
	}
	return terms
}

// checkTerm validates a single term, dispatching interactions (terms
// containing *) to checkInteraction.
func checkTerm(term string, vars *schema.VarSet) termResult {
	if strings.Contains(term, "*") {
		return checkInteraction(term, vars)
	}
	return checkSimpleTerm(term, vars)
}

// checkSimpleTerm runs the three independent checks on a trimmed term:
// disallowed characters, embedded numeric literals, and membership in
// the known-variable set. The checks accumulate; none short-circuits,
// so one pass reports every applicable problem.
func checkSimpleTerm(term string, vars *schema.VarSet) termResult {
	res := termResult{raw: term, fixed: term, valid: true}

	if bad := invalidCharPattern.FindAllString(term, -1); len(bad) > 0 {
		res.valid = false
		res.invalidMsgs = append(res.invalidMsgs,
			fmt.Sprintf("term %q contains invalid characters: %s", term, strings.Join(dedupe(bad), ", ")))
	}

	if nums := numericLiteralPattern.FindAllString(term, -1); len(nums) > 0 {
		res.valid = false
		res.invalidMsgs = append(res.invalidMsgs,
			fmt.Sprintf("term %q contains numeric literals: %s", term, strings.Join(nums, ", ")))
	}

	if vars != nil && !vars.Has(term) {
		res.valid = false
		res.unknown = append(res.unknown, term)
		res.unknownMsgs = append(res.unknownMsgs,
			fmt.Sprintf("unknown variable %q", term))
	}

	return res
}

// checkInteraction validates an interaction term by running the simple
// checks on each *-delimited component. The interaction is valid only
// if every component is; a partial interaction is never retained, so a
// single bad component drops the whole term from the fixed equation.
func checkInteraction(term string, vars *schema.VarSet) termResult {
	res := termResult{raw: term, valid: true}

	var components []string
	for _, c := range strings.Split(term, "*") {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		components = append(components, c)
	}

	for _, c := range components {
		sub := checkSimpleTerm(c, vars)
		if !sub.valid {
			res.valid = false
		}
		res.unknown = append(res.unknown, sub.unknown...)
		res.unknownMsgs = append(res.unknownMsgs, tagInteraction(sub.unknownMsgs, term)...)
		res.invalidMsgs = append(res.invalidMsgs, tagInteraction(sub.invalidMsgs, term)...)
	}

	res.fixed = strings.Join(components, "*")
	return res
}

// tagInteraction suffixes component-level messages with the interaction
// they came from, so the caller can tell which term an offending
// variable belongs to.
func tagInteraction(msgs []string, term string) []string {
	if len(msgs) == 0 {
		return nil
	}
	tagged := make([]string, len(msgs))
	for i, m := range msgs {
		tagged[i] = fmt.Sprintf("%s (in interaction %q)", m, term)
	}
	return tagged
}

// dedupe removes duplicates while preserving first-seen order.
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, it := range items {
		if seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}
