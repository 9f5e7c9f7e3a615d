package formula

import (
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/statbox/formula/schema"
)

// suggest pairs each unknown variable with the closest known variable by
// fuzzy ranking, so the caller's UI can offer a replacement instead of a
// bare "unknown" message. Unknowns with no plausible match get no entry.
func suggest(unknowns []string, vars *schema.VarSet) map[string]string {
	if len(unknowns) == 0 || vars.Len() == 0 {
		return nil
	}

	candidates := vars.Names()
	out := make(map[string]string, len(unknowns))
	for _, name := range unknowns {
		if match := closestMatch(name, candidates); match != "" {
			out[name] = match
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// closestMatch returns the candidate with the lowest fuzzy distance to
// target, or "" when nothing ranks at all.
func closestMatch(target string, candidates []string) string {
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) == 0 {
		return ""
	}
	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}
	return best.Target
}
