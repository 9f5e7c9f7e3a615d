package formula

// Resolution actions. These are the three operations the host UI can
// take on a diagnostic, modeled as pure functions: each returns the
// formula string the caller should store, and none mutates the
// diagnostic. Re-parsing the returned string of AcceptFix or DropUnknown
// never reintroduces errors from terms already removed, so both actions
// are idempotent.

// AcceptFix returns the corrected formula. Used when only syntax or
// invalid-element errors exist and no unknown variables are present.
func (d Diagnostic) AcceptFix() string {
	return d.FixedEquation
}

// DropUnknown returns the corrected formula with every term touching an
// unknown variable removed. The fixed equation already excludes those
// terms, so the mechanism is identical to AcceptFix; the distinct name
// matches the distinct UI affordance.
func (d Diagnostic) DropUnknown() string {
	return d.FixedEquation
}

// ReturnToEdit hands the original input back unchanged for manual
// correction.
func (d Diagnostic) ReturnToEdit() string {
	return d.Input
}
