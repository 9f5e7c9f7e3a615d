// Package schema models the column schema of the currently selected
// dataset: the set of variable names a formula may reference, plus an
// optional per-column type tag carried through to the analysis backend.
package schema

// ColumnType tags a dataset column for the downstream analysis layer.
// The formula validator never branches on it; it only travels with the
// variable set so callers can hand both to the backend in one piece.
type ColumnType int

const (
	Unknown ColumnType = iota
	Numeric
	Categorical
)

func (t ColumnType) String() string {
	switch t {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// ParseColumnType maps a schema-file tag to a ColumnType. Unrecognized
// tags map to Unknown rather than erroring, so older schema files with
// extra tags keep loading.
func ParseColumnType(s string) ColumnType {
	switch s {
	case "numeric":
		return Numeric
	case "categorical":
		return Categorical
	default:
		return Unknown
	}
}

// VarSet is the known-variable set for one dataset. Insertion order is
// preserved so listings and diagnostics are deterministic. A VarSet is
// read-only from the validator's point of view; the owning caller
// replaces it wholesale when the active dataset changes.
type VarSet struct {
	names []string
	types map[string]ColumnType
}

// New builds a VarSet from variable names, all tagged Unknown.
func New(names ...string) *VarSet {
	vs := &VarSet{types: make(map[string]ColumnType, len(names))}
	for _, n := range names {
		vs.Add(n, Unknown)
	}
	return vs
}

// Add inserts a variable with its type tag. Re-adding an existing name
// updates the tag without duplicating the entry.
func (vs *VarSet) Add(name string, t ColumnType) {
	if vs.types == nil {
		vs.types = make(map[string]ColumnType)
	}
	if _, exists := vs.types[name]; !exists {
		vs.names = append(vs.names, name)
	}
	vs.types[name] = t
}

// Has reports whether name is a column of the dataset.
func (vs *VarSet) Has(name string) bool {
	if vs == nil {
		return false
	}
	_, ok := vs.types[name]
	return ok
}

// Names returns the variable names in insertion order. The returned
// slice is a copy; mutating it does not affect the set.
func (vs *VarSet) Names() []string {
	if vs == nil {
		return nil
	}
	out := make([]string, len(vs.names))
	copy(out, vs.names)
	return out
}

// TypeOf returns the type tag for name, or Unknown if the variable is
// not in the set.
func (vs *VarSet) TypeOf(name string) ColumnType {
	if vs == nil {
		return Unknown
	}
	return vs.types[name]
}

// Len returns the number of variables in the set.
func (vs *VarSet) Len() int {
	if vs == nil {
		return 0
	}
	return len(vs.names)
}
