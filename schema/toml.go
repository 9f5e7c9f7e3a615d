package schema

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// tomlSchema is the on-disk layout of a .toml schema file:
//
//	dataset = "study1"
//
//	[variables]
//	y  = "numeric"
//	x1 = "numeric"
//	m  = "categorical"
type tomlSchema struct {
	Dataset   string            `toml:"dataset"`
	Variables map[string]string `toml:"variables"`
}

// LoadTOML reads a variable schema from a TOML file. Variables keep the
// order they appear in the file, taken from the decoder metadata since
// the decoded map has no order of its own.
func LoadTOML(path string) (*VarSet, error) {
	var f tomlSchema
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("parsing schema file: %w", err)
	}
	if len(f.Variables) == 0 {
		return nil, fmt.Errorf("schema file %s has no [variables] table", path)
	}

	vs := New()
	for _, key := range md.Keys() {
		if len(key) != 2 || key[0] != "variables" {
			continue
		}
		name := key[1]
		vs.Add(name, ParseColumnType(f.Variables[name]))
	}
	return vs, nil
}
