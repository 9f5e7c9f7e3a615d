package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCSVHeader(t *testing.T) {
	csv := "y,x1,group\n1.5,3,control\n2.0,4,treated\n"

	vs, err := FromCSVHeader(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, []string{"y", "x1", "group"}, vs.Names())
	assert.Equal(t, Numeric, vs.TypeOf("y"))
	assert.Equal(t, Numeric, vs.TypeOf("x1"))
	assert.Equal(t, Categorical, vs.TypeOf("group"))
}

func TestFromCSVHeaderOnly(t *testing.T) {
	vs, err := FromCSVHeader(strings.NewReader("y,x1\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"y", "x1"}, vs.Names())
	assert.Equal(t, Unknown, vs.TypeOf("y"))
}

func TestFromCSVEmptyInput(t *testing.T) {
	vs, err := FromCSVHeader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, vs.Len())
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.toml")
	content := `dataset = "study1"

[variables]
y = "numeric"
x1 = "numeric"
m = "categorical"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	vs, err := LoadTOML(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"y", "x1", "m"}, vs.Names(), "file order is preserved")
	assert.Equal(t, Categorical, vs.TypeOf("m"))
}

func TestLoadTOMLWithoutVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.toml")
	require.NoError(t, os.WriteFile(path, []byte(`dataset = "empty"`), 0o644))

	_, err := LoadTOML(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no [variables] table")
}

func TestLoadJSON(t *testing.T) {
	doc := `{
  "dataset": "study1",
  "variables": [
    {"name": "y", "type": "numeric"},
    {"name": "x1", "type": "numeric"},
    {"name": "m", "type": "categorical"}
  ]
}`

	vs, err := LoadJSON(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"y", "x1", "m"}, vs.Names())
	assert.Equal(t, Numeric, vs.TypeOf("x1"))
	assert.Equal(t, Categorical, vs.TypeOf("m"))
}

func TestLoadJSONRejectsMalformedDocument(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing variables", `{"dataset": "x"}`},
		{"bad type tag", `{"variables": [{"name": "y", "type": "text"}]}`},
		{"empty name", `{"variables": [{"name": ""}]}`},
		{"not json", `{{{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadJSON(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadJSONUntypedVariables(t *testing.T) {
	vs, err := LoadJSON(strings.NewReader(`{"variables": [{"name": "y"}]}`))
	require.NoError(t, err)
	assert.Equal(t, Unknown, vs.TypeOf("y"))
}
