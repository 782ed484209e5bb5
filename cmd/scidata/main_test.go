package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scidatatool/scidata"
	"github.com/scidatatool/scidata/i18n"
)

// runCLI executes a fresh command tree with an isolated HOME.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() { i18n.SetLanguage("en") })
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

const fieldJSON = `{"__class__": "Data", "symbol": "H", "name": "Field H", "unit": "A/m", "symmetries": -1}`

func TestShow(t *testing.T) {
	p := writeFile(t, "field.json", fieldJSON)

	out, _, err := runCLI(t, "show", p)
	require.NoError(t, err)
	assert.Equal(t, "parent = None\nsymbol = \"H\"\nname = \"Field H\"\nunit = \"A/m\"\nsymmetries = {}\n", out)

	out, _, err = runCLI(t, "show", "--json", p)
	require.NoError(t, err)
	assert.Contains(t, out, `"__class__": "Data"`)
	assert.Contains(t, out, `"unit": "A/m"`)
}

func TestConvert_JSONToYAML(t *testing.T) {
	in := writeFile(t, "field.json", fieldJSON)
	dst := filepath.Join(t.TempDir(), "nested", "field.yaml")

	out, _, err := runCLI(t, "convert", in, dst)
	require.NoError(t, err)
	assert.Equal(t, dst, strings.TrimSpace(out))

	raw, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "name: Field H")
	assert.Contains(t, string(raw), "__class__: Data")
}

func TestSchema(t *testing.T) {
	out, _, err := runCLI(t, "schema", "Data1D")
	require.NoError(t, err)
	assert.Contains(t, out, `"title": "Data1D"`)
	assert.Contains(t, out, `"values"`)

	_, _, err = runCLI(t, "schema", "Nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown class "Nope"`)
}

func TestValidate(t *testing.T) {
	good := writeFile(t, "good.json", fieldJSON)
	bad := writeFile(t, "bad.json", `{"__class__": "Data", "name": 42}`)

	out, _, err := runCLI(t, "validate", good)
	require.NoError(t, err)
	assert.Equal(t, good+": ok\n", out)

	_, errOut, err := runCLI(t, "validate", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files failed validation")
	assert.Contains(t, errOut, bad+": /name schema_violation")
}

func TestValidate_UnknownClass(t *testing.T) {
	p := writeFile(t, "x.json", `{"__class__": "Mystery"}`)
	_, errOut, err := runCLI(t, "validate", p)
	require.Error(t, err)
	assert.Contains(t, errOut, "unknown_class")
	assert.Contains(t, errOut, "scidata classes")
}

func TestClasses(t *testing.T) {
	out, _, err := runCLI(t, "classes")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "CLASS"))
	assert.True(t, strings.HasPrefix(lines[1], "Data "))
	assert.True(t, strings.HasPrefix(lines[2], "Data1D "))
	assert.Contains(t, lines[2], "Data")
}

func TestConfigFile_DuplicateKeys(t *testing.T) {
	cfg := writeFile(t, "cfg.yaml", "duplicate_keys: error\n")
	p := writeFile(t, "dup.json", `{"__class__": "Data", "name": "a", "name": "b"}`)

	_, _, err := runCLI(t, "--config", cfg, "show", p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate_key")

	out, _, err := runCLI(t, "show", p)
	require.NoError(t, err)
	assert.Contains(t, out, `name = "b"`)
}

func TestEnv_MaxDepth(t *testing.T) {
	p := writeFile(t, "deep.json", `{"__class__": "Data", "symmetries": {"time": {"period": 2}}}`)
	t.Setenv("SCIDATA_MAX_DEPTH", "2")
	_, _, err := runCLI(t, "show", p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse_error")
}

func TestLang_Japanese(t *testing.T) {
	p := writeFile(t, "bad.json", `{"__class__": "Data", "name": 42}`)
	_, _, err := runCLI(t, "--lang", "ja", "show", p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type_mismatch at /name")
	iss, ok := scidata.AsIssues(err)
	require.True(t, ok)
	assert.Contains(t, iss[0].Message, "フィールド name")
}
