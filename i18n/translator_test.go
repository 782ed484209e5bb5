package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	msg := T("type_mismatch", map[string]string{"field": "name", "expected": "str", "got": "int"})
	assert.Equal(t, "field name expects str, got int", msg)

	SetLanguage("ja")
	defer SetLanguage("en")
	msg = T("type_mismatch", map[string]string{"field": "name", "expected": "str", "got": "int"})
	assert.Contains(t, msg, "name")
	assert.NotEqual(t, "field name expects str, got int", msg)
}

func TestTranslator_UnknownCodeFallsBackToCode(t *testing.T) {
	assert.Equal(t, "no_such_code", T("no_such_code", nil))
}

type upperTranslator struct{}

func (upperTranslator) Message(code string, _ map[string]string) string { return "X-" + code }

func TestSetTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(upperTranslator{})
	assert.Equal(t, "X-parse_error", T("parse_error", nil))

	SetTranslator(nil)
	assert.Equal(t, "parse error", T("parse_error", nil))
}
