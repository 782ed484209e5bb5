package scidata_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scidatatool/scidata"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := scidata.Issues{
		{Path: "/name", Code: scidata.CodeTypeMismatch, Field: "name", Expected: "str"},
		{Path: "/unit", Code: scidata.CodeTypeMismatch, Field: "unit", Expected: "str"},
		{Path: "/symmetries", Code: scidata.CodeTypeMismatch, Field: "symmetries", Expected: "dict"},
		{Path: "/", Code: scidata.CodeParseError},
	}
	assert.Equal(t,
		`type_mismatch at /name (field "name", expected str); type_mismatch at /unit (field "unit", expected str); type_mismatch at /symmetries (field "symmetries", expected dict); ... (total 4)`,
		iss.Error())
	assert.Equal(t, "", scidata.Issues{}.Error())
}

func TestIssues_IsAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("open: %w", fs.ErrNotExist)
	var err error = scidata.Issues{{Code: scidata.CodeTruncated, Cause: cause}}

	assert.True(t, errors.Is(err, scidata.ErrParse))
	assert.False(t, errors.Is(err, scidata.ErrTypeMismatch))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	wrapped := fmt.Errorf("load: %w", err)
	iss, ok := scidata.AsIssues(wrapped)
	require.True(t, ok)
	assert.Equal(t, scidata.CodeTruncated, iss[0].Code)

	_, ok = scidata.AsIssues(errors.New("plain"))
	assert.False(t, ok)
	_, ok = scidata.AsIssues(nil)
	assert.False(t, ok)
}

func TestAppendIssues(t *testing.T) {
	var iss scidata.Issues
	iss = scidata.AppendIssues(iss)
	assert.NotNil(t, iss)
	assert.Empty(t, iss)
	iss = scidata.AppendIssues(iss, scidata.Issue{Code: scidata.CodeUnknownClass})
	assert.ErrorIs(t, iss, scidata.ErrUnknownClass)
}
