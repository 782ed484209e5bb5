package scidata

import (
	"errors"
	"fmt"
	"strings"

	"github.com/scidatatool/scidata/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeTypeMismatch      = "type_mismatch"
	CodeUnknownAttribute  = "unknown_attribute"
	CodeMalformedInitDict = "malformed_init_dict"
	CodeUnknownClass      = "unknown_class"
	CodeParseError        = "parse_error"
	CodeDuplicateKey      = "duplicate_key"
	CodeTruncated         = "truncated"
	CodeTrailingData      = "trailing_data"
	CodeSchemaViolation   = "schema_violation"
)

// Sentinel errors matched by Issues.Is, so callers can write
// errors.Is(err, scidata.ErrTypeMismatch).
var (
	ErrTypeMismatch      = errors.New("scidata: type mismatch")
	ErrUnknownAttribute  = errors.New("scidata: unknown attribute")
	ErrMalformedInitDict = errors.New("scidata: malformed init dict")
	ErrUnknownClass      = errors.New("scidata: unknown class")
	ErrParse             = errors.New("scidata: parse error")
	ErrSchemaViolation   = errors.New("scidata: schema violation")
)

var sentinelByCode = map[string]error{
	CodeTypeMismatch:      ErrTypeMismatch,
	CodeUnknownAttribute:  ErrUnknownAttribute,
	CodeMalformedInitDict: ErrMalformedInitDict,
	CodeUnknownClass:      ErrUnknownClass,
	CodeParseError:        ErrParse,
	CodeDuplicateKey:      ErrParse,
	CodeTruncated:         ErrParse,
	CodeTrailingData:      ErrParse,
	CodeSchemaViolation:   ErrSchemaViolation,
}

// Issue represents a single construction or validation failure.
type Issue struct {
	Path     string // JSON Pointer of the offending value (for example: /components/radial/name).
	Code     string // One of the codes listed above.
	Field    string // Offending field name, when the issue concerns one.
	Expected string // Declared kind of the field for type_mismatch (str, dict, ...).
	Message  string
	Cause    error // Optional: underlying error.
}

// Issues is a collection of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Field != "" {
			fmt.Fprintf(b, " (field %q", it.Field)
			if it.Expected != "" {
				fmt.Fprintf(b, ", expected %s", it.Expected)
			}
			b.WriteString(")")
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Is reports whether any issue maps onto the target sentinel.
func (iss Issues) Is(target error) bool {
	for _, it := range iss {
		if s, ok := sentinelByCode[it.Code]; ok && s == target {
			return true
		}
	}
	return false
}

// Unwrap exposes the issue causes to errors.Is/As.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func typeMismatch(field string, expected Kind, got any) Issues {
	return typeMismatchAt(fieldPath(field), field, expected, got)
}

func typeMismatchAt(at pathRef, field string, expected Kind, got any) Issues {
	return Issues{{
		Path:     at.pointer(),
		Code:     CodeTypeMismatch,
		Field:    field,
		Expected: expected.String(),
		Message:  i18n.T(CodeTypeMismatch, map[string]string{"field": field, "expected": expected.String(), "got": fmt.Sprintf("%T", got)}),
	}}
}

func unknownAttribute(class, field string) Issues {
	return Issues{{
		Path:    fieldPath(field).pointer(),
		Code:    CodeUnknownAttribute,
		Field:   field,
		Message: i18n.T(CodeUnknownAttribute, map[string]string{"class": class, "field": field}),
	}}
}

func malformedInitDict(class string, got any) Issues {
	return Issues{{
		Path:    "/",
		Code:    CodeMalformedInitDict,
		Message: i18n.T(CodeMalformedInitDict, map[string]string{"class": class, "got": fmt.Sprintf("%T", got)}),
	}}
}

func unknownClassMessage(class string) string {
	return i18n.T(CodeUnknownClass, map[string]string{"class": fmt.Sprintf("%q", class)})
}

func singleIssue(code, msg string) Issues { return AppendIssues(nil, Issue{Path: "/", Code: code, Message: msg}) }

// rebase prefixes every issue path with base, the way nested components report
// their failures under the owning key.
func rebase(base string, err error) error {
	iss, ok := AsIssues(err)
	if !ok {
		return err
	}
	out := make(Issues, 0, len(iss))
	for _, it := range iss {
		p := it.Path
		switch {
		case p == "" || p == "/":
			p = base
		case p[0] == '/':
			p = base + p
		default:
			p = base + "/" + p
		}
		it.Path = p
		out = append(out, it)
	}
	return out
}

// appendErr merges err into iss, wrapping errors that are not Issues.
func appendErr(iss Issues, err error) Issues {
	if sub, ok := AsIssues(err); ok {
		return append(iss, sub...)
	}
	return append(iss, Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err})
}
