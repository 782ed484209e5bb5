package engine

import (
	"strconv"
	"strings"
)

// DuplicatePolicy controls how repeated object keys are handled.
type DuplicatePolicy int

const (
	DupIgnore DuplicatePolicy = iota
	DupWarn
	DupError
)

// Limits configures the enforcing token source.
type Limits struct {
	Duplicates DuplicatePolicy
	MaxDepth   int // 0 disables the check
	// OnIssue receives non-fatal issues (duplicate keys under DupWarn).
	OnIssue func(IssueError)
}

// IssueError is a lightweight error carrying an issue code and JSON Pointer.
type IssueError struct {
	Code    string
	Path    string
	Message string
}

func (e IssueError) Error() string { return e.Code + " at " + e.Path + ": " + e.Message }

type frameKind int

const (
	frameObject frameKind = iota
	frameArray
)

type frame struct {
	kind      frameKind
	path      string
	keys      map[string]struct{}
	key       string // key awaiting its value
	nextIndex int
}

// Enforce returns a TokenSource that applies the duplicate key policy and the
// maximum nesting depth while tokens flow through.
func Enforce(inner TokenSource, lim Limits) TokenSource {
	return &enforcingSource{inner: inner, lim: lim}
}

type enforcingSource struct {
	inner TokenSource
	lim   Limits
	stack []frame
}

func (e *enforcingSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		p := e.valuePath()
		if e.lim.MaxDepth > 0 && len(e.stack)+1 > e.lim.MaxDepth {
			return Token{}, IssueError{Code: "parse_error", Path: pointer(p), Message: "max depth exceeded"}
		}
		f := frame{kind: frameArray, path: p}
		if tok.Kind == KindBeginObject {
			f.kind = frameObject
			f.keys = map[string]struct{}{}
		}
		e.stack = append(e.stack, f)
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
	case KindKey:
		if n := len(e.stack); n > 0 && e.stack[n-1].kind == frameObject {
			top := &e.stack[n-1]
			if _, seen := top.keys[tok.String]; seen && e.lim.Duplicates != DupIgnore {
				ie := IssueError{Code: "duplicate_key", Path: pointer(joinPointer(top.path, tok.String)), Message: "key '" + tok.String + "' duplicated"}
				if e.lim.Duplicates == DupError {
					return Token{}, ie
				}
				if e.lim.OnIssue != nil {
					e.lim.OnIssue(ie)
				}
			}
			top.keys[tok.String] = struct{}{}
			top.key = tok.String
		}
	default:
		e.valuePath()
	}
	return tok, nil
}

// valuePath returns the pointer of the value starting at the current token and
// advances the enclosing container's cursor.
func (e *enforcingSource) valuePath() string {
	n := len(e.stack)
	if n == 0 {
		return ""
	}
	top := &e.stack[n-1]
	if top.kind == frameArray {
		p := joinPointer(top.path, strconv.Itoa(top.nextIndex))
		top.nextIndex++
		return p
	}
	return joinPointer(top.path, top.key)
}

func (e *enforcingSource) Location() int64 { return e.inner.Location() }

func pointer(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinPointer(base, token string) string {
	return base + "/" + pointerEscaper.Replace(token)
}
