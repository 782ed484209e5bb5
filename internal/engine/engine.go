// Package engine turns a stream of JSON tokens into the plain map/slice values
// used as record init dicts.
package engine

import (
	"encoding/json"
	"io"
	"strconv"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string // kept as text; decoded into json.Number
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// DecodeAny builds a value tree from the token source. Objects become
// map[string]any, arrays []any and numbers json.Number. The source must hold
// exactly one value: anything after it is a trailing_data issue, and a token
// out of place is a parse_error at the pointer of the enclosing value.
func DecodeAny(src TokenSource) (any, error) {
	d := &decoder{src: src}
	tok, err := d.next()
	if err != nil {
		return nil, err
	}
	v, err := d.value(tok, "")
	if err != nil {
		return nil, err
	}
	switch _, err := src.NextToken(); {
	case err == io.EOF:
		return v, nil
	case err != nil:
		return nil, IssueError{Code: "trailing_data", Path: "/", Message: "invalid data after root value: " + err.Error()}
	default:
		return nil, IssueError{Code: "trailing_data", Path: "/", Message: "more than one value at root"}
	}
}

type decoder struct {
	src TokenSource
}

// next reads a token that must exist; running out of input mid-value is
// io.ErrUnexpectedEOF.
func (d *decoder) next() (Token, error) {
	tok, err := d.src.NextToken()
	if err == io.EOF {
		return Token{}, io.ErrUnexpectedEOF
	}
	return tok, err
}

func (d *decoder) value(tok Token, path string) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		return d.object(path)
	case KindBeginArray:
		return d.array(path)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return json.Number(tok.Number), nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, unexpected(tok, path)
	}
}

func (d *decoder) object(path string) (map[string]any, error) {
	m := make(map[string]any)
	for {
		tok, err := d.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndObject {
			return m, nil
		}
		if tok.Kind != KindKey {
			return nil, unexpected(tok, path)
		}
		vt, err := d.next()
		if err != nil {
			return nil, err
		}
		v, err := d.value(vt, joinPointer(path, tok.String))
		if err != nil {
			return nil, err
		}
		m[tok.String] = v
	}
}

func (d *decoder) array(path string) ([]any, error) {
	arr := []any{}
	for {
		tok, err := d.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := d.value(tok, joinPointer(path, strconv.Itoa(len(arr))))
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

var kindNames = [...]string{
	KindBeginObject: "'{'",
	KindEndObject:   "'}'",
	KindBeginArray:  "'['",
	KindEndArray:    "']'",
	KindKey:         "object key",
	KindString:      "string",
	KindNumber:      "number",
	KindBool:        "bool",
	KindNull:        "null",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

func unexpected(tok Token, path string) IssueError {
	return IssueError{Code: "parse_error", Path: pointer(path), Message: "unexpected " + tok.Kind.String()}
}
