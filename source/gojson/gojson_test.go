package gojson_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eng "github.com/scidatatool/scidata/internal/engine"
	"github.com/scidatatool/scidata/source/gojson"
)

func collect(t *testing.T, src eng.TokenSource) []eng.Token {
	t.Helper()
	var out []eng.Token
	for {
		tok, err := src.NextToken()
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err)
		out = append(out, tok)
	}
}

func kinds(toks []eng.Token) []eng.Kind {
	out := make([]eng.Kind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}
	return out
}

func TestNextToken_KeysAndValues(t *testing.T) {
	toks := collect(t, gojson.NewBytes([]byte(`{"name":"values","values":["a",1.5,{"k":"v"}],"ok":false,"n":null}`)))
	assert.Equal(t, []eng.Kind{
		eng.KindBeginObject,
		eng.KindKey, eng.KindString,
		eng.KindKey, eng.KindBeginArray, eng.KindString, eng.KindNumber,
		eng.KindBeginObject, eng.KindKey, eng.KindString, eng.KindEndObject,
		eng.KindEndArray,
		eng.KindKey, eng.KindBool,
		eng.KindKey, eng.KindNull,
		eng.KindEndObject,
	}, kinds(toks))

	assert.Equal(t, "name", toks[1].String)
	assert.Equal(t, "values", toks[2].String, "a string value equal to a key name stays a value")
	assert.Equal(t, "1.5", toks[6].Number)
	assert.Equal(t, int64(-1), toks[0].Offset)
}

func TestNextToken_KeyAfterNestedContainer(t *testing.T) {
	toks := collect(t, gojson.NewReader(strings.NewReader(`{"a":{"b":[]},"c":"d"}`)))
	require.Len(t, toks, 10)
	assert.Equal(t, eng.KindKey, toks[7].Kind)
	assert.Equal(t, "c", toks[7].String)
	assert.Equal(t, eng.KindString, toks[8].Kind)
}

func TestLocation_Unknown(t *testing.T) {
	assert.Equal(t, int64(-1), gojson.NewBytes([]byte(`{}`)).Location())
}
