package tempearly

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func tokenTypes(t *testing.T, src string) []TokenType {
	t.Helper()
	toks, err := lex("<test>", src)
	require.NoError(t, err)
	var out []TokenType
	for _, tok := range toks {
		out = append(out, tok.Typ)
	}
	return out
}

func TestLexerTagDelimiters(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []TokenType
	}{
		{
			name: "escaped expression tag",
			src:  "{{ x }}",
			want: []TokenType{TokenTagOpenEscaped, TokenIdentifier, TokenTagCloseEscaped, TokenEOF},
		},
		{
			name: "raw expression tag",
			src:  "{! x !}",
			want: []TokenType{TokenTagOpenRaw, TokenIdentifier, TokenTagCloseRaw, TokenEOF},
		},
		{
			name: "script tag",
			src:  "{% x %}",
			want: []TokenType{TokenTagOpenScript, TokenIdentifier, TokenTagCloseScript, TokenEOF},
		},
		{
			name: "text around a tag",
			src:  "a{{ x }}b",
			want: []TokenType{TokenText, TokenTagOpenEscaped, TokenIdentifier, TokenTagCloseEscaped, TokenText, TokenEOF},
		},
		{
			name: "comment is dropped",
			src:  "a{# not emitted #}b",
			want: []TokenType{TokenText, TokenText, TokenEOF},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tokenTypes(t, tc.src))
		})
	}
}

func TestLexerLiterals(t *testing.T) {
	toks, err := lex("<test>", `{% 1 2.5 "str" true false null %}`)
	require.NoError(t, err)
	var vals []struct {
		Typ TokenType
		Val string
	}
	for _, tok := range toks {
		if tok.Typ == TokenTagOpenScript || tok.Typ == TokenTagCloseScript || tok.Typ == TokenEOF {
			continue
		}
		vals = append(vals, struct {
			Typ TokenType
			Val string
		}{tok.Typ, tok.Val})
	}
	require.Equal(t, TokenInt, vals[0].Typ)
	require.Equal(t, TokenFloat, vals[1].Typ)
	require.Equal(t, TokenString, vals[2].Typ)
	require.Equal(t, "str", vals[2].Val)
	require.Equal(t, TokenKeyword, vals[3].Typ)
	require.Equal(t, "true", vals[3].Val)
	require.Equal(t, TokenKeyword, vals[4].Typ)
	require.Equal(t, TokenKeyword, vals[5].Typ)
}

func TestLexerKeywordsNotIdentifiers(t *testing.T) {
	toks, err := lex("<test>", `{% if while for %}`)
	require.NoError(t, err)
	for _, tok := range toks[1:4] {
		require.Equal(t, TokenKeyword, tok.Typ, "token %q should lex as keyword", tok.Val)
	}
}

func TestLexerTernarySymbol(t *testing.T) {
	toks, err := lex("<test>", `{{ a ? b : c }}`)
	require.NoError(t, err)
	var symbols []string
	for _, tok := range toks {
		if tok.Typ == TokenSymbol {
			symbols = append(symbols, tok.Val)
		}
	}
	require.Equal(t, []string{"?", ":"}, symbols)
}

func TestLexerLineColTracking(t *testing.T) {
	toks, err := lex("<test>", "a\n{{ x }}")
	require.NoError(t, err)
	// the identifier "x" should be reported on line 2.
	for _, tok := range toks {
		if tok.Typ == TokenIdentifier {
			require.Equal(t, 2, tok.Line)
		}
	}
}
