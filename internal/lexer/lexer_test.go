package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeywordsTokenizeToThemselvesPlusEOF(t *testing.T) {
	for kw := range keywords {
		toks, err := Tokenize(kw)
		require.NoError(t, err)
		require.Len(t, toks, 2, "keyword %q", kw)
		require.Equal(t, keywords[kw], toks[0].Kind)
		require.Equal(t, EOF, toks[1].Kind)
	}
}

func TestLineCounterTracksNewlines(t *testing.T) {
	src := "fn main() {\nx := 1;\ny := 2;\n}"
	toks, err := Tokenize(src)
	require.NoError(t, err)

	byLine := map[int][]string{}
	for _, tok := range toks {
		byLine[tok.Line] = append(byLine[tok.Line], tok.Lexeme)
	}
	require.Contains(t, byLine[1], "fn")
	require.Contains(t, byLine[2], "x")
	require.Contains(t, byLine[3], "y")
	require.Contains(t, byLine[4], "}")
}

func TestLineCommentNotInTokenStream(t *testing.T) {
	toks, err := Tokenize("x := 1; // trailing comment\ny := 2;")
	require.NoError(t, err)
	for _, tok := range toks {
		require.NotEqual(t, DOC_COMMENT, tok.Kind)
		require.NotContains(t, tok.Lexeme, "trailing")
	}
}

func TestDocCommentEmittedWithLeadingSpaceStripped(t *testing.T) {
	toks, err := Tokenize("/// does a thing\nfn f() {}")
	require.NoError(t, err)
	require.Equal(t, DOC_COMMENT, toks[0].Kind)
	require.Equal(t, "does a thing", toks[0].Lexeme)
}

func TestDocCommentNoLeadingSpace(t *testing.T) {
	toks, err := Tokenize("///no space\nfn f() {}")
	require.NoError(t, err)
	require.Equal(t, "no space", toks[0].Lexeme)
}

func TestRangeOperatorAfterDigits(t *testing.T) {
	toks, err := Tokenize("for i in 0..10 {}")
	require.NoError(t, err)

	var kinds []Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	require.Contains(t, kinds, RANGE)

	foundZero, foundTen := false, false
	for _, tok := range toks {
		if tok.Kind == INT && tok.Lexeme == "0" {
			foundZero = true
		}
		if tok.Kind == INT && tok.Lexeme == "10" {
			foundTen = true
		}
	}
	require.True(t, foundZero)
	require.True(t, foundTen)
}

func TestFloatLiteral(t *testing.T) {
	toks, err := Tokenize("3.14")
	require.NoError(t, err)
	require.Equal(t, FLOAT, toks[0].Kind)
	require.Equal(t, "3.14", toks[0].Lexeme)
}

func TestStringLiteralNoEscapeProcessing(t *testing.T) {
	toks, err := Tokenize(`"a\nb"`)
	require.NoError(t, err)
	require.Equal(t, STRING, toks[0].Kind)
	require.Equal(t, `a\nb`, toks[0].Lexeme)
}

func TestCharLiteral(t *testing.T) {
	toks, err := Tokenize("'c'")
	require.NoError(t, err)
	require.Equal(t, CHAR, toks[0].Kind)
	require.Equal(t, "c", toks[0].Lexeme)
}

func TestUnterminatedCharLiteralIsLexError(t *testing.T) {
	_, err := Tokenize("'c")
	require.Error(t, err)
}

func TestEmptyCharLiteralIsLexError(t *testing.T) {
	_, err := Tokenize("''")
	require.Error(t, err)
}

func TestMultiCharOperators(t *testing.T) {
	cases := map[string]Kind{
		"->": ARROW,
		":=": WALRUS,
		"::": DCOLON,
		"==": EQ,
		"!=": NEQ,
		"<=": LE,
		">=": GE,
	}
	for lexeme, kind := range cases {
		toks, err := Tokenize(lexeme)
		require.NoError(t, err)
		require.Equal(t, kind, toks[0].Kind, lexeme)
	}
}

func TestUnknownByteSkippedSilently(t *testing.T) {
	toks, err := Tokenize("x \x01 := 1;")
	require.NoError(t, err)
	require.Equal(t, IDENT, toks[0].Kind)
	require.Equal(t, WALRUS, toks[1].Kind)
}

func TestIdentifierIsKeywordFirst(t *testing.T) {
	toks, err := Tokenize("structx struct")
	require.NoError(t, err)
	require.Equal(t, IDENT, toks[0].Kind)
	require.Equal(t, STRUCT, toks[1].Kind)
}
