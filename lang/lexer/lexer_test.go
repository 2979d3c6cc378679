package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slothlang/sloth/lang/token"
)

func allTokens(t *testing.T, src string) []Tok {
	t.Helper()
	l := New(src)
	var toks []Tok
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF || tok.Kind == token.ILLEGAL {
			return toks
		}
	}
}

func TestLexerOperators(t *testing.T) {
	cases := []struct {
		src  string
		want token.Token
	}{
		{"++=", token.PLUSPLUSEQ},
		{"**=", token.STARSTAREQ},
		{"<<=", token.LTLTEQ},
		{">>=", token.GTGTEQ},
		{"->", token.ARROW},
		{"=>", token.FATARROW},
		{"++", token.PLUSPLUS},
		{"**", token.STARSTAR},
		{"+=", token.PLUSEQ},
		{"&&", token.ANDAND},
		{"||", token.OROR},
		{"==", token.EQEQ},
		{"!=", token.BANGEQ},
		{"!!", token.BANGBANG},
		{"<<", token.LTLT},
		{"<=", token.LTEQ},
		{">>", token.GTGT},
		{">=", token.GTEQ},
		{"::", token.COLONCOLON},
		{"..", token.DOTDOT},
		{"?.", token.QUESTIONDOT},
		{"??", token.QUESTIONQUESTION},
		{"+", token.PLUS},
		{"-", token.MINUS},
		{"(", token.LPAREN},
		{")", token.RPAREN},
		{"{", token.LBRACE},
		{"}", token.RBRACE},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			toks := allTokens(t, c.src)
			require.Len(t, toks, 2)
			require.Equal(t, c.want, toks[0].Kind)
			require.Equal(t, token.EOF, toks[1].Kind)
		})
	}
}

func TestLexerKeywords(t *testing.T) {
	cases := []struct {
		src  string
		want token.Token
	}{
		{"const", token.CONST},
		{"val", token.VAL},
		{"var", token.VAR},
		{"fn", token.FN},
		{"return", token.RETURN},
		{"if", token.IF},
		{"else", token.ELSE},
		{"while", token.WHILE},
		{"for", token.FOR},
		{"in", token.IN},
		{"loop", token.LOOP},
		{"break", token.BREAK},
		{"continue", token.CONTINUE},
		{"as", token.AS},
		{"foreign", token.FOREIGN},
		{"struct", token.STRUCT},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			toks := allTokens(t, c.src)
			require.Equal(t, c.want, toks[0].Kind)
		})
	}
}

func TestLexerBoolLiteral(t *testing.T) {
	toks := allTokens(t, "true false")
	require.Equal(t, token.BOOL, toks[0].Kind)
	require.True(t, toks[0].Lit.Bool)
	require.Equal(t, token.BOOL, toks[1].Kind)
	require.False(t, toks[1].Lit.Bool)
}

func TestLexerNumbers(t *testing.T) {
	toks := allTokens(t, "123 1.5")
	require.Equal(t, token.INT, toks[0].Kind)
	require.EqualValues(t, 123, toks[0].Lit.Int)
	require.Equal(t, token.FLOAT, toks[1].Kind)
	require.InDelta(t, 1.5, toks[1].Lit.Float, 0)
}

func TestLexerString(t *testing.T) {
	toks := allTokens(t, `"hello\nworld"`)
	require.Equal(t, token.STRING, toks[0].Kind)
	require.Equal(t, "hello\nworld", toks[0].Lit.Str)
}

func TestLexerChar(t *testing.T) {
	toks := allTokens(t, `'c'`)
	require.Equal(t, token.CHAR, toks[0].Kind)
	require.Equal(t, "c", toks[0].Lit.Str)
}

func TestLexerIdentifier(t *testing.T) {
	toks := allTokens(t, "_foo$1 bar")
	require.Equal(t, token.IDENT, toks[0].Kind)
	require.Equal(t, "_foo$1", toks[0].Lit.Raw)
	require.Equal(t, token.IDENT, toks[1].Kind)
}

func TestLexerCommentsSkipped(t *testing.T) {
	toks := allTokens(t, "# a comment\n## doc comment\nval")
	require.Equal(t, token.VAL, toks[0].Kind)
}

func TestLexerUnexpectedCharLatches(t *testing.T) {
	toks := allTokens(t, "val @ val")
	require.Equal(t, token.VAL, toks[0].Kind)
	require.Equal(t, token.ILLEGAL, toks[1].Kind)
	// once latched, every subsequent call reports end of stream
	l := New("")
	l.done = true
	next := l.Next()
	require.Equal(t, token.EOF, next.Kind)
}

func TestLexerLocationTracksRowCol(t *testing.T) {
	l := New("a\nb")
	first := l.Next()
	require.Equal(t, 1, first.Start.Row)
	second := l.Next()
	require.Equal(t, 2, second.Start.Row)
}
