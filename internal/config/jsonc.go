package config

import (
	"bytes"
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// jsoncLexer splits JSONC into the tokens needed to drop comments and
// trailing commas. Everything that is not a string, comment or structural
// character is passed through untouched for encoding/json to judge.
var jsoncLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "LineComment", Pattern: `//[^\n]*`},
	{Name: "BlockComment", Pattern: `/\*(?s:.*?)\*/`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Punct", Pattern: `[{}\[\],:]`},
	{Name: "Literal", Pattern: `[^\s"{}\[\],:/]+|/`},
})

var (
	lineCommentToken  = jsoncLexer.Symbols()["LineComment"]
	blockCommentToken = jsoncLexer.Symbols()["BlockComment"]
	whitespaceToken   = jsoncLexer.Symbols()["Whitespace"]
	punctToken        = jsoncLexer.Symbols()["Punct"]
)

// StripJSONC converts JSON with comments and trailing commas into plain
// JSON. String contents are preserved verbatim.
func StripJSONC(filename string, data []byte) ([]byte, error) {
	lex, err := jsoncLexer.Lex(filename, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONC: %w", err)
	}

	var out bytes.Buffer
	out.Grow(len(data))
	pendingComma := false

	for _, tok := range tokens {
		if tok.EOF() {
			break
		}

		switch tok.Type {
		case lineCommentToken, blockCommentToken:
			out.WriteByte(' ')
			continue
		case whitespaceToken:
			out.WriteString(tok.Value)
			continue
		}

		if tok.Type == punctToken && tok.Value == "," {
			if pendingComma {
				out.WriteByte(',')
			}
			pendingComma = true
			continue
		}

		if pendingComma {
			closing := tok.Type == punctToken && (tok.Value == "}" || tok.Value == "]")
			if !closing {
				out.WriteByte(',')
			}
			pendingComma = false
		}
		out.WriteString(tok.Value)
	}

	if pendingComma {
		out.WriteByte(',')
	}
	return out.Bytes(), nil
}
