package tokenizer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is an atomic comparison unit: a slice of the source text together
// with its byte span. Concatenating the tokens of one input in order
// reproduces that input exactly, including all whitespace.
type Token struct {
	Text  string
	Start int
	End   int
}

// Tokenize splits text into word-granularity tokens. Each token is a maximal
// run of non-whitespace characters together with the whitespace that follows
// it; a whitespace run at the start of the text forms its own token. The
// function is pure and deterministic, and empty input yields no tokens.
func Tokenize(text string) []Token {
	if text == "" {
		return nil
	}

	tokens := make([]Token, 0, estimateTokens(text))
	pos := 0

	if end := skipSpaces(text, 0); end > 0 {
		tokens = append(tokens, Token{Text: text[:end], Start: 0, End: end})
		pos = end
	}

	for pos < len(text) {
		start := pos
		pos = skipNonSpaces(text, pos)
		pos = skipSpaces(text, pos)
		tokens = append(tokens, Token{Text: text[start:pos], Start: start, End: pos})
	}

	return tokens
}

// TokenizeLines splits text into line-granularity tokens. Each token is one
// line including its trailing newline; a final line without a newline is
// still a token. Empty input yields no tokens.
func TokenizeLines(text string) []Token {
	if text == "" {
		return nil
	}

	var tokens []Token
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			tokens = append(tokens, Token{Text: text[start : i+1], Start: start, End: i + 1})
			start = i + 1
		}
	}
	if start < len(text) {
		tokens = append(tokens, Token{Text: text[start:], Start: start, End: len(text)})
	}
	return tokens
}

// Join concatenates token texts in order, reversing Tokenize.
func Join(tokens []Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Text)
	}
	return b.String()
}

// skipSpaces returns the byte offset of the first non-whitespace rune at or
// after pos.
func skipSpaces(text string, pos int) int {
	for pos < len(text) {
		r, size := utf8.DecodeRuneInString(text[pos:])
		if !unicode.IsSpace(r) {
			break
		}
		pos += size
	}
	return pos
}

// skipNonSpaces returns the byte offset of the first whitespace rune at or
// after pos.
func skipNonSpaces(text string, pos int) int {
	for pos < len(text) {
		r, size := utf8.DecodeRuneInString(text[pos:])
		if unicode.IsSpace(r) {
			break
		}
		pos += size
	}
	return pos
}

// estimateTokens guesses a token count for slice preallocation. Short-form
// copy averages well above 4 bytes per word-plus-space.
func estimateTokens(text string) int {
	estimate := len(text) / 5
	if estimate < 4 {
		estimate = 4
	}
	return estimate
}
