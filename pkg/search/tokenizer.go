package search

import (
	"slices"
	"strings"
	"unicode"
)

// MaxSearchTokens caps how many words a search keeps.
const MaxSearchTokens = 32

type Token string

type Tokenizer struct {
	MaxTokens int
}

type TokenList []Token

func (t *TokenList) AddToken(token Token) {
	if slices.Contains(*t, token) {
		return
	}
	*t = append(*t, token)
}

func (t TokenList) Strings() []string {
	ret := make([]string, len(t))
	for i, token := range t {
		ret[i] = string(token)
	}
	return ret
}

// NormalizeWord lower-cases a word. Punctuation is kept since prefixed
// terms like canton:vd rely on it.
func NormalizeWord(text string) Token {
	return Token(strings.ToLower(strings.TrimSpace(text)))
}

func SplitWords(text string, onWord func(word string, count int) bool) {
	count := 0
	lastSplit := -1
	for idx, chr := range text {
		if unicode.IsSpace(chr) {
			if lastSplit >= 0 {
				if !onWord(text[lastSplit:idx], count) {
					return
				}
				count++
				lastSplit = -1
			}
			continue
		}
		if lastSplit < 0 {
			lastSplit = idx
		}
	}
	if lastSplit >= 0 {
		onWord(text[lastSplit:], count)
	}
}

// Tokenize splits on whitespace, lower-cases and drops duplicates.
func (t *Tokenizer) Tokenize(text string) TokenList {
	res := TokenList{}
	SplitWords(text, func(word string, count int) bool {
		normalized := NormalizeWord(word)
		if len(normalized) > 0 {
			res.AddToken(normalized)
		}
		return t.MaxTokens <= 0 || len(res) < t.MaxTokens
	})
	return res
}
