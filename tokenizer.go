package twalk

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenKind distinguishes the two path segment forms.
type TokenKind uint8

const (
	// TokenIdent names a table key.
	TokenIdent TokenKind = iota + 1
	// TokenIndex names an array position.
	TokenIndex
)

// Token is one parsed path segment: either an identifier (table key) or an
// index (array position). Tokens are produced once by Tokenize and read
// only afterwards.
type Token struct {
	Kind  TokenKind
	Ident string
	Index int64
}

func (t Token) String() string {
	if t.Kind == TokenIndex {
		return fmt.Sprintf("[%d]", t.Index)
	}
	return t.Ident
}

// Tokenize splits path on '.' into an ordered, non-empty token slice.
func Tokenize(path string) ([]Token, error) {
	return TokenizeWithSeparator(path, '.')
}

// TokenizeWithSeparator splits path on sep into tokens. A segment of the
// form [N] with N matching -?\d+ is an index token; any other non-empty
// segment is an identifier, verbatim. Negative index literals tokenize
// successfully; resolution treats them as out of range.
func TokenizeWithSeparator(path string, sep rune) ([]Token, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	segments := strings.Split(path, string(sep))
	tokens := make([]Token, 0, len(segments))
	for _, seg := range segments {
		if seg == "" {
			return nil, ErrEmptyIdentifier
		}
		tok, err := classify(seg)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func classify(seg string) (Token, error) {
	if seg[0] != '[' || seg[len(seg)-1] != ']' {
		return Token{Kind: TokenIdent, Ident: seg}, nil
	}
	inner := seg[1 : len(seg)-1]
	if !isInteger(inner) {
		return Token{}, fmt.Errorf("%q: %w", seg, ErrIndexNotAnInteger)
	}
	idx, err := strconv.ParseInt(inner, 10, 64)
	if err != nil {
		// digits only, so this is overflow
		return Token{}, fmt.Errorf("%q: %w", seg, ErrIndexNotAnInteger)
	}
	return Token{Kind: TokenIndex, Index: idx}, nil
}

// isInteger reports whether s matches -?\d+.
func isInteger(s string) bool {
	if strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
