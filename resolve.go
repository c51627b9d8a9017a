package twalk

import "fmt"

// resolve walks the document from root, consuming one token per step.
// It returns (nil, nil) when the document is well-typed along the path but
// a key or index is simply absent; it returns an error when a segment is
// structurally inconsistent with the node it is applied to.
//
// The returned pointer is a live reference into the document. Both the
// shared and the exclusive read use this walk; exclusivity is a contract
// on the caller, not a property of the pointer.
func resolve(doc *Value, tokens []Token) (*Value, error) {
	cur := doc
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenIdent:
			if cur.kind != KindTable {
				return nil, fmt.Errorf("%q on %s: %w", tok.Ident, cur.kind, ErrExpectedTable)
			}
			next, ok := cur.tab[tok.Ident]
			if !ok {
				return nil, nil
			}
			cur = next
		case TokenIndex:
			switch cur.kind {
			case KindArray:
				if tok.Index < 0 || tok.Index >= int64(len(cur.arr)) {
					return nil, nil
				}
				cur = cur.arr[tok.Index]
			case KindTable:
				return nil, fmt.Errorf("[%d]: %w", tok.Index, ErrNoIndexInTable)
			default:
				return nil, fmt.Errorf("[%d] on %s: %w", tok.Index, cur.kind, ErrExpectedArray)
			}
		}
	}
	return cur, nil
}
