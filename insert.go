package twalk

import "fmt"

// Insert writes value at path, creating missing intermediate containers as
// it walks. The container created for a missing segment is chosen by the
// following token: an index token materializes an empty array, anything
// else a table.
//
// Array indices are a hint, not a strict address: an index at or past the
// current length (and any negative index) appends at the end, and an index
// into a freshly created array places the element at position 0 regardless
// of the requested value.
//
// Insert returns the previous value when it replaced an existing node at
// the final segment, and nil when the path was newly created.
//
// Insert is not atomic: intermediate containers created before a later
// structural failure are kept. Wrap the operation in RunAtomic for
// all-or-nothing semantics.
func (v *Value) Insert(path string, value *Value) (*Value, error) {
	return v.InsertWithSeparator(path, '.', value)
}

// InsertWithSeparator is Insert with a caller-chosen separator character.
func (v *Value) InsertWithSeparator(path string, sep rune, value *Value) (*Value, error) {
	tokens, err := TokenizeWithSeparator(path, sep)
	if err != nil {
		return nil, err
	}

	cur := v
	for i, tok := range tokens[:len(tokens)-1] {
		cur, err = descendOrCreate(cur, tok, tokens[i+1])
		if err != nil {
			return nil, err
		}
	}

	last := tokens[len(tokens)-1]
	switch last.Kind {
	case TokenIdent:
		if cur.kind != KindTable {
			return nil, fmt.Errorf("%q on %s: %w", last.Ident, cur.kind, ErrExpectedTable)
		}
		prev := cur.tab[last.Ident]
		cur.tab[last.Ident] = value
		return prev, nil
	default: // TokenIndex
		switch cur.kind {
		case KindArray:
			if last.Index >= 0 && last.Index < int64(len(cur.arr)) {
				prev := cur.arr[last.Index]
				cur.arr[last.Index] = value
				return prev, nil
			}
			cur.arr = append(cur.arr, value)
			return nil, nil
		case KindTable:
			return nil, fmt.Errorf("[%d]: %w", last.Index, ErrNoIndexInTable)
		default:
			return nil, fmt.Errorf("[%d] on %s: %w", last.Index, cur.kind, ErrExpectedArray)
		}
	}
}

// descendOrCreate advances one intermediate step of the insert walk,
// materializing a missing child as an empty container suited to the next
// token.
func descendOrCreate(cur *Value, tok, next Token) (*Value, error) {
	switch tok.Kind {
	case TokenIdent:
		if cur.kind != KindTable {
			return nil, fmt.Errorf("%q on %s: %w", tok.Ident, cur.kind, ErrExpectedTable)
		}
		child, ok := cur.tab[tok.Ident]
		if !ok {
			child = emptyContainerFor(next)
			cur.tab[tok.Ident] = child
		}
		return child, nil
	default: // TokenIndex
		switch cur.kind {
		case KindArray:
			if tok.Index >= 0 && tok.Index < int64(len(cur.arr)) {
				return cur.arr[tok.Index], nil
			}
			child := emptyContainerFor(next)
			cur.arr = append(cur.arr, child)
			return child, nil
		case KindTable:
			return nil, fmt.Errorf("[%d]: %w", tok.Index, ErrNoIndexInTable)
		default:
			return nil, fmt.Errorf("[%d] on %s: %w", tok.Index, cur.kind, ErrExpectedArray)
		}
	}
}

func emptyContainerFor(next Token) *Value {
	if next.Kind == TokenIndex {
		return Array()
	}
	return Table()
}
