package twalk

import "fmt"

// Delete removes the node at path and returns it. Absence anywhere along
// the path yields (nil, nil). Scalars and empty containers delete freely;
// deleting a non-empty table or array is refused so whole subtrees cannot
// vanish through a single-segment typo.
func (v *Value) Delete(path string) (*Value, error) {
	return v.DeleteWithSeparator(path, '.')
}

// DeleteWithSeparator is Delete with a caller-chosen separator character.
func (v *Value) DeleteWithSeparator(path string, sep rune) (*Value, error) {
	tokens, err := TokenizeWithSeparator(path, sep)
	if err != nil {
		return nil, err
	}

	parent := v
	if len(tokens) > 1 {
		parent, err = resolve(v, tokens[:len(tokens)-1])
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, nil
		}
	}

	last := tokens[len(tokens)-1]
	switch last.Kind {
	case TokenIdent:
		if parent.kind != KindTable {
			return nil, fmt.Errorf("%q on %s: %w", last.Ident, parent.kind, ErrExpectedTable)
		}
		node, ok := parent.tab[last.Ident]
		if !ok {
			return nil, nil
		}
		if err := deletable(node); err != nil {
			return nil, err
		}
		delete(parent.tab, last.Ident)
		return node, nil
	default: // TokenIndex
		switch parent.kind {
		case KindArray:
			if last.Index < 0 || last.Index >= int64(len(parent.arr)) {
				return nil, nil
			}
			node := parent.arr[last.Index]
			if err := deletable(node); err != nil {
				return nil, err
			}
			parent.arr = append(parent.arr[:last.Index], parent.arr[last.Index+1:]...)
			return node, nil
		case KindTable:
			return nil, fmt.Errorf("[%d]: %w", last.Index, ErrNoIndexInTable)
		default:
			return nil, fmt.Errorf("[%d] on %s: %w", last.Index, parent.kind, ErrExpectedArray)
		}
	}
}

func deletable(node *Value) error {
	switch node.kind {
	case KindTable:
		if len(node.tab) > 0 {
			return ErrCannotDeleteNonEmptyTable
		}
	case KindArray:
		if len(node.arr) > 0 {
			return ErrCannotDeleteNonEmptyArray
		}
	}
	return nil
}
