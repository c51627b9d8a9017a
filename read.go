package twalk

// Read resolves path against the document and returns the addressed node,
// or nil (with a nil error) when a key or index along the path is absent.
// Structural mismatches (an identifier applied to a non-table, an index
// applied to a table or scalar) are errors. Negative indices are treated
// as out of range and yield nil.
//
// The returned value is a reference into the document; treat it as
// read-only. Use ReadMut when the node will be mutated.
func (v *Value) Read(path string) (*Value, error) {
	return v.ReadWithSeparator(path, '.')
}

// ReadWithSeparator is Read with a caller-chosen separator character.
func (v *Value) ReadWithSeparator(path string, sep rune) (*Value, error) {
	tokens, err := TokenizeWithSeparator(path, sep)
	if err != nil {
		return nil, err
	}
	return resolve(v, tokens)
}

// ReadMut resolves path like Read but the returned reference may be
// mutated or replaced in place. The caller must hold exclusive access to
// the document for as long as it uses the reference: no concurrent read or
// write may run against the same document.
func (v *Value) ReadMut(path string) (*Value, error) {
	return v.ReadMutWithSeparator(path, '.')
}

// ReadMutWithSeparator is ReadMut with a caller-chosen separator character.
func (v *Value) ReadMutWithSeparator(path string, sep rune) (*Value, error) {
	tokens, err := TokenizeWithSeparator(path, sep)
	if err != nil {
		return nil, err
	}
	return resolve(v, tokens)
}

// AsKind gates a resolved value on an expected kind: a nil value passes
// through unchanged (absence is not a type error), a matching value is
// returned as-is, and a mismatch fails with a *TypeError.
func AsKind(v *Value, k Kind) (*Value, error) {
	if v == nil {
		return nil, nil
	}
	if v.kind != k {
		return nil, &TypeError{Expected: k, Actual: v.kind}
	}
	return v, nil
}

// ReadString reads path and returns its string payload. It fails with a
// *NotFoundError when nothing is found and a *TypeError when the node is
// not a string.
func (v *Value) ReadString(path string) (string, error) {
	node, err := v.readPresent(path)
	if err != nil {
		return "", err
	}
	s, ok := node.AsString()
	if !ok {
		return "", &TypeError{Expected: KindString, Actual: node.kind}
	}
	return s, nil
}

// ReadInt reads path and returns its integer payload.
func (v *Value) ReadInt(path string) (int64, error) {
	node, err := v.readPresent(path)
	if err != nil {
		return 0, err
	}
	i, ok := node.AsInt()
	if !ok {
		return 0, &TypeError{Expected: KindInteger, Actual: node.kind}
	}
	return i, nil
}

// ReadFloat reads path and returns its float payload.
func (v *Value) ReadFloat(path string) (float64, error) {
	node, err := v.readPresent(path)
	if err != nil {
		return 0, err
	}
	f, ok := node.AsFloat()
	if !ok {
		return 0, &TypeError{Expected: KindFloat, Actual: node.kind}
	}
	return f, nil
}

// ReadBool reads path and returns its boolean payload.
func (v *Value) ReadBool(path string) (bool, error) {
	node, err := v.readPresent(path)
	if err != nil {
		return false, err
	}
	b, ok := node.AsBool()
	if !ok {
		return false, &TypeError{Expected: KindBoolean, Actual: node.kind}
	}
	return b, nil
}

func (v *Value) readPresent(path string) (*Value, error) {
	node, err := v.Read(path)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, &NotFoundError{Path: path}
	}
	return node, nil
}
