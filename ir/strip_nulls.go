package ir

// StripNulls returns a copy of node with every object member whose value
// is null removed, at any depth. Nulls in arrays are kept.
func StripNulls(node *Node) *Node {
	switch node.Type {
	case ObjectType:
		kvs := make([]KeyVal, 0, len(node.Values))
		for i, v := range node.Values {
			if v.Type == NullType {
				continue
			}
			kvs = append(kvs, KeyVal{Key: node.Fields[i], Val: StripNulls(v)})
		}
		return FromKeyVals(kvs)
	case ArrayType:
		vals := make([]*Node, len(node.Values))
		for i, v := range node.Values {
			vals[i] = StripNulls(v)
		}
		return FromSlice(vals)
	}
	res := node.Clone()
	res.Parent = nil
	return res
}
