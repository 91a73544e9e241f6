package ir

// Contains reports whether a contains b, for query filters:
//   - an object contains an object when every key of b is in a with a
//     value which contains b's value;
//   - an array contains an array when every element of b is contained
//     by some element of a, without regard to multiplicity;
//   - otherwise a and b must be Equal.
func Contains(a, b *Node) bool {
	if b == nil {
		return true
	}
	if a == nil || a.Type != b.Type {
		return false
	}
	switch b.Type {
	case ObjectType:
		for k, bv := range ToMap(b) {
			av := a.Get(k)
			if av == nil || !Contains(av, bv) {
				return false
			}
		}
		return true
	case ArrayType:
	outer:
		for _, bv := range b.Values {
			for _, av := range a.Values {
				if Contains(av, bv) {
					continue outer
				}
			}
			return false
		}
		return true
	}
	return Equal(a, b)
}
