package loader

// scalar returns the text of a scalar node
func scalar(n Node, ok bool) (string, bool) {
	if !ok || n.Kind != Scalar {
		return "", false
	}
	return n.Value, true
}

// stringField returns the stringified scalar stored under key
func stringField(n Node, key string) (string, bool) {
	return scalar(n.Get(key))
}

// names normalises a value that is either a single scalar or a list of
// scalars into an ordered list. Any other shape is treated as absent.
func names(n Node) ([]string, bool) {
	switch n.Kind {
	case Scalar:
		return []string{n.Value}, true
	case List:
		out := make([]string, 0, len(n.Items))
		for _, item := range n.Items {
			if item.Kind != Scalar {
				return nil, false
			}
			out = append(out, item.Value)
		}
		return out, true
	}
	return nil, false
}

// mapping returns the entries under key when the value is a mapping
func mapping(n Node, key string) []Entry {
	v, ok := n.Get(key)
	if !ok {
		return nil
	}
	return v.Pairs()
}
