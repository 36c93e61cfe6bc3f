package storage

import "github.com/katalvlaran/dagflow/core"

// ConnectStrict connects every input found in inputs to the like-named
// output found in outputs, failing if any input has no matching output.
// This is the Go rendering of `storage >> other` used when the caller
// expects every input to be satisfied.
func ConnectStrict(outputs, inputs *NodeStorage) error {
	return inputs.Walk(func(path string, v any) error {
		in, ok := v.(*core.Input)
		if !ok || in.Connected() {
			return nil
		}
		outv, ok := outputs.Get(path)
		if !ok {
			return core.NewError(core.KindConnection, "no matching output for input "+path)
		}
		out, ok := outv.(*core.Output)
		if !ok {
			return core.NewError(core.KindConnection, "matched value for "+path+" is not an output")
		}
		return out.ConnectTo(in, false)
	})
}

// ConnectFuzzy connects every input found in inputs to the like-named
// output found in outputs where a match exists, silently skipping inputs
// with no match. This is the Go rendering of `storage << other`.
func ConnectFuzzy(outputs, inputs *NodeStorage) error {
	return inputs.Walk(func(path string, v any) error {
		in, ok := v.(*core.Input)
		if !ok || in.Connected() {
			return nil
		}
		outv, ok := outputs.Get(path)
		if !ok {
			return nil
		}
		out, ok := outv.(*core.Output)
		if !ok {
			return nil
		}
		return out.ConnectTo(in, false)
	})
}

// ReadLabels walks s and, for every *core.Node leaf, looks up a label by
// walking up the dotted path's prefixes (so a
// node nested under "detector.reactor1.flux" can inherit a label set at
// "detector.reactor1" if none is set closer). Matches the reference
// implementation's group-label fallback.
func ReadLabels(s *NodeStorage, labels map[string]string) map[string]string {
	resolved := make(map[string]string)
	_ = s.Walk(func(path string, v any) error {
		if _, ok := v.(*core.Node); !ok {
			return nil
		}
		parts := splitKey(path)
		for end := len(parts); end > 0; end-- {
			key := joinKey(parts[:end])
			if label, ok := labels[key]; ok {
				resolved[path] = label
				return nil
			}
		}
		return nil
	})
	return resolved
}

func joinKey(parts []string) string {
	out := parts[0]
	for _, p := range parts[1:] {
		out += "." + p
	}
	return out
}

// RemoveConnectedInputs walks s and removes every *core.Input leaf that is
// already connected, leaving only the inputs a caller still needs to wire.
func RemoveConnectedInputs(s *NodeStorage) *NodeStorage {
	out := New()
	_ = s.Walk(func(path string, v any) error {
		if in, ok := v.(*core.Input); ok && in.Connected() {
			return nil
		}
		return out.Set(path, v)
	})
	return out
}
