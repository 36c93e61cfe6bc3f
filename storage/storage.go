package storage

import (
	"sort"
	"strings"

	"github.com/katalvlaran/dagflow/core"
)

// NodeStorage is a trie of dot-separated string keys whose leaves are
// *core.Node, *core.Input, or *core.Output values (or any other entity a
// caller chooses to store, e.g. *parameters.Parameter via the any leaf
// type). Intermediate path segments are themselves *NodeStorage nodes.
type NodeStorage struct {
	children map[string]any // value is either *NodeStorage or a leaf
	order    []string       // insertion order, for deterministic iteration/export
}

// New creates an empty NodeStorage.
func New() *NodeStorage {
	return &NodeStorage{children: make(map[string]any)}
}

func splitKey(key string) []string {
	return strings.Split(key, ".")
}

// Set inserts value at the dotted key, creating intermediate NodeStorage
// levels as needed. It fails if an existing leaf sits where a path
// component is required, or a path component sits where a leaf is set.
func (s *NodeStorage) Set(key string, value any) error {
	parts := splitKey(key)
	return s.setPath(parts, value)
}

func (s *NodeStorage) setPath(parts []string, value any) error {
	head := parts[0]
	if len(parts) == 1 {
		if existing, ok := s.children[head]; ok {
			if _, isStorage := existing.(*NodeStorage); isStorage {
				return core.NewError(core.KindInitialization, "cannot overwrite a substorage with a leaf at "+head)
			}
			return core.NewError(core.KindInitialization, "key already set: "+head)
		}
		s.children[head] = value
		s.order = append(s.order, head)
		return nil
	}

	child, ok := s.children[head]
	if !ok {
		ns := New()
		s.children[head] = ns
		s.order = append(s.order, head)
		return ns.setPath(parts[1:], value)
	}
	ns, ok := child.(*NodeStorage)
	if !ok {
		return core.NewError(core.KindInitialization, "cannot descend into a leaf at "+head)
	}
	return ns.setPath(parts[1:], value)
}

// SetOverwrite is Set but replaces an existing leaf instead of failing on
// collision (structural collisions — a leaf where a substorage is expected
// or vice versa — still fail). Used by callers that opt out of strict
// key-disjointness, e.g. replicate.WithStrictMerge(false).
func (s *NodeStorage) SetOverwrite(key string, value any) error {
	parts := splitKey(key)
	return s.setPathOverwrite(parts, value)
}

func (s *NodeStorage) setPathOverwrite(parts []string, value any) error {
	head := parts[0]
	if len(parts) == 1 {
		if existing, ok := s.children[head]; ok {
			if _, isStorage := existing.(*NodeStorage); isStorage {
				return core.NewError(core.KindInitialization, "cannot overwrite a substorage with a leaf at "+head)
			}
			s.children[head] = value
			return nil
		}
		s.children[head] = value
		s.order = append(s.order, head)
		return nil
	}

	child, ok := s.children[head]
	if !ok {
		ns := New()
		s.children[head] = ns
		s.order = append(s.order, head)
		return ns.setPathOverwrite(parts[1:], value)
	}
	ns, ok := child.(*NodeStorage)
	if !ok {
		return core.NewError(core.KindInitialization, "cannot descend into a leaf at "+head)
	}
	return ns.setPathOverwrite(parts[1:], value)
}

// Get looks up the dotted key, returning (nil, false) if absent.
func (s *NodeStorage) Get(key string) (any, bool) {
	parts := splitKey(key)
	return s.getPath(parts)
}

func (s *NodeStorage) getPath(parts []string) (any, bool) {
	head := parts[0]
	child, ok := s.children[head]
	if !ok {
		return nil, false
	}
	if len(parts) == 1 {
		return child, true
	}
	ns, ok := child.(*NodeStorage)
	if !ok {
		return nil, false
	}
	return ns.getPath(parts[1:])
}

// Keys returns the direct child keys of s in insertion order.
func (s *NodeStorage) Keys() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Walk visits every leaf in s (recursively), calling fn with the leaf's
// full dotted path, in deterministic (sorted) order.
func (s *NodeStorage) Walk(fn func(path string, value any) error) error {
	return s.walk("", fn)
}

func (s *NodeStorage) walk(prefix string, fn func(string, any) error) error {
	keys := append([]string(nil), s.order...)
	sort.Strings(keys)
	for _, k := range keys {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		v := s.children[k]
		if ns, ok := v.(*NodeStorage); ok {
			if err := ns.walk(path, fn); err != nil {
				return err
			}
			continue
		}
		if err := fn(path, v); err != nil {
			return err
		}
	}
	return nil
}

// Merge copies other's entries into s. When strict is true, any key
// collision (present in both s and other) is an error — the XOR merge
// required by replicate's "batches must not collide" invariant. When
// strict is false, other's values overwrite s's on collision (an OR
// merge), used for exploratory/hand-assembled storages.
func (s *NodeStorage) Merge(other *NodeStorage, strict bool) error {
	for _, k := range other.order {
		v := other.children[k]
		existing, collides := s.children[k]
		if !collides {
			s.children[k] = v
			s.order = append(s.order, k)
			continue
		}
		existingNS, existingIsNS := existing.(*NodeStorage)
		newNS, newIsNS := v.(*NodeStorage)
		if existingIsNS && newIsNS {
			if err := existingNS.Merge(newNS, strict); err != nil {
				return err
			}
			continue
		}
		if strict {
			return core.NewError(core.KindInitialization, "merge key collision: "+k)
		}
		s.children[k] = v
	}
	return nil
}
