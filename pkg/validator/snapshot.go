package validator

import "slices"

// Snapshot is a detached Control value. Forms build one per validation pass;
// tests can build them by hand.
type Snapshot struct {
	NodeName     string
	NodeValue    any
	Children     map[string]*Snapshot
	ValidatorIDs []string
}

func (s *Snapshot) Name() string { return s.NodeName }
func (s *Snapshot) Value() any   { return s.NodeValue }

func (s *Snapshot) Child(name string) (Control, bool) {
	c, ok := s.Children[name]
	if !ok || c == nil {
		return nil, false
	}
	return c, true
}

func (s *Snapshot) HasValidator(id string) bool {
	return slices.Contains(s.ValidatorIDs, id)
}

// Leaf builds a childless snapshot.
func Leaf(name string, value any) *Snapshot {
	return &Snapshot{NodeName: name, NodeValue: value}
}

// Branch builds a snapshot whose value is the map of its children's values.
func Branch(name string, children ...*Snapshot) *Snapshot {
	s := &Snapshot{
		NodeName: name,
		Children: make(map[string]*Snapshot, len(children)),
	}
	value := make(map[string]any, len(children))
	for _, c := range children {
		s.Children[c.NodeName] = c
		value[c.NodeName] = c.NodeValue
	}
	s.NodeValue = value
	return s
}
