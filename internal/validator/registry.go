package validator

// Registry holds checks keyed by rule key, in registration order.
type Registry struct {
	ordered []Validator
	byKey   map[string]int
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]int)}
}

// Register adds a check. A check with an already registered rule key
// replaces the old one in its original position.
func (r *Registry) Register(v Validator) {
	if i, ok := r.byKey[v.RuleKey()]; ok {
		r.ordered[i] = v
		return
	}
	r.byKey[v.RuleKey()] = len(r.ordered)
	r.ordered = append(r.ordered, v)
}

// Get returns the check for a rule key, or nil if not found.
func (r *Registry) Get(key string) Validator {
	i, ok := r.byKey[key]
	if !ok {
		return nil
	}
	return r.ordered[i]
}

// All returns the registered checks in registration order.
func (r *Registry) All() []Validator {
	out := make([]Validator, len(r.ordered))
	copy(out, r.ordered)
	return out
}
