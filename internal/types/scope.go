package types

// Scope is one local-variable scope in the stack spec.md §4.4 describes:
// entering a function/method body, or any control-flow block, pushes a
// fresh scope; leaving it pops. Declaring a name already present in THIS
// scope is an error; shadowing a parent scope's name is permitted. Grounded
// on the teacher's `TypeEnv` parent-pointer chain (internal/types/env.go),
// simplified from a unifier's type-scheme environment to a flat name→
// TypeInfo table since nog's checker does no inference beyond literal- and
// initializer-directed local typing.
type Scope struct {
	bindings map[string]TypeInfo
	parent   *Scope
}

// NewScope creates a scope nested under parent (nil for the outermost,
// function-entry scope).
func NewScope(parent *Scope) *Scope {
	return &Scope{bindings: map[string]TypeInfo{}, parent: parent}
}

// Declare binds name in this scope. It reports redeclaration within the
// SAME scope only — shadowing a parent binding is not an error.
func (s *Scope) Declare(name string, info TypeInfo) bool {
	if _, exists := s.bindings[name]; exists {
		return false
	}
	s.bindings[name] = info
	return true
}

// Lookup walks inner-to-outer and returns the first match.
func (s *Scope) Lookup(name string) (TypeInfo, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if info, ok := sc.bindings[name]; ok {
			return info, true
		}
	}
	return TypeInfo{}, false
}
