package models

// Visibility gates which modules may resolve a provider
type Visibility string

const (
	VisibilityModule    Visibility = "module"
	VisibilityAll       Visibility = "all"
	VisibilityAllowlist Visibility = "allowlist"
)

// Valid reports whether v is a known visibility
func (v Visibility) Valid() bool {
	return v == VisibilityModule || v == VisibilityAll || v == VisibilityAllowlist
}

// Scope is a provider's instance lifetime
type Scope string

const (
	ScopeSingleton Scope = "singleton"
	ScopeRequest   Scope = "request"
	ScopeTransient Scope = "transient"
)

// Valid reports whether s is a known scope
func (s Scope) Valid() bool {
	return s == ScopeSingleton || s == ScopeRequest || s == ScopeTransient
}

// ProviderKind says how the container builds a provider
type ProviderKind int

const (
	ProviderClass ProviderKind = iota
	ProviderValue
	ProviderFactory
	ProviderExisting
)

// ProviderRef is a token bound inside one module
type ProviderRef struct {
	Token      string
	Metadata   *ClassMetadata // set for class providers found in the project
	Visibility Visibility
	VisibleTo  []string // required iff Visibility is allowlist
	Scope      Scope
	FilePath   string // absolute path or bare specifier of the implementation

	Kind   ProviderKind
	Target string // class, factory or existing token name
	Value  *Value // ProviderValue payload
}

// VisibleFrom reports whether a module named requester may see p when it
// lives in another module that exports the given tokens.
func (p *ProviderRef) VisibleFrom(requester string, exported bool) bool {
	switch p.Visibility {
	case VisibilityAll:
		return true
	case VisibilityAllowlist:
		for _, name := range p.VisibleTo {
			if name == requester {
				return true
			}
		}
		return false
	case VisibilityModule:
		return exported
	}
	return false
}

// CyclePath is one import cycle in traversal order
type CyclePath struct {
	Path         []string
	SuggestedFix string
}
