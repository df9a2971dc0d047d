package models

// TypeInfo is the normalized shape of a type annotation
type TypeInfo struct {
	TypeName   string     `json:"typeName"`
	TypeArgs   []string   `json:"typeArgs,omitempty"`
	IsUnion    bool       `json:"isUnion,omitempty"`
	UnionTypes []TypeInfo `json:"unionTypes,omitempty"`
	IsArray    bool       `json:"isArray,omitempty"`
	IsEnum     bool       `json:"isEnum,omitempty"`
	Literals   []any      `json:"literals,omitempty"` // string, float64 or bool
	Items      *TypeInfo  `json:"items,omitempty"`
}

// IsPrimitive reports whether the type names a built-in rather than a class or token
func (t TypeInfo) IsPrimitive() bool {
	switch t.TypeName {
	case "string", "number", "boolean", "void", "any", "unknown", "never",
		"null", "undefined", "object", "symbol", "bigint", "Array":
		return true
	}
	return len(t.Literals) > 0
}
