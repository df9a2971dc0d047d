package models

// Span locates a node in its file
type Span struct {
	Start int // byte offset
	End   int // byte offset
	Line  int // 1-based
}

// DecoratorMetadata is a decorator name and its evaluated call arguments
type DecoratorMetadata struct {
	Name      string
	Arguments []Value
}

// ParamMetadata describes one constructor parameter
type ParamMetadata struct {
	Name       string
	Type       TypeInfo
	Decorators []DecoratorMetadata
}

// ClassMetadata is collected for every class declaration
type ClassMetadata struct {
	ClassName         string
	Exported          bool
	Decorators        []DecoratorMetadata
	ConstructorParams []ParamMetadata
	Span              Span
}

// Decorator returns the first decorator named name
func (c *ClassMetadata) Decorator(name string) (DecoratorMetadata, bool) {
	for _, d := range c.Decorators {
		if d.Name == name {
			return d, true
		}
	}
	return DecoratorMetadata{}, false
}

// ImportEntry is one binding introduced by an import declaration
type ImportEntry struct {
	Source    string // module specifier as written
	Imported  string // exported name, "*" for namespace imports, "default" for default imports
	Local     string // local binding name
	Namespace bool
	Default   bool
	TypeOnly  bool
}

// ReExportName maps a local name to the name it is re-exported as
type ReExportName struct {
	Local    string
	Exported string
}

// ReExport is an `export ... from` declaration
type ReExport struct {
	Module    string
	ExportAll bool
	Names     []ReExportName
}

// ModuleDefinition is read from the options object of a defineModule call
type ModuleDefinition struct {
	Name           string
	NameDeclared   bool
	Providers      []Value
	Imports        map[string]string // local binding -> module specifier
	DynamicImports []Value           // entries with no static import binding
	Exports        []Value
	Controllers    []Value
	Adapters       *Value
	Dynamic        *Value // options argument that is not an object literal
}

// CreateApplicationCall is a tracked createApplication call site
type CreateApplicationCall struct {
	Callee       string
	ImportSource string
	Args         []Value
	Span         Span
}

// DefineModuleCall is a tracked defineModule call site
type DefineModuleCall struct {
	Callee       string
	ImportSource string
	Args         []Value
	Span         Span
	LocalName    string // binding the result is assigned to
	ExportedName string // name the binding is exported under, if exported
}

// TokenKind classifies an inject call by its arguments
type TokenKind string

const (
	TokenKindToken   TokenKind = "token"
	TokenKindThunk   TokenKind = "thunk"
	TokenKindInvalid TokenKind = "invalid"
)

// InjectCall is a tracked inject call site
type InjectCall struct {
	TokenKind    TokenKind
	Token        *Value // nil when TokenKind is invalid
	Callee       string
	ImportSource string
	Span         Span
	FilePath     string
}

// FileAnalysis is everything the analyzer extracts from one file
type FileAnalysis struct {
	FilePath               string
	Classes                []ClassMetadata
	ReExports              []ReExport
	Exports                []string
	Imports                map[string]string // local name -> specifier
	ImportEntries          []ImportEntry
	LocalValues            map[string]Value // top-level const initializers
	ModuleDefinition       *ModuleDefinition
	CreateApplicationCalls []CreateApplicationCall
	DefineModuleCalls      []DefineModuleCall
	InjectCalls            []InjectCall
	HasSyntaxErrors        bool
}

// Class returns the class declared in the file under name
func (f *FileAnalysis) Class(name string) (*ClassMetadata, bool) {
	for i := range f.Classes {
		if f.Classes[i].ClassName == name {
			return &f.Classes[i], true
		}
	}
	return nil, false
}
