package graph

// Diagnostic codes reported while building and validating a graph
const (
	CodeModuleCycle            = "MODULE_CYCLE"
	CodeUnresolvedModuleImport = "UNRESOLVED_MODULE_IMPORT"
	CodeDynamicProvider        = "DYNAMIC_PROVIDER"
	CodeDuplicateProvider      = "DUPLICATE_PROVIDER"
	CodeDuplicateModule        = "DUPLICATE_MODULE"
	CodeInvalidVisibility      = "INVALID_VISIBILITY"
	CodeInvalidScope           = "INVALID_SCOPE"
	CodeInvalidInjectCall      = "INVALID_INJECT_CALL"
	CodeUnresolvedToken        = "UNRESOLVED_TOKEN"
	CodeProviderNotVisible     = "PROVIDER_NOT_VISIBLE"
	CodeOrphanProvider         = "ORPHAN_PROVIDER"
	CodeNonExportedProvider    = "NON_EXPORTED_PROVIDER"
	CodeDynamicModule          = "DYNAMIC_MODULE"
)

// Keys read from provider records and decorator options
const (
	keyProvide     = "provide"
	keyUseClass    = "useClass"
	keyUseValue    = "useValue"
	keyUseFactory  = "useFactory"
	keyUseExisting = "useExisting"
	keyVisibility  = "visibility"
	keyVisibleTo   = "visibleTo"
	keyScope       = "scope"

	decoratorInject = "Inject"

	// maxReExportDepth bounds how far barrel files are followed
	maxReExportDepth = 8
)
