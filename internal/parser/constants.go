package parser

const (
	// CorePackage exports createApplication and defineModule
	CorePackage = "@bunner/core"
	// CommonPackage exports inject and the class decorators
	CommonPackage = "@bunner/common"

	FnCreateApplication = "createApplication"
	FnDefineModule      = "defineModule"
	FnInject            = "inject"

	DecoratorInjectable = "Injectable"
	DecoratorController = "Controller"

	// Keys read from a defineModule options object
	OptionName        = "name"
	OptionProviders   = "providers"
	OptionImports     = "imports"
	OptionExports     = "exports"
	OptionControllers = "controllers"
	OptionAdapters    = "adapters"
)

// trackedNames lists, per package, the exports whose call sites are collected
var trackedNames = map[string][]string{
	CorePackage:   {FnCreateApplication, FnDefineModule},
	CommonPackage: {FnInject, DecoratorInjectable},
}
