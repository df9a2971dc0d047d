package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImportRegistry_DeterministicAcrossInsertionOrder(t *testing.T) {
	registry1 := NewImportRegistry("/out")
	registry1.GetAlias("BClass", "./b.ts")
	registry1.GetAlias("AClass", "./a.ts")
	registry1.GetAlias("CClass", "@bunner/core")

	registry2 := NewImportRegistry("/out")
	registry2.GetAlias("CClass", "@bunner/core")
	registry2.GetAlias("AClass", "./a.ts")
	registry2.GetAlias("BClass", "./b.ts")

	assert.Equal(t, registry1.GetImportStatements(), registry2.GetImportStatements())
}

func TestImportRegistry_SortedStatements(t *testing.T) {
	registry := NewImportRegistry("/out")
	registry.GetAlias("BClass", "./b.ts")
	registry.GetAlias("AClass", "./a.ts")
	registry.GetAlias("CoreThing", "@bunner/core")

	assert.Equal(t, []string{
		`import { AClass } from "./a.ts";`,
		`import { BClass } from "./b.ts";`,
		`import { CoreThing } from "@bunner/core";`,
	}, registry.GetImportStatements())
}

func TestImportRegistry_Aliases(t *testing.T) {
	registry := NewImportRegistry("/app/.bunner")

	first := registry.GetAlias("Service", "/app/src/a/service.ts")
	second := registry.GetAlias("Service", "/app/src/b/service.ts")
	third := registry.GetAlias("Service", "/app/src/c/service.ts")

	assert.Equal(t, "Service", first)
	assert.Equal(t, "Service_1", second)
	assert.Equal(t, "Service_2", third)

	t.Run("idempotent per source and symbol", func(t *testing.T) {
		assert.Equal(t, "Service_1", registry.GetAlias("Service", "/app/src/b/service.ts"))
		assert.Equal(t, "Service", registry.AddImport("Service", "/app/src/a/service.ts"))
	})

	assert.Equal(t, []string{
		`import { Service } from "../src/a/service";`,
		`import { Service as Service_1 } from "../src/b/service";`,
		`import { Service as Service_2 } from "../src/c/service";`,
	}, registry.GetImportStatements())
}

func TestImportRegistry_SuffixedNameAlreadyTaken(t *testing.T) {
	registry := NewImportRegistry("/out")

	assert.Equal(t, "Service_1", registry.GetAlias("Service_1", "/src/x.ts"))
	assert.Equal(t, "Service", registry.GetAlias("Service", "/src/a.ts"))
	assert.Equal(t, "Service_2", registry.GetAlias("Service", "/src/b.ts"))
}

func TestImportRegistry_Empty(t *testing.T) {
	assert.Empty(t, NewImportRegistry("/out").GetImportStatements())
}
