package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/bunner/internal/models"
)

func TestValueRenderer(t *testing.T) {
	renderer := valueRenderer{resolve: func(name string) (string, bool) {
		if name == "HttpAdapter" || name == "env" {
			return name + "_1", true
		}
		return "", false
	}}

	tests := []struct {
		name  string
		value models.Value
		want  string
	}{
		{"string", models.String(`a "b"`), `"a \"b\""`},
		{"number", models.Number(3000), "3000"},
		{"float", models.Number(0.5), "0.5"},
		{"boolean", models.Boolean(true), "true"},
		{"null", models.Value{Kind: models.KindNull}, "null"},
		{"undefined", models.Value{}, "undefined"},
		{"array", models.Array(models.Number(1), models.String("x")), `[1, "x"]`},
		{"empty object", models.Object(), "{}"},
		{
			"object keys",
			models.Object(
				models.Field{Key: "port", Value: models.Number(80)},
				models.Field{Key: "content-type", Value: models.String("json")},
			),
			`{ port: 80, "content-type": "json" }`,
		},
		{"resolved reference", models.Reference("HttpAdapter"), "HttpAdapter_1"},
		{"member of resolved reference", models.Reference("env.PORT"), "env_1.PORT"},
		{"unresolved reference", models.Reference("local"), "undefined"},
		{
			"call",
			models.Value{Kind: models.KindCall, Text: "HttpAdapter", Items: []models.Value{models.Number(1)}},
			"HttpAdapter_1(1)",
		},
		{
			"spread in array",
			models.Array(models.Value{Kind: models.KindSpread, Items: []models.Value{models.Reference("env")}}),
			"[...env_1]",
		},
		{"function keeps source", models.Value{Kind: models.KindFunction, Text: "() => 1"}, "() => 1"},
		{
			"function rewrites imported names",
			models.Value{Kind: models.KindFunction, Text: "() => new HttpAdapter(console)", Refs: []models.IdentRef{
				{Name: "HttpAdapter", Offset: 10},
				{Name: "console", Offset: 22},
			}},
			"() => new HttpAdapter_1(console)",
		},
		{
			"shorthand property keeps its key",
			models.Value{Kind: models.KindUnknown, Text: "wrap({ env })", Refs: []models.IdentRef{
				{Name: "wrap", Offset: 0},
				{Name: "env", Offset: 7, Shorthand: true},
			}},
			"wrap({ env: env_1 })",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderer.render(tt.value))
		})
	}
}
