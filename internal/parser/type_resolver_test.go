package parser

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/bunner/internal/models"
)

// resolveAnnotation parses `let v: <typeSrc>;` and resolves its annotation
func resolveAnnotation(t *testing.T, typeSrc string) models.TypeInfo {
	t.Helper()

	src := []byte("let v: " + typeSrc + ";")
	p := sitter.NewParser()
	p.SetLanguage(typescript.GetLanguage())
	tree, err := p.ParseCtx(context.Background(), nil, src)
	require.NoError(t, err)
	defer tree.Close()

	annotation := findFirst(tree.RootNode(), "type_annotation")
	require.NotNil(t, annotation, "no type annotation in %q", src)
	return NewTypeResolver().Resolve(annotation, src)
}

func findFirst(node *sitter.Node, nodeType string) *sitter.Node {
	if node == nil {
		return nil
	}
	if node.Type() == nodeType {
		return node
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if found := findFirst(node.NamedChild(i), nodeType); found != nil {
			return found
		}
	}
	return nil
}

func TestTypeResolver_Primitives(t *testing.T) {
	for _, name := range []string{"string", "number", "boolean", "void", "any"} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, models.TypeInfo{TypeName: name}, resolveAnnotation(t, name))
		})
	}

	t.Run("unsupported keyword falls back to any", func(t *testing.T) {
		assert.Equal(t, "any", resolveAnnotation(t, "never").TypeName)
	})
}

func TestTypeResolver_References(t *testing.T) {
	t.Run("plain reference", func(t *testing.T) {
		assert.Equal(t, models.TypeInfo{TypeName: "UsersService"}, resolveAnnotation(t, "UsersService"))
	})

	t.Run("generic reference", func(t *testing.T) {
		info := resolveAnnotation(t, "Map<string, UsersService>")
		assert.Equal(t, "Map", info.TypeName)
		assert.Equal(t, []string{"string", "UsersService"}, info.TypeArgs)
	})

	t.Run("qualified name", func(t *testing.T) {
		assert.Equal(t, "config.Options", resolveAnnotation(t, "config.Options").TypeName)
	})
}

func TestTypeResolver_Arrays(t *testing.T) {
	info := resolveAnnotation(t, "Handler[]")

	assert.Equal(t, "Array", info.TypeName)
	assert.Equal(t, []string{"Handler"}, info.TypeArgs)
	assert.True(t, info.IsArray)
	require.NotNil(t, info.Items)
	assert.Equal(t, "Handler", info.Items.TypeName)
}

func TestTypeResolver_Literals(t *testing.T) {
	tests := []struct {
		src      string
		typeName string
		literal  any
	}{
		{"'a'", "string", "a"},
		{"42", "number", float64(42)},
		{"true", "boolean", true},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			info := resolveAnnotation(t, tt.src)
			assert.Equal(t, tt.typeName, info.TypeName)
			assert.Equal(t, []any{tt.literal}, info.Literals)
		})
	}
}

func TestTypeResolver_Unions(t *testing.T) {
	t.Run("all literal members flatten", func(t *testing.T) {
		info := resolveAnnotation(t, "'a' | 'b' | 'c'")

		assert.Equal(t, "string", info.TypeName)
		assert.True(t, info.IsUnion)
		assert.Equal(t, []any{"a", "b", "c"}, info.Literals)
		assert.Empty(t, info.UnionTypes)
	})

	t.Run("mixed literal kinds keep first nominal type", func(t *testing.T) {
		info := resolveAnnotation(t, "1 | 'x'")

		assert.Equal(t, "number", info.TypeName)
		assert.Equal(t, []any{float64(1), "x"}, info.Literals)
	})

	t.Run("nullable reference", func(t *testing.T) {
		info := resolveAnnotation(t, "string | null")

		assert.Equal(t, "string", info.TypeName)
		assert.True(t, info.IsUnion)
		require.Len(t, info.UnionTypes, 2)
		assert.Equal(t, "string", info.UnionTypes[0].TypeName)
		assert.Equal(t, "null", info.UnionTypes[1].TypeName)
	})

	t.Run("null first still picks the real type", func(t *testing.T) {
		info := resolveAnnotation(t, "undefined | Logger")
		assert.Equal(t, "Logger", info.TypeName)
	})

	t.Run("only empty members fall back to any", func(t *testing.T) {
		info := resolveAnnotation(t, "null | undefined")

		assert.Equal(t, "any", info.TypeName)
		assert.True(t, info.IsUnion)
		assert.Len(t, info.UnionTypes, 2)
	})
}

func TestTypeResolver_Unclassified(t *testing.T) {
	assert.Equal(t, "any", resolveAnnotation(t, "{ port: number }").TypeName)
	assert.Equal(t, "any", resolveAnnotation(t, "(a: string) => void").TypeName)
	assert.Equal(t, models.TypeInfo{TypeName: "any"}, NewTypeResolver().Resolve(nil, nil))
}
