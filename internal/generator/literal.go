package generator

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/toyz/bunner/internal/models"
	"github.com/toyz/bunner/internal/templates"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// referenceResolver maps a reference as written in a source file to an
// expression usable in generated code
type referenceResolver func(name string) (string, bool)

// valueRenderer prints analyzer values back as TypeScript expressions
type valueRenderer struct {
	resolve referenceResolver
}

func (r valueRenderer) render(v models.Value) string {
	switch v.Kind {
	case models.KindUndefined:
		return "undefined"
	case models.KindNull:
		return "null"
	case models.KindString:
		return templates.QuoteString(v.Text)
	case models.KindNumber:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case models.KindBoolean:
		return strconv.FormatBool(v.Bool)
	case models.KindArray:
		parts := make([]string, len(v.Items))
		for i, item := range v.Items {
			parts[i] = r.render(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case models.KindObject:
		if len(v.Fields) == 0 {
			return "{}"
		}
		parts := make([]string, 0, len(v.Fields))
		for _, f := range v.Fields {
			if f.Key == "..." {
				parts = append(parts, r.render(f.Value))
				continue
			}
			parts = append(parts, renderKey(f.Key)+": "+r.render(f.Value))
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case models.KindReference:
		return r.reference(v.Text)
	case models.KindCall:
		args := make([]string, len(v.Items))
		for i, arg := range v.Items {
			args[i] = r.render(arg)
		}
		return r.reference(v.Text) + "(" + strings.Join(args, ", ") + ")"
	case models.KindSpread:
		if len(v.Items) == 1 {
			return "..." + r.render(v.Items[0])
		}
	case models.KindFunction, models.KindUnknown:
		return r.source(v)
	}
	return v.Text
}

// source returns the text of an opaque expression with every importable
// free identifier replaced by its import alias. Other identifiers are kept.
func (r valueRenderer) source(v models.Value) string {
	if r.resolve == nil || len(v.Refs) == 0 {
		return v.Text
	}

	refs := slices.Clone(v.Refs)
	slices.SortFunc(refs, func(a, b models.IdentRef) int { return a.Offset - b.Offset })

	var b strings.Builder
	last := 0
	for _, ref := range refs {
		end := ref.Offset + len(ref.Name)
		if ref.Offset < last || end > len(v.Text) || v.Text[ref.Offset:end] != ref.Name {
			continue
		}
		alias, ok := r.resolve(ref.Name)
		if !ok || alias == ref.Name {
			continue
		}
		b.WriteString(v.Text[last:ref.Offset])
		if ref.Shorthand {
			b.WriteString(ref.Name + ": ")
		}
		b.WriteString(alias)
		last = end
	}
	b.WriteString(v.Text[last:])
	return b.String()
}

// reference resolves name, falling back to resolving the head of a member
// expression. Unresolvable references render as undefined.
func (r valueRenderer) reference(name string) string {
	if r.resolve != nil {
		if expr, ok := r.resolve(name); ok {
			return expr
		}
		if head, rest, dotted := strings.Cut(name, "."); dotted {
			if expr, ok := r.resolve(head); ok {
				return expr + "." + rest
			}
		}
	}
	return "undefined"
}

func renderKey(key string) string {
	if identifierPattern.MatchString(key) {
		return key
	}
	return templates.QuoteString(key)
}
