// Package printer serializes a validated Schema or ExecutableDocument back
// to GraphQL textual syntax (spec.md §6's "Out of scope: ... pretty-
// printing", carried back in by SPEC_FULL.md's §4.9 to exercise the P5/P6
// round-trip properties). It has no teacher precedent to adapt — the
// teacher's graphiql.go serves a pre-built static asset, not a generated
// one — so this package is written directly from the GraphQL grammar
// spec.md §6 points at, in the same plain-function, no-state style every
// other package here uses.
package printer

import (
	"strconv"
	"strings"

	"github.com/shyptr/gqlcompiler/ast"
)

func printDescription(desc *ast.StringValue, indent string) string {
	if desc == nil {
		return ""
	}
	return indent + printStringValue(*desc, indent) + "\n"
}

func printStringValue(v ast.StringValue, indent string) string {
	if !v.Block {
		return quoteString(v.Value)
	}
	lines := strings.Split(v.Value, "\n")
	var sb strings.Builder
	sb.WriteString(`"""`)
	if len(lines) == 1 && !strings.Contains(lines[0], `"`) {
		sb.WriteString(lines[0])
	} else {
		sb.WriteString("\n")
		for _, line := range lines {
			if line == "" {
				sb.WriteString("\n")
				continue
			}
			sb.WriteString(indent)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString(indent)
	}
	sb.WriteString(`"""`)
	return sb.String()
}

func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				sb.WriteString(`\u`)
				sb.WriteString(strconv.FormatInt(int64(r), 16))
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// printValue renders a literal Value in GraphQL syntax. indent is used only
// for nested block-string descriptions encountered inside object values.
func printValue(v ast.Value, indent string) string {
	switch val := v.(type) {
	case nil:
		return ""
	case ast.NullValue:
		return "null"
	case ast.EnumValue:
		return val.Value.String()
	case ast.VariableValue:
		return "$" + val.Name.String()
	case ast.StringValue:
		return printStringValue(val, indent)
	case ast.IntValue:
		return val.Lexical
	case ast.FloatValue:
		return val.Lexical
	case ast.BooleanValue:
		if val.Value {
			return "true"
		}
		return "false"
	case ast.ListValue:
		parts := make([]string, len(val.Values))
		for i, e := range val.Values {
			parts[i] = printValue(e, indent)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ast.ObjectValue:
		parts := make([]string, len(val.Fields))
		for i, f := range val.Fields {
			parts[i] = f.Name.String() + ": " + printValue(f.Value, indent)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return ""
	}
}

func printArguments(args []ast.Argument) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Name.String() + ": " + printValue(a.Value, "")
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func printDirectives(ds []ast.Directive) string {
	if len(ds) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, d := range ds {
		sb.WriteString(" @")
		sb.WriteString(d.Name.String())
		sb.WriteString(printArguments(d.Arguments))
	}
	return sb.String()
}

func printInputValueDefinition(name ast.Name, typ ast.TypeRef, def ast.Value, directives []ast.Directive, desc *ast.StringValue, indent string) string {
	var sb strings.Builder
	sb.WriteString(printDescription(desc, indent))
	sb.WriteString(indent)
	sb.WriteString(name.String())
	sb.WriteString(": ")
	sb.WriteString(typ.String())
	if def != nil {
		sb.WriteString(" = ")
		sb.WriteString(printValue(def, indent))
	}
	sb.WriteString(printDirectives(directives))
	return sb.String()
}
