package printer

import (
	"strings"

	"github.com/shyptr/gqlcompiler/executable"
)

// PrintExecutableDocument serializes doc back to GraphQL operation/fragment
// syntax, for the P6 round-trip property (SPEC_FULL.md §8): parsing the
// result against the same schema and binding again yields a structurally
// identical document.
func PrintExecutableDocument(doc *executable.ExecutableDocument) string {
	var blocks []string

	for _, name := range doc.Fragments.Keys() {
		f, _ := doc.Fragments.Get(name)
		blocks = append(blocks, printFragment(f))
	}

	if doc.Operations.Anonymous != nil {
		blocks = append(blocks, printOperation(doc.Operations.Anonymous))
	}
	for _, name := range doc.Operations.Named.Keys() {
		op, _ := doc.Operations.Named.Get(name)
		blocks = append(blocks, printOperation(op))
	}

	return strings.Join(blocks, "\n\n") + "\n"
}

func printFragment(f *executable.Fragment) string {
	var sb strings.Builder
	sb.WriteString("fragment ")
	sb.WriteString(f.Name.String())
	sb.WriteString(" on ")
	sb.WriteString(f.TypeCondition.String())
	sb.WriteString(printDirectives(f.Directives))
	sb.WriteString(" ")
	sb.WriteString(printSelectionSet(f.SelectionSet, ""))
	return sb.String()
}

func printOperation(op *executable.Operation) string {
	var sb strings.Builder
	sb.WriteString(string(op.Type))
	if !op.Name.IsZero() {
		sb.WriteString(" ")
		sb.WriteString(op.Name.String())
	}
	sb.WriteString(printVariableDefinitions(op.Variables))
	sb.WriteString(printDirectives(op.Directives))
	sb.WriteString(" ")
	sb.WriteString(printSelectionSet(op.SelectionSet, ""))
	return sb.String()
}

func printVariableDefinitions(vars []executable.VariableDefinition) string {
	if len(vars) == 0 {
		return ""
	}
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = "$" + v.Name.String() + ": " + v.Type.String() + printDefaultAndDirectives(v.DefaultValue, v.Directives)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func printSelectionSet(set *executable.SelectionSet, indent string) string {
	if set.IsEmpty() {
		return "{\n" + indent + "}"
	}
	inner := indent + "  "
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, sel := range set.Selections {
		sb.WriteString(inner)
		sb.WriteString(printSelection(sel, inner))
		sb.WriteString("\n")
	}
	sb.WriteString(indent)
	sb.WriteString("}")
	return sb.String()
}

func printSelection(sel executable.Selection, indent string) string {
	switch s := sel.(type) {
	case *executable.Field:
		return printField(s, indent)
	case *executable.InlineFragment:
		return printInlineFragment(s, indent)
	case *executable.FragmentSpread:
		return "..." + s.FragmentName.String() + printDirectives(s.Directives)
	default:
		return ""
	}
}

func printField(f *executable.Field, indent string) string {
	var sb strings.Builder
	if !f.Alias.IsZero() {
		sb.WriteString(f.Alias.String())
		sb.WriteString(": ")
	}
	sb.WriteString(f.Name.String())
	sb.WriteString(printArguments(f.Arguments))
	sb.WriteString(printDirectives(f.Directives))
	if !f.SelectionSet.IsEmpty() {
		sb.WriteString(" ")
		sb.WriteString(printSelectionSet(f.SelectionSet, indent))
	}
	return sb.String()
}

func printInlineFragment(f *executable.InlineFragment, indent string) string {
	var sb strings.Builder
	sb.WriteString("...")
	if f.Explicit {
		sb.WriteString(" on ")
		sb.WriteString(f.TypeCondition.String())
	}
	sb.WriteString(printDirectives(f.Directives))
	sb.WriteString(" ")
	sb.WriteString(printSelectionSet(f.SelectionSet, indent))
	return sb.String()
}
