// Package parser is the default ast.Parser implementation: a hand-rolled
// recursive-descent parser over the GraphQL (October 2021) grammar,
// grounded on the teacher's system/parser.go + internal/parser.go pairing
// of "lexer produces tokens, parser consumes them with one token of
// lookahead, syntax errors unwind via panic/recover" — reworked to collect
// ast.SyntaxError values with byte-offset ast.Span locations instead of the
// teacher's line/column-only errors.GraphQLError, and to return a
// best-effort partial Document (spec.md §6: "a Document (possibly
// partial...) plus any syntax errors") rather than a single go error.
package parser

import (
	"fmt"

	"github.com/shyptr/gqlcompiler/ast"
)

// defaultRecursionLimit bounds nested selection sets, list/non-null type
// wrapping, and list/object value nesting, matching spec.md §6's
// "recursion limit" collaborator contract (ast.RecursionLimiter).
const defaultRecursionLimit = 500

// Parser is the default recursive-descent implementation of ast.Parser. The
// zero value is usable; New is a documented convenience constructor.
type Parser struct {
	recursionLimit int
}

// New returns a Parser with the default recursion limit.
func New() *Parser { return &Parser{recursionLimit: defaultRecursionLimit} }

// SetRecursionLimit implements ast.RecursionLimiter.
func (p *Parser) SetRecursionLimit(n int) { p.recursionLimit = n }

func (p *Parser) limit() int {
	if p.recursionLimit <= 0 {
		return defaultRecursionLimit
	}
	return p.recursionLimit
}

// Parse implements ast.Parser.
func (p *Parser) Parse(source string, file ast.FileID) (*ast.Document, []ast.SyntaxError) {
	st := &state{lex: newLexer(source), file: file, limit: p.limit()}
	st.advance()
	doc := st.parseDocument()
	return doc, doc.Errors
}

// parseErr is the panic payload a state method raises to unwind out of a
// failed definition; state.parseDocument recovers it at the top level.
type parseErr struct {
	span ast.Span
	msg  string
}

func (e *parseErr) Error() string { return e.msg }

// state holds the one-token lookahead buffer and recursion-depth counter
// shared by every parse* method. It is not safe for concurrent use — a new
// state is allocated per Parse call.
type state struct {
	lex   *lexer
	file  ast.FileID
	tok   token
	limit int
	depth int
}

func (st *state) span(start, end int) ast.Span {
	return ast.Span{FileID: st.file, Start: start, End: end}
}

func (st *state) fail(s ast.Span, format string, args ...interface{}) {
	panic(&parseErr{span: s, msg: fmt.Sprintf(format, args...)})
}

func (st *state) advance() {
	tk, err := st.lex.next()
	if err != nil {
		st.fail(st.span(err.start, err.end), "%s", err.msg)
	}
	st.tok = tk
}

func (st *state) at(k tokenKind) bool { return st.tok.kind == k }

func (st *state) atName(text string) bool {
	return st.tok.kind == tokName && st.tok.value == text
}

func (st *state) eat(k tokenKind) token {
	if st.tok.kind != k {
		st.fail(st.span(st.tok.start, st.tok.end), "unexpected token %q", st.describe())
	}
	t := st.tok
	st.advance()
	return t
}

func (st *state) eatKeyword(text string) token {
	if !st.atName(text) {
		st.fail(st.span(st.tok.start, st.tok.end), "expected %q, found %q", text, st.describe())
	}
	t := st.tok
	st.advance()
	return t
}

func (st *state) describe() string {
	if st.tok.kind == tokEOF {
		return "<EOF>"
	}
	if st.tok.value != "" {
		return st.tok.value
	}
	return "<punctuation>"
}

func (st *state) enter() {
	st.depth++
	if st.depth > st.limit {
		st.fail(st.span(st.tok.start, st.tok.end), "recursion limit (%d) exceeded", st.limit)
	}
}

func (st *state) leave() { st.depth-- }

// parseDocument drives the whole parse, recovering from a failed
// definition so the rest of the document is still a well-formed Document
// with as many definitions as could be parsed before the first error —
// spec.md §6's "best-effort tree to keep binding against".
func (st *state) parseDocument() *ast.Document {
	doc := &ast.Document{}
	func() {
		defer func() {
			if r := recover(); r != nil {
				pe, ok := r.(*parseErr)
				if !ok {
					panic(r)
				}
				doc.Errors = append(doc.Errors, ast.SyntaxError{Span: pe.span, Message: pe.msg})
			}
		}()
		for !st.at(tokEOF) {
			doc.Definitions = append(doc.Definitions, st.parseDefinition())
		}
	}()
	return doc
}

func (st *state) parseDefinition() ast.Node {
	st.enter()
	defer st.leave()

	if st.at(tokBraceL) {
		start := st.tok.start
		set := st.parseSelectionSet()
		return ast.OperationDefinition{Type: ast.Query, SelectionSet: set, Loc: st.span(start, set.Loc.End)}
	}

	var desc *ast.StringValue
	if st.at(tokString) {
		sv := st.parseStringValue()
		desc = &sv
	}

	if !st.at(tokName) {
		st.fail(st.span(st.tok.start, st.tok.end), "unexpected token %q", st.describe())
	}

	switch st.tok.value {
	case "query", "mutation", "subscription":
		if desc != nil {
			st.fail(desc.Loc, "a description is not allowed before an operation")
		}
		return st.parseOperationDefinitionNamed()
	case "fragment":
		if desc != nil {
			st.fail(desc.Loc, "a description is not allowed before a fragment")
		}
		return st.parseFragmentDefinition()
	case "schema":
		return st.parseSchemaDefinition(desc)
	case "scalar":
		return st.parseScalarTypeDefinition(desc)
	case "type":
		return st.parseObjectTypeDefinition(desc)
	case "interface":
		return st.parseInterfaceTypeDefinition(desc)
	case "union":
		return st.parseUnionTypeDefinition(desc)
	case "enum":
		return st.parseEnumTypeDefinition(desc)
	case "input":
		return st.parseInputObjectTypeDefinition(desc)
	case "directive":
		return st.parseDirectiveDefinition(desc)
	case "extend":
		if desc != nil {
			st.fail(desc.Loc, "a description is not allowed before an extend")
		}
		return st.parseTypeSystemExtension()
	default:
		st.fail(st.span(st.tok.start, st.tok.end), "unexpected %q", st.tok.value)
		return nil
	}
}

// --- Names & type references ---------------------------------------------

func (st *state) parseName() ast.Name {
	t := st.eat(tokName)
	n, err := ast.NewName(t.value, st.span(t.start, t.end))
	if err != nil {
		st.fail(st.span(t.start, t.end), "%s", err)
	}
	return n
}

func (st *state) parseNamedTypeRef() ast.NamedTypeRef {
	start := st.tok.start
	n := st.parseName()
	return ast.NamedTypeRef{Name: n, Loc: st.span(start, n.Location().End)}
}

func (st *state) parseTypeRef() ast.TypeRef {
	st.enter()
	defer st.leave()

	start := st.tok.start
	var ref ast.TypeRef
	if st.at(tokBracketL) {
		st.advance()
		elem := st.parseTypeRef()
		end := st.eat(tokBracketR).end
		ref = ast.ListTypeRef{Element: elem, Loc: st.span(start, end)}
	} else {
		ref = st.parseNamedTypeRef()
	}
	if st.at(tokBang) {
		bangEnd := st.tok.end
		st.advance()
		ref = ast.NonNullTypeRef{Element: ref, Loc: st.span(start, bangEnd)}
	}
	return ref
}

// --- Values ---------------------------------------------------------------

func (st *state) parseStringValue() ast.StringValue {
	t := st.eat(tokString)
	return ast.StringValue{Value: t.value, Loc: st.span(t.start, t.end)}
}

// parseValue implements Value[Const] (spec §2.9). constant forbids a bare
// VariableValue — used for default values and directive arguments in
// type-system positions, where a variable cannot appear.
func (st *state) parseValue(constant bool) ast.Value {
	st.enter()
	defer st.leave()

	start := st.tok.start
	switch {
	case st.at(tokDollar):
		if constant {
			st.fail(st.span(start, st.tok.end), "unexpected variable in a const context")
		}
		st.advance()
		name := st.parseName()
		return ast.VariableValue{Name: name, Loc: st.span(start, name.Location().End)}
	case st.at(tokInt):
		t := st.tok
		st.advance()
		return ast.IntValue{Lexical: t.value, Loc: st.span(t.start, t.end)}
	case st.at(tokFloat):
		t := st.tok
		st.advance()
		return ast.FloatValue{Lexical: t.value, Loc: st.span(t.start, t.end)}
	case st.at(tokString):
		return st.parseStringValue()
	case st.atName("true"):
		end := st.tok.end
		st.advance()
		return ast.BooleanValue{Value: true, Loc: st.span(start, end)}
	case st.atName("false"):
		end := st.tok.end
		st.advance()
		return ast.BooleanValue{Value: false, Loc: st.span(start, end)}
	case st.atName("null"):
		end := st.tok.end
		st.advance()
		return ast.NullValue{Loc: st.span(start, end)}
	case st.at(tokName):
		name := st.parseName()
		return ast.EnumValue{Value: name, Loc: st.span(start, name.Location().End)}
	case st.at(tokBracketL):
		st.advance()
		var values []ast.Value
		for !st.at(tokBracketR) {
			values = append(values, st.parseValue(constant))
		}
		end := st.eat(tokBracketR).end
		return ast.ListValue{Values: values, Loc: st.span(start, end)}
	case st.at(tokBraceL):
		st.advance()
		var fields []ast.ObjectField
		for !st.at(tokBraceR) {
			fstart := st.tok.start
			name := st.parseName()
			st.eat(tokColon)
			v := st.parseValue(constant)
			fields = append(fields, ast.ObjectField{Name: name, Value: v, Loc: st.span(fstart, v.Location().End)})
		}
		end := st.eat(tokBraceR).end
		return ast.ObjectValue{Fields: fields, Loc: st.span(start, end)}
	default:
		st.fail(st.span(st.tok.start, st.tok.end), "unexpected token %q while parsing a value", st.describe())
		return nil
	}
}

// --- Arguments & directives ------------------------------------------------

func (st *state) parseArguments(constant bool) []ast.Argument {
	if !st.at(tokParenL) {
		return nil
	}
	st.advance()
	var args []ast.Argument
	for !st.at(tokParenR) {
		start := st.tok.start
		name := st.parseName()
		st.eat(tokColon)
		v := st.parseValue(constant)
		args = append(args, ast.Argument{Name: name, Value: v, Loc: st.span(start, v.Location().End)})
	}
	st.eat(tokParenR)
	return args
}

func (st *state) parseDirectives(constant bool) []ast.Directive {
	var directives []ast.Directive
	for st.at(tokAt) {
		start := st.tok.start
		st.advance()
		name := st.parseName()
		args := st.parseArguments(constant)
		end := name.Location().End
		if n := len(args); n > 0 {
			end = args[n-1].Loc.End
		}
		directives = append(directives, ast.Directive{Name: name, Arguments: args, Loc: st.span(start, end)})
	}
	return directives
}

// --- Executable definitions -------------------------------------------------

func (st *state) parseOperationDefinitionNamed() ast.OperationDefinition {
	start := st.tok.start
	var opType ast.OperationType
	switch st.tok.value {
	case "query":
		opType = ast.Query
	case "mutation":
		opType = ast.Mutation
	case "subscription":
		opType = ast.Subscription
	}
	st.advance()

	var name ast.Name
	if st.at(tokName) {
		name = st.parseName()
	}
	vars := st.parseVariableDefinitions()
	directives := st.parseDirectives(false)
	set := st.parseSelectionSet()
	return ast.OperationDefinition{
		Type: opType, Name: name, Variables: vars, Directives: directives,
		SelectionSet: set, Loc: st.span(start, set.Loc.End),
	}
}

func (st *state) parseVariableDefinitions() []ast.VariableDefinition {
	if !st.at(tokParenL) {
		return nil
	}
	st.advance()
	var vars []ast.VariableDefinition
	for !st.at(tokParenR) {
		start := st.tok.start
		st.eat(tokDollar)
		name := st.parseName()
		st.eat(tokColon)
		typ := st.parseTypeRef()
		var def ast.Value
		if st.at(tokEquals) {
			st.advance()
			def = st.parseValue(true)
		}
		directives := st.parseDirectives(true)
		end := typ.Location().End
		if def != nil {
			end = def.Location().End
		}
		if n := len(directives); n > 0 {
			end = directives[n-1].Loc.End
		}
		vars = append(vars, ast.VariableDefinition{
			Name: name, Type: typ, DefaultValue: def, Directives: directives, Loc: st.span(start, end),
		})
	}
	st.eat(tokParenR)
	return vars
}

func (st *state) parseFragmentDefinition() ast.FragmentDefinition {
	start := st.tok.start
	st.advance() // "fragment"
	name := st.parseFragmentName()
	st.eatKeyword("on")
	cond := st.parseName()
	directives := st.parseDirectives(false)
	set := st.parseSelectionSet()
	return ast.FragmentDefinition{
		Name: name, TypeCondition: cond, Directives: directives,
		SelectionSet: set, Loc: st.span(start, set.Loc.End),
	}
}

// parseFragmentName parses a Name that is not the reserved word "on"
// (spec §2.8 FragmentName).
func (st *state) parseFragmentName() ast.Name {
	if st.atName("on") {
		st.fail(st.span(st.tok.start, st.tok.end), `unexpected fragment name "on"`)
	}
	return st.parseName()
}

func (st *state) parseSelectionSet() ast.SelectionSet {
	st.enter()
	defer st.leave()

	start := st.eat(tokBraceL).start
	var selections []ast.Selection
	for !st.at(tokBraceR) {
		selections = append(selections, st.parseSelection())
	}
	end := st.eat(tokBraceR).end
	return ast.SelectionSet{Selections: selections, Loc: st.span(start, end)}
}

func (st *state) parseSelection() ast.Selection {
	if st.at(tokSpread) {
		return st.parseFragmentSpreadOrInline()
	}
	return st.parseField()
}

func (st *state) parseField() ast.Field {
	start := st.tok.start
	first := st.parseName()
	var alias, name ast.Name
	if st.at(tokColon) {
		st.advance()
		alias = first
		name = st.parseName()
	} else {
		name = first
	}
	args := st.parseArguments(false)
	directives := st.parseDirectives(false)
	var set ast.SelectionSet
	end := name.Location().End
	if n := len(args); n > 0 {
		end = args[n-1].Loc.End
	}
	if n := len(directives); n > 0 {
		end = directives[n-1].Loc.End
	}
	if st.at(tokBraceL) {
		set = st.parseSelectionSet()
		end = set.Loc.End
	}
	return ast.Field{
		Alias: alias, Name: name, Arguments: args, Directives: directives,
		SelectionSet: set, Loc: st.span(start, end),
	}
}

func (st *state) parseFragmentSpreadOrInline() ast.Selection {
	start := st.tok.start
	st.advance() // "..."
	if st.at(tokName) && !st.atName("on") {
		name := st.parseName()
		directives := st.parseDirectives(false)
		end := name.Location().End
		if n := len(directives); n > 0 {
			end = directives[n-1].Loc.End
		}
		return ast.FragmentSpread{FragmentName: name, Directives: directives, Loc: st.span(start, end)}
	}
	var cond *ast.Name
	if st.atName("on") {
		st.advance()
		n := st.parseName()
		cond = &n
	}
	directives := st.parseDirectives(false)
	set := st.parseSelectionSet()
	return ast.InlineFragment{
		TypeCondition: cond, Directives: directives, SelectionSet: set, Loc: st.span(start, set.Loc.End),
	}
}

// --- Type-system definitions ------------------------------------------------

func (st *state) parseOperationTypeDefinitions() []ast.OperationTypeDefinition {
	st.eat(tokBraceL)
	var defs []ast.OperationTypeDefinition
	for !st.at(tokBraceR) {
		start := st.tok.start
		opType := st.parseOperationTypeKeyword()
		st.eat(tokColon)
		name := st.parseName()
		defs = append(defs, ast.OperationTypeDefinition{Operation: opType, Type: name, Loc: st.span(start, name.Location().End)})
	}
	st.eat(tokBraceR)
	return defs
}

func (st *state) parseOperationTypeKeyword() ast.OperationType {
	switch {
	case st.atName("query"):
		st.advance()
		return ast.Query
	case st.atName("mutation"):
		st.advance()
		return ast.Mutation
	case st.atName("subscription"):
		st.advance()
		return ast.Subscription
	default:
		st.fail(st.span(st.tok.start, st.tok.end), "expected one of query/mutation/subscription, found %q", st.describe())
		return ""
	}
}

func (st *state) parseSchemaDefinition(desc *ast.StringValue) ast.SchemaDefinition {
	start := st.tok.start
	if desc != nil {
		start = desc.Loc.Start
	}
	st.advance() // "schema"
	directives := st.parseDirectives(true)
	ops := st.parseOperationTypeDefinitions()
	return ast.SchemaDefinition{Description: desc, Directives: directives, OperationTypes: ops, Loc: st.span(start, st.tok.start)}
}

func (st *state) parseScalarTypeDefinition(desc *ast.StringValue) ast.ScalarTypeDefinition {
	start := st.tok.start
	if desc != nil {
		start = desc.Loc.Start
	}
	st.advance() // "scalar"
	name := st.parseName()
	directives := st.parseDirectives(true)
	end := name.Location().End
	if n := len(directives); n > 0 {
		end = directives[n-1].Loc.End
	}
	return ast.ScalarTypeDefinition{Description: desc, Name: name, Directives: directives, Loc: st.span(start, end)}
}

func (st *state) parseImplementsInterfaces() []ast.Name {
	if !st.atName("implements") {
		return nil
	}
	st.advance()
	st.atSign() // consume optional leading '&'
	var names []ast.Name
	names = append(names, st.parseName())
	for st.at(tokAmp) {
		st.advance()
		names = append(names, st.parseName())
	}
	return names
}

// atSign consumes a leading '&' before the first interface name, which the
// grammar permits but does not require (spec §3.7 ImplementsInterfaces).
func (st *state) atSign() {
	if st.at(tokAmp) {
		st.advance()
	}
}

func (st *state) parseArgumentsDefinition() []ast.InputValueDefinition {
	if !st.at(tokParenL) {
		return nil
	}
	st.advance()
	var defs []ast.InputValueDefinition
	for !st.at(tokParenR) {
		defs = append(defs, st.parseInputValueDefinition())
	}
	st.eat(tokParenR)
	return defs
}

func (st *state) parseInputValueDefinition() ast.InputValueDefinition {
	start := st.tok.start
	var desc *ast.StringValue
	if st.at(tokString) {
		sv := st.parseStringValue()
		desc = &sv
		start = sv.Loc.Start
	}
	name := st.parseName()
	st.eat(tokColon)
	typ := st.parseTypeRef()
	var def ast.Value
	if st.at(tokEquals) {
		st.advance()
		def = st.parseValue(true)
	}
	directives := st.parseDirectives(true)
	end := typ.Location().End
	if def != nil {
		end = def.Location().End
	}
	if n := len(directives); n > 0 {
		end = directives[n-1].Loc.End
	}
	return ast.InputValueDefinition{
		Description: desc, Name: name, Type: typ, DefaultValue: def, Directives: directives, Loc: st.span(start, end),
	}
}

func (st *state) parseFieldsDefinition() []ast.FieldDefinition {
	if !st.at(tokBraceL) {
		return nil
	}
	st.advance()
	var fields []ast.FieldDefinition
	for !st.at(tokBraceR) {
		fields = append(fields, st.parseFieldDefinition())
	}
	st.eat(tokBraceR)
	return fields
}

func (st *state) parseFieldDefinition() ast.FieldDefinition {
	start := st.tok.start
	var desc *ast.StringValue
	if st.at(tokString) {
		sv := st.parseStringValue()
		desc = &sv
		start = sv.Loc.Start
	}
	name := st.parseName()
	args := st.parseArgumentsDefinition()
	st.eat(tokColon)
	typ := st.parseTypeRef()
	directives := st.parseDirectives(true)
	end := typ.Location().End
	if n := len(directives); n > 0 {
		end = directives[n-1].Loc.End
	}
	return ast.FieldDefinition{
		Description: desc, Name: name, Arguments: args, Type: typ, Directives: directives, Loc: st.span(start, end),
	}
}

func (st *state) parseObjectTypeDefinition(desc *ast.StringValue) ast.ObjectTypeDefinition {
	start := st.tok.start
	if desc != nil {
		start = desc.Loc.Start
	}
	st.advance() // "type"
	name := st.parseName()
	ifaces := st.parseImplementsInterfaces()
	directives := st.parseDirectives(true)
	fields := st.parseFieldsDefinition()
	return ast.ObjectTypeDefinition{
		Description: desc, Name: name, ImplementsInterfaces: ifaces,
		Directives: directives, Fields: fields, Loc: st.span(start, st.tok.start),
	}
}

func (st *state) parseInterfaceTypeDefinition(desc *ast.StringValue) ast.InterfaceTypeDefinition {
	start := st.tok.start
	if desc != nil {
		start = desc.Loc.Start
	}
	st.advance() // "interface"
	name := st.parseName()
	ifaces := st.parseImplementsInterfaces()
	directives := st.parseDirectives(true)
	fields := st.parseFieldsDefinition()
	return ast.InterfaceTypeDefinition{
		Description: desc, Name: name, ImplementsInterfaces: ifaces,
		Directives: directives, Fields: fields, Loc: st.span(start, st.tok.start),
	}
}

func (st *state) parseUnionMemberTypes() []ast.Name {
	if !st.at(tokEquals) {
		return nil
	}
	st.advance()
	if st.at(tokPipe) {
		st.advance()
	}
	var names []ast.Name
	names = append(names, st.parseName())
	for st.at(tokPipe) {
		st.advance()
		names = append(names, st.parseName())
	}
	return names
}

func (st *state) parseUnionTypeDefinition(desc *ast.StringValue) ast.UnionTypeDefinition {
	start := st.tok.start
	if desc != nil {
		start = desc.Loc.Start
	}
	st.advance() // "union"
	name := st.parseName()
	directives := st.parseDirectives(true)
	members := st.parseUnionMemberTypes()
	return ast.UnionTypeDefinition{
		Description: desc, Name: name, Directives: directives, Members: members, Loc: st.span(start, st.tok.start),
	}
}

func (st *state) parseEnumValuesDefinition() []ast.EnumValueDefinition {
	if !st.at(tokBraceL) {
		return nil
	}
	st.advance()
	var values []ast.EnumValueDefinition
	for !st.at(tokBraceR) {
		start := st.tok.start
		var desc *ast.StringValue
		if st.at(tokString) {
			sv := st.parseStringValue()
			desc = &sv
			start = sv.Loc.Start
		}
		name := st.parseName()
		directives := st.parseDirectives(true)
		end := name.Location().End
		if n := len(directives); n > 0 {
			end = directives[n-1].Loc.End
		}
		values = append(values, ast.EnumValueDefinition{Description: desc, Value: name, Directives: directives, Loc: st.span(start, end)})
	}
	st.eat(tokBraceR)
	return values
}

func (st *state) parseEnumTypeDefinition(desc *ast.StringValue) ast.EnumTypeDefinition {
	start := st.tok.start
	if desc != nil {
		start = desc.Loc.Start
	}
	st.advance() // "enum"
	name := st.parseName()
	directives := st.parseDirectives(true)
	values := st.parseEnumValuesDefinition()
	return ast.EnumTypeDefinition{
		Description: desc, Name: name, Directives: directives, Values: values, Loc: st.span(start, st.tok.start),
	}
}

func (st *state) parseInputFieldsDefinition() []ast.InputValueDefinition {
	if !st.at(tokBraceL) {
		return nil
	}
	st.advance()
	var fields []ast.InputValueDefinition
	for !st.at(tokBraceR) {
		fields = append(fields, st.parseInputValueDefinition())
	}
	st.eat(tokBraceR)
	return fields
}

func (st *state) parseInputObjectTypeDefinition(desc *ast.StringValue) ast.InputObjectTypeDefinition {
	start := st.tok.start
	if desc != nil {
		start = desc.Loc.Start
	}
	st.advance() // "input"
	name := st.parseName()
	directives := st.parseDirectives(true)
	fields := st.parseInputFieldsDefinition()
	return ast.InputObjectTypeDefinition{
		Description: desc, Name: name, Directives: directives, Fields: fields, Loc: st.span(start, st.tok.start),
	}
}

func (st *state) parseDirectiveLocations() []ast.DirectiveLocation {
	if st.at(tokPipe) {
		st.advance()
	}
	var locs []ast.DirectiveLocation
	locs = append(locs, st.parseDirectiveLocation())
	for st.at(tokPipe) {
		st.advance()
		locs = append(locs, st.parseDirectiveLocation())
	}
	return locs
}

func (st *state) parseDirectiveLocation() ast.DirectiveLocation {
	name := st.eat(tokName)
	loc := ast.DirectiveLocation(name.value)
	switch loc {
	case ast.LocQuery, ast.LocMutation, ast.LocSubscription, ast.LocField,
		ast.LocFragmentDefinition, ast.LocFragmentSpread, ast.LocInlineFragment, ast.LocVariableDefinition,
		ast.LocSchema, ast.LocScalar, ast.LocObject, ast.LocFieldDefinition, ast.LocArgumentDefinition,
		ast.LocInterface, ast.LocUnion, ast.LocEnum, ast.LocEnumValue, ast.LocInputObject, ast.LocInputFieldDefinition:
		return loc
	default:
		st.fail(st.span(name.start, name.end), "unknown directive location %q", name.value)
		return ""
	}
}

func (st *state) parseDirectiveDefinition(desc *ast.StringValue) ast.DirectiveDefinition {
	start := st.tok.start
	if desc != nil {
		start = desc.Loc.Start
	}
	st.advance() // "directive"
	st.eat(tokAt)
	name := st.parseName()
	args := st.parseArgumentsDefinition()
	repeatable := false
	if st.atName("repeatable") {
		repeatable = true
		st.advance()
	}
	st.eatKeyword("on")
	locs := st.parseDirectiveLocations()
	return ast.DirectiveDefinition{
		Description: desc, Name: name, Arguments: args, Repeatable: repeatable, Locations: locs, Loc: st.span(start, st.tok.start),
	}
}

// --- Type-system extensions -------------------------------------------------

func (st *state) parseTypeSystemExtension() ast.Node {
	start := st.tok.start
	st.advance() // "extend"
	if !st.at(tokName) {
		st.fail(st.span(st.tok.start, st.tok.end), "expected a type-system definition keyword after \"extend\", found %q", st.describe())
	}
	switch st.tok.value {
	case "schema":
		st.advance()
		directives := st.parseDirectives(true)
		var ops []ast.OperationTypeDefinition
		if st.at(tokBraceL) {
			ops = st.parseOperationTypeDefinitions()
		}
		return ast.SchemaExtension{Directives: directives, OperationTypes: ops, Loc: st.span(start, st.tok.start)}
	case "scalar":
		st.advance()
		name := st.parseName()
		directives := st.parseDirectives(true)
		return ast.ScalarTypeExtension{Name: name, Directives: directives, Loc: st.span(start, st.tok.start)}
	case "type":
		st.advance()
		name := st.parseName()
		ifaces := st.parseImplementsInterfaces()
		directives := st.parseDirectives(true)
		fields := st.parseFieldsDefinition()
		return ast.ObjectTypeExtension{Name: name, ImplementsInterfaces: ifaces, Directives: directives, Fields: fields, Loc: st.span(start, st.tok.start)}
	case "interface":
		st.advance()
		name := st.parseName()
		ifaces := st.parseImplementsInterfaces()
		directives := st.parseDirectives(true)
		fields := st.parseFieldsDefinition()
		return ast.InterfaceTypeExtension{Name: name, ImplementsInterfaces: ifaces, Directives: directives, Fields: fields, Loc: st.span(start, st.tok.start)}
	case "union":
		st.advance()
		name := st.parseName()
		directives := st.parseDirectives(true)
		members := st.parseUnionMemberTypes()
		return ast.UnionTypeExtension{Name: name, Directives: directives, Members: members, Loc: st.span(start, st.tok.start)}
	case "enum":
		st.advance()
		name := st.parseName()
		directives := st.parseDirectives(true)
		values := st.parseEnumValuesDefinition()
		return ast.EnumTypeExtension{Name: name, Directives: directives, Values: values, Loc: st.span(start, st.tok.start)}
	case "input":
		st.advance()
		name := st.parseName()
		directives := st.parseDirectives(true)
		fields := st.parseInputFieldsDefinition()
		return ast.InputObjectTypeExtension{Name: name, Directives: directives, Fields: fields, Loc: st.span(start, st.tok.start)}
	default:
		st.fail(st.span(st.tok.start, st.tok.end), "unknown extension kind %q", st.tok.value)
		return nil
	}
}
