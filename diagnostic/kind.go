package diagnostic

// Kind classifies a Diagnostic into one of the nine families spec.md §7
// enumerates. Grouping by family (rather than one flat error type per rule)
// keeps the taxonomy reviewable and lets tests assert "this failure is a
// SCHEMA_SEMANTICS problem" without depending on exact wording.
type Kind int

const (
	_ Kind = iota

	// Syntax errors pass through from the Parser collaborator unchanged.
	Syntax

	// Schema-structure: duplicate definitions, orphan/mismatched extensions,
	// undefined referenced types, reserved-name misuse.
	DuplicateDefinition
	OrphanExtension
	ExtensionKindMismatch
	DuplicateFieldAcrossExtensions
	UndefinedType
	ReservedName
	ShadowedIntrospectionType

	// Schema-semantics: root types, interface coherence, union members,
	// enum values, input-object cycles, directive cycles, default values.
	InvalidRootType
	IncoherentInterfaceImplementation
	InterfaceNotTransitivelyImplemented
	InvalidUnionMember
	DuplicateUnionMember
	EmptyEnum
	ReservedEnumValue
	DuplicateEnumValue
	InputObjectCycle
	DuplicateArgument
	InvalidDefaultValue
	DirectiveDefinitionCycle
	EmptyDirectiveLocations

	// Exec-structure: anonymous+named mixing, duplicate names, unknown
	// fragments, type system definitions found in an executable document.
	AnonymousPlusNamedOperations
	DuplicateOperationName
	DuplicateFragmentName
	TypeSystemDefinitionInExecutableDocument
	RootOperationNotDefined

	// Exec-selection: undefined fields, leaf/composite shape mismatches,
	// subscription shape, unmergeable selections.
	UndefinedField
	LeafFieldWithSelectionSet
	CompositeFieldWithoutSelectionSet
	InvalidSubscriptionShape
	UnmergeableSelection

	// Exec-argument: missing/unknown/duplicate arguments, value coercion,
	// directive location mismatch, non-repeatable directive reused.
	MissingRequiredArgument
	UnknownArgument
	DuplicateCallArgument
	ValueNotCoercible
	DirectiveLocationMismatch
	NonRepeatableDirectiveReused

	// Exec-fragment: bad type conditions, impossible spreads, fragment
	// cycles, unused fragments, unknown fragment targets.
	UnknownFragment
	InvalidFragmentTypeCondition
	FragmentSpreadImpossible
	FragmentCycle
	UnusedFragment

	// Exec-variable: undeclared/unused variables, non-input-type variables,
	// disallowed usage positions.
	UndefinedVariable
	UnusedVariable
	NonInputTypeVariable
	VariableUsageNotAllowed

	// Limit: recursion guards tripped.
	InputObjectCycleLimitExceeded
	FragmentCycleLimitExceeded
	ParserRecursionLimitExceeded
)

var names = map[Kind]string{
	Syntax:                                    "SYNTAX",
	DuplicateDefinition:                        "SCHEMA_STRUCTURE/duplicate-definition",
	OrphanExtension:                            "SCHEMA_STRUCTURE/orphan-extension",
	ExtensionKindMismatch:                      "SCHEMA_STRUCTURE/extension-kind-mismatch",
	DuplicateFieldAcrossExtensions:             "SCHEMA_STRUCTURE/duplicate-field-across-extensions",
	UndefinedType:                              "SCHEMA_STRUCTURE/undefined-type",
	ReservedName:                               "SCHEMA_STRUCTURE/reserved-name",
	ShadowedIntrospectionType:                  "SCHEMA_STRUCTURE/shadowed-introspection-type",
	InvalidRootType:                            "SCHEMA_SEMANTICS/invalid-root-type",
	IncoherentInterfaceImplementation:          "SCHEMA_SEMANTICS/incoherent-interface-implementation",
	InterfaceNotTransitivelyImplemented:        "SCHEMA_SEMANTICS/interface-not-transitively-implemented",
	InvalidUnionMember:                         "SCHEMA_SEMANTICS/invalid-union-member",
	DuplicateUnionMember:                       "SCHEMA_SEMANTICS/duplicate-union-member",
	EmptyEnum:                                  "SCHEMA_SEMANTICS/empty-enum",
	ReservedEnumValue:                          "SCHEMA_SEMANTICS/reserved-enum-value",
	DuplicateEnumValue:                         "SCHEMA_SEMANTICS/duplicate-enum-value",
	InputObjectCycle:                           "SCHEMA_SEMANTICS/input-object-cycle",
	DuplicateArgument:                          "SCHEMA_SEMANTICS/duplicate-argument",
	InvalidDefaultValue:                        "SCHEMA_SEMANTICS/invalid-default-value",
	DirectiveDefinitionCycle:                   "SCHEMA_SEMANTICS/directive-definition-cycle",
	EmptyDirectiveLocations:                    "SCHEMA_SEMANTICS/empty-directive-locations",
	AnonymousPlusNamedOperations:               "EXEC_STRUCTURE/anonymous-plus-named-operations",
	DuplicateOperationName:                     "EXEC_STRUCTURE/duplicate-operation-name",
	DuplicateFragmentName:                      "EXEC_STRUCTURE/duplicate-fragment-name",
	TypeSystemDefinitionInExecutableDocument:   "EXEC_STRUCTURE/type-system-definition-in-executable-document",
	RootOperationNotDefined:                    "EXEC_STRUCTURE/root-operation-not-defined",
	UndefinedField:                             "EXEC_SELECTION/undefined-field",
	LeafFieldWithSelectionSet:                  "EXEC_SELECTION/leaf-field-with-selection-set",
	CompositeFieldWithoutSelectionSet:          "EXEC_SELECTION/composite-field-without-selection-set",
	InvalidSubscriptionShape:                   "EXEC_SELECTION/invalid-subscription-shape",
	UnmergeableSelection:                       "EXEC_SELECTION/unmergeable-selection",
	MissingRequiredArgument:                    "EXEC_ARGUMENT/missing-required-argument",
	UnknownArgument:                            "EXEC_ARGUMENT/unknown-argument",
	DuplicateCallArgument:                      "EXEC_ARGUMENT/duplicate-argument",
	ValueNotCoercible:                          "EXEC_ARGUMENT/value-not-coercible",
	DirectiveLocationMismatch:                  "EXEC_ARGUMENT/directive-location-mismatch",
	NonRepeatableDirectiveReused:                "EXEC_ARGUMENT/non-repeatable-directive-reused",
	UnknownFragment:                            "EXEC_FRAGMENT/unknown-fragment",
	InvalidFragmentTypeCondition:               "EXEC_FRAGMENT/invalid-type-condition",
	FragmentSpreadImpossible:                   "EXEC_FRAGMENT/spread-impossible",
	FragmentCycle:                              "EXEC_FRAGMENT/fragment-cycle",
	UnusedFragment:                             "EXEC_FRAGMENT/unused-fragment",
	UndefinedVariable:                          "EXEC_VARIABLE/undefined-variable",
	UnusedVariable:                             "EXEC_VARIABLE/unused-variable",
	NonInputTypeVariable:                       "EXEC_VARIABLE/non-input-type-variable",
	VariableUsageNotAllowed:                    "EXEC_VARIABLE/usage-not-allowed",
	InputObjectCycleLimitExceeded:               "LIMIT/input-object-cycle-depth-exceeded",
	FragmentCycleLimitExceeded:                  "LIMIT/fragment-chain-depth-exceeded",
	ParserRecursionLimitExceeded:                "LIMIT/parser-recursion-exceeded",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "UNKNOWN"
}
