// Package ast defines the typed Abstract Syntax Tree the parser
// produces (spec.md §3.2). Every node carries a token.Span; sum types
// (Description, AnnotationValue, Value, PrefixValueAst) are modeled as
// small sealed interfaces, the idiomatic Go analogue of the source
// grammar's enums — following the same "one interface, one struct per
// variant" shape cue/ast uses for CUE's expression tree. RangeKind and
// DocumentKind, which carry no payload, are plain int enums.
package ast

import (
	lmlerrors "github.com/linkml-go/linkml/errors"
	"github.com/linkml-go/linkml/token"
)

// Spanned pairs a value with the span of source text it was parsed
// from (spec.md §3.1).
type Spanned[T any] struct {
	Value T
	Span  token.Span
}

// NewSpanned builds a Spanned value.
func NewSpanned[T any](v T, span token.Span) Spanned[T] {
	return Spanned[T]{Value: v, Span: span}
}

// DocumentKind distinguishes a schema document from an instance
// document (spec.md §3.2, §3.4).
type DocumentKind int

const (
	DocumentUnknown DocumentKind = iota
	DocumentSchema
	DocumentInstance
)

func (k DocumentKind) String() string {
	switch k {
	case DocumentSchema:
		return "schema"
	case DocumentInstance:
		return "instance"
	default:
		return "unknown"
	}
}

// Description is the sum type Inline | Block (spec.md §3.3).
type Description interface {
	isDescription()
	Text() string
}

type InlineDescription string

func (InlineDescription) isDescription()    {}
func (d InlineDescription) Text() string    { return string(d) }

type BlockDescription string

func (BlockDescription) isDescription() {}
func (d BlockDescription) Text() string { return string(d) }

// Value is the sum type String | Number(f64) | Integer(i64) used for
// bound constraints (spec.md §3.2 ValueAst).
type Value interface {
	isValue()
}

type StringValue string

func (StringValue) isValue() {}

type NumberValue float64

func (NumberValue) isValue() {}

type IntegerValue int64

func (IntegerValue) isValue() {}

// AnnotationValue is the sum type Bool | Number | String | BlockString
// | List (spec.md §3.2 AnnotationValueAst).
type AnnotationValue interface {
	isAnnotationValue()
}

type AnnotationBool bool

func (AnnotationBool) isAnnotationValue() {}

type AnnotationNumber float64

func (AnnotationNumber) isAnnotationValue() {}

type AnnotationString string

func (AnnotationString) isAnnotationValue() {}

type AnnotationBlock string

func (AnnotationBlock) isAnnotationValue() {}

type AnnotationList []Spanned[string]

func (AnnotationList) isAnnotationValue() {}

// Annotations is an ordered map of annotation values (spec.md §3.2
// AnnotationsAst).
type Annotations struct {
	Entries *OrderedAnnotations
}

// RangeKind distinguishes a slot range that names a class from one
// that is instance-bound (spec.md §3.2, §4.5).
type RangeKind int

const (
	RangeKindUnspecified RangeKind = iota
	RangeKindClass
	RangeKindInstance
)

func (k RangeKind) String() string {
	switch k {
	case RangeKindClass:
		return "class"
	case RangeKindInstance:
		return "instance"
	default:
		return ""
	}
}

// PrefixValueAst is the sum type Simple(uri) | Complex{prefix,
// reference} spec.md §3.3(c) requires prefix definitions to promote
// into. Dialect A accepts either a bare scalar (Simple) or a nested
// mapping with prefix_prefix/prefix_reference keys (Complex), the
// LinkML convention for "synonym" CURIE prefixes.
type PrefixValueAst interface {
	isPrefixValue()
}

type SimplePrefixAst string

func (SimplePrefixAst) isPrefixValue() {}

type ComplexPrefixAst struct {
	Prefix    string
	Reference string
}

func (ComplexPrefixAst) isPrefixValue() {}

// StructuredPatternAst is a regex-with-placeholders declaration (spec.md
// §3.2, §4.4.4).
type StructuredPatternAst struct {
	Syntax        string
	Interpolated  bool
}

// RuleAst is an ordered list of pre/post string conditions (spec.md
// §3.2).
type RuleAst struct {
	Preconditions  *OrderedStringSpans
	Postconditions *OrderedStringSpans
}

// ConditionalRequirementAst models a class's if_required entry: when
// Condition (a slot name) is present, ThenRequired names slots that
// become required (SPEC_FULL.md ADDENDUM D.2).
type ConditionalRequirementAst struct {
	Condition    string
	ThenRequired []Spanned[string]
}

// UniqueKeyAst names a set of slots that together must be unique
// within instances of a class (SPEC_FULL.md ADDENDUM D.2).
type UniqueKeyAst struct {
	Name           string
	UniqueKeySlots []Spanned[string]
}

// RecursionOptionsAst carries a class's recursion hints verbatim
// through promotion (SPEC_FULL.md ADDENDUM D.1); the core does not
// interpret them.
type RecursionOptionsAst struct {
	UseBox   bool
	MaxDepth *int64
}

// ContributorAst names a schema contributor (SPEC_FULL.md ADDENDUM D.3).
type ContributorAst struct {
	Name  string
	Email *string
	ORCID *string
}

// PermissibleValueAst is one entry of an EnumAst's permissible_values
// (spec.md §3.2).
type PermissibleValueAst struct {
	Name        string
	Description *Spanned[Description]
	Meaning     *Spanned[string]
	Aliases     []Spanned[string]
	SeeAlso     []Spanned[string]
}

// SubsetAst (spec.md §3.2).
type SubsetAst struct {
	Name        string
	Description *Spanned[Description]
	Annotations *Spanned[Annotations]
}

// EnumAst (spec.md §3.2).
type EnumAst struct {
	Name              string
	Description       *Spanned[Description]
	PermissibleValues *OrderedPermissibleValues
	CodeSet           *Spanned[string]
	CodeSetTag        *Spanned[string]
	CodeSetVersion    *Spanned[string]
	Annotations       *Spanned[Annotations]
}

// TypeAst (spec.md §3.2).
type TypeAst struct {
	Name        string
	Description *Spanned[Description]
	TypeOf      *Spanned[string]
	Base        *Spanned[string]
	URI         *Spanned[string]
	Pattern     *Spanned[string]
	MinimumValue *Spanned[Value]
	MaximumValue *Spanned[Value]
	Annotations  *Spanned[Annotations]
}

// SlotAst (spec.md §3.2).
type SlotAst struct {
	Name               string
	Description        *Spanned[Description]
	Range              *Spanned[string]
	RangeKind          *Spanned[RangeKind]
	RangeProperties    []Spanned[string]
	Required           *Spanned[bool]
	Multivalued        *Spanned[bool]
	Identifier         *Spanned[bool]
	Pattern            *Spanned[string]
	StructuredPattern  *Spanned[StructuredPatternAst]
	MinimumValue       *Spanned[Value]
	MaximumValue       *Spanned[Value]
	MinimumCardinality *Spanned[int64]
	MaximumCardinality *Spanned[int64]
	IsA                *Spanned[string]
	Mixins             []Spanned[string]
	SlotURI            *Spanned[string]
	Domain             *Spanned[string]
	Inverse            *Spanned[string]
	Symmetric          *Spanned[bool]
	Asymmetric         *Spanned[bool]
	Reflexive          *Spanned[bool]
	Irreflexive        *Spanned[bool]
	LocallyReflexive   *Spanned[bool]
	Transitive         *Spanned[bool]
	IfAbsent           *Spanned[string]
	EqualsString       *Spanned[string]
	EqualsNumber       *Spanned[float64]
	Aliases            []Spanned[string]
	SeeAlso            []Spanned[string]
	Imports            []Spanned[string]
	Annotations        *Spanned[Annotations]
}

// ClassAst (spec.md §3.2).
type ClassAst struct {
	Name               string
	Description        *Spanned[Description]
	IsA                *Spanned[string]
	Abstract           *Spanned[bool]
	Mixin              *Spanned[bool]
	TreeRoot           *Spanned[bool]
	ClassURI           *Spanned[string]
	Mixins             []Spanned[string]
	Slots              []Spanned[string]
	SlotUsage          *OrderedSlots
	Attributes         *OrderedSlots
	SubclassOf         []Spanned[string]
	Rules              []Spanned[RuleAst]
	IfRequired         *OrderedConditionalRequirements
	UniqueKeys         *OrderedUniqueKeys
	RecursionOptions   *Spanned[RecursionOptionsAst]
	Aliases            []Spanned[string]
	SeeAlso            []Spanned[string]
	IDPrefixes         []Spanned[string]
	BroadMappings      []Spanned[string]
	ExactMappings      []Spanned[string]
	NarrowMappings     []Spanned[string]
	RelatedMappings    []Spanned[string]
	CloseMappings      []Spanned[string]
	Annotations        *Spanned[Annotations]
}

// SchemaAst is the root AST node (spec.md §3.2).
type SchemaAst struct {
	DocumentKind      DocumentKind
	ID                *Spanned[string]
	Name              *Spanned[string]
	Title             *Spanned[string]
	Description       *Spanned[Description]
	Version           *Spanned[string]
	License           *Spanned[string]
	CreatedOn         *Spanned[string]
	LastUpdatedOn     *Spanned[string]
	DefaultPrefix     *Spanned[string]
	DefaultRange      *Spanned[string]
	MetamodelVersion  *Spanned[string]
	SourceFile        *Spanned[string]
	GenerationDate    *Spanned[string]
	Status            *Spanned[string]
	Prefixes          *OrderedPrefixes
	Imports           []Spanned[string]
	Settings          *OrderedStringSpans
	Classes           *OrderedClasses
	Slots             *OrderedSlots
	Types             *OrderedTypes
	Enums             *OrderedEnums
	Subsets           *OrderedSubsets
	Contributors      []Spanned[ContributorAst]
	Categories        []Spanned[string]
	Keywords          []Spanned[string]
	SeeAlso           []Spanned[string]
	Annotations       *Spanned[Annotations]

	Span token.Span
}

// NewSchemaAst returns an empty, ready-to-populate schema AST.
func NewSchemaAst() *SchemaAst {
	return &SchemaAst{
		Prefixes: NewOrderedPrefixes(),
		Settings: NewOrderedStringSpans(),
		Classes:  NewOrderedClasses(),
		Slots:    NewOrderedSlots(),
		Types:    NewOrderedTypes(),
		Enums:    NewOrderedEnums(),
		Subsets:  NewOrderedSubsets(),
	}
}

// ValidateRequiredFields enforces spec.md §3.4: id and name are
// required on the root schema. Called by the promoter (§4.3), not the
// parser: a parsed AST missing one of these fields is still
// well-formed, it simply cannot be promoted to a canonical schema.
func (s *SchemaAst) ValidateRequiredFields() error {
	if s.ID == nil {
		return lmlerrors.SchemaValidationErrorAt(s.Span, "schema 'id' field is required")
	}
	if s.Name == nil {
		return lmlerrors.SchemaValidationErrorAt(s.Span, "schema 'name' field is required")
	}
	return nil
}
