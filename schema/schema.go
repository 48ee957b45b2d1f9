// Package schema defines the canonical (promoted) schema model of
// spec.md §3.3: spans are dropped from the value types themselves (and
// kept, optionally, in a side table keyed by element path), repeated
// identifiers are interned via the intern package, and sum-typed AST nodes
// (PrefixValueAst, Description, PermissibleValueAst) become their
// canonical Simple|Complex/Inline|Block equivalents.
//
// The shape mirrors linkml-rs's types_v2.rs (SchemaDefinitionV2 /
// ClassDefinitionV2 / SlotDefinitionV2 / ...), translated into the Go
// idiom cue/ast uses throughout: an absent optional field is a nil
// pointer or a zero-length slice, never an Option<T> wrapper.
package schema

import (
	"github.com/linkml-go/linkml/internal/omap"
	"github.com/linkml-go/linkml/intern"
)

// Description is the canonical Inline | Block sum (spec.md §3.3(c)).
type Description interface {
	isDescription()
	Text() string
}

type InlineDescription string

func (InlineDescription) isDescription() {}
func (d InlineDescription) Text() string { return string(d) }

type BlockDescription string

func (BlockDescription) isDescription() {}
func (d BlockDescription) Text() string { return string(d) }

// Value is the canonical String | Number | Integer sum used for bound
// constraints, mirroring ast.Value after promotion.
type Value interface {
	isValue()
}

type StringValue string

func (StringValue) isValue() {}

type NumberValue float64

func (NumberValue) isValue() {}

type IntegerValue int64

func (IntegerValue) isValue() {}

// PrefixDefinition is the canonical Simple(uri) | Complex{prefix,
// reference} sum spec.md §4.3 requires PrefixValueAst to normalise
// into.
type PrefixDefinition interface {
	isPrefixDefinition()
}

type SimplePrefix struct {
	URI intern.Symbol
}

func (SimplePrefix) isPrefixDefinition() {}

type ComplexPrefix struct {
	Prefix    intern.Symbol
	Reference intern.Symbol
}

func (ComplexPrefix) isPrefixDefinition() {}

// PermissibleValue is the canonical Simple(name) | Complex{text,
// description, meaning} sum (spec.md §4.3). Aliases/SeeAlso ride along
// on the Complex variant since promotion is total: every field the AST
// carries has to land somewhere in the canonical form.
type PermissibleValue interface {
	isPermissibleValue()
	Name() intern.Symbol
}

type SimplePermissibleValue struct {
	Value intern.Symbol
}

func (v SimplePermissibleValue) isPermissibleValue() {}
func (v SimplePermissibleValue) Name() intern.Symbol { return v.Value }

type ComplexPermissibleValue struct {
	Text        intern.Symbol
	Description Description
	Meaning     *intern.Symbol
	Aliases     []intern.Symbol
	SeeAlso     []intern.Symbol
}

func (v ComplexPermissibleValue) isPermissibleValue() {}
func (v ComplexPermissibleValue) Name() intern.Symbol { return v.Text }

// AnnotationValue is the canonical equivalent of ast.AnnotationValue.
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

type AnnotationList []string

func (AnnotationList) isAnnotationValue() {}

// Annotations is an insertion-ordered name -> value map, retained
// verbatim through promotion (spec.md §4.3 "Annotations survive
// verbatim as a typed map").
type Annotations = omap.Map[string, AnnotationValue]

func NewAnnotations() *Annotations { return omap.New[string, AnnotationValue]() }

type RangeKind int

const (
	RangeKindUnspecified RangeKind = iota
	RangeKindClass
	RangeKindInstance
)

// RecursionOptions carries a class's recursion hints verbatim; the
// core never interprets them (SPEC_FULL.md ADDENDUM D.1).
type RecursionOptions struct {
	UseBox   bool
	MaxDepth *int64
}

type Contributor struct {
	Name  string
	Email *string
	ORCID *string
}

type ConditionalRequirement struct {
	Condition    intern.Symbol
	ThenRequired []intern.Symbol
}

type UniqueKey struct {
	Name           string
	UniqueKeySlots []intern.Symbol
}

type Rule struct {
	Preconditions  *omap.Map[string, string]
	Postconditions *omap.Map[string, string]
}

type StructuredPattern struct {
	Syntax       string
	Interpolated bool
}

// Type is a canonical scalar type definition.
type Type struct {
	Name         intern.Symbol
	Description  Description
	TypeOf       *intern.Symbol
	Base         *intern.Symbol
	URI          *intern.Symbol
	Pattern      *string
	MinimumValue Value
	MaximumValue Value
	Annotations  *Annotations
}

// Enum is a canonical enumeration definition.
type Enum struct {
	Name              intern.Symbol
	Description       Description
	PermissibleValues *omap.Map[string, PermissibleValue]
	CodeSet           *intern.Symbol
	CodeSetTag        *string
	CodeSetVersion    *string
	Annotations       *Annotations
}

// Subset is a canonical subset definition.
type Subset struct {
	Name        intern.Symbol
	Description Description
	Annotations *Annotations
}

// Slot is a canonical slot definition (spec.md §3.2, promoted).
type Slot struct {
	Name               intern.Symbol
	Description        Description
	Range              *intern.Symbol
	RangeKind          RangeKind
	RangeProperties    []string
	Required           bool
	Multivalued        bool
	Identifier         bool
	Pattern            *string
	StructuredPattern  *StructuredPattern
	MinimumValue       Value
	MaximumValue       Value
	MinimumCardinality *int64
	MaximumCardinality *int64
	IsA                *intern.Symbol
	Mixins             []intern.Symbol
	SlotURI            *intern.Symbol
	Domain             *intern.Symbol
	Inverse            *intern.Symbol
	Symmetric          bool
	Asymmetric         bool
	Reflexive          bool
	Irreflexive        bool
	LocallyReflexive   bool
	Transitive         bool
	IfAbsent           *string
	EqualsString       *string
	EqualsNumber       *float64
	Aliases            []string
	SeeAlso            []intern.Symbol
	Imports            []intern.Symbol
	Annotations        *Annotations
}

// Class is a canonical class definition.
type Class struct {
	Name             intern.Symbol
	Description      Description
	IsA              *intern.Symbol
	Abstract         bool
	Mixin            bool
	TreeRoot         bool
	ClassURI         *intern.Symbol
	Mixins           []intern.Symbol
	Slots            []intern.Symbol
	SlotUsage        *omap.Map[string, Slot]
	Attributes       *omap.Map[string, Slot]
	SubclassOf       []intern.Symbol
	Rules            []Rule
	IfRequired       *omap.Map[string, ConditionalRequirement]
	UniqueKeys       *omap.Map[string, UniqueKey]
	RecursionOptions *RecursionOptions
	Aliases          []string
	SeeAlso          []intern.Symbol
	IDPrefixes       []intern.Symbol
	BroadMappings    []intern.Symbol
	ExactMappings    []intern.Symbol
	NarrowMappings   []intern.Symbol
	RelatedMappings  []intern.Symbol
	CloseMappings    []intern.Symbol
	Annotations      *Annotations
}

// Schema is the canonical root schema (spec.md §3.3). DefaultRange and
// DefaultPrefix are retained, not eagerly applied (§4.3 "Default
// propagation"); downstream validation resolves them lazily.
type Schema struct {
	ID               string
	Name             string
	Title            *string
	Description      Description
	Version          *string
	License          *string
	CreatedOn        *string
	LastUpdatedOn    *string
	DefaultPrefix    *intern.Symbol
	DefaultRange     *intern.Symbol
	MetamodelVersion *string
	SourceFile       *string
	GenerationDate   *string
	Status           *string

	Prefixes *omap.Map[string, PrefixDefinition]
	Imports  []intern.Symbol
	Settings *omap.Map[string, string]

	Classes *omap.Map[string, Class]
	Slots   *omap.Map[string, Slot]
	Types   *omap.Map[string, Type]
	Enums   *omap.Map[string, Enum]
	Subsets *omap.Map[string, Subset]

	Contributors []Contributor
	Categories   []intern.Symbol
	Keywords     []intern.Symbol
	SeeAlso      []intern.Symbol
	Annotations  *Annotations

	// Spans holds the side table spec.md §4.3 calls for: an optional
	// byte range per element path ("class:Foo", "slot:bar", ...),
	// kept out of the value types themselves so canonical schemas stay
	// cheap to construct and compare by value where spans don't matter.
	Spans *SpanTable
}

// NewSchema returns an empty, ready-to-populate canonical schema.
func NewSchema() *Schema {
	return &Schema{
		Prefixes: omap.New[string, PrefixDefinition](),
		Settings: omap.New[string, string](),
		Classes:  omap.New[string, Class](),
		Slots:    omap.New[string, Slot](),
		Types:    omap.New[string, Type](),
		Enums:    omap.New[string, Enum](),
		Subsets:  omap.New[string, Subset](),
		Spans:    NewSpanTable(),
	}
}
