package ast

import "github.com/linkml-go/linkml/internal/omap"

// OrderedStringSpans backs prefixes and settings: insertion-ordered
// string -> Spanned[string] (spec.md §3.2 prefixes/settings maps).
type OrderedStringSpans = omap.Map[string, Spanned[string]]

func NewOrderedStringSpans() *OrderedStringSpans { return omap.New[string, Spanned[string]]() }

// OrderedPrefixes backs SchemaAst.Prefixes.
type OrderedPrefixes = omap.Map[string, Spanned[PrefixValueAst]]

func NewOrderedPrefixes() *OrderedPrefixes { return omap.New[string, Spanned[PrefixValueAst]]() }

// OrderedClasses backs SchemaAst.Classes.
type OrderedClasses = omap.Map[string, Spanned[ClassAst]]

func NewOrderedClasses() *OrderedClasses { return omap.New[string, Spanned[ClassAst]]() }

// OrderedSlots backs SchemaAst.Slots, ClassAst.SlotUsage and
// ClassAst.Attributes (all are name -> Spanned[SlotAst] maps).
type OrderedSlots = omap.Map[string, Spanned[SlotAst]]

func NewOrderedSlots() *OrderedSlots { return omap.New[string, Spanned[SlotAst]]() }

// OrderedTypes backs SchemaAst.Types.
type OrderedTypes = omap.Map[string, Spanned[TypeAst]]

func NewOrderedTypes() *OrderedTypes { return omap.New[string, Spanned[TypeAst]]() }

// OrderedEnums backs SchemaAst.Enums.
type OrderedEnums = omap.Map[string, Spanned[EnumAst]]

func NewOrderedEnums() *OrderedEnums { return omap.New[string, Spanned[EnumAst]]() }

// OrderedSubsets backs SchemaAst.Subsets.
type OrderedSubsets = omap.Map[string, Spanned[SubsetAst]]

func NewOrderedSubsets() *OrderedSubsets { return omap.New[string, Spanned[SubsetAst]]() }

// OrderedPermissibleValues backs EnumAst.PermissibleValues. Spec.md §9
// calls out explicitly that this map's key order is source-sensitive
// for downstream generators, so it must never degrade to an unordered
// Go map.
type OrderedPermissibleValues = omap.Map[string, Spanned[PermissibleValueAst]]

func NewOrderedPermissibleValues() *OrderedPermissibleValues {
	return omap.New[string, Spanned[PermissibleValueAst]]()
}

// OrderedConditionalRequirements backs ClassAst.IfRequired.
type OrderedConditionalRequirements = omap.Map[string, Spanned[ConditionalRequirementAst]]

func NewOrderedConditionalRequirements() *OrderedConditionalRequirements {
	return omap.New[string, Spanned[ConditionalRequirementAst]]()
}

// OrderedUniqueKeys backs ClassAst.UniqueKeys.
type OrderedUniqueKeys = omap.Map[string, Spanned[UniqueKeyAst]]

func NewOrderedUniqueKeys() *OrderedUniqueKeys { return omap.New[string, Spanned[UniqueKeyAst]]() }

// OrderedAnnotations backs Annotations.Entries.
type OrderedAnnotations = omap.Map[string, Spanned[AnnotationValue]]

func NewOrderedAnnotations() *OrderedAnnotations {
	return omap.New[string, Spanned[AnnotationValue]]()
}
