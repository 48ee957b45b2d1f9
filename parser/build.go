package parser

import (
	"strings"

	"github.com/linkml-go/linkml/ast"
	lmlerrors "github.com/linkml-go/linkml/errors"
	"github.com/linkml-go/linkml/internal/literal"
	"github.com/linkml-go/linkml/token"
)

// build.go is the shared second stage of C2 (spec.md §4.2): both
// dialect front ends (yaml.go, json.go) produce the same rawNode tree,
// and everything below converts that tree into the typed ast.SchemaAst,
// so every field-promotion rule (block vs inline description, numeric
// lookahead, duplicate-key rejection already done by the front end,
// etc.) is written exactly once.

func buildSchema(root *rawNode) (*ast.SchemaAst, error) {
	schema := ast.NewSchemaAst()
	if root == nil || root.isNull() {
		return schema, nil
	}
	schema.Span = root.span
	if !root.isMapping() {
		return nil, lmlerrors.ParseErrorAt(root.span, "expected a mapping at the document root")
	}
	schema.DocumentKind = ast.DocumentSchema
	for i := range root.keys {
		key := root.keys[i].text
		val := root.values[i]
		if err := setSchemaField(schema, key, val); err != nil {
			return nil, err
		}
	}
	// id/name presence is validated by the promoter (spec.md §4.3), not
	// here: the parser's job stops at producing a well-formed AST.
	return schema, nil
}

// --- scalar helpers -------------------------------------------------

func scalarText(n *rawNode) (string, error) {
	if !n.isScalar() {
		return "", lmlerrors.ParseErrorAt(n.span, "expected a scalar value")
	}
	return n.text, nil
}

func spannedStr(n *rawNode) (ast.Spanned[string], error) {
	s, err := scalarText(n)
	if err != nil {
		return ast.Spanned[string]{}, err
	}
	return ast.NewSpanned(s, n.span), nil
}

func boolVal(n *rawNode) (bool, error) {
	s, err := scalarText(n)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "true", "yes":
		return true, nil
	case "false", "no":
		return false, nil
	default:
		return false, lmlerrors.ParseErrorAt(n.span, "expected a boolean, got %q", s)
	}
}

func spannedBool(n *rawNode) (ast.Spanned[bool], error) {
	b, err := boolVal(n)
	if err != nil {
		return ast.Spanned[bool]{}, err
	}
	return ast.NewSpanned(b, n.span), nil
}

func int64Val(n *rawNode) (int64, error) {
	s, err := scalarText(n)
	if err != nil {
		return 0, err
	}
	i, _, kind := literal.ParseNumber(s)
	if kind != literal.IntegerKind {
		return 0, lmlerrors.ParseErrorAt(n.span, "expected an integer, got %q", s)
	}
	return i, nil
}

func spannedInt64(n *rawNode) (ast.Spanned[int64], error) {
	i, err := int64Val(n)
	if err != nil {
		return ast.Spanned[int64]{}, err
	}
	return ast.NewSpanned(i, n.span), nil
}

func float64Val(n *rawNode) (float64, error) {
	s, err := scalarText(n)
	if err != nil {
		return 0, err
	}
	_, f, kind := literal.ParseNumber(s)
	if kind == literal.NotANumber {
		return 0, lmlerrors.ParseErrorAt(n.span, "expected a number, got %q", s)
	}
	return f, nil
}

func spannedFloat64(n *rawNode) (ast.Spanned[float64], error) {
	f, err := float64Val(n)
	if err != nil {
		return ast.Spanned[float64]{}, err
	}
	return ast.NewSpanned(f, n.span), nil
}

func descriptionVal(n *rawNode) (ast.Description, error) {
	s, err := scalarText(n)
	if err != nil {
		return nil, err
	}
	if n.block {
		return ast.BlockDescription(s), nil
	}
	return ast.InlineDescription(s), nil
}

func spannedDescription(n *rawNode) (ast.Spanned[ast.Description], error) {
	d, err := descriptionVal(n)
	if err != nil {
		return ast.Spanned[ast.Description]{}, err
	}
	return ast.NewSpanned(d, n.span), nil
}

// valueVal implements spec.md §4.2's ValueAst lookahead: integer
// preferred over float if lossless, string otherwise. A scalar the
// front end marked as explicitly quoted is always a string, even if
// its text happens to look numeric.
func valueVal(n *rawNode) (ast.Value, error) {
	s, err := scalarText(n)
	if err != nil {
		return nil, err
	}
	if !n.quoted && literal.LooksNumeric(s) {
		i, f, kind := literal.ParseNumber(s)
		switch kind {
		case literal.IntegerKind:
			return ast.IntegerValue(i), nil
		case literal.FloatKind:
			return ast.NumberValue(f), nil
		}
	}
	return ast.StringValue(s), nil
}

func spannedValue(n *rawNode) (ast.Spanned[ast.Value], error) {
	v, err := valueVal(n)
	if err != nil {
		return ast.Spanned[ast.Value]{}, err
	}
	return ast.NewSpanned(v, n.span), nil
}

func stringList(n *rawNode) ([]ast.Spanned[string], error) {
	if n == nil || n.isNull() {
		return nil, nil
	}
	if !n.isSequence() {
		return nil, lmlerrors.ParseErrorAt(n.span, "expected a list")
	}
	out := make([]ast.Spanned[string], 0, len(n.items))
	for _, item := range n.items {
		sp, err := spannedStr(item)
		if err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return out, nil
}

func rangeKindVal(n *rawNode) (ast.RangeKind, error) {
	s, err := scalarText(n)
	if err != nil {
		return ast.RangeKindUnspecified, err
	}
	switch strings.ToLower(s) {
	case "class":
		return ast.RangeKindClass, nil
	case "instance":
		return ast.RangeKindInstance, nil
	default:
		return ast.RangeKindUnspecified, lmlerrors.ParseErrorAt(n.span, "unknown range_kind %q", s)
	}
}

// --- annotations ------------------------------------------------------

func annotationValue(n *rawNode) (ast.AnnotationValue, error) {
	switch {
	case n.isSequence():
		items := make([]ast.Spanned[string], 0, len(n.items))
		for _, it := range n.items {
			sp, err := spannedStr(it)
			if err != nil {
				return nil, err
			}
			items = append(items, sp)
		}
		return ast.AnnotationList(items), nil
	case n.isScalar():
		if n.block {
			return ast.AnnotationBlock(n.text), nil
		}
		if !n.quoted {
			switch strings.ToLower(n.text) {
			case "true":
				return ast.AnnotationBool(true), nil
			case "false":
				return ast.AnnotationBool(false), nil
			}
			if literal.LooksNumeric(n.text) {
				if _, f, kind := literal.ParseNumber(n.text); kind != literal.NotANumber {
					return ast.AnnotationNumber(f), nil
				}
			}
		}
		return ast.AnnotationString(n.text), nil
	default:
		return nil, lmlerrors.ParseErrorAt(n.span, "unsupported annotation value")
	}
}

func annotationsVal(n *rawNode) (*ast.Spanned[ast.Annotations], error) {
	if n == nil || n.isNull() {
		return nil, nil
	}
	if !n.isMapping() {
		return nil, lmlerrors.ParseErrorAt(n.span, "expected a mapping for annotations")
	}
	entries := ast.NewOrderedAnnotations()
	for i := range n.keys {
		val, err := annotationValue(n.values[i])
		if err != nil {
			return nil, err
		}
		entries.Set(n.keys[i].text, ast.NewSpanned(val, n.values[i].span))
	}
	out := ast.NewSpanned(ast.Annotations{Entries: entries}, n.span)
	return &out, nil
}

// --- prefixes & structured patterns -----------------------------------

func prefixValue(n *rawNode) (ast.PrefixValueAst, error) {
	switch {
	case n.isScalar():
		return ast.SimplePrefixAst(n.text), nil
	case n.isMapping():
		var complex ast.ComplexPrefixAst
		for i := range n.keys {
			v, err := scalarText(n.values[i])
			if err != nil {
				return nil, err
			}
			switch n.keys[i].text {
			case "prefix_prefix":
				complex.Prefix = v
			case "prefix_reference":
				complex.Reference = v
			}
		}
		return complex, nil
	default:
		return nil, lmlerrors.ParseErrorAt(n.span, "expected a prefix definition")
	}
}

func structuredPatternVal(n *rawNode) (ast.StructuredPatternAst, error) {
	if n.isScalar() {
		return ast.StructuredPatternAst{Syntax: n.text}, nil
	}
	if !n.isMapping() {
		return ast.StructuredPatternAst{}, lmlerrors.ParseErrorAt(n.span, "expected a structured_pattern mapping")
	}
	var out ast.StructuredPatternAst
	for i := range n.keys {
		switch n.keys[i].text {
		case "syntax":
			v, err := scalarText(n.values[i])
			if err != nil {
				return out, err
			}
			out.Syntax = v
		case "interpolated":
			b, err := boolVal(n.values[i])
			if err != nil {
				return out, err
			}
			out.Interpolated = b
		}
	}
	return out, nil
}

// --- rules, conditional requirements, unique keys, recursion options --

func ruleVal(n *rawNode) (ast.RuleAst, error) {
	if !n.isMapping() {
		return ast.RuleAst{}, lmlerrors.ParseErrorAt(n.span, "expected a rule mapping")
	}
	rule := ast.RuleAst{Preconditions: ast.NewOrderedStringSpans(), Postconditions: ast.NewOrderedStringSpans()}
	for i := range n.keys {
		var target *ast.OrderedStringSpans
		switch n.keys[i].text {
		case "preconditions":
			target = rule.Preconditions
		case "postconditions":
			target = rule.Postconditions
		default:
			continue
		}
		cond := n.values[i]
		if !cond.isMapping() {
			return rule, lmlerrors.ParseErrorAt(cond.span, "expected a mapping of conditions")
		}
		for j := range cond.keys {
			sp, err := spannedStr(cond.values[j])
			if err != nil {
				return rule, err
			}
			target.Set(cond.keys[j].text, sp)
		}
	}
	return rule, nil
}

func conditionalRequirementVal(name string, n *rawNode) (ast.ConditionalRequirementAst, error) {
	out := ast.ConditionalRequirementAst{Condition: name}
	if !n.isMapping() {
		return out, lmlerrors.ParseErrorAt(n.span, "expected an if_required mapping")
	}
	for i := range n.keys {
		if n.keys[i].text != "then_required" {
			continue
		}
		list, err := stringList(n.values[i])
		if err != nil {
			return out, err
		}
		out.ThenRequired = list
	}
	return out, nil
}

func uniqueKeyVal(name string, n *rawNode) (ast.UniqueKeyAst, error) {
	out := ast.UniqueKeyAst{Name: name}
	if !n.isMapping() {
		return out, lmlerrors.ParseErrorAt(n.span, "expected a unique_keys mapping")
	}
	for i := range n.keys {
		if n.keys[i].text != "unique_key_slots" {
			continue
		}
		list, err := stringList(n.values[i])
		if err != nil {
			return out, err
		}
		out.UniqueKeySlots = list
	}
	return out, nil
}

func recursionOptionsVal(n *rawNode) (ast.RecursionOptionsAst, error) {
	var out ast.RecursionOptionsAst
	if !n.isMapping() {
		return out, lmlerrors.ParseErrorAt(n.span, "expected a recursion_options mapping")
	}
	for i := range n.keys {
		switch n.keys[i].text {
		case "use_box":
			b, err := boolVal(n.values[i])
			if err != nil {
				return out, err
			}
			out.UseBox = b
		case "max_depth":
			d, err := int64Val(n.values[i])
			if err != nil {
				return out, err
			}
			out.MaxDepth = &d
		}
	}
	return out, nil
}

func contributorVal(n *rawNode) (ast.ContributorAst, error) {
	var out ast.ContributorAst
	if n.isScalar() {
		out.Name = n.text
		return out, nil
	}
	if !n.isMapping() {
		return out, lmlerrors.ParseErrorAt(n.span, "expected a contributor entry")
	}
	for i := range n.keys {
		v, err := scalarText(n.values[i])
		if err != nil {
			return out, err
		}
		switch n.keys[i].text {
		case "name":
			out.Name = v
		case "email":
			out.Email = &v
		case "orcid":
			out.ORCID = &v
		}
	}
	return out, nil
}

// --- permissible values, enums, types, subsets -------------------------

func permissibleValueVal(name string, n *rawNode) (ast.PermissibleValueAst, error) {
	out := ast.PermissibleValueAst{Name: name}
	if n.isNull() {
		return out, nil
	}
	if !n.isMapping() {
		return out, lmlerrors.ParseErrorAt(n.span, "expected a permissible_values entry")
	}
	for i := range n.keys {
		val := n.values[i]
		switch n.keys[i].text {
		case "description":
			d, err := spannedDescription(val)
			if err != nil {
				return out, err
			}
			out.Description = &d
		case "meaning":
			s, err := spannedStr(val)
			if err != nil {
				return out, err
			}
			out.Meaning = &s
		case "aliases":
			list, err := stringList(val)
			if err != nil {
				return out, err
			}
			out.Aliases = list
		case "see_also":
			list, err := stringList(val)
			if err != nil {
				return out, err
			}
			out.SeeAlso = list
		}
	}
	return out, nil
}

func enumVal(name string, n *rawNode) (ast.EnumAst, error) {
	out := ast.EnumAst{Name: name, PermissibleValues: ast.NewOrderedPermissibleValues()}
	if !n.isMapping() {
		return out, lmlerrors.ParseErrorAt(n.span, "expected an enum mapping")
	}
	for i := range n.keys {
		val := n.values[i]
		switch n.keys[i].text {
		case "description":
			d, err := spannedDescription(val)
			if err != nil {
				return out, err
			}
			out.Description = &d
		case "permissible_values":
			if !val.isMapping() {
				return out, lmlerrors.ParseErrorAt(val.span, "expected a permissible_values mapping")
			}
			for j := range val.keys {
				pvName := val.keys[j].text
				pv, err := permissibleValueVal(pvName, val.values[j])
				if err != nil {
					return out, err
				}
				out.PermissibleValues.Set(pvName, ast.NewSpanned(pv, val.values[j].span))
			}
		case "code_set":
			s, err := spannedStr(val)
			if err != nil {
				return out, err
			}
			out.CodeSet = &s
		case "code_set_tag":
			s, err := spannedStr(val)
			if err != nil {
				return out, err
			}
			out.CodeSetTag = &s
		case "code_set_version":
			s, err := spannedStr(val)
			if err != nil {
				return out, err
			}
			out.CodeSetVersion = &s
		case "annotations":
			a, err := annotationsVal(val)
			if err != nil {
				return out, err
			}
			out.Annotations = a
		}
	}
	return out, nil
}

func typeVal(name string, n *rawNode) (ast.TypeAst, error) {
	out := ast.TypeAst{Name: name}
	if !n.isMapping() {
		return out, lmlerrors.ParseErrorAt(n.span, "expected a type mapping")
	}
	for i := range n.keys {
		val := n.values[i]
		switch n.keys[i].text {
		case "description":
			d, err := spannedDescription(val)
			if err != nil {
				return out, err
			}
			out.Description = &d
		case "typeof":
			s, err := spannedStr(val)
			if err != nil {
				return out, err
			}
			out.TypeOf = &s
		case "base":
			s, err := spannedStr(val)
			if err != nil {
				return out, err
			}
			out.Base = &s
		case "uri":
			s, err := spannedStr(val)
			if err != nil {
				return out, err
			}
			out.URI = &s
		case "pattern":
			s, err := spannedStr(val)
			if err != nil {
				return out, err
			}
			out.Pattern = &s
		case "minimum_value":
			v, err := spannedValue(val)
			if err != nil {
				return out, err
			}
			out.MinimumValue = &v
		case "maximum_value":
			v, err := spannedValue(val)
			if err != nil {
				return out, err
			}
			out.MaximumValue = &v
		case "annotations":
			a, err := annotationsVal(val)
			if err != nil {
				return out, err
			}
			out.Annotations = a
		}
	}
	return out, nil
}

func subsetVal(name string, n *rawNode) (ast.SubsetAst, error) {
	out := ast.SubsetAst{Name: name}
	if n.isNull() {
		return out, nil
	}
	if !n.isMapping() {
		return out, lmlerrors.ParseErrorAt(n.span, "expected a subset mapping")
	}
	for i := range n.keys {
		val := n.values[i]
		switch n.keys[i].text {
		case "description":
			d, err := spannedDescription(val)
			if err != nil {
				return out, err
			}
			out.Description = &d
		case "annotations":
			a, err := annotationsVal(val)
			if err != nil {
				return out, err
			}
			out.Annotations = a
		}
	}
	return out, nil
}

// --- slots --------------------------------------------------------------

func slotVal(name string, n *rawNode) (ast.SlotAst, error) {
	out := ast.SlotAst{Name: name}
	if !n.isMapping() {
		return out, lmlerrors.ParseErrorAt(n.span, "expected a slot mapping")
	}
	for i := range n.keys {
		val := n.values[i]
		var err error
		switch n.keys[i].text {
		case "description":
			var d ast.Spanned[ast.Description]
			if d, err = spannedDescription(val); err == nil {
				out.Description = &d
			}
		case "range":
			var s ast.Spanned[string]
			if s, err = spannedStr(val); err == nil {
				out.Range = &s
			}
		case "range_type", "range_kind":
			var rk ast.RangeKind
			if rk, err = rangeKindVal(val); err == nil {
				out.RangeKind = ptrSpan(rk, val.span)
			}
		case "range_properties":
			out.RangeProperties, err = stringList(val)
		case "required":
			var b ast.Spanned[bool]
			if b, err = spannedBool(val); err == nil {
				out.Required = &b
			}
		case "multivalued":
			var b ast.Spanned[bool]
			if b, err = spannedBool(val); err == nil {
				out.Multivalued = &b
			}
		case "identifier":
			var b ast.Spanned[bool]
			if b, err = spannedBool(val); err == nil {
				out.Identifier = &b
			}
		case "pattern":
			var s ast.Spanned[string]
			if s, err = spannedStr(val); err == nil {
				out.Pattern = &s
			}
		case "structured_pattern":
			var sp ast.StructuredPatternAst
			if sp, err = structuredPatternVal(val); err == nil {
				spanned := ast.NewSpanned(sp, val.span)
				out.StructuredPattern = &spanned
			}
		case "minimum_value":
			var v ast.Spanned[ast.Value]
			if v, err = spannedValue(val); err == nil {
				out.MinimumValue = &v
			}
		case "maximum_value":
			var v ast.Spanned[ast.Value]
			if v, err = spannedValue(val); err == nil {
				out.MaximumValue = &v
			}
		case "minimum_cardinality":
			var v ast.Spanned[int64]
			if v, err = spannedInt64(val); err == nil {
				out.MinimumCardinality = &v
			}
		case "maximum_cardinality":
			var v ast.Spanned[int64]
			if v, err = spannedInt64(val); err == nil {
				out.MaximumCardinality = &v
			}
		case "is_a":
			var s ast.Spanned[string]
			if s, err = spannedStr(val); err == nil {
				out.IsA = &s
			}
		case "mixins":
			out.Mixins, err = stringList(val)
		case "slot_uri":
			var s ast.Spanned[string]
			if s, err = spannedStr(val); err == nil {
				out.SlotURI = &s
			}
		case "domain":
			var s ast.Spanned[string]
			if s, err = spannedStr(val); err == nil {
				out.Domain = &s
			}
		case "inverse":
			var s ast.Spanned[string]
			if s, err = spannedStr(val); err == nil {
				out.Inverse = &s
			}
		case "symmetric":
			var b ast.Spanned[bool]
			if b, err = spannedBool(val); err == nil {
				out.Symmetric = &b
			}
		case "asymmetric":
			var b ast.Spanned[bool]
			if b, err = spannedBool(val); err == nil {
				out.Asymmetric = &b
			}
		case "reflexive":
			var b ast.Spanned[bool]
			if b, err = spannedBool(val); err == nil {
				out.Reflexive = &b
			}
		case "irreflexive":
			var b ast.Spanned[bool]
			if b, err = spannedBool(val); err == nil {
				out.Irreflexive = &b
			}
		case "locally_reflexive":
			var b ast.Spanned[bool]
			if b, err = spannedBool(val); err == nil {
				out.LocallyReflexive = &b
			}
		case "transitive":
			var b ast.Spanned[bool]
			if b, err = spannedBool(val); err == nil {
				out.Transitive = &b
			}
		case "ifabsent":
			var s ast.Spanned[string]
			if s, err = spannedStr(val); err == nil {
				out.IfAbsent = &s
			}
		case "equals_string":
			var s ast.Spanned[string]
			if s, err = spannedStr(val); err == nil {
				out.EqualsString = &s
			}
		case "equals_number":
			var f ast.Spanned[float64]
			if f, err = spannedFloat64(val); err == nil {
				out.EqualsNumber = &f
			}
		case "aliases":
			out.Aliases, err = stringList(val)
		case "see_also":
			out.SeeAlso, err = stringList(val)
		case "imports":
			out.Imports, err = stringList(val)
		case "annotations":
			out.Annotations, err = annotationsVal(val)
		}
		if err != nil {
			return out, err
		}
	}
	return out, nil
}

func ptrSpan[T any](v T, span token.Span) *ast.Spanned[T] {
	s := ast.NewSpanned(v, span)
	return &s
}

// --- classes --------------------------------------------------------------

func classVal(name string, n *rawNode) (ast.ClassAst, error) {
	out := ast.ClassAst{
		Name:       name,
		SlotUsage:  ast.NewOrderedSlots(),
		Attributes: ast.NewOrderedSlots(),
		IfRequired: ast.NewOrderedConditionalRequirements(),
		UniqueKeys: ast.NewOrderedUniqueKeys(),
	}
	if n.isNull() {
		return out, nil
	}
	if !n.isMapping() {
		return out, lmlerrors.ParseErrorAt(n.span, "expected a class mapping")
	}
	for i := range n.keys {
		val := n.values[i]
		var err error
		switch n.keys[i].text {
		case "description":
			var d ast.Spanned[ast.Description]
			if d, err = spannedDescription(val); err == nil {
				out.Description = &d
			}
		case "is_a":
			var s ast.Spanned[string]
			if s, err = spannedStr(val); err == nil {
				out.IsA = &s
			}
		case "abstract":
			var b ast.Spanned[bool]
			if b, err = spannedBool(val); err == nil {
				out.Abstract = &b
			}
		case "mixin":
			var b ast.Spanned[bool]
			if b, err = spannedBool(val); err == nil {
				out.Mixin = &b
			}
		case "tree_root":
			var b ast.Spanned[bool]
			if b, err = spannedBool(val); err == nil {
				out.TreeRoot = &b
			}
		case "class_uri":
			var s ast.Spanned[string]
			if s, err = spannedStr(val); err == nil {
				out.ClassURI = &s
			}
		case "mixins":
			out.Mixins, err = stringList(val)
		case "slots":
			out.Slots, err = stringList(val)
		case "slot_usage":
			err = fillSlots(out.SlotUsage, val)
		case "attributes":
			err = fillSlots(out.Attributes, val)
		case "subclass_of":
			out.SubclassOf, err = stringList(val)
		case "rules":
			if !val.isSequence() {
				err = lmlerrors.ParseErrorAt(val.span, "expected a list of rules")
				break
			}
			rules := make([]ast.Spanned[ast.RuleAst], 0, len(val.items))
			for _, item := range val.items {
				var r ast.RuleAst
				r, err = ruleVal(item)
				if err != nil {
					break
				}
				rules = append(rules, ast.NewSpanned(r, item.span))
			}
			out.Rules = rules
		case "if_required":
			if !val.isMapping() {
				err = lmlerrors.ParseErrorAt(val.span, "expected an if_required mapping")
				break
			}
			for j := range val.keys {
				var cr ast.ConditionalRequirementAst
				cr, err = conditionalRequirementVal(val.keys[j].text, val.values[j])
				if err != nil {
					break
				}
				out.IfRequired.Set(val.keys[j].text, ast.NewSpanned(cr, val.values[j].span))
			}
		case "unique_keys":
			if !val.isMapping() {
				err = lmlerrors.ParseErrorAt(val.span, "expected a unique_keys mapping")
				break
			}
			for j := range val.keys {
				var uk ast.UniqueKeyAst
				uk, err = uniqueKeyVal(val.keys[j].text, val.values[j])
				if err != nil {
					break
				}
				out.UniqueKeys.Set(val.keys[j].text, ast.NewSpanned(uk, val.values[j].span))
			}
		case "recursion_options":
			var ro ast.RecursionOptionsAst
			if ro, err = recursionOptionsVal(val); err == nil {
				out.RecursionOptions = ptrSpan(ro, val.span)
			}
		case "aliases":
			out.Aliases, err = stringList(val)
		case "see_also":
			out.SeeAlso, err = stringList(val)
		case "id_prefixes":
			out.IDPrefixes, err = stringList(val)
		case "broad_mappings":
			out.BroadMappings, err = stringList(val)
		case "exact_mappings":
			out.ExactMappings, err = stringList(val)
		case "narrow_mappings":
			out.NarrowMappings, err = stringList(val)
		case "related_mappings":
			out.RelatedMappings, err = stringList(val)
		case "close_mappings":
			out.CloseMappings, err = stringList(val)
		case "annotations":
			out.Annotations, err = annotationsVal(val)
		}
		if err != nil {
			return out, err
		}
	}
	return out, nil
}

func fillSlots(dst *ast.OrderedSlots, n *rawNode) error {
	if n.isNull() {
		return nil
	}
	if !n.isMapping() {
		return lmlerrors.ParseErrorAt(n.span, "expected a mapping of slot definitions")
	}
	for i := range n.keys {
		name := n.keys[i].text
		s, err := slotVal(name, n.values[i])
		if err != nil {
			return err
		}
		dst.Set(name, ast.NewSpanned(s, n.values[i].span))
	}
	return nil
}

// --- top-level schema field dispatch ---------------------------------------

func setSchemaField(schema *ast.SchemaAst, key string, val *rawNode) error {
	var err error
	switch key {
	case "id":
		var s ast.Spanned[string]
		if s, err = spannedStr(val); err == nil {
			schema.ID = &s
		}
	case "name":
		var s ast.Spanned[string]
		if s, err = spannedStr(val); err == nil {
			schema.Name = &s
		}
	case "title":
		var s ast.Spanned[string]
		if s, err = spannedStr(val); err == nil {
			schema.Title = &s
		}
	case "description":
		var d ast.Spanned[ast.Description]
		if d, err = spannedDescription(val); err == nil {
			schema.Description = &d
		}
	case "version":
		var s ast.Spanned[string]
		if s, err = spannedStr(val); err == nil {
			schema.Version = &s
		}
	case "license":
		var s ast.Spanned[string]
		if s, err = spannedStr(val); err == nil {
			schema.License = &s
		}
	case "created_on":
		var s ast.Spanned[string]
		if s, err = spannedStr(val); err == nil {
			schema.CreatedOn = &s
		}
	case "last_updated_on":
		var s ast.Spanned[string]
		if s, err = spannedStr(val); err == nil {
			schema.LastUpdatedOn = &s
		}
	case "default_prefix":
		var s ast.Spanned[string]
		if s, err = spannedStr(val); err == nil {
			schema.DefaultPrefix = &s
		}
	case "default_range":
		var s ast.Spanned[string]
		if s, err = spannedStr(val); err == nil {
			schema.DefaultRange = &s
		}
	case "metamodel_version":
		var s ast.Spanned[string]
		if s, err = spannedStr(val); err == nil {
			schema.MetamodelVersion = &s
		}
	case "source_file":
		var s ast.Spanned[string]
		if s, err = spannedStr(val); err == nil {
			schema.SourceFile = &s
		}
	case "generation_date":
		var s ast.Spanned[string]
		if s, err = spannedStr(val); err == nil {
			schema.GenerationDate = &s
		}
	case "status":
		var s ast.Spanned[string]
		if s, err = spannedStr(val); err == nil {
			schema.Status = &s
		}
	case "prefixes":
		if !val.isMapping() {
			return lmlerrors.ParseErrorAt(val.span, "expected a prefixes mapping")
		}
		for i := range val.keys {
			pv, perr := prefixValue(val.values[i])
			if perr != nil {
				return perr
			}
			schema.Prefixes.Set(val.keys[i].text, ast.NewSpanned(pv, val.values[i].span))
		}
	case "imports":
		schema.Imports, err = stringList(val)
	case "settings":
		if !val.isMapping() {
			return lmlerrors.ParseErrorAt(val.span, "expected a settings mapping")
		}
		for i := range val.keys {
			sp, serr := spannedStr(val.values[i])
			if serr != nil {
				return serr
			}
			schema.Settings.Set(val.keys[i].text, sp)
		}
	case "classes":
		if !val.isMapping() {
			return lmlerrors.ParseErrorAt(val.span, "expected a classes mapping")
		}
		for i := range val.keys {
			name := val.keys[i].text
			c, cerr := classVal(name, val.values[i])
			if cerr != nil {
				return cerr
			}
			schema.Classes.Set(name, ast.NewSpanned(c, val.values[i].span))
		}
	case "slots":
		err = fillSlots(schema.Slots, val)
	case "types":
		if !val.isMapping() {
			return lmlerrors.ParseErrorAt(val.span, "expected a types mapping")
		}
		for i := range val.keys {
			name := val.keys[i].text
			t, terr := typeVal(name, val.values[i])
			if terr != nil {
				return terr
			}
			schema.Types.Set(name, ast.NewSpanned(t, val.values[i].span))
		}
	case "enums":
		if !val.isMapping() {
			return lmlerrors.ParseErrorAt(val.span, "expected an enums mapping")
		}
		for i := range val.keys {
			name := val.keys[i].text
			e, eerr := enumVal(name, val.values[i])
			if eerr != nil {
				return eerr
			}
			schema.Enums.Set(name, ast.NewSpanned(e, val.values[i].span))
		}
	case "subsets":
		if !val.isMapping() {
			return lmlerrors.ParseErrorAt(val.span, "expected a subsets mapping")
		}
		for i := range val.keys {
			name := val.keys[i].text
			s, serr := subsetVal(name, val.values[i])
			if serr != nil {
				return serr
			}
			schema.Subsets.Set(name, ast.NewSpanned(s, val.values[i].span))
		}
	case "contributors":
		if val.isNull() {
			break
		}
		if !val.isSequence() {
			return lmlerrors.ParseErrorAt(val.span, "expected a list of contributors")
		}
		contributors := make([]ast.Spanned[ast.ContributorAst], 0, len(val.items))
		for _, item := range val.items {
			c, cerr := contributorVal(item)
			if cerr != nil {
				return cerr
			}
			contributors = append(contributors, ast.NewSpanned(c, item.span))
		}
		schema.Contributors = contributors
	case "categories":
		schema.Categories, err = stringList(val)
	case "keywords":
		schema.Keywords, err = stringList(val)
	case "see_also":
		schema.SeeAlso, err = stringList(val)
	case "annotations":
		schema.Annotations, err = annotationsVal(val)
	}
	return err
}
