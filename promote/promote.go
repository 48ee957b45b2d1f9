// Package promote implements C3 (spec.md §4.3): turning a parsed
// *ast.SchemaAst into the canonical *schema.Schema. It performs every
// transformation §4.3 names — string interning, Simple|Complex sum-type
// normalisation, optionality lowering (Option<Spanned<T>> collapses to
// Option<T>, with the span moved into a side table), and the validation
// of id/name as structurally required fields — while leaving
// default_range/default_prefix unapplied, exactly as §4.3 specifies.
package promote

import (
	"github.com/linkml-go/linkml/ast"
	"github.com/linkml-go/linkml/internal/omap"
	"github.com/linkml-go/linkml/intern"
	"github.com/linkml-go/linkml/schema"
)

// Promoter holds the string pool promotion reuses across documents in
// the same load (so the same class name interned while promoting two
// schemas in the same import closure shares one Symbol).
type Promoter struct {
	pool *intern.Pool
}

// New creates a Promoter backed by a fresh string pool.
func New() *Promoter { return &Promoter{pool: intern.NewPool()} }

// NewWithPool creates a Promoter sharing an existing pool, the way
// resolve.Resolver does across an entire import closure.
func NewWithPool(pool *intern.Pool) *Promoter { return &Promoter{pool: pool} }

// Pool exposes the underlying intern pool, e.g. for diagnostics.
func (p *Promoter) Pool() *intern.Pool { return p.pool }

func (p *Promoter) sym(s string) intern.Symbol { return p.pool.Intern(s) }

func (p *Promoter) symPtr(s *ast.Spanned[string]) *intern.Symbol {
	if s == nil {
		return nil
	}
	sym := p.sym(s.Value)
	return &sym
}

func (p *Promoter) strPtr(s *ast.Spanned[string]) *string {
	if s == nil {
		return nil
	}
	v := s.Value
	return &v
}

func (p *Promoter) boolVal(s *ast.Spanned[bool]) bool {
	if s == nil {
		return false
	}
	return s.Value
}

func (p *Promoter) symList(in []ast.Spanned[string]) []intern.Symbol {
	if len(in) == 0 {
		return nil
	}
	out := make([]intern.Symbol, len(in))
	for i, s := range in {
		out[i] = p.sym(s.Value)
	}
	return out
}

func (p *Promoter) strList(in []ast.Spanned[string]) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = s.Value
	}
	return out
}

func promoteDescription(d ast.Description) schema.Description {
	switch v := d.(type) {
	case ast.InlineDescription:
		return schema.InlineDescription(v)
	case ast.BlockDescription:
		return schema.BlockDescription(v)
	default:
		return nil
	}
}

func (p *Promoter) descriptionPtr(d *ast.Spanned[ast.Description]) schema.Description {
	if d == nil {
		return nil
	}
	return promoteDescription(d.Value)
}

func promoteValue(v ast.Value) schema.Value {
	switch t := v.(type) {
	case ast.StringValue:
		return schema.StringValue(t)
	case ast.NumberValue:
		return schema.NumberValue(t)
	case ast.IntegerValue:
		return schema.IntegerValue(t)
	default:
		return nil
	}
}

func (p *Promoter) valuePtr(v *ast.Spanned[ast.Value]) schema.Value {
	if v == nil {
		return nil
	}
	return promoteValue(v.Value)
}

func (p *Promoter) annotationValue(v ast.AnnotationValue) schema.AnnotationValue {
	switch t := v.(type) {
	case ast.AnnotationBool:
		return schema.AnnotationBool(t)
	case ast.AnnotationNumber:
		return schema.AnnotationNumber(t)
	case ast.AnnotationString:
		return schema.AnnotationString(t)
	case ast.AnnotationBlock:
		return schema.AnnotationBlock(t)
	case ast.AnnotationList:
		out := make(schema.AnnotationList, len(t))
		for i, s := range t {
			out[i] = s.Value
		}
		return out
	default:
		return nil
	}
}

func (p *Promoter) annotations(a *ast.Spanned[ast.Annotations]) *schema.Annotations {
	if a == nil || a.Value.Entries == nil || a.Value.Entries.Len() == 0 {
		return nil
	}
	out := schema.NewAnnotations()
	a.Value.Entries.Range(func(k string, v ast.Spanned[ast.AnnotationValue]) bool {
		out.Set(k, p.annotationValue(v.Value))
		return true
	})
	return out
}

func (p *Promoter) prefix(v ast.PrefixValueAst) schema.PrefixDefinition {
	switch t := v.(type) {
	case ast.SimplePrefixAst:
		return schema.SimplePrefix{URI: p.sym(string(t))}
	case ast.ComplexPrefixAst:
		return schema.ComplexPrefix{Prefix: p.sym(t.Prefix), Reference: p.sym(t.Reference)}
	default:
		return nil
	}
}

// permissibleValue normalises spec.md §4.3's "permissible values
// become Simple(name) | Complex{text, description, meaning}": an entry
// with nothing beyond its name collapses to Simple; any populated
// field promotes it to Complex so the information survives.
func (p *Promoter) permissibleValue(name string, v ast.PermissibleValueAst) schema.PermissibleValue {
	if v.Description == nil && v.Meaning == nil && len(v.Aliases) == 0 && len(v.SeeAlso) == 0 {
		return schema.SimplePermissibleValue{Value: p.sym(name)}
	}
	return schema.ComplexPermissibleValue{
		Text:        p.sym(name),
		Description: p.descriptionPtr(v.Description),
		Meaning:     p.symPtr(v.Meaning),
		Aliases:     p.symList(v.Aliases),
		SeeAlso:     p.symList(v.SeeAlso),
	}
}

func (p *Promoter) structuredPattern(sp *ast.Spanned[ast.StructuredPatternAst]) *schema.StructuredPattern {
	if sp == nil {
		return nil
	}
	return &schema.StructuredPattern{Syntax: sp.Value.Syntax, Interpolated: sp.Value.Interpolated}
}

func (p *Promoter) recursionOptions(ro *ast.Spanned[ast.RecursionOptionsAst]) *schema.RecursionOptions {
	if ro == nil {
		return nil
	}
	return &schema.RecursionOptions{UseBox: ro.Value.UseBox, MaxDepth: ro.Value.MaxDepth}
}

func (p *Promoter) rule(r ast.RuleAst) schema.Rule {
	pre := omap.New[string, string]()
	if r.Preconditions != nil {
		r.Preconditions.Range(func(k string, v ast.Spanned[string]) bool {
			pre.Set(k, v.Value)
			return true
		})
	}
	post := omap.New[string, string]()
	if r.Postconditions != nil {
		r.Postconditions.Range(func(k string, v ast.Spanned[string]) bool {
			post.Set(k, v.Value)
			return true
		})
	}
	return schema.Rule{Preconditions: pre, Postconditions: post}
}

func (p *Promoter) conditionalRequirement(name string, cr ast.ConditionalRequirementAst) schema.ConditionalRequirement {
	return schema.ConditionalRequirement{
		Condition:    p.sym(name),
		ThenRequired: p.symList(cr.ThenRequired),
	}
}

func (p *Promoter) uniqueKey(uk ast.UniqueKeyAst) schema.UniqueKey {
	return schema.UniqueKey{Name: uk.Name, UniqueKeySlots: p.symList(uk.UniqueKeySlots)}
}

func (p *Promoter) contributor(c ast.ContributorAst) schema.Contributor {
	return schema.Contributor{Name: c.Name, Email: c.Email, ORCID: c.ORCID}
}

func promoteRangeKind(k *ast.Spanned[ast.RangeKind]) schema.RangeKind {
	if k == nil {
		return schema.RangeKindUnspecified
	}
	switch k.Value {
	case ast.RangeKindClass:
		return schema.RangeKindClass
	case ast.RangeKindInstance:
		return schema.RangeKindInstance
	default:
		return schema.RangeKindUnspecified
	}
}

func (p *Promoter) slot(name string, s ast.SlotAst) schema.Slot {
	return schema.Slot{
		Name:               p.sym(name),
		Description:        p.descriptionPtr(s.Description),
		Range:              p.symPtr(s.Range),
		RangeKind:          promoteRangeKind(s.RangeKind),
		RangeProperties:    p.strList(s.RangeProperties),
		Required:           p.boolVal(s.Required),
		Multivalued:        p.boolVal(s.Multivalued),
		Identifier:         p.boolVal(s.Identifier),
		Pattern:            p.strPtr(s.Pattern),
		StructuredPattern:  p.structuredPattern(s.StructuredPattern),
		MinimumValue:       p.valuePtr(s.MinimumValue),
		MaximumValue:       p.valuePtr(s.MaximumValue),
		MinimumCardinality: intPtr(s.MinimumCardinality),
		MaximumCardinality: intPtr(s.MaximumCardinality),
		IsA:                p.symPtr(s.IsA),
		Mixins:             p.symList(s.Mixins),
		SlotURI:            p.symPtr(s.SlotURI),
		Domain:             p.symPtr(s.Domain),
		Inverse:            p.symPtr(s.Inverse),
		Symmetric:          p.boolVal(s.Symmetric),
		Asymmetric:         p.boolVal(s.Asymmetric),
		Reflexive:          p.boolVal(s.Reflexive),
		Irreflexive:        p.boolVal(s.Irreflexive),
		LocallyReflexive:   p.boolVal(s.LocallyReflexive),
		Transitive:         p.boolVal(s.Transitive),
		IfAbsent:           p.strPtr(s.IfAbsent),
		EqualsString:       p.strPtr(s.EqualsString),
		EqualsNumber:       floatPtr(s.EqualsNumber),
		Aliases:            p.strList(s.Aliases),
		SeeAlso:            p.symList(s.SeeAlso),
		Imports:            p.symList(s.Imports),
		Annotations:        p.annotations(s.Annotations),
	}
}

func intPtr(s *ast.Spanned[int64]) *int64 {
	if s == nil {
		return nil
	}
	v := s.Value
	return &v
}

func floatPtr(s *ast.Spanned[float64]) *float64 {
	if s == nil {
		return nil
	}
	v := s.Value
	return &v
}

func (p *Promoter) slotMap(in *ast.OrderedSlots) *omap.Map[string, schema.Slot] {
	out := omap.New[string, schema.Slot]()
	if in == nil {
		return out
	}
	in.Range(func(k string, v ast.Spanned[ast.SlotAst]) bool {
		out.Set(k, p.slot(k, v.Value))
		return true
	})
	return out
}

func (p *Promoter) class(name string, c ast.ClassAst) schema.Class {
	var rules []schema.Rule
	for _, r := range c.Rules {
		rules = append(rules, p.rule(r.Value))
	}

	ifRequired := omap.New[string, schema.ConditionalRequirement]()
	if c.IfRequired != nil {
		c.IfRequired.Range(func(k string, v ast.Spanned[ast.ConditionalRequirementAst]) bool {
			ifRequired.Set(k, p.conditionalRequirement(k, v.Value))
			return true
		})
	}

	uniqueKeys := omap.New[string, schema.UniqueKey]()
	if c.UniqueKeys != nil {
		c.UniqueKeys.Range(func(k string, v ast.Spanned[ast.UniqueKeyAst]) bool {
			uniqueKeys.Set(k, p.uniqueKey(v.Value))
			return true
		})
	}

	return schema.Class{
		Name:             p.sym(name),
		Description:      p.descriptionPtr(c.Description),
		IsA:              p.symPtr(c.IsA),
		Abstract:         p.boolVal(c.Abstract),
		Mixin:            p.boolVal(c.Mixin),
		TreeRoot:         p.boolVal(c.TreeRoot),
		ClassURI:         p.symPtr(c.ClassURI),
		Mixins:           p.symList(c.Mixins),
		Slots:            p.symList(c.Slots),
		SlotUsage:        p.slotMap(c.SlotUsage),
		Attributes:       p.slotMap(c.Attributes),
		SubclassOf:       p.symList(c.SubclassOf),
		Rules:            rules,
		IfRequired:       ifRequired,
		UniqueKeys:       uniqueKeys,
		RecursionOptions: p.recursionOptions(c.RecursionOptions),
		Aliases:          p.strList(c.Aliases),
		SeeAlso:          p.symList(c.SeeAlso),
		IDPrefixes:       p.symList(c.IDPrefixes),
		BroadMappings:    p.symList(c.BroadMappings),
		ExactMappings:    p.symList(c.ExactMappings),
		NarrowMappings:   p.symList(c.NarrowMappings),
		RelatedMappings:  p.symList(c.RelatedMappings),
		CloseMappings:    p.symList(c.CloseMappings),
		Annotations:      p.annotations(c.Annotations),
	}
}

func (p *Promoter) typeDef(name string, t ast.TypeAst) schema.Type {
	return schema.Type{
		Name:         p.sym(name),
		Description:  p.descriptionPtr(t.Description),
		TypeOf:       p.symPtr(t.TypeOf),
		Base:         p.symPtr(t.Base),
		URI:          p.symPtr(t.URI),
		Pattern:      p.strPtr(t.Pattern),
		MinimumValue: p.valuePtr(t.MinimumValue),
		MaximumValue: p.valuePtr(t.MaximumValue),
		Annotations:  p.annotations(t.Annotations),
	}
}

func (p *Promoter) enum(name string, e ast.EnumAst) schema.Enum {
	pvs := omap.New[string, schema.PermissibleValue]()
	if e.PermissibleValues != nil {
		e.PermissibleValues.Range(func(k string, v ast.Spanned[ast.PermissibleValueAst]) bool {
			pvs.Set(k, p.permissibleValue(k, v.Value))
			return true
		})
	}
	return schema.Enum{
		Name:              p.sym(name),
		Description:       p.descriptionPtr(e.Description),
		PermissibleValues: pvs,
		CodeSet:           p.symPtr(e.CodeSet),
		CodeSetTag:        p.strPtr(e.CodeSetTag),
		CodeSetVersion:    p.strPtr(e.CodeSetVersion),
		Annotations:       p.annotations(e.Annotations),
	}
}

func (p *Promoter) subset(name string, s ast.SubsetAst) schema.Subset {
	return schema.Subset{
		Name:        p.sym(name),
		Description: p.descriptionPtr(s.Description),
		Annotations: p.annotations(s.Annotations),
	}
}

// Promote implements C3: the total AST -> canonical transformation
// spec.md §4.3 describes. It fails only the structural required-field
// check ("id, name must be present"); every other field has a defined
// canonical form, populated or not.
func (p *Promoter) Promote(doc *ast.SchemaAst) (*schema.Schema, error) {
	if err := doc.ValidateRequiredFields(); err != nil {
		return nil, err
	}

	out := schema.NewSchema()
	out.ID = doc.ID.Value
	out.Name = doc.Name.Value
	out.Title = p.strPtr(doc.Title)
	out.Description = p.descriptionPtr(doc.Description)
	out.Version = p.strPtr(doc.Version)
	out.License = p.strPtr(doc.License)
	out.CreatedOn = p.strPtr(doc.CreatedOn)
	out.LastUpdatedOn = p.strPtr(doc.LastUpdatedOn)
	out.DefaultPrefix = p.symPtr(doc.DefaultPrefix)
	out.DefaultRange = p.symPtr(doc.DefaultRange)
	out.MetamodelVersion = p.strPtr(doc.MetamodelVersion)
	out.SourceFile = p.strPtr(doc.SourceFile)
	out.GenerationDate = p.strPtr(doc.GenerationDate)
	out.Status = p.strPtr(doc.Status)
	out.Imports = p.symList(doc.Imports)
	out.Categories = p.symList(doc.Categories)
	out.Keywords = p.symList(doc.Keywords)
	out.SeeAlso = p.symList(doc.SeeAlso)
	out.Annotations = p.annotations(doc.Annotations)
	out.Spans.Set("schema", doc.Span)

	if doc.Prefixes != nil {
		doc.Prefixes.Range(func(k string, v ast.Spanned[ast.PrefixValueAst]) bool {
			out.Prefixes.Set(k, p.prefix(v.Value))
			return true
		})
	}
	if doc.Settings != nil {
		doc.Settings.Range(func(k string, v ast.Spanned[string]) bool {
			out.Settings.Set(k, v.Value)
			return true
		})
	}
	if doc.Classes != nil {
		doc.Classes.Range(func(k string, v ast.Spanned[ast.ClassAst]) bool {
			out.Spans.Set(schema.ClassPath(k), v.Span)
			out.Classes.Set(k, p.class(k, v.Value))
			return true
		})
	}
	if doc.Slots != nil {
		doc.Slots.Range(func(k string, v ast.Spanned[ast.SlotAst]) bool {
			out.Spans.Set(schema.SlotPath(k), v.Span)
			out.Slots.Set(k, p.slot(k, v.Value))
			return true
		})
	}
	if doc.Types != nil {
		doc.Types.Range(func(k string, v ast.Spanned[ast.TypeAst]) bool {
			out.Spans.Set(schema.TypePath(k), v.Span)
			out.Types.Set(k, p.typeDef(k, v.Value))
			return true
		})
	}
	if doc.Enums != nil {
		doc.Enums.Range(func(k string, v ast.Spanned[ast.EnumAst]) bool {
			out.Spans.Set(schema.EnumPath(k), v.Span)
			out.Enums.Set(k, p.enum(k, v.Value))
			return true
		})
	}
	if doc.Subsets != nil {
		doc.Subsets.Range(func(k string, v ast.Spanned[ast.SubsetAst]) bool {
			out.Spans.Set(schema.SubsetPath(k), v.Span)
			out.Subsets.Set(k, p.subset(k, v.Value))
			return true
		})
	}
	for _, c := range doc.Contributors {
		out.Contributors = append(out.Contributors, p.contributor(c.Value))
	}

	return out, nil
}
