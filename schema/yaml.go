package schema

// This file implements MarshalYAML across the canonical schema's sum
// types and structs, keyed to the exact field names parser/build.go
// recognises on the way in — the inverse of that file — so that
// gopkg.in/yaml.v3.Marshal(schema) followed by parser.ParseFile
// round-trips to an equal canonical value (SPEC_FULL.md ADDENDUM C,
// spec.md §8 "Round-trip & boundary"). Spans are dropped: the
// declaration types carry none, and Schema's Spans side table is not
// serialised.

func (d InlineDescription) MarshalYAML() (any, error) { return string(d), nil }
func (d BlockDescription) MarshalYAML() (any, error)  { return string(d), nil }

func (p SimplePrefix) MarshalYAML() (any, error) { return p.URI, nil }

func (p ComplexPrefix) MarshalYAML() (any, error) {
	return map[string]any{
		"prefix_prefix":    p.Prefix,
		"prefix_reference": p.Reference,
	}, nil
}

// A simple permissible value renders as an empty mapping ("name: {}"),
// the form permissibleValueVal in parser/build.go promotes back to
// SimplePermissibleValue; a bare scalar would be rejected there.
func (v SimplePermissibleValue) MarshalYAML() (any, error) { return map[string]any{}, nil }

func (v ComplexPermissibleValue) MarshalYAML() (any, error) {
	m := map[string]any{"text": v.Text}
	if v.Description != nil {
		m["description"] = v.Description
	}
	if v.Meaning != nil {
		m["meaning"] = *v.Meaning
	}
	if len(v.Aliases) > 0 {
		m["aliases"] = v.Aliases
	}
	if len(v.SeeAlso) > 0 {
		m["see_also"] = v.SeeAlso
	}
	return m, nil
}

func (sp *StructuredPattern) marshal() map[string]any {
	if sp == nil {
		return nil
	}
	return map[string]any{"syntax": sp.Syntax, "interpolated": sp.Interpolated}
}

func (r RecursionOptions) MarshalYAML() (any, error) {
	m := map[string]any{"use_box": r.UseBox}
	if r.MaxDepth != nil {
		m["max_depth"] = *r.MaxDepth
	}
	return m, nil
}

func (c Contributor) MarshalYAML() (any, error) {
	m := map[string]any{"name": c.Name}
	if c.Email != nil {
		m["email"] = *c.Email
	}
	if c.ORCID != nil {
		m["orcid"] = *c.ORCID
	}
	return m, nil
}

func (r Rule) MarshalYAML() (any, error) {
	m := map[string]any{}
	if r.Preconditions != nil && r.Preconditions.Len() > 0 {
		m["preconditions"] = r.Preconditions
	}
	if r.Postconditions != nil && r.Postconditions.Len() > 0 {
		m["postconditions"] = r.Postconditions
	}
	return m, nil
}

func (cr ConditionalRequirement) MarshalYAML() (any, error) {
	return map[string]any{"then_required": cr.ThenRequired}, nil
}

func (uk UniqueKey) MarshalYAML() (any, error) {
	return map[string]any{"unique_key_slots": uk.UniqueKeySlots}, nil
}

func (t Type) MarshalYAML() (any, error) {
	m := map[string]any{}
	if t.Description != nil {
		m["description"] = t.Description
	}
	if t.TypeOf != nil {
		m["typeof"] = *t.TypeOf
	}
	if t.Base != nil {
		m["base"] = *t.Base
	}
	if t.URI != nil {
		m["uri"] = *t.URI
	}
	if t.Pattern != nil {
		m["pattern"] = *t.Pattern
	}
	if t.MinimumValue != nil {
		m["minimum_value"] = t.MinimumValue
	}
	if t.MaximumValue != nil {
		m["maximum_value"] = t.MaximumValue
	}
	if t.Annotations != nil && t.Annotations.Len() > 0 {
		m["annotations"] = t.Annotations
	}
	return m, nil
}

func (e Enum) MarshalYAML() (any, error) {
	m := map[string]any{}
	if e.Description != nil {
		m["description"] = e.Description
	}
	if e.PermissibleValues != nil && e.PermissibleValues.Len() > 0 {
		m["permissible_values"] = e.PermissibleValues
	}
	if e.CodeSet != nil {
		m["code_set"] = *e.CodeSet
	}
	if e.CodeSetTag != nil {
		m["code_set_tag"] = *e.CodeSetTag
	}
	if e.CodeSetVersion != nil {
		m["code_set_version"] = *e.CodeSetVersion
	}
	if e.Annotations != nil && e.Annotations.Len() > 0 {
		m["annotations"] = e.Annotations
	}
	return m, nil
}

func (s Subset) MarshalYAML() (any, error) {
	m := map[string]any{}
	if s.Description != nil {
		m["description"] = s.Description
	}
	if s.Annotations != nil && s.Annotations.Len() > 0 {
		m["annotations"] = s.Annotations
	}
	return m, nil
}

func rangeKindString(k RangeKind) string {
	switch k {
	case RangeKindClass:
		return "class"
	case RangeKindInstance:
		return "instance"
	default:
		return ""
	}
}

func (s Slot) MarshalYAML() (any, error) {
	m := map[string]any{}
	if s.Description != nil {
		m["description"] = s.Description
	}
	if s.Range != nil {
		m["range"] = *s.Range
	}
	if rk := rangeKindString(s.RangeKind); rk != "" {
		m["range_type"] = rk
	}
	if len(s.RangeProperties) > 0 {
		m["range_properties"] = s.RangeProperties
	}
	if s.Required {
		m["required"] = true
	}
	if s.Multivalued {
		m["multivalued"] = true
	}
	if s.Identifier {
		m["identifier"] = true
	}
	if s.Pattern != nil {
		m["pattern"] = *s.Pattern
	}
	if s.StructuredPattern != nil {
		m["structured_pattern"] = s.StructuredPattern.marshal()
	}
	if s.MinimumValue != nil {
		m["minimum_value"] = s.MinimumValue
	}
	if s.MaximumValue != nil {
		m["maximum_value"] = s.MaximumValue
	}
	if s.MinimumCardinality != nil {
		m["minimum_cardinality"] = *s.MinimumCardinality
	}
	if s.MaximumCardinality != nil {
		m["maximum_cardinality"] = *s.MaximumCardinality
	}
	if s.IsA != nil {
		m["is_a"] = *s.IsA
	}
	if len(s.Mixins) > 0 {
		m["mixins"] = s.Mixins
	}
	if s.SlotURI != nil {
		m["slot_uri"] = *s.SlotURI
	}
	if s.Domain != nil {
		m["domain"] = *s.Domain
	}
	if s.Inverse != nil {
		m["inverse"] = *s.Inverse
	}
	if s.Symmetric {
		m["symmetric"] = true
	}
	if s.Asymmetric {
		m["asymmetric"] = true
	}
	if s.Reflexive {
		m["reflexive"] = true
	}
	if s.Irreflexive {
		m["irreflexive"] = true
	}
	if s.LocallyReflexive {
		m["locally_reflexive"] = true
	}
	if s.Transitive {
		m["transitive"] = true
	}
	if s.IfAbsent != nil {
		m["ifabsent"] = *s.IfAbsent
	}
	if s.EqualsString != nil {
		m["equals_string"] = *s.EqualsString
	}
	if s.EqualsNumber != nil {
		m["equals_number"] = *s.EqualsNumber
	}
	if len(s.Aliases) > 0 {
		m["aliases"] = s.Aliases
	}
	if len(s.SeeAlso) > 0 {
		m["see_also"] = s.SeeAlso
	}
	if len(s.Imports) > 0 {
		m["imports"] = s.Imports
	}
	if s.Annotations != nil && s.Annotations.Len() > 0 {
		m["annotations"] = s.Annotations
	}
	return m, nil
}

func (c Class) MarshalYAML() (any, error) {
	m := map[string]any{}
	if c.Description != nil {
		m["description"] = c.Description
	}
	if c.IsA != nil {
		m["is_a"] = *c.IsA
	}
	if c.Abstract {
		m["abstract"] = true
	}
	if c.Mixin {
		m["mixin"] = true
	}
	if c.TreeRoot {
		m["tree_root"] = true
	}
	if c.ClassURI != nil {
		m["class_uri"] = *c.ClassURI
	}
	if len(c.Mixins) > 0 {
		m["mixins"] = c.Mixins
	}
	if len(c.Slots) > 0 {
		m["slots"] = c.Slots
	}
	if c.SlotUsage != nil && c.SlotUsage.Len() > 0 {
		m["slot_usage"] = c.SlotUsage
	}
	if c.Attributes != nil && c.Attributes.Len() > 0 {
		m["attributes"] = c.Attributes
	}
	if len(c.SubclassOf) > 0 {
		m["subclass_of"] = c.SubclassOf
	}
	if len(c.Rules) > 0 {
		m["rules"] = c.Rules
	}
	if c.IfRequired != nil && c.IfRequired.Len() > 0 {
		m["if_required"] = c.IfRequired
	}
	if c.UniqueKeys != nil && c.UniqueKeys.Len() > 0 {
		m["unique_keys"] = c.UniqueKeys
	}
	if c.RecursionOptions != nil {
		m["recursion_options"] = *c.RecursionOptions
	}
	if len(c.Aliases) > 0 {
		m["aliases"] = c.Aliases
	}
	if len(c.SeeAlso) > 0 {
		m["see_also"] = c.SeeAlso
	}
	if len(c.IDPrefixes) > 0 {
		m["id_prefixes"] = c.IDPrefixes
	}
	if len(c.BroadMappings) > 0 {
		m["broad_mappings"] = c.BroadMappings
	}
	if len(c.ExactMappings) > 0 {
		m["exact_mappings"] = c.ExactMappings
	}
	if len(c.NarrowMappings) > 0 {
		m["narrow_mappings"] = c.NarrowMappings
	}
	if len(c.RelatedMappings) > 0 {
		m["related_mappings"] = c.RelatedMappings
	}
	if len(c.CloseMappings) > 0 {
		m["close_mappings"] = c.CloseMappings
	}
	if c.Annotations != nil && c.Annotations.Len() > 0 {
		m["annotations"] = c.Annotations
	}
	return m, nil
}

// MarshalYAML renders the schema in the same shape parser/build.go
// parses, so (yaml.Marshal(schema); parser.ParseFile(...); promote)
// reproduces an equal canonical value.
func (s *Schema) MarshalYAML() (any, error) {
	m := map[string]any{
		"id":   s.ID,
		"name": s.Name,
	}
	if s.Title != nil {
		m["title"] = *s.Title
	}
	if s.Description != nil {
		m["description"] = s.Description
	}
	if s.Version != nil {
		m["version"] = *s.Version
	}
	if s.License != nil {
		m["license"] = *s.License
	}
	if s.CreatedOn != nil {
		m["created_on"] = *s.CreatedOn
	}
	if s.LastUpdatedOn != nil {
		m["last_updated_on"] = *s.LastUpdatedOn
	}
	if s.DefaultPrefix != nil {
		m["default_prefix"] = *s.DefaultPrefix
	}
	if s.DefaultRange != nil {
		m["default_range"] = *s.DefaultRange
	}
	if s.MetamodelVersion != nil {
		m["metamodel_version"] = *s.MetamodelVersion
	}
	if s.SourceFile != nil {
		m["source_file"] = *s.SourceFile
	}
	if s.GenerationDate != nil {
		m["generation_date"] = *s.GenerationDate
	}
	if s.Status != nil {
		m["status"] = *s.Status
	}
	if s.Prefixes != nil && s.Prefixes.Len() > 0 {
		m["prefixes"] = s.Prefixes
	}
	if len(s.Imports) > 0 {
		m["imports"] = s.Imports
	}
	if s.Settings != nil && s.Settings.Len() > 0 {
		m["settings"] = s.Settings
	}
	if s.Classes != nil && s.Classes.Len() > 0 {
		m["classes"] = s.Classes
	}
	if s.Slots != nil && s.Slots.Len() > 0 {
		m["slots"] = s.Slots
	}
	if s.Types != nil && s.Types.Len() > 0 {
		m["types"] = s.Types
	}
	if s.Enums != nil && s.Enums.Len() > 0 {
		m["enums"] = s.Enums
	}
	if s.Subsets != nil && s.Subsets.Len() > 0 {
		m["subsets"] = s.Subsets
	}
	if len(s.Contributors) > 0 {
		m["contributors"] = s.Contributors
	}
	if len(s.Categories) > 0 {
		m["categories"] = s.Categories
	}
	if len(s.Keywords) > 0 {
		m["keywords"] = s.Keywords
	}
	if len(s.SeeAlso) > 0 {
		m["see_also"] = s.SeeAlso
	}
	if s.Annotations != nil && s.Annotations.Len() > 0 {
		m["annotations"] = s.Annotations
	}
	return m, nil
}
