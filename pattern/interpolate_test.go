package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkml-go/linkml/internal/omap"
	"github.com/linkml-go/linkml/schema"
)

func settingsOf(pairs ...string) *omap.Map[string, string] {
	m := omap.New[string, string]()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return m
}

func TestInterpolateSingleRound(t *testing.T) {
	out, err := Interpolate(`{country_code}-{id}`, settingsOf("country_code", "US", "id", `\d{5}`))
	require.NoError(t, err)
	assert.Equal(t, `US-\d{5}`, out)
}

func TestInterpolateFixedPoint(t *testing.T) {
	// "outer" expands to a literal containing another placeholder, which
	// only resolves on the second round.
	out, err := Interpolate(`{outer}`, settingsOf("outer", "{inner}", "inner", "value"))
	require.NoError(t, err)
	assert.Equal(t, "value", out)
}

func TestInterpolateUnresolvedPlaceholder(t *testing.T) {
	_, err := Interpolate(`{missing}`, settingsOf())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unresolved placeholder")
}

func TestInterpolateCycleDetected(t *testing.T) {
	_, err := Interpolate(`{a}`, settingsOf("a", "{b}", "b", "{a}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle detected")
}

func TestInterpolateNoPlaceholders(t *testing.T) {
	out, err := Interpolate(`^[A-Z]+$`, settingsOf())
	require.NoError(t, err)
	assert.Equal(t, `^[A-Z]+$`, out)
}

// TestCompileSlotPatternMatching mirrors spec.md §8's seed test 5: the
// compiled regex is used by the (external) validation engine with
// MatchString, whose substring semantics mean a pattern author relying
// on full-string matching must anchor their own syntax with ^$ -
// CompileSlotPattern compiles exactly what interpolation produces and
// takes no position on anchoring (spec.md §1 Non-goals: validation
// itself is out of scope for this core).
func TestCompileSlotPatternMatching(t *testing.T) {
	sp := &schema.StructuredPattern{Syntax: `^{country_code}\d{3}$`, Interpolated: true}
	re, err := CompileSlotPattern(sp, settingsOf("country_code", "US"))
	require.NoError(t, err)

	assert.True(t, re.MatchString("US123"))
	assert.False(t, re.MatchString("us123"))
	assert.False(t, re.MatchString("USA123"))
	assert.False(t, re.MatchString(""))
}

func TestCompileSlotPatternNotInterpolated(t *testing.T) {
	sp := &schema.StructuredPattern{Syntax: `^[0-9]+$`, Interpolated: false}
	re, err := CompileSlotPattern(sp, settingsOf())
	require.NoError(t, err)
	assert.True(t, re.MatchString("12345"))
}

func TestCompileSlotPatternNil(t *testing.T) {
	re, err := CompileSlotPattern(nil, settingsOf())
	require.NoError(t, err)
	assert.Nil(t, re)
}
