package protocolapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnumsIgnoreCase(t *testing.T) {
	level, ok := ParseIntensity("  INTENSIVE ")
	require.True(t, ok)
	assert.Equal(t, IntensityIntensive, level)

	tier, ok := ParseEvidenceTier("Clinical_Studies")
	require.True(t, ok)
	assert.Equal(t, EvidenceClinicalStudies, tier)

	category, ok := ParseCategory("Ayurvedic")
	require.True(t, ok)
	assert.Equal(t, CategoryAyurvedic, category)
}

func TestParseEnumsRejectUnknown(t *testing.T) {
	for _, raw := range []string{"", " ", "extreme", "clinical studies"} {
		_, ok := ParseIntensity(raw)
		assert.False(t, ok, "intensity %q", raw)
		_, ok = ParseEvidenceTier(raw)
		assert.False(t, ok, "evidence %q", raw)
		_, ok = ParseCategory(raw)
		assert.False(t, ok, "category %q", raw)
	}
}

func TestValidIsExact(t *testing.T) {
	assert.True(t, IntensityGentle.Valid())
	assert.False(t, Intensity("Gentle").Valid())
	assert.True(t, EvidenceWHOApproved.Valid())
	assert.False(t, EvidenceTier("who approved").Valid())
	assert.True(t, CategoryCombination.Valid())
	assert.False(t, Category("").Valid())
}

func TestEnumListsAreCopies(t *testing.T) {
	list := Intensities()
	list[0] = "mutated"
	assert.Equal(t, IntensityGentle, Intensities()[0])
	assert.Len(t, Categories(), 4)
	assert.Len(t, EvidenceTiers(), 4)
}

func TestNormalizeTag(t *testing.T) {
	assert.Equal(t, "digestive_issues", NormalizeTag(" DIGESTIVE_ISSUES\t"))
	assert.Equal(t, "", NormalizeTag("   "))
	assert.Equal(t, NormalizeTag("ÄRGER"), NormalizeTag("ärger"))
}
