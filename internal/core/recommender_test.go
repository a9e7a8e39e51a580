package core_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"protocolkb/internal/core"
	"protocolkb/pkg/protocolapi"
)

func recommendationIDs(recs []protocolapi.Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Protocol.ID
	}
	return out
}

func assertRanked(t *testing.T, recs []protocolapi.Recommendation) {
	t.Helper()
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].MatchScore, recs[i].MatchScore, "rank %d", i)
	}
}

func TestRecommendEmptyInput(t *testing.T) {
	r := core.NewRecommender(newCatalog(t))
	for _, conditions := range [][]string{nil, {}, {"nonexistent_tag"}, {"  ", ""}} {
		got := r.Recommend(conditions, "")
		require.NotNil(t, got)
		assert.Empty(t, got, "conditions %q", conditions)
	}
	nilRecommender := core.NewRecommender(nil)
	assert.Empty(t, nilRecommender.Recommend([]string{"fatigue"}, ""))
}

func TestRecommendSingleCondition(t *testing.T) {
	got := core.NewRecommender(newCatalog(t)).Recommend([]string{"digestive_issues"}, "")
	require.NotEmpty(t, got)
	assert.GreaterOrEqual(t, got[0].MatchScore, 1)
	assert.Contains(t, got[0].Reasoning, "digestive_issues")
	assert.Len(t, got, protocolapi.MaxRecommendations)
	assert.Equal(t, []string{
		"traditional-triple", "ayurvedic-vidanga", "gentle-pumpkin-papaya", "modern-berberine", "combination-comprehensive",
	}, recommendationIDs(got))
}

func TestRecommendRegionFilter(t *testing.T) {
	got := core.NewRecommender(newCatalog(t)).Recommend([]string{"digestive_issues", "fatigue"}, "north_america")
	require.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), 5)
	assertRanked(t, got)
	for _, rec := range got {
		ok := slices.Contains(rec.Protocol.RegionalAvailability, "north_america") ||
			slices.Contains(rec.Protocol.RegionalAvailability, protocolapi.RegionWorldwide)
		assert.True(t, ok, "%s not available in north_america", rec.Protocol.ID)
		assert.Equal(t, 2, rec.MatchScore)
		assert.Contains(t, rec.Reasoning, "available for north_america")
	}
	// Six protocols score 2 here; stable ordering keeps the first five in
	// catalog order.
	assert.Equal(t, []string{
		"traditional-triple", "gentle-pumpkin-papaya", "modern-berberine", "combination-comprehensive", "liver-fluke",
	}, recommendationIDs(got))
}

func TestRecommendRanksByScore(t *testing.T) {
	got := core.NewRecommender(newCatalog(t)).Recommend([]string{"skin_problems", "digestive_issues", "fatigue"}, "")
	require.Len(t, got, 5)
	assertRanked(t, got)
	assert.Equal(t, []string{
		"traditional-triple", "combination-comprehensive", "ayurvedic-vidanga", "gentle-pumpkin-papaya", "modern-berberine",
	}, recommendationIDs(got))
	assert.Equal(t, []int{3, 3, 2, 2, 2}, []int{got[0].MatchScore, got[1].MatchScore, got[2].MatchScore, got[3].MatchScore, got[4].MatchScore})
	assert.Equal(t, []string{"skin_problems", "digestive_issues", "fatigue"}, got[0].MatchedConditions)
	assert.Equal(t, []string{"skin_problems", "digestive_issues"}, got[2].MatchedConditions)
}

func TestRecommendReasoningNamesConditions(t *testing.T) {
	conditions := []string{"Digestive_Issues", "joint_pain", "nonexistent_tag"}
	got := core.NewRecommender(newCatalog(t)).Recommend(conditions, "")
	require.NotEmpty(t, got)
	for _, rec := range got {
		found := false
		for _, cond := range conditions {
			if strings.Contains(rec.Reasoning, cond) {
				found = true
			}
		}
		assert.True(t, found, "reasoning %q names no input condition", rec.Reasoning)
		assert.NotContains(t, rec.Reasoning, "nonexistent_tag")
	}
	assert.Equal(t,
		"Matches 2 of 3 reported conditions (Digestive_Issues, joint_pain). Intensive combination protocol backed by anecdotal evidence; recommended course 60 days.",
		got[0].Reasoning)
}

func TestRecommendDeduplicatesConditions(t *testing.T) {
	got := core.NewRecommender(newCatalog(t)).Recommend([]string{"digestive_issues", "DIGESTIVE_ISSUES", " digestive_issues "}, "")
	require.NotEmpty(t, got)
	seen := map[string]bool{}
	for _, rec := range got {
		assert.Equal(t, 1, rec.MatchScore)
		assert.Equal(t, []string{"digestive_issues"}, rec.MatchedConditions)
		assert.False(t, seen[rec.Protocol.ID], "duplicate protocol %s", rec.Protocol.ID)
		seen[rec.Protocol.ID] = true
	}
}

func TestRecommendExclusions(t *testing.T) {
	r := core.NewRecommender(newCatalog(t))
	got := r.RecommendFor(core.RecommendationRequest{
		Conditions: []string{"digestive_issues", "fatigue"},
		Exclusions: []string{"PREGNANCY"},
	})
	assert.Equal(t, []string{"gentle-pumpkin-papaya"}, recommendationIDs(got))

	none := r.RecommendFor(core.RecommendationRequest{
		Conditions: []string{"night_sweats"},
		Exclusions: []string{"liver_disease"},
	})
	assert.Empty(t, none)
}

func TestRecommendWithLimit(t *testing.T) {
	catalog := newCatalog(t)
	two := core.NewRecommender(catalog, core.WithLimit(2))
	assert.Equal(t, 2, two.Limit())
	assert.Len(t, two.Recommend([]string{"digestive_issues"}, ""), 2)

	for _, n := range []int{0, -1, 6, 50} {
		r := core.NewRecommender(catalog, core.WithLimit(n))
		assert.Equal(t, protocolapi.MaxRecommendations, r.Limit(), "limit %d", n)
		assert.Len(t, r.Recommend([]string{"digestive_issues"}, ""), 5)
	}
}

func TestRecommendDoesNotMutateCatalog(t *testing.T) {
	catalog := newCatalog(t)
	before := catalog.All()
	got := core.NewRecommender(catalog).Recommend([]string{"digestive_issues"}, "")
	got[0].Protocol.Name = "mutated"
	got[0].Protocol.AilmentTargets[0] = "mutated"
	assert.Equal(t, before, catalog.All())
}
