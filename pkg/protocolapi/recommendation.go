package protocolapi

// MaxRecommendations caps every recommendation result.
const MaxRecommendations = 5

// Recommendation is one ranked candidate produced for a set of reported
// conditions.
type Recommendation struct {
	Protocol          Protocol `json:"protocol"`
	MatchScore        int      `json:"match_score"`
	Reasoning         string   `json:"reasoning"`
	MatchedConditions []string `json:"matched_conditions"`
}
