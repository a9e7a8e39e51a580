package core

import (
	"fmt"
	"sort"
	"strings"

	"protocolkb/pkg/protocolapi"
)

// RecommendationRequest carries the wizard's selected conditions. Region is
// optional; Exclusions lists population or condition tags (for example
// "pregnancy") whose contraindicated protocols must be dropped.
type RecommendationRequest struct {
	Conditions []string `json:"conditions"`
	Region     string   `json:"region,omitempty"`
	Exclusions []string `json:"exclusions,omitempty"`
}

// Recommender ranks catalog protocols against reported conditions.
type Recommender struct {
	catalog *Catalog
	limit   int
}

// RecommenderOption customizes a Recommender.
type RecommenderOption func(*Recommender)

// WithLimit lowers the maximum number of results. Values outside
// [1, protocolapi.MaxRecommendations] are ignored.
func WithLimit(n int) RecommenderOption {
	return func(r *Recommender) {
		if n >= 1 && n <= protocolapi.MaxRecommendations {
			r.limit = n
		}
	}
}

// NewRecommender constructs a recommender over catalog.
func NewRecommender(catalog *Catalog, opts ...RecommenderOption) *Recommender {
	r := &Recommender{catalog: catalog, limit: protocolapi.MaxRecommendations}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Limit reports the effective result cap.
func (r *Recommender) Limit() int { return r.limit }

// Recommend ranks protocols by how many of conditions they target, keeping
// only those available in region when one is given.
func (r *Recommender) Recommend(conditions []string, region string) []protocolapi.Recommendation {
	return r.RecommendFor(RecommendationRequest{Conditions: conditions, Region: region})
}

type condition struct {
	raw  string
	norm string
}

type candidate struct {
	entry   catalogEntry
	matched []string
}

// RecommendFor is Recommend with contraindication exclusions.
func (r *Recommender) RecommendFor(req RecommendationRequest) []protocolapi.Recommendation {
	out := []protocolapi.Recommendation{}
	conditions := distinctConditions(req.Conditions)
	if len(conditions) == 0 || r.catalog == nil {
		return out
	}
	region := protocolapi.NormalizeTag(req.Region)
	exclusions := distinctConditions(req.Exclusions)

	var candidates []candidate
	for _, entry := range r.catalog.entries {
		var matched []string
		for _, cond := range conditions {
			if entry.targets(cond.norm) {
				matched = append(matched, cond.raw)
			}
		}
		if len(matched) == 0 {
			continue
		}
		if region != "" && !entry.availableIn(region) {
			continue
		}
		if excludedBy(entry, exclusions) {
			continue
		}
		candidates = append(candidates, candidate{entry: entry, matched: matched})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i].matched) > len(candidates[j].matched)
	})
	if len(candidates) > r.limit {
		candidates = candidates[:r.limit]
	}

	for _, c := range candidates {
		out = append(out, protocolapi.Recommendation{
			Protocol:          c.entry.protocol.Clone(),
			MatchScore:        len(c.matched),
			Reasoning:         reasoning(c.entry.protocol, c.matched, len(conditions), req.Region),
			MatchedConditions: c.matched,
		})
	}
	return out
}

// distinctConditions drops blanks and case-insensitive duplicates, keeping
// the first spelling the caller used.
func distinctConditions(raw []string) []condition {
	seen := make(map[string]struct{}, len(raw))
	out := make([]condition, 0, len(raw))
	for _, value := range raw {
		trimmed := strings.TrimSpace(value)
		norm := protocolapi.NormalizeTag(trimmed)
		if norm == "" {
			continue
		}
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, condition{raw: trimmed, norm: norm})
	}
	return out
}

func excludedBy(entry catalogEntry, exclusions []condition) bool {
	for _, ex := range exclusions {
		if entry.contraindicated(ex.norm) {
			return true
		}
	}
	return false
}

func reasoning(p protocolapi.Protocol, matched []string, requested int, region string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Matches %d of %d reported conditions (%s). ", len(matched), requested, strings.Join(matched, ", "))
	fmt.Fprintf(&b, "%s %s protocol backed by %s evidence; recommended course %d days",
		capitalize(string(p.Intensity)), humanize(string(p.Category)), humanize(string(p.Evidence)), p.Duration.Recommended)
	if region = strings.TrimSpace(region); region != "" {
		fmt.Fprintf(&b, ", available for %s", region)
	}
	b.WriteString(".")
	return b.String()
}

func humanize(tag string) string {
	return strings.ReplaceAll(tag, "_", " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
