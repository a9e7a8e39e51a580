package core

import (
	"sort"

	"protocolkb/pkg/protocolapi"
)

// ByAilment returns every protocol whose ailment targets contain tag.
func (c *Catalog) ByAilment(tag string) []protocolapi.Protocol {
	norm := protocolapi.NormalizeTag(tag)
	if norm == "" {
		return []protocolapi.Protocol{}
	}
	return c.collect(func(e catalogEntry) bool { return e.targets(norm) })
}

// ByIntensity returns every protocol of the given intensity tier. Unknown
// tiers match nothing.
func (c *Catalog) ByIntensity(level string) []protocolapi.Protocol {
	intensity, ok := protocolapi.ParseIntensity(level)
	if !ok {
		return []protocolapi.Protocol{}
	}
	return c.collect(func(e catalogEntry) bool { return e.protocol.Intensity == intensity })
}

// ByEvidence returns every protocol of the given evidence tier. Unknown tiers
// match nothing.
func (c *Catalog) ByEvidence(tier string) []protocolapi.Protocol {
	evidence, ok := protocolapi.ParseEvidenceTier(tier)
	if !ok {
		return []protocolapi.Protocol{}
	}
	return c.collect(func(e catalogEntry) bool { return e.protocol.Evidence == evidence })
}

// ByCategory returns every protocol in the given category.
func (c *Catalog) ByCategory(category string) []protocolapi.Protocol {
	cat, ok := protocolapi.ParseCategory(category)
	if !ok {
		return []protocolapi.Protocol{}
	}
	return c.collect(func(e catalogEntry) bool { return e.protocol.Category == cat })
}

// ByRegion returns every protocol available in region. Protocols tagged
// worldwide match any non-empty region.
func (c *Catalog) ByRegion(region string) []protocolapi.Protocol {
	norm := protocolapi.NormalizeTag(region)
	if norm == "" {
		return []protocolapi.Protocol{}
	}
	return c.collect(func(e catalogEntry) bool { return e.availableIn(norm) })
}

func (e catalogEntry) targets(normTag string) bool {
	_, ok := e.ailments[normTag]
	return ok
}

func (e catalogEntry) availableIn(normRegion string) bool {
	if e.worldwide {
		return true
	}
	_, ok := e.regions[normRegion]
	return ok
}

func (e catalogEntry) contraindicated(normTag string) bool {
	_, ok := e.excludes[normTag]
	return ok
}

// Query combines attribute filters. Empty fields do not constrain the result;
// a field holding an unknown enum value matches nothing.
type Query struct {
	Ailment   string `json:"ailment,omitempty"`
	Intensity string `json:"intensity,omitempty"`
	Evidence  string `json:"evidence,omitempty"`
	Region    string `json:"region,omitempty"`
	Category  string `json:"category,omitempty"`
}

// IsZero reports whether the query sets no filter.
func (q Query) IsZero() bool {
	return protocolapi.NormalizeTag(q.Ailment) == "" &&
		protocolapi.NormalizeTag(q.Intensity) == "" &&
		protocolapi.NormalizeTag(q.Evidence) == "" &&
		protocolapi.NormalizeTag(q.Region) == "" &&
		protocolapi.NormalizeTag(q.Category) == ""
}

// Search returns the protocols satisfying every populated field of q, in
// catalog order.
func (c *Catalog) Search(q Query) []protocolapi.Protocol {
	var preds []func(catalogEntry) bool

	if tag := protocolapi.NormalizeTag(q.Ailment); tag != "" {
		preds = append(preds, func(e catalogEntry) bool { return e.targets(tag) })
	}
	if region := protocolapi.NormalizeTag(q.Region); region != "" {
		preds = append(preds, func(e catalogEntry) bool { return e.availableIn(region) })
	}
	if protocolapi.NormalizeTag(q.Intensity) != "" {
		level, ok := protocolapi.ParseIntensity(q.Intensity)
		if !ok {
			return []protocolapi.Protocol{}
		}
		preds = append(preds, func(e catalogEntry) bool { return e.protocol.Intensity == level })
	}
	if protocolapi.NormalizeTag(q.Evidence) != "" {
		tier, ok := protocolapi.ParseEvidenceTier(q.Evidence)
		if !ok {
			return []protocolapi.Protocol{}
		}
		preds = append(preds, func(e catalogEntry) bool { return e.protocol.Evidence == tier })
	}
	if protocolapi.NormalizeTag(q.Category) != "" {
		cat, ok := protocolapi.ParseCategory(q.Category)
		if !ok {
			return []protocolapi.Protocol{}
		}
		preds = append(preds, func(e catalogEntry) bool { return e.protocol.Category == cat })
	}

	return c.collect(func(e catalogEntry) bool {
		for _, pred := range preds {
			if !pred(e) {
				return false
			}
		}
		return true
	})
}

// Facets summarizes the selectable values present in the catalog.
type Facets struct {
	Ailments          []string       `json:"ailments"`
	Regions           []string       `json:"regions"`
	TargetParasites   []string       `json:"target_parasites"`
	Contraindications []string       `json:"contraindications"`
	Categories        map[string]int `json:"categories"`
	Intensities       map[string]int `json:"intensities"`
	EvidenceTiers     map[string]int `json:"evidence_tiers"`
	Total             int            `json:"total"`
}

// Facets computes the distinct normalized tags and per-enum counts. Every
// declared enum value is present in the count maps, zero when unused.
func (c *Catalog) Facets() Facets {
	f := Facets{
		Categories:    make(map[string]int),
		Intensities:   make(map[string]int),
		EvidenceTiers: make(map[string]int),
	}
	for _, cat := range protocolapi.Categories() {
		f.Categories[string(cat)] = 0
	}
	for _, level := range protocolapi.Intensities() {
		f.Intensities[string(level)] = 0
	}
	for _, tier := range protocolapi.EvidenceTiers() {
		f.EvidenceTiers[string(tier)] = 0
	}

	ailments := map[string]struct{}{}
	regions := map[string]struct{}{}
	parasites := map[string]struct{}{}
	excludes := map[string]struct{}{}
	if c != nil {
		for _, e := range c.entries {
			f.Total++
			f.Categories[string(e.protocol.Category)]++
			f.Intensities[string(e.protocol.Intensity)]++
			f.EvidenceTiers[string(e.protocol.Evidence)]++
			mergeKeys(ailments, e.ailments)
			mergeKeys(regions, e.regions)
			mergeKeys(excludes, e.excludes)
			for _, parasite := range e.protocol.TargetParasites {
				parasites[protocolapi.NormalizeTag(parasite)] = struct{}{}
			}
		}
	}
	f.Ailments = sortedKeys(ailments)
	f.Regions = sortedKeys(regions)
	f.TargetParasites = sortedKeys(parasites)
	f.Contraindications = sortedKeys(excludes)
	return f
}

func mergeKeys(dst, src map[string]struct{}) {
	for k := range src {
		dst[k] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
