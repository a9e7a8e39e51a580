package protocolapi

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

type Category string

const (
	CategoryTraditional Category = "traditional"
	CategoryAyurvedic   Category = "ayurvedic"
	CategoryModern      Category = "modern"
	CategoryCombination Category = "combination"
)

type Intensity string

const (
	IntensityGentle    Intensity = "gentle"
	IntensityModerate  Intensity = "moderate"
	IntensityIntensive Intensity = "intensive"
)

type EvidenceTier string

const (
	EvidenceTraditional     EvidenceTier = "traditional"
	EvidenceAnecdotal       EvidenceTier = "anecdotal"
	EvidenceClinicalStudies EvidenceTier = "clinical_studies"
	EvidenceWHOApproved     EvidenceTier = "who_approved"
)

// RegionWorldwide matches every region query.
const RegionWorldwide = "worldwide"

// ContraindicationPregnancy must be listed by every intensive protocol.
const ContraindicationPregnancy = "pregnancy"

var (
	categories    = []Category{CategoryTraditional, CategoryAyurvedic, CategoryModern, CategoryCombination}
	intensities   = []Intensity{IntensityGentle, IntensityModerate, IntensityIntensive}
	evidenceTiers = []EvidenceTier{EvidenceTraditional, EvidenceAnecdotal, EvidenceClinicalStudies, EvidenceWHOApproved}
)

// Categories returns the closed set of protocol categories in declaration order.
func Categories() []Category { return append([]Category(nil), categories...) }

// Intensities returns the closed set of intensity tiers, gentlest first.
func Intensities() []Intensity { return append([]Intensity(nil), intensities...) }

// EvidenceTiers returns the closed set of evidence tiers, weakest first.
func EvidenceTiers() []EvidenceTier { return append([]EvidenceTier(nil), evidenceTiers...) }

// ParseCategory resolves a category name regardless of case.
func ParseCategory(s string) (Category, bool) {
	norm := Category(NormalizeTag(s))
	for _, c := range categories {
		if c == norm {
			return c, true
		}
	}
	return "", false
}

// ParseIntensity resolves an intensity tier regardless of case.
func ParseIntensity(s string) (Intensity, bool) {
	norm := Intensity(NormalizeTag(s))
	for _, i := range intensities {
		if i == norm {
			return i, true
		}
	}
	return "", false
}

// ParseEvidenceTier resolves an evidence tier regardless of case.
func ParseEvidenceTier(s string) (EvidenceTier, bool) {
	norm := EvidenceTier(NormalizeTag(s))
	for _, e := range evidenceTiers {
		if e == norm {
			return e, true
		}
	}
	return "", false
}

// Valid reports whether c is one of the declared categories, compared exactly.
func (c Category) Valid() bool { return slices.Contains(categories, c) }

// Valid reports whether i is one of the declared intensity tiers, compared exactly.
func (i Intensity) Valid() bool { return slices.Contains(intensities, i) }

// Valid reports whether e is one of the declared evidence tiers, compared exactly.
func (e EvidenceTier) Valid() bool { return slices.Contains(evidenceTiers, e) }

// NormalizeTag trims surrounding whitespace and case-folds s so that tag
// comparisons are insensitive to case, including non-ASCII input.
func NormalizeTag(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return cases.Fold().String(s)
}
