// Package protocolapi defines the value types shared by the protocol
// knowledge base, its data contributors and its storage backends. Values in
// this package are plain data; the engine that validates and queries them
// lives in internal/core.
package protocolapi

// Duration bounds a protocol course in days.
type Duration struct {
	Minimum     int `json:"minimum"`
	Recommended int `json:"recommended"`
	Maximum     int `json:"maximum"`
}

// Effectiveness holds estimated efficacy scores (0-100) per organism class.
type Effectiveness struct {
	Protozoa  float64 `json:"protozoa"`
	Helminths float64 `json:"helminths"`
	Flukes    float64 `json:"flukes"`
}

// HerbDetail describes one herb used by a protocol.
type HerbDetail struct {
	Name            string   `json:"name"`
	LatinName       string   `json:"latin_name"`
	Dosage          string   `json:"dosage"`
	Timing          string   `json:"timing"`
	ActiveCompounds []string `json:"active_compounds"`
	Mechanism       string   `json:"mechanism"`
	Preparations    []string `json:"preparations"`
}

// Phase is one sequential stage of a protocol.
type Phase struct {
	Phase               int      `json:"phase"`
	Name                string   `json:"name"`
	Duration            int      `json:"duration"`
	Herbs               []string `json:"herbs"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	SupportiveMeasures  []string `json:"supportive_measures"`
	Objective           string   `json:"objective"`
}

// Protocol is the catalog's unit record: a herbal or dietary cleanse regimen.
type Protocol struct {
	ID                   string        `json:"id"`
	Name                 string        `json:"name"`
	Description          string        `json:"description"`
	Category             Category      `json:"category"`
	TargetParasites      []string      `json:"target_parasites"`
	PrimaryHerbs         []HerbDetail  `json:"primary_herbs"`
	Duration             Duration      `json:"duration"`
	Intensity            Intensity     `json:"intensity"`
	AilmentTargets       []string      `json:"ailment_targets"`
	Contraindications    []string      `json:"contraindications"`
	Evidence             EvidenceTier  `json:"evidence"`
	Protocol             []Phase       `json:"protocol"`
	Effectiveness        Effectiveness `json:"effectiveness"`
	SideEffects          []string      `json:"side_effects"`
	RegionalAvailability []string      `json:"regional_availability"`
}

// PhaseDays returns the sum of all phase durations.
func (p Protocol) PhaseDays() int {
	total := 0
	for _, phase := range p.Protocol {
		total += phase.Duration
	}
	return total
}

// HerbNames lists primary herb names in declaration order.
func (p Protocol) HerbNames() []string {
	names := make([]string, len(p.PrimaryHerbs))
	for i, herb := range p.PrimaryHerbs {
		names[i] = herb.Name
	}
	return names
}

// Clone returns a deep copy so callers never alias catalog storage.
func (p Protocol) Clone() Protocol {
	cloned := p
	cloned.TargetParasites = cloneStrings(p.TargetParasites)
	cloned.AilmentTargets = cloneStrings(p.AilmentTargets)
	cloned.Contraindications = cloneStrings(p.Contraindications)
	cloned.SideEffects = cloneStrings(p.SideEffects)
	cloned.RegionalAvailability = cloneStrings(p.RegionalAvailability)
	if p.PrimaryHerbs != nil {
		cloned.PrimaryHerbs = make([]HerbDetail, len(p.PrimaryHerbs))
		for i, herb := range p.PrimaryHerbs {
			cloned.PrimaryHerbs[i] = herb.Clone()
		}
	}
	if p.Protocol != nil {
		cloned.Protocol = make([]Phase, len(p.Protocol))
		for i, phase := range p.Protocol {
			cloned.Protocol[i] = phase.Clone()
		}
	}
	return cloned
}

// Clone returns a deep copy of the herb.
func (h HerbDetail) Clone() HerbDetail {
	cloned := h
	cloned.ActiveCompounds = cloneStrings(h.ActiveCompounds)
	cloned.Preparations = cloneStrings(h.Preparations)
	return cloned
}

// Clone returns a deep copy of the phase.
func (p Phase) Clone() Phase {
	cloned := p
	cloned.Herbs = cloneStrings(p.Herbs)
	cloned.DietaryRestrictions = cloneStrings(p.DietaryRestrictions)
	cloned.SupportiveMeasures = cloneStrings(p.SupportiveMeasures)
	return cloned
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
