package core

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"protocolkb/pkg/protocolapi"
)

const (
	maxCourseDays      = 365
	minDescriptiveText = 11
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// dosageUnits are the unit tokens a herb dosage must mention. Plural forms are
// matched by trimming a trailing "s".
var dosageUnits = map[string]struct{}{
	"mg": {}, "g": {}, "mcg": {}, "ml": {}, "drop": {}, "teaspoon": {},
	"tablespoon": {}, "cup": {}, "capsule": {}, "tablet": {}, "clove": {},
}

// ValidationError describes one invariant violation in a protocol record.
type ValidationError struct {
	ProtocolID string `json:"protocol_id"`
	Field      string `json:"field"`
	Message    string `json:"message"`
}

func (e ValidationError) Error() string {
	id := e.ProtocolID
	if id == "" {
		id = "<unnamed>"
	}
	return fmt.Sprintf("protocol %s: %s: %s", id, e.Field, e.Message)
}

// CatalogError aggregates every violation found while building a catalog.
type CatalogError struct {
	Violations []ValidationError
}

func (e *CatalogError) Error() string {
	if len(e.Violations) == 1 {
		return "invalid protocol catalog: " + e.Violations[0].Error()
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Error()
	}
	return fmt.Sprintf("invalid protocol catalog (%d violations): %s", len(e.Violations), strings.Join(parts, "; "))
}

type violations struct {
	id   string
	list []ValidationError
}

func (v *violations) add(field, format string, args ...any) {
	v.list = append(v.list, ValidationError{ProtocolID: v.id, Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v *violations) nonEmpty(field string, values []string) {
	if len(values) == 0 {
		v.add(field, "must not be empty")
		return
	}
	for i, value := range values {
		if strings.TrimSpace(value) == "" {
			v.add(fmt.Sprintf("%s[%d]", field, i), "must not be blank")
		}
	}
}

// validateProtocol checks a single record against the catalog invariants.
// Cross-record checks (id uniqueness) happen in NewCatalog.
func validateProtocol(p protocolapi.Protocol) []ValidationError {
	v := &violations{id: p.ID}

	if !slugPattern.MatchString(p.ID) {
		v.add("id", "%q is not a lowercase slug", p.ID)
	}
	if strings.TrimSpace(p.Name) == "" {
		v.add("name", "required")
	}
	if strings.TrimSpace(p.Description) == "" {
		v.add("description", "required")
	}
	if !p.Category.Valid() {
		v.add("category", "unknown category %q", p.Category)
	}
	if !p.Intensity.Valid() {
		v.add("intensity", "unknown intensity %q", p.Intensity)
	}
	if !p.Evidence.Valid() {
		v.add("evidence", "unknown evidence tier %q", p.Evidence)
	}

	v.nonEmpty("target_parasites", p.TargetParasites)
	v.nonEmpty("ailment_targets", p.AilmentTargets)
	v.nonEmpty("contraindications", p.Contraindications)
	v.nonEmpty("side_effects", p.SideEffects)
	v.nonEmpty("regional_availability", p.RegionalAvailability)

	validateDuration(v, p.Duration)
	validateEffectiveness(v, p.Effectiveness)

	if len(p.PrimaryHerbs) == 0 {
		v.add("primary_herbs", "must not be empty")
	}
	for i, herb := range p.PrimaryHerbs {
		validateHerb(v, fmt.Sprintf("primary_herbs[%d]", i), herb)
	}

	validatePhases(v, p)

	if p.Intensity == protocolapi.IntensityIntensive && !containsTag(p.Contraindications, protocolapi.ContraindicationPregnancy) {
		v.add("contraindications", "intensive protocols must list %q", protocolapi.ContraindicationPregnancy)
	}
	return v.list
}

func validateDuration(v *violations, d protocolapi.Duration) {
	if d.Minimum <= 0 || d.Recommended <= 0 || d.Maximum <= 0 {
		v.add("duration", "all bounds must be positive, got %d/%d/%d", d.Minimum, d.Recommended, d.Maximum)
		return
	}
	if d.Minimum > d.Recommended || d.Recommended > d.Maximum {
		v.add("duration", "expected minimum <= recommended <= maximum, got %d/%d/%d", d.Minimum, d.Recommended, d.Maximum)
	}
	if d.Maximum > maxCourseDays {
		v.add("duration.maximum", "%d exceeds %d days", d.Maximum, maxCourseDays)
	}
}

func validateEffectiveness(v *violations, e protocolapi.Effectiveness) {
	scores := []struct {
		field string
		value float64
	}{
		{"effectiveness.protozoa", e.Protozoa},
		{"effectiveness.helminths", e.Helminths},
		{"effectiveness.flukes", e.Flukes},
	}
	for _, score := range scores {
		if score.value < 0 || score.value > 100 {
			v.add(score.field, "%g outside [0,100]", score.value)
		}
	}
}

func validateHerb(v *violations, field string, herb protocolapi.HerbDetail) {
	if strings.TrimSpace(herb.Name) == "" {
		v.add(field+".name", "required")
	}
	if strings.TrimSpace(herb.LatinName) == "" {
		v.add(field+".latin_name", "required")
	}
	if !hasDosageUnit(herb.Dosage) {
		v.add(field+".dosage", "%q has no recognizable unit", herb.Dosage)
	}
	if strings.TrimSpace(herb.Timing) == "" {
		v.add(field+".timing", "required")
	}
	if len(herb.ActiveCompounds) == 0 {
		v.add(field+".active_compounds", "must not be empty")
	}
	if len(strings.TrimSpace(herb.Mechanism)) < minDescriptiveText {
		v.add(field+".mechanism", "must be longer than %d characters", minDescriptiveText-1)
	}
	if len(herb.Preparations) == 0 {
		v.add(field+".preparations", "must not be empty")
	}
}

func validatePhases(v *violations, p protocolapi.Protocol) {
	if len(p.Protocol) == 0 {
		v.add("protocol", "at least one phase required")
		return
	}
	for i, phase := range p.Protocol {
		field := fmt.Sprintf("protocol[%d]", i)
		if phase.Phase != i+1 {
			v.add(field+".phase", "expected sequence number %d, got %d", i+1, phase.Phase)
		}
		if strings.TrimSpace(phase.Name) == "" {
			v.add(field+".name", "required")
		}
		if phase.Duration <= 0 {
			v.add(field+".duration", "must be positive, got %d", phase.Duration)
		}
		if len(strings.TrimSpace(phase.Objective)) < minDescriptiveText {
			v.add(field+".objective", "must be longer than %d characters", minDescriptiveText-1)
		}
	}
	total := p.PhaseDays()
	if p.Duration.Minimum > 0 && (total < p.Duration.Minimum || total > p.Duration.Maximum) {
		v.add("protocol", "phases span %d days, outside duration bounds [%d,%d]", total, p.Duration.Minimum, p.Duration.Maximum)
	}
}

func hasDosageUnit(dosage string) bool {
	tokens := strings.FieldsFunc(strings.ToLower(dosage), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, token := range tokens {
		if _, ok := dosageUnits[token]; ok {
			return true
		}
		if _, ok := dosageUnits[strings.TrimSuffix(token, "s")]; ok {
			return true
		}
	}
	return false
}

func containsTag(values []string, tag string) bool {
	norm := protocolapi.NormalizeTag(tag)
	return slices.ContainsFunc(values, func(v string) bool {
		return protocolapi.NormalizeTag(v) == norm
	})
}
