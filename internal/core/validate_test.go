package core

import (
	"errors"
	"strings"
	"testing"

	"protocolkb/pkg/protocolapi"
	"protocolkb/plugins/parasite"
)

func sampleProtocol() protocolapi.Protocol {
	return parasite.Protocols()[0]
}

func fieldsOf(errs []ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Field
	}
	return out
}

func hasField(errs []ValidationError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

func TestValidateProtocolAcceptsDataset(t *testing.T) {
	for _, p := range parasite.Protocols() {
		if errs := validateProtocol(p); len(errs) != 0 {
			t.Fatalf("%s: unexpected violations %v", p.ID, errs)
		}
	}
}

func TestValidateProtocolViolations(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*protocolapi.Protocol)
		field  string
	}{
		{"slug", func(p *protocolapi.Protocol) { p.ID = "Not A Slug" }, "id"},
		{"name", func(p *protocolapi.Protocol) { p.Name = "  " }, "name"},
		{"description", func(p *protocolapi.Protocol) { p.Description = "" }, "description"},
		{"category", func(p *protocolapi.Protocol) { p.Category = "herbal" }, "category"},
		{"intensity", func(p *protocolapi.Protocol) { p.Intensity = "extreme" }, "intensity"},
		{"evidence", func(p *protocolapi.Protocol) { p.Evidence = "Traditional" }, "evidence"},
		{"ordering", func(p *protocolapi.Protocol) { p.Duration.Recommended = 5 }, "duration"},
		{"non positive", func(p *protocolapi.Protocol) { p.Duration.Minimum = 0 }, "duration"},
		{"course cap", func(p *protocolapi.Protocol) { p.Duration.Maximum = 400 }, "duration.maximum"},
		{"effectiveness", func(p *protocolapi.Protocol) { p.Effectiveness.Protozoa = 120 }, "effectiveness.protozoa"},
		{"negative effectiveness", func(p *protocolapi.Protocol) { p.Effectiveness.Flukes = -1 }, "effectiveness.flukes"},
		{"ailments", func(p *protocolapi.Protocol) { p.AilmentTargets = nil }, "ailment_targets"},
		{"blank region", func(p *protocolapi.Protocol) { p.RegionalAvailability[1] = " " }, "regional_availability[1]"},
		{"no herbs", func(p *protocolapi.Protocol) { p.PrimaryHerbs = nil }, "primary_herbs"},
		{"dosage unit", func(p *protocolapi.Protocol) { p.PrimaryHerbs[0].Dosage = "two scoops" }, "primary_herbs[0].dosage"},
		{"mechanism", func(p *protocolapi.Protocol) { p.PrimaryHerbs[1].Mechanism = "kills" }, "primary_herbs[1].mechanism"},
		{"latin name", func(p *protocolapi.Protocol) { p.PrimaryHerbs[2].LatinName = "" }, "primary_herbs[2].latin_name"},
		{"no phases", func(p *protocolapi.Protocol) { p.Protocol = nil }, "protocol"},
		{"phase numbering", func(p *protocolapi.Protocol) { p.Protocol[1].Phase = 5 }, "protocol[1].phase"},
		{"phase duration", func(p *protocolapi.Protocol) { p.Protocol[0].Duration = 0 }, "protocol[0].duration"},
		{"phase objective", func(p *protocolapi.Protocol) { p.Protocol[2].Objective = "rest" }, "protocol[2].objective"},
		{"phase span", func(p *protocolapi.Protocol) {
			for i := range p.Protocol {
				p.Protocol[i].Duration = 1
			}
		}, "protocol"},
		{"intensive pregnancy", func(p *protocolapi.Protocol) {
			p.Intensity = protocolapi.IntensityIntensive
			p.Contraindications = []string{"children"}
		}, "contraindications"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := sampleProtocol()
			tc.mutate(&p)
			errs := validateProtocol(p)
			if !hasField(errs, tc.field) {
				t.Fatalf("expected violation on %s, got %v", tc.field, fieldsOf(errs))
			}
		})
	}
}

func TestIntensivePregnancyMatchIgnoresCase(t *testing.T) {
	p := sampleProtocol()
	p.Intensity = protocolapi.IntensityIntensive
	p.Contraindications = []string{"Pregnancy", "children"}
	if errs := validateProtocol(p); len(errs) != 0 {
		t.Fatalf("unexpected violations %v", errs)
	}
}

func TestHasDosageUnit(t *testing.T) {
	cases := map[string]bool{
		"500 mg capsule": true,
		"500mg":          true,
		"2 cloves raw":   true,
		"1/4 cup":        true,
		"10-20 drops":    true,
		"3 Tablespoons":  true,
		"as needed":      false,
		"":               false,
	}
	for dosage, want := range cases {
		if got := hasDosageUnit(dosage); got != want {
			t.Errorf("hasDosageUnit(%q) = %v, want %v", dosage, got, want)
		}
	}
}

func TestNewCatalogRejectsDuplicateIDs(t *testing.T) {
	p := sampleProtocol()
	_, err := NewCatalog([]protocolapi.Protocol{p, p})
	var catErr *CatalogError
	if !errors.As(err, &catErr) {
		t.Fatalf("expected CatalogError, got %v", err)
	}
	if len(catErr.Violations) != 1 || !strings.Contains(catErr.Violations[0].Message, "duplicate of record 0") {
		t.Fatalf("unexpected violations %+v", catErr.Violations)
	}
}

func TestNewCatalogAggregatesViolations(t *testing.T) {
	bad := sampleProtocol()
	bad.ID = ""
	bad.Effectiveness.Helminths = 101
	other := sampleProtocol()
	other.ID = "other"
	other.Category = ""

	cat, err := NewCatalog([]protocolapi.Protocol{bad, other})
	if cat != nil {
		t.Fatalf("expected no catalog on failure")
	}
	var catErr *CatalogError
	if !errors.As(err, &catErr) {
		t.Fatalf("expected CatalogError, got %v", err)
	}
	if len(catErr.Violations) < 3 {
		t.Fatalf("expected all violations reported, got %v", catErr.Violations)
	}
	msg := err.Error()
	if !strings.Contains(msg, "<unnamed>") || !strings.Contains(msg, "protocol other: category") {
		t.Fatalf("unexpected error text %q", msg)
	}
}

func TestCatalogErrorSingleViolation(t *testing.T) {
	err := &CatalogError{Violations: []ValidationError{{ProtocolID: "x", Field: "name", Message: "required"}}}
	if got := err.Error(); got != "invalid protocol catalog: protocol x: name: required" {
		t.Fatalf("unexpected message %q", got)
	}
}
