package parasite

import (
	"strings"
	"testing"

	"protocolkb/pkg/protocolapi"
)

type recordingRegistry struct {
	protocols []protocolapi.Protocol
}

func (r *recordingRegistry) RegisterProtocol(p protocolapi.Protocol) {
	r.protocols = append(r.protocols, p)
}

func TestPluginMetadata(t *testing.T) {
	p := New()
	if p.Name() != "parasite" {
		t.Fatalf("unexpected name %s", p.Name())
	}
	if p.Version() == "" {
		t.Fatalf("expected version")
	}
}

func TestRegisterContributesEveryProtocol(t *testing.T) {
	reg := &recordingRegistry{}
	if err := New().Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(reg.protocols) != len(Protocols()) {
		t.Fatalf("expected %d protocols, got %d", len(Protocols()), len(reg.protocols))
	}
	if reg.protocols[0].ID != "traditional-triple" {
		t.Fatalf("expected traditional-triple first, got %s", reg.protocols[0].ID)
	}
}

func TestRegisterNilRegistry(t *testing.T) {
	if err := New().Register(nil); err == nil {
		t.Fatalf("expected error for nil registry")
	}
}

func TestProtocolsReturnsFreshCopies(t *testing.T) {
	first := Protocols()
	first[0].PrimaryHerbs[0].Name = "mutated"
	first[0].AilmentTargets[0] = "mutated"
	second := Protocols()
	if second[0].PrimaryHerbs[0].Name != "Black Walnut Hull" || second[0].AilmentTargets[0] != "digestive_issues" {
		t.Fatalf("dataset leaked mutation between calls")
	}
}

func TestDatasetShape(t *testing.T) {
	seen := map[string]bool{}
	intensive := 0
	for _, p := range Protocols() {
		if seen[p.ID] {
			t.Fatalf("duplicate id %s", p.ID)
		}
		seen[p.ID] = true
		if p.PhaseDays() < p.Duration.Minimum || p.PhaseDays() > p.Duration.Maximum {
			t.Errorf("%s: phases span %d days outside %d-%d", p.ID, p.PhaseDays(), p.Duration.Minimum, p.Duration.Maximum)
		}
		if strings.Contains(p.Name, ",") {
			t.Errorf("%s: name must stay comma free for CSV exports", p.ID)
		}
		if p.Intensity == protocolapi.IntensityIntensive {
			intensive++
		}
	}
	if intensive == 0 {
		t.Fatalf("expected at least one intensive protocol")
	}
}
