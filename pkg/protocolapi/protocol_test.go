package protocolapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleProtocol() Protocol {
	return Protocol{
		ID:              "sample",
		TargetParasites: []string{"pinworms"},
		PrimaryHerbs: []HerbDetail{{
			Name:            "Wormwood",
			ActiveCompounds: []string{"thujone"},
			Preparations:    []string{"capsule"},
		}},
		AilmentTargets:       []string{"fatigue"},
		Contraindications:    []string{"pregnancy"},
		SideEffects:          []string{"nausea"},
		RegionalAvailability: []string{"worldwide"},
		Protocol: []Phase{
			{Phase: 1, Duration: 5, Herbs: []string{"Wormwood"}},
			{Phase: 2, Duration: 9},
		},
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	original := sampleProtocol()
	cloned := original.Clone()

	cloned.AilmentTargets[0] = "changed"
	cloned.PrimaryHerbs[0].ActiveCompounds[0] = "changed"
	cloned.Protocol[0].Herbs[0] = "changed"
	cloned.RegionalAvailability = append(cloned.RegionalAvailability, "europe")

	assert.Equal(t, "fatigue", original.AilmentTargets[0])
	assert.Equal(t, "thujone", original.PrimaryHerbs[0].ActiveCompounds[0])
	assert.Equal(t, "Wormwood", original.Protocol[0].Herbs[0])
	assert.Equal(t, []string{"worldwide"}, original.RegionalAvailability)
}

func TestCloneKeepsNilSlices(t *testing.T) {
	cloned := Protocol{ID: "bare"}.Clone()
	assert.Nil(t, cloned.PrimaryHerbs)
	assert.Nil(t, cloned.Protocol)
	assert.Nil(t, cloned.SideEffects)
}

func TestPhaseDaysAndHerbNames(t *testing.T) {
	p := sampleProtocol()
	assert.Equal(t, 14, p.PhaseDays())
	assert.Equal(t, []string{"Wormwood"}, p.HerbNames())
}

func TestCloneMetadata(t *testing.T) {
	assert.Nil(t, CloneMetadata(nil))
	in := map[string]any{"rows": 2}
	out := CloneMetadata(in)
	out["rows"] = 3
	assert.Equal(t, 2, in["rows"])
}
