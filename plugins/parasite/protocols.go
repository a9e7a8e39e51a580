package parasite

import "protocolkb/pkg/protocolapi"

// Protocols returns a fresh copy of the dataset in catalog order.
func Protocols() []protocolapi.Protocol {
	return []protocolapi.Protocol{
		traditionalTriple(),
		ayurvedicVidanga(),
		gentlePumpkinPapaya(),
		modernBerberine(),
		intensiveArtemisinin(),
		combinationComprehensive(),
		liverFluke(),
		ayurvedicNeemTurmeric(),
		mimosaPudicaBinder(),
	}
}

func traditionalTriple() protocolapi.Protocol {
	return protocolapi.Protocol{
		ID:              "traditional-triple",
		Name:            "Traditional Triple Herb Protocol",
		Description:     "Classic combination of black walnut hull, wormwood and cloves covering adult worms, larvae and eggs.",
		Category:        protocolapi.CategoryTraditional,
		TargetParasites: []string{"roundworms", "tapeworms", "pinworms", "protozoa"},
		PrimaryHerbs:    []protocolapi.HerbDetail{blackWalnutHull(), wormwood(), cloves()},
		Duration:        protocolapi.Duration{Minimum: 14, Recommended: 30, Maximum: 60},
		Intensity:       protocolapi.IntensityModerate,
		AilmentTargets:  []string{"digestive_issues", "fatigue", "bloating", "skin_problems", "sugar_cravings"},
		Contraindications: []string{
			"pregnancy", "breastfeeding", "children", "seizure_disorders",
		},
		Evidence: protocolapi.EvidenceTraditional,
		Protocol: []protocolapi.Phase{
			{
				Phase:               1,
				Name:                "Preparation",
				Duration:            5,
				Herbs:               []string{"Black Walnut Hull"},
				DietaryRestrictions: []string{"no refined sugar", "no alcohol"},
				SupportiveMeasures:  []string{"increase water intake", "daily fiber"},
				Objective:           "Prepare digestion and start with a low dose",
			},
			{
				Phase:               2,
				Name:                "Active Cleanse",
				Duration:            20,
				Herbs:               []string{"Black Walnut Hull", "Wormwood", "Cloves"},
				DietaryRestrictions: []string{"no refined sugar", "no processed food", "no dairy"},
				SupportiveMeasures:  []string{"probiotics", "bentonite clay at bedtime"},
				Objective:           "Eliminate adult parasites larvae and eggs",
			},
			{
				Phase:               3,
				Name:                "Recovery",
				Duration:            5,
				Herbs:               []string{"Cloves"},
				DietaryRestrictions: []string{"reintroduce foods slowly"},
				SupportiveMeasures:  []string{"probiotics", "fermented foods"},
				Objective:           "Restore gut flora after the cleanse",
			},
		},
		Effectiveness:        protocolapi.Effectiveness{Protozoa: 65, Helminths: 80, Flukes: 55},
		SideEffects:          []string{"nausea", "headache", "die_off_reactions"},
		RegionalAvailability: []string{"worldwide", "north_america", "europe"},
	}
}

func ayurvedicVidanga() protocolapi.Protocol {
	return protocolapi.Protocol{
		ID:                "ayurvedic-vidanga",
		Name:              "Ayurvedic Vidanga Krimighna Protocol",
		Description:       "Ayurvedic anti-worm (krimighna) regimen built on vidanga with neem and kutaja.",
		Category:          protocolapi.CategoryAyurvedic,
		TargetParasites:   []string{"roundworms", "threadworms", "amoeba"},
		PrimaryHerbs:      []protocolapi.HerbDetail{vidanga(), neem(), kutaja()},
		Duration:          protocolapi.Duration{Minimum: 21, Recommended: 42, Maximum: 90},
		Intensity:         protocolapi.IntensityModerate,
		AilmentTargets:    []string{"digestive_issues", "bloating", "poor_appetite", "skin_problems"},
		Contraindications: []string{"pregnancy", "children", "low_body_weight"},
		Evidence:          protocolapi.EvidenceTraditional,
		Protocol: []protocolapi.Phase{
			{
				Phase:               1,
				Name:                "Deepana Pachana",
				Duration:            7,
				Herbs:               []string{"Kutaja"},
				DietaryRestrictions: []string{"no cold food", "no heavy meals"},
				SupportiveMeasures:  []string{"ginger tea", "warm water"},
				Objective:           "Kindle digestive fire and clear undigested residue",
			},
			{
				Phase:               2,
				Name:                "Krimighna",
				Duration:            28,
				Herbs:               []string{"Vidanga", "Neem", "Kutaja"},
				DietaryRestrictions: []string{"no sweets", "no curd", "no fried food"},
				SupportiveMeasures:  []string{"triphala at night"},
				Objective:           "Destroy and expel intestinal worms",
			},
			{
				Phase:               3,
				Name:                "Rasayana",
				Duration:            7,
				Herbs:               []string{"Neem"},
				DietaryRestrictions: []string{"light sattvic diet"},
				SupportiveMeasures:  []string{"buttermilk with cumin"},
				Objective:           "Rejuvenate tissues and rebuild digestion",
			},
		},
		Effectiveness:        protocolapi.Effectiveness{Protozoa: 60, Helminths: 75, Flukes: 40},
		SideEffects:          []string{"mild_diarrhea", "abdominal_discomfort"},
		RegionalAvailability: []string{"india", "asia", "specialty_stores"},
	}
}

func gentlePumpkinPapaya() protocolapi.Protocol {
	return protocolapi.Protocol{
		ID:                "gentle-pumpkin-papaya",
		Name:              "Gentle Pumpkin and Papaya Seed Protocol",
		Description:       "Food-based cleanse using pumpkin seeds papaya seeds and garlic for sensitive users.",
		Category:          protocolapi.CategoryTraditional,
		TargetParasites:   []string{"tapeworms", "roundworms"},
		PrimaryHerbs:      []protocolapi.HerbDetail{pumpkinSeed(), papayaSeed(), garlic()},
		Duration:          protocolapi.Duration{Minimum: 14, Recommended: 21, Maximum: 45},
		Intensity:         protocolapi.IntensityGentle,
		AilmentTargets:    []string{"digestive_issues", "bloating", "fatigue", "teeth_grinding"},
		Contraindications: []string{"seed_allergies", "papaya_allergy"},
		Evidence:          protocolapi.EvidenceAnecdotal,
		Protocol: []protocolapi.Phase{
			{
				Phase:               1,
				Name:                "Seed Introduction",
				Duration:            7,
				Herbs:               []string{"Pumpkin Seed", "Garlic"},
				DietaryRestrictions: []string{"limit sugar"},
				SupportiveMeasures:  []string{"chew seeds thoroughly"},
				Objective:           "Introduce seeds gradually to assess tolerance",
			},
			{
				Phase:               2,
				Name:                "Full Dose",
				Duration:            14,
				Herbs:               []string{"Pumpkin Seed", "Papaya Seed", "Garlic"},
				DietaryRestrictions: []string{"limit sugar", "no alcohol"},
				SupportiveMeasures:  []string{"fiber rich breakfast"},
				Objective:           "Paralyse and expel intestinal worms gently",
			},
		},
		Effectiveness:        protocolapi.Effectiveness{Protozoa: 30, Helminths: 55, Flukes: 15},
		SideEffects:          []string{"mild_bloating"},
		RegionalAvailability: []string{"worldwide"},
	}
}

func modernBerberine() protocolapi.Protocol {
	return protocolapi.Protocol{
		ID:                "modern-berberine",
		Name:              "Modern Berberine Antiprotozoal Protocol",
		Description:       "Standardized extracts of berberine oregano oil and grapefruit seed aimed at protozoal overgrowth.",
		Category:          protocolapi.CategoryModern,
		TargetParasites:   []string{"giardia", "blastocystis", "protozoa"},
		PrimaryHerbs:      []protocolapi.HerbDetail{berberine(), oreganoOil(), grapefruitSeedExtract()},
		Duration:          protocolapi.Duration{Minimum: 14, Recommended: 30, Maximum: 60},
		Intensity:         protocolapi.IntensityModerate,
		AilmentTargets:    []string{"digestive_issues", "diarrhea", "fatigue", "brain_fog"},
		Contraindications: []string{"pregnancy", "breastfeeding", "diabetes_medication"},
		Evidence:          protocolapi.EvidenceClinicalStudies,
		Protocol: []protocolapi.Phase{
			{
				Phase:               1,
				Name:                "Loading",
				Duration:            10,
				Herbs:               []string{"Berberine", "Oregano Oil"},
				DietaryRestrictions: []string{"low sugar", "no alcohol"},
				SupportiveMeasures:  []string{"separate from medications by two hours"},
				Objective:           "Reduce protozoal load in the small intestine",
			},
			{
				Phase:               2,
				Name:                "Maintenance",
				Duration:            20,
				Herbs:               []string{"Berberine", "Oregano Oil", "Grapefruit Seed Extract"},
				DietaryRestrictions: []string{"low sugar"},
				SupportiveMeasures:  []string{"saccharomyces boulardii"},
				Objective:           "Clear residual protozoa and prevent regrowth",
			},
		},
		Effectiveness:        protocolapi.Effectiveness{Protozoa: 85, Helminths: 35, Flukes: 20},
		SideEffects:          []string{"constipation", "low_blood_sugar"},
		RegionalAvailability: []string{"north_america", "europe", "online"},
	}
}

func intensiveArtemisinin() protocolapi.Protocol {
	return protocolapi.Protocol{
		ID:                "intensive-artemisinin",
		Name:              "Intensive Artemisinin Pulse Protocol",
		Description:       "Pulsed high-dose artemisinin with wormwood for stubborn systemic infections.",
		Category:          protocolapi.CategoryModern,
		TargetParasites:   []string{"protozoa", "flukes", "babesia"},
		PrimaryHerbs:      []protocolapi.HerbDetail{artemisinin(), wormwood()},
		Duration:          protocolapi.Duration{Minimum: 21, Recommended: 35, Maximum: 60},
		Intensity:         protocolapi.IntensityIntensive,
		AilmentTargets:    []string{"fatigue", "brain_fog", "joint_pain", "night_sweats"},
		Contraindications: []string{"pregnancy", "breastfeeding", "children", "liver_disease"},
		Evidence:          protocolapi.EvidenceClinicalStudies,
		Protocol: []protocolapi.Phase{
			{
				Phase:               1,
				Name:                "Ramp Up",
				Duration:            7,
				Herbs:               []string{"Wormwood"},
				DietaryRestrictions: []string{"no iron supplements", "no alcohol"},
				SupportiveMeasures:  []string{"liver function baseline"},
				Objective:           "Establish tolerance before pulsed dosing",
			},
			{
				Phase:               2,
				Name:                "Pulse Dosing",
				Duration:            21,
				Herbs:               []string{"Artemisinin", "Wormwood"},
				DietaryRestrictions: []string{"no iron supplements", "no alcohol", "low fat meals"},
				SupportiveMeasures:  []string{"three days on four days off", "milk thistle"},
				Objective:           "Generate oxidative stress inside parasites",
			},
			{
				Phase:               3,
				Name:                "Taper",
				Duration:            7,
				Herbs:               []string{"Wormwood"},
				DietaryRestrictions: []string{"no alcohol"},
				SupportiveMeasures:  []string{"liver function follow up"},
				Objective:           "Taper dosing and monitor liver markers",
			},
		},
		Effectiveness:        protocolapi.Effectiveness{Protozoa: 90, Helminths: 50, Flukes: 70},
		SideEffects:          []string{"nausea", "dizziness", "elevated_liver_enzymes"},
		RegionalAvailability: []string{"north_america", "europe", "specialty_stores"},
	}
}

func combinationComprehensive() protocolapi.Protocol {
	return protocolapi.Protocol{
		ID:                "combination-comprehensive",
		Name:              "Comprehensive Combination Protocol",
		Description:       "Broad spectrum stack combining traditional herbs with modern extracts across a long course.",
		Category:          protocolapi.CategoryCombination,
		TargetParasites:   []string{"roundworms", "tapeworms", "flukes", "protozoa"},
		PrimaryHerbs:      []protocolapi.HerbDetail{blackWalnutHull(), wormwood(), cloves(), berberine(), oreganoOil()},
		Duration:          protocolapi.Duration{Minimum: 30, Recommended: 60, Maximum: 90},
		Intensity:         protocolapi.IntensityIntensive,
		AilmentTargets:    []string{"digestive_issues", "fatigue", "skin_problems", "brain_fog", "joint_pain", "sugar_cravings"},
		Contraindications: []string{"pregnancy", "breastfeeding", "children", "autoimmune_conditions"},
		Evidence:          protocolapi.EvidenceAnecdotal,
		Protocol: []protocolapi.Phase{
			{
				Phase:               1,
				Name:                "Drainage",
				Duration:            10,
				Herbs:               []string{"Cloves"},
				DietaryRestrictions: []string{"no refined sugar", "no alcohol"},
				SupportiveMeasures:  []string{"daily bowel movement", "dry brushing"},
				Objective:           "Open elimination pathways before killing",
			},
			{
				Phase:               2,
				Name:                "Kill Phase",
				Duration:            40,
				Herbs:               []string{"Black Walnut Hull", "Wormwood", "Cloves", "Berberine", "Oregano Oil"},
				DietaryRestrictions: []string{"no refined sugar", "no grains", "no dairy"},
				SupportiveMeasures:  []string{"binders", "sauna", "probiotics"},
				Objective:           "Target every life stage across parasite classes",
			},
			{
				Phase:               3,
				Name:                "Rebuild",
				Duration:            10,
				Herbs:               []string{"Berberine"},
				DietaryRestrictions: []string{"whole food diet"},
				SupportiveMeasures:  []string{"bone broth", "probiotics"},
				Objective:           "Repair intestinal lining and restore flora",
			},
		},
		Effectiveness:        protocolapi.Effectiveness{Protozoa: 80, Helminths: 85, Flukes: 65},
		SideEffects:          []string{"die_off_reactions", "fatigue", "nausea"},
		RegionalAvailability: []string{"worldwide"},
	}
}

func liverFluke() protocolapi.Protocol {
	return protocolapi.Protocol{
		ID:                "liver-fluke",
		Name:              "Liver Fluke Support Protocol",
		Description:       "Liver and bile focused regimen pairing wormwood with milk thistle and chanca piedra.",
		Category:          protocolapi.CategoryTraditional,
		TargetParasites:   []string{"liver_flukes", "flukes"},
		PrimaryHerbs:      []protocolapi.HerbDetail{milkThistle(), wormwood(), chancaPiedra()},
		Duration:          protocolapi.Duration{Minimum: 21, Recommended: 30, Maximum: 45},
		Intensity:         protocolapi.IntensityModerate,
		AilmentTargets:    []string{"liver_congestion", "digestive_issues", "fatigue", "right_side_pain"},
		Contraindications: []string{"pregnancy", "gallstones", "kidney_disease"},
		Evidence:          protocolapi.EvidenceTraditional,
		Protocol: []protocolapi.Phase{
			{
				Phase:               1,
				Name:                "Liver Support",
				Duration:            10,
				Herbs:               []string{"Milk Thistle", "Chanca Piedra"},
				DietaryRestrictions: []string{"no alcohol", "low fat"},
				SupportiveMeasures:  []string{"castor oil packs"},
				Objective:           "Support bile flow and protect liver cells",
			},
			{
				Phase:               2,
				Name:                "Fluke Clearance",
				Duration:            20,
				Herbs:               []string{"Milk Thistle", "Wormwood", "Chanca Piedra"},
				DietaryRestrictions: []string{"no alcohol", "no raw fish"},
				SupportiveMeasures:  []string{"beet juice", "castor oil packs"},
				Objective:           "Expel flukes from the biliary tract",
			},
		},
		Effectiveness:        protocolapi.Effectiveness{Protozoa: 25, Helminths: 45, Flukes: 75},
		SideEffects:          []string{"loose_stools", "mild_cramping"},
		RegionalAvailability: []string{"south_america", "north_america", "specialty_stores"},
	}
}

func ayurvedicNeemTurmeric() protocolapi.Protocol {
	return protocolapi.Protocol{
		ID:                "ayurvedic-neem-turmeric",
		Name:              "Ayurvedic Neem and Turmeric Protocol",
		Description:       "Gentle cooling regimen of neem and turmeric for skin and gut manifestations.",
		Category:          protocolapi.CategoryAyurvedic,
		TargetParasites:   []string{"roundworms", "protozoa"},
		PrimaryHerbs:      []protocolapi.HerbDetail{neem(), turmeric()},
		Duration:          protocolapi.Duration{Minimum: 14, Recommended: 28, Maximum: 56},
		Intensity:         protocolapi.IntensityGentle,
		AilmentTargets:    []string{"skin_problems", "digestive_issues", "itching", "inflammation"},
		Contraindications: []string{"pregnancy", "trying_to_conceive", "bleeding_disorders"},
		Evidence:          protocolapi.EvidenceTraditional,
		Protocol: []protocolapi.Phase{
			{
				Phase:               1,
				Name:                "Cooling",
				Duration:            7,
				Herbs:               []string{"Turmeric"},
				DietaryRestrictions: []string{"no spicy food"},
				SupportiveMeasures:  []string{"coconut water"},
				Objective:           "Calm inflammation in skin and gut",
			},
			{
				Phase:               2,
				Name:                "Purification",
				Duration:            21,
				Herbs:               []string{"Neem", "Turmeric"},
				DietaryRestrictions: []string{"no spicy food", "no sweets"},
				SupportiveMeasures:  []string{"neem oil on affected skin"},
				Objective:           "Reduce parasite load and clear skin symptoms",
			},
		},
		Effectiveness:        protocolapi.Effectiveness{Protozoa: 45, Helminths: 40, Flukes: 20},
		SideEffects:          []string{"mild_stomach_upset"},
		RegionalAvailability: []string{"india", "asia", "worldwide"},
	}
}

func mimosaPudicaBinder() protocolapi.Protocol {
	return protocolapi.Protocol{
		ID:                "mimosa-pudica-binder",
		Name:              "Mimosa Pudica Binder Protocol",
		Description:       "Binder based protocol pairing mimosa pudica seed with garlic to sweep the intestinal tract.",
		Category:          protocolapi.CategoryCombination,
		TargetParasites:   []string{"roundworms", "pinworms"},
		PrimaryHerbs:      []protocolapi.HerbDetail{mimosaPudica(), garlic()},
		Duration:          protocolapi.Duration{Minimum: 21, Recommended: 30, Maximum: 60},
		Intensity:         protocolapi.IntensityGentle,
		AilmentTargets:    []string{"bloating", "constipation", "digestive_issues", "fatigue"},
		Contraindications: []string{"pregnancy", "bowel_obstruction"},
		Evidence:          protocolapi.EvidenceAnecdotal,
		Protocol: []protocolapi.Phase{
			{
				Phase:               1,
				Name:                "Binding",
				Duration:            10,
				Herbs:               []string{"Mimosa Pudica Seed"},
				DietaryRestrictions: []string{"no refined sugar"},
				SupportiveMeasures:  []string{"two litres of water daily"},
				Objective:           "Establish regular bowel movements with the binder",
			},
			{
				Phase:               2,
				Name:                "Sweep",
				Duration:            20,
				Herbs:               []string{"Mimosa Pudica Seed", "Garlic"},
				DietaryRestrictions: []string{"no refined sugar", "no alcohol"},
				SupportiveMeasures:  []string{"magnesium citrate as needed"},
				Objective:           "Bind and sweep parasites and biofilm from the gut",
			},
		},
		Effectiveness:        protocolapi.Effectiveness{Protozoa: 35, Helminths: 60, Flukes: 25},
		SideEffects:          []string{"constipation", "bloating"},
		RegionalAvailability: []string{"online", "north_america"},
	}
}
