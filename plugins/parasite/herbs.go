package parasite

import "protocolkb/pkg/protocolapi"

func blackWalnutHull() protocolapi.HerbDetail {
	return protocolapi.HerbDetail{
		Name:            "Black Walnut Hull",
		LatinName:       "Juglans nigra",
		Dosage:          "500 mg capsule or 20 drops tincture",
		Timing:          "Three times daily before meals",
		ActiveCompounds: []string{"juglone", "tannins", "iodine"},
		Mechanism:       "Juglone disrupts parasite cellular respiration",
		Preparations:    []string{"tincture", "capsule"},
	}
}

func wormwood() protocolapi.HerbDetail {
	return protocolapi.HerbDetail{
		Name:            "Wormwood",
		LatinName:       "Artemisia absinthium",
		Dosage:          "200-300 mg capsule",
		Timing:          "Twice daily with meals",
		ActiveCompounds: []string{"thujone", "absinthin", "artemisinin"},
		Mechanism:       "Sesquiterpene lactones damage parasite membranes",
		Preparations:    []string{"capsule", "tea", "tincture"},
	}
}

func cloves() protocolapi.HerbDetail {
	return protocolapi.HerbDetail{
		Name:            "Cloves",
		LatinName:       "Syzygium aromaticum",
		Dosage:          "500 mg ground clove capsule",
		Timing:          "Three times daily with meals",
		ActiveCompounds: []string{"eugenol", "caryophyllene"},
		Mechanism:       "Eugenol targets parasite eggs and larval stages",
		Preparations:    []string{"ground powder", "capsule"},
	}
}

func vidanga() protocolapi.HerbDetail {
	return protocolapi.HerbDetail{
		Name:            "Vidanga",
		LatinName:       "Embelia ribes",
		Dosage:          "3-6 g powder",
		Timing:          "Twice daily with warm water",
		ActiveCompounds: []string{"embelin", "quercitol"},
		Mechanism:       "Embelin paralyses intestinal worms for expulsion",
		Preparations:    []string{"churna powder", "decoction"},
	}
}

func neem() protocolapi.HerbDetail {
	return protocolapi.HerbDetail{
		Name:            "Neem",
		LatinName:       "Azadirachta indica",
		Dosage:          "500 mg leaf capsule",
		Timing:          "Twice daily after meals",
		ActiveCompounds: []string{"azadirachtin", "nimbin", "nimbidin"},
		Mechanism:       "Limonoids interfere with parasite growth and feeding",
		Preparations:    []string{"capsule", "leaf tea"},
	}
}

func kutaja() protocolapi.HerbDetail {
	return protocolapi.HerbDetail{
		Name:            "Kutaja",
		LatinName:       "Holarrhena antidysenterica",
		Dosage:          "1-2 g bark powder",
		Timing:          "Twice daily before meals",
		ActiveCompounds: []string{"conessine", "kurchine"},
		Mechanism:       "Steroidal alkaloids act against amoebic infection",
		Preparations:    []string{"powder", "decoction"},
	}
}

func pumpkinSeed() protocolapi.HerbDetail {
	return protocolapi.HerbDetail{
		Name:            "Pumpkin Seed",
		LatinName:       "Cucurbita pepo",
		Dosage:          "1/4 cup raw seeds",
		Timing:          "Morning on an empty stomach",
		ActiveCompounds: []string{"cucurbitine"},
		Mechanism:       "Cucurbitine paralyses tapeworms and roundworms",
		Preparations:    []string{"raw seeds", "ground meal"},
	}
}

func papayaSeed() protocolapi.HerbDetail {
	return protocolapi.HerbDetail{
		Name:            "Papaya Seed",
		LatinName:       "Carica papaya",
		Dosage:          "1 tablespoon ground seeds",
		Timing:          "Once daily with honey",
		ActiveCompounds: []string{"benzyl isothiocyanate", "papain"},
		Mechanism:       "Benzyl isothiocyanate is toxic to intestinal nematodes",
		Preparations:    []string{"ground seeds", "smoothie"},
	}
}

func garlic() protocolapi.HerbDetail {
	return protocolapi.HerbDetail{
		Name:            "Garlic",
		LatinName:       "Allium sativum",
		Dosage:          "2 cloves raw",
		Timing:          "Daily with food",
		ActiveCompounds: []string{"allicin", "ajoene"},
		Mechanism:       "Allicin breaks down protozoal cell walls",
		Preparations:    []string{"raw", "aged extract"},
	}
}

func berberine() protocolapi.HerbDetail {
	return protocolapi.HerbDetail{
		Name:            "Berberine",
		LatinName:       "Berberis vulgaris",
		Dosage:          "500 mg capsule",
		Timing:          "Three times daily with meals",
		ActiveCompounds: []string{"berberine"},
		Mechanism:       "Inhibits protozoal adhesion and replication",
		Preparations:    []string{"capsule"},
	}
}

func oreganoOil() protocolapi.HerbDetail {
	return protocolapi.HerbDetail{
		Name:            "Oregano Oil",
		LatinName:       "Origanum vulgare",
		Dosage:          "200 mg enteric capsule",
		Timing:          "Twice daily with meals",
		ActiveCompounds: []string{"carvacrol", "thymol"},
		Mechanism:       "Phenolic compounds disrupt protozoal membranes",
		Preparations:    []string{"enteric capsule", "diluted oil"},
	}
}

func grapefruitSeedExtract() protocolapi.HerbDetail {
	return protocolapi.HerbDetail{
		Name:            "Grapefruit Seed Extract",
		LatinName:       "Citrus paradisi",
		Dosage:          "100 mg tablet",
		Timing:          "Twice daily between meals",
		ActiveCompounds: []string{"naringenin", "limonoids"},
		Mechanism:       "Flavonoids inhibit protozoa and yeast overgrowth",
		Preparations:    []string{"tablet", "liquid drops"},
	}
}

func artemisinin() protocolapi.HerbDetail {
	return protocolapi.HerbDetail{
		Name:            "Artemisinin",
		LatinName:       "Artemisia annua",
		Dosage:          "100-200 mg capsule",
		Timing:          "Twice daily away from iron supplements",
		ActiveCompounds: []string{"artemisinin", "artesunate"},
		Mechanism:       "Endoperoxide bridge generates free radicals inside parasites",
		Preparations:    []string{"capsule"},
	}
}

func milkThistle() protocolapi.HerbDetail {
	return protocolapi.HerbDetail{
		Name:            "Milk Thistle",
		LatinName:       "Silybum marianum",
		Dosage:          "250 mg standardized capsule",
		Timing:          "Twice daily with meals",
		ActiveCompounds: []string{"silymarin", "silibinin"},
		Mechanism:       "Silymarin protects and regenerates liver tissue",
		Preparations:    []string{"capsule", "tea"},
	}
}

func chancaPiedra() protocolapi.HerbDetail {
	return protocolapi.HerbDetail{
		Name:            "Chanca Piedra",
		LatinName:       "Phyllanthus niruri",
		Dosage:          "500 mg capsule or 1 cup tea",
		Timing:          "Twice daily between meals",
		ActiveCompounds: []string{"phyllanthin", "hypophyllanthin"},
		Mechanism:       "Supports bile flow and clearance of biliary flukes",
		Preparations:    []string{"capsule", "tea"},
	}
}

func turmeric() protocolapi.HerbDetail {
	return protocolapi.HerbDetail{
		Name:            "Turmeric",
		LatinName:       "Curcuma longa",
		Dosage:          "1 teaspoon powder",
		Timing:          "Daily with warm milk",
		ActiveCompounds: []string{"curcumin"},
		Mechanism:       "Curcumin reduces gut inflammation and parasite load",
		Preparations:    []string{"powder", "golden milk"},
	}
}

func mimosaPudica() protocolapi.HerbDetail {
	return protocolapi.HerbDetail{
		Name:            "Mimosa Pudica Seed",
		LatinName:       "Mimosa pudica",
		Dosage:          "2 capsules",
		Timing:          "Twice daily on an empty stomach",
		ActiveCompounds: []string{"mucilage", "mimosine"},
		Mechanism:       "Mucilaginous gel binds and sweeps parasites from the gut",
		Preparations:    []string{"capsule"},
	}
}
