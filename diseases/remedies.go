package diseases

import "sort"

// RemedyStep is one step in a treatment schedule.
type RemedyStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Remedy is the full cure guide for one disease.
type Remedy struct {
	DiseaseName       string       `json:"disease_name"`
	Cause             string       `json:"cause"`
	ImmediateActions  []string     `json:"immediate_actions"`
	ChemicalTreatment []RemedyStep `json:"chemical_treatment"`
	OrganicTreatment  []RemedyStep `json:"organic_treatment"`
	Prevention        []string     `json:"prevention"`
	Dos               []string     `json:"dos"`
	Donts             []string     `json:"donts"`
	TimeToCure        string       `json:"time_to_cure"`
	Severity          string       `json:"severity"`
	EmergencyContact  string       `json:"emergency_contact,omitempty"`
}

// RemedyFor returns the cure guide for a class label.
func RemedyFor(class string) (*Remedy, bool) {
	remedy, ok := remedies[class]
	if !ok {
		return nil, false
	}
	out := remedy
	return &out, true
}

// Catalogue returns the class labels with a cure guide, sorted.
func Catalogue() []string {
	out := make([]string, 0, len(remedies))
	for class := range remedies {
		out = append(out, class)
	}
	sort.Strings(out)
	return out
}

var remedies = map[string]Remedy{
	"Bacterialblight": {
		DiseaseName: "Bacterial Blight",
		Cause:       "Bacteria Xanthomonas oryzae pv. oryzae",
		ImmediateActions: []string{
			"Isolate infected plants immediately to prevent spread",
			"Drain excess water from the field - bacteria thrives in waterlogged conditions",
			"Mark and tag all infected areas for targeted treatment",
			"Remove severely infected leaves using sterilized tools",
			"Always wear gloves when handling infected plants",
		},
		ChemicalTreatment: []RemedyStep{
			{
				Title:       "Apply Copper-Based Bactericide",
				Description: "Spray Copper Oxychloride (50% WP) at 2.5g per liter of water on both sides of leaves. Repeat every 7-10 days for 3 weeks.",
			},
			{
				Title:       "Use Streptocycline",
				Description: "Mix Streptocycline (100 ppm) with Copper Oxychloride for enhanced effect. Apply during early morning or late evening.",
			},
			{
				Title:       "Apply Systemic Treatment",
				Description: "Use Validamycin 3% SL at 2ml per liter for systemic action against bacterial invasion.",
			},
		},
		OrganicTreatment: []RemedyStep{
			{
				Title:       "Neem Oil Application",
				Description: "Mix 5ml neem oil with 1 liter water and a few drops of liquid soap. Spray weekly on affected plants.",
			},
			{
				Title:       "Garlic-Chili Solution",
				Description: "Blend 100g garlic and 50g chili in 1L water, ferment 24 hours, strain, dilute 1:10, and spray.",
			},
			{
				Title:       "Pseudomonas Treatment",
				Description: "Apply Pseudomonas fluorescens at 10g per liter as a foliar spray and soil drench.",
			},
		},
		Prevention: []string{
			"Plant resistant varieties such as IR64 and Swarna",
			"Soak seeds in Streptocycline solution (100 ppm) for 12 hours before planting",
			"Maintain 2-3 inches water depth and avoid continuous flooding",
			"Remove and burn all infected plant debris after harvest",
			"Maintain 20x15cm spacing for better air circulation",
			"Avoid excessive nitrogen fertilizer",
			"Rotate with non-host crops for at least one season",
		},
		Dos: []string{
			"Use certified disease-free seeds from authorized dealers",
			"Apply copper fungicide preventively before disease appears",
			"Monitor fields at least twice weekly for early detection",
			"Sterilize farm tools with 10% bleach solution between uses",
			"Apply potassium fertilizers to strengthen plant immunity",
		},
		Donts: []string{
			"Don't apply nitrogen fertilizer during infection period",
			"Don't spray during rain or when rain is expected within 4 hours",
			"Don't use contaminated irrigation water from infected fields",
			"Don't compost infected plant material - burn it instead",
			"Don't use the same tools across healthy and infected plants without sterilization",
		},
		TimeToCure:       "2-4 weeks with consistent treatment",
		Severity:         "High - Can cause 20-50% yield loss if untreated",
		EmergencyContact: "Contact local agricultural extension officer immediately for severe outbreaks",
	},
	"Blast": {
		DiseaseName: "Rice Blast",
		Cause:       "Fungus Magnaporthe oryzae (Pyricularia oryzae)",
		ImmediateActions: []string{
			"Identify blast type: leaf blast, neck blast, or node blast for targeted treatment",
			"Remove heavily infected leaves and destroy by burning",
			"Reduce water stress - maintain consistent moisture levels",
			"Inspect the entire field and mark severity zones for treatment priority",
			"Record weather conditions - blast worsens in cool, humid weather",
		},
		ChemicalTreatment: []RemedyStep{
			{
				Title:       "Apply Tricyclazole Fungicide",
				Description: "Use Tricyclazole 75% WP at 0.6g per liter, the most effective fungicide for blast. Spray at tillering and booting stages.",
			},
			{
				Title:       "Carbendazim Treatment",
				Description: "Apply Carbendazim 50% WP at 1g per liter for systemic control in early stages.",
			},
			{
				Title:       "Isoprothiolane Application",
				Description: "Use Isoprothiolane 40% EC at 1.5ml per liter, highly effective for neck blast. Apply during heading stage.",
			},
		},
		OrganicTreatment: []RemedyStep{
			{
				Title:       "Neem-Based Treatment",
				Description: "Apply neem oil (Azadirachtin 1%) at 5ml per liter with a spreader. Spray weekly.",
			},
			{
				Title:       "Trichoderma Application",
				Description: "Mix Trichoderma viride at 5g per liter for foliar spray and 10kg per hectare for soil application.",
			},
			{
				Title:       "Silicon Treatment",
				Description: "Apply potassium silicate at 2ml per liter as a foliar spray to strengthen cell walls.",
			},
		},
		Prevention: []string{
			"Plant resistant varieties such as Tetep, Carreon, and Pi-54 gene varieties",
			"Treat seeds with Tricyclazole at 2g per kg before sowing",
			"Apply nitrogen in 3-4 splits instead of a bulk application",
			"Avoid water stress during critical growth stages",
			"Use 20x20cm spacing for better air flow and reduced humidity",
			"Remove stubble after harvest - the fungus survives in crop residue",
			"Be extra vigilant during cool (20-25C) and humid conditions",
		},
		Dos: []string{
			"Spray fungicides during early morning or evening for better absorption",
			"Rotate fungicides to prevent resistance development",
			"Apply potassium and silicon fertilizers to strengthen plants",
			"Ensure complete coverage of leaves, especially undersides",
		},
		Donts: []string{
			"Don't apply excessive nitrogen - it increases blast susceptibility",
			"Don't use only one fungicide repeatedly - rotate chemicals",
			"Don't ignore neck blast - it causes severe yield loss",
			"Don't let infected stubble remain in the field after harvest",
		},
		TimeToCure:       "3-5 weeks with intensive fungicide schedule",
		Severity:         "Very High - Can cause up to 70% yield loss, especially neck blast",
		EmergencyContact: "Consult a plant pathologist or agricultural officer for severe neck blast outbreaks",
	},
	"Brownspot": {
		DiseaseName: "Brown Spot",
		Cause:       "Fungus Bipolaris oryzae (Helminthosporium oryzae)",
		ImmediateActions: []string{
			"Check soil nutrients - brown spot indicates nutrient deficiency",
			"Collect infected leaves for confirmation - spots should be circular with brown margins",
			"Improve water management - ensure adequate but not excessive irrigation",
			"Assess seedling vigor - poor vigor indicates susceptibility",
		},
		ChemicalTreatment: []RemedyStep{
			{
				Title:       "Mancozeb Fungicide",
				Description: "Apply Mancozeb 75% WP at 2g per liter, the best broad-spectrum fungicide for brown spot. Spray at 10-day intervals.",
			},
			{
				Title:       "Propiconazole Application",
				Description: "Use Propiconazole 25% EC at 1ml per liter for systemic control of moderate to severe infections.",
			},
			{
				Title:       "Seed Treatment",
				Description: "Treat seeds with Carbendazim 50% WP at 2g per kg before planting to prevent seedling infection.",
			},
		},
		OrganicTreatment: []RemedyStep{
			{
				Title:       "Neem Oil Spray",
				Description: "Mix neem oil 5ml per liter with liquid soap. Spray weekly on infected plants.",
			},
			{
				Title:       "Trichoderma Treatment",
				Description: "Apply Trichoderma harzianum at 5g per liter as a foliar spray; mix into soil at 5kg per hectare.",
			},
			{
				Title:       "Baking Soda Solution",
				Description: "Mix 1 tablespoon baking soda and a few drops of vegetable oil in 1 liter water. Spray to change leaf surface pH.",
			},
		},
		Prevention: []string{
			"Source certified seeds from disease-free areas",
			"Treat all seeds with Carbendazim or Thiram before planting",
			"Apply NPK fertilizers per soil test, with focus on potassium",
			"Conduct soil tests and correct nutrient deficiencies before planting",
			"Maintain consistent moisture - water stress increases susceptibility",
			"Remove and destroy infected stubble and plant debris",
		},
		Dos: []string{
			"Apply potassium sulfate or muriate of potash to strengthen plants",
			"Maintain soil pH between 5.5 and 6.5 for optimal nutrient availability",
			"Use balanced fertilization and avoid nitrogen excess",
			"Monitor seedlings closely - early detection is key",
		},
		Donts: []string{
			"Don't plant in nutrient-deficient soils without correction",
			"Don't use seeds from infected crops",
			"Don't ignore soil testing - brown spot thrives in poor soils",
			"Don't skip potassium application - it's crucial for resistance",
		},
		TimeToCure:       "2-3 weeks with proper fungicide and nutrition management",
		Severity:         "Medium - Causes 10-20% yield loss, more severe in nutrient-poor soils",
		EmergencyContact: "Contact a soil testing lab and agricultural extension for nutrient management advice",
	},
}
