package supportbot

const greetingResponse = "Hello! I'm your crop disease assistant. Ask me about rice diseases, " +
	"their symptoms and treatment, or how to use the application."

const thanksResponse = "You're welcome! Feel free to ask if you have more questions about crop diseases."

const defaultResponse = "I can help you with:\n" +
	"- Rice disease information (bacterial blight, blast, brown spot)\n" +
	"- Symptoms and identification\n" +
	"- Treatment and prevention advice\n" +
	"- How to use this application\n\n" +
	"Try asking something like 'What is bacterial blight?' or 'How do I take a good leaf photo?'"

const treatmentPrompt = "Treatment depends on the disease. General guidance:\n" +
	"- Bacterial diseases: copper-based bactericides, drain excess water\n" +
	"- Fungal diseases (blast, brown spot): fungicides such as Tricyclazole or Mancozeb\n" +
	"- Always remove and destroy infected plant material\n\n" +
	"Upload a leaf photo for a diagnosis, or name the disease for specific advice."

const preventionTips = "General prevention tips for rice diseases:\n" +
	"- Use certified, disease-free seeds and resistant varieties\n" +
	"- Maintain proper plant spacing for air circulation\n" +
	"- Avoid excessive nitrogen fertilizer\n" +
	"- Manage water carefully, avoid prolonged flooding\n" +
	"- Remove crop residue and stubble after harvest\n" +
	"- Monitor fields regularly for early detection"

const riceDiseaseList = "Common rice leaf diseases this system recognizes:\n" +
	"- Bacterial Blight: water-soaked lesions, wilting, yellowing\n" +
	"- Rice Blast: diamond-shaped lesions with gray centers\n" +
	"- Brown Spot: circular brown spots on leaves and grains\n\n" +
	"Upload a clear leaf photo to get a diagnosis."

// appKnowledge answers questions about using the application itself.
var appKnowledge = map[string]string{
	"how to use": "Using the application is simple:\n" +
		"1. Sign up or log in\n" +
		"2. Upload one or more clear photos of rice leaves\n" +
		"3. The model analyzes each image and reports the most likely disease with confidence scores\n" +
		"4. Review the treatment recommendations and download a PDF report if needed",
	"good image": "Tips for a good leaf photo:\n" +
		"- Use natural daylight, avoid shadows and glare\n" +
		"- Fill the frame with a single leaf against a plain background\n" +
		"- Keep the camera steady and in focus\n" +
		"- Capture the affected area clearly, including lesion edges\n" +
		"- JPEG and PNG formats are supported",
	"supported diseases": "The model currently identifies three rice leaf diseases:\n" +
		"- Bacterial Blight\n" +
		"- Rice Blast\n" +
		"- Brown Spot\n\n" +
		"Images of other crops or diseases may produce unreliable results.",
	"about project": "This is an AI-powered crop disease detection system. A deep learning " +
		"model trained on rice leaf images classifies uploaded photos into disease categories " +
		"and pairs each diagnosis with treatment guidance from agricultural references.",
}

// knowledgeBase holds disease topics matched by keyword scoring. A query
// matching several keywords of one entry accumulates their lengths, so
// specific multi-word phrases dominate generic single words.
var knowledgeBase = []entry{
	{
		keywords: []string{"bacterial blight", "bacterialblight", "blight", "xanthomonas", "water-soaked", "bacterial"},
		info: "Bacterial Blight (Xanthomonas oryzae):\n" +
			"Symptoms: water-soaked lesions starting at leaf tips and margins, turning yellow " +
			"then grayish-white; wilting of seedlings (kresek).\n" +
			"Treatment: drain the field, spray Copper Oxychloride (2.5g/L), avoid nitrogen " +
			"during infection.\n" +
			"Prevention: resistant varieties like IR64, seed treatment with Streptocycline, " +
			"proper spacing.",
	},
	{
		keywords: []string{"rice blast", "blast", "magnaporthe", "pyricularia", "neck blast", "diamond"},
		info: "Rice Blast (Magnaporthe oryzae):\n" +
			"Symptoms: diamond-shaped lesions with gray centers and brown margins; neck blast " +
			"causes the panicle to break.\n" +
			"Treatment: Tricyclazole 75% WP (0.6g/L) at tillering and booting stages.\n" +
			"Prevention: resistant varieties (Tetep, Pi-54), split nitrogen applications, " +
			"remove stubble after harvest.",
	},
	{
		keywords: []string{"brown spot", "brownspot", "bipolaris", "helminthosporium", "circular spot"},
		info: "Brown Spot (Bipolaris oryzae):\n" +
			"Symptoms: circular or oval brown spots on leaves, stems, and grains; often linked " +
			"to nutrient-poor soil.\n" +
			"Treatment: Mancozeb 75% WP (2g/L) at 10-day intervals, correct potassium deficiency.\n" +
			"Prevention: seed treatment with Carbendazim, balanced fertilization, soil testing.",
	},
	{
		keywords: []string{"healthy", "no disease", "normal leaf"},
		info: "A healthy rice leaf is uniformly green without spots, lesions, or yellowing. " +
			"Keep monitoring your field regularly - early detection makes treatment far more effective.",
	},
	{
		keywords: []string{"symptom", "sign", "look like", "identify disease"},
		info: "Key symptoms to watch for:\n" +
			"- Bacterial Blight: water-soaked streaks from leaf tips, yellowing\n" +
			"- Rice Blast: diamond-shaped gray-centered lesions\n" +
			"- Brown Spot: round brown spots with dark margins\n\n" +
			"Upload a photo of the affected leaf for an automatic diagnosis.",
	},
}
