// Package diseases - Static disease knowledge consumed by prediction
// output: short summaries for result display and full cure guides.
package diseases

// Info is the short human-readable summary shown alongside a prediction.
type Info struct {
	Description string `json:"description"`
	Symptoms    string `json:"symptoms"`
	Treatment   string `json:"treatment"`
}

// fallbackInfo is returned for class labels with no curated entry, so a
// prediction can always be annotated.
var fallbackInfo = Info{
	Description: "Disease information not available.",
	Symptoms:    "N/A",
	Treatment:   "Please consult an agricultural expert.",
}

var infoByClass = map[string]Info{
	"Bacterialblight": {
		Description: "Bacterial blight is a serious disease affecting rice crops.",
		Symptoms:    "Water-soaked lesions on leaves, wilting, and yellowing.",
		Treatment:   "Use resistant varieties, proper water management, and copper-based bactericides.",
	},
	"Blast": {
		Description: "Rice blast is caused by a fungal pathogen and is one of the most destructive rice diseases.",
		Symptoms:    "Diamond-shaped lesions with gray centers and brown margins on leaves.",
		Treatment:   "Use resistant varieties, fungicide application, and proper field sanitation.",
	},
	"Brownspot": {
		Description: "Brown spot is a fungal disease that affects rice plants.",
		Symptoms:    "Circular or oval brown spots on leaves, stems, and grains.",
		Treatment:   "Seed treatment, balanced fertilization, and fungicide application.",
	},
}

// InfoFor returns the summary for a class label. Unknown labels get a
// generic fallback, never an error.
func InfoFor(class string) Info {
	if info, ok := infoByClass[class]; ok {
		return info
	}
	return fallbackInfo
}

// Known reports whether a curated summary exists for the class label.
func Known(class string) bool {
	_, ok := infoByClass[class]
	return ok
}
