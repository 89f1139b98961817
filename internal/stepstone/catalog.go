package stepstone

import "strings"

// AIKeywords are the terms scanned for in titles and descriptions to tag
// postings. Matching is case-insensitive.
var AIKeywords = []string{
	"KI", "AI", "Künstliche Intelligenz", "Artificial Intelligence",
	"Machine Learning", "ML", "Deep Learning", "GenAI", "Generative AI",
	"LLM", "Large Language Model", "ChatGPT", "GPT", "Copilot",
	"NLP", "Natural Language Processing", "Computer Vision",
	"Neural Network", "Data Science", "Prompt Engineer",
}

// Regions maps URL slugs to German state names.
var Regions = map[string]string{
	"baden-wuerttemberg":     "Baden-Württemberg",
	"bayern":                 "Bayern",
	"berlin":                 "Berlin",
	"brandenburg":            "Brandenburg",
	"bremen":                 "Bremen",
	"hamburg":                "Hamburg",
	"hessen":                 "Hessen",
	"mecklenburg-vorpommern": "Mecklenburg-Vorpommern",
	"niedersachsen":          "Niedersachsen",
	"nordrhein-westfalen":    "Nordrhein-Westfalen",
	"rheinland-pfalz":        "Rheinland-Pfalz",
	"saarland":               "Saarland",
	"sachsen":                "Sachsen",
	"sachsen-anhalt":         "Sachsen-Anhalt",
	"schleswig-holstein":     "Schleswig-Holstein",
	"thueringen":             "Thüringen",
}

// ExtractKeywords returns the AI keywords present in text, in catalog order.
func ExtractKeywords(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, kw := range AIKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			found = append(found, kw)
		}
	}
	return found
}
