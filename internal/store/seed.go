package store

import "github.com/Martin212038201938/FunnyFunnel/internal/lead"

// demoLeads is inserted by SeedDemo so a fresh install has something to
// click through. Company names are fictional.
var demoLeads = []lead.Lead{
	{
		Title:       "KI-Trainer für Microsoft Copilot Schulungen (m/w/d)",
		SourceURL:   "https://www.stepstone.de/stellenangebote--demo-ki-trainer",
		Keywords:    []string{"KI", "Copilot", "Schulung"},
		Preview:     "Wir suchen einen erfahrenen Trainer für unsere Copilot-Einführungsprogramme in DAX-Konzernen.",
		CompanyName: "Digitalwerk Akademie GmbH",
		Status:      lead.StatusNew,
	},
	{
		Title:       "AI Engineer - Generative AI (m/w/d)",
		SourceURL:   "https://www.stepstone.de/stellenangebote--demo-ai-engineer",
		Keywords:    []string{"AI", "GenAI", "LLM", "Python"},
		Preview:     "Entwicklung von LLM-basierten Assistenzsystemen für den Mittelstand.",
		CompanyName: "Nordlicht Systems AG",
		Status:      lead.StatusActivated,
	},
	{
		Title:          "Head of Learning & Development mit KI-Fokus",
		SourceURL:      "https://www.stepstone.de/stellenangebote--demo-head-ld",
		Keywords:       []string{"KI", "Learning", "Weiterbildung"},
		Preview:        "Aufbau eines unternehmensweiten KI-Weiterbildungsprogramms.",
		CompanyName:    "Hanse Logistik SE",
		CompanyWebsite: "https://www.hanse-logistik.example",
		CompanyAddress: "Ballindamm 12, 20095 Hamburg",
		CompanyEmail:   "info@hanse-logistik.example",
		ContactName:    "Dr. Petra Feldmann",
		ContactRole:    "Head of HR",
		ContactSource:  "LinkedIn",
		Status:         lead.StatusResearched,
	},
	{
		Title:       "Machine Learning Consultant (m/w/d)",
		SourceURL:   "https://www.stepstone.de/stellenangebote--demo-ml-consultant",
		Keywords:    []string{"Machine Learning", "Data Science"},
		Preview:     "Beratung von Kunden bei der Einführung von ML-Pipelines.",
		CompanyName: "Südstern Consulting GmbH",
		Status:      lead.StatusContacted,
	},
}

// SeedDemo inserts the demo data set and returns how many leads were
// created. Leads whose posting URL already exists are skipped, so seeding
// twice does not duplicate.
func (db *DB) SeedDemo() (int, error) {
	created := 0
	for i := range demoLeads {
		l := demoLeads[i]
		exists, err := db.ExistsBySourceURL(l.SourceURL)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}
		if _, err := db.InsertLead(&l); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
