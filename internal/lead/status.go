package lead

// Status is the position of a lead in the outreach workflow.
// The wire values are the native German labels used by the original
// spreadsheet-era process, so they are kept verbatim in the API and DB.
type Status string

const (
	StatusNew        Status = "neu"
	StatusActivated  Status = "aktiviert"
	StatusResearched Status = "recherchiert"
	StatusLetter     Status = "anschreiben_erstellt"
	StatusContacted  Status = "angeschrieben"
	StatusReplied    Status = "antwort_erhalten"
)

// Statuses lists all workflow statuses in order.
func Statuses() []Status {
	return []Status{
		StatusNew,
		StatusActivated,
		StatusResearched,
		StatusLetter,
		StatusContacted,
		StatusReplied,
	}
}

var labels = map[Status]string{
	StatusNew:        "Neu",
	StatusActivated:  "Aktiviert",
	StatusResearched: "Recherchiert",
	StatusLetter:     "Anschreiben erstellt",
	StatusContacted:  "Angeschrieben",
	StatusReplied:    "Antwort erhalten",
}

// Label returns the human-readable display label for the status.
func (s Status) Label() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

// Valid reports whether s is one of the known workflow statuses.
func (s Status) Valid() bool {
	_, ok := labels[s]
	return ok
}

// order maps each status to its workflow position.
var order = map[Status]int{
	StatusNew:        0,
	StatusActivated:  1,
	StatusResearched: 2,
	StatusLetter:     3,
	StatusContacted:  4,
	StatusReplied:    5,
}

// AtLeast reports whether s has reached (or passed) the given stage.
func (s Status) AtLeast(stage Status) bool {
	si, ok := order[s]
	ti, ok2 := order[stage]
	return ok && ok2 && si >= ti
}
