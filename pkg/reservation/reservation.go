// Package reservation holds the reservation draft edited by the user and
// its two wire renderings: the REST JSON body and the GraphQL documents.
package reservation

// Draft is the unpersisted set of fields currently held by the form.
// Nothing here is validated; the destination service decides.
type Draft struct {
	ID          string
	StartDate   string
	EndDate     string
	Preferences string
}

// Body is the JSON payload for REST create and update, and the GraphQL
// ReservationInput.
type Body struct {
	DateDebut   string `json:"dateDebut"`
	DateFin     string `json:"dateFin"`
	Preferences string `json:"preferences"`
}

// Body maps the draft to the field names the service expects.
func (d Draft) Body() Body {
	return Body{
		DateDebut:   d.StartDate,
		DateFin:     d.EndDate,
		Preferences: d.Preferences,
	}
}
