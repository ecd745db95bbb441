// Package form models the exerciser screen as a value: the active tab,
// the reservation draft and the last result. State only changes through
// Reduce, one Action at a time.
package form

import (
	"fmt"
	"strings"

	"github.com/saturnines/reservation-exerciser/pkg/dispatcher"
	"github.com/saturnines/reservation-exerciser/pkg/reservation"
)

// Field names a draft input, using the form's own names.
type Field string

const (
	FieldID          Field = "id"
	FieldStartDate   Field = "dateDebut"
	FieldEndDate     Field = "dateFin"
	FieldPreferences Field = "preferences"
)

// Fields lists the inputs in display order.
var Fields = []Field{FieldID, FieldStartDate, FieldEndDate, FieldPreferences}

// ParseField accepts the form names and the draft's Go-side names.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "id":
		return FieldID, nil
	case "datedebut", "start", "startdate":
		return FieldStartDate, nil
	case "datefin", "end", "enddate":
		return FieldEndDate, nil
	case "preferences", "prefs":
		return FieldPreferences, nil
	}
	return "", fmt.Errorf("unknown field: %q", s)
}

// State is one render of the screen.
type State struct {
	Tab    dispatcher.Transport
	Draft  reservation.Draft
	Result string
}

// Initial is the screen on start: REST tab, empty draft, no result.
func Initial() State {
	return State{Tab: dispatcher.REST}
}

// Action is one discrete user or network event.
type Action interface {
	isAction()
}

// TabSelected switches the active transport.
type TabSelected struct {
	Tab dispatcher.Transport
}

// FieldChanged replaces one draft field.
type FieldChanged struct {
	Field Field
	Value string
}

// ResultReceived replaces the displayed result.
type ResultReceived struct {
	Text string
}

func (TabSelected) isAction()    {}
func (FieldChanged) isAction()   {}
func (ResultReceived) isAction() {}

// Reduce returns the state after a. Unknown tabs and fields leave s as is.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case TabSelected:
		for _, t := range dispatcher.Transports {
			if t == a.Tab {
				s.Tab = a.Tab
				break
			}
		}
	case FieldChanged:
		switch a.Field {
		case FieldID:
			s.Draft.ID = a.Value
		case FieldStartDate:
			s.Draft.StartDate = a.Value
		case FieldEndDate:
			s.Draft.EndDate = a.Value
		case FieldPreferences:
			s.Draft.Preferences = a.Value
		}
	case ResultReceived:
		s.Result = a.Text
	}
	return s
}

// Value reads one draft field.
func (s State) Value(f Field) string {
	switch f {
	case FieldID:
		return s.Draft.ID
	case FieldStartDate:
		return s.Draft.StartDate
	case FieldEndDate:
		return s.Draft.EndDate
	case FieldPreferences:
		return s.Draft.Preferences
	}
	return ""
}

// Operations returns the buttons shown under a tab.
func Operations(tab dispatcher.Transport) []reservation.Operation {
	if !tab.Callable() {
		return nil
	}
	return reservation.Operations
}

// Hint is the text shown under a tab without buttons.
func Hint(tab dispatcher.Transport) string {
	switch tab {
	case dispatcher.SOAP:
		return dispatcher.SOAPHint
	case dispatcher.GRPC:
		return dispatcher.GRPCHint
	}
	return ""
}

// Render draws the screen as plain text.
func (s State) Render() string {
	var b strings.Builder

	b.WriteString("Hotel Reservation API - Test Client\n\n")
	for i, t := range dispatcher.Transports {
		if i > 0 {
			b.WriteString(" ")
		}
		if t == s.Tab {
			fmt.Fprintf(&b, "[%s]", t)
		} else {
			fmt.Fprintf(&b, " %s ", t)
		}
	}
	b.WriteString("\n\n")

	for _, f := range Fields {
		fmt.Fprintf(&b, "  %-12s %s\n", f+":", s.Value(f))
	}
	b.WriteString("\n")

	if ops := Operations(s.Tab); len(ops) > 0 {
		names := make([]string, len(ops))
		for i, op := range ops {
			names[i] = strings.ToUpper(string(op))
		}
		fmt.Fprintf(&b, "  %s\n", strings.Join(names, " | "))
	} else {
		fmt.Fprintf(&b, "  %s\n", Hint(s.Tab))
	}

	if s.Result != "" {
		fmt.Fprintf(&b, "\nRésultat:\n%s\n", s.Result)
	}
	return b.String()
}
