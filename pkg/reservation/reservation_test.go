package reservation

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func sampleDraft() Draft {
	return Draft{
		ID:          "42",
		StartDate:   "2024-01-01",
		EndDate:     "2024-01-05",
		Preferences: "quiet room",
	}
}

func TestDraftBody_UsesWireNames(t *testing.T) {
	buf, err := json.Marshal(sampleDraft().Body())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `{"dateDebut":"2024-01-01","dateFin":"2024-01-05","preferences":"quiet room"}`
	if string(buf) != want {
		t.Errorf("Expected %s, got %s", want, buf)
	}
}

func TestDraftBody_EndBeforeStartAccepted(t *testing.T) {
	d := Draft{StartDate: "2024-02-01", EndDate: "2024-01-01"}
	body := d.Body()
	if body.DateDebut != "2024-02-01" || body.DateFin != "2024-01-01" {
		t.Errorf("Dates should pass through untouched, got %+v", body)
	}
}

func TestDocument_Variables(t *testing.T) {
	d := sampleDraft()

	tests := []struct {
		op       Operation
		query    string
		wantVars map[string]interface{}
	}{
		{OpCreate, CreateMutation, map[string]interface{}{"input": d.Body()}},
		{OpRead, GetQuery, map[string]interface{}{"id": "42"}},
		{OpUpdate, UpdateMutation, map[string]interface{}{"id": "42", "input": d.Body()}},
		{OpDelete, DeleteMutation, map[string]interface{}{"id": "42"}},
		{OpList, ListQuery, map[string]interface{}{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			query, vars, err := Document(tt.op, d)
			if err != nil {
				t.Fatalf("Document failed: %v", err)
			}
			if query != tt.query {
				t.Errorf("Unexpected query for %s:\n%s", tt.op, query)
			}
			if !reflect.DeepEqual(vars, tt.wantVars) {
				t.Errorf("Expected vars %v, got %v", tt.wantVars, vars)
			}
		})
	}
}

func TestDocument_NeverEmbedsUserValues(t *testing.T) {
	d := Draft{
		ID:          `1") { id } deleteReservation(id: "2`,
		StartDate:   "2024-01-01",
		EndDate:     "2024-01-05",
		Preferences: `"}) { id } }`,
	}

	for _, op := range Operations {
		query, _, err := Document(op, d)
		if err != nil {
			t.Fatalf("Document(%s) failed: %v", op, err)
		}
		if strings.Contains(query, d.ID) || strings.Contains(query, d.Preferences) {
			t.Errorf("%s document contains user input:\n%s", op, query)
		}
	}
}

func TestDocument_Idempotent(t *testing.T) {
	d := sampleDraft()
	for _, op := range Operations {
		q1, v1, _ := Document(op, d)
		q2, v2, _ := Document(op, d)

		b1, _ := json.Marshal(map[string]interface{}{"query": q1, "variables": v1})
		b2, _ := json.Marshal(map[string]interface{}{"query": q2, "variables": v2})
		if string(b1) != string(b2) {
			t.Errorf("%s: documents differ\n%s\n%s", op, b1, b2)
		}
	}
}

func TestDocument_VariableTypes(t *testing.T) {
	tests := []struct {
		op   Operation
		want []string
	}{
		{OpCreate, []string{"($input: ReservationInput!)"}},
		{OpRead, []string{"($id: ID!)"}},
		{OpUpdate, []string{"($id: ID!, $input: ReservationInput!)"}},
		{OpDelete, []string{"($id: ID!)"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			doc, _, err := Document(tt.op, sampleDraft())
			if err != nil {
				t.Fatalf("Document failed: %v", err)
			}
			header, _, _ := strings.Cut(doc, "{")
			for _, w := range tt.want {
				if !strings.Contains(header, w) {
					t.Errorf("Expected %q in %q", w, header)
				}
			}
		})
	}
}

func TestDocument_UnknownOperation(t *testing.T) {
	if _, _, err := Document("patch", sampleDraft()); err == nil {
		t.Error("Expected error for unknown operation")
	}
}

func TestParseOperation(t *testing.T) {
	tests := []struct {
		in      string
		want    Operation
		wantErr bool
	}{
		{"create", OpCreate, false},
		{"GET", OpRead, false},
		{"read", OpRead, false},
		{"UPDATE", OpUpdate, false},
		{"delete", OpDelete, false},
		{"all", OpList, false},
		{"patch", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOperation(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOperation(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}
