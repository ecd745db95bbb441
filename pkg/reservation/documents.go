package reservation

import "fmt"

// Operation names a CRUD action the form can trigger.
type Operation string

const (
	OpCreate Operation = "create"
	OpRead   Operation = "get"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	OpList   Operation = "list"
)

// Operations lists every operation in button order.
var Operations = []Operation{OpCreate, OpRead, OpUpdate, OpDelete, OpList}

// ParseOperation accepts the button names plus a few aliases.
func ParseOperation(s string) (Operation, error) {
	switch s {
	case "create", "CREATE":
		return OpCreate, nil
	case "get", "GET", "read":
		return OpRead, nil
	case "update", "UPDATE":
		return OpUpdate, nil
	case "delete", "DELETE":
		return OpDelete, nil
	case "list", "LIST", "all":
		return OpList, nil
	}
	return "", fmt.Errorf("unknown operation: %q", s)
}

const selection = `{
    id
    dateDebut
    dateFin
    preferences
  }`

// GraphQL documents. User values are only ever passed as variables.
// Variable types assume the schema declares ids as ID! and the create and
// update argument as ReservationInput!.
const (
	CreateMutation = `mutation CreateReservation($input: ReservationInput!) {
  createReservation(input: $input) ` + selection + `
}`

	GetQuery = `query GetReservation($id: ID!) {
  getReservation(id: $id) ` + selection + `
}`

	UpdateMutation = `mutation UpdateReservation($id: ID!, $input: ReservationInput!) {
  updateReservation(id: $id, input: $input) ` + selection + `
}`

	DeleteMutation = `mutation DeleteReservation($id: ID!) {
  deleteReservation(id: $id)
}`

	ListQuery = `query GetAllReservations {
  getAllReservations ` + selection + `
}`
)

// Document returns the GraphQL document and variables for op.
// The result depends only on op and d.
func Document(op Operation, d Draft) (string, map[string]interface{}, error) {
	switch op {
	case OpCreate:
		return CreateMutation, map[string]interface{}{"input": d.Body()}, nil
	case OpRead:
		return GetQuery, map[string]interface{}{"id": d.ID}, nil
	case OpUpdate:
		return UpdateMutation, map[string]interface{}{"id": d.ID, "input": d.Body()}, nil
	case OpDelete:
		return DeleteMutation, map[string]interface{}{"id": d.ID}, nil
	case OpList:
		return ListQuery, map[string]interface{}{}, nil
	}
	return "", nil, fmt.Errorf("unknown operation: %q", op)
}
