package rpc

import "encoding/json"

type PageDirection string

const (
	PageForward  PageDirection = "forward"
	PageBackward PageDirection = "backward"
)

// PaginationRequest mirrors the cursor-based pagination of the Fuel GraphQL
// API. A nil cursor starts from the newest (backward) or oldest (forward)
// entry.
type PaginationRequest struct {
	Cursor    *string
	Results   int
	Direction PageDirection
}

type TransactionSummary struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type TransactionPage struct {
	Results []TransactionSummary `json:"results"`
	Cursor  *string              `json:"cursor,omitempty"`
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors []graphQLError  `json:"errors,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}
