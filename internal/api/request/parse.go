package request

// ParseRequest represents the request body for parsing a natural-language
// transaction description into a structured suggestion.
type ParseRequest struct {
	Text string `json:"text"`
}
