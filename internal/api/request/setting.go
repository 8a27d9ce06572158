package request

// SetParserKeyRequest represents the request body for storing the parser
// API key. An empty key clears the stored value.
type SetParserKeyRequest struct {
	APIKey string `json:"apiKey"`
}
