package dto

// Reply formats
const (
	FormatText = "text"
	FormatHTML = "html"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"malformed_parameter"`
	Message string `json:"message,omitempty" example:"Could not read the value in your question. Please check it and try again."`
}

// ChatResponse represents the chatbot's answer
type ChatResponse struct {
	Intent   string `json:"intent" example:"total_spent_by_customer"`
	Response string `json:"response" example:"Total spent by customer 1023: $35.75"`
	Format   string `json:"format" enums:"text,html" example:"text"`
}

// IntentInfo describes one routing rule
type IntentInfo struct {
	Order    int      `json:"order" example:"7"`
	Intent   string   `json:"intent" example:"total_spent_by_customer"`
	Triggers []string `json:"triggers" example:"total spent by"`
}

// IntentsResponse lists the routing rules in priority order
type IntentsResponse struct {
	Intents []IntentInfo `json:"intents"`
}
