package dto

// ChatRequest represents a question sent to the chatbot
type ChatRequest struct {
	Message string `json:"message" binding:"required,max=1000" example:"total spent by customer 1023"`
}
