package model

// ChatMessage is a user message to the companion bot.
type ChatMessage struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// ChatResponse is the bot reply. Error is set when a canned reply was used.
type ChatResponse struct {
	Response string  `json:"response"`
	Error    *string `json:"error,omitempty"`
}

// JournalPrompt is a single reflective prompt.
type JournalPrompt struct {
	Prompt string `json:"prompt"`
}

// MessageResponse is a generic confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}
