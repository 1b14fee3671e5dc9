package model

// SendMessageRequest is the body of a Telegram Bot API sendMessage call.
type SendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// APIResponse is the envelope the Telegram Bot API wraps every answer in. Description and
// ErrorCode are only present when OK is false.
type APIResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
	ErrorCode   int    `json:"error_code,omitempty"`
}
