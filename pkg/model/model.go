package model

// ContactSubmission is one contact form payload as it travels from the form to the relay.
// Name, Email and Message are required by the form; Phone and Company are optional. The relay
// itself accepts any subset of the fields.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Message string `json:"message"`
}

// Response is the result of a relay call. Error is only set when OK is false.
type Response struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
