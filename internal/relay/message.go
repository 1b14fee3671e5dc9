package relay

import (
	"strings"

	"gitlab.com/epixlabs/contact-relay/pkg/model"
)

// Placeholder replaces every field that was left empty.
const Placeholder = "-"

// htmlEscaper escapes the characters the HTML parse mode of the Bot API treats as markup.
var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// FormatMessage renders a submission as the text block that is sent to the chat. The result only
// depends on its arguments.
func FormatMessage(brand string, s model.ContactSubmission) string {
	lines := []string{
		"📩 New Contact Message for " + htmlEscaper.Replace(brand) + ":",
		"👤 Name: " + field(s.Name),
		"📧 Email: " + field(s.Email),
		"📞 Phone: " + field(s.Phone),
		"🏢 Company: " + field(s.Company),
		"💬 Message: " + field(s.Message),
	}
	return strings.Join(lines, "\n")
}

func field(value string) string {
	if value == "" {
		return Placeholder
	}
	return htmlEscaper.Replace(value)
}
