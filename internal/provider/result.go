package provider

import "github.com/heartmarshall/wildlife-backend/internal/domain"

// Address is the subset of a reverse-geocoding result used for labels.
type Address struct {
	City        string
	Town        string
	Village     string
	County      string
	State       string
	Region      string
	CountryCode string
}

// Article is a cleaned reference article.
type Article struct {
	Title   string
	Excerpt string
	URL     string
}

// ChatRole is the author of a chat message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of a conversation with a language model.
type ChatMessage struct {
	Role    ChatRole
	Content string
}

// IPLocation is the coarse position of a client address.
type IPLocation struct {
	Point   domain.Point
	City    string
	Country string
}
