package constant

const (
	ChatMessageSenderUser = "user"
	ChatMessageSenderBot  = "bot"

	// DefaultChatTitle is the title every fresh session starts with. The first
	// real user message replaces it (see chat service).
	DefaultChatTitle = "New Chat"

	// AnonymousUserId is assumed when a request carries no userId.
	AnonymousUserId = "anonymous_user"

	AnonymousDisplayName = "Anonymous User"

	// GreetingMessage seeds every new session as its single bot message.
	GreetingMessage = "Hello! I'm your MOSAIC assistant. How can I help you today?"

	// TitleMaxLen is the truncation point when deriving a session title from
	// the first user message.
	TitleMaxLen = 30
)
