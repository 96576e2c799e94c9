package assistant

const defaultSystemPrompt = "You are Rafiq, an AI assistant for an Islamic bank. " +
	"You provide helpful, accurate, and concise information about Islamic banking products and services."

const analyzerSystemPrompt = "You are an expert document analyzer for an Islamic bank. " +
	"Provide accurate analysis and insights."

// followUpInstruction asks the model to append follow-up questions using
// the marker protocol parsed by parseSuggestions.
const followUpInstruction = "After your response, suggest 3 follow-up questions the user might want to ask " +
	"based on your answer. Format them as a JSON array of strings at the end of your message, " +
	"with the label 'SUGGESTED_QUESTIONS:' preceding it."

// Knowledge-base scopes. Selecting one only appends a focus sentence to
// the system prompt; no retrieval happens anywhere in this system.
const (
	ScopeIslamicPrinciples = "islamic-principles"
	ScopeProducts          = "products"
	ScopeCompliance        = "compliance"
	ScopeOperations        = "operations"
)

var scopeSuffixes = map[string]string{
	ScopeIslamicPrinciples: " Focus specifically on Islamic banking principles and Shariah compliance.",
	ScopeProducts:          " Focus specifically on the bank's products and services.",
	ScopeCompliance:        " Focus specifically on regulatory compliance and legal requirements.",
	ScopeOperations:        " Focus specifically on operational procedures and banking operations.",
}

// scopeNames are the display names used in fallback attribution phrases.
var scopeNames = map[string]string{
	ScopeIslamicPrinciples: "Islamic Banking Principles",
	ScopeProducts:          "Product Details",
	ScopeCompliance:        "Compliance",
	ScopeOperations:        "Operations",
}

func scopeSuffix(scope string) string {
	return scopeSuffixes[scope]
}
