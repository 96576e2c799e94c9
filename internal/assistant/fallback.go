package assistant

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/iyyappan14/RAG-ChatBot/internal/llm"
)

// fallbackDisclaimer is appended as the last line of every fallback
// response so callers can tell a canned answer from a provider one.
const fallbackDisclaimer = "Note: This is a demo response generated without a live AI provider."

// fallbackRule maps keywords in a user question to a canned answer.
type fallbackRule struct {
	keywords  []string
	content   string
	questions []string
}

func (r fallbackRule) matches(question string) bool {
	for _, kw := range r.keywords {
		if strings.Contains(question, kw) {
			return true
		}
	}
	return false
}

// fallbackRules is evaluated in order and the first match wins, so the
// order is a priority list. The document/search rule stays ahead of the
// generic banking rules: a question about searching stored documents
// often also contains words like "financing" or "principle" and must not
// be routed to those entries.
var fallbackRules = []fallbackRule{
	{
		keywords: []string{"knowledge base", "document", "search", "upload"},
		content: "You can upload documents on the analyzer page and ask questions about them, or pick a " +
			"knowledge base to focus the conversation on principles, products, compliance, or operations. " +
			"Uploaded documents stay in memory for this session only.",
		questions: []string{
			"What file types can I upload?",
			"Which knowledge bases are available?",
			"How do I ask a question about a document?",
		},
	},
	{
		keywords: []string{"murabaha"},
		content: "Murabaha is a cost-plus-profit sale. The bank purchases the asset you want, discloses its " +
			"cost, and sells it to you at an agreed markup payable in instalments. Because the profit is a " +
			"disclosed part of a genuine sale rather than interest on a loan, the structure is Shariah " +
			"compliant and is widely used for vehicle, equipment, and home purchases.",
		questions: []string{
			"How does murabaha differ from a conventional loan?",
			"What happens if I repay a murabaha early?",
			"Is the murabaha markup negotiable?",
		},
	},
	{
		keywords: []string{"riba", "interest"},
		content: "Riba, any predetermined charge for the use of money, is prohibited in Islamic finance. " +
			"Instead of paying or charging interest, Islamic banks earn returns through trade, leasing, and " +
			"profit-sharing structures where the bank shares in the commercial risk of the underlying asset.",
		questions: []string{
			"Why is riba prohibited?",
			"How do Islamic banks make a profit without interest?",
			"Are late payment fees considered riba?",
		},
	},
	{
		keywords: []string{"shariah", "sharia", "principle", "islamic banking"},
		content: "Islamic banking rests on a few core principles: the prohibition of riba (interest), the " +
			"avoidance of gharar (excessive uncertainty) and of prohibited industries, the requirement that " +
			"financing be tied to real assets or services, and the sharing of profit and loss between the " +
			"bank and its customers. A Shariah supervisory board reviews products for compliance.",
		questions: []string{
			"What does a Shariah board do?",
			"What is gharar?",
			"Which industries are excluded from Islamic financing?",
		},
	},
	{
		keywords: []string{"financing", "finance", "loan", "mortgage"},
		content: "Islamic home and asset financing is typically structured as murabaha (cost-plus sale), " +
			"ijara (lease-to-own), or diminishing musharaka (co-ownership where you buy out the bank's share " +
			"over time). Each avoids interest by basing the bank's return on a real sale or lease.",
		questions: []string{
			"Which financing structure suits a first home purchase?",
			"What is diminishing musharaka?",
			"How is the monthly payment calculated in ijara?",
		},
	},
	{
		keywords: []string{"account", "savings", "deposit"},
		content: "Islamic savings accounts are usually based on mudaraba: the bank invests your deposits in " +
			"Shariah-compliant activities and shares the realized profit with you at a pre-agreed ratio " +
			"instead of paying a fixed interest rate. Current accounts are safekeeping (wadiah) arrangements " +
			"with no return.",
		questions: []string{
			"How is the profit ratio on a mudaraba account set?",
			"Are my deposits guaranteed?",
			"What is the difference between mudaraba and wadiah?",
		},
	},
	{
		keywords: []string{"sukuk", "investment", "invest"},
		content: "Sukuk are certificates representing ownership in an underlying asset or venture, often " +
			"described as Islamic bonds. Holders earn a share of the asset's income rather than interest. " +
			"Other Shariah-compliant investments include equity funds screened for prohibited industries and " +
			"leverage, and mudaraba-based investment accounts.",
		questions: []string{
			"How do sukuk differ from conventional bonds?",
			"What screening applies to Islamic equity funds?",
			"What are the risks of sukuk?",
		},
	},
}

// fallbackDefault answers anything no rule matched.
var fallbackDefault = fallbackRule{
	content: "I can help with questions about Islamic banking principles, financing structures, accounts, " +
		"and investments, and I can analyze documents you upload. Could you tell me a bit more about what " +
		"you are looking for?",
	questions: []string{
		"What are the core principles of Islamic banking?",
		"What financing options are available?",
		"How do Islamic savings accounts work?",
	},
}

// respondFallback is the deterministic chat responder used when no
// provider is configured or the provider call failed. It is a pure
// function of the history and scope.
func respondFallback(history []llm.Message, scope string) Result {
	question := strings.ToLower(lastUserQuestion(history))

	rule := fallbackDefault
	for _, r := range fallbackRules {
		if r.matches(question) {
			rule = r
			break
		}
	}

	content := rule.content
	if name, ok := scopeNames[scope]; ok {
		content = fmt.Sprintf("From the %s knowledge base: %s", name, content)
	}
	content += "\n\n" + fallbackDisclaimer

	return Result{Content: content, SuggestedQuestions: rule.questions}
}

const previewLimit = 100

const fallbackAnalysisNotes = `General observations:
- The document uses terminology common to banking and finance.
- Any product terms it describes should be reviewed for Shariah compliance.
- Figures and dates should be verified against the original source.`

var (
	titlePattern  = regexp.MustCompile(`(?i)(?:title|name)\s*[:\-]\s*([^\n.]+)`)
	authorPattern = regexp.MustCompile(`(?i)(?:author|prepared by|written by|by)\s*[:\-]\s*([^\n.]+)`)
	datePattern   = regexp.MustCompile(`\b\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}\b`)
)

// analyzeFallback is the document-path responder: a heuristic,
// pattern-based stand-in for real analysis.
func analyzeFallback(documentText, query string) string {
	if query == "" {
		return fmt.Sprintf("This document begins with: %q\n\n%s\n\n%s",
			truncate(documentText, previewLimit), fallbackAnalysisNotes, fallbackDisclaimer)
	}

	q := strings.ToLower(query)
	var finding string
	switch {
	case strings.Contains(q, "title") || strings.Contains(q, "name") || strings.Contains(q, "called"):
		if m := titlePattern.FindStringSubmatch(documentText); m != nil {
			finding = fmt.Sprintf("The document's title appears to be %q.", strings.TrimSpace(m[1]))
		} else {
			finding = "I could not identify a title in the document."
		}
	case strings.Contains(q, "author") || strings.Contains(q, "wrote") || strings.Contains(q, "written"):
		if m := authorPattern.FindStringSubmatch(documentText); m != nil {
			finding = fmt.Sprintf("The document appears to be authored by %s.", strings.TrimSpace(m[1]))
		} else {
			finding = "I could not identify an author in the document."
		}
	case strings.Contains(q, "date") || strings.Contains(q, "when") || strings.Contains(q, "published"):
		if m := datePattern.FindString(documentText); m != "" {
			finding = fmt.Sprintf("The document references the date %s.", m)
		} else {
			finding = "I could not identify a date in the document."
		}
	default:
		finding = fmt.Sprintf("Regarding %q: the document does not contain an answer I can extract without a full review.", query)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", finding, fallbackAnalysisNotes, fallbackDisclaimer)
}

// truncate limits text to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
