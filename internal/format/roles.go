// File path: internal/format/roles.go
package format

import "strings"

// Role selects which assistant persona answers a conversation.
type Role string

const (
	RoleTechnical Role = "technical"
	RoleBusiness  Role = "business"
	RoleCustomer  Role = "customer"
)

// RoleConfig describes one assistant persona: UI copy, prompt guidance for
// the generation service and the apology shown on upstream failures.
type RoleConfig struct {
	ID                Role     `json:"id"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	DefaultMessage    string   `json:"default_message"`
	ProcessingMessage string   `json:"processing_message"`
	Expertise         []string `json:"expertise"`
	PromptGuidance    string   `json:"-"`
	Apology           string   `json:"-"`
}

var roleConfigs = map[Role]RoleConfig{
	RoleBusiness: {
		ID:                RoleBusiness,
		Title:             "Business Support Specialist",
		Description:       "Expert in product features, pricing, and workflow optimization",
		DefaultMessage:    "How can I help optimize your business processes today?",
		ProcessingMessage: "Analyzing business requirements...",
		Expertise: []string{
			"Business process optimization",
			"Workflow management",
			"Resource planning",
			"Cost analysis",
			"Performance metrics",
		},
		PromptGuidance: "Structure the answer as Context, Analysis, Recommendation. " +
			"Use bullet points for key insights, cite business metrics where relevant and end with clear action items.",
		Apology: "I apologize, I could not complete the business analysis right now. Please try again in a moment or contact your account manager.",
	},
	RoleTechnical: {
		ID:                RoleTechnical,
		Title:             "Technical Support Engineer",
		Description:       "Specialized in integrations, APIs, and technical troubleshooting",
		DefaultMessage:    "How can I assist with your technical implementation or troubleshooting needs?",
		ProcessingMessage: "Analyzing technical specifications...",
		Expertise: []string{
			"System troubleshooting",
			"Performance optimization",
			"Security configuration",
			"Data integration",
			"API implementation",
		},
		PromptGuidance: "Structure the answer as Issue Analysis, Solution Steps, Technical Details, Prevention Tips. " +
			"Give precise step-by-step instructions and include configuration snippets when relevant.",
		Apology: "I apologize, something went wrong while processing the technical request. Please retry, and include any error output if the problem persists.",
	},
	RoleCustomer: {
		ID:                RoleCustomer,
		Title:             "Customer Support Representative",
		Description:       "Friendly assistance for general inquiries",
		DefaultMessage:    "How may I assist you with NimbusERP today?",
		ProcessingMessage: "Understanding your request...",
		Expertise: []string{
			"User guidance",
			"Feature explanation",
			"Basic troubleshooting",
			"Account management",
			"System navigation",
		},
		PromptGuidance: "Explain clearly in simple, jargon-free language with relevant examples and actionable recommendations. " +
			"Keep a friendly, patient tone.",
		Apology: "I'm sorry, I ran into a problem answering that. Please try again in a moment, and I'll be happy to help.",
	},
}

// roleOrder keeps listings stable for the UI.
var roleOrder = []Role{RoleBusiness, RoleTechnical, RoleCustomer}

// Roles returns every persona in display order.
func Roles() []RoleConfig {
	out := make([]RoleConfig, 0, len(roleOrder))
	for _, id := range roleOrder {
		out = append(out, roleConfigs[id])
	}
	return out
}

// ParseRole resolves a role identifier, falling back to the customer persona
// for empty input. Unknown identifiers are rejected.
func ParseRole(value string) (RoleConfig, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return roleConfigs[RoleCustomer], true
	}
	cfg, ok := roleConfigs[Role(trimmed)]
	return cfg, ok
}
