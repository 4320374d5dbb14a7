// File path: internal/llm/prompt.go
package llm

import (
	"fmt"
	"strings"

	"github.com/nimbuserp/nimbus-assist/internal/format"
)

// BuildPrompt assembles the persona-specific message sequence sent to the
// generation service when the knowledge base has no answer.
func BuildPrompt(query string, role format.RoleConfig) []Message {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a %s for NimbusERP, an AI assistant specializing in ERP systems and business solutions. %s.\n\n",
		role.Title, role.Description)
	b.WriteString("Context:\n")
	b.WriteString("- You have access to information about the NimbusERP system and its features\n")
	b.WriteString("- Provide detailed, professional responses in a clear, structured way\n")
	b.WriteString("- Include specific features and benefits when relevant\n")
	b.WriteString("- Maintain a professional, helpful tone\n\n")
	if role.PromptGuidance != "" {
		b.WriteString(role.PromptGuidance)
		b.WriteString("\n")
	}
	return []Message{
		{Role: "system", Content: b.String()},
		{Role: "user", Content: query},
	}
}
