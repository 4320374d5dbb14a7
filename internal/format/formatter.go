// File path: internal/format/formatter.go
package format

import "strings"

// roleTemplate holds the fixed sections wrapped around unstructured text.
type roleTemplate struct {
	heading        string
	closingHeading string
	closingItems   []string
}

var roleTemplates = map[Role]roleTemplate{
	RoleTechnical: {
		heading:        "### Technical Overview",
		closingHeading: "### Additional Resources",
		closingItems: []string{
			"Review the API reference for integration details",
			"Check the system status page before retrying failed calls",
			"Contact support with trace IDs for unresolved errors",
		},
	},
	RoleBusiness: {
		heading:        "### Business Summary",
		closingHeading: "### Next Steps",
		closingItems: []string{
			"Map the recommendation to your current workflow",
			"Review pricing impact with your account manager",
			"Schedule a walkthrough with our solutions team",
		},
	},
	RoleCustomer: {
		heading:        "### Here to Help",
		closingHeading: "### Need More Help?",
		closingItems: []string{
			"Browse the help center for step-by-step guides",
			"Start a live chat for account-specific questions",
			"Reply here and I will keep troubleshooting with you",
		},
	},
}

// FormatResponse renders matched knowledge into the role template. Text that
// already carries structural markers (a heading or bullet) passes through
// unchanged, which makes the call idempotent. Unknown roles use the customer
// template.
func FormatResponse(text string, role Role, source string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return trimmed
	}
	if strings.Contains(trimmed, "###") || strings.Contains(trimmed, "•") {
		return trimmed
	}
	tmpl, ok := roleTemplates[role]
	if !ok {
		tmpl = roleTemplates[RoleCustomer]
	}
	var b strings.Builder
	b.WriteString(tmpl.heading)
	b.WriteString("\n\n")
	b.WriteString(stripBullets(trimmed))
	if source != "" {
		b.WriteString("\n\nSource: ")
		b.WriteString(source)
	}
	b.WriteString("\n\n")
	b.WriteString(tmpl.closingHeading)
	for _, item := range tmpl.closingItems {
		b.WriteString("\n• ")
		b.WriteString(item)
	}
	return b.String()
}

// stripBullets removes leading dash or asterisk markers from each line so the
// template owns the list styling.
func stripBullets(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		stripped := strings.TrimLeft(line, " \t")
		for _, marker := range []string{"- ", "* "} {
			if strings.HasPrefix(stripped, marker) {
				stripped = strings.TrimPrefix(stripped, marker)
				break
			}
		}
		lines[i] = stripped
	}
	return strings.Join(lines, "\n")
}
