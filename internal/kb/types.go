// File path: internal/kb/types.go
package kb

// Source labels attached to match results so the UI can show where an
// answer came from.
const (
	SourceProducts  = "Product Catalog"
	SourceFAQs      = "FAQ Database"
	SourceTickets   = "Support History"
	SourceEmployees = "Employee Knowledge Base"
	SourceCompany   = "Company Information"
)

// StatusResolved marks support tickets eligible for matching.
const StatusResolved = "Resolved"

// Pricing holds the display prices for the three product tiers.
type Pricing struct {
	Basic      string `json:"basic"`
	Pro        string `json:"pro"`
	Enterprise string `json:"enterprise"`
}

// Product describes one catalog entry. Names are unique within a dataset.
type Product struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Pricing     Pricing  `json:"pricing"`
}

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type SupportTicket struct {
	Issue      string `json:"issue"`
	Resolution string `json:"resolution"`
	Status     string `json:"status"`
}

// KnowledgeArticle is an internal employee knowledge base entry.
type KnowledgeArticle struct {
	Topic   string `json:"topic"`
	Details string `json:"details"`
}

// CompanyProfile is the singleton company record.
type CompanyProfile struct {
	Name         string   `json:"name"`
	Industry     string   `json:"industry"`
	Headquarters string   `json:"headquarters"`
	Founded      int      `json:"founded"`
	Employees    int      `json:"employees"`
	Clients      []string `json:"clients"`
}

// Dataset bundles the reference collections consulted by the matchers. It is
// loaded once at startup and never mutated afterwards.
type Dataset struct {
	Products []Product          `json:"products"`
	FAQs     []FAQ              `json:"faqs"`
	Tickets  []SupportTicket    `json:"support_tickets"`
	Articles []KnowledgeArticle `json:"employee_knowledge_base"`
	Company  CompanyProfile     `json:"company"`
}

// MatchResult is produced fresh for every query. Matched false with zero
// confidence signals the caller to fall back to the generation service.
type MatchResult struct {
	Matched    bool    `json:"matched"`
	Response   string  `json:"response,omitempty"`
	Source     string  `json:"source,omitempty"`
	Confidence float64 `json:"confidence"`
}
