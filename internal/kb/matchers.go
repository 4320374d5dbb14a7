// File path: internal/kb/matchers.go
package kb

import (
	"fmt"
	"strings"
)

// exactNameBonus rewards queries that contain a product name verbatim.
// The combined score is clamped so confidence stays within [0,1].
const exactNameBonus = 0.3

// companyTriggers gates the company matcher: without one of these words in
// the query the company profile is never scored.
var companyTriggers = []string{"company", "about", "organization", "business", "enterprise"}

// Thresholds carries the per-source minimum similarity scores. A matcher
// only returns an entry whose score strictly exceeds its threshold.
type Thresholds struct {
	Products float64 `json:"products"`
	FAQs     float64 `json:"faqs"`
	Tickets  float64 `json:"tickets"`
	Articles float64 `json:"articles"`
	Company  float64 `json:"company"`
}

// DefaultThresholds returns the tuned starting values.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Products: 0.4,
		FAQs:     0.6,
		Tickets:  0.6,
		Articles: 0.6,
		Company:  0.3,
	}
}

// Merge overlays positive values from the override onto the base thresholds.
func (t Thresholds) Merge(override Thresholds) Thresholds {
	result := t
	if override.Products > 0 {
		result.Products = override.Products
	}
	if override.FAQs > 0 {
		result.FAQs = override.FAQs
	}
	if override.Tickets > 0 {
		result.Tickets = override.Tickets
	}
	if override.Articles > 0 {
		result.Articles = override.Articles
	}
	if override.Company > 0 {
		result.Company = override.Company
	}
	return result
}

// Searcher scans an injected read-only dataset. It holds no mutable state,
// so a single instance is safe for concurrent use.
type Searcher struct {
	data       *Dataset
	thresholds Thresholds
}

// NewSearcher builds a Searcher over the dataset. A nil override keeps the
// default thresholds.
func NewSearcher(data *Dataset, cfg *Thresholds) *Searcher {
	thresholds := DefaultThresholds()
	if cfg != nil {
		thresholds = thresholds.Merge(*cfg)
	}
	return &Searcher{data: data, thresholds: thresholds}
}

// SearchProducts scans the product catalog. Each product is scored against
// both name and description, keeping the maximum, with a bonus when the
// query contains the product name verbatim.
func (s *Searcher) SearchProducts(query string) *MatchResult {
	q := normalizeQuery(query)
	if q == "" {
		return nil
	}
	var best *MatchResult
	bestScore := s.thresholds.Products
	for _, product := range s.data.Products {
		name := strings.ToLower(product.Name)
		score := Similarity(q, name)
		if descScore := Similarity(q, product.Description); descScore > score {
			score = descScore
		}
		if strings.Contains(q, name) {
			score += exactNameBonus
		}
		if score > 1 {
			score = 1
		}
		if score > bestScore {
			bestScore = score
			best = &MatchResult{
				Matched:    true,
				Response:   renderProduct(product),
				Source:     SourceProducts,
				Confidence: score,
			}
		}
	}
	return best
}

// SearchFAQs scores the query against each FAQ question.
func (s *Searcher) SearchFAQs(query string) *MatchResult {
	q := normalizeQuery(query)
	if q == "" {
		return nil
	}
	var best *MatchResult
	bestScore := s.thresholds.FAQs
	for _, faq := range s.data.FAQs {
		score := Similarity(q, faq.Question)
		if score > bestScore {
			bestScore = score
			best = &MatchResult{
				Matched:    true,
				Response:   renderFAQ(faq),
				Source:     SourceFAQs,
				Confidence: score,
			}
		}
	}
	return best
}

// SearchSupportTickets scores the query against resolved ticket issues.
// Tickets in any other status are never returned.
func (s *Searcher) SearchSupportTickets(query string) *MatchResult {
	q := normalizeQuery(query)
	if q == "" {
		return nil
	}
	var best *MatchResult
	bestScore := s.thresholds.Tickets
	for _, ticket := range s.data.Tickets {
		if ticket.Status != StatusResolved {
			continue
		}
		score := Similarity(q, ticket.Issue)
		if score > bestScore {
			bestScore = score
			best = &MatchResult{
				Matched:    true,
				Response:   renderTicket(ticket),
				Source:     SourceTickets,
				Confidence: score,
			}
		}
	}
	return best
}

// SearchEmployeeKB scores the query against article topics and details,
// keeping the maximum per article.
func (s *Searcher) SearchEmployeeKB(query string) *MatchResult {
	q := normalizeQuery(query)
	if q == "" {
		return nil
	}
	var best *MatchResult
	bestScore := s.thresholds.Articles
	for _, article := range s.data.Articles {
		score := Similarity(q, article.Topic)
		if detailScore := Similarity(q, article.Details); detailScore > score {
			score = detailScore
		}
		if score > bestScore {
			bestScore = score
			best = &MatchResult{
				Matched:    true,
				Response:   renderArticle(article),
				Source:     SourceEmployees,
				Confidence: score,
			}
		}
	}
	return best
}

// SearchCompanyInfo scores the query against the composed company profile.
// The matcher is keyword-gated: queries that never mention the company are
// skipped regardless of accidental similarity.
func (s *Searcher) SearchCompanyInfo(query string) *MatchResult {
	q := normalizeQuery(query)
	if q == "" {
		return nil
	}
	triggered := false
	for _, trigger := range companyTriggers {
		if strings.Contains(q, trigger) {
			triggered = true
			break
		}
	}
	if !triggered {
		return nil
	}
	profile := renderCompany(s.data.Company)
	score := Similarity(q, profile)
	if score <= s.thresholds.Company {
		return nil
	}
	return &MatchResult{
		Matched:    true,
		Response:   profile,
		Source:     SourceCompany,
		Confidence: score,
	}
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func renderProduct(product Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n\nFeatures:\n", product.Name, product.Description)
	for _, feature := range product.Features {
		fmt.Fprintf(&b, "• %s\n", feature)
	}
	fmt.Fprintf(&b, "\nPricing:\n• Basic: %s\n• Pro: %s\n• Enterprise: %s",
		product.Pricing.Basic, product.Pricing.Pro, product.Pricing.Enterprise)
	return b.String()
}

func renderFAQ(faq FAQ) string {
	return fmt.Sprintf("Question:\n%s\n\nAnswer:\n%s", faq.Question, faq.Answer)
}

func renderTicket(ticket SupportTicket) string {
	return fmt.Sprintf("Similar Issue Found:\nIssue: %s\nStatus: %s\nResolution: %s",
		ticket.Issue, ticket.Status, ticket.Resolution)
}

func renderArticle(article KnowledgeArticle) string {
	return fmt.Sprintf("%s:\n%s", article.Topic, article.Details)
}

func renderCompany(company CompanyProfile) string {
	return fmt.Sprintf("%s is a %s company founded in %d, headquartered in %s. We have %d employees and serve major clients including %s.",
		company.Name, company.Industry, company.Founded, company.Headquarters,
		company.Employees, clientSummary(company.Clients))
}

// clientSummary truncates the client list to the first five names.
func clientSummary(clients []string) string {
	const shown = 5
	if len(clients) <= shown {
		return strings.Join(clients, ", ")
	}
	return fmt.Sprintf("%s and %d more", strings.Join(clients[:shown], ", "), len(clients)-shown)
}
