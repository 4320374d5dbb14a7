// File path: internal/kb/dataset.go
package kb

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/nimbuserp/nimbus-assist/internal/common"
)

// LoadDataset reads and validates the bundled reference data file. A
// malformed dataset is a startup configuration error, so validation failures
// are returned rather than skipped.
func LoadDataset(path string) (*Dataset, error) {
	logger := common.Logger()
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	var data Dataset
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("validate dataset: %w", err)
	}
	logger.Info("kb: dataset loaded",
		"path", path,
		"products", len(data.Products),
		"faqs", len(data.FAQs),
		"tickets", len(data.Tickets),
		"articles", len(data.Articles))
	return &data, nil
}

// Validate checks every entry for the fields the matchers rely on.
func (d *Dataset) Validate() error {
	seen := make(map[string]struct{}, len(d.Products))
	for i, product := range d.Products {
		name := strings.TrimSpace(product.Name)
		if name == "" {
			return fmt.Errorf("product %d: name required", i)
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("product %q: duplicate name", product.Name)
		}
		seen[key] = struct{}{}
		if strings.TrimSpace(product.Description) == "" {
			return fmt.Errorf("product %q: description required", product.Name)
		}
	}
	for i, faq := range d.FAQs {
		if strings.TrimSpace(faq.Question) == "" {
			return fmt.Errorf("faq %d: question required", i)
		}
		if strings.TrimSpace(faq.Answer) == "" {
			return fmt.Errorf("faq %d: answer required", i)
		}
	}
	for i, ticket := range d.Tickets {
		if strings.TrimSpace(ticket.Issue) == "" {
			return fmt.Errorf("support ticket %d: issue required", i)
		}
		if strings.TrimSpace(ticket.Status) == "" {
			return fmt.Errorf("support ticket %d: status required", i)
		}
	}
	for i, article := range d.Articles {
		if strings.TrimSpace(article.Topic) == "" {
			return fmt.Errorf("knowledge article %d: topic required", i)
		}
		if strings.TrimSpace(article.Details) == "" {
			return fmt.Errorf("knowledge article %d: details required", i)
		}
	}
	if strings.TrimSpace(d.Company.Name) == "" {
		return fmt.Errorf("company: name required")
	}
	if strings.TrimSpace(d.Company.Industry) == "" {
		return fmt.Errorf("company: industry required")
	}
	if strings.TrimSpace(d.Company.Headquarters) == "" {
		return fmt.Errorf("company: headquarters required")
	}
	if d.Company.Founded <= 0 {
		return fmt.Errorf("company: founding year required")
	}
	if d.Company.Employees <= 0 {
		return fmt.Errorf("company: employee count required")
	}
	return nil
}
