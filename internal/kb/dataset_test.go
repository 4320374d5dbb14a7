// File path: internal/kb/dataset_test.go
package kb

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDataset(t *testing.T) {
	data, err := LoadDataset(filepath.Join("testdata", "dataset.json"))
	if err != nil {
		t.Fatalf("load dataset: %v", err)
	}
	if len(data.Products) == 0 || len(data.FAQs) == 0 || len(data.Tickets) == 0 || len(data.Articles) == 0 {
		t.Fatalf("fixture dataset incomplete: %+v", data)
	}
	if data.Company.Name == "" {
		t.Fatalf("company profile missing")
	}
}

func TestLoadDatasetMissingFile(t *testing.T) {
	if _, err := LoadDataset(filepath.Join("testdata", "nope.json")); err == nil {
		t.Fatalf("expected an error for a missing dataset file")
	}
}

func TestValidateDuplicateProductName(t *testing.T) {
	data := testDataset()
	data.Products = append(data.Products, Product{Name: "nimbus core", Description: "duplicate"})
	err := data.Validate()
	if err == nil {
		t.Fatalf("expected duplicate product names to fail validation")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateMissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Dataset)
	}{
		{"product name", func(d *Dataset) { d.Products[0].Name = " " }},
		{"product description", func(d *Dataset) { d.Products[0].Description = "" }},
		{"faq question", func(d *Dataset) { d.FAQs[0].Question = "" }},
		{"faq answer", func(d *Dataset) { d.FAQs[0].Answer = "" }},
		{"ticket issue", func(d *Dataset) { d.Tickets[0].Issue = "" }},
		{"ticket status", func(d *Dataset) { d.Tickets[0].Status = "" }},
		{"article topic", func(d *Dataset) { d.Articles[0].Topic = "" }},
		{"article details", func(d *Dataset) { d.Articles[0].Details = "" }},
		{"company name", func(d *Dataset) { d.Company.Name = "" }},
		{"company founded", func(d *Dataset) { d.Company.Founded = 0 }},
	}
	for _, tc := range cases {
		data := testDataset()
		tc.mutate(data)
		if err := data.Validate(); err == nil {
			t.Fatalf("%s: expected validation failure", tc.name)
		}
	}
}
