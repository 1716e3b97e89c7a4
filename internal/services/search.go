package services

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// SearchTermsPlaceholder marks where the escaped terms go in a template.
const SearchTermsPlaceholder = "{searchTerms}"

// Errors returned by TemplateSearchEngine.
var (
	ErrNoPlaceholder = errors.New("search template has no " + SearchTermsPlaceholder + " placeholder")
	ErrEmptyTerms    = errors.New("empty search terms")
)

// TemplateSearchEngine builds submission URLs from an OpenSearch style
// template such as "https://duckduckgo.com/?q={searchTerms}".
type TemplateSearchEngine struct {
	name     string
	template string
}

// NewTemplateSearchEngine validates template and returns an engine.
func NewTemplateSearchEngine(name, template string) (*TemplateSearchEngine, error) {
	if !strings.Contains(template, SearchTermsPlaceholder) {
		return nil, fmt.Errorf("%s: %w", name, ErrNoPlaceholder)
	}
	probe := strings.ReplaceAll(template, SearchTermsPlaceholder, "x")
	u, err := url.Parse(probe)
	if err != nil {
		return nil, fmt.Errorf("%s: parse template: %w", name, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%s: template %q is not an absolute URL", name, template)
	}
	return &TemplateSearchEngine{name: name, template: template}, nil
}

// Name implements native.SearchEngine.
func (e *TemplateSearchEngine) Name() string { return e.name }

// SubmissionURL implements native.SearchEngine.
func (e *TemplateSearchEngine) SubmissionURL(terms string) (string, error) {
	terms = strings.TrimSpace(terms)
	if terms == "" {
		return "", ErrEmptyTerms
	}
	return strings.ReplaceAll(e.template, SearchTermsPlaceholder, url.QueryEscape(terms)), nil
}
