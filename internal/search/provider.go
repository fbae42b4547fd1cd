// Package search resolves investor/startup discovery queries through a
// pluggable results provider: the real Google Custom Search integration when
// credentials are configured, a synthetic generator otherwise.
package search

import (
	"context"
	"strings"

	"github.com/ideacrafter/ideacrafter/internal/config"
	"github.com/ideacrafter/ideacrafter/internal/logger"
)

// Result types.
const (
	TypeInvestor = "investor"
	TypeStartup  = "startup"
)

// Query is a resolved search request. Text holds the final query string
// built by BuildQuery.
type Query struct {
	Text     string
	Type     string
	Industry string
	Location string
}

// Result is one discovery record, investor- or startup-shaped.
type Result struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Company         string `json:"company"`
	Title           string `json:"title,omitempty"`
	Location        string `json:"location,omitempty"`
	Industry        string `json:"industry,omitempty"`
	Bio             string `json:"bio"`
	Website         string `json:"website"`
	LinkedIn        string `json:"linkedin,omitempty"`
	Source          string `json:"source"`
	Type            string `json:"type"`
	InvestmentRange string `json:"investmentRange,omitempty"`
	PortfolioSize   int    `json:"portfolioSize,omitempty"`
	FundingStage    string `json:"fundingStage,omitempty"`
	FundingAmount   string `json:"fundingAmount,omitempty"`
	Employees       string `json:"employees,omitempty"`
	Founded         string `json:"founded,omitempty"`
}

// Provider resolves a query into results.
type Provider interface {
	Name() string
	Search(ctx context.Context, q Query) ([]Result, error)
}

// BuildQuery constructs the final query string: the user's text verbatim
// when present, otherwise a type-specific default enriched with industry and
// location.
func BuildQuery(text, typ, industry, location string) string {
	if t := strings.TrimSpace(text); t != "" {
		return t
	}
	var b strings.Builder
	if typ == TypeInvestor {
		b.WriteString("venture capital investors")
	} else {
		b.WriteString("tech startups")
	}
	if industry != "" && industry != "all" {
		b.WriteString(" " + strings.ReplaceAll(industry, "-", " "))
	}
	if location != "" && location != "all" {
		b.WriteString(" " + location)
	}
	if typ == TypeInvestor {
		b.WriteString(" portfolio companies funding")
	} else {
		b.WriteString(" funding series seed")
	}
	return b.String()
}

// fallbackProvider tries the primary and degrades to the fallback when the
// primary fails at request time.
type fallbackProvider struct {
	primary  Provider
	fallback Provider
}

func (p *fallbackProvider) Name() string { return p.primary.Name() }

func (p *fallbackProvider) Search(ctx context.Context, q Query) ([]Result, error) {
	results, err := p.primary.Search(ctx, q)
	if err != nil {
		logger.L.Warn("primary search provider failed, using fallback", "provider", p.primary.Name(), "error", err)
		return p.fallback.Search(ctx, q)
	}
	return results, nil
}

// WithFallback wraps a provider with a fallback.
func WithFallback(primary, fallback Provider) Provider {
	return &fallbackProvider{primary: primary, fallback: fallback}
}

// Select picks the provider for the given configuration: Google backed by
// the synthetic generator when credentials are present, synthetic alone
// otherwise.
func Select(cfg config.SearchConfig) Provider {
	synthetic := NewSyntheticProvider()
	if cfg.GoogleAPIKey != "" && cfg.GoogleCSEID != "" {
		return WithFallback(NewGoogleProvider(cfg.GoogleAPIKey, cfg.GoogleCSEID), synthetic)
	}
	return synthetic
}
