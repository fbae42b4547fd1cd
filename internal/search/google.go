package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const googleEndpoint = "https://www.googleapis.com/customsearch/v1"

// GoogleProvider resolves queries through the Google Custom Search API.
type GoogleProvider struct {
	apiKey   string
	cseID    string
	endpoint string
	http     *http.Client
}

// NewGoogleProvider creates a Google Custom Search provider.
func NewGoogleProvider(apiKey, cseID string) *GoogleProvider {
	return &GoogleProvider{
		apiKey:   apiKey,
		cseID:    cseID,
		endpoint: googleEndpoint,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

func (p *GoogleProvider) Name() string { return "Google" }

// googleItem is one item of the customsearch response.
type googleItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Snippet     string `json:"snippet"`
	DisplayLink string `json:"displayLink"`
}

type googleResponse struct {
	Items []googleItem `json:"items"`
}

func (p *GoogleProvider) Search(ctx context.Context, q Query) ([]Result, error) {
	u, err := url.Parse(p.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parsing endpoint: %w", err)
	}
	params := u.Query()
	params.Set("q", q.Text)
	params.Set("cx", p.cseID)
	params.Set("key", p.apiKey)
	params.Set("num", "10")
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := p.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google search returned status %d: %s", resp.StatusCode, string(body))
	}

	var decoded googleResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	results := make([]Result, 0, len(decoded.Items))
	for i, item := range decoded.Items {
		domainName := itemDomain(item)
		r := Result{
			ID:      fmt.Sprintf("google-%d-%s", i, nonEmpty(domainName, "result")),
			Name:    item.Title,
			Company: nonEmpty(domainName, item.DisplayLink),
			Bio:     item.Snippet,
			Website: item.Link,
			Source:  "Google",
			Type:    resultType(q.Type),
		}
		if q.Location != "" && q.Location != "all" {
			r.Location = q.Location
		}
		if q.Industry != "" && q.Industry != "all" {
			r.Industry = q.Industry
		}
		results = append(results, r)
	}
	return results, nil
}

func itemDomain(item googleItem) string {
	u, err := url.Parse(item.Link)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

func resultType(typ string) string {
	if typ == TypeInvestor {
		return TypeInvestor
	}
	return TypeStartup
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
