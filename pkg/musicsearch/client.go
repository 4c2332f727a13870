// Package musicsearch wraps the iTunes Search API for track autocomplete.
package musicsearch

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseURL = "https://itunes.apple.com"

// MinQueryLength mirrors the autocomplete behavior: shorter queries return no
// results without hitting the upstream API.
const MinQueryLength = 2

type Result struct {
	Artist string `json:"artist"`
	Track  string `json:"track"`
}

type itunesItem struct {
	ArtistName string `json:"artistName"`
	TrackName  string `json:"trackName"`
}

type itunesResponse struct {
	Results []itunesItem `json:"results"`
}

type Client struct {
	http *resty.Client
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(5 * time.Second).
		SetHeader("Accept", "application/json")
	return &Client{http: c}
}

func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	if len(query) < MinQueryLength {
		return []Result{}, nil
	}

	var body itunesResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"term":    query,
			"entity":  "song",
			"limit":   "8",
			"country": "US",
		}).
		SetResult(&body).
		ForceContentType("application/json"). // iTunes answers with text/javascript
		Get("/search")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("itunes search: status %d", resp.StatusCode())
	}

	results := make([]Result, 0, len(body.Results))
	for _, item := range body.Results {
		results = append(results, Result{Artist: item.ArtistName, Track: item.TrackName})
	}
	return results, nil
}
