// Package source retrieves raw ELR mileage tables from the published
// text files and splits them into unparsed tabular form.
package source

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mikeqfu/railwaycodes-utils/mileage"
)

// DefaultBaseURL is the home of the published ELR mileage text files.
const DefaultBaseURL = "http://www.railwaycodes.org.uk/elrs"

// FetchError reports that the raw data for an ELR could not be
// obtained.
type FetchError struct {
	ELR string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch mileage table for %s: %v", e.ELR, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client fetches raw mileage tables over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given base URL; an empty base URL
// means DefaultBaseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchRawTable downloads and splits the raw mileage table for one
// ELR. The files are keyed by the ELR's initial, one tab-separated
// text file per ELR.
func (c *Client) FetchRawTable(elr string) (*mileage.RawTable, error) {
	if !mileage.IsELR(elr) {
		return nil, &FetchError{ELR: elr, Err: fmt.Errorf("not a valid ELR")}
	}
	url := fmt.Sprintf("%s/_mileages/%s/%s.txt", c.baseURL, strings.ToLower(elr[:1]), elr)
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, &FetchError{ELR: elr, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{ELR: elr, Err: fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{ELR: elr, Err: err}
	}
	raw, err := ParseRawText(elr, string(body))
	if err != nil {
		return nil, fmt.Errorf("mileage table for %s: %w", elr, err)
	}
	return raw, nil
}
