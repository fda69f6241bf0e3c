// Package network provides the HTTP clients remote animation sources are fetched with.
package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dotplay-cli/dotplay/constant"
	"github.com/dotplay-cli/dotplay/key"
	"github.com/spf13/viper"
)

// Client is the shared plain client.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}

// browser is shared so hosts remembered as HTTP/1.1 only stay remembered.
var browser = NewBrowserTransport()

// FromConfig returns a client honouring network.timeout and
// network.impersonate_browser.
func FromConfig() *http.Client {
	timeout := time.Duration(viper.GetInt(key.NetworkTimeout)) * time.Second
	if timeout <= 0 {
		timeout = time.Minute
	}

	if viper.GetBool(key.NetworkImpersonateBrowser) {
		return &http.Client{Timeout: timeout, Transport: browser}
	}
	return &http.Client{Timeout: timeout, Transport: Client.Transport}
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.URL, e.Status, http.StatusText(e.Status))
}

// Get fetches url and returns the body. Non-2xx statuses are a *StatusError.
func Get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", constant.UserAgent)
	}
	req.Header.Set("Accept", "application/json, application/zip, */*")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
