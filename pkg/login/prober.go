// Package login posts the panel login form for a provisioning ID.
package login

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/illumination-k/token-helper/pkg/provisioning"
)

const (
	// UserAgent identifies the tool to the panel.
	UserAgent = "Mozilla/5.0 (TokenUpdaterBot)"

	// MaxBodyLength is the number of characters of the response body kept.
	MaxBodyLength = 2000

	// TruncationMarker is appended to bodies longer than MaxBodyLength.
	TruncationMarker = "\n\n...[truncated]..."

	DefaultSection = "none"
	DefaultLocale  = "af_AF"
)

// Result is the outcome of a login probe.
type Result struct {
	Status  int
	Headers map[string]string
	Body    string
}

// Prober posts the login form.
type Prober struct {
	loginURL string
	client   *http.Client
	logger   *slog.Logger
}

// NewProber creates a Prober for loginURL.
//
// Certificate verification is disabled: the login endpoint is an internal
// development host with a self-signed certificate. No timeout is set.
func NewProber(loginURL string, logger *slog.Logger) *Prober {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: true, // #nosec G402 -- internal dev panel with self-signed certificate
	}
	return NewProberWithClient(loginURL, &http.Client{Transport: transport}, logger)
}

// NewProberWithClient creates a Prober with a custom HTTP client.
func NewProberWithClient(loginURL string, client *http.Client, logger *slog.Logger) *Prober {
	if logger == nil {
		logger = slog.Default()
	}
	return &Prober{
		loginURL: loginURL,
		client:   client,
		logger:   logger,
	}
}

// Probe posts the login form and returns status, headers and the truncated body.
// Empty section and locale fall back to DefaultSection and DefaultLocale.
func (p *Prober) Probe(ctx context.Context, id provisioning.ID, section, locale string) (*Result, error) {
	if section == "" {
		section = DefaultSection
	}
	if locale == "" {
		locale = DefaultLocale
	}

	form := url.Values{}
	form.Set("provisioningId", id.String())
	form.Set("dcdjwt", "")
	form.Set("section", section)
	form.Set("debug", "1")
	form.Set("hmr", "none")
	form.Set("console", "none")
	form.Set("locale", locale)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.loginURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	p.logger.Info("posting login form",
		"url", p.loginURL,
		"provisioning_id", id.String(),
		"section", section,
		"locale", locale)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("login failed: reading response: %w", err)
	}

	p.logger.Info("login form posted", "status", resp.StatusCode, "body_bytes", len(body))

	return &Result{
		Status:  resp.StatusCode,
		Headers: flattenHeaders(resp.Header),
		Body:    TruncateBody(decodeUTF8(body)),
	}, nil
}

// TruncateBody cuts body to MaxBodyLength characters and appends
// TruncationMarker. Bodies within the limit are returned unchanged.
func TruncateBody(body string) string {
	if utf8.RuneCountInString(body) <= MaxBodyLength {
		return body
	}
	runes := []rune(body)
	return string(runes[:MaxBodyLength]) + TruncationMarker
}

// decodeUTF8 replaces invalid UTF-8 sequences with U+FFFD.
func decodeUTF8(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}

// flattenHeaders joins repeated header values with ", ".
func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		out[name] = strings.Join(values, ", ")
	}
	return out
}

// Format renders the result as shown to the user: status, sorted headers and body.
func (r *Result) Format() string {
	names := make([]string, 0, len(r.Headers))
	for name := range r.Headers {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, name+": "+r.Headers[name])
	}

	return fmt.Sprintf("STATUS: %d\n\nHEADERS:\n%s\n\nBODY:\n%s", r.Status, strings.Join(lines, "\n"), r.Body)
}
