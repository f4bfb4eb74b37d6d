package text

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/FocuswithJustin/passage/core/errors"
	"github.com/FocuswithJustin/passage/core/passage"
	"github.com/FocuswithJustin/passage/internal/logging"
)

// DefaultESVBaseURL is the public ESV API endpoint.
const DefaultESVBaseURL = "https://api.esv.org"

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 4 << 20

// ESV fetches plain text from the ESV API (v3 passage/text endpoint).
type ESV struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewESV returns an ESV source for the public endpoint.
func NewESV(apiKey string) *ESV {
	return &ESV{
		BaseURL: DefaultESVBaseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Name implements Source.
func (e *ESV) Name() string { return "esv" }

type esvResponse struct {
	Query     string   `json:"query"`
	Canonical string   `json:"canonical"`
	Passages  []string `json:"passages"`
	Detail    string   `json:"detail"`
}

// Fetch implements Source. The reference is sent in its full rendered form.
func (e *ESV) Fetch(ctx context.Context, p passage.Passage, opts Options) (string, error) {
	if e.APIKey == "" {
		return "", errors.NewValidation("api-key", "ESV API key is required")
	}
	ref := p.String()

	q := url.Values{}
	q.Set("q", ref)
	q.Set(KeyIncludeReferences, strconv.FormatBool(opts.IncludeReferences))
	q.Set("include-footnotes", "false")
	q.Set("include-headings", "false")
	q.Set("include-short-copyright", "false")
	endpoint := strings.TrimRight(e.BaseURL, "/") + "/v3/passage/text/?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", errors.Wrap(err, "building ESV request")
	}
	req.Header.Set("Authorization", "Token "+e.APIKey)
	req.Header.Set("Accept", "application/json")

	client := e.Client
	if client == nil {
		client = http.DefaultClient
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return "", errors.NewIO("fetch", ref, err)
	}
	defer resp.Body.Close()
	logging.TextFetch(ctx, e.Name(), ref, resp.StatusCode, time.Since(start))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", errors.NewIO("read", ref, err)
	}

	var out esvResponse
	if resp.StatusCode != http.StatusOK {
		_ = json.Unmarshal(body, &out)
		msg := out.Detail
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", errors.NewIO("fetch", ref, fmt.Errorf("ESV API status %d: %s", resp.StatusCode, msg))
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", errors.NewParse("ESV response", ref, err.Error())
	}
	if len(out.Passages) == 0 {
		return "", errors.NewNotFound("passage text", ref)
	}
	return strings.TrimSpace(strings.Join(out.Passages, "\n\n")), nil
}
