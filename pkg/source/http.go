package source

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/matzehuels/heatcal/pkg/errors"
	"github.com/matzehuels/heatcal/pkg/httputil"
)

// HTTP fetches a JSON series document per year. "{year}" in the URL is
// replaced by the requested year.
type HTTP struct {
	name    string
	url     string
	client  *httputil.Client
	refresh bool
}

// NewHTTP returns a dataset fetching url through client. With refresh set
// the cache is bypassed.
func NewHTTP(name, url string, client *httputil.Client, refresh bool) *HTTP {
	return &HTTP{name: name, url: url, client: client, refresh: refresh}
}

func (h *HTTP) Name() string { return h.name }

// URL returns the endpoint for year.
func (h *HTTP) URL(year int) string {
	return strings.ReplaceAll(h.url, "{year}", strconv.Itoa(year))
}

// Fetch implements Dataset.
func (h *HTTP) Fetch(ctx context.Context, year int) (Series, error) {
	url := h.URL(year)
	body, err := h.client.Fetch(ctx, url, h.refresh)
	if err != nil {
		code := errors.GetCode(err)
		if code == "" {
			code = errors.ErrCodeNetwork
		}
		return nil, errors.Wrap(code, err, "dataset %q", h.name)
	}
	var doc document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "dataset %q: decode %s", h.name, url)
	}
	return doc.series(year, url)
}
