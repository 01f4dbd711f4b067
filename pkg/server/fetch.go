package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tileforge/vtpost/internal/tilecoord"
)

// HTTPFetcher retrieves an encoded tile from an upstream HTTP tile server
// by substituting {z}/{x}/{y} into a URL template. Generic HTTP retrieval
// has no dedicated library anywhere in the example pool (every pack repo
// either uses net/http directly or layers a domain-specific client on top
// of it), so this is the one stdlib-only collaborator in the server
// surface.
type HTTPFetcher struct {
	Client      *http.Client
	URLTemplate string // e.g. "https://tiles.example.com/{z}/{x}/{y}.mvt"
}

func (f *HTTPFetcher) Fetch(coord tilecoord.Coord) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	url := expandTemplate(f.URLTemplate, coord)

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func expandTemplate(tmpl string, c tilecoord.Coord) string {
	r := strings.NewReplacer(
		"{z}", fmt.Sprint(c.Z),
		"{x}", fmt.Sprint(c.X),
		"{y}", fmt.Sprint(c.Y),
	)
	return r.Replace(tmpl)
}

var _ Fetcher = (*HTTPFetcher)(nil)
