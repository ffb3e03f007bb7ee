// Package audit checks the item table against its images and the public
// item list. It backs the itemaudit command and is never used by the server.
package audit

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dom/deadlock-hub/internal/catalog"
	"github.com/dom/deadlock-hub/internal/domain"
	"golang.org/x/sync/errgroup"
)

// DefaultWikiSelector matches item names in the wiki's item navigation box.
const DefaultWikiSelector = ".navbox a[title]"

type Duplicate struct {
	Name string
	IDs  []int64
}

// Duplicates lists names shared by more than one id, sorted by name.
func Duplicates(cat *catalog.Catalog) []Duplicate {
	dups := cat.DuplicateNames()
	out := make([]Duplicate, 0, len(dups))
	for name, ids := range dups {
		out = append(out, Duplicate{Name: name, IDs: ids})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ImageCheck is the result of probing one item image.
type ImageCheck struct {
	Item   domain.ItemRecord
	URL    string
	Status int
	Err    error
}

func (c ImageCheck) OK() bool {
	return c.Err == nil && c.Status == http.StatusOK
}

// ProbeImages sends a HEAD request for every item image, at most
// concurrency at a time. Results keep catalog order.
func ProbeImages(ctx context.Context, client *http.Client, cat *catalog.Catalog, concurrency int) ([]ImageCheck, error) {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	items := cat.Items(catalog.ItemFilter{})
	results := make([]ImageCheck, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))
	for i, it := range items {
		results[i] = ImageCheck{Item: it, URL: cat.ItemImageURL(it)}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i].Status, results[i].Err = head(ctx, client, results[i].URL)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func head(ctx context.Context, client *http.Client, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

// FetchWikiNames downloads a wiki page and extracts the item names matched
// by selector.
func FetchWikiNames(ctx context.Context, client *http.Client, url, selector string) ([]string, error) {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "deadlock-hub-itemaudit/1.0")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
	}
	return ParseWikiNames(resp.Body, selector)
}

// ParseWikiNames extracts distinct, trimmed link titles in document order.
func ParseWikiNames(r io.Reader, selector string) ([]string, error) {
	if selector == "" {
		selector = DefaultWikiSelector
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var names []string
	seen := make(map[string]bool)
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		name, ok := s.Attr("title")
		if !ok || strings.TrimSpace(name) == "" {
			name = s.Text()
		}
		name = strings.TrimSpace(name)
		if name == "" || seen[strings.ToLower(name)] {
			return
		}
		seen[strings.ToLower(name)] = true
		names = append(names, name)
	})
	return names, nil
}

// MissingNames returns the names the catalog has no item for.
func MissingNames(cat *catalog.Catalog, names []string) []string {
	var out []string
	for _, n := range names {
		if !cat.HasItemName(n) {
			out = append(out, n)
		}
	}
	return out
}
