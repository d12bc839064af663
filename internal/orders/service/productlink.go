package service

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var (
	titleSuffixRe = regexp.MustCompile(`(?i)\s*— купить в интернет-аптеке.*`)
	productSlugRe = regexp.MustCompile(`/product/([^/]+)`)
	slugHexIDRe   = regexp.MustCompile(`-[a-f0-9]{24}$`)
)

// ProductNameFromURL resolves a product page URL to a human-readable product
// name. It fetches the page and reads the h1, falls back to the page title
// with the storefront suffix stripped, and as a last resort reconstructs the
// name from the URL slug. Returns "" when nothing usable could be recovered.
func ProductNameFromURL(ctx context.Context, client *http.Client, url string) string {
	if name := fetchProductName(ctx, client, url); name != "" {
		return name
	}
	return productNameFromSlug(url)
}

func fetchProductName(ctx context.Context, client *http.Client, url string) string {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9,en-US;q=0.8,en;q=0.7")

	resp, err := client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return ""
	}

	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	return strings.TrimSpace(titleSuffixRe.ReplaceAllString(title, ""))
}

// productNameFromSlug rebuilds a name from the URL path, e.g.
// /product/aspirin-ekspress-500mg-n12-5e326620ca7680000109559c/ becomes
// "Aspirin ekspress 500mg n12".
func productNameFromSlug(url string) string {
	m := productSlugRe.FindStringSubmatch(url)
	if m == nil {
		return ""
	}

	slug := slugHexIDRe.ReplaceAllString(m[1], "")
	name := strings.TrimSpace(strings.ReplaceAll(slug, "-", " "))
	if name == "" {
		return ""
	}

	runes := []rune(name)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
