package mailintake

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"apteka_notify_backend/internal/extract"
)

// VendorResult is what the vendor-specific parser recovered from a
// structured order email. Zero values mean the corresponding field was not
// found and the generic extractors should take over.
type VendorResult struct {
	Phone    string
	Products []string
	Total    float64
}

var (
	vendorPhoneRe  = regexp.MustCompile(`(?i)Телефон\s*клиента[:\s]*\+?([78]?\d{10})`)
	cyrillicWordRe = regexp.MustCompile(`[А-Яа-яЁё]{3,}`)
	productLineRe  = regexp.MustCompile(`(?i)[А-Яа-яЁё]{4,}.*\d+\s*(мл|мг|шт|г|таб|капс)`)
	vendorTotalRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)ИТОГО[:\s]*.*?(\d+(?:[,.]\d+)?)\s*(?:₽|руб|р\.?)?`),
		regexp.MustCompile(`(?i)Сумма для клиента[:\s]*(\d+(?:[,.]\d+)?)`),
		regexp.MustCompile(`(?i)К оплате[:\s]*(\d+(?:[,.]\d+)?)`),
		regexp.MustCompile(`(?i)Всего[:\s]*(\d+(?:[,.]\d+)?)\s*(?:₽|руб|р\.?)?`),
	}
	// Header and summary labels that disqualify a table row.
	vendorSkipWords = []string{"ТОВАР", "ИТОГО", "НАИМЕНОВАНИЕ", "НАЗВАНИЕ", "СУММА"}
)

// ParseVendorEmail parses a structured vendor order email (apteka.ru /
// Katren layout). The phone comes from the labeled client-phone field,
// products from table rows whose first cell reads like a drug name, and the
// total from an ordered list of labeled-amount patterns. Every miss is a
// zero value, never an error.
func ParseVendorEmail(htmlBody string) VendorResult {
	var res VendorResult
	if htmlBody == "" {
		return res
	}

	text := HTMLToText(htmlBody)

	if m := vendorPhoneRe.FindStringSubmatch(text); m != nil {
		res.Phone = extract.NormalizePhone(m[1])
	}

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody)); err == nil {
		res.Products = vendorTableProducts(doc)
	}
	if len(res.Products) == 0 {
		res.Products = vendorTextProducts(text)
	}

	for _, re := range vendorTotalRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if total := parseVendorAmount(m[1]); total > 0 {
			res.Total = total
			break
		}
	}

	return res
}

func vendorTableProducts(doc *goquery.Document) []string {
	var products []string
	seen := make(map[string]struct{})

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td,th")
		if cells.Length() < 2 {
			return
		}
		first := strings.TrimSpace(cells.First().Text())
		upper := strings.ToUpper(first)
		for _, w := range vendorSkipWords {
			if strings.Contains(upper, w) {
				return
			}
		}
		if !cyrillicWordRe.MatchString(first) || len([]rune(first)) <= 5 {
			return
		}

		name := truncateRunes(first, 100)
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		products = append(products, name)
	})

	return products
}

// vendorTextProducts is the degraded path for vendor emails without usable
// tables: lines that read like "name + amount + unit" are taken verbatim,
// capped at ten.
func vendorTextProducts(text string) []string {
	var products []string
	seen := make(map[string]struct{})

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		n := len([]rune(line))
		if n < 10 || n > 120 {
			continue
		}
		if !productLineRe.MatchString(line) {
			continue
		}

		name := truncateRunes(line, 100)
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		products = append(products, name)
		if len(products) >= 10 {
			break
		}
	}

	return products
}

func parseVendorAmount(s string) float64 {
	return parseAmount(strings.ReplaceAll(s, ",", "."))
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
