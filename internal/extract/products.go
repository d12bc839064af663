package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Product is a single line item parsed out of a vendor order table.
type Product struct {
	Name          string
	Quantity      int
	PricePharmacy float64
	PriceClient   float64
	TotalClient   float64
}

const maxProductNameLen = 100

// ExtractProducts parses pipe-delimited table rows out of text. Columns:
// name | manufacturer | quantity | pharmacy unit price | pharmacy line
// total | client unit price | client line total | barcode. Rows are accepted
// only when at least one price field is positive, which filters out header
// and prose lines that happen to contain pipes.
func ExtractProducts(text string) []Product {
	var products []Product

	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, "|") {
			continue
		}
		// Header row.
		if strings.Contains(line, "Товар") && strings.Contains(line, "Производитель") {
			continue
		}
		// Markdown-style divider rows.
		if strings.HasPrefix(strings.TrimSpace(line), "---") {
			continue
		}
		// Summary row is handled by ExtractTotal.
		if strings.Contains(strings.ToUpper(line), "ИТОГО") {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) < 7 {
			continue
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		name := parts[0]
		if len([]rune(name)) < 3 {
			continue
		}
		if runes := []rune(name); len(runes) > maxProductNameLen {
			name = string(runes[:maxProductNameLen])
		}

		p := Product{
			Name:          name,
			Quantity:      parseQuantity(parts[2]),
			PricePharmacy: parsePrice(parts[3]),
			PriceClient:   parsePrice(parts[5]),
			TotalClient:   parsePrice(parts[6]),
		}
		if p.PricePharmacy > 0 || p.PriceClient > 0 || p.TotalClient > 0 {
			products = append(products, p)
		}
	}

	return products
}

// parseQuantity parses a table quantity cell, defaulting to 1 when the cell
// is not a plain digit string. The default is contractual: a malformed
// quantity must never drop the row.
func parseQuantity(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

// parsePrice parses a price cell with comma as decimal separator and
// optional thousands spaces, defaulting to 0 on any failure.
func parsePrice(s string) float64 {
	s = strings.ReplaceAll(strings.ReplaceAll(s, ",", "."), " ", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// Summary row: ИТОГО:| | | | 1105,07| | 1199|
var totalRe = regexp.MustCompile(`(?i)ИТОГО[:\s|]+[\d\s,.|]*?([\d,]+)[^\d]*([\d,]+)`)

// ExtractTotal finds the order totals row and returns (pharmacy total,
// client total), both 0 when no summary row is present.
func ExtractTotal(text string) (totalPharmacy, totalClient float64) {
	m := totalRe.FindStringSubmatch(text)
	if m == nil {
		return 0, 0
	}
	return parsePrice(m[1]), parsePrice(m[2])
}

// FormatProductsForNotification renders the product list as message body
// text: one bulleted line per item with the name shortened to 30 runes,
// followed by the grand total. Empty input yields an empty string.
func FormatProductsForNotification(products []Product, total float64) string {
	if len(products) == 0 {
		return ""
	}

	var b strings.Builder
	for _, p := range products {
		name := p.Name
		if runes := []rune(name); len(runes) > 30 {
			name = string(runes[:30]) + "..."
		}
		fmt.Fprintf(&b, "• %s x%d = %.0f₽\n", name, p.Quantity, p.TotalClient)
	}
	fmt.Fprintf(&b, "\nИтого: %.0f₽", total)

	return b.String()
}
