package extract

import "regexp"

// orderPatterns is an ordered priority list of labeled order-number shapes.
// Each pattern captures the identifier in group 1. Minimum digit counts keep
// incidental short numbers (house numbers, quantities) from matching.
var orderPatterns = []*regexp.Regexp{
	// Vendor-style codes: "заказ номер MA-280706178".
	regexp.MustCompile(`(?i)заказ\s+номер\s+([A-Z]{1,3}-?\d{6,15})`),
	// Bare vendor code anywhere, uppercase letters only.
	regexp.MustCompile(`\b([A-Z]{1,3}-\d{6,15})\b`),
	// Заказ №12345 / заказа #12345 / Заказ: 12345.
	regexp.MustCompile(`(?i)заказ[а-яё]*\s*[№#:\s]+(\d{4,15})`),
	// Ордер №12345.
	regexp.MustCompile(`(?i)ордер[а-яё]*\s*[№#:\s]+(\d{4,15})`),
	// Номер заказа: 12345.
	regexp.MustCompile(`(?i)номер\s+заказа[:\s]+(\d{4,15})`),
	// Order #12345.
	regexp.MustCompile(`(?i)order\s*[№#:\s]+(\d{4,15})`),
	// ID: 12345.
	regexp.MustCompile(`(?i)\bID[:\s]+(\d{4,15})\b`),
	// Bare № 12345 needs at least five digits.
	regexp.MustCompile(`№\s*(\d{5,15})`),
	// Заявка №12345.
	regexp.MustCompile(`(?i)заявк[а-яё]*\s*[№#:\s]+(\d{4,15})`),
}

// ExtractOrderNumber finds the first order identifier in text, by pattern
// priority. Returns false when nothing matched.
func ExtractOrderNumber(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	for _, pattern := range orderPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
	}

	return "", false
}

// ExtractAllOrderNumbers finds every distinct order identifier across all
// patterns. Order of the result is not significant.
func ExtractAllOrderNumbers(text string) []string {
	if text == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var orders []string

	for _, pattern := range orderPatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			if _, dup := seen[m[1]]; dup {
				continue
			}
			seen[m[1]] = struct{}{}
			orders = append(orders, m[1])
		}
	}

	return orders
}
