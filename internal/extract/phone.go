// Package extract implements the text-extraction core: phone numbers, order
// numbers, product tables and free-text product lists are pulled out of noisy
// Russian/English text coming from email bodies, attachments, chat messages
// and voice transcripts.
//
// All functions in this package are pure and never panic or return errors:
// a no-match outcome is reported as a zero value plus a false flag (or an
// empty slice) and is an expected, frequent result that callers branch on.
package extract

import (
	"regexp"
	"strings"
)

// phonePatterns is an ordered priority list: the first pattern that matches
// anywhere in the text wins, regardless of match position. More specific
// shapes come first.
var phonePatterns = []*regexp.Regexp{
	// 11 digits starting with +7, 8 or 7, digits separated by any amount of
	// spaces, dashes or parentheses.
	regexp.MustCompile(`(?:\+7|8|7)[\s\-()]*(?:\d[\s\-()]*){10}`),
	// 10 digits starting with 9 (mobile prefix, country code omitted),
	// bounded by word edges.
	regexp.MustCompile(`\b9[\s\-()]*(?:\d[\s\-()]*){9}\b`),
	// Strict grouped format: (+7|8) XXX XXX XX XX with conventional
	// separators. Kept last for group capture in ExtractAllPhones.
	regexp.MustCompile(`(?:\+7|8)\s*[(\-]?\s*(\d{3})\s*[)\-]?\s*(\d{3})\s*-?\s*(\d{2})\s*-?\s*(\d{2})`),
}

var nonDigitRe = regexp.MustCompile(`\D`)

// NormalizePhone normalizes a raw phone string to the +7XXXXXXXXXX form.
//
// Rules: strip all non-digits; 10 digits get a 7 prepended; 11 digits
// starting with 7 or 8 have the leading digit replaced with 7; 12 digits
// starting with 7 are kept. Anything else is returned unchanged, which
// callers must treat as an unnormalizable (invalid) value.
func NormalizePhone(raw string) string {
	digits := nonDigitRe.ReplaceAllString(raw, "")

	switch {
	case len(digits) == 10:
		return "+7" + digits
	case len(digits) == 11 && (digits[0] == '7' || digits[0] == '8'):
		return "+7" + digits[1:]
	case len(digits) == 12 && digits[0] == '7':
		return "+" + digits
	}

	return raw
}

// ExtractPhone finds the first phone number in text, by pattern priority,
// and returns it normalized. The second return value is false when no
// pattern matched.
func ExtractPhone(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	for _, pattern := range phonePatterns {
		if match := pattern.FindString(text); match != "" {
			return NormalizePhone(match), true
		}
	}

	return "", false
}

// phoneSpan returns the span of the first phone match in text, or ok=false.
// The voice splitter uses this to excise the phone from dictated input.
func phoneSpan(text string) (start, end int, ok bool) {
	for _, pattern := range phonePatterns {
		if loc := pattern.FindStringIndex(text); loc != nil {
			return loc[0], loc[1], true
		}
	}
	return 0, 0, false
}

// ExtractAllPhones finds every phone number in text across all patterns.
// Each match is normalized; only results of the canonical 12-character
// +7XXXXXXXXXX shape are kept, deduplicated. Order is not significant.
func ExtractAllPhones(text string) []string {
	if text == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var phones []string

	for _, pattern := range phonePatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			raw := match[0]
			if len(match) > 1 {
				// Grouped pattern: join captured digit groups.
				raw = strings.Join(match[1:], "")
			}

			normalized := NormalizePhone(raw)
			if len(normalized) != 12 || !strings.HasPrefix(normalized, "+7") {
				continue
			}
			if _, dup := seen[normalized]; dup {
				continue
			}
			seen[normalized] = struct{}{}
			phones = append(phones, normalized)
		}
	}

	return phones
}
