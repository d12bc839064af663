package mailintake

import (
	"fmt"
	"strconv"
	"strings"

	"apteka_notify_backend/internal/extract"
)

// EmailContent is one fetched email after MIME decoding: decoded subject and
// sender, the preferred text body, the raw HTML body when one was present,
// and the concatenated attachment texts.
type EmailContent struct {
	UID             int
	Subject         string
	Sender          string
	BodyText        string
	BodyHTML        string
	AttachmentsText string
}

// CombinedText is the subject, body and attachment texts joined for
// whole-message extraction.
func (e EmailContent) CombinedText() string {
	return e.Subject + "\n" + e.BodyText + "\n" + e.AttachmentsText
}

// OrderData is the extraction result for one email. Empty fields mean the
// corresponding value was not found; the caller decides whether the order is
// still worth recording.
type OrderData struct {
	OrderNumber   string
	Phone         string
	Products      []string
	TotalPharmacy float64
	TotalClient   float64
	Subject       string
}

// ProcessEmail extracts order data from one email. The vendor parser runs
// first against the HTML body; when it finds no phone, the generic phone
// extractor scans the combined text instead. Products likewise fall back to
// the pipe-table extractor when the vendor parser came up empty. The order
// number is always taken from the subject, with the combined text as a
// second chance.
func ProcessEmail(email EmailContent) OrderData {
	data := OrderData{Subject: email.Subject}

	vendor := ParseVendorEmail(email.BodyHTML)
	data.Phone = vendor.Phone
	data.Products = vendor.Products
	data.TotalClient = vendor.Total

	combined := email.CombinedText()

	if data.Phone == "" {
		if phone, ok := extract.ExtractPhone(combined); ok {
			data.Phone = phone
		}
	}

	if len(data.Products) == 0 {
		items := extract.ExtractProducts(combined)
		for _, item := range items {
			data.Products = append(data.Products, fmt.Sprintf("%s x%d", item.Name, item.Quantity))
		}
		totalPharmacy, totalClient := extract.ExtractTotal(combined)
		data.TotalPharmacy = totalPharmacy
		if totalClient > 0 {
			data.TotalClient = totalClient
		} else {
			for _, item := range items {
				data.TotalClient += item.TotalClient
			}
		}
	}

	if number, ok := extract.ExtractOrderNumber(email.Subject); ok {
		data.OrderNumber = number
	} else if number, ok := extract.ExtractOrderNumber(combined); ok {
		data.OrderNumber = number
	}

	return data
}

// parseAmount parses a decimal amount with optional embedded spaces,
// yielding 0 on any failure.
func parseAmount(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
