package mailintake

import (
	"strings"
	"testing"
)

func TestProcessEmail_VendorPathWins(t *testing.T) {
	email := EmailContent{
		Subject:  "Ваш заказ номер MA-280706178 собран",
		BodyText: "текстовая версия",
		BodyHTML: vendorEmailHTML,
	}

	data := ProcessEmail(email)

	if data.OrderNumber != "MA-280706178" {
		t.Fatalf("expected order from subject, got %q", data.OrderNumber)
	}
	if data.Phone != "+79261234455" {
		t.Fatalf("expected vendor phone, got %q", data.Phone)
	}
	if len(data.Products) != 2 {
		t.Fatalf("expected 2 vendor products, got %v", data.Products)
	}
	if data.TotalClient != 566 {
		t.Fatalf("expected vendor total 566, got %v", data.TotalClient)
	}
}

func TestProcessEmail_GenericFallbackWhenNoVendorPhone(t *testing.T) {
	email := EmailContent{
		Subject:  "Заказ №4455667 готов к выдаче",
		BodyText: "Контактный телефон: +7 (926) 555-12-34\nКарведилол Канон | Завод | 2 | 100 | 200 | 133,5 | 267 | 1\nИТОГО:| | | | 200| | 267|",
	}

	data := ProcessEmail(email)

	if data.Phone != "+79265551234" {
		t.Fatalf("expected generic phone extraction, got %q", data.Phone)
	}
	if data.OrderNumber != "4455667" {
		t.Fatalf("expected order 4455667, got %q", data.OrderNumber)
	}
	if len(data.Products) != 1 || !strings.HasPrefix(data.Products[0], "Карведилол Канон") {
		t.Fatalf("expected pipe-table product, got %v", data.Products)
	}
	if data.TotalPharmacy != 200 || data.TotalClient != 267 {
		t.Fatalf("expected totals 200/267, got %v/%v", data.TotalPharmacy, data.TotalClient)
	}
}

func TestProcessEmail_OrderNumberFromCombinedTextWhenSubjectSilent(t *testing.T) {
	email := EmailContent{
		Subject:  "Новое поступление",
		BodyText: "ваш заказ №99887766 можно забрать, телефон 89991234567",
	}

	data := ProcessEmail(email)

	if data.OrderNumber != "99887766" {
		t.Fatalf("expected order from body, got %q", data.OrderNumber)
	}
	if data.Phone != "+79991234567" {
		t.Fatalf("expected phone +79991234567, got %q", data.Phone)
	}
}

func TestProcessEmail_AttachmentTextParticipates(t *testing.T) {
	email := EmailContent{
		Subject:         "документы",
		AttachmentsText: "\n--- order.txt ---\nЗаказ №5544332, звонить 8 926 111 22 33",
	}

	data := ProcessEmail(email)

	if data.Phone != "+79261112233" {
		t.Fatalf("expected phone from attachment, got %q", data.Phone)
	}
	if data.OrderNumber != "5544332" {
		t.Fatalf("expected order from attachment, got %q", data.OrderNumber)
	}
}

func TestProcessEmail_EmptyEmail(t *testing.T) {
	data := ProcessEmail(EmailContent{})
	if data.Phone != "" || data.OrderNumber != "" || len(data.Products) != 0 {
		t.Fatalf("expected empty extraction, got %+v", data)
	}
}
