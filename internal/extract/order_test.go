package extract

import "testing"

func TestExtractOrderNumber_LabeledNumber(t *testing.T) {
	order, ok := ExtractOrderNumber("Ваш Заказ №1234567890 готов к выдаче в аптеке.")
	if !ok {
		t.Fatal("expected an order match")
	}
	if order != "1234567890" {
		t.Fatalf("expected 1234567890, got %q", order)
	}
}

func TestExtractOrderNumber_VendorCodeWinsOverBareNumber(t *testing.T) {
	order, ok := ExtractOrderNumber("№ 12345678 по заказу MA-123456789")
	if !ok {
		t.Fatal("expected an order match")
	}
	if order != "MA-123456789" {
		t.Fatalf("expected MA-123456789, got %q", order)
	}
}

func TestExtractOrderNumber_VendorPhraseFormat(t *testing.T) {
	order, ok := ExtractOrderNumber("Добрый день! Ваш заказ номер MA-280706178 собран.")
	if !ok {
		t.Fatal("expected an order match")
	}
	if order != "MA-280706178" {
		t.Fatalf("expected MA-280706178, got %q", order)
	}
}

func TestExtractOrderNumber_ShortNumberRejected(t *testing.T) {
	if order, ok := ExtractOrderNumber("Заказ №123"); ok {
		t.Fatalf("expected no match for 3-digit number, got %q", order)
	}
}

func TestExtractOrderNumber_BareNumberSignNeedsFiveDigits(t *testing.T) {
	if order, ok := ExtractOrderNumber("кабинет № 1234"); ok {
		t.Fatalf("expected no match for 4-digit bare number, got %q", order)
	}
	order, ok := ExtractOrderNumber("№ 12345")
	if !ok {
		t.Fatal("expected a match for 5-digit bare number")
	}
	if order != "12345" {
		t.Fatalf("expected 12345, got %q", order)
	}
}

func TestExtractOrderNumber_EnglishAndIDForms(t *testing.T) {
	order, ok := ExtractOrderNumber("Order #445566")
	if !ok || order != "445566" {
		t.Fatalf("expected 445566, got %q ok=%v", order, ok)
	}
	order, ok = ExtractOrderNumber("ID: 99887766")
	if !ok || order != "99887766" {
		t.Fatalf("expected 99887766, got %q ok=%v", order, ok)
	}
}

func TestExtractOrderNumber_Empty(t *testing.T) {
	if _, ok := ExtractOrderNumber(""); ok {
		t.Fatal("expected no match on empty input")
	}
}

func TestExtractAllOrderNumbers_Deduplicates(t *testing.T) {
	text := "Заказ №4455667: заявка №4455667, ордер №778899"
	orders := ExtractAllOrderNumbers(text)
	if len(orders) != 2 {
		t.Fatalf("expected 2 order numbers, got %v", orders)
	}
}
