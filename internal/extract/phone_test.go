package extract

import "testing"

func TestNormalizePhone_TenDigitsGetsCountryCode(t *testing.T) {
	if got := NormalizePhone("9991234567"); got != "+79991234567" {
		t.Fatalf("expected +79991234567, got %q", got)
	}
}

func TestNormalizePhone_ElevenDigitsLeadingReplaced(t *testing.T) {
	if got := NormalizePhone("89991234567"); got != "+79991234567" {
		t.Fatalf("expected +79991234567, got %q", got)
	}
	if got := NormalizePhone("79991234567"); got != "+79991234567" {
		t.Fatalf("expected +79991234567, got %q", got)
	}
}

func TestNormalizePhone_TwelveDigitsWithCountryCodeKept(t *testing.T) {
	if got := NormalizePhone("+7 (999) 123-45-67"); got != "+79991234567" {
		t.Fatalf("expected +79991234567, got %q", got)
	}
}

func TestNormalizePhone_UnrecognizedShapeReturnedUnchanged(t *testing.T) {
	for _, raw := range []string{"123", "12345678901234", ""} {
		if got := NormalizePhone(raw); got != raw {
			t.Fatalf("expected %q unchanged, got %q", raw, got)
		}
	}
}

func TestExtractPhone_EmptyInput(t *testing.T) {
	if _, ok := ExtractPhone(""); ok {
		t.Fatal("expected no phone in empty input")
	}
}

func TestExtractPhone_SpaceSeparatedDigits(t *testing.T) {
	phone, ok := ExtractPhone("8 999 123 45 67")
	if !ok {
		t.Fatal("expected a phone match")
	}
	if phone != "+79991234567" {
		t.Fatalf("expected +79991234567, got %q", phone)
	}
}

func TestExtractPhone_GroupedFormatInsideSentence(t *testing.T) {
	text := "Ваш Заказ №1234567890 готов к выдаче в аптеке. Контактный телефон: +7 (926) 555-12-34"
	phone, ok := ExtractPhone(text)
	if !ok {
		t.Fatal("expected a phone match")
	}
	if phone != "+79265551234" {
		t.Fatalf("expected +79265551234, got %q", phone)
	}
}

func TestExtractPhone_IdempotentOnOwnOutput(t *testing.T) {
	phone, ok := ExtractPhone("позвонить на 89261112233")
	if !ok {
		t.Fatal("expected a phone match")
	}
	again, ok := ExtractPhone(phone)
	if !ok {
		t.Fatal("expected normalized output to match again")
	}
	if again != phone {
		t.Fatalf("re-extraction changed value: %q then %q", phone, again)
	}
}

func TestExtractAllPhones_DeduplicatesAndFiltersMalformed(t *testing.T) {
	text := "офис 84951234567, менеджер +7 (926) 555-12-34, дубль 8 926 555 12 34, добавочный 123"
	phones := ExtractAllPhones(text)

	if len(phones) != 2 {
		t.Fatalf("expected 2 phones, got %d: %v", len(phones), phones)
	}
	seen := map[string]bool{}
	for _, p := range phones {
		seen[p] = true
	}
	if !seen["+74951234567"] || !seen["+79265551234"] {
		t.Fatalf("unexpected phone set: %v", phones)
	}
}

func TestExtractAllPhones_Empty(t *testing.T) {
	if got := ExtractAllPhones(""); len(got) != 0 {
		t.Fatalf("expected no phones, got %v", got)
	}
	if got := ExtractAllPhones("без номеров"); len(got) != 0 {
		t.Fatalf("expected no phones, got %v", got)
	}
}
