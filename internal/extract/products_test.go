package extract

import (
	"strings"
	"testing"
)

const orderTableText = `Добрый день!
Ваш заказ собран.

Товар| Производитель| Кол-во| Цена для аптеки| Сумма для аптеки| Цена для клиента| Сумма для клиента| ШК
---|---|---|---|---|---|---|---
Карведилол Канон | ПроизводительX | 2 | 100 | 200 | 133,5 | 267 | 46001234567
Аспирин Кардио | Bayer | 1 | 250 | 250 | 299 | 299 | 46007654321
ИТОГО:| | | | 450| | 566|

С уважением, аптека`

func TestExtractProducts_ParsesTableRows(t *testing.T) {
	products := ExtractProducts(orderTableText)

	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d: %+v", len(products), products)
	}

	p := products[0]
	if p.Name != "Карведилол Канон" {
		t.Fatalf("expected name 'Карведилол Канон', got %q", p.Name)
	}
	if p.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", p.Quantity)
	}
	if p.PricePharmacy != 100 {
		t.Fatalf("expected pharmacy price 100, got %v", p.PricePharmacy)
	}
	if p.PriceClient != 133.5 {
		t.Fatalf("expected client price 133.5, got %v", p.PriceClient)
	}
	if p.TotalClient != 267 {
		t.Fatalf("expected client total 267, got %v", p.TotalClient)
	}
}

func TestExtractProducts_AllZeroPricesRejected(t *testing.T) {
	row := "Что-то странное | Завод | 3 | 0 | 0 | 0 | 0 | 123"
	if products := ExtractProducts(row); len(products) != 0 {
		t.Fatalf("expected rejection of zero-price row, got %+v", products)
	}
}

func TestExtractProducts_SinglePositivePriceAccepted(t *testing.T) {
	row := "Парацетамол | Завод | 1 | 0 | 0 | 55 | 0 | 123"
	products := ExtractProducts(row)
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %+v", products)
	}
	if products[0].PriceClient != 55 {
		t.Fatalf("expected client price 55, got %v", products[0].PriceClient)
	}
}

func TestExtractProducts_MalformedCellsGetDefaults(t *testing.T) {
	row := "Ибупрофен | Завод | много | не цена | | 1 234,50 | abc | 123"
	products := ExtractProducts(row)
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %+v", products)
	}
	p := products[0]
	if p.Quantity != 1 {
		t.Fatalf("expected default quantity 1, got %d", p.Quantity)
	}
	if p.PricePharmacy != 0 {
		t.Fatalf("expected default pharmacy price 0, got %v", p.PricePharmacy)
	}
	if p.PriceClient != 1234.5 {
		t.Fatalf("expected client price 1234.5 with comma and spaces handled, got %v", p.PriceClient)
	}
}

func TestExtractProducts_ShortNameAndProseSkipped(t *testing.T) {
	text := "اب | x | 1 | 5 | 5 | 5 | 5 | 1\nпросто текст без таблицы\nили | мало | колонок"
	if products := ExtractProducts(text); len(products) != 0 {
		t.Fatalf("expected nothing, got %+v", products)
	}
}

func TestExtractProducts_LongNameTruncated(t *testing.T) {
	name := strings.Repeat("а", 120)
	row := name + " | Завод | 1 | 10 | 10 | 12 | 12 | 1"
	products := ExtractProducts(row)
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %+v", products)
	}
	if got := len([]rune(products[0].Name)); got != 100 {
		t.Fatalf("expected name truncated to 100 runes, got %d", got)
	}
}

func TestExtractTotal_FromSummaryRow(t *testing.T) {
	pharmacy, client := ExtractTotal(orderTableText)
	if pharmacy != 450 {
		t.Fatalf("expected pharmacy total 450, got %v", pharmacy)
	}
	if client != 566 {
		t.Fatalf("expected client total 566, got %v", client)
	}
}

func TestExtractTotal_MissingRow(t *testing.T) {
	pharmacy, client := ExtractTotal("никаких итогов здесь нет")
	if pharmacy != 0 || client != 0 {
		t.Fatalf("expected zeros, got %v %v", pharmacy, client)
	}
}

func TestFormatProductsForNotification(t *testing.T) {
	products := []Product{
		{Name: "Карведилол Канон таблетки покрытые оболочкой", Quantity: 2, TotalClient: 267},
		{Name: "Аспирин", Quantity: 1, TotalClient: 299},
	}
	got := FormatProductsForNotification(products, 566)
	want := "• Карведилол Канон таблетки покр... x2 = 267₽\n• Аспирин x1 = 299₽\n\nИтого: 566₽"
	if got != want {
		t.Fatalf("unexpected notification body:\nwant: %q\ngot:  %q", want, got)
	}
}

func TestFormatProductsForNotification_Empty(t *testing.T) {
	if got := FormatProductsForNotification(nil, 100); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
