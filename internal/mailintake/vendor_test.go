package mailintake

import (
	"strings"
	"testing"
)

const vendorEmailHTML = `<html><body>
<p>Добрый день! Заказ собран.</p>
<p>Телефон клиента: 89261234455</p>
<table>
<tr><th>Товар</th><th>Кол-во</th><th>Сумма</th></tr>
<tr><td>Карведилол Канон таб. 25мг</td><td>2</td><td>267</td></tr>
<tr><td>Аспирин Кардио таб. 100мг</td><td>1</td><td>299</td></tr>
<tr><td>ИТОГО:</td><td></td><td>566</td></tr>
</table>
</body></html>`

func TestParseVendorEmail_PhoneProductsTotal(t *testing.T) {
	res := ParseVendorEmail(vendorEmailHTML)

	if res.Phone != "+79261234455" {
		t.Fatalf("expected phone +79261234455, got %q", res.Phone)
	}
	if len(res.Products) != 2 {
		t.Fatalf("expected 2 products, got %v", res.Products)
	}
	if res.Products[0] != "Карведилол Канон таб. 25мг" {
		t.Fatalf("unexpected first product: %q", res.Products[0])
	}
	if res.Total != 566 {
		t.Fatalf("expected total 566, got %v", res.Total)
	}
}

func TestParseVendorEmail_HeaderAndSummaryRowsSkipped(t *testing.T) {
	res := ParseVendorEmail(vendorEmailHTML)
	for _, p := range res.Products {
		upper := strings.ToUpper(p)
		if strings.Contains(upper, "ТОВАР") || strings.Contains(upper, "ИТОГО") {
			t.Fatalf("header or summary row leaked into products: %v", res.Products)
		}
	}
}

func TestParseVendorEmail_TextLineFallback(t *testing.T) {
	html := `<html><body>
<p>Телефон клиента: 9261234455</p>
<p>Пантенол Спрей аэрозоль 130 г</p>
<p>К оплате: 640</p>
</body></html>`

	res := ParseVendorEmail(html)

	if res.Phone != "+79261234455" {
		t.Fatalf("expected phone +79261234455, got %q", res.Phone)
	}
	if len(res.Products) != 1 || res.Products[0] != "Пантенол Спрей аэрозоль 130 г" {
		t.Fatalf("expected text-line product fallback, got %v", res.Products)
	}
	if res.Total != 640 {
		t.Fatalf("expected total 640, got %v", res.Total)
	}
}

func TestParseVendorEmail_NoPhoneNoTotal(t *testing.T) {
	res := ParseVendorEmail("<p>просто письмо без данных</p>")
	if res.Phone != "" || res.Total != 0 || len(res.Products) != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
}
