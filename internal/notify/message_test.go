package notify

import (
	"strings"
	"testing"

	"apteka_notify_backend/internal/orders/repository"
)

const testTemplate = "Ваш заказ №{order_number} готов к выдаче!"

func TestBuildMessage_TemplateAndProducts(t *testing.T) {
	order := &repository.Order{
		OrderNumber: "MA-280706178",
		Products:    "• Аспирин x2\n• Парацетамол x1",
		TotalClient: 566,
	}

	got := BuildMessage(testTemplate, order)
	want := "Ваш заказ №MA-280706178 готов к выдаче!\n\n• Аспирин x2\n• Парацетамол x1\n\nИтого: 566₽"
	if got != want {
		t.Fatalf("unexpected message:\nwant: %q\ngot:  %q", want, got)
	}
}

func TestBuildMessage_ProductListCappedAtFive(t *testing.T) {
	order := &repository.Order{
		OrderNumber: "1234567",
		Products:    "один\nдва\nтри\nчетыре\nпять\nшесть\nсемь",
	}

	got := BuildMessage(testTemplate, order)

	if strings.Contains(got, "шесть") || strings.Contains(got, "семь") {
		t.Fatalf("expected products beyond the cap to be hidden, got:\n%s", got)
	}
	if !strings.Contains(got, "…и ещё 2") {
		t.Fatalf("expected overflow notice, got:\n%s", got)
	}
}

func TestBuildMessage_NoProductsNoTotal(t *testing.T) {
	order := &repository.Order{OrderNumber: "7654321"}

	got := BuildMessage(testTemplate, order)
	if got != "Ваш заказ №7654321 готов к выдаче!" {
		t.Fatalf("expected bare template, got %q", got)
	}
}

func TestBuildMessage_TotalPlaceholder(t *testing.T) {
	order := &repository.Order{OrderNumber: "11223344", TotalClient: 1199.4}

	got := BuildMessage("Заказ {order_number} готов! Сумма: {total}р.", order)
	if !strings.HasPrefix(got, "Заказ 11223344 готов! Сумма: 1199р.") {
		t.Fatalf("expected total substituted, got %q", got)
	}
}
