package notify

import (
	"fmt"
	"strings"

	"apteka_notify_backend/internal/orders/repository"
)

// maxDisplayProducts caps how many product lines go into one notification.
// The full list stays on the order; only the message is shortened.
const maxDisplayProducts = 5

// BuildMessage renders the notification body for one order: the configured
// template with {order_number} and {total} filled in, followed by the
// product list and the total amount when known.
func BuildMessage(template string, order *repository.Order) string {
	body := strings.ReplaceAll(template, "{order_number}", order.OrderNumber)
	body = strings.ReplaceAll(body, "{total}", fmt.Sprintf("%.0f", order.TotalClient))

	if block := productBlock(order.Products); block != "" {
		body += "\n\n" + block
	}
	if order.TotalClient > 0 {
		body += fmt.Sprintf("\n\nИтого: %.0f₽", order.TotalClient)
	}

	return body
}

func productBlock(products string) string {
	var lines []string
	for _, line := range strings.Split(products, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return ""
	}

	if len(lines) > maxDisplayProducts {
		rest := len(lines) - maxDisplayProducts
		lines = append(lines[:maxDisplayProducts], fmt.Sprintf("…и ещё %d", rest))
	}

	return strings.Join(lines, "\n")
}
