package email

import (
	"fmt"
	"strings"
)

// BuildOrderConfirmationBody builds the HTML body for an order confirmation.
// Amounts are rendered in taka; delivery is always cash on delivery.
func BuildOrderConfirmationBody(c Confirmation) string {
	var itemsHTML strings.Builder
	for _, item := range c.Items {
		itemsHTML.WriteString(fmt.Sprintf(
			`<tr>
				<td style="padding: 12px; border-bottom: 1px solid #eee;">%s</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: center;">%d</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: right;">৳%s</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: right;">৳%s</td>
			</tr>`,
			item.Name,
			item.Quantity,
			formatTaka(item.UnitPrice),
			formatTaka(item.UnitPrice*float64(item.Quantity)),
		))
	}

	delivery := "FREE"
	if c.DeliveryCharge > 0 {
		delivery = "৳" + formatTaka(c.DeliveryCharge)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background: #1a7f5a; padding: 30px; border-radius: 10px 10px 0 0;">
		<h1 style="color: white; margin: 0; font-size: 24px;">Thank you for your order, %s!</h1>
	</div>

	<div style="background: #fff; padding: 30px; border: 1px solid #eee; border-top: none; border-radius: 0 0 10px 10px;">
		<p style="margin-top: 0;">Your order with %s has been received and is being processed.</p>
		<p style="color: #666;">Order ID: <strong>%s</strong></p>

		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background: #f8f8f8;">
					<th style="padding: 12px; text-align: left;">Item</th>
					<th style="padding: 12px; text-align: center;">Qty</th>
					<th style="padding: 12px; text-align: right;">Price</th>
					<th style="padding: 12px; text-align: right;">Total</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
		</table>

		<table style="width: 100%%; border-collapse: collapse;">
			<tr>
				<td style="padding: 6px 12px; text-align: right; color: #666;">Subtotal</td>
				<td style="padding: 6px 12px; text-align: right; width: 120px;">৳%s</td>
			</tr>
			<tr>
				<td style="padding: 6px 12px; text-align: right; color: #666;">Delivery</td>
				<td style="padding: 6px 12px; text-align: right;">%s</td>
			</tr>
			<tr>
				<td style="padding: 6px 12px; text-align: right; font-weight: bold; border-top: 2px solid #333;">Total (cash on delivery)</td>
				<td style="padding: 6px 12px; text-align: right; font-weight: bold; border-top: 2px solid #333;">৳%s</td>
			</tr>
		</table>

		<p style="color: #666; font-size: 14px; margin-bottom: 0;">
			Our delivery partner will call you on your phone number before delivery.
			Please keep the exact amount ready.
		</p>
	</div>
</body>
</html>`,
		c.CustomerName,
		c.BrandName,
		c.OrderID,
		itemsHTML.String(),
		formatTaka(c.Subtotal),
		delivery,
		formatTaka(c.Total),
	)
}

// formatTaka renders an amount with thousands separators, dropping the
// fraction when it is whole (prices in the catalogs are whole taka).
func formatTaka(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimSuffix(s, ".00")
	dot := strings.IndexByte(s, '.')
	intPart := s
	frac := ""
	if dot >= 0 {
		intPart, frac = s[:dot], s[dot:]
	}
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String() + frac
}
