package mailer

import (
	"fmt"
	"html"
	"strings"

	v1 "github.com/hauspet-lab/hauspet-intake/internal/api/v1"
)

// Bilingual (DE/EN) transactional templates. Kept as plain string building:
// the layouts are short and every interpolated value is escaped.

func orderNumberOf(sub *v1.Submission) string {
	if sub.OrderNumber == nil {
		return ""
	}
	return *sub.OrderNumber
}

func detailRow(label, value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf(`<p style="color: #666; margin: 5px 0;"><strong>%s:</strong> %s</p>`,
		html.EscapeString(label), html.EscapeString(value))
}

func earlyAccessConfirmation(sub *v1.Submission) *Message {
	name := html.EscapeString(sub.Name)
	details := detailRow("Name", sub.Name) +
		detailRow("Email", sub.Email) +
		detailRow("Telefon / Phone", sub.Phone) +
		detailRow("Haustierart / Pet Type", sub.PetType)

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
			<h1 style="color: #333;">🐾 HausPet</h1>
			<h2>Vielen Dank für Ihre Teilnahme am Early Access Programm!</h2>
			<p>Hallo %s,</p>
			<p>Wir freuen uns, Sie an Bord zu haben! Ihre Bewerbung wurde erhalten und unser Team wird sie in Kürze prüfen.</p>
			<div style="background: white; padding: 20px; border-left: 4px solid #667eea;">%s</div>
			<hr>
			<h2>Thank you for joining the HausPet Early Access Program!</h2>
			<p>Hello %s,</p>
			<p>We're excited to have you on board! Your application has been received and our team will review it shortly.</p>
			<p>Best regards,<br>The HausPet Team</p>
		</div>`, name, details, name)

	return &Message{
		To:      []string{sub.Email},
		Subject: "Willkommen beim HausPet Early Access Programm! / Welcome to HausPet Early Access Program! 🐾",
		HTML:    body,
	}
}

func earlyAccessAdminNotice(sub *v1.Submission, adminTo string) *Message {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
			<h1 style="color: #333;">New Early Access Application</h1>
			%s%s%s%s%s
		</div>`,
		detailRow("Name", sub.Name),
		detailRow("Email", sub.Email),
		detailRow("Phone", sub.Phone),
		detailRow("Pet Type", sub.PetType),
		detailRow("Message", sub.Message))

	return &Message{
		To:      []string{adminTo},
		Subject: "🐾 New Early Access Application - Neue Early Access Bewerbung",
		HTML:    body,
	}
}

func preOrderConfirmation(sub *v1.Submission) *Message {
	name := html.EscapeString(sub.Name)
	order := orderNumberOf(sub)
	details := detailRow("Bestellnummer / Order Number", order) +
		detailRow("Name", sub.Name) +
		detailRow("E-Mail", sub.Email)

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
			<h1 style="color: #333;">🐾 HausPet</h1>
			<h2>Vielen Dank für Ihre Vorbestellung!</h2>
			<p>Hallo %s,</p>
			<p>Ihre Vorbestellung wurde erfolgreich aufgenommen!</p>
			<div style="background: white; padding: 20px; border-left: 4px solid #667eea;">%s</div>
			<p>Best regards,<br>The HausPet Team</p>
		</div>`, name, details)

	return &Message{
		To:      []string{sub.Email},
		Subject: fmt.Sprintf("🎉 Vorbestellung bestätigt! / Pre-order confirmed! - %s", order),
		HTML:    body,
	}
}

func preOrderAdminNotice(sub *v1.Submission, adminTo string) *Message {
	order := orderNumberOf(sub)
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
			<h1 style="color: #333;">New Pre-Order Received</h1>
			%s%s%s%s%s%s%s%s%s
		</div>`,
		detailRow("Order Number", order),
		detailRow("Name", sub.Name),
		detailRow("Email", sub.Email),
		detailRow("Phone", sub.Phone),
		detailRow("Pet Type", sub.PetType),
		detailRow("Pet Name", sub.PetName),
		detailRow("Collar Size", sub.CollarSize),
		detailRow("Address", sub.Address),
		detailRow("Message", sub.Message))

	return &Message{
		To:      []string{adminTo},
		Subject: fmt.Sprintf("🐾 New Pre-Order - Neue Vorbestellung - %s", order),
		HTML:    body,
	}
}

// bulkEmail renders one campaign message. {name} in the body is replaced
// with the recipient's name before rendering.
func bulkEmail(user *v1.Submission, subject, message string) *Message {
	personalized := strings.ReplaceAll(message, "{name}", user.Name)
	bodyHTML := strings.ReplaceAll(html.EscapeString(personalized), "\n", "<br>")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
			<h1 style="color: #0ea5e9;">🐾 HausPet</h1>
			<div style="background-color: #f8fafc; padding: 20px; border-radius: 10px;">
				<h2 style="color: #334155;">%s</h2>
				<div style="color: #475569; line-height: 1.6;">%s</div>
			</div>
			<p style="color: #64748b; font-size: 14px;">Best regards,<br>The HausPet Team</p>
		</div>`, html.EscapeString(subject), bodyHTML)

	return &Message{
		To:      []string{user.Email},
		Subject: subject,
		HTML:    body,
	}
}
