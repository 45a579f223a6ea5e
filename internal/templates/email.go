// Package templates renders the client-facing HTML emails: monthly
// statements, paid invoices, and the banner blocks prepended for reminders
// and overdue notices.
package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gunneryarms/loan-notifier/internal/billing"
	"github.com/gunneryarms/loan-notifier/internal/domain"
)

const (
	logoURL          = "https://web.gunneryguns.com/gunnery_logo.png"
	companyName      = "Gunnery Arms & Ammo"
	companyPhone     = "021 851 6548"
	fallbackItemName = "Firearm Loan"
)

// Money formats a decimal amount the way the statements display it:
// thousands-separated with two decimals, e.g. "12,500.00".
func Money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}

// StatementData is everything the statement/invoice template needs,
// pre-formatted.
type StatementData struct {
	Title             string
	ClientName        string
	Intro             string
	WeaponDescription string
	LoanAmount        string
	DepositAmount     string
	RemainingBalance  string
	DueDate           string
	PaymentAmount     string
	InvoiceNumber     string
	Breakdown         *BreakdownData
	Banner            template.HTML
	Year              int
}

// BreakdownData is the penalty breakdown block, present only when the loan
// carries accumulated penalties.
type BreakdownData struct {
	BasePayment string
	Penalties   string
	Surcharge   string
	Total       string
}

var statementTmpl = template.Must(template.New("statement").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        {{.Banner}}<div class="header" style="text-align: center; margin-bottom: 20px; padding-bottom: 10px;">
            <img src="` + logoURL + `" alt="` + companyName + `" style="max-width: 200px; height: auto;">
        </div>

        <p style="color: #555; margin-bottom: 15px;">Dear {{.ClientName}},</p>

        <p style="color: #555; margin-bottom: 15px;">{{.Intro}}</p>

        <div style="background-color: white; padding: 20px; border-radius: 8px; margin: 20px 0; border: 1px solid #eee;">
            <h3 style="color: #333; margin-top: 0; font-size: 18px;">Payment Plan:</h3>
            <div style="padding: 12px; color: #666; background-color: #f9f9f9; border-radius: 5px; margin-bottom: 10px;">
                <div style="font-weight: bold; margin-bottom: 5px;">Item</div>
                <div style="color: #333; font-size: 15px;">{{.WeaponDescription}}</div>
            </div>
        </div>

        <h3 style="color: #333; margin-top: 20px; font-size: 18px;">Payment Summary:</h3>
        <div style="display: block; margin-bottom: 20px;">
            <div style="padding: 12px; color: #666; background-color: #f9f9f9; border-radius: 5px; margin-bottom: 10px;">
                <div style="font-weight: bold; margin-bottom: 5px;">Total Loan Amount</div>
                <div style="color: #333; font-size: 15px;">R {{.LoanAmount}}</div>
            </div>
            <div style="padding: 12px; color: #666; background-color: #f9f9f9; border-radius: 5px; margin-bottom: 10px;">
                <div style="font-weight: bold; margin-bottom: 5px;">#1 Payment Made</div>
                <div style="color: #333; font-size: 15px;">R {{.DepositAmount}}</div>
            </div>
            <div style="padding: 12px; color: #666; background-color: #f9f9f9; border-radius: 5px; margin-bottom: 10px;">
                <div style="font-weight: bold; margin-bottom: 5px;">Remaining Balance</div>
                <div style="color: #333; font-size: 15px;">R {{.RemainingBalance}}</div>
            </div>
            <div style="padding: 12px; color: #666; background-color: #f9f9f9; border-radius: 5px; margin-bottom: 10px;">
                <div style="font-weight: bold; margin-bottom: 5px;">Payment Due Date</div>
                <div style="color: #333; font-size: 15px;">{{.DueDate}}</div>
            </div>
            <div style="padding: 12px; color: #666; background-color: #f9f9f9; border-radius: 5px; margin-bottom: 10px;">
                <div style="font-weight: bold; margin-bottom: 5px;">Payment Amount</div>
                <div style="color: #333; font-size: 15px;">R {{.PaymentAmount}}</div>
            </div>
            {{if .Breakdown}}<div style="padding: 12px; color: #666; background-color: #f9f9f9; border-radius: 5px; margin-bottom: 10px;">
                <div style="font-weight: bold; margin-bottom: 5px;">Payment Breakdown:</div>
                <div style="color: #333; font-size: 15px; margin-top: 8px;"><strong>Regular Payment:</strong> R {{.Breakdown.BasePayment}}</div>
                <div style="color: #333; font-size: 15px; margin-top: 5px;"><strong>Accumulated Penalties:</strong> R {{.Breakdown.Penalties}}</div>
                <div style="color: #333; font-size: 15px; margin-top: 5px;"><strong>Penalty Surcharge (10%):</strong> R {{.Breakdown.Surcharge}}</div>
                <div style="font-size: 15px; margin-top: 8px; font-weight: bold; color: #d9534f;">Total Due: R {{.Breakdown.Total}}</div>
            </div>{{end}}
        </div>

        <h3 style="color: #333; margin-top: 20px; font-size: 18px;">Bank Details:</h3>
        <div style="padding: 12px; color: #666; background-color: #f9f9f9; border-radius: 5px; margin-bottom: 10px;">
            <p style="margin: 5px 0;"><strong>Bank:</strong> Standard Bank-Helderberg</p>
            <p style="margin: 5px 0;"><strong>Account Type:</strong> BUSINESS CURRENT ACCOUNT</p>
            <p style="margin: 5px 0;"><strong>Account Number:</strong> 07 243 9351</p>
            <p style="margin: 5px 0;"><strong>Branch Code:</strong> 03-30-12</p>
            <p style="margin: 5px 0;"><strong>Reference:</strong> QUO{{.InvoiceNumber}}</p>
        </div>

        <div style="background-color: white; padding: 20px; border-radius: 8px; margin: 20px 0; border: 1px solid #eee;">
            <h3 style="color: #333; margin-top: 0; font-size: 18px;">Terms &amp; Conditions:</h3>
            <div style="padding: 12px; color: #666; background-color: #f9f9f9; border-radius: 5px; margin-bottom: 10px;">
                <p style="margin: 5px 0;">Please use your quote number as the payment reference (accounts@gunneryguns.com). Quotes are valid for 12 hours.</p>
                <p style="margin: 10px 0;">Firearms will be stored for a period of 12 months from date of sale, thereafter a storage fee of R190.00 per month applies. To refund a firearm (new or used) that is stored at Gunnery Arms &amp; Ammo from date of sale, 25% of the total purchase price will be deducted from the refundable amount.</p>
                <p style="margin: 10px 0;">Firearms purchased on payment plans will strictly be three months/90 days. Thereafter, a 10% penalty increase on the total amount will be applicable per month.</p>
                <p style="margin: 10px 0;">Shipping is at clients own risk.</p>
                <p style="margin: 10px 0;">Goods remain property of Gunnery Arms &amp; Ammo until paid in full. Thank you for the support!</p>
            </div>
        </div>

        <p style="color: #555; margin-top: 30px; margin-bottom: 15px;">Thank you,<br>` + companyName + `<br>Contact: ` + companyPhone + `</p>

        <div style="margin-top: 30px; font-size: 12px; color: #999; border-top: 1px solid #eee; padding-top: 15px;">
            <p style="margin: 5px 0;">This is an automated email. Please do not reply to this message.</p>
            <p style="margin: 5px 0;">&copy; {{.Year}} ` + companyName + `</p>
        </div>
    </div>
</body>
</html>
`))

// Statement renders the statement or paid-invoice email for a loan.
// isStatement selects the upcoming-payment wording; licence may be nil.
// banner, when non-empty, is prepended above the header.
func Statement(loan *domain.Loan, client *domain.Client, licence *domain.GunLicence, isStatement bool, banner template.HTML) (string, error) {
	due := billing.NormalizeDueDate(loan.PaymentDueDate)
	breakdown := billing.PaymentBreakdown(loan)

	var intro, title string
	if isStatement {
		intro = fmt.Sprintf("This is a notification regarding your upcoming loan payment due on %s.", due.Format("January 2, 2006"))
		title = "Gunnery Payment Due Quote: " + loan.InvoiceNumber
	} else {
		intro = "Thank you for your loan payments. This email contains your official invoice confirming the loan has been paid in full."
		title = "Gunnery Payment Confirmation: " + loan.InvoiceNumber
	}

	weapon := licence.Description()
	if weapon == "" {
		weapon = fallbackItemName
	}

	data := StatementData{
		Title:             title,
		ClientName:        client.FullName(),
		Intro:             intro,
		WeaponDescription: weapon,
		LoanAmount:        Money(loan.LoanAmount),
		DepositAmount:     Money(billing.DepositAmount(loan.WeaponCost, loan.LoanAmount)),
		RemainingBalance:  Money(loan.RemainingBalance),
		DueDate:           due.Format("January 2, 2006"),
		PaymentAmount:     Money(breakdown.Total),
		InvoiceNumber:     loan.InvoiceNumber,
		Banner:            banner,
		Year:              due.Year(),
	}
	if loan.HasPenalties() {
		data.Breakdown = &BreakdownData{
			BasePayment: Money(breakdown.BasePayment),
			Penalties:   Money(breakdown.Penalties),
			Surcharge:   Money(breakdown.Surcharge),
			Total:       Money(breakdown.Total),
		}
	}

	var buf bytes.Buffer
	if err := statementTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render statement for loan %s: %w", loan.InvoiceNumber, err)
	}
	return buf.String(), nil
}

var bannerTmpl = template.Must(template.New("banner").Parse(`<div style="background-color: {{.Color}}; color: white; padding: 10px; text-align: center; margin-bottom: 20px;">
    <h2 style="margin: 0;">{{.Heading}}</h2>
    {{range .Lines}}<p style="margin: 5px 0;">{{.}}</p>
    {{end}}</div>
`))

type bannerData struct {
	Color   string
	Heading string
	Lines   []string
}

func renderBanner(d bannerData) template.HTML {
	var buf bytes.Buffer
	if err := bannerTmpl.Execute(&buf, d); err != nil {
		return ""
	}
	return template.HTML(buf.String())
}

// PaymentInfoLine describes this month's payments against the required
// amount, reused across the overdue and due-date banners.
func PaymentInfoLine(paid, expected decimal.Decimal) string {
	switch {
	case paid.IsZero():
		return fmt.Sprintf("No payments were received this month. Required payment: R %s.", Money(expected))
	case paid.GreaterThanOrEqual(expected):
		return fmt.Sprintf("Your total payments this month (R %s) have met the required amount (R %s). Thank you for your payment!", Money(paid), Money(expected))
	default:
		return fmt.Sprintf("Your total payments this month (R %s) are less than the required amount (R %s). Please make an additional payment of R %s.",
			Money(paid), Money(expected), Money(expected.Sub(paid)))
	}
}

// OverdueBanner builds the red notice for overdue loans. When a penalty has
// already been applied it states the amount; otherwise it warns about the
// penalty coming on the 3rd.
func OverdueBanner(loan *domain.Loan, paid, expected decimal.Decimal) template.HTML {
	var paymentInfo string
	if paid.IsPositive() {
		paymentInfo = fmt.Sprintf("Your total payments this month (R %s) were less than the required amount (R %s).", Money(paid), Money(expected))
	} else {
		paymentInfo = fmt.Sprintf("No payments were received this month. Required payment: R %s.", Money(expected))
	}

	var penaltyLine string
	if loan.HasPenalties() {
		penaltyLine = fmt.Sprintf("A 10%% penalty (R %s) based on your total loan amount has been applied to your account.", Money(loan.Penalties))
	} else {
		penaltyLine = fmt.Sprintf("Please note: A 10%% penalty (R %s) based on your total loan amount will be applied if payment is not received by the 3rd of next month.",
			Money(billing.PenaltyAmount(loan.LoanAmount)))
	}

	return renderBanner(bannerData{
		Color:   "#d9534f",
		Heading: "OVERDUE PAYMENT NOTICE",
		Lines:   []string{penaltyLine, paymentInfo},
	})
}

// ReminderBanner builds the blue day-22 payment reminder.
func ReminderBanner(expected decimal.Decimal, dueDate time.Time) template.HTML {
	return renderBanner(bannerData{
		Color:   "#5bc0de",
		Heading: "PAYMENT REMINDER",
		Lines: []string{
			fmt.Sprintf("Your monthly payment of R %s is due on %s.", Money(expected), dueDate.Format("02 January 2006")),
			"Please ensure your payment is made on time to avoid overdue status and penalties.",
		},
	})
}

// DueDateBanner builds the day-28 warning; red when the payment is due
// within a day, amber otherwise.
func DueDateBanner(expected, paid decimal.Decimal, dueDate time.Time, daysUntilDue int) template.HTML {
	color := "#f0ad4e"
	heading := fmt.Sprintf("PAYMENT DUE IN %d DAYS", daysUntilDue)
	switch {
	case daysUntilDue <= 0:
		color = "#d9534f"
		heading = "URGENT: PAYMENT DUE TODAY"
	case daysUntilDue == 1:
		color = "#d9534f"
		heading = "URGENT: PAYMENT DUE TOMORROW"
	}

	return renderBanner(bannerData{
		Color:   color,
		Heading: heading,
		Lines: []string{
			fmt.Sprintf("Your monthly payment of R %s is due on %s.", Money(expected), dueDate.Format("02 January 2006")),
			PaymentInfoLine(paid, expected),
			"Please ensure your payment is made on time to avoid overdue status and penalties.",
		},
	})
}
