package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

func mustTemplate(name, text string) *template.Template {
	return template.Must(template.New(name).Parse(text))
}

// RunSummary holds the counters one notification run produces, used for the
// admin summary email and the end-of-run log line.
type RunSummary struct {
	LoansProcessed   int
	Notifications    int
	OverdueMarked    int
	OverdueNotices   int
	PenaltiesApplied int
	PenaltiesSkipped int
	PaymentReminders int
	DueDateReminders int
}

var summaryTmpl = mustTemplate("summary", `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Loan Payment Notifications Summary</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; font-size: 16px; line-height: 1.5; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #333; margin-bottom: 20px; font-size: 22px;">Loan Payment Notifications Summary</h2>

        <p style="margin-bottom: 15px;">Date: {{.Date}}</p>

        <div style="margin: 20px 0; padding: 15px; border-radius: 5px; background-color: #f0f0f0;">
            <p style="margin: 10px 0;"><strong>Total loans processed:</strong> {{.S.LoansProcessed}}</p>
            <p style="margin: 10px 0;"><strong>Successful notifications:</strong> {{.S.Notifications}}</p>
            <p style="margin: 10px 0;"><strong>Failed notifications:</strong> {{.Failed}}</p>
        </div>

        {{if .ShowOverdue}}<div style="margin: 20px 0; padding: 15px; border-radius: 5px; background-color: #f8d7da;">
            <h3 style="color: #721c24; margin-top: 0;">Overdue Loans</h3>
            <p style="margin: 10px 0;"><strong>Loans marked as overdue:</strong> {{.S.OverdueMarked}}</p>
            <p style="margin: 10px 0;"><strong>Overdue notifications sent:</strong> {{.S.OverdueNotices}}</p>
            {{if .ShowPenalties}}<p style="margin: 10px 0;"><strong>Penalties applied:</strong> {{.S.PenaltiesApplied}}</p>
            {{if .S.PenaltiesSkipped}}<p style="margin: 10px 0;"><strong>Penalties skipped (recent payments):</strong> {{.S.PenaltiesSkipped}}</p>{{end}}
            <p style="margin: 10px 0; color: #721c24;"><strong>Note:</strong> 10% penalty based on the total loan amount has been applied to overdue loans without sufficient payments.</p>{{end}}
        </div>{{end}}

        <p style="margin-top: 20px;">This is an automated notification from the loan payment notification system.</p>

        <div style="margin-top: 30px; font-size: 12px; color: #999; border-top: 1px solid #eee; padding-top: 15px;">
            <p style="margin: 5px 0;">&copy; {{.Year}} Loan Payment System</p>
        </div>
    </div>
</body>
</html>
`)

// AdminSummary renders the end-of-run report sent to the admin address.
func AdminSummary(s RunSummary, now time.Time) (string, error) {
	data := struct {
		S             RunSummary
		Date          string
		Failed        int
		ShowOverdue   bool
		ShowPenalties bool
		Year          int
	}{
		S:             s,
		Date:          now.Format("2006-01-02 15:04:05"),
		Failed:        s.LoansProcessed - s.Notifications,
		ShowOverdue:   s.OverdueMarked > 0 || s.OverdueNotices > 0 || s.PenaltiesApplied > 0 || s.PenaltiesSkipped > 0,
		ShowPenalties: s.PenaltiesApplied > 0 || s.PenaltiesSkipped > 0,
		Year:          now.Year(),
	}

	var buf bytes.Buffer
	if err := summaryTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render admin summary: %w", err)
	}
	return buf.String(), nil
}

// Alert renders the short admin-alert body used for fatal failures.
func Alert(message string) string {
	var buf bytes.Buffer
	alertTmpl.Execute(&buf, message)
	return buf.String()
}

var alertTmpl = mustTemplate("alert", `<p>{{.}}</p>`)
