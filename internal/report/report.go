package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/trucred/score-service/internal/models"
)

// Validity of a verified report.
const validityMonths = 6

// BuildHTML renders the verified trust score report as a standalone HTML
// document, used as the body of the report email. The assessment must carry
// a computed score.
func BuildHTML(a *models.Assessment) (string, error) {
	if a.Score == nil {
		return "", fmt.Errorf("assessment %s has no computed score", a.ID)
	}

	doc := etree.NewDocument()
	html := doc.CreateElement("html")

	head := html.CreateElement("head")
	meta := head.CreateElement("meta")
	meta.CreateAttr("charset", "utf-8")
	head.CreateElement("title").SetText("Your TruCred Financial Report")

	body := html.CreateElement("body")

	header := body.CreateElement("div")
	header.CreateAttr("class", "header")
	header.CreateElement("h1").SetText("TruCred Financial Report")
	header.CreateElement("p").SetText("Your Alternative Credit Score Assessment")

	content := body.CreateElement("div")
	content.CreateAttr("class", "content")
	content.CreateElement("h2").SetText(fmt.Sprintf("Hello %s,", a.Name))
	content.CreateElement("p").SetText(
		"Your financial assessment has been completed and verified by our team. " +
			"Your TruCred report is now ready for use.")

	scoreSection := content.CreateElement("div")
	scoreSection.CreateAttr("class", "score-section")
	scoreSection.CreateElement("h3").SetText("Your Trust Score")
	badge := scoreSection.CreateElement("div")
	badge.CreateAttr("class", "score-badge")
	badge.SetText(fmt.Sprintf("%d/100 (Grade %s)", a.Score.Total, a.Score.Grade))
	scoreSection.CreateElement("p").SetText(remarkFor(a.Score.Total))

	content.CreateElement("h3").SetText("Score Breakdown")
	table := content.CreateElement("table")
	addComponentRow(table, "Recurring Payments", a.Score.Components.RecurringPayments, 30)
	addComponentRow(table, "Mobile Recharge", a.Score.Components.MobileRecharge, 20)
	addComponentRow(table, "Utility Bill", a.Score.Components.UtilityBill, 15)
	addComponentRow(table, "UPI Consistency", a.Score.Components.UpiConsistency, 20)
	addComponentRow(table, "Reference Feedback", a.Score.Components.ReferenceFeedback, 15)

	if len(a.Score.Recommendations) > 0 {
		content.CreateElement("h3").SetText("Recommendations")
		list := content.CreateElement("ul")
		for _, rec := range a.Score.Recommendations {
			list.CreateElement("li").SetText(rec)
		}
	}

	reportMeta := content.CreateElement("div")
	reportMeta.CreateAttr("class", "report-meta")
	reportMeta.CreateElement("p").SetText("Valid until: " + validUntil(a).Format("January 2, 2006"))
	reportMeta.CreateElement("p").SetText("Report ID: " + ReportID(a))

	footer := body.CreateElement("div")
	footer.CreateAttr("class", "footer")
	footer.CreateElement("p").SetText("TruCred Alternative Credit Scoring System")

	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return "<!DOCTYPE html>\n" + out, nil
}

// ReportID derives a human-readable report identifier from the applicant
// name and the assessment ID.
func ReportID(a *models.Assessment) string {
	name := strings.Join(strings.Fields(a.Name), "")
	id := a.ID
	if len(id) > 6 {
		id = id[:6]
	}
	return name + "-" + id
}

func addComponentRow(table *etree.Element, label string, value, max float64) {
	tr := table.CreateElement("tr")
	tr.CreateElement("td").SetText(label)
	tr.CreateElement("td").SetText(fmt.Sprintf("%.1f / %d", value, int(max)))
}

func remarkFor(total int) string {
	switch {
	case total >= 85:
		return "Excellent financial behavior!"
	case total >= 75:
		return "Very good financial profile!"
	case total >= 65:
		return "Good financial standing!"
	default:
		return "Fair financial behavior with room for improvement."
	}
}

func validUntil(a *models.Assessment) time.Time {
	from := time.Now()
	if a.VerifiedAt != nil {
		from = *a.VerifiedAt
	}
	return from.AddDate(0, validityMonths, 0)
}
