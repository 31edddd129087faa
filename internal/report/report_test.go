package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trucred/score-service/internal/models"
)

func verifiedAssessment() *models.Assessment {
	verifiedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return &models.Assessment{
		ID:     "a1b2c3d4-0000-0000-0000-000000000000",
		Name:   "Asha Rao",
		Email:  "asha@example.com",
		Status: models.StatusVerified,
		Score: &models.ScoreBreakdown{
			Total: 87,
			Components: models.ScoreComponents{
				RecurringPayments: 30,
				MobileRecharge:    20,
				UtilityBill:       15,
				UpiConsistency:    20,
				ReferenceFeedback: 3,
			},
			Grade:           "A+",
			Recommendations: []string{"Upload UPI transaction history to show spending consistency"},
		},
		VerifiedAt: &verifiedAt,
	}
}

func TestBuildHTMLContainsScoreAndGrade(t *testing.T) {
	a := verifiedAssessment()
	html, err := BuildHTML(a)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "87/100 (Grade A+)")
	assert.Contains(t, html, "Hello Asha Rao,")
	assert.Contains(t, html, "Excellent financial behavior!")
	assert.Contains(t, html, "Upload UPI transaction history to show spending consistency")
	assert.Contains(t, html, "Report ID: AshaRao-a1b2c3")
	// Six months from the verification date.
	assert.Contains(t, html, "Valid until: December 1, 2024")
}

func TestBuildHTMLOmitsEmptyRecommendations(t *testing.T) {
	a := verifiedAssessment()
	a.Score.Recommendations = nil
	html, err := BuildHTML(a)
	require.NoError(t, err)
	assert.NotContains(t, html, "Recommendations")
}

func TestBuildHTMLRequiresScore(t *testing.T) {
	a := verifiedAssessment()
	a.Score = nil
	_, err := BuildHTML(a)
	assert.Error(t, err)
}

func TestReportID(t *testing.T) {
	a := verifiedAssessment()
	assert.Equal(t, "AshaRao-a1b2c3", ReportID(a))
}
