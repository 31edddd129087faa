package score

import (
	"errors"
	"math"

	"github.com/trucred/score-service/internal/models"
)

var (
	ErrInvalidRentMonths     = errors.New("rentMonths must be zero or positive")
	ErrInvalidMobileRecharge = errors.New(`mobileRecharge must be "yes" or "no"`)
	ErrInvalidUtilityBill    = errors.New(`utilityBill must be "yes" or "no"`)
)

// Calculate computes the composite trust score from self-reported inputs.
// Components are never rounded individually; the total is rounded once at
// the end, and the grade is taken from the unrounded sum.
func Calculate(input models.ScoreInput) (*models.ScoreBreakdown, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	var c models.ScoreComponents

	// Recurring payments (0-30 points)
	c.RecurringPayments = math.Min(float64(input.RentMonths)*2.5, 30)

	// Mobile recharge (0-20 points)
	if input.MobileRecharge == "yes" {
		c.MobileRecharge = 20
	}

	// Utility bill (0-15 points)
	if input.UtilityBill == "yes" {
		c.UtilityBill = 15
	}

	// UPI consistency (0-20 points)
	if input.UpiConsistency {
		c.UpiConsistency = 20
	}

	// Reference feedback (0-15 points); unrecognized values score zero.
	switch input.ReferenceFeedback {
	case "positive":
		c.ReferenceFeedback = 15
	case "neutral":
		c.ReferenceFeedback = 10
	case "negative":
		c.ReferenceFeedback = 3
	}

	sum := c.RecurringPayments + c.MobileRecharge + c.UtilityBill +
		c.UpiConsistency + c.ReferenceFeedback

	return &models.ScoreBreakdown{
		Total:           int(math.Round(sum)),
		Components:      c,
		Grade:           gradeFor(sum),
		Recommendations: recommendations(c, sum),
	}, nil
}

func validate(input models.ScoreInput) error {
	if input.RentMonths < 0 {
		return ErrInvalidRentMonths
	}
	if input.MobileRecharge != "yes" && input.MobileRecharge != "no" {
		return ErrInvalidMobileRecharge
	}
	if input.UtilityBill != "yes" && input.UtilityBill != "no" {
		return ErrInvalidUtilityBill
	}
	return nil
}

// gradeFor maps a total to its letter grade. Thresholds are inclusive lower
// bounds, evaluated highest-first.
func gradeFor(total float64) string {
	switch {
	case total >= 85:
		return "A+"
	case total >= 75:
		return "A"
	case total >= 65:
		return "B+"
	case total >= 55:
		return "B"
	case total >= 45:
		return "C+"
	case total >= 35:
		return "C"
	default:
		return "D"
	}
}

// recommendations lists improvement advice for component shortfalls, in a
// fixed order. An empty slice is a valid result.
func recommendations(c models.ScoreComponents, total float64) []string {
	recs := []string{}

	if c.RecurringPayments < 25 {
		recs = append(recs, "Maintain consistent rent/EMI payments to improve your score")
	}
	if c.MobileRecharge == 0 {
		recs = append(recs, "Regular mobile recharges show financial discipline")
	}
	if c.UtilityBill == 0 {
		recs = append(recs, "Having utility bills in your name demonstrates financial responsibility")
	}
	if c.UpiConsistency == 0 {
		recs = append(recs, "Upload UPI transaction history to show spending consistency")
	}
	if total < 50 {
		recs = append(recs, "Consider building a stronger financial track record over the next few months")
	}
	return recs
}
