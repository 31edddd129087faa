package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trucred/score-service/internal/models"
)

func TestCalculatePerfectScore(t *testing.T) {
	breakdown, err := Calculate(models.ScoreInput{
		RentMonths:        12,
		MobileRecharge:    "yes",
		UtilityBill:       "yes",
		ReferenceFeedback: "positive",
		UpiConsistency:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, float64(30), breakdown.Components.RecurringPayments)
	assert.Equal(t, float64(20), breakdown.Components.MobileRecharge)
	assert.Equal(t, float64(15), breakdown.Components.UtilityBill)
	assert.Equal(t, float64(20), breakdown.Components.UpiConsistency)
	assert.Equal(t, float64(15), breakdown.Components.ReferenceFeedback)
	assert.Equal(t, 100, breakdown.Total)
	assert.Equal(t, "A+", breakdown.Grade)
	assert.Empty(t, breakdown.Recommendations)
}

func TestCalculateFloorScore(t *testing.T) {
	breakdown, err := Calculate(models.ScoreInput{
		RentMonths:        0,
		MobileRecharge:    "no",
		UtilityBill:       "no",
		ReferenceFeedback: "negative",
		UpiConsistency:    false,
	})
	require.NoError(t, err)

	assert.Equal(t, models.ScoreComponents{ReferenceFeedback: 3}, breakdown.Components)
	assert.Equal(t, 3, breakdown.Total)
	assert.Equal(t, "D", breakdown.Grade)
	// All five advisory conditions fire, in fixed order.
	require.Len(t, breakdown.Recommendations, 5)
	assert.Equal(t, "Maintain consistent rent/EMI payments to improve your score", breakdown.Recommendations[0])
	assert.Equal(t, "Regular mobile recharges show financial discipline", breakdown.Recommendations[1])
	assert.Equal(t, "Having utility bills in your name demonstrates financial responsibility", breakdown.Recommendations[2])
	assert.Equal(t, "Upload UPI transaction history to show spending consistency", breakdown.Recommendations[3])
	assert.Equal(t, "Consider building a stronger financial track record over the next few months", breakdown.Recommendations[4])
}

func TestRecurringPaymentsMonotonicAndClamped(t *testing.T) {
	prev := float64(-1)
	for months := 0; months <= 20; months++ {
		breakdown, err := Calculate(models.ScoreInput{
			RentMonths:     months,
			MobileRecharge: "no",
			UtilityBill:    "no",
		})
		require.NoError(t, err)

		rp := breakdown.Components.RecurringPayments
		assert.GreaterOrEqual(t, rp, prev, "months=%d", months)
		assert.LessOrEqual(t, rp, float64(30), "months=%d", months)
		prev = rp
	}
}

func TestRecurringPaymentsExactValues(t *testing.T) {
	for months, want := range map[int]float64{0: 0, 10: 25, 12: 30, 20: 30} {
		breakdown, err := Calculate(models.ScoreInput{
			RentMonths:     months,
			MobileRecharge: "no",
			UtilityBill:    "no",
		})
		require.NoError(t, err)
		assert.Equal(t, want, breakdown.Components.RecurringPayments, "months=%d", months)
	}
}

func TestTotalRoundedOnceAtTheEnd(t *testing.T) {
	// 9 rent months contribute 22.5 points; with a negative reference (3)
	// the unrounded sum is 25.5. Only the total is rounded.
	breakdown, err := Calculate(models.ScoreInput{
		RentMonths:        9,
		MobileRecharge:    "no",
		UtilityBill:       "no",
		ReferenceFeedback: "negative",
	})
	require.NoError(t, err)

	assert.Equal(t, 22.5, breakdown.Components.RecurringPayments)
	assert.Equal(t, 26, breakdown.Total)
	assert.Equal(t, "D", breakdown.Grade)
}

func TestGradeBoundaries(t *testing.T) {
	cases := map[float64]string{
		100: "A+", 85: "A+", 84: "A",
		75: "A", 74: "B+",
		65: "B+", 64: "B",
		55: "B", 54: "C+",
		45: "C+", 44: "C",
		35: "C", 34: "D",
		0: "D",
	}
	for total, want := range cases {
		assert.Equal(t, want, gradeFor(total), "total=%v", total)
	}
}

func TestReferenceFeedbackValues(t *testing.T) {
	for feedback, want := range map[string]float64{
		"positive": 15, "neutral": 10, "negative": 3, "unknown": 0, "": 0,
	} {
		breakdown, err := Calculate(models.ScoreInput{
			MobileRecharge:    "no",
			UtilityBill:       "no",
			ReferenceFeedback: feedback,
		})
		require.NoError(t, err)
		assert.Equal(t, want, breakdown.Components.ReferenceFeedback, "feedback=%q", feedback)
	}
}

func TestCalculateRejectsBadInput(t *testing.T) {
	_, err := Calculate(models.ScoreInput{RentMonths: -1, MobileRecharge: "no", UtilityBill: "no"})
	assert.ErrorIs(t, err, ErrInvalidRentMonths)

	_, err = Calculate(models.ScoreInput{MobileRecharge: "maybe", UtilityBill: "no"})
	assert.ErrorIs(t, err, ErrInvalidMobileRecharge)

	_, err = Calculate(models.ScoreInput{MobileRecharge: "yes", UtilityBill: ""})
	assert.ErrorIs(t, err, ErrInvalidUtilityBill)
}
