package models

// ScoreInput holds the self-reported behavioral attributes used for scoring
type ScoreInput struct {
	RentMonths        int    `json:"rentMonths"`
	MobileRecharge    string `json:"mobileRecharge"` // "yes" or "no"
	UtilityBill       string `json:"utilityBill"`    // "yes" or "no"
	ReferenceFeedback string `json:"referenceFeedback"`
	UpiConsistency    bool   `json:"upiConsistency"`
}

// ScoreComponents represents the five independently-capped score contributors
type ScoreComponents struct {
	RecurringPayments float64 `json:"recurringPayments"` // max 30
	MobileRecharge    float64 `json:"mobileRecharge"`    // max 20
	UtilityBill       float64 `json:"utilityBill"`       // max 15
	UpiConsistency    float64 `json:"upiConsistency"`    // max 20
	ReferenceFeedback float64 `json:"referenceFeedback"` // max 15
}

// ScoreBreakdown represents the composite trust score
type ScoreBreakdown struct {
	Total           int             `json:"total"`
	Components      ScoreComponents `json:"components"`
	Grade           string          `json:"grade"`
	Recommendations []string        `json:"recommendations"`
}
