package models

import "time"

// Assessment statuses.
const (
	StatusPendingVerification = "pending_verification"
	StatusVerified            = "verified"
	StatusRejected            = "rejected"
)

// Assessment represents a submitted credit assessment
type Assessment struct {
	ID                    string           `json:"id"`
	Name                  string           `json:"name"`
	Email                 string           `json:"email"`
	Phone                 string           `json:"phone"`
	RentMonths            int              `json:"rentMonths"`
	MobileRecharge        string           `json:"mobileRecharge"`
	UtilityBill           string           `json:"utilityBill"`
	ReferenceName         string           `json:"referenceName"`
	ReferenceRelationship string           `json:"referenceRelationship"`
	ReferenceFeedback     string           `json:"referenceFeedback"`
	Status                string           `json:"status"`
	VerificationNotes     string           `json:"verificationNotes,omitempty"`
	Analysis              *AnalysisSummary `json:"analysis,omitempty"`
	Score                 *ScoreBreakdown  `json:"score,omitempty"`
	SubmittedAt           time.Time        `json:"submittedAt"`
	VerifiedAt            *time.Time       `json:"verifiedAt,omitempty"`
}
