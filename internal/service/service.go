package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/trucred/score-service/internal/config"
	"github.com/trucred/score-service/internal/ledger"
	"github.com/trucred/score-service/internal/models"
	"github.com/trucred/score-service/internal/report"
	"github.com/trucred/score-service/internal/repository"
	"github.com/trucred/score-service/internal/score"
	"github.com/trucred/score-service/internal/utils/email"
)

// Assessments pending longer than this trigger a reminder email.
const reminderThreshold = 72 * time.Hour

// ErrInvalidInput marks caller-contract violations that should map to a
// client error rather than a server failure.
var ErrInvalidInput = errors.New("invalid input")

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	sender *email.Sender
	log    *logrus.Logger
	config *config.Config
}

// NewService initializes a new service
func NewService(repo *repository.Repository, sender *email.Sender, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{repo: repo, sender: sender, log: log, config: cfg}
}

// AnalyzeLedger runs the ledger analyzer on a raw CSV stream
func (s *Service) AnalyzeLedger(r io.Reader) (*models.AnalysisSummary, error) {
	summary, err := ledger.Analyze(r)
	if err != nil {
		return nil, err
	}
	s.log.Infof("Analyzed ledger: %d transactions, stability %d",
		summary.TotalTransactions, summary.FinancialStability)
	return summary, nil
}

// CalculateScore computes a trust score from self-reported inputs
func (s *Service) CalculateScore(input models.ScoreInput) (*models.ScoreBreakdown, error) {
	breakdown, err := score.Calculate(input)
	if err != nil {
		return nil, err
	}
	s.log.Infof("Calculated score: %d (%s)", breakdown.Total, breakdown.Grade)
	return breakdown, nil
}

// SubmitAssessment validates and stores a new assessment. An attached ledger
// CSV is analyzed immediately; analysis failure does not fail the submission.
func (s *Service) SubmitAssessment(a *models.Assessment, ledgerCSV io.Reader) (string, error) {
	if err := validateSubmission(a); err != nil {
		return "", err
	}

	a.ID = uuid.NewString()
	a.Status = models.StatusPendingVerification

	if ledgerCSV != nil {
		summary, err := ledger.Analyze(ledgerCSV)
		if err != nil {
			s.log.Warnf("Ledger analysis failed for %s: %v", a.Email, err)
		} else {
			a.Analysis = summary
		}
	}

	if err := s.repo.CreateAssessment(a); err != nil {
		return "", err
	}

	s.log.Infof("Assessment submitted: %s (%s)", a.ID, a.Email)
	return a.ID, nil
}

// CheckStatus retrieves the review status of an assessment
func (s *Service) CheckStatus(id string) (*models.Assessment, error) {
	return s.repo.FindAssessmentByID(id)
}

// Login authenticates an admin and returns a JWT token
func (s *Service) Login(emailAddr, password string) (string, error) {
	admin, err := s.repo.FindAdminByEmail(emailAddr)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	// Generate JWT
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", admin.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("Admin logged in: %s", admin.Email)
	return tokenString, nil
}

// ListAssessments returns all assessments for the authenticated admin
func (s *Service) ListAssessments(ctx context.Context) ([]models.Assessment, error) {
	if _, err := adminID(ctx); err != nil {
		return nil, err
	}
	return s.repo.ListAssessments()
}

// UpdateStatus changes the review status of an assessment. Marking an
// assessment verified computes its score, renders the report and emails it
// to the applicant.
func (s *Service) UpdateStatus(ctx context.Context, id, status, notes string) error {
	admin, err := adminID(ctx)
	if err != nil {
		return err
	}

	switch status {
	case models.StatusPendingVerification, models.StatusVerified, models.StatusRejected:
	default:
		return fmt.Errorf("%w: invalid status %q", ErrInvalidInput, status)
	}

	a, err := s.repo.UpdateAssessmentStatus(id, status, notes)
	if err != nil {
		return err
	}
	s.log.Infof("Assessment %s marked %s by admin %s", id, status, admin)

	if status == models.StatusVerified {
		return s.finalizeAssessment(a)
	}
	return nil
}

// finalizeAssessment computes and stores the score for a verified assessment
// and sends the report email. Email failure is logged but does not undo the
// verification.
func (s *Service) finalizeAssessment(a *models.Assessment) error {
	upiConsistency := a.Analysis != nil && a.Analysis.ConsistentSpending

	breakdown, err := score.Calculate(models.ScoreInput{
		RentMonths:        a.RentMonths,
		MobileRecharge:    a.MobileRecharge,
		UtilityBill:       a.UtilityBill,
		ReferenceFeedback: a.ReferenceFeedback,
		UpiConsistency:    upiConsistency,
	})
	if err != nil {
		return fmt.Errorf("failed to score assessment %s: %w", a.ID, err)
	}

	if err := s.repo.SaveScore(a.ID, breakdown); err != nil {
		return err
	}
	a.Score = breakdown

	htmlReport, err := report.BuildHTML(a)
	if err != nil {
		return err
	}
	if err := s.sender.SendReport(a.Email, breakdown.Total, breakdown.Grade, htmlReport); err != nil {
		s.log.Errorf("Report email for %s not delivered: %v", a.ID, err)
	}

	s.log.Infof("Assessment %s finalized: score %d (%s)", a.ID, breakdown.Total, breakdown.Grade)
	return nil
}

// SendPendingReminders emails applicants whose assessment has been awaiting
// review for longer than the reminder threshold. Invoked by the scheduler.
func (s *Service) SendPendingReminders() {
	assessments, err := s.repo.ListAssessments()
	if err != nil {
		s.log.Errorf("Reminder sweep failed: %v", err)
		return
	}

	cutoff := time.Now().Add(-reminderThreshold)
	sent := 0
	for _, a := range assessments {
		if a.Status != models.StatusPendingVerification || a.SubmittedAt.After(cutoff) {
			continue
		}
		if err := s.sender.SendPendingReminder(a.Email, a.Name, a.SubmittedAt); err != nil {
			s.log.Errorf("Reminder for %s not delivered: %v", a.ID, err)
			continue
		}
		sent++
	}
	s.log.Infof("Reminder sweep complete: %d reminders sent", sent)
}

func adminID(ctx context.Context) (string, error) {
	id, ok := ctx.Value("adminID").(string)
	if !ok || id == "" {
		return "", fmt.Errorf("admin ID not found in context")
	}
	return id, nil
}

func validateSubmission(a *models.Assessment) error {
	if a.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !emailPattern.MatchString(a.Email) {
		return fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}
	if a.RentMonths < 0 {
		return fmt.Errorf("%w: rentMonths must be zero or positive", ErrInvalidInput)
	}
	if a.MobileRecharge != "yes" && a.MobileRecharge != "no" {
		return fmt.Errorf(`%w: mobileRecharge must be "yes" or "no"`, ErrInvalidInput)
	}
	if a.UtilityBill != "yes" && a.UtilityBill != "no" {
		return fmt.Errorf(`%w: utilityBill must be "yes" or "no"`, ErrInvalidInput)
	}
	return nil
}
