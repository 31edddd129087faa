package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/trucred/score-service/internal/models"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("record not found")

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateAssessment stores a new assessment record
func (r *Repository) CreateAssessment(a *models.Assessment) error {
	analysisJSON, err := marshalNullable(a.Analysis)
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}

	query := `
		INSERT INTO trucred.assessments
			(id, name, email, phone, rent_months, mobile_recharge, utility_bill,
			 reference_name, reference_relationship, reference_feedback,
			 status, analysis, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, CURRENT_TIMESTAMP)
		RETURNING submitted_at`
	err = r.db.QueryRow(query,
		a.ID, a.Name, a.Email, a.Phone, a.RentMonths, a.MobileRecharge, a.UtilityBill,
		a.ReferenceName, a.ReferenceRelationship, a.ReferenceFeedback,
		a.Status, analysisJSON).
		Scan(&a.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to create assessment: %w", err)
	}
	return nil
}

// FindAssessmentByID retrieves an assessment by its ID
func (r *Repository) FindAssessmentByID(id string) (*models.Assessment, error) {
	query := assessmentSelect + ` WHERE id = $1`
	a, err := scanAssessment(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find assessment: %w", err)
	}
	return a, nil
}

// ListAssessments retrieves all assessments, newest first
func (r *Repository) ListAssessments() ([]models.Assessment, error) {
	query := assessmentSelect + ` ORDER BY submitted_at DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	var assessments []models.Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		assessments = append(assessments, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	return assessments, nil
}

// UpdateAssessmentStatus updates the review status of an assessment and
// stamps the verification time
func (r *Repository) UpdateAssessmentStatus(id, status, notes string) (*models.Assessment, error) {
	query := `
		UPDATE trucred.assessments
		SET status = $2, verification_notes = $3, verified_at = CURRENT_TIMESTAMP
		WHERE id = $1`
	res, err := r.db.Exec(query, id, status, notes)
	if err != nil {
		return nil, fmt.Errorf("failed to update assessment status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to update assessment status: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return r.FindAssessmentByID(id)
}

// SaveScore stores the computed score breakdown for an assessment
func (r *Repository) SaveScore(id string, breakdown *models.ScoreBreakdown) error {
	scoreJSON, err := json.Marshal(breakdown)
	if err != nil {
		return fmt.Errorf("failed to encode score: %w", err)
	}
	query := `UPDATE trucred.assessments SET score = $2 WHERE id = $1`
	if _, err := r.db.Exec(query, id, scoreJSON); err != nil {
		return fmt.Errorf("failed to save score: %w", err)
	}
	return nil
}

// FindAdminByEmail retrieves an admin account by email
func (r *Repository) FindAdminByEmail(email string) (*models.Admin, error) {
	admin := &models.Admin{}
	query := `
		SELECT id, email, password_hash, created_at
		FROM trucred.admins
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
	return admin, nil
}

const assessmentSelect = `
	SELECT id, name, email, phone, rent_months, mobile_recharge, utility_bill,
	       reference_name, reference_relationship, reference_feedback,
	       status, COALESCE(verification_notes, ''), analysis, score,
	       submitted_at, verified_at
	FROM trucred.assessments`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAssessment(row rowScanner) (*models.Assessment, error) {
	a := &models.Assessment{}
	var analysisJSON, scoreJSON []byte
	err := row.Scan(
		&a.ID, &a.Name, &a.Email, &a.Phone, &a.RentMonths, &a.MobileRecharge, &a.UtilityBill,
		&a.ReferenceName, &a.ReferenceRelationship, &a.ReferenceFeedback,
		&a.Status, &a.VerificationNotes, &analysisJSON, &scoreJSON,
		&a.SubmittedAt, &a.VerifiedAt)
	if err != nil {
		return nil, err
	}
	if len(analysisJSON) > 0 {
		a.Analysis = &models.AnalysisSummary{}
		if err := json.Unmarshal(analysisJSON, a.Analysis); err != nil {
			return nil, fmt.Errorf("failed to decode analysis: %w", err)
		}
	}
	if len(scoreJSON) > 0 {
		a.Score = &models.ScoreBreakdown{}
		if err := json.Unmarshal(scoreJSON, a.Score); err != nil {
			return nil, fmt.Errorf("failed to decode score: %w", err)
		}
	}
	return a, nil
}

func marshalNullable(a *models.AnalysisSummary) ([]byte, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}
