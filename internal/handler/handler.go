package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/trucred/score-service/internal/ledger"
	"github.com/trucred/score-service/internal/models"
	"github.com/trucred/score-service/internal/repository"
	"github.com/trucred/score-service/internal/service"
)

// Multipart forms larger than this are rejected.
const maxUploadSize = 10 << 20

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// AnalyzeLedger handles UPI CSV uploads and returns the analysis summary
func (h *Handler) AnalyzeLedger(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("upiCsv")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "No UPI CSV file provided",
			"format":  ledger.ExpectedFormat,
		})
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		writeError(w, http.StatusBadRequest, "Please upload a CSV file only")
		return
	}

	analysis, err := h.svc.AnalyzeLedger(file)
	if err != nil {
		var missing *ledger.MissingColumnsError
		switch {
		case errors.As(err, &missing):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"success": false,
				"message": missing.Error(),
				"format":  missing.Format,
			})
		case errors.Is(err, ledger.ErrEmptyLedger):
			writeError(w, http.StatusUnprocessableEntity, "No transactions found in CSV")
		default:
			writeError(w, http.StatusBadRequest, "Failed to analyze UPI transactions")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"analysis": analysis,
		"message":  "Successfully analyzed " + strconv.Itoa(analysis.TotalTransactions) + " transactions",
	})
}

// CalculateScore handles trust score calculation requests
func (h *Handler) CalculateScore(w http.ResponseWriter, r *http.Request) {
	var input models.ScoreInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	breakdown, err := h.svc.CalculateScore(input)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"score":   breakdown,
	})
}

// SubmitAssessment handles new assessment submissions
func (h *Handler) SubmitAssessment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	rentMonths, err := strconv.Atoi(r.FormValue("rentMonths"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "rentMonths must be an integer")
		return
	}

	a := &models.Assessment{
		Name:                  r.FormValue("name"),
		Email:                 r.FormValue("email"),
		Phone:                 r.FormValue("phone"),
		RentMonths:            rentMonths,
		MobileRecharge:        r.FormValue("mobileRecharge"),
		UtilityBill:           r.FormValue("utilityBill"),
		ReferenceName:         r.FormValue("referenceName"),
		ReferenceRelationship: r.FormValue("referenceRelationship"),
		ReferenceFeedback:     r.FormValue("referenceFeedback"),
	}

	var ledgerCSV io.Reader
	if file, _, err := r.FormFile("upiCsv"); err == nil {
		defer file.Close()
		ledgerCSV = file
	}

	id, err := h.svc.SubmitAssessment(a, ledgerCSV)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to submit assessment")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"assessmentId": id,
		"message":      "Assessment submitted successfully. It is now awaiting verification.",
	})
}

// CheckStatus reports the review status of an assessment
func (h *Handler) CheckStatus(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Assessment ID is required")
		return
	}

	a, err := h.svc.CheckStatus(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Assessment not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to check status")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"status":     a.Status,
		"verifiedAt": a.VerifiedAt,
	})
}

// Login handles admin authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
	})
}

// ListAssessments returns all assessments for admin review
func (h *Handler) ListAssessments(w http.ResponseWriter, r *http.Request) {
	assessments, err := h.svc.ListAssessments(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch assessments")
		return
	}
	if assessments == nil {
		assessments = []models.Assessment{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"assessments": assessments,
	})
}

// UpdateStatus changes the review status of an assessment
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.svc.UpdateStatus(r.Context(), req.ID, req.Status, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "Assessment not found")
		case errors.Is(err, service.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to update status")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Assessment status updated successfully",
	})
}

func writeJSON(w http.ResponseWriter, status int, payload map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}
