package handlers

import (
	"net/http"

	"brightsteps/backend/internal/models"
	"brightsteps/backend/internal/store"
)

type PaymentsHandler struct {
	Store *store.Store
}

func (h PaymentsHandler) List(w http.ResponseWriter, r *http.Request) {
	if user := requireCapability(w, r, models.CapRecordPayments); user == nil {
		return
	}
	payments := h.Store.Payments()
	if studentID := r.URL.Query().Get("student"); studentID != "" {
		filtered := []models.Payment{}
		for _, payment := range payments {
			if payment.StudentID == studentID {
				filtered = append(filtered, payment)
			}
		}
		payments = filtered
	}
	writeJSON(w, http.StatusOK, payments)
}

type recordPaymentRequest struct {
	StudentID string  `json:"student_id"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	Term      string  `json:"term"`
}

func (h PaymentsHandler) Record(w http.ResponseWriter, r *http.Request) {
	if user := requireCapability(w, r, models.CapRecordPayments); user == nil {
		return
	}
	var req recordPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	paymentID, err := h.Store.RecordPayment(r.Context(), store.PaymentInput{
		StudentID: req.StudentID,
		Amount:    req.Amount,
		Method:    req.Method,
		Term:      req.Term,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to record payment")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": paymentID})
}
