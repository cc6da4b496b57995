package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/honeynil/course-purchase-service/internal/infrastructure/auth"
	"github.com/honeynil/course-purchase-service/internal/infrastructure/gateway"
	"github.com/honeynil/course-purchase-service/internal/models"
	service "github.com/honeynil/course-purchase-service/internal/services"
	pkgerrors "github.com/honeynil/course-purchase-service/pkg/errors"
)

const maxWebhookBody = 64 << 10

type Handler struct {
	purchases service.PurchaseService
	queries   service.QueryService
	webhooks  service.WebhookReconciler
}

func NewHandler(purchases service.PurchaseService, queries service.QueryService, webhooks service.WebhookReconciler) *Handler {
	return &Handler{purchases: purchases, queries: queries, webhooks: webhooks}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps domain errors to status codes. Anything unrecognized is
// reported as an opaque 500.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status, message := http.StatusInternalServerError, pkgerrors.ErrInternal.Error()
	switch {
	case errors.Is(err, pkgerrors.ErrUnauthorized):
		status, message = http.StatusUnauthorized, "User not authenticated"
	case errors.Is(err, pkgerrors.ErrCourseNotFound):
		status, message = http.StatusNotFound, "Course not found"
	case errors.Is(err, pkgerrors.ErrAlreadyPurchased):
		status, message = http.StatusBadRequest, "You have already purchased this course"
	case errors.Is(err, pkgerrors.ErrDuplicatePurchase):
		status, message = http.StatusBadRequest, "A purchase for this course is already in progress"
	case errors.Is(err, pkgerrors.ErrInvalidInput):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, pkgerrors.ErrInvalidSignature), errors.Is(err, pkgerrors.ErrInvalidPayload):
		status, message = http.StatusBadRequest, "Webhook Error"
	default:
		slog.Error("request failed", "error", err)
	}
	h.writeJSON(w, status, errorResponse{Success: false, Message: message})
}

func (h *Handler) RegisterPublicRoutes(r *mux.Router) {
	r.HandleFunc("/webhook", h.Webhook).Methods(http.MethodPost)
}

func (h *Handler) RegisterProtectedRoutes(r *mux.Router) {
	r.HandleFunc("/course", h.PurchaseCourse).Methods(http.MethodPost)
	r.HandleFunc("/checkout", h.StartCheckout).Methods(http.MethodPost)
	r.HandleFunc("/courses/{courseId}/details-with-status", h.GetCourseDetailWithPurchaseStatus).Methods(http.MethodGet)
	r.HandleFunc("/my-courses", h.GetMyCourses).Methods(http.MethodGet)
	r.HandleFunc("/", h.GetAllPurchasedCourses).Methods(http.MethodGet)
}

type courseRequest struct {
	CourseID string `json:"courseId"`
}

func (h *Handler) decodeCourseRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req courseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
		return "", false
	}
	if req.CourseID == "" {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Message: "courseId is required"})
		return "", false
	}
	return req.CourseID, true
}

func (h *Handler) PurchaseCourse(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := auth.BuyerID(r.Context())
	if !ok {
		h.writeError(w, pkgerrors.ErrUnauthorized)
		return
	}
	courseID, ok := h.decodeCourseRequest(w, r)
	if !ok {
		return
	}

	result, err := h.purchases.Purchase(r.Context(), buyerID, courseID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  result.Message,
		"courseId": result.CourseID,
	})
}

func (h *Handler) StartCheckout(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := auth.BuyerID(r.Context())
	if !ok {
		h.writeError(w, pkgerrors.ErrUnauthorized)
		return
	}
	courseID, ok := h.decodeCourseRequest(w, r)
	if !ok {
		return
	}

	result, err := h.purchases.StartCheckout(r.Context(), buyerID, courseID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":    true,
		"purchaseId": result.PurchaseID,
		"sessionId":  result.SessionID,
		"amount":     result.Amount,
		"status":     result.Status,
	})
}

func (h *Handler) GetCourseDetailWithPurchaseStatus(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := auth.BuyerID(r.Context())
	if !ok {
		h.writeError(w, pkgerrors.ErrUnauthorized)
		return
	}

	details, err := h.queries.GetCourseWithPurchaseStatus(r.Context(), buyerID, mux.Vars(r)["courseId"])
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, details)
}

func (h *Handler) GetAllPurchasedCourses(w http.ResponseWriter, r *http.Request) {
	purchases, err := h.queries.ListCompletedPurchases(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string][]models.PurchaseWithCourse{"purchasedCourse": purchases})
}

func (h *Handler) GetMyCourses(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := auth.BuyerID(r.Context())
	if !ok {
		h.writeError(w, pkgerrors.ErrUnauthorized)
		return
	}

	purchases, err := h.queries.ListBuyerCourses(r.Context(), buyerID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string][]models.PurchaseWithCourse{"courses": purchases})
}

// Webhook hands the unparsed body to the reconciler; the signature covers
// the exact bytes the gateway sent.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		h.writeError(w, pkgerrors.ErrInvalidPayload)
		return
	}

	result, err := h.webhooks.HandleGatewayEvent(r.Context(), payload, r.Header.Get(gateway.SignatureHeader))
	if err != nil {
		h.writeError(w, err)
		return
	}

	slog.Info("gateway event acknowledged", "event_id", result.EventID, "outcome", result.Outcome, "purchase_id", result.PurchaseID)
	h.writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
