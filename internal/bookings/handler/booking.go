package handler

import (
	"net/http"
	"pediacenter/internal/bookings/service"
	"pediacenter/internal/bookings/validator"
	"pediacenter/internal/identity"
	"pediacenter/internal/intake"
	"pediacenter/internal/slots"
	apperrors "pediacenter/pkg/errors"
	httputil "pediacenter/pkg/http"
	"pediacenter/pkg/logger"
	"pediacenter/pkg/model"
	"pediacenter/pkg/sanitizer"
	"strings"

	"github.com/julienschmidt/httprouter"
)

type SlotsResponse struct {
	Slots []model.Slot `json:"slots"`
}

type BookingsResponse struct {
	Bookings []*model.Booking `json:"bookings"`
}

type IdentityRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
}

type IntakeRequest struct {
	Message string `json:"message"`
}

type BookingHandler struct {
	service   service.BookingService
	slots     slots.SlotFinder
	validator *validator.BookingValidator
	log       *logger.Logger
}

func NewBookingHandler(svc service.BookingService, finder slots.SlotFinder, v *validator.BookingValidator, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service:   svc,
		slots:     finder,
		validator: v,
		log:       log,
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/slots/search", h.SearchSlots)
	router.GET("/api/v1/bookings", h.List)
	router.POST("/api/v1/bookings", h.Create)
	router.POST("/api/v1/bookings/cancel", h.Cancel)
	router.POST("/api/v1/bookings/reschedule", h.Reschedule)
	router.POST("/api/v1/identity/check", h.CheckIdentity)
	router.POST("/api/v1/intake/extract", h.Extract)
}

func (h *BookingHandler) SearchSlots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.SlotSearchRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, "SearchSlots", err)
		return
	}

	sanitizer.SanitizeSearchRequest(&req)
	if err := h.validator.ValidateSearch(&req); err != nil {
		h.writeError(w, r, "SearchSlots", validationError(err))
		return
	}

	found, err := h.slots.FindAvailableSlots(r.Context(), req)
	if err != nil {
		h.writeError(w, r, "SearchSlots", err)
		return
	}

	h.writeSuccess(w, r, "SearchSlots", SlotsResponse{Slots: found})
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.CreateBookingRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, "Create", err)
		return
	}

	booking, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, r, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		logger.FromContext(r.Context(), h.log).Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.CancelRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, "Cancel", err)
		return
	}

	result, err := h.service.Cancel(r.Context(), req)
	if err != nil {
		h.writeError(w, r, "Cancel", err)
		return
	}

	h.writeSuccess(w, r, "Cancel", result)
}

func (h *BookingHandler) Reschedule(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.RescheduleRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, "Reschedule", err)
		return
	}

	result, err := h.service.Reschedule(r.Context(), req)
	if err != nil {
		h.writeError(w, r, "Reschedule", err)
		return
	}

	h.writeSuccess(w, r, "Reschedule", result)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	childName := httputil.QueryParam(r, "child_name")
	if childName == "" {
		h.writeError(w, r, "List", apperrors.Validation("child_name query parameter is required", map[string]any{
			"child_name": "child_name is required",
		}))
		return
	}

	bookings, err := h.service.List(r.Context(), childName)
	if err != nil {
		h.writeError(w, r, "List", err)
		return
	}

	h.writeSuccess(w, r, "List", BookingsResponse{Bookings: bookings})
}

func (h *BookingHandler) CheckIdentity(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req IdentityRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, "CheckIdentity", err)
		return
	}

	h.writeSuccess(w, r, "CheckIdentity", identity.Check(req.FirstName, req.LastName, req.DateOfBirth))
}

func (h *BookingHandler) Extract(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req IntakeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, "Extract", err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		h.writeError(w, r, "Extract", apperrors.Validation("message is required", map[string]any{
			"message": "message is required",
		}))
		return
	}

	h.writeSuccess(w, r, "Extract", intake.Extract(req.Message))
}

func (h *BookingHandler) writeSuccess(w http.ResponseWriter, r *http.Request, handler string, data any) {
	if err := httputil.WriteSuccess(w, data); err != nil {
		logger.FromContext(r.Context(), h.log).Error("failed to write success response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, r *http.Request, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		logger.FromContext(r.Context(), h.log).Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func validationError(err error) error {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		return apperrors.Validation("Request validation failed", verrs.Details())
	}
	return apperrors.Validation("Request validation failed", map[string]any{"error": err.Error()})
}
