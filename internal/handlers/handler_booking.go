package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fieldserve/booking_backend/internal/apperrors"
	portssvc "github.com/fieldserve/booking_backend/internal/core/ports/services"
	"github.com/fieldserve/booking_backend/internal/dto"
	"github.com/fieldserve/booking_backend/internal/middleware"
	"github.com/fieldserve/booking_backend/internal/utils"
)

// bookingHandler handles HTTP requests related to bookings.
type bookingHandler struct {
	bookingService portssvc.BookingSvcFacade
	posthogClient  *utils.PosthogClientWrapper
}

// newBookingHandler creates a new bookingHandler.
func newBookingHandler(bs portssvc.BookingSvcFacade, posthogClient *utils.PosthogClientWrapper) *bookingHandler {
	return &bookingHandler{
		bookingService: bs,
		posthogClient:  posthogClient,
	}
}

// registerBookingRoutes registers routes related to bookings.
func registerBookingRoutes(rg *gin.RouterGroup, bookingService portssvc.BookingSvcFacade, posthogClient *utils.PosthogClientWrapper) {
	h := newBookingHandler(bookingService, posthogClient)

	bookings := rg.Group("/bookings")
	{
		bookings.POST("", h.createBooking)
		bookings.GET("/:reservationID", h.getReservation)
		bookings.POST("/:reservationID/capture", h.capturePayment)
	}
}

// createBooking godoc
// @Summary Create a booking
// @Description Runs the booking flow: reserves the slot, records the client-held payment authorization, and assigns or notifies coverage agents. Omit the payment block for unpaid bookings.
// @Tags bookings
// @Accept  json
// @Produce  json
// @Param   booking body dto.CreateBookingRequest true "Booking details"
// @Success 201 {object} dto.BookingResult
// @Failure 400 {object} dto.BookingResult "Invalid input"
// @Failure 409 {object} dto.BookingResult "Records disagreed; booking rolled back"
// @Failure 500 {object} dto.BookingResult "Booking failed"
// @Router /bookings [post]
func (h *bookingHandler) createBooking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBooking", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.BookingResult{
			Status:  dto.BookingStatusError,
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	logger = logger.With(slog.String("customer_id", req.CustomerID), slog.String("location_code", req.LocationCode))
	logger.Info("Received request to create booking")

	result, err := h.bookingService.ExecuteBooking(c.Request.Context(), req)
	if err != nil {
		h.writeBookingError(c, logger, err)
		return
	}

	middleware.PosthogEvent(c, h.posthogClient, req.CustomerID, "booking_created", map[string]any{
		"reservation_id": result.ReservationID,
		"status":         result.Status,
		"paid":           req.Payment != nil,
	})
	logger.Info("Booking completed",
		slog.String("reservation_id", result.ReservationID),
		slog.String("status", result.Status),
	)
	c.JSON(http.StatusCreated, result)
}

// writeBookingError maps saga failures onto the client-facing error shape.
// Raw internal error text never leaves the server except for validation
// failures, which echo what the caller got wrong.
func (h *bookingHandler) writeBookingError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrCompensationFailed):
		// Rollback itself failed: this needs manual reconciliation and must
		// never be reported as a clean failure.
		logger.Error("Booking failed and compensation did not complete", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.BookingResult{
			Status:  dto.BookingStatusError,
			Message: "Booking failed and rollback did not fully complete; the operations team has been alerted",
		})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Booking request rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.BookingResult{
			Status:  dto.BookingStatusError,
			Message: err.Error(),
		})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Booking rolled back after records disagreed", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, dto.BookingResult{
			Status:  dto.BookingStatusError,
			Message: "Booking could not be completed consistently and was rolled back",
		})
	default:
		logger.Error("Booking failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.BookingResult{
			Status:  dto.BookingStatusError,
			Message: "Booking failed; no reservation was kept",
		})
	}
}

// getReservation godoc
// @Summary Get a reservation
// @Description Retrieves a reservation together with its payment ledger entries
// @Tags bookings
// @Produce  json
// @Param   reservationID path string true "Reservation ID (UUID)"
// @Success 200 {object} dto.GetReservationResponse
// @Failure 404 {object} map[string]string "Reservation not found"
// @Failure 500 {object} map[string]string "Failed to retrieve reservation"
// @Router /bookings/{reservationID} [get]
func (h *bookingHandler) getReservation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reservationID := c.Param("reservationID")

	reservation, entries, err := h.bookingService.GetReservation(c.Request.Context(), reservationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
			return
		}
		logger.Error("Failed to retrieve reservation", slog.String("reservation_id", reservationID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reservation"})
		return
	}

	c.JSON(http.StatusOK, dto.GetReservationResponse{
		Reservation: dto.ToReservationResponse(reservation),
		Ledger:      dto.ToLedgerEntryResponses(entries),
	})
}

// capturePayment godoc
// @Summary Capture an authorized payment
// @Description Settles the payment hold on an authorized reservation; repeat calls return the original capture
// @Tags bookings
// @Produce  json
// @Param   reservationID path string true "Reservation ID (UUID)"
// @Success 200 {object} dto.CaptureResult
// @Failure 404 {object} map[string]string "Reservation not found"
// @Failure 409 {object} map[string]string "Payment not capturable"
// @Failure 500 {object} map[string]string "Capture failed"
// @Router /bookings/{reservationID}/capture [post]
func (h *bookingHandler) capturePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reservationID := c.Param("reservationID")

	result, err := h.bookingService.CapturePayment(c.Request.Context(), reservationID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Capture rejected", slog.String("reservation_id", reservationID), slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": "Reservation payment is not in a capturable state"})
		default:
			logger.Error("Capture failed", slog.String("reservation_id", reservationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Capture failed"})
		}
		return
	}

	middleware.PosthogEvent(c, h.posthogClient, "", "payment_captured", map[string]any{
		"reservation_id": reservationID,
	})
	c.JSON(http.StatusOK, result)
}
