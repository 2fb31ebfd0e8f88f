package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/traveluniverse/booking-system/internal/api/metrics"
	"github.com/traveluniverse/booking-system/internal/core/domain"
	"github.com/traveluniverse/booking-system/internal/core/ports"
)

// ReservationHandler handles HTTP requests for reservations.
type ReservationHandler struct {
	service ports.ReservationService
}

func NewReservationHandler(service ports.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

// Create handles POST /reservation.
//
// @Summary      Book a destination
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReservationRequest  true  "Reservation"
// @Success      201   {object}  reservationBody
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /reservation [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReservationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	r, err := h.service.Create(c.Request().Context(), ports.CreateReservationInput{
		UserID:        req.UserID,
		DestinationID: req.DestinationID,
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
		TotalPrice:    *req.TotalPrice,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrReservationConflict):
			metrics.ReservationConflictsTotal.WithLabelValues("overlap").Inc()
		case errors.Is(err, domain.ErrBookingInProgress):
			metrics.ReservationConflictsTotal.WithLabelValues("busy").Inc()
		}
		return err
	}

	metrics.ReservationsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toReservationBody(*r))
}

// ListByDestination handles GET /reservation/:id where id is a destination id.
//
// @Summary      List reservations of a destination
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Destination ID"
// @Success      200  {object}  reservationsResponse
// @Failure      400  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /reservation/{id} [get]
func (h *ReservationHandler) ListByDestination(c echo.Context) error {
	list, err := h.service.ListByDestination(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	out := make([]reservationBody, 0, len(list))
	for _, r := range list {
		out = append(out, toReservationBody(r))
	}
	return c.JSON(http.StatusOK, reservationsResponse{Reservations: out})
}
