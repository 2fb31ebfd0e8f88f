package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/traveluniverse/booking-system/internal/api/metrics"
	"github.com/traveluniverse/booking-system/internal/core/domain"
	"github.com/traveluniverse/booking-system/internal/core/ports"
)

// AvailabilityHandler exposes the availability engine.
type AvailabilityHandler struct {
	service ports.AvailabilityService
}

func NewAvailabilityHandler(service ports.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// Available handles GET /available_destinations.
//
// @Summary      Search available destinations
// @Description  Returns every destination with no reservation sharing a day with [check_in_date, check_out_date].
// @Tags         availability
// @Produce      json
// @Security     BearerAuth
// @Param        check_in_date   query     string  true  "YYYY-MM-DD"
// @Param        check_out_date  query     string  true  "YYYY-MM-DD"
// @Success      200             {object}  availableDestinationsResponse
// @Failure      400             {object}  messageResponse
// @Failure      404             {object}  messageResponse
// @Router       /available_destinations [get]
func (h *AvailabilityHandler) Available(c echo.Context) error {
	list, err := h.service.FindAvailableDestinations(
		c.Request().Context(),
		c.QueryParam("check_in_date"),
		c.QueryParam("check_out_date"),
	)
	if err != nil {
		metrics.AvailabilityQueriesTotal.WithLabelValues(availabilityOutcome(err)).Inc()
		return err
	}

	metrics.AvailabilityQueriesTotal.WithLabelValues("available").Inc()
	metrics.AvailableDestinationsReturned.Observe(float64(len(list)))
	return c.JSON(http.StatusOK, availableDestinationsResponse{AvailableDestinations: list})
}

func availabilityOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoAvailability):
		return "none"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	default:
		return "error"
	}
}

// UnavailableDates handles GET /unavailable_dates/:destination_id.
//
// @Summary      List reserved days of a destination
// @Description  Days shared by several reservations repeat unless distinct=true.
// @Tags         availability
// @Produce      json
// @Param        destination_id  path      int   true   "Destination ID"
// @Param        distinct        query     bool  false  "Deduplicate and sort"
// @Success      200             {object}  unavailableDatesResponse
// @Failure      400             {object}  messageResponse
// @Router       /unavailable_dates/{destination_id} [get]
func (h *AvailabilityHandler) UnavailableDates(c echo.Context) error {
	distinct, _ := strconv.ParseBool(c.QueryParam("distinct"))

	dates, err := h.service.UnavailableDates(c.Request().Context(), c.Param("destination_id"), distinct)
	if err != nil {
		return err
	}

	metrics.UnavailableDatesLookupsTotal.WithLabelValues(strconv.FormatBool(distinct)).Inc()
	return c.JSON(http.StatusOK, unavailableDatesResponse{UnavailableDates: dates})
}
