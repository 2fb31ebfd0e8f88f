package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/traveluniverse/booking-system/internal/api/metrics"
	"github.com/traveluniverse/booking-system/internal/core/domain"
	"github.com/traveluniverse/booking-system/internal/core/ports"
)

// DestinationHandler handles HTTP requests for destination CRUD.
type DestinationHandler struct {
	service ports.DestinationService
}

func NewDestinationHandler(service ports.DestinationService) *DestinationHandler {
	return &DestinationHandler{service: service}
}

// Create handles POST /destination.
//
// @Summary      Create a destination
// @Tags         destinations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createDestinationRequest  true  "Destination"
// @Success      201   {object}  domain.Destination
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /destination [post]
func (h *DestinationHandler) Create(c echo.Context) error {
	var req createDestinationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	d, err := h.service.Create(c.Request().Context(), ports.CreateDestinationInput{
		Title:       req.Title,
		Location:    req.Location,
		Description: req.Description,
		Price:       *req.Price,
		Discount:    *req.Discount,
	})
	if err != nil {
		return err
	}

	metrics.DestinationChangesTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, d)
}

// List handles GET /destination.
//
// @Summary      List destinations
// @Tags         destinations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  destinationsResponse
// @Failure      401  {object}  messageResponse
// @Router       /destination [get]
func (h *DestinationHandler) List(c echo.Context) error {
	list, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, destinationsResponse{Destinations: list})
}

// Get handles GET /destination/:id.
//
// @Summary      Get a destination
// @Tags         destinations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Destination ID"
// @Success      200  {object}  destinationResponse
// @Failure      400  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /destination/{id} [get]
func (h *DestinationHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	d, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, destinationResponse{Destination: d})
}

// Update handles PUT /destination/:id.
//
// @Summary      Update a destination
// @Tags         destinations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                       true  "Destination ID"
// @Param        body  body      updateDestinationRequest  true  "New values"
// @Success      200   {object}  destinationResponse
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /destination/{id} [put]
func (h *DestinationHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateDestinationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	d, err := h.service.Update(c.Request().Context(), id, domain.DestinationPatch{
		Title:       req.Title,
		Location:    req.Location,
		Description: req.Description,
		Price:       *req.Price,
		Discount:    *req.Discount,
	})
	if err != nil {
		return err
	}

	metrics.DestinationChangesTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, destinationResponse{Destination: d})
}

// Delete handles DELETE /destination/:id.
//
// @Summary      Delete a destination
// @Tags         destinations
// @Produce      plain
// @Security     BearerAuth
// @Param        id   path      int  true  "Destination ID"
// @Success      200  {string}  string  "Deleted destination: {id}"
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Failure      409  {object}  messageResponse
// @Router       /destination/{id} [delete]
func (h *DestinationHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.DestinationChangesTotal.WithLabelValues("delete").Inc()
	return c.String(http.StatusOK, fmt.Sprintf("Deleted destination: %d", id))
}
