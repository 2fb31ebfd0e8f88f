package handler

import (
	"github.com/traveluniverse/booking-system/internal/core/domain"
)

// messageResponse is the envelope of confirmations and errors.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Destinations ---

type createDestinationRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Location    string   `json:"location"    validate:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
	Discount    *int     `json:"discount"    validate:"required,gte=0,lte=100"`
}

// updateDestinationRequest replaces title, price and discount. Omitted
// location and description keep their stored values.
type updateDestinationRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Location    *string  `json:"location"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
	Discount    *int     `json:"discount"    validate:"required,gte=0,lte=100"`
}

type destinationsResponse struct {
	Destinations []domain.Destination `json:"destinations"`
}

type destinationResponse struct {
	Destination *domain.Destination `json:"destination"`
}

type availableDestinationsResponse struct {
	AvailableDestinations []domain.Destination `json:"available_destinations"`
}

type unavailableDatesResponse struct {
	UnavailableDates []string `json:"unavailable_dates"`
}

// --- Reservations ---

type createReservationRequest struct {
	UserID        int64    `json:"user_id"        validate:"required"`
	DestinationID int64    `json:"destination_id" validate:"required"`
	CheckIn       string   `json:"check_in_date"  validate:"required"`
	CheckOut      string   `json:"check_out_date" validate:"required"`
	TotalPrice    *float64 `json:"total_price"    validate:"required,gte=0"`
}

// reservationBody renders dates as YYYY-MM-DD.
type reservationBody struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"user_id"`
	DestinationID int64   `json:"destination_id"`
	CheckIn       string  `json:"check_in_date"`
	CheckOut      string  `json:"check_out_date"`
	TotalPrice    float64 `json:"total_price"`
}

type reservationsResponse struct {
	Reservations []reservationBody `json:"reservations"`
}

func toReservationBody(r domain.Reservation) reservationBody {
	return reservationBody{
		ID:            r.ID,
		UserID:        r.UserID,
		DestinationID: r.DestinationID,
		CheckIn:       domain.FormatDate(r.CheckIn),
		CheckOut:      domain.FormatDate(r.CheckOut),
		TotalPrice:    r.TotalPrice,
	}
}

// --- Auth & users ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=admin customer"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}
