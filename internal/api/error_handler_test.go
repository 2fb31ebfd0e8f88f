package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/traveluniverse/booking-system/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{domain.InvalidInput("Invalid destination ID"), http.StatusBadRequest, "Invalid destination ID"},
		{fmt.Errorf("wrapped: %w", domain.InvalidInput("bad date")), http.StatusBadRequest, "bad date"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid username or password"},
		{domain.ErrNoAvailability, http.StatusNotFound, "No available destinations for the specified interval"},
		{domain.ErrDestinationNotFound, http.StatusNotFound, "Destination not found"},
		{fmt.Errorf("lookup: %w", domain.ErrUserNotFound), http.StatusNotFound, "User not found"},
		{domain.ErrReservationsNotFound, http.StatusNotFound, "No reservations found for the specified destination_id"},
		{domain.ErrUserExists, http.StatusConflict, "User already exists"},
		{domain.ErrReservationConflict, http.StatusConflict, domain.ErrReservationConflict.Error()},
		{domain.ErrDestinationInUse, http.StatusConflict, domain.ErrDestinationInUse.Error()},
		{fmt.Errorf("acquire reservation lock: %w", domain.ErrBookingInProgress), http.StatusConflict, domain.ErrBookingInProgress.Error()},
		{echo.NewHTTPError(http.StatusUnauthorized, "invalid token"), http.StatusUnauthorized, "invalid token"},
		{errors.New("db exploded"), http.StatusInternalServerError, "internal server error"},
	}

	e := echo.New()
	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		h(tc.err, e.NewContext(req, rec))

		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if body["message"] != tc.msg {
			t.Fatalf("%v: expected message %q, got %q", tc.err, tc.msg, body["message"])
		}
	}
}

func TestHTTPErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response was modified: %d %q", rec.Code, rec.Body.String())
	}
}
