//go:build e2e

package reservation_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"goeat-api/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type reservationSuite struct {
	e2e.SharedSuite

	restaurantID uuid.UUID
	token        string
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(reservationSuite))
}

func (s *reservationSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()

	ctx := s.T().Context()
	var ownerID uuid.UUID
	err := s.DB.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, name, role)
		 VALUES ('owner@example.com', 'x', 'Owner', 'owner')
		 RETURNING id`).Scan(&ownerID)
	s.Require().NoError(err)

	err = s.DB.QueryRow(ctx,
		`INSERT INTO restaurants (owner_id, name, cuisine, address, latitude, longitude)
		 VALUES ($1, 'Trattoria Uno', 'italian', '1 Main St', 40.7128, -74.0060)
		 RETURNING id`, ownerID).Scan(&s.restaurantID)
	s.Require().NoError(err)

	rec := s.Do(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"email":"guest@example.com","password":"password123","name":"Guest"}`), nil)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var auth struct {
		AccessToken string `json:"access_token"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &auth))
	s.token = auth.AccessToken
}

func (s *reservationSuite) createBody(slot string) *strings.Reader {
	return strings.NewReader(fmt.Sprintf(
		`{"restaurant_id":%q,"date":"2030-06-15","time_slot":%q,"party_size":2}`,
		s.restaurantID, slot))
}

func (s *reservationSuite) headers(idempotencyKey string) map[string]string {
	return map[string]string{
		"Authorization":   "Bearer " + s.token,
		"Idempotency-Key": idempotencyKey,
	}
}

func (s *reservationSuite) TestCreateAndReplay() {
	key := uuid.NewString()

	rec := s.Do(http.MethodPost, "/api/reservations", s.createBody("18:00"), s.headers(key))
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID             uuid.UUID `json:"id"`
		RestaurantName string    `json:"restaurant_name"`
		TimeSlot       string    `json:"time_slot"`
		Status         string    `json:"status"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	s.Equal("Trattoria Uno", created.RestaurantName)
	s.Equal("18:00", created.TimeSlot)
	s.Equal("pending", created.Status)

	// Retrying the same key returns the original reservation, not a new one.
	rec = s.Do(http.MethodPost, "/api/reservations", s.createBody("18:00"), s.headers(key))
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var replayed struct {
		ID uuid.UUID `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &replayed))
	s.Equal(created.ID, replayed.ID)

	// A fresh key for the same slot hits the double-booking guard.
	rec = s.Do(http.MethodPost, "/api/reservations", s.createBody("18:00"), s.headers(uuid.NewString()))
	s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())

	var count int
	err := s.DB.QueryRow(s.T().Context(),
		`SELECT count(*) FROM reservations WHERE restaurant_id = $1 AND time_slot = '18:00'`,
		s.restaurantID).Scan(&count)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *reservationSuite) TestAvailability() {
	key := uuid.NewString()
	rec := s.Do(http.MethodPost, "/api/reservations", s.createBody("12:30"), s.headers(key))
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	path := fmt.Sprintf("/api/restaurants/%s/reservations/availability?date=2030-06-15", s.restaurantID)
	rec = s.Do(http.MethodGet, path, nil, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var availability struct {
		Date           string   `json:"date"`
		AvailableSlots []string `json:"available_slots"`
		BookedSlots    int      `json:"booked_slots"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &availability))
	s.Equal("2030-06-15", availability.Date)
	s.Positive(availability.BookedSlots)
	s.NotContains(availability.AvailableSlots, "12:30")
}

func (s *reservationSuite) TestMissingIdempotencyKey() {
	rec := s.Do(http.MethodPost, "/api/reservations", s.createBody("19:00"),
		map[string]string{"Authorization": "Bearer " + s.token})
	s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())
}
