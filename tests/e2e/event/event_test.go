//go:build e2e

package event_test

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

type eventSuite struct {
	e2e.SharedSuite

	hostToken  string
	guestToken string
}

func TestEventSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(eventSuite))
}

func (s *eventSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()

	s.hostToken = s.register("event-host@example.com", "Host")
	s.guestToken = s.register("event-guest@example.com", "Guest")
}

func (s *eventSuite) register(email, name string) string {
	body := fmt.Sprintf(`{"email":%q,"password":"password123","name":%q}`, email, name)
	rec := s.Do(http.MethodPost, "/api/auth/register", strings.NewReader(body), nil)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var auth struct {
		AccessToken string `json:"access_token"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &auth))
	return auth.AccessToken
}

func (s *eventSuite) auth(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func (s *eventSuite) createEvent(title string, capacity int) uuid.UUID {
	body := fmt.Sprintf(
		`{"title":%q,"date":"2030-09-01","time":"19:00","location":"Pier 3","event_type":"popup","capacity":%d}`,
		title, capacity)
	rec := s.Do(http.MethodPost, "/api/events", strings.NewReader(body), s.auth(s.hostToken))
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID uuid.UUID `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	return created.ID
}

func (s *eventSuite) attend(token string, eventID uuid.UUID, status string) int {
	body := strings.NewReader(fmt.Sprintf(`{"status":%q}`, status))
	rec := s.Do(http.MethodPost, "/api/events/"+eventID.String()+"/attend", body, s.auth(token))
	return rec.Code
}

func (s *eventSuite) attendeesCount(eventID uuid.UUID) int {
	rec := s.Do(http.MethodGet, "/api/events/"+eventID.String(), nil, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var view struct {
		AttendeesCount int `json:"attendees_count"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &view))
	return view.AttendeesCount
}

func (s *eventSuite) TestAttendeeCounting() {
	eventID := s.createEvent("Night Market", 10)

	s.Equal(http.StatusNoContent, s.attend(s.hostToken, eventID, "going"))
	s.Equal(1, s.attendeesCount(eventID))

	// Interested does not count toward attendees.
	s.Equal(http.StatusNoContent, s.attend(s.guestToken, eventID, "interested"))
	s.Equal(1, s.attendeesCount(eventID))

	// Switching the same user to going adds exactly one.
	s.Equal(http.StatusNoContent, s.attend(s.guestToken, eventID, "going"))
	s.Equal(2, s.attendeesCount(eventID))

	rec := s.Do(http.MethodDelete, "/api/events/"+eventID.String()+"/attend", nil, s.auth(s.hostToken))
	s.Require().Equal(http.StatusNoContent, rec.Code, rec.Body.String())
	s.Equal(1, s.attendeesCount(eventID))
}

func (s *eventSuite) TestCapacityCap() {
	eventID := s.createEvent("Chef's Table", 1)

	s.Equal(http.StatusNoContent, s.attend(s.hostToken, eventID, "going"))

	rec := s.Do(http.MethodPost, "/api/events/"+eventID.String()+"/attend",
		strings.NewReader(`{"status":"going"}`), s.auth(s.guestToken))
	s.Equal(http.StatusConflict, rec.Code, rec.Body.String())
	s.Equal(1, s.attendeesCount(eventID))

	// A full event still accepts interest.
	s.Equal(http.StatusNoContent, s.attend(s.guestToken, eventID, "interested"))
	s.Equal(1, s.attendeesCount(eventID))
}
