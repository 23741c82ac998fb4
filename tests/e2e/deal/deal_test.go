//go:build e2e

package deal_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"goeat-api/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type dealSuite struct {
	e2e.SharedSuite

	restaurantID uuid.UUID
}

func TestDealSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(dealSuite))
}

func (s *dealSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()

	ctx := s.T().Context()
	var ownerID uuid.UUID
	err := s.DB.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, name, role)
		 VALUES ('deals-owner@example.com', 'x', 'Owner', 'owner')
		 RETURNING id`).Scan(&ownerID)
	s.Require().NoError(err)

	err = s.DB.QueryRow(ctx,
		`INSERT INTO restaurants (owner_id, name, cuisine, address, latitude, longitude)
		 VALUES ($1, 'Taverna Luna', 'greek', '3 Dock Rd', 37.9838, 23.7275)
		 RETURNING id`, ownerID).Scan(&s.restaurantID)
	s.Require().NoError(err)
}

func (s *dealSuite) TestHalfOpenTimeWindowRejected() {
	ctx := s.T().Context()

	// A start time without an end time never reaches the table.
	_, err := s.DB.Exec(ctx,
		`INSERT INTO deals (restaurant_id, title, discount, start_time)
		 VALUES ($1, 'Broken Window', '10% off', '17:00')`, s.restaurantID)
	s.Require().Error(err)
	s.Contains(err.Error(), "deals_time_window_complete")

	_, err = s.DB.Exec(ctx,
		`INSERT INTO deals (restaurant_id, title, discount, end_time)
		 VALUES ($1, 'Broken Window', '10% off', '19:00')`, s.restaurantID)
	s.Require().Error(err)
	s.Contains(err.Error(), "deals_time_window_complete")
}

func (s *dealSuite) TestTodayIncludesAllDayDeal() {
	ctx := s.T().Context()
	var dealID uuid.UUID
	err := s.DB.QueryRow(ctx,
		`INSERT INTO deals (restaurant_id, title, discount)
		 VALUES ($1, 'All Day Gyros', '2 for 1')
		 RETURNING id`, s.restaurantID).Scan(&dealID)
	s.Require().NoError(err)

	rec := s.Do(http.MethodGet, "/api/deals/today", nil, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Deals []struct {
			ID    uuid.UUID `json:"id"`
			Title string    `json:"title"`
		} `json:"deals"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))

	found := false
	for _, d := range resp.Deals {
		if d.ID == dealID {
			found = true
			s.Equal("All Day Gyros", d.Title)
		}
	}
	s.True(found, "all-day deal missing from today listing")
}
