package request

import (
	"time"

	"goeat-api/internal/usecase/commands"
)

type DealRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Discount    string  `json:"discount" binding:"required"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	DayOfWeek   *int    `json:"day_of_week,omitempty" binding:"omitempty,min=0,max=6"`
	Featured    bool    `json:"featured"`
}

func (r DealRequest) ToCommand() (commands.DealRequest, error) {
	startDate, err := parseDatePtr(r.StartDate)
	if err != nil {
		return commands.DealRequest{}, err
	}
	endDate, err := parseDatePtr(r.EndDate)
	if err != nil {
		return commands.DealRequest{}, err
	}
	return commands.DealRequest{
		Title:       r.Title,
		Description: r.Description,
		Discount:    r.Discount,
		StartDate:   startDate,
		EndDate:     endDate,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		DayOfWeek:   r.DayOfWeek,
		Featured:    r.Featured,
	}, nil
}

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
