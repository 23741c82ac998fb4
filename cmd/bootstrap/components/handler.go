package components

import (
	"goeat-api/internal/handler"
	"goeat-api/internal/handler/api"
	"goeat-api/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewRestaurantHandler,
		api.NewDealHandler,
		api.NewEventHandler,
		api.NewReservationHandler,
		api.NewReviewHandler,
		api.NewVideoHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	auth *api.AuthHandler,
	restaurant *api.RestaurantHandler,
	deal *api.DealHandler,
	event *api.EventHandler,
	reservation *api.ReservationHandler,
	review *api.ReviewHandler,
	video *api.VideoHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:        auth,
		Restaurant:  restaurant,
		Deal:        deal,
		Event:       event,
		Reservation: reservation,
		Review:      review,
		Video:       video,
	}
}
