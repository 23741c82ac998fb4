package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"goeat-api/internal/domain/user"
	"goeat-api/internal/handler/api"
	"goeat-api/internal/handler/middleware"
	"goeat-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth        *api.AuthHandler
	Restaurant  *api.RestaurantHandler
	Deal        *api.DealHandler
	Event       *api.EventHandler
	Reservation *api.ReservationHandler
	Review      *api.ReviewHandler
	Video       *api.VideoHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := authMiddleware.RequireAuth()
	optionalAuth := authMiddleware.OptionalAuth()
	requireOwner := authMiddleware.RequireRole(user.RoleOwner, user.RoleAdmin)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me, Mw: []gin.HandlerFunc{requireAuth}},
			})
		}

		restaurants := apiGroup.Group("/restaurants")
		{
			addRoutes(restaurants, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Restaurant.List},
				{Method: http.MethodGet, Path: "/nearby", Handler: h.Restaurant.Nearby},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Restaurant.Get},
				{Method: http.MethodGet, Path: "/:id/deals", Handler: h.Deal.ListByRestaurant},
				{Method: http.MethodGet, Path: "/:id/reviews", Handler: h.Review.ListByRestaurant},
				{Method: http.MethodGet, Path: "/:id/reservations/availability", Handler: h.Reservation.Availability},
				{Method: http.MethodPost, Path: "", Handler: h.Restaurant.Create, Mw: []gin.HandlerFunc{requireAuth, requireOwner}},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Restaurant.Update, Mw: []gin.HandlerFunc{requireAuth, requireOwner}},
				{Method: http.MethodPost, Path: "/:id/deals", Handler: h.Deal.Create, Mw: []gin.HandlerFunc{requireAuth, requireOwner}},
				{Method: http.MethodPost, Path: "/:id/reviews", Handler: h.Review.Create, Mw: []gin.HandlerFunc{requireAuth}},
				{Method: http.MethodGet, Path: "/:id/reservations", Handler: h.Reservation.ListByRestaurant, Mw: []gin.HandlerFunc{requireAuth}},
			})
		}

		deals := apiGroup.Group("/deals")
		{
			addRoutes(deals, []route{
				{Method: http.MethodGet, Path: "/today", Handler: h.Deal.Today},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Deal.Get},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Deal.Update, Mw: []gin.HandlerFunc{requireAuth, requireOwner}},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Deal.Deactivate, Mw: []gin.HandlerFunc{requireAuth, requireOwner}},
			})
		}

		events := apiGroup.Group("/events")
		{
			addRoutes(events, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Event.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Event.Get},
				{Method: http.MethodGet, Path: "/:id/attendees", Handler: h.Event.ListAttendees},
				{Method: http.MethodPost, Path: "", Handler: h.Event.Create, Mw: []gin.HandlerFunc{requireAuth}},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Event.Update, Mw: []gin.HandlerFunc{requireAuth}},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Event.Deactivate, Mw: []gin.HandlerFunc{requireAuth}},
				{Method: http.MethodPost, Path: "/:id/attend", Handler: h.Event.Attend, Mw: []gin.HandlerFunc{requireAuth}},
				{Method: http.MethodDelete, Path: "/:id/attend", Handler: h.Event.Unattend, Mw: []gin.HandlerFunc{requireAuth}},
			})
		}

		reservations := apiGroup.Group("/reservations")
		reservations.Use(requireAuth)
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Reservation.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Reservation.ListMine},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Reservation.Get},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: h.Reservation.UpdateStatus},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Reservation.Cancel},
			})
		}

		reviews := apiGroup.Group("/reviews")
		reviews.Use(requireAuth)
		{
			addRoutes(reviews, []route{
				{Method: http.MethodPut, Path: "/:id", Handler: h.Review.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Review.Delete},
			})
		}

		videos := apiGroup.Group("/videos")
		{
			addRoutes(videos, []route{
				{Method: http.MethodGet, Path: "/feed", Handler: h.Video.Feed, Mw: []gin.HandlerFunc{optionalAuth}},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Video.Get, Mw: []gin.HandlerFunc{optionalAuth}},
				{Method: http.MethodGet, Path: "/:id/comments", Handler: h.Video.ListComments},
				{Method: http.MethodPost, Path: "/:id/share", Handler: h.Video.Share},
				{Method: http.MethodPost, Path: "", Handler: h.Video.Create, Mw: []gin.HandlerFunc{requireAuth}},
				{Method: http.MethodPost, Path: "/:id/like", Handler: h.Video.ToggleLike, Mw: []gin.HandlerFunc{requireAuth}},
				{Method: http.MethodPost, Path: "/:id/comments", Handler: h.Video.AddComment, Mw: []gin.HandlerFunc{requireAuth}},
				{Method: http.MethodDelete, Path: "/comments/:id", Handler: h.Video.DeleteComment, Mw: []gin.HandlerFunc{requireAuth}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
