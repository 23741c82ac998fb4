package api

import (
	"net/http"
	"strconv"

	reqdto "goeat-api/internal/handler/dto/request"
	resdto "goeat-api/internal/handler/dto/response"
	"goeat-api/internal/handler/httperr"
	"goeat-api/internal/handler/middleware"
	"goeat-api/internal/usecase/commands"
	"goeat-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RestaurantHandler struct {
	cmds commands.RestaurantCommands
	q    queries.RestaurantQueries
}

func NewRestaurantHandler(cmds commands.RestaurantCommands, q queries.RestaurantQueries) *RestaurantHandler {
	return &RestaurantHandler{cmds: cmds, q: q}
}

// @Summary Create restaurant
// @Description Register a new restaurant owned by the authenticated owner
// @Tags restaurants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRestaurantRequest true "Create restaurant request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /restaurants [post]
func (h *RestaurantHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	role, _ := middleware.GetUserRole(c)

	var req reqdto.CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	id, err := h.cmds.Create(c.Request.Context(), req.ToCommand(), userID, role.String())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Update restaurant
// @Description Partially update a restaurant owned by the caller
// @Tags restaurants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Restaurant ID"
// @Param request body reqdto.UpdateRestaurantRequest true "Update restaurant request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /restaurants/{id} [patch]
func (h *RestaurantHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	role, _ := middleware.GetUserRole(c)

	var req reqdto.UpdateRestaurantRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}
	if err := h.cmds.Update(c.Request.Context(), id, req.ToCommand(), userID, role.String()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get restaurant
// @Description Get a restaurant by ID
// @Tags restaurants
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} queries.RestaurantView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /restaurants/{id} [get]
func (h *RestaurantHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary List restaurants
// @Description List restaurants with optional filters and keyset pagination
// @Tags restaurants
// @Produce json
// @Param cuisine query string false "Cuisine filter"
// @Param min_rating query number false "Minimum rating"
// @Param price_range query int false "Price range (1-4)"
// @Param featured query bool false "Featured only"
// @Param search query string false "Search in name and description"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {array} queries.RestaurantView
// @Failure 400 {object} map[string]string
// @Router /restaurants [get]
func (h *RestaurantHandler) List(c *gin.Context) {
	filters := restaurantFilters(c)
	limit := queries.ValidateLimit(queryInt(c, "limit", 0))

	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}
	items, next, err := h.q.List(c.Request.Context(), filters, cursor, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := gin.H{"restaurants": items}
	if next != nil {
		resp["next_cursor"] = next.After
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Nearby restaurants
// @Description Find restaurants near a coordinate, sorted by distance
// @Tags restaurants
// @Produce json
// @Param latitude query number true "Latitude"
// @Param longitude query number true "Longitude"
// @Param radius query number false "Search radius in km (default 5, max 50)"
// @Param limit query int false "Max items (default 20)"
// @Success 200 {array} queries.NearbyRestaurantView
// @Failure 400 {object} map[string]string
// @Router /restaurants/nearby [get]
func (h *RestaurantHandler) Nearby(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("latitude"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("longitude"), 64)
	if latErr != nil || lonErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, queries.ErrInvalidCoordinates, "latitude and longitude are required", nil)
		return
	}
	radiusKm := queries.DefaultNearbyRadiusKm
	if v := c.Query("radius"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			radiusKm = f
		}
	}
	limit := queries.ValidateLimit(queryInt(c, "limit", 0))

	items, err := h.q.Nearby(c.Request.Context(), lat, lon, radiusKm, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurants": items})
}

func restaurantFilters(c *gin.Context) queries.RestaurantFilters {
	var f queries.RestaurantFilters
	if v := c.Query("cuisine"); v != "" {
		f.Cuisine = &v
	}
	if v := c.Query("search"); v != "" {
		f.Search = &v
	}
	if v := c.Query("min_rating"); v != "" {
		if fv, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinRating = &fv
		}
	}
	if v := c.Query("price_range"); v != "" {
		if iv, err := strconv.Atoi(v); err == nil {
			f.PriceRange = &iv
		}
	}
	if v := c.Query("featured"); v != "" {
		if bv, err := strconv.ParseBool(v); err == nil {
			f.Featured = &bv
		}
	}
	return f
}

func queryInt(c *gin.Context, name string, def int) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	iv, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return iv
}
