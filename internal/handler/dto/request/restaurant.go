package request

import (
	"goeat-api/internal/usecase/commands"
)

type CreateRestaurantRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Cuisine     string  `json:"cuisine" binding:"required"`
	Address     string  `json:"address" binding:"required"`
	Latitude    float64 `json:"latitude" binding:"required"`
	Longitude   float64 `json:"longitude" binding:"required"`
	PriceRange  int     `json:"price_range" binding:"required,min=1,max=4"`
	ImageURL    string  `json:"image_url"`
}

func (r CreateRestaurantRequest) ToCommand() commands.CreateRestaurantRequest {
	return commands.CreateRestaurantRequest{
		Name:        r.Name,
		Description: r.Description,
		Cuisine:     r.Cuisine,
		Address:     r.Address,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		PriceRange:  r.PriceRange,
		ImageURL:    r.ImageURL,
	}
}

type UpdateRestaurantRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Cuisine     *string  `json:"cuisine,omitempty"`
	Address     *string  `json:"address,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
	PriceRange  *int     `json:"price_range,omitempty" binding:"omitempty,min=1,max=4"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

func (r UpdateRestaurantRequest) ToCommand() commands.UpdateRestaurantRequest {
	return commands.UpdateRestaurantRequest{
		Name:        r.Name,
		Description: r.Description,
		Cuisine:     r.Cuisine,
		Address:     r.Address,
		ImageURL:    r.ImageURL,
		PriceRange:  r.PriceRange,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		IsActive:    r.IsActive,
	}
}
