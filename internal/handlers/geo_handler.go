package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pawhelp/pawhelp-backend/internal/dto"
	"github.com/pawhelp/pawhelp-backend/internal/geo"
)

// GeoHandler proxies address lookups for the submission form.
type GeoHandler struct {
	geocoder *geo.Client
}

func NewGeoHandler(geocoder *geo.Client) *GeoHandler {
	return &GeoHandler{geocoder: geocoder}
}

func (h *GeoHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Query parameter q is required",
		})
	}

	places, err := h.geocoder.Search(c.Context(), query, c.QueryInt("limit"))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Superseded by a newer lookup; the client already moved on.
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: "Geocoding lookup failed",
		})
	}
	return c.JSON(places)
}

func (h *GeoHandler) Reverse(c *fiber.Ctx) error {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lon, err2 := strconv.ParseFloat(c.Query("lon"), 64)
	if err1 != nil || err2 != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Valid lat and lon parameters are required",
		})
	}

	place, err := h.geocoder.Reverse(c.Context(), lat, lon)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: "Geocoding lookup failed",
		})
	}
	return c.JSON(place)
}
