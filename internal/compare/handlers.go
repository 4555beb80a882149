package compare

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/sessions/:sessionID/routes/:routeID", func(c *fiber.Ctx) error {
		thresholdKm := 0.0
		if raw := c.Query("threshold_km"); raw != "" {
			parsed, err := strconv.ParseFloat(raw, 64)
			if err != nil || parsed <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "threshold_km must be a positive number")
			}
			thresholdKm = parsed
		}

		stats, err := svc.CompareSessionToRoute(c.Context(), c.Params("sessionID"), c.Params("routeID"), thresholdKm)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(stats)
	})
}
