package share

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	// public: resolves a share link without auth
	r.Get("/links/:token", func(c *fiber.Ctx) error {
		shared, err := svc.ResolveShareToken(c.Context(), c.Params("token"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "share link not found")
		}
		return c.JSON(shared)
	})

	r.Post("/follow/:userID", authMiddleware, func(c *fiber.Ctx) error {
		followerID, _ := c.Locals("user_id").(string)
		if followerID == c.Params("userID") {
			return fiber.NewError(fiber.StatusBadRequest, "cannot follow yourself")
		}
		if err := svc.Follow(c.Context(), followerID, c.Params("userID")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Delete("/follow/:userID", authMiddleware, func(c *fiber.Ctx) error {
		followerID, _ := c.Locals("user_id").(string)
		if err := svc.Unfollow(c.Context(), followerID, c.Params("userID")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Get("/following", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		follows, err := svc.Following(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(follows)
	})

	r.Get("/live", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		feed, err := svc.LiveFeed(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(feed)
	})
}
