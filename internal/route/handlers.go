package route

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/:tripID/calculate", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		route, err := svc.Calculate(c.Context(), c.Params("tripID"), userID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return fiber.NewError(fiber.StatusNotFound, "trip not found")
			}
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(route)
	})

	r.Get("/:tripID", authMiddleware, func(c *fiber.Ctx) error {
		route, err := svc.GetByTrip(c.Context(), c.Params("tripID"))
		if err != nil {
			if err == pgx.ErrNoRows {
				return fiber.NewError(fiber.StatusNotFound, "route not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(route)
	})
}

func RegisterGeocodeRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req struct {
			Address string `json:"address"`
		}
		if err := c.BodyParser(&req); err != nil || req.Address == "" {
			return fiber.NewError(fiber.StatusBadRequest, "address required")
		}
		loc, err := svc.maps.Geocode(c.Context(), req.Address)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.JSON(loc)
	})
}
