package eld

import (
	"strconv"
	"time"

	"backend-tripplanner/internal/hos"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

const (
	defaultTimelineWidth  = 960.0
	defaultTimelineHeight = 120.0
	dateLayout            = "2006-01-02"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/trips/:tripID/logs/generate", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		entries, dailies, err := svc.Generate(c.Context(), c.Params("tripID"), userID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return fiber.NewError(fiber.StatusNotFound, "trip not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"log_entries": entries,
			"daily_logs":  dailies,
		})
	})

	r.Get("/trips/:tripID/logs", authMiddleware, func(c *fiber.Ctx) error {
		entries, err := svc.ListLogEntries(c.Context(), c.Params("tripID"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(entries)
	})

	r.Get("/trips/:tripID/daily-logs", authMiddleware, func(c *fiber.Ctx) error {
		from, err := optionalDate(c.Query("from"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "from must be YYYY-MM-DD")
		}
		to, err := optionalDate(c.Query("to"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "to must be YYYY-MM-DD")
		}
		logs, err := svc.ListDailyLogs(c.Context(), c.Params("tripID"), from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(logs)
	})

	r.Get("/trips/:tripID/cycle", authMiddleware, func(c *fiber.Ctx) error {
		endDate, err := time.Parse(dateLayout, c.Query("end_date"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "end_date must be YYYY-MM-DD")
		}
		totals, err := svc.CycleSummary(c.Context(), c.Params("tripID"), endDate)
		if err != nil {
			if err == ErrMissingDate {
				return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{
			"end_date": endDate.Format(dateLayout),
			"driving":  hos.Round2(totals.Driving),
			"on_duty":  hos.Round2(totals.OnDuty),
		})
	})

	r.Get("/daily-logs/:logID", authMiddleware, func(c *fiber.Ctx) error {
		dailyLog, err := svc.GetDailyLog(c.Context(), c.Params("logID"))
		if err != nil {
			if err == pgx.ErrNoRows {
				return fiber.NewError(fiber.StatusNotFound, "daily log not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(dailyLog)
	})

	r.Get("/daily-logs/:logID/timeline", authMiddleware, func(c *fiber.Ctx) error {
		width, err := dimension(c.Query("width"), defaultTimelineWidth)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "width must be a positive number")
		}
		height, err := dimension(c.Query("height"), defaultTimelineHeight)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "height must be a positive number")
		}
		lines, err := svc.Timeline(c.Context(), c.Params("logID"), width, height)
		if err != nil {
			if err == pgx.ErrNoRows {
				return fiber.NewError(fiber.StatusNotFound, "daily log not found")
			}
			if err == ErrMissingDate {
				return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(lines)
	})
}

func optionalDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, raw)
}

func dimension(raw string, fallback float64) (float64, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return 0, fiber.ErrBadRequest
	}
	return v, nil
}
