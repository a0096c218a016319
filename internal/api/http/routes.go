package httpapi

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-forecast-view/internal/store"
	"github.com/i474232898/weather-forecast-view/internal/weather"
)

var validate = validator.New()

// ForecastService is what the HTTP layer needs from the forecast service.
type ForecastService interface {
	Location() weather.Location
	Latest() (weather.ForecastView, error)
	History(from, to time.Time) ([]weather.ForecastView, error)
	Current() (weather.CurrentConditions, error)
	Refresh(ctx context.Context) (weather.ForecastView, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app. Manual refreshes
// are bounded by refreshTimeout.
func RegisterRoutes(app *fiber.App, service ForecastService, refreshTimeout time.Duration) {
	v1 := app.Group("/api/v1")

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		view, err := service.Latest()
		if err != nil {
			return lookupError(err, "no forecast available yet")
		}
		return c.JSON(view)
	})

	v1.Get("/forecast/days/:date", func(c *fiber.Ctx) error {
		q := dayQuery{Date: c.Params("date")}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
		}
		date, _ := time.Parse("2006-01-02", q.Date)

		view, err := service.Latest()
		if err != nil {
			return lookupError(err, "no forecast available yet")
		}
		group, ok := view.Group(date)
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no forecast for requested date")
		}
		return c.JSON(group)
	})

	v1.Get("/forecast/current", func(c *fiber.Ctx) error {
		cur, err := service.Current()
		if err != nil {
			if errors.Is(err, weather.ErrNoCurrentHour) {
				return fiber.NewError(fiber.StatusNotFound, "no forecast hour for the current time")
			}
			return lookupError(err, "no forecast available yet")
		}
		return c.JSON(fiber.Map{
			"location": service.Location(),
			"current":  cur,
		})
	})

	v1.Get("/forecast/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		views, err := service.History(req.From, req.To)
		if err != nil {
			return lookupError(err, "no forecast history for requested range")
		}

		entries := make([]historyEntry, 0, len(views))
		for _, v := range views {
			entries = append(entries, historyEntry{
				ID:            v.ID,
				Provider:      v.Provider,
				FetchedAt:     v.FetchedAt,
				ReferenceDate: v.ReferenceDate.Format("2006-01-02"),
				Days:          len(v.Groups),
			})
		}

		return c.JSON(fiber.Map{
			"location": service.Location(),
			"from":     req.From,
			"to":       req.To,
			"views":    entries,
		})
	})

	v1.Post("/forecast/refresh", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), refreshTimeout)
		defer cancel()

		view, err := service.Refresh(ctx)
		if err != nil {
			switch {
			case errors.Is(err, weather.ErrMalformedInput):
				return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
			case errors.Is(err, weather.ErrNoProviders):
				return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
			default:
				return fiber.NewError(fiber.StatusBadGateway, "failed to refresh forecast")
			}
		}
		return c.JSON(view)
	})
}

func lookupError(err error, notFoundMsg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, notFoundMsg)
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to load forecast")
}

type dayQuery struct {
	Date string `validate:"required,datetime=2006-01-02"`
}

type historyEntry struct {
	ID            string    `json:"id"`
	Provider      string    `json:"provider"`
	FetchedAt     time.Time `json:"fetchedAt"`
	ReferenceDate string    `json:"referenceDate"`
	Days          int       `json:"days"`
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
