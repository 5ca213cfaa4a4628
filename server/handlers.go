package server

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	producthunt "github.com/anatolykoptev/go-producthunt"
)

const (
	errDateRequired = "Date parameter is required"
	errDateFormat   = "Date parameter must be formatted as YYYY-MM-DD"
)

type dateQuery struct {
	Date string `validate:"required,datetime=2006-01-02"`
}

// dateParam reads and validates the date query parameter.
func (s *Server) dateParam(c fiber.Ctx) (string, error) {
	q := dateQuery{Date: c.Query("date")}
	if err := s.validate.Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "required" {
			return "", fiber.NewError(fiber.StatusBadRequest, errDateRequired)
		}
		return "", fiber.NewError(fiber.StatusBadRequest, errDateFormat)
	}
	return q.Date, nil
}

// fetchError maps a client error to a response status.
func fetchError(err error) error {
	var dateErr *producthunt.InvalidDateError
	if errors.As(err, &dateErr) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return err
}

func (s *Server) handlePosts(c fiber.Ctx) error {
	date, err := s.dateParam(c)
	if err != nil {
		return err
	}
	res, err := s.feed.FetchAllPosts(c.Context(), date, producthunt.DefaultDayPageSize)
	if err != nil {
		return fetchError(err)
	}
	return c.JSON(res)
}

func (s *Server) handleVotes(c fiber.Ctx) error {
	date, err := s.dateParam(c)
	if err != nil {
		return err
	}
	votes, err := s.feed.FetchVotes(c.Context(), date, producthunt.DefaultDayPageSize)
	if err != nil {
		return fetchError(err)
	}
	return c.JSON(fiber.Map{"votes": votes})
}

func (s *Server) handleCache(c fiber.Ctx) error {
	entries := s.feed.CacheStats()
	return c.JSON(fiber.Map{
		"totalEntries": len(entries),
		"entries":      entries,
	})
}

func (s *Server) handleHealth(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
