package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/odwoodruff/pet-training-service/internal/dto"
	"github.com/odwoodruff/pet-training-service/internal/models"
	"github.com/odwoodruff/pet-training-service/internal/service"
)

// TrainerClassHandler serves the trainer dashboard: class rosters, booking
// lists and status updates.
type TrainerClassHandler struct {
	trainers service.TrainerService
	bookings service.BookingService
}

func NewTrainerClassHandler(trainers service.TrainerService, bookings service.BookingService) *TrainerClassHandler {
	return &TrainerClassHandler{trainers: trainers, bookings: bookings}
}

func (h *TrainerClassHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/trainerclasses")
	g.GET("/trainer/:trainerId", h.Classes)
	g.GET("/trainer/:trainerId/bookings", h.Bookings)
	g.GET("/trainer/:trainerId/bookings/upcoming", h.UpcomingBookings)
	g.PUT("/booking/:bookingId/status", h.UpdateBookingStatus)
}

func (h *TrainerClassHandler) Classes(c echo.Context) error {
	trainerID, err := h.trainerID(c)
	if err != nil {
		return err
	}

	classes, err := h.trainers.Classes(c.Request().Context(), trainerID)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, classes)
}

func (h *TrainerClassHandler) Bookings(c echo.Context) error {
	trainerID, err := h.trainerID(c)
	if err != nil {
		return err
	}

	bookings, err := h.trainers.Bookings(c.Request().Context(), trainerID)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *TrainerClassHandler) UpcomingBookings(c echo.Context) error {
	trainerID, err := h.trainerID(c)
	if err != nil {
		return err
	}

	bookings, err := h.trainers.UpcomingBookings(c.Request().Context(), trainerID)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *TrainerClassHandler) UpdateBookingStatus(c echo.Context) error {
	bookingID, err := strconv.ParseUint(c.Param("bookingId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	var req dto.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.bookings.UpdateStatus(
		c.Request().Context(), uint(bookingID), models.BookingStatus(req.Status), req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidStatus), errors.Is(err, service.ErrInvalidTransition):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *TrainerClassHandler) trainerID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("trainerId"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid trainer id")
	}
	return uint(id), nil
}
