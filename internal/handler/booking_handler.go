package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/odwoodruff/pet-training-service/internal/dto"
	"github.com/odwoodruff/pet-training-service/internal/models"
	"github.com/odwoodruff/pet-training-service/internal/repository"
	"github.com/odwoodruff/pet-training-service/internal/service"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/bookings")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.PUT("/:id/cancel", h.Cancel)
	g.PUT("/:id/confirm", h.Confirm)
}

func (h *BookingHandler) List(c echo.Context) error {
	q := repository.BookingQuery{
		SortBy:    strings.ToLower(c.QueryParam("sortBy")),
		SortOrder: strings.ToLower(c.QueryParam("sortOrder")),
	}

	if v := c.QueryParam("customerId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid customerId")
		}
		customerID := uint(id)
		q.CustomerID = &customerID
	}
	if v := c.QueryParam("status"); v != "" {
		status := models.BookingStatus(v)
		if !status.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown booking status")
		}
		q.Status = &status
	}
	if v := c.QueryParam("startDate"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid startDate")
		}
		q.StartDate = &t
	}
	if v := c.QueryParam("endDate"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid endDate")
		}
		q.EndDate = &t
	}

	bookings, err := h.svc.List(c.Request().Context(), q)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.svc.Get(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) Create(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.PetID == 0 || req.ClassID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "pet_id and class_id are required")
	}

	booking := models.Booking{
		CustomerID:    req.CustomerID,
		PetID:         req.PetID,
		ClassID:       req.ClassID,
		Status:        models.BookingStatus(req.Status),
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	if req.SessionAt != nil {
		booking.SessionAt = *req.SessionAt
	}

	if err := h.svc.Create(c.Request().Context(), &booking); err != nil {
		switch {
		case errors.Is(err, service.ErrClassNotFound),
			errors.Is(err, service.ErrPetNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPetNotOwned),
			errors.Is(err, service.ErrInvalidStatus):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/bookings/%d", booking.ID))
	return c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	var booking models.Booking
	if err := c.Bind(&booking); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.svc.Update(c.Request().Context(), uint(id), &booking); err != nil {
		switch {
		case errors.Is(err, service.ErrBookingIDMismatch),
			errors.Is(err, service.ErrInvalidStatus),
			errors.Is(err, service.ErrInvalidTransition),
			errors.Is(err, service.ErrPetNotOwned):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrBookingNotFound),
			errors.Is(err, service.ErrPetNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	if err := h.svc.Delete(c.Request().Context(), uint(id)); err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "booking deleted"})
}

func (h *BookingHandler) Cancel(c echo.Context) error {
	return h.transition(c, h.svc.Cancel)
}

func (h *BookingHandler) Confirm(c echo.Context) error {
	return h.transition(c, h.svc.Confirm)
}

func (h *BookingHandler) transition(c echo.Context, apply func(ctx context.Context, id uint) (*models.Booking, error)) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := apply(c.Request().Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidTransition):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, booking)
}
