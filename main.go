package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/odwoodruff/pet-training-service/config"
	"github.com/odwoodruff/pet-training-service/internal/handler"
	"github.com/odwoodruff/pet-training-service/internal/middleware"
	"github.com/odwoodruff/pet-training-service/internal/repository"
	"github.com/odwoodruff/pet-training-service/internal/service"
	"github.com/odwoodruff/pet-training-service/pkg/database"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// Repositories
	customerRepo := repository.NewCustomerRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	sessionRepo := repository.NewAuthSessionRepository(db)
	petRepo := repository.NewPetRepository(db)
	classRepo := repository.NewClassRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// Services
	authSvc := service.NewAuthService(customerRepo, staffRepo, sessionRepo, cfg.SessionTTL)
	petSvc := service.NewPetService(petRepo, customerRepo)
	classSvc := service.NewClassService(classRepo)
	bookingSvc := service.NewBookingService(bookingRepo, classRepo, petRepo)
	trainerSvc := service.NewTrainerService(staffRepo, classRepo, bookingRepo)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())
	e.Use(echoMw.CORSWithConfig(echoMw.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "pet-training-service"})
	})

	handler.NewAuthHandler(authSvc).RegisterRoutes(e)
	handler.NewPetHandler(petSvc).RegisterRoutes(e)
	handler.NewClassHandler(classSvc).RegisterRoutes(e)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)
	handler.NewTrainerHandler(trainerSvc).RegisterRoutes(e)
	handler.NewTrainerClassHandler(trainerSvc, bookingSvc).RegisterRoutes(e)

	log.Printf("Pet Training Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
