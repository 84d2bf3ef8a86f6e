package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/odwoodruff/pet-training-service/internal/dto"
)

// ErrorHandler renders every error as a {"message": ...} envelope. Internal
// errors get a fixed message so exception text never reaches clients.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	}
	if code >= http.StatusInternalServerError {
		msg = "internal server error"
	}

	_ = c.JSON(code, dto.ErrorResponse{Message: msg})
}
