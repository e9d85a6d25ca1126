package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/Freeeeeet/doctor_booking/internal/service"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Field string `json:"field,omitempty"`
}

// statusFor сопоставляет ошибку сервиса HTTP статусу и коду для клиента
func statusFor(err error) (int, ErrorResponse) {
	var (
		validationErr  *service.ValidationError
		pastErr        *service.PastTimeError
		duplicateErr   *service.DuplicatePatientBookingError
		unavailableErr *service.SlotUnavailableError
		raceErr        *service.SlotRaceError
		httpErr        *echo.HTTPError
	)

	switch {
	case errors.As(err, &httpErr):
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		return httpErr.Code, ErrorResponse{Error: msg}
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Code: "invalid_input", Field: validationErr.Field}
	case errors.As(err, &pastErr):
		return http.StatusUnprocessableEntity, ErrorResponse{Error: "Selected time is in the past. Please choose a future slot.", Code: "past_time"}
	case errors.As(err, &duplicateErr):
		return http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "duplicate_booking"}
	case errors.As(err, &unavailableErr):
		return http.StatusConflict, ErrorResponse{Error: "That time is not available anymore. Please pick another slot.", Code: "slot_unavailable"}
	case errors.As(err, &raceErr):
		return http.StatusConflict, ErrorResponse{Error: "That time was just booked. Please choose another slot.", Code: "slot_taken"}
	case errors.Is(err, service.ErrDoctorNotFound):
		return http.StatusNotFound, ErrorResponse{Error: "doctor not found", Code: "doctor_not_found"}
	case errors.Is(err, service.ErrBookingNotFound):
		return http.StatusNotFound, ErrorResponse{Error: "booking not found", Code: "booking_not_found"}
	case errors.Is(err, service.ErrInvalidTransition):
		return http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "invalid_transition"}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, ErrorResponse{Error: "request timed out", Code: "timeout"}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: "storage_error"}
	}
}

func errorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := statusFor(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Error(err))
		}

		if err := c.JSON(status, body); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
	}
}
