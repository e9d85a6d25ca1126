package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/Freeeeeet/doctor_booking/internal/model"
	"github.com/Freeeeeet/doctor_booking/internal/service"
	"github.com/labstack/echo/v4"
)

// DoctorDirectory справочник врачей
type DoctorDirectory interface {
	ListByCity(ctx context.Context, city string) ([]*model.Doctor, error)
	ListByHospital(ctx context.Context, hospital string) ([]*model.Doctor, error)
	ListCities(ctx context.Context) ([]string, error)
	ListHospitals(ctx context.Context, city string) ([]string, error)
}

// SlotFinder свободные слоты врача
type SlotFinder interface {
	AvailableSlots(ctx context.Context, doctorID int64, date model.Date) ([]model.TimeOfDay, error)
}

// Booker создание записей и действия персонала
type Booker interface {
	CreateBooking(ctx context.Context, in service.BookingInput) (*model.Booking, error)
	CompleteVisit(ctx context.Context, doctorID int64, date model.Date, bookingID int64) (*model.Booking, error)
}

// QueueViewer состояние очереди и список дня
type QueueViewer interface {
	ComputeQueue(ctx context.Context, doctorID int64, date model.Date, phone string) (*model.QueueStatus, error)
	DayList(ctx context.Context, doctorID int64, date model.Date) (*service.DaySheet, error)
}

type Handler struct {
	doctors  DoctorDirectory
	slots    SlotFinder
	bookings Booker
	queue    QueueViewer
	clock    service.Clock
}

func NewHandler(doctors DoctorDirectory, slots SlotFinder, bookings Booker, queue QueueViewer, clock service.Clock) *Handler {
	return &Handler{
		doctors:  doctors,
		slots:    slots,
		bookings: bookings,
		queue:    queue,
		clock:    clock,
	}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/doctors", h.ListDoctors)
	api.GET("/cities", h.ListCities)
	api.GET("/hospitals", h.ListHospitals)
	api.GET("/slots", h.ListSlots)
	api.POST("/bookings", h.CreateBooking)
	api.GET("/queue", h.GetQueue)

	staff := api.Group("/staff")
	staff.GET("/day", h.GetDay)
	staff.POST("/bookings/:id/complete", h.CompleteBooking)
}

// -- Directory --

func (h *Handler) ListDoctors(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		doctors []*model.Doctor
		err     error
	)
	switch {
	case c.QueryParam("city") != "":
		doctors, err = h.doctors.ListByCity(ctx, c.QueryParam("city"))
	case c.QueryParam("hospital") != "":
		doctors, err = h.doctors.ListByHospital(ctx, c.QueryParam("hospital"))
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "city or hospital required")
	}
	if err != nil {
		return err
	}
	if doctors == nil {
		doctors = []*model.Doctor{}
	}
	return c.JSON(http.StatusOK, doctors)
}

func (h *Handler) ListCities(c echo.Context) error {
	cities, err := h.doctors.ListCities(c.Request().Context())
	if err != nil {
		return err
	}
	if cities == nil {
		cities = []string{}
	}
	return c.JSON(http.StatusOK, cities)
}

// ListHospitals больницы с активными врачами, ?city= сужает до города
func (h *Handler) ListHospitals(c echo.Context) error {
	hospitals, err := h.doctors.ListHospitals(c.Request().Context(), strings.TrimSpace(c.QueryParam("city")))
	if err != nil {
		return err
	}
	if hospitals == nil {
		hospitals = []string{}
	}
	return c.JSON(http.StatusOK, hospitals)
}

// -- Booking --

// SlotsResponse свободные слоты врача на дату
type SlotsResponse struct {
	DoctorID int64             `json:"doctor_id"`
	Date     model.Date        `json:"date"`
	Slots    []model.TimeOfDay `json:"slots"`
}

func (h *Handler) ListSlots(c echo.Context) error {
	doctorID, err := doctorIDParam(c)
	if err != nil {
		return err
	}
	date, err := model.ParseDate(c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	slots, err := h.slots.AvailableSlots(c.Request().Context(), doctorID, date)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, SlotsResponse{DoctorID: doctorID, Date: date, Slots: slots})
}

// CreateBookingRequest тело запроса записи
type CreateBookingRequest struct {
	DoctorID     int64  `json:"doctor_id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	PatientName  string `json:"patient_name"`
	PatientPhone string `json:"patient_phone"`
}

func (h *Handler) CreateBooking(c echo.Context) error {
	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.bookings.CreateBooking(c.Request().Context(), service.BookingInput{
		DoctorID:     req.DoctorID,
		Date:         req.Date,
		Time:         req.Time,
		PatientName:  req.PatientName,
		PatientPhone: req.PatientPhone,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, booking)
}

// GetQueue состояние очереди; дата по умолчанию сегодня в зоне клиники
func (h *Handler) GetQueue(c echo.Context) error {
	doctorID, err := doctorIDParam(c)
	if err != nil {
		return err
	}
	date, err := h.dateParamOrToday(c)
	if err != nil {
		return err
	}

	queue, err := h.queue.ComputeQueue(c.Request().Context(), doctorID, date, strings.TrimSpace(c.QueryParam("phone")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, queue)
}

// -- Staff --

func (h *Handler) GetDay(c echo.Context) error {
	doctorID, err := doctorIDParam(c)
	if err != nil {
		return err
	}
	date, err := h.dateParamOrToday(c)
	if err != nil {
		return err
	}

	sheet, err := h.queue.DayList(c.Request().Context(), doctorID, date)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sheet)
}

// CompleteBookingRequest тело запроса завершения приёма
type CompleteBookingRequest struct {
	DoctorID int64  `json:"doctor_id"`
	Date     string `json:"date"`
}

func (h *Handler) CompleteBooking(c echo.Context) error {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookingID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	var req CompleteBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.DoctorID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "doctor_id required")
	}

	date := service.Today(h.clock)
	if req.Date != "" {
		date, err = model.ParseDate(req.Date)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
		}
	}

	booking, err := h.bookings.CompleteVisit(c.Request().Context(), req.DoctorID, date, bookingID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}

func doctorIDParam(c echo.Context) (int64, error) {
	doctorID, err := strconv.ParseInt(c.QueryParam("doctor_id"), 10, 64)
	if err != nil || doctorID <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "doctor_id required")
	}
	return doctorID, nil
}

func (h *Handler) dateParamOrToday(c echo.Context) (model.Date, error) {
	raw := c.QueryParam("date")
	if raw == "" {
		return service.Today(h.clock), nil
	}
	date, err := model.ParseDate(raw)
	if err != nil {
		return model.Date{}, echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	return date, nil
}
