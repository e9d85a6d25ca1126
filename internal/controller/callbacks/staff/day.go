package staff

import (
	"context"

	"github.com/Freeeeeet/doctor_booking/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/doctor_booking/internal/controller/callbacks/common"
	"github.com/Freeeeeet/doctor_booking/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleRefresh перерисовывает список дня
func HandleRefresh(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStaff(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if err := showDaySheet(hc); err != nil {
			common.HandleError(hc, err, "staff_refresh")
			return
		}
		hc.Answer("🔄 Обновлено")
	})
}

// HandleStartVisit вызывает пациента на приём
func HandleStartVisit(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStaff(ctx, b, callback, h, func(hc *common.HandlerContext) {
		changeStatus(hc, model.BookingStatusRunning)
	})
}

// HandleCompleteVisit завершает приём. Повторное нажатие не считается ошибкой.
func HandleCompleteVisit(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStaff(ctx, b, callback, h, func(hc *common.HandlerContext) {
		changeStatus(hc, model.BookingStatusCompleted)
	})
}

func changeStatus(hc *common.HandlerContext, to model.BookingStatus) {
	h := hc.Handler

	bookingID, err := common.ParseIDFromCallback(hc.Callback.Data)
	if err != nil {
		common.HandleError(hc, err, "parse_booking")
		return
	}

	doctorID := hc.StaffDoctorID()
	today := hc.Today()

	var booking *model.Booking
	switch to {
	case model.BookingStatusRunning:
		booking, err = h.BookingService.StartVisit(hc.Ctx, doctorID, today, bookingID)
	default:
		booking, err = h.BookingService.CompleteVisit(hc.Ctx, doctorID, today, bookingID)
	}
	if err != nil {
		common.HandleError(hc, err, "staff_"+string(to))
		return
	}

	h.Logger.Info("Booking status changed by staff",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("doctor_id", doctorID),
		zap.String("status", string(booking.Status)),
		zap.Int64("staff_user_id", hc.User.ID))

	if err := showDaySheet(hc); err != nil {
		h.Logger.Warn("Failed to refresh day sheet", zap.Error(err))
	}
	hc.Answer("✅ Готово")
}

func showDaySheet(hc *common.HandlerContext) error {
	h := hc.Handler
	doctorID := hc.StaffDoctorID()

	doctor, err := h.DoctorService.GetDoctor(hc.Ctx, doctorID)
	if err != nil {
		return err
	}
	sheet, err := h.QueueService.DayList(hc.Ctx, doctorID, hc.Today())
	if err != nil {
		return err
	}

	text, kb := common.BuildDaySheetScreen(doctor, sheet)
	return hc.EditMessage(text, kb)
}
