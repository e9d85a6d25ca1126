package patient

import (
	"context"

	"github.com/Freeeeeet/doctor_booking/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/doctor_booking/internal/controller/callbacks/common"
	"github.com/Freeeeeet/doctor_booking/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleMyBookings показывает записи пациента по сохранённому телефону
func HandleMyBookings(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if hc.User.Phone == "" {
			hc.AnswerAlert(common.ErrorMessage(common.ErrNoPhone))
			return
		}

		bookings, err := h.BookingService.PatientBookings(ctx, hc.User.Phone)
		if err != nil {
			common.HandleError(hc, err, "patient_bookings")
			return
		}

		text, kb := common.BuildMyBookingsScreen(bookings)
		if err := hc.EditMessage(text, kb); err != nil {
			common.HandleError(hc, err, "show_bookings")
			return
		}
		hc.Answer("")
	})
}

// HandleCancelBooking просит подтвердить отмену записи
func HandleCancelBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		bookingID, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "parse_booking")
			return
		}

		booking, err := h.BookingService.GetBooking(ctx, bookingID)
		if err != nil {
			common.HandleError(hc, err, "get_booking")
			return
		}
		// Чужие записи не раскрываем
		if booking.PatientPhone != service.NormalizePhone(hc.User.Phone) {
			common.HandleError(hc, service.ErrBookingNotFound, "get_booking")
			return
		}

		text, kb := common.BuildCancelConfirmScreen(booking)
		if err := hc.EditMessage(text, kb); err != nil {
			common.HandleError(hc, err, "confirm_cancel_screen")
			return
		}
		hc.Answer("")
	})
}

// HandleConfirmCancel отменяет запись и освобождает слот
func HandleConfirmCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		bookingID, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "parse_booking")
			return
		}

		booking, err := h.BookingService.CancelBooking(ctx, bookingID, hc.User.Phone)
		if err != nil {
			common.HandleError(hc, err, "cancel_booking")
			return
		}

		h.Logger.Info("Booking cancelled by patient",
			zap.Int64("booking_id", booking.ID),
			zap.Int64("user_id", hc.User.ID))

		if err := hc.EditMessage("✅ Запись отменена.\n\nМои записи: /mybookings", nil); err != nil {
			h.Logger.Warn("Failed to edit message after cancel", zap.Error(err))
		}
		hc.Answer("Запись отменена")
	})
}
