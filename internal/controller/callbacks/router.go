package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/doctor_booking/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/doctor_booking/internal/controller/callbacks/common"
	"github.com/Freeeeeet/doctor_booking/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/doctor_booking/internal/controller/callbacks/patient"
	"github.com/Freeeeeet/doctor_booking/internal/controller/callbacks/staff"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	switch {
	// ===== Common Navigation =====
	case data == keyboard.BackToMainData:
		common.HandleBackToMain(ctx, b, callback, h)
	case data == common.CancelDialog:
		common.HandleCancelDialog(ctx, b, callback, h)
	case data == common.Noop:
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Patient: Booking Flow =====
	case data == common.BackToCities:
		patient.HandleBackToCities(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CityPrefix):
		patient.HandleCity(ctx, b, callback, h)
	case strings.HasPrefix(data, common.DoctorPrefix):
		patient.HandleDoctor(ctx, b, callback, h)
	case strings.HasPrefix(data, common.DatePrefix):
		patient.HandleDate(ctx, b, callback, h)
	case strings.HasPrefix(data, common.SlotsPagePrefix):
		patient.HandleSlotsPage(ctx, b, callback, h)
	case strings.HasPrefix(data, common.SlotPrefix):
		patient.HandleSlot(ctx, b, callback, h)
	case data == common.UseSavedPhone:
		patient.HandleUseSavedPhone(ctx, b, callback, h)

	// ===== Patient: Bookings and Queue =====
	case data == common.MyBookings:
		patient.HandleMyBookings(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CancelBookingPrefix):
		patient.HandleCancelBooking(ctx, b, callback, h)
	case strings.HasPrefix(data, common.ConfirmCancelPrefix):
		patient.HandleConfirmCancel(ctx, b, callback, h)
	case strings.HasPrefix(data, common.QueuePrefix):
		patient.HandleQueueRefresh(ctx, b, callback, h)

	// ===== Staff =====
	case data == common.StaffRefresh:
		staff.HandleRefresh(ctx, b, callback, h)
	case strings.HasPrefix(data, common.StaffStartPrefix):
		staff.HandleStartVisit(ctx, b, callback, h)
	case strings.HasPrefix(data, common.StaffCompletePrefix):
		staff.HandleCompleteVisit(ctx, b, callback, h)

	// ===== Unknown Callback =====
	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Неизвестная команда")
	}
}
