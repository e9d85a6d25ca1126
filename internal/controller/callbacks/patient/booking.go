package patient

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/doctor_booking/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/doctor_booking/internal/controller/callbacks/common"
	"github.com/Freeeeeet/doctor_booking/internal/controller/callbacks/common/formatting"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleBackToCities показывает список городов
func HandleBackToCities(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	cities, err := h.DoctorService.ListCities(ctx)
	if err != nil {
		common.HandleError(hc, err, "list_cities")
		return
	}

	text, kb := common.BuildCitiesScreen(cities)
	if err := hc.EditMessage(text, kb); err != nil {
		common.HandleError(hc, err, "show_cities")
		return
	}
	hc.Answer("")
}

// HandleCity показывает врачей выбранного города
func HandleCity(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	city, err := common.ParseCity(callback.Data)
	if err != nil {
		common.HandleError(hc, err, "parse_city")
		return
	}

	doctors, err := h.DoctorService.ListByCity(ctx, city)
	if err != nil {
		common.HandleError(hc, err, "list_doctors")
		return
	}

	text, kb := common.BuildDoctorsScreen(city, doctors)
	if err := hc.EditMessage(text, kb); err != nil {
		common.HandleError(hc, err, "show_doctors")
		return
	}
	hc.Answer("")
}

// HandleDoctor показывает карточку врача и ближайшие даты
func HandleDoctor(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	doctorID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.HandleError(hc, err, "parse_doctor")
		return
	}

	doctor, err := h.DoctorService.GetDoctor(ctx, doctorID)
	if err != nil {
		common.HandleError(hc, err, "get_doctor")
		return
	}

	text, kb := common.BuildDatesScreen(doctor, hc.Today(), h.BookingHorizonDays)
	if err := hc.EditMessage(text, kb); err != nil {
		common.HandleError(hc, err, "show_dates")
		return
	}
	hc.Answer("")
}

// HandleDate показывает свободное время врача на дату
func HandleDate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	day, err := common.ParseDoctorDay(callback.Data)
	if err != nil {
		common.HandleError(common.NewHandlerContext(ctx, b, callback, h), err, "parse_date")
		return
	}
	showSlots(ctx, b, callback, h, day, 0)
}

// HandleSlotsPage листает свободное время
func HandleSlotsPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	day, page, err := common.ParseSlotsPage(callback.Data)
	if err != nil {
		common.HandleError(common.NewHandlerContext(ctx, b, callback, h), err, "parse_slots_page")
		return
	}
	showSlots(ctx, b, callback, h, day, page)
}

func showSlots(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, day common.DoctorDay, page int) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	today := hc.Today()
	if day.Date.Before(today) || !day.Date.Before(today.AddDays(h.BookingHorizonDays)) {
		hc.AnswerAlert("📅 Эта дата недоступна для записи")
		return
	}

	doctor, err := h.DoctorService.GetDoctor(ctx, day.DoctorID)
	if err != nil {
		common.HandleError(hc, err, "get_doctor")
		return
	}

	slots, err := h.AvailabilityService.AvailableSlots(ctx, day.DoctorID, day.Date)
	if err != nil {
		common.HandleError(hc, err, "available_slots")
		return
	}

	text, kb := common.BuildSlotsScreen(doctor, day.Date, slots, page)
	if err := hc.EditMessage(text, kb); err != nil {
		common.HandleError(hc, err, "show_slots")
		return
	}
	hc.Answer("")
}

// HandleSlot начинает диалог записи на выбранное время.
// Доступность окончательно проверяется при создании записи.
func HandleSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		day, t, err := common.ParseSlot(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "parse_slot")
			return
		}

		doctor, err := h.DoctorService.GetDoctor(ctx, day.DoctorID)
		if err != nil {
			common.HandleError(hc, err, "get_doctor")
			return
		}

		common.StartBookingDialog(h, hc.TelegramID, day, t)

		text, kb := common.BuildPatientNamePrompt(doctor, day.Date, t)
		if err := hc.EditMessage(text, kb); err != nil {
			common.HandleError(hc, err, "prompt_patient_name")
			return
		}

		h.Logger.Info("Slot selected",
			zap.Int64("user_id", hc.User.ID),
			zap.Int64("doctor_id", day.DoctorID),
			zap.String("date", day.Date.String()),
			zap.String("time", t.String()))
		hc.Answer(fmt.Sprintf("🕐 %s %s", formatting.FormatDate(day.Date), t))
	})
}

// HandleUseSavedPhone завершает запись с телефоном из профиля
func HandleUseSavedPhone(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if hc.User.Phone == "" {
			hc.AnswerAlert(common.ErrorMessage(common.ErrNoPhone))
			return
		}

		booking, doctor, err := common.SubmitBooking(ctx, h, hc.User, hc.User.Phone)
		if err != nil {
			common.HandleError(hc, err, "submit_booking")
			return
		}

		if err := hc.EditMessage(formatting.FormatBookingConfirmation(booking, doctor), nil); err != nil {
			h.Logger.Warn("Failed to show booking confirmation", zap.Error(err))
		}
		hc.Answer("✅ Вы записаны")
	})
}
