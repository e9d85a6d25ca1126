package handlers

import (
	"context"
	"strings"

	"github.com/Freeeeeet/doctor_booking/internal/controller/callbacks/common"
	"github.com/Freeeeeet/doctor_booking/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/doctor_booking/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleToday обрабатывает команду /today - записи врача сотрудника на сегодня
func (h *Handlers) HandleToday(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireStaff(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID
	doctorID := *user.StaffDoctorID

	doctor, err := h.doctorService.GetDoctor(ctx, doctorID)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "get_doctor")
		return
	}

	sheet, err := h.queueService.DayList(ctx, doctorID, service.Today(h.clock))
	if err != nil {
		h.replyError(ctx, b, chatID, err, "day_list")
		return
	}

	text, kb := common.BuildDaySheetScreen(doctor, sheet)
	h.sendMessage(ctx, b, chatID, text, kb)
}

// HandleComplete обрабатывает команду /complete <booking_id>
func (h *Handlers) HandleComplete(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireStaff(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	_, args := ParseCommand(update.Message.Text)
	if len(args) != 1 {
		h.sendError(ctx, b, chatID, "❌ Использование: /complete <номер записи>")
		return
	}
	bookingID, err := common.ParseID(strings.TrimPrefix(args[0], "#"))
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Неверный номер записи")
		return
	}

	booking, err := h.bookingService.CompleteVisit(ctx, *user.StaffDoctorID, service.Today(h.clock), bookingID)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "complete_visit")
		return
	}

	h.logger.Info("Visit completed by staff command",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("staff_user_id", user.ID))

	h.sendMessage(ctx, b, chatID, "✅ Приём завершён\n\n"+formatting.FormatBookingShort(booking), nil)
}

// HandleStats обрабатывает команду /stats - сводка по врачу за три дня
func (h *Handlers) HandleStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireStaff(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	dashboard, err := h.queueService.Dashboard(ctx, *user.StaffDoctorID)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "dashboard")
		return
	}

	text := "📊 <b>Сводка</b>\n\n" +
		formatting.FormatDayStats("Вчера", dashboard.Yesterday) + "\n" +
		formatting.FormatDayStats("Сегодня", dashboard.Today) + "\n" +
		formatting.FormatDayStats("Завтра", dashboard.Tomorrow)
	h.sendMessage(ctx, b, chatID, text, nil)
}
