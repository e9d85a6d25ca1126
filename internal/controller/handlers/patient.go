package handlers

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/Freeeeeet/doctor_booking/internal/controller/callbacks/common"
	"github.com/Freeeeeet/doctor_booking/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/doctor_booking/internal/controller/state"
	"github.com/Freeeeeet/doctor_booking/internal/model"
	"github.com/Freeeeeet/doctor_booking/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const maxPatientNameLength = 100

// Команды, ожидающие ввода телефона
const (
	afterPhoneBookings = "mybookings"
	afterPhoneQueue    = "queue"
)

// HandleDoctors обрабатывает команду /doctors - начало записи с выбора города
func (h *Handlers) HandleDoctors(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireUser(ctx, b, update); !ok {
		return
	}
	h.stateManager.ClearState(update.Message.From.ID)

	cities, err := h.doctorService.ListCities(ctx)
	if err != nil {
		h.replyError(ctx, b, update.Message.Chat.ID, err, "list_cities")
		return
	}

	text, kb := common.BuildCitiesScreen(cities)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleMyBookings обрабатывает команду /mybookings
func (h *Handlers) HandleMyBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	if user.Phone == "" {
		h.askPhone(ctx, b, update.Message.Chat.ID, user, afterPhoneBookings)
		return
	}
	h.showMyBookings(ctx, b, update.Message.Chat.ID, user)
}

func (h *Handlers) showMyBookings(ctx context.Context, b *bot.Bot, chatID int64, user *model.User) {
	bookings, err := h.bookingService.PatientBookings(ctx, user.Phone)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "patient_bookings")
		return
	}

	text, kb := common.BuildMyBookingsScreen(bookings)
	h.sendMessage(ctx, b, chatID, text, kb)
}

// HandleQueue обрабатывает команду /queue [doctor_id] - очередь на сегодня
func (h *Handlers) HandleQueue(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	_, args := ParseCommand(update.Message.Text)
	if len(args) > 0 {
		doctorID, err := common.ParseID(args[0])
		if err != nil {
			h.sendError(ctx, b, chatID, "❌ Использование: /queue [номер врача]")
			return
		}
		user.LastDoctorID = &doctorID
	}

	if user.LastDoctorID == nil {
		h.sendMessage(ctx, b, chatID, "📋 Вы ещё не записывались к врачу.\n\nЗаписаться: /doctors", nil)
		return
	}
	if user.Phone == "" {
		h.stateManager.SetData(user.TelegramID, state.KeyDoctorID, *user.LastDoctorID)
		h.askPhone(ctx, b, chatID, user, afterPhoneQueue)
		return
	}

	h.showQueue(ctx, b, chatID, user, *user.LastDoctorID)
}

func (h *Handlers) showQueue(ctx context.Context, b *bot.Bot, chatID int64, user *model.User, doctorID int64) {
	doctor, err := h.doctorService.GetDoctor(ctx, doctorID)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "get_doctor")
		return
	}

	queue, err := h.queueService.ComputeQueue(ctx, doctorID, service.Today(h.clock), user.Phone)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "compute_queue")
		return
	}

	text, kb := common.BuildQueueScreen(doctor, queue)
	h.sendMessage(ctx, b, chatID, text, kb)
}

func (h *Handlers) askPhone(ctx context.Context, b *bot.Bot, chatID int64, user *model.User, after string) {
	h.stateManager.SetData(user.TelegramID, state.KeyAfterPhone, after)
	h.stateManager.SetState(user.TelegramID, state.StateEnteringPhone)
	h.sendMessage(ctx, b, chatID, "📱 Введите номер телефона, который вы указывали при записи:\n\n/cancel - отмена", nil)
}

// handleEnteringPhone сохраняет телефон и выполняет отложенную команду
func (h *Handlers) handleEnteringPhone(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	phone := service.NormalizePhone(update.Message.Text)
	if len(phone) < service.MinPhoneLength {
		h.sendError(ctx, b, chatID, common.ErrorMessage(&service.ValidationError{Field: "patient_phone", Value: phone}))
		return
	}

	after, _ := h.stateManager.GetString(user.TelegramID, state.KeyAfterPhone)
	doctorID, hasDoctor := h.stateManager.GetInt64(user.TelegramID, state.KeyDoctorID)
	h.stateManager.ClearState(user.TelegramID)

	if err := h.userService.SavePatientProfile(ctx, user, phone, 0); err != nil {
		h.replyError(ctx, b, chatID, err, "save_phone")
		return
	}

	switch after {
	case afterPhoneQueue:
		if !hasDoctor {
			h.sendError(ctx, b, chatID, common.ErrorMessage(common.ErrDialogExpired))
			return
		}
		h.showQueue(ctx, b, chatID, user, doctorID)
	default:
		h.showMyBookings(ctx, b, chatID, user)
	}
}

// handlePatientNameStep принимает имя пациента и запрашивает телефон
func (h *Handlers) handlePatientNameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	name := strings.Join(strings.Fields(update.Message.Text), " ")
	if name == "" || utf8.RuneCountInString(name) > maxPatientNameLength {
		h.sendError(ctx, b, chatID, "❌ Имя должно содержать от 1 до 100 символов. Попробуйте ещё раз:")
		return
	}

	h.stateManager.SetData(user.TelegramID, state.KeyPatientName, name)
	h.stateManager.SetState(user.TelegramID, state.StateBookingPatientPhone)

	text, kb := common.BuildPatientPhonePrompt(user.Phone)
	h.sendMessage(ctx, b, chatID, text, kb)
}

// handlePatientPhoneStep принимает телефон и создаёт запись
func (h *Handlers) handlePatientPhoneStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	booking, doctor, err := common.SubmitBooking(ctx, h.deps, user, update.Message.Text)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "submit_booking")
		if h.stateManager.GetState(user.TelegramID) == state.StateBookingPatientPhone {
			h.sendMessage(ctx, b, chatID, "📱 Введите номер ещё раз или /cancel для отмены", nil)
		}
		return
	}

	h.logger.Info("Patient booked via dialog",
		zap.Int64("user_id", user.ID),
		zap.Int64("booking_id", booking.ID))
	h.sendMessage(ctx, b, chatID, formatting.FormatBookingConfirmation(booking, doctor), nil)
}
