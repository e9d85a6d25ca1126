package handlers

import (
	"context"
	"fmt"
	"html"

	"github.com/Freeeeeet/doctor_booking/internal/controller/callbacks/common"
	"github.com/Freeeeeet/doctor_booking/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	from := update.Message.From

	registeredUser, err := h.userService.RegisterUser(
		ctx,
		from.ID,
		from.Username,
		from.FirstName,
		from.LastName,
		from.LanguageCode,
	)
	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Произошла ошибка при регистрации. Попробуйте позже.")
		return
	}

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Это бот записи на приём к врачу. Выберите город, врача и удобное время, "+
			"а в день приёма следите за своей очередью.\n\n%s",
		html.EscapeString(registeredUser.FirstName),
		common.MainMenuText(registeredUser),
	)

	h.sendMessage(ctx, b, update.Message.Chat.ID, welcomeText, nil)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка по командам:\n\n" +
		"/start - Начать работу с ботом\n" +
		"/doctors - Записаться к врачу: город, врач, дата и время\n" +
		"/mybookings - Мои записи и их отмена\n" +
		"/queue - Моя очередь к последнему врачу на сегодня\n" +
		"/cancel - Прервать текущий диалог\n" +
		"/help - Показать эту справку\n\n" +
		"Номер в очереди выдаётся в порядке записи. " +
		"Ориентировочное время рассчитывается из 5 минут на пациента.\n\n" +
		"Для персонала клиники:\n" +
		"/today - Записи врача на сегодня\n" +
		"/complete &lt;номер записи&gt; - Завершить приём\n" +
		"/stats - Сводка за вчера, сегодня и завтра"

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText, nil)
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.stateManager.GetState(telegramID) == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Нет активных операций для отмены.", nil)
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.", nil)
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !DialogTextMatch(update) {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	h.logger.Debug("HandleTextMessage called",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateNone:
		h.sendMessage(ctx, b, update.Message.Chat.ID, "🤔 Не понимаю. Используйте /help для списка команд.", nil)
	case state.StateBookingPatientName:
		h.handlePatientNameStep(ctx, b, update)
	case state.StateBookingPatientPhone:
		h.handlePatientPhoneStep(ctx, b, update)
	case state.StateEnteringPhone:
		h.handleEnteringPhone(ctx, b, update)
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
		h.stateManager.ClearState(telegramID)
	}
}
