package common

import (
	"context"

	"github.com/Freeeeeet/doctor_booking/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/doctor_booking/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// MainMenuText текст главного меню; сотрудникам показываются команды персонала
func MainMenuText(user *model.User) string {
	text := "📋 Главное меню\n\n" +
		"Доступные команды:\n" +
		"/doctors - Записаться к врачу\n" +
		"/mybookings - Мои записи\n" +
		"/queue - Моя очередь\n" +
		"/help - Справка\n"

	if user != nil && user.IsStaff() {
		text += "\nКоманды персонала:\n" +
			"/today - Записи на сегодня\n" +
			"/complete &lt;номер записи&gt; - Завершить приём\n" +
			"/stats - Сводка за три дня"
	}

	return text
}

// HandleBackToMain возвращает пользователя к главному меню
func HandleBackToMain(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithUser(ctx, b, callback, h, func(hc *HandlerContext) {
		hc.ClearState()

		if err := hc.EditMessage(MainMenuText(hc.User), nil); err != nil {
			HandleError(hc, err, "back_to_main")
			return
		}
		hc.Answer("")
	})
}

// HandleCancelDialog прерывает диалог записи
func HandleCancelDialog(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := NewHandlerContext(ctx, b, callback, h)
	hc.ClearState()

	if err := hc.EditMessage("✅ Запись отменена.\n\nВыбрать другого врача: /doctors", nil); err != nil {
		HandleError(hc, err, "cancel_dialog")
		return
	}
	hc.Answer("Отменено")
}
