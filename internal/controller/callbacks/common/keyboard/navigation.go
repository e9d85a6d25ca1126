package keyboard

import "github.com/go-telegram/bot/models"

// BackToMainData callback кнопки возврата в главное меню
const BackToMainData = "back_to_main"

func BackButton(callbackData string) models.InlineKeyboardButton {
	return Button("⬅️ Назад", callbackData)
}

func BackToMainButton() models.InlineKeyboardButton {
	return Button("🏠 В главное меню", BackToMainData)
}

func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Отмена", callbackData)
}

// AddConfirmCancel добавляет ряд "Подтвердить / Отмена"
func (b *Builder) AddConfirmCancel(confirmText, confirmData, cancelData string) *Builder {
	return b.Row(Button(confirmText, confirmData), CancelButton(cancelData))
}

func (b *Builder) AddBackButton(callbackData string) *Builder {
	return b.Row(BackButton(callbackData))
}

func (b *Builder) AddBackToMainButton() *Builder {
	return b.Row(BackToMainButton())
}
