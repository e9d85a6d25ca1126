package controller

import (
	"context"

	"github.com/Freeeeeet/doctor_booking/internal/controller/callbacks"
	"github.com/Freeeeeet/doctor_booking/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/doctor_booking/internal/controller/handlers"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

// NewBotController создаёт контроллер; deps общие для команд и callback handlers
func NewBotController(botInstance *bot.Bot, deps *callbacktypes.Handler) *BotController {
	return &BotController{
		bot:             botInstance,
		handlers:        handlers.NewHandlers(deps),
		callbackHandler: callbacks.NewHandler(deps),
		logger:          deps.Logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	commands := map[string]bot.HandlerFunc{
		"start":      c.handlers.HandleStart,
		"help":       c.handlers.HandleHelp,
		"cancel":     c.handlers.HandleCancel,
		"doctors":    c.handlers.HandleDoctors,
		"mybookings": c.handlers.HandleMyBookings,
		"queue":      c.handlers.HandleQueue,

		// Команды персонала
		"today":    c.handlers.HandleToday,
		"complete": c.handlers.HandleComplete,
		"stats":    c.handlers.HandleStats,
	}
	for name, handler := range commands {
		c.bot.RegisterHandlerMatchFunc(handlers.CommandMatch(name), handler)
	}

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandlerMatchFunc(handlers.DialogTextMatch, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "doctors", Description: "👨‍⚕️ Записаться к врачу"},
		{Command: "mybookings", Description: "📅 Мои записи"},
		{Command: "queue", Description: "🔢 Моя очередь"},
		{Command: "help", Description: "❓ Справка по командам"},
		{Command: "today", Description: "📋 Записи на сегодня (персонал)"},
		{Command: "stats", Description: "📊 Сводка (персонал)"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
