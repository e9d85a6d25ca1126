package patient

import (
	"context"

	"github.com/Freeeeeet/doctor_booking/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/doctor_booking/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleQueueRefresh пересчитывает позицию пациента в очереди
func HandleQueueRefresh(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		day, err := common.ParseDoctorDay(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "parse_queue")
			return
		}

		doctor, err := h.DoctorService.GetDoctor(ctx, day.DoctorID)
		if err != nil {
			common.HandleError(hc, err, "get_doctor")
			return
		}

		queue, err := h.QueueService.ComputeQueue(ctx, day.DoctorID, day.Date, hc.User.Phone)
		if err != nil {
			common.HandleError(hc, err, "compute_queue")
			return
		}

		text, kb := common.BuildQueueScreen(doctor, queue)
		if err := hc.EditMessage(text, kb); err != nil {
			common.HandleError(hc, err, "show_queue")
			return
		}
		hc.Answer("🔄 Обновлено")
	})
}
