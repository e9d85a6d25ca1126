package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/doctor_booking/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/doctor_booking/internal/controller/state"
	"github.com/Freeeeeet/doctor_booking/internal/model"
	"github.com/Freeeeeet/doctor_booking/internal/service"
	"go.uber.org/zap"
)

// ErrDialogExpired данные выбранного слота потеряны (диалог истёк или сброшен)
var ErrDialogExpired = errors.New("booking dialog expired")

// StartBookingDialog запоминает выбранный слот и переводит пользователя к вводу имени
func StartBookingDialog(h *callbacktypes.Handler, telegramID int64, day DoctorDay, t model.TimeOfDay) {
	h.StateManager.ClearState(telegramID)
	h.StateManager.SetData(telegramID, state.KeyDoctorID, day.DoctorID)
	h.StateManager.SetData(telegramID, state.KeyDate, day.Date.String())
	h.StateManager.SetData(telegramID, state.KeyTime, t.String())
	h.StateManager.SetState(telegramID, state.StateBookingPatientName)
}

// SubmitBooking создаёт запись по данным диалога и введённому телефону.
// При неверном телефоне диалог сохраняется для повторного ввода, иначе сбрасывается.
func SubmitBooking(ctx context.Context, h *callbacktypes.Handler, user *model.User, phone string) (*model.Booking, *model.Doctor, error) {
	sm := h.StateManager
	telegramID := user.TelegramID

	doctorID, okDoctor := sm.GetInt64(telegramID, state.KeyDoctorID)
	date, okDate := sm.GetString(telegramID, state.KeyDate)
	slot, okTime := sm.GetString(telegramID, state.KeyTime)
	name, okName := sm.GetString(telegramID, state.KeyPatientName)
	if !okDoctor || !okDate || !okTime || !okName {
		sm.ClearState(telegramID)
		return nil, nil, ErrDialogExpired
	}

	booking, err := h.BookingService.CreateBooking(ctx, service.BookingInput{
		DoctorID:     doctorID,
		Date:         date,
		Time:         slot,
		PatientName:  name,
		PatientPhone: phone,
	})
	if err != nil {
		var validationErr *service.ValidationError
		if !errors.As(err, &validationErr) || validationErr.Field != "patient_phone" {
			sm.ClearState(telegramID)
		}
		return nil, nil, fmt.Errorf("create booking: %w", err)
	}
	sm.ClearState(telegramID)

	if err := h.UserService.SavePatientProfile(ctx, user, booking.PatientPhone, doctorID); err != nil {
		h.Logger.Warn("Failed to save patient profile",
			zap.Int64("user_id", user.ID),
			zap.Error(err))
	}

	doctor, err := h.DoctorService.GetDoctor(ctx, doctorID)
	if err != nil {
		h.Logger.Warn("Failed to load doctor for confirmation",
			zap.Int64("doctor_id", doctorID),
			zap.Error(err))
		doctor = &model.Doctor{ID: doctorID}
	}

	h.Logger.Info("Booking created via bot",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("doctor_id", doctorID),
		zap.Int("sequence_no", booking.SequenceNo))

	return booking, doctor, nil
}
