package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/doctor_booking/internal/model"
	"go.uber.org/zap"
)

type UserService struct {
	userRepo UserStore
	logger   *zap.Logger
}

func NewUserService(userRepo UserStore, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// RegisterUser регистрирует или обновляет пользователя
func (s *UserService) RegisterUser(ctx context.Context, telegramID int64, username, firstName, lastName, languageCode string) (*model.User, error) {
	existingUser, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	if existingUser != nil {
		existingUser.Username = username
		existingUser.FirstName = firstName
		existingUser.LastName = lastName
		existingUser.LanguageCode = languageCode

		if err := s.userRepo.Update(ctx, existingUser); err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}

		return existingUser, nil
	}

	user := &model.User{
		TelegramID:   telegramID,
		Username:     username,
		FirstName:    firstName,
		LastName:     lastName,
		LanguageCode: languageCode,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("New user registered",
		zap.Int64("user_id", user.ID),
		zap.Int64("telegram_id", telegramID),
		zap.String("username", username),
	)

	return user, nil
}

// GetByTelegramID получает пользователя по Telegram ID
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	return s.userRepo.GetByTelegramID(ctx, telegramID)
}

// SavePatientProfile запоминает телефон пациента и врача, к которому он записался
func (s *UserService) SavePatientProfile(ctx context.Context, user *model.User, phone string, doctorID int64) error {
	phone = NormalizePhone(phone)
	if phone != "" && phone != user.Phone {
		user.Phone = phone
		if err := s.userRepo.Update(ctx, user); err != nil {
			return fmt.Errorf("update user phone: %w", err)
		}
	}

	if doctorID > 0 {
		if err := s.userRepo.SetLastDoctor(ctx, user.ID, doctorID); err != nil {
			return fmt.Errorf("set last doctor: %w", err)
		}
		user.LastDoctorID = &doctorID
	}

	return nil
}
