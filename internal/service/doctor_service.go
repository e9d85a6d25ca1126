package service

import (
	"context"

	"github.com/Freeeeeet/doctor_booking/internal/model"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// DoctorService справочник врачей с LRU-кэшем карточек.
// Расписание и записи через кэш не читаются.
type DoctorService struct {
	store  DoctorStore
	cache  *lru.Cache[int64, *model.Doctor]
	logger *zap.Logger
}

func NewDoctorService(store DoctorStore, cacheSize int, logger *zap.Logger) (*DoctorService, error) {
	cache, err := lru.New[int64, *model.Doctor](cacheSize)
	if err != nil {
		return nil, err
	}

	return &DoctorService{
		store:  store,
		cache:  cache,
		logger: logger,
	}, nil
}

// GetDoctor получает врача по ID
func (s *DoctorService) GetDoctor(ctx context.Context, id int64) (*model.Doctor, error) {
	if doctor, ok := s.cache.Get(id); ok {
		return doctor, nil
	}

	doctor, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, storageError("get doctor", err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	s.cache.Add(id, doctor)
	return doctor, nil
}

// GetActiveDoctor читает врача из хранилища в обход кэша и обновляет кэш.
// Неактивный врач считается ненайденным.
func (s *DoctorService) GetActiveDoctor(ctx context.Context, id int64) (*model.Doctor, error) {
	doctor, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, storageError("get doctor", err)
	}
	if doctor == nil {
		s.cache.Remove(id)
		return nil, ErrDoctorNotFound
	}

	s.cache.Add(id, doctor)
	if !doctor.IsActive {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}

// ListByCity возвращает активных врачей города
func (s *DoctorService) ListByCity(ctx context.Context, city string) ([]*model.Doctor, error) {
	doctors, err := s.store.ListByCity(ctx, city)
	if err != nil {
		return nil, storageError("list doctors by city", err)
	}
	s.remember(doctors)
	return doctors, nil
}

// ListByHospital возвращает активных врачей больницы
func (s *DoctorService) ListByHospital(ctx context.Context, hospital string) ([]*model.Doctor, error) {
	doctors, err := s.store.ListByHospital(ctx, hospital)
	if err != nil {
		return nil, storageError("list doctors by hospital", err)
	}
	s.remember(doctors)
	return doctors, nil
}

// ListCities возвращает города с активными врачами
func (s *DoctorService) ListCities(ctx context.Context) ([]string, error) {
	cities, err := s.store.ListCities(ctx)
	if err != nil {
		return nil, storageError("list cities", err)
	}
	return cities, nil
}

// ListHospitals возвращает больницы с активными врачами, пустой city - все города
func (s *DoctorService) ListHospitals(ctx context.Context, city string) ([]string, error) {
	hospitals, err := s.store.ListHospitals(ctx, city)
	if err != nil {
		return nil, storageError("list hospitals", err)
	}
	return hospitals, nil
}

// PurgeCache сбрасывает кэш карточек врачей
func (s *DoctorService) PurgeCache() {
	size := s.cache.Len()
	s.cache.Purge()
	s.logger.Debug("Doctor cache purged", zap.Int("entries", size))
}

func (s *DoctorService) remember(doctors []*model.Doctor) {
	for _, d := range doctors {
		s.cache.Add(d.ID, d)
	}
}
