package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/doctor_booking/internal/model"
	"github.com/Freeeeeet/doctor_booking/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const doctorColumns = `id, name, specialty, city, hospital, department, is_active, created_at`

type DoctorRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewDoctorRepository(pool *pgxpool.Pool, logger *zap.Logger) *DoctorRepository {
	return &DoctorRepository{
		pool:   pool,
		logger: logger,
	}
}

// Create добавляет врача в справочник
func (r *DoctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (name, specialty, city, hospital, department, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		doctor.Name,
		doctor.Specialty,
		doctor.City,
		doctor.Hospital,
		doctor.Department,
		doctor.IsActive,
	).Scan(&doctor.ID, &doctor.CreatedAt)

	if err != nil {
		r.logger.Error("Failed to insert doctor into DB",
			zap.String("name", doctor.Name),
			zap.Error(err))
		return fmt.Errorf("create doctor: %w", err)
	}

	r.logger.Info("Doctor inserted",
		zap.Int64("doctor_id", doctor.ID),
		zap.String("name", doctor.Name))

	return nil
}

// GetByID получает врача по ID
func (r *DoctorRepository) GetByID(ctx context.Context, id int64) (*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE id = $1`

	doctor, err := scanDoctor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get doctor by id: %w", err)
	}

	return doctor, nil
}

// ListByCity возвращает активных врачей города
func (r *DoctorRepository) ListByCity(ctx context.Context, city string) ([]*model.Doctor, error) {
	query := `
		SELECT ` + doctorColumns + `
		FROM doctors
		WHERE is_active = true AND city = $1
		ORDER BY hospital, name
	`

	return r.list(ctx, "list doctors by city", query, city)
}

// ListByHospital возвращает активных врачей больницы
func (r *DoctorRepository) ListByHospital(ctx context.Context, hospital string) ([]*model.Doctor, error) {
	query := `
		SELECT ` + doctorColumns + `
		FROM doctors
		WHERE is_active = true AND hospital = $1
		ORDER BY department, name
	`

	return r.list(ctx, "list doctors by hospital", query, hospital)
}

// ListCities возвращает города, в которых есть активные врачи
func (r *DoctorRepository) ListCities(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT city
		FROM doctors
		WHERE is_active = true AND city <> ''
		ORDER BY city
	`

	return r.listStrings(ctx, "list cities", query)
}

// ListHospitals возвращает больницы с активными врачами.
// Пустой city означает все города.
func (r *DoctorRepository) ListHospitals(ctx context.Context, city string) ([]string, error) {
	query := `
		SELECT DISTINCT hospital
		FROM doctors
		WHERE is_active = true AND hospital <> '' AND ($1 = '' OR city = $1)
		ORDER BY hospital
	`

	return r.listStrings(ctx, "list hospitals", query, city)
}

func (r *DoctorRepository) list(ctx context.Context, op, query string, args ...any) ([]*model.Doctor, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var doctors []*model.Doctor
	for rows.Next() {
		doctor, err := scanDoctor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan doctor: %w", err)
		}
		doctors = append(doctors, doctor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	r.logger.Debug("Retrieved doctors",
		zap.String("op", op),
		zap.Int("count", len(doctors)))

	return doctors, nil
}

func (r *DoctorRepository) listStrings(ctx context.Context, op, query string, args ...any) ([]string, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	values, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return values, nil
}

func scanDoctor(row pgx.Row) (*model.Doctor, error) {
	var doctor model.Doctor
	err := row.Scan(
		&doctor.ID,
		&doctor.Name,
		&doctor.Specialty,
		&doctor.City,
		&doctor.Hospital,
		&doctor.Department,
		&doctor.IsActive,
		&doctor.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}
