package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/doctor_booking/internal/model"
	"github.com/Freeeeeet/doctor_booking/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ScheduleRepository часы приёма врачей и исключения по датам
type ScheduleRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewScheduleRepository(pool *pgxpool.Pool, logger *zap.Logger) *ScheduleRepository {
	return &ScheduleRepository{
		pool:   pool,
		logger: logger,
	}
}

// CreateOpenHours добавляет интервал приёма на день недели
func (r *ScheduleRepository) CreateOpenHours(ctx context.Context, hours *model.OpenHours) error {
	query := `
		INSERT INTO doctor_open_hours (doctor_id, day_of_week, slot_index, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		hours.DoctorID,
		hours.DayOfWeek,
		hours.SlotIndex,
		base.TimeParam(hours.StartTime),
		base.TimeParam(hours.EndTime),
	).Scan(&hours.ID, &hours.CreatedAt)

	if err != nil {
		return fmt.Errorf("create open hours: %w", err)
	}

	r.logger.Info("Open hours created",
		zap.Int64("id", hours.ID),
		zap.Int64("doctor_id", hours.DoctorID),
		zap.Int("day_of_week", hours.DayOfWeek),
		zap.Int("slot_index", hours.SlotIndex))

	return nil
}

// GetOpenHours возвращает интервалы приёма врача на день недели в порядке slot_index
func (r *ScheduleRepository) GetOpenHours(ctx context.Context, doctorID int64, dayOfWeek int) ([]*model.OpenHours, error) {
	query := `
		SELECT id, doctor_id, day_of_week, slot_index, start_time, end_time, created_at
		FROM doctor_open_hours
		WHERE doctor_id = $1 AND day_of_week = $2
		ORDER BY slot_index
	`

	rows, err := r.pool.Query(ctx, query, doctorID, dayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("get open hours: %w", err)
	}
	defer rows.Close()

	var result []*model.OpenHours
	for rows.Next() {
		var (
			hours      model.OpenHours
			start, end pgtype.Time
		)
		err := rows.Scan(
			&hours.ID,
			&hours.DoctorID,
			&hours.DayOfWeek,
			&hours.SlotIndex,
			&start,
			&end,
			&hours.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan open hours: %w", err)
		}
		hours.StartTime = base.TimeOfDay(start)
		hours.EndTime = base.TimeOfDay(end)
		result = append(result, &hours)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get open hours: %w", err)
	}

	return result, nil
}

// UpsertException сохраняет исключение на дату, заменяя существующее
func (r *ScheduleRepository) UpsertException(ctx context.Context, exception *model.Exception) error {
	query := `
		INSERT INTO doctor_exceptions (doctor_id, date, is_closed, start_time, end_time, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (doctor_id, date) DO UPDATE
		SET is_closed = EXCLUDED.is_closed,
		    start_time = EXCLUDED.start_time,
		    end_time = EXCLUDED.end_time,
		    reason = EXCLUDED.reason
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		exception.DoctorID,
		base.DateParam(exception.Date),
		exception.IsClosed,
		base.NullableTimeParam(exception.StartTime),
		base.NullableTimeParam(exception.EndTime),
		exception.Reason,
	).Scan(&exception.ID, &exception.CreatedAt)

	if err != nil {
		return fmt.Errorf("upsert exception: %w", err)
	}

	r.logger.Info("Schedule exception saved",
		zap.Int64("id", exception.ID),
		zap.Int64("doctor_id", exception.DoctorID),
		zap.Stringer("date", exception.Date),
		zap.Bool("is_closed", exception.IsClosed))

	return nil
}

// GetException возвращает исключение врача на дату или nil, если его нет
func (r *ScheduleRepository) GetException(ctx context.Context, doctorID int64, date model.Date) (*model.Exception, error) {
	query := `
		SELECT id, doctor_id, date, is_closed, start_time, end_time, reason, created_at
		FROM doctor_exceptions
		WHERE doctor_id = $1 AND date = $2
	`

	exception, err := scanException(r.pool.QueryRow(ctx, query, doctorID, base.DateParam(date)))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get exception: %w", err)
	}

	return exception, nil
}

func scanException(row pgx.Row) (*model.Exception, error) {
	var (
		exception  model.Exception
		date       pgtype.Date
		start, end pgtype.Time
	)
	err := row.Scan(
		&exception.ID,
		&exception.DoctorID,
		&date,
		&exception.IsClosed,
		&start,
		&end,
		&exception.Reason,
		&exception.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	exception.Date = model.DateOf(date.Time)
	exception.StartTime = base.NullableTimeOfDay(start)
	exception.EndTime = base.NullableTimeOfDay(end)
	return &exception, nil
}
