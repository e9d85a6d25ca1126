package repository

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/Freeeeeet/doctor_booking/internal/model"
	"github.com/Freeeeeet/doctor_booking/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	bookingColumns = `id, reference, doctor_id, date, time, sequence_no, patient_name, patient_phone, status, created_at, updated_at, completed_at`

	// ActiveSlotConstraint уникальный индекс: не более одной активной записи на слот
	ActiveSlotConstraint = "uq_bookings_active_slot"
	// SequenceConstraint уникальный индекс номера очереди врача на дату
	SequenceConstraint = "uq_bookings_doctor_date_seq"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

// Allocate выдаёт записи следующий номер очереди врача на дату и сохраняет её.
// Номер вычисляется под транзакционной advisory-блокировкой (врач, дата),
// поэтому параллельные записи на один день получают номера 1..N без пропусков.
func (r *BookingRepository) Allocate(ctx context.Context, booking *model.Booking) error {
	return base.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, dayLockKey(booking.DoctorID, booking.Date)); err != nil {
			return fmt.Errorf("lock doctor day: %w", err)
		}

		query := `
			SELECT COALESCE(MAX(sequence_no), 0) + 1
			FROM bookings
			WHERE doctor_id = $1 AND date = $2
		`
		if err := tx.QueryRow(ctx, query, booking.DoctorID, base.DateParam(booking.Date)).Scan(&booking.SequenceNo); err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}

		insert := `
			INSERT INTO bookings (reference, doctor_id, date, time, sequence_no, patient_name, patient_phone, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at, updated_at
		`
		err := tx.QueryRow(
			ctx, insert,
			booking.Reference,
			booking.DoctorID,
			base.DateParam(booking.Date),
			base.TimeParam(booking.Time),
			booking.SequenceNo,
			booking.PatientName,
			booking.PatientPhone,
			booking.Status,
		).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}

		return nil
	})
}

// GetByID получает запись по ID
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return booking, nil
}

// ActiveTimes возвращает время всех неотменённых записей врача на дату
func (r *BookingRepository) ActiveTimes(ctx context.Context, doctorID int64, date model.Date) ([]model.TimeOfDay, error) {
	query := `
		SELECT time
		FROM bookings
		WHERE doctor_id = $1 AND date = $2 AND status <> 'cancelled'
		ORDER BY time
	`

	rows, err := r.pool.Query(ctx, query, doctorID, base.DateParam(date))
	if err != nil {
		return nil, fmt.Errorf("get active booking times: %w", err)
	}

	times, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.TimeOfDay, error) {
		var t pgtype.Time
		err := row.Scan(&t)
		return base.TimeOfDay(t), err
	})
	if err != nil {
		return nil, fmt.Errorf("scan active booking times: %w", err)
	}

	return times, nil
}

// FindActivePatientBooking возвращает последнюю неотменённую запись пациента к врачу на дату
// или nil, если её нет
func (r *BookingRepository) FindActivePatientBooking(ctx context.Context, doctorID int64, date model.Date, phone string) (*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE doctor_id = $1 AND date = $2 AND patient_phone = $3 AND status <> 'cancelled'
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	booking, err := scanBooking(r.pool.QueryRow(ctx, query, doctorID, base.DateParam(date), phone))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find patient booking: %w", err)
	}

	return booking, nil
}

// QueueCounters возвращает наибольший номер среди завершённых приёмов
// и количество ожидающих записей врача на дату
func (r *BookingRepository) QueueCounters(ctx context.Context, doctorID int64, date model.Date) (watermark int, waiting int, err error) {
	query := `
		SELECT
			COALESCE(MAX(sequence_no) FILTER (WHERE status = 'completed'), 0),
			COUNT(*) FILTER (WHERE status = 'booked')
		FROM bookings
		WHERE doctor_id = $1 AND date = $2
	`

	if err := r.pool.QueryRow(ctx, query, doctorID, base.DateParam(date)).Scan(&watermark, &waiting); err != nil {
		return 0, 0, fmt.Errorf("get queue counters: %w", err)
	}

	return watermark, waiting, nil
}

// DayStats считает записи врача на дату по статусам
func (r *BookingRepository) DayStats(ctx context.Context, doctorID int64, date model.Date) (*model.DayStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'booked'),
			COUNT(*) FILTER (WHERE status = 'running'),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'cancelled')
		FROM bookings
		WHERE doctor_id = $1 AND date = $2
	`

	stats := model.DayStats{Date: date}
	err := r.pool.QueryRow(ctx, query, doctorID, base.DateParam(date)).Scan(
		&stats.Total,
		&stats.Booked,
		&stats.Running,
		&stats.Completed,
		&stats.Cancelled,
	)
	if err != nil {
		return nil, fmt.Errorf("get day stats: %w", err)
	}

	return &stats, nil
}

// ListByDay возвращает записи врача на дату в порядке очереди
func (r *BookingRepository) ListByDay(ctx context.Context, doctorID int64, date model.Date) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE doctor_id = $1 AND date = $2
		ORDER BY sequence_no
	`

	return r.list(ctx, "list bookings by day", query, doctorID, base.DateParam(date))
}

// ListByPatient возвращает записи пациента с данными врача, начиная с самых поздних
func (r *BookingRepository) ListByPatient(ctx context.Context, phone string, limit int) ([]*model.Booking, error) {
	query := `
		SELECT b.id, b.reference, b.doctor_id, b.date, b.time, b.sequence_no, b.patient_name, b.patient_phone,
		       b.status, b.created_at, b.updated_at, b.completed_at,
		       d.id, d.name, d.specialty, d.city, d.hospital, d.department, d.is_active, d.created_at
		FROM bookings b
		JOIN doctors d ON d.id = b.doctor_id
		WHERE b.patient_phone = $1
		ORDER BY b.date DESC, b.time DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, phone, limit)
	if err != nil {
		return nil, fmt.Errorf("list bookings by patient: %w", err)
	}
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		var (
			booking model.Booking
			doctor  model.Doctor
			date    pgtype.Date
			tod     pgtype.Time
		)
		err := rows.Scan(
			&booking.ID, &booking.Reference, &booking.DoctorID, &date, &tod, &booking.SequenceNo,
			&booking.PatientName, &booking.PatientPhone, &booking.Status, &booking.CreatedAt, &booking.UpdatedAt, &booking.CompletedAt,
			&doctor.ID, &doctor.Name, &doctor.Specialty, &doctor.City, &doctor.Hospital, &doctor.Department,
			&doctor.IsActive, &doctor.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan patient booking: %w", err)
		}
		booking.Date = model.DateOf(date.Time)
		booking.Time = base.TimeOfDay(tod)
		booking.Doctor = &doctor
		bookings = append(bookings, &booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookings by patient: %w", err)
	}

	return bookings, nil
}

// UpdateStatus переводит запись из статуса from в статус to.
// Возвращает false, если запись не найдена или её статус уже не from.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, from, to model.BookingStatus) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $1,
		    updated_at = NOW(),
		    completed_at = CASE WHEN $1 = 'completed' THEN NOW() ELSE completed_at END
		WHERE id = $2 AND status = $3
	`

	result, err := r.pool.Exec(ctx, query, to, id, from)
	if err != nil {
		return false, fmt.Errorf("update booking status: %w", err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *BookingRepository) list(ctx context.Context, op, query string, args ...any) ([]*model.Booking, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var (
		booking model.Booking
		date    pgtype.Date
		tod     pgtype.Time
	)
	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.DoctorID,
		&date,
		&tod,
		&booking.SequenceNo,
		&booking.PatientName,
		&booking.PatientPhone,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&booking.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Date = model.DateOf(date.Time)
	booking.Time = base.TimeOfDay(tod)
	return &booking, nil
}

// dayLockKey ключ advisory-блокировки дня врача
func dayLockKey(doctorID int64, date model.Date) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "booking:%d:%s", doctorID, date)
	return int64(h.Sum64())
}
