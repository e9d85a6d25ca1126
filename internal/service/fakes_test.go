package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/doctor_booking/internal/model"
	"github.com/Freeeeeet/doctor_booking/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

var testLoc = time.FixedZone("IST", 5*60*60+30*60)

func fixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

func mustDate(s string) model.Date {
	d, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func mustTime(s string) model.TimeOfDay {
	t, err := model.ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func timesOf(slots []model.TimeOfDay) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}

type fakeScheduleStore struct {
	hours      map[int64]map[int][]*model.OpenHours
	exceptions map[int64]map[model.Date]*model.Exception
	err        error
}

func newFakeScheduleStore() *fakeScheduleStore {
	return &fakeScheduleStore{
		hours:      make(map[int64]map[int][]*model.OpenHours),
		exceptions: make(map[int64]map[model.Date]*model.Exception),
	}
}

func (f *fakeScheduleStore) addHours(doctorID int64, day int, start, end string) {
	if f.hours[doctorID] == nil {
		f.hours[doctorID] = make(map[int][]*model.OpenHours)
	}
	f.hours[doctorID][day] = append(f.hours[doctorID][day], &model.OpenHours{
		DoctorID:  doctorID,
		DayOfWeek: day,
		SlotIndex: len(f.hours[doctorID][day]) + 1,
		StartTime: mustTime(start),
		EndTime:   mustTime(end),
	})
}

func (f *fakeScheduleStore) addException(e *model.Exception) {
	if f.exceptions[e.DoctorID] == nil {
		f.exceptions[e.DoctorID] = make(map[model.Date]*model.Exception)
	}
	f.exceptions[e.DoctorID][e.Date] = e
}

func (f *fakeScheduleStore) GetOpenHours(_ context.Context, doctorID int64, dayOfWeek int) ([]*model.OpenHours, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.hours[doctorID][dayOfWeek], nil
}

func (f *fakeScheduleStore) GetException(_ context.Context, doctorID int64, date model.Date) (*model.Exception, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.exceptions[doctorID][date], nil
}

// fakeBookingStore хранилище записей в памяти с теми же ограничениями уникальности, что и в БД
type fakeBookingStore struct {
	mu       sync.Mutex
	bookings []*model.Booking
	nextID   int64

	allocateErr error
	// beforeInsert вызывается внутри Allocate перед проверкой ограничений
	beforeInsert func(b *model.Booking)
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{nextID: 1}
}

func (f *fakeBookingStore) seed(doctorID int64, date, t, phone string, seq int, status model.BookingStatus) *model.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := &model.Booking{
		ID:           f.nextID,
		DoctorID:     doctorID,
		Date:         mustDate(date),
		Time:         mustTime(t),
		SequenceNo:   seq,
		PatientName:  "Patient " + phone,
		PatientPhone: phone,
		Status:       status,
	}
	f.nextID++
	f.bookings = append(f.bookings, b)
	return b
}

func (f *fakeBookingStore) Allocate(_ context.Context, booking *model.Booking) error {
	if f.beforeInsert != nil {
		f.beforeInsert(booking)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.allocateErr != nil {
		return f.allocateErr
	}

	seq := 0
	for _, b := range f.bookings {
		if b.DoctorID != booking.DoctorID || b.Date != booking.Date {
			continue
		}
		seq = max(seq, b.SequenceNo)
		if b.Time == booking.Time && b.Status.IsActive() {
			return &pgconn.PgError{Code: "23505", ConstraintName: repository.ActiveSlotConstraint}
		}
	}

	stored := *booking
	stored.ID = f.nextID
	stored.SequenceNo = seq + 1
	f.nextID++
	f.bookings = append(f.bookings, &stored)

	booking.ID = stored.ID
	booking.SequenceNo = stored.SequenceNo
	return nil
}

func (f *fakeBookingStore) GetByID(_ context.Context, id int64) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == id {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingStore) ActiveTimes(_ context.Context, doctorID int64, date model.Date) ([]model.TimeOfDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var times []model.TimeOfDay
	for _, b := range f.bookings {
		if b.DoctorID == doctorID && b.Date == date && b.Status.IsActive() {
			times = append(times, b.Time)
		}
	}
	return times, nil
}

func (f *fakeBookingStore) FindActivePatientBooking(_ context.Context, doctorID int64, date model.Date, phone string) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.bookings) - 1; i >= 0; i-- {
		b := f.bookings[i]
		if b.DoctorID == doctorID && b.Date == date && b.PatientPhone == phone && b.Status.IsActive() {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingStore) QueueCounters(_ context.Context, doctorID int64, date model.Date) (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	watermark, waiting := 0, 0
	for _, b := range f.bookings {
		if b.DoctorID != doctorID || b.Date != date {
			continue
		}
		switch b.Status {
		case model.BookingStatusCompleted:
			watermark = max(watermark, b.SequenceNo)
		case model.BookingStatusBooked:
			waiting++
		}
	}
	return watermark, waiting, nil
}

func (f *fakeBookingStore) DayStats(_ context.Context, doctorID int64, date model.Date) (*model.DayStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := &model.DayStats{Date: date}
	for _, b := range f.bookings {
		if b.DoctorID != doctorID || b.Date != date {
			continue
		}
		stats.Total++
		switch b.Status {
		case model.BookingStatusBooked:
			stats.Booked++
		case model.BookingStatusRunning:
			stats.Running++
		case model.BookingStatusCompleted:
			stats.Completed++
		case model.BookingStatusCancelled:
			stats.Cancelled++
		}
	}
	return stats, nil
}

func (f *fakeBookingStore) ListByDay(_ context.Context, doctorID int64, date model.Date) ([]*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Booking
	for _, b := range f.bookings {
		if b.DoctorID == doctorID && b.Date == date {
			copied := *b
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SequenceNo < out[j].SequenceNo })
	return out, nil
}

func (f *fakeBookingStore) ListByPatient(_ context.Context, phone string, limit int) ([]*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Booking
	for _, b := range f.bookings {
		if b.PatientPhone == phone {
			copied := *b
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[j].Date.Before(out[i].Date)
		}
		return out[i].Time > out[j].Time
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeBookingStore) UpdateStatus(_ context.Context, id int64, from, to model.BookingStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == id && b.Status == from {
			b.Status = to
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingStore) setStatus(id int64, status model.BookingStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == id {
			b.Status = status
		}
	}
}

type fakeDoctorStore struct {
	mu      sync.Mutex
	doctors map[int64]*model.Doctor
	calls   int
}

func (f *fakeDoctorStore) GetByID(_ context.Context, id int64) (*model.Doctor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.doctors[id], nil
}

func (f *fakeDoctorStore) ListByCity(_ context.Context, city string) ([]*model.Doctor, error) {
	var out []*model.Doctor
	for _, d := range f.doctors {
		if d.City == city && d.IsActive {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDoctorStore) ListByHospital(_ context.Context, hospital string) ([]*model.Doctor, error) {
	var out []*model.Doctor
	for _, d := range f.doctors {
		if d.Hospital == hospital && d.IsActive {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDoctorStore) ListCities(context.Context) ([]string, error) {
	return []string{"Pune"}, nil
}

func (f *fakeDoctorStore) ListHospitals(_ context.Context, city string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, d := range f.doctors {
		if !d.IsActive || d.Hospital == "" || (city != "" && d.City != city) || seen[d.Hospital] {
			continue
		}
		seen[d.Hospital] = true
		out = append(out, d.Hospital)
	}
	sort.Strings(out)
	return out, nil
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event *model.BookingEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type recordingMetrics struct {
	mu          sync.Mutex
	outcomes    map[string]int
	transitions map[model.BookingStatus]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		outcomes:    make(map[string]int),
		transitions: make(map[model.BookingStatus]int),
	}
}

func (m *recordingMetrics) ObserveBooking(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[outcome]++
}

func (m *recordingMetrics) ObserveTransition(to model.BookingStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions[to]++
}

type bookingFixture struct {
	schedule  *fakeScheduleStore
	bookings  *fakeBookingStore
	doctors   *fakeDoctorStore
	publisher *mockPublisher
	metrics   *recordingMetrics
	service   *BookingService
	avail     *AvailabilityService
	queue     *QueueService
}

const testDoctorID int64 = 7

// newBookingFixture собирает сервисы поверх фейков; у врача приём по понедельникам 09:00-09:20
func newBookingFixture(now time.Time) *bookingFixture {
	logger := zap.NewNop()
	clock := fixedClock(now)

	f := &bookingFixture{
		schedule:  newFakeScheduleStore(),
		bookings:  newFakeBookingStore(),
		doctors:   &fakeDoctorStore{doctors: map[int64]*model.Doctor{testDoctorID: {ID: testDoctorID, Name: "Dr. Rao", City: "Pune", Hospital: "City Hospital", IsActive: true}}},
		publisher: &mockPublisher{},
		metrics:   newRecordingMetrics(),
	}
	f.schedule.addHours(testDoctorID, 1, "09:00", "09:20")
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	doctors, err := NewDoctorService(f.doctors, 16, logger)
	if err != nil {
		panic(err)
	}
	resolver := NewScheduleResolver(f.schedule, logger)
	f.avail = NewAvailabilityService(resolver, f.bookings, clock, logger)
	f.service = NewBookingService(f.bookings, f.avail, doctors, f.publisher, f.metrics, clock, logger)
	f.queue = NewQueueService(f.bookings, clock, logger)
	return f
}
