package state

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestManager(ttl time.Duration) (*Manager, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	sm := NewManager(ttl)
	sm.now = clock.Now
	return sm, clock
}

func TestManagerDialogLifecycle(t *testing.T) {
	sm, _ := newTestManager(time.Hour)
	const user = int64(42)

	assert.Equal(t, StateNone, sm.GetState(user))

	sm.SetData(user, KeyDoctorID, int64(7))
	sm.SetData(user, KeyDate, "2025-03-11")
	sm.SetState(user, StateBookingPatientName)

	assert.Equal(t, StateBookingPatientName, sm.GetState(user))

	doctorID, ok := sm.GetInt64(user, KeyDoctorID)
	require.True(t, ok)
	assert.Equal(t, int64(7), doctorID)

	date, ok := sm.GetString(user, KeyDate)
	require.True(t, ok)
	assert.Equal(t, "2025-03-11", date)

	// SetState не теряет данные диалога
	sm.SetState(user, StateBookingPatientPhone)
	_, ok = sm.GetInt64(user, KeyDoctorID)
	assert.True(t, ok)

	sm.ClearState(user)
	assert.Equal(t, StateNone, sm.GetState(user))
	assert.Nil(t, sm.GetAllData(user))
}

func TestManagerTypedGettersRejectWrongType(t *testing.T) {
	sm, _ := newTestManager(0)

	sm.SetData(1, KeyDoctorID, "7")
	_, ok := sm.GetInt64(1, KeyDoctorID)
	assert.False(t, ok)

	sm.SetData(1, KeyTime, 905)
	_, ok = sm.GetString(1, KeyTime)
	assert.False(t, ok)

	_, ok = sm.GetString(1, KeyPatientName)
	assert.False(t, ok)
}

func TestManagerSetStateNoneDeletes(t *testing.T) {
	sm, _ := newTestManager(0)

	sm.SetState(1, StateEnteringPhone)
	require.Equal(t, 1, sm.Len())

	sm.SetState(1, StateNone)
	assert.Equal(t, 0, sm.Len())
}

func TestManagerExpiresAbandonedDialogs(t *testing.T) {
	sm, clock := newTestManager(30 * time.Minute)

	sm.SetState(1, StateBookingPatientName)
	sm.SetData(1, KeyDoctorID, int64(3))
	clock.Advance(20 * time.Minute)
	sm.SetState(2, StateEnteringPhone)

	clock.Advance(15 * time.Minute)

	assert.Equal(t, StateNone, sm.GetState(1))
	_, ok := sm.GetInt64(1, KeyDoctorID)
	assert.False(t, ok)
	assert.Equal(t, StateEnteringPhone, sm.GetState(2))

	assert.Equal(t, 1, sm.PurgeExpired())
	assert.Equal(t, 1, sm.Len())

	// Новый диалог поверх истёкшего начинается с чистых данных
	sm.SetState(1, StateBookingPatientName)
	assert.Empty(t, sm.GetAllData(1))
}

func TestManagerGetAllDataReturnsCopy(t *testing.T) {
	sm, _ := newTestManager(0)

	sm.SetData(1, KeyPatientName, "Asha")
	data := sm.GetAllData(1)
	data[KeyPatientName] = "changed"

	name, _ := sm.GetString(1, KeyPatientName)
	assert.Equal(t, "Asha", name)
}

func TestManagerConcurrentAccess(t *testing.T) {
	sm, _ := newTestManager(time.Minute)

	var wg sync.WaitGroup
	for i := int64(0); i < 20; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			sm.SetState(id, StateBookingPatientName)
			sm.SetData(id, KeyDoctorID, id)
			sm.GetState(id)
			sm.PurgeExpired()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, sm.Len())
}
