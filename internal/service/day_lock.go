package service

import (
	"sync"

	"github.com/Freeeeeet/doctor_booking/internal/model"
)

type dayKey struct {
	doctorID int64
	date     model.Date
}

type dayLockEntry struct {
	mu   sync.Mutex
	refs int
}

// dayLocks мьютексы записи по ключу (врач, дата).
// Действуют в пределах процесса; между экземплярами запись сериализует
// транзакционная блокировка в PostgreSQL.
type dayLocks struct {
	mu    sync.Mutex
	locks map[dayKey]*dayLockEntry
}

func newDayLocks() *dayLocks {
	return &dayLocks{locks: make(map[dayKey]*dayLockEntry)}
}

// Lock захватывает мьютекс ключа и возвращает функцию освобождения.
// Записи для разных ключей друг друга не блокируют.
func (l *dayLocks) Lock(doctorID int64, date model.Date) func() {
	key := dayKey{doctorID: doctorID, date: date}

	l.mu.Lock()
	entry, ok := l.locks[key]
	if !ok {
		entry = &dayLockEntry{}
		l.locks[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

func (l *dayLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
