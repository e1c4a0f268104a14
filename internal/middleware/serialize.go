package middleware

import (
	"sync"

	tele "gopkg.in/telebot.v3"
)

// userLocks hands out one mutex per user
type userLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[int64]*sync.Mutex)}
}

func (l *userLocks) get(userID int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, exists := l.locks[userID]
	if !exists {
		lock = &sync.Mutex{}
		l.locks[userID] = lock
	}
	return lock
}

// SerializePerUser processes one update at a time for each user.
// A rating tapped twice is handled after the first write has finished,
// so it can never grade the next card in the queue by accident.
func SerializePerUser() tele.MiddlewareFunc {
	locks := newUserLocks()

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return next(c)
			}

			lock := locks.get(sender.ID)
			lock.Lock()
			defer lock.Unlock()

			return next(c)
		}
	}
}
