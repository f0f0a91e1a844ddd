package wizard

import "sync"

// userLocks serializes events per user. Entries are dropped once no
// goroutine holds or waits for them.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*userLock
}

type userLock struct {
	sync.Mutex
	refs int
}

func (u *userLocks) lock(id string) (unlock func()) {
	u.mu.Lock()
	if u.locks == nil {
		u.locks = make(map[string]*userLock)
	}
	l, ok := u.locks[id]
	if !ok {
		l = &userLock{}
		u.locks[id] = l
	}
	l.refs++
	u.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		u.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(u.locks, id)
		}
		u.mu.Unlock()
	}
}

func (u *userLocks) len() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.locks)
}
