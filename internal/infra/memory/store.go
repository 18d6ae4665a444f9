// Package memory is an in-process store.Store backed by maps. It serves
// tests and DB_DRIVER=memory development runs.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

var ErrDuplicate = errors.New("duplicate key value violates unique constraint")

type row[T any] struct {
	seq int64
	v   T
}

type tables struct {
	seq           int64
	users         map[uuid.UUID]row[models.User]
	children      map[uuid.UUID]row[models.Child]
	babysitters   map[uuid.UUID]row[models.Babysitter]
	attendance    map[uuid.UUID]row[models.Attendance]
	schedules     map[uuid.UUID]row[models.Schedule]
	finance       map[uuid.UUID]row[models.Finance]
	notifications map[uuid.UUID]row[models.Notification]
	preferences   map[uuid.UUID]row[models.NotificationPreference]
	activityLogs  map[uuid.UUID]row[models.ActivityLog]
}

func newTables() *tables {
	return &tables{
		users:         map[uuid.UUID]row[models.User]{},
		children:      map[uuid.UUID]row[models.Child]{},
		babysitters:   map[uuid.UUID]row[models.Babysitter]{},
		attendance:    map[uuid.UUID]row[models.Attendance]{},
		schedules:     map[uuid.UUID]row[models.Schedule]{},
		finance:       map[uuid.UUID]row[models.Finance]{},
		notifications: map[uuid.UUID]row[models.Notification]{},
		preferences:   map[uuid.UUID]row[models.NotificationPreference]{},
		activityLogs:  map[uuid.UUID]row[models.ActivityLog]{},
	}
}

func cloneMap[T any](m map[uuid.UUID]row[T]) map[uuid.UUID]row[T] {
	out := make(map[uuid.UUID]row[T], len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (t *tables) clone() *tables {
	return &tables{
		seq:           t.seq,
		users:         cloneMap(t.users),
		children:      cloneMap(t.children),
		babysitters:   cloneMap(t.babysitters),
		attendance:    cloneMap(t.attendance),
		schedules:     cloneMap(t.schedules),
		finance:       cloneMap(t.finance),
		notifications: cloneMap(t.notifications),
		preferences:   cloneMap(t.preferences),
		activityLogs:  cloneMap(t.activityLogs),
	}
}

func (t *tables) next() int64 {
	t.seq++
	return t.seq
}

type state struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	t    *tables
	now  func() time.Time
}

// Store keeps every table in memory. Transactions are serialized: a Tx holds
// the write lock for its whole duration and restores a snapshot on error.
type Store struct {
	s    *state
	inTx bool
}

func New() *Store {
	return &Store{s: &state{t: newTables(), now: time.Now}}
}

func (s *Store) Users() store.UserRepository { return userRepo{s} }
func (s *Store) Children() store.ChildRepository { return childRepo{s} }
func (s *Store) Babysitters() store.BabysitterRepository { return babysitterRepo{s} }
func (s *Store) Attendance() store.AttendanceRepository { return attendanceRepo{s} }
func (s *Store) Schedules() store.ScheduleRepository { return scheduleRepo{s} }
func (s *Store) Finance() store.FinanceRepository { return financeRepo{s} }
func (s *Store) Notifications() store.NotificationRepository { return notificationRepo{s} }
func (s *Store) Preferences() store.PreferenceRepository { return preferenceRepo{s} }
func (s *Store) ActivityLogs() store.ActivityLogRepository { return activityLogRepo{s} }

func (s *Store) Tx(ctx context.Context, fn func(tx store.Store) error) error {
	if s.inTx {
		return fn(s)
	}

	s.s.txMu.Lock()
	defer s.s.txMu.Unlock()

	s.s.mu.RLock()
	snapshot := s.s.t.clone()
	s.s.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := fn(&Store{s: s.s, inTx: true}); err != nil {
		s.s.mu.Lock()
		s.s.t = snapshot
		s.s.mu.Unlock()
		return err
	}
	return nil
}

// write runs fn under the table lock. Outside a transaction it also waits
// for any running transaction so a rollback cannot discard it.
func (s *Store) write(fn func(t *tables, now time.Time) error) error {
	if !s.inTx {
		s.s.txMu.Lock()
		defer s.s.txMu.Unlock()
	}
	s.s.mu.Lock()
	defer s.s.mu.Unlock()
	return fn(s.s.t, s.s.now())
}

func (s *Store) read(fn func(t *tables)) {
	s.s.mu.RLock()
	defer s.s.mu.RUnlock()
	fn(s.s.t)
}

// SetClock overrides the timestamp source.
func (s *Store) SetClock(now func() time.Time) {
	s.s.mu.Lock()
	s.s.now = now
	s.s.mu.Unlock()
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func notFound(msg string) error {
	return errors.Wrap(store.ErrNotFound, msg)
}

func stamp(created, updated *time.Time, now time.Time) {
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

type ordered[T any] struct {
	seq int64
	v   T
}

// collect filters a table and sorts the matches with less; ties fall back
// to insertion order.
func collect[T any](m map[uuid.UUID]row[T], keep func(T) bool, less func(a, b T) int, desc bool) []T {
	rows := make([]ordered[T], 0, len(m))
	for _, r := range m {
		if keep == nil || keep(r.v) {
			rows = append(rows, ordered[T]{seq: r.seq, v: r.v})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		c := 0
		if less != nil {
			c = less(rows[i].v, rows[j].v)
		}
		if c == 0 {
			if desc {
				return rows[i].seq > rows[j].seq
			}
			return rows[i].seq < rows[j].seq
		}
		return c < 0
	})

	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.v)
	}
	return out
}

func cmpTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

func dateIn(d models.Date, from, to *models.Date) bool {
	if from != nil && d.Before(*from) {
		return false
	}
	if to != nil && d.After(*to) {
		return false
	}
	return true
}

func eqRef(ref *uuid.UUID, id uuid.UUID) bool {
	return ref != nil && *ref == id
}

func (t *tables) userRef(id uuid.UUID) *models.User {
	r, ok := t.users[id]
	if !ok {
		return nil
	}
	u := r.v
	return &u
}

func (t *tables) userRefPtr(id *uuid.UUID) *models.User {
	if id == nil {
		return nil
	}
	return t.userRef(*id)
}

func (t *tables) childRef(id uuid.UUID) *models.Child {
	r, ok := t.children[id]
	if !ok {
		return nil
	}
	c := r.v
	c.Parent = nil
	return &c
}

// Compile-time check
var _ store.Store = (*Store)(nil)
