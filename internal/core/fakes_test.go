package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"hrms.service/internal/core/model"
	"hrms.service/internal/ports/messaging"
)

type stubClock struct{ now time.Time }

func (c stubClock) Now() time.Time { return c.now }

type stubHasher struct{}

func (stubHasher) Hash(pw []byte) ([]byte, error) { return append([]byte("hashed:"), pw...), nil }

func (stubHasher) Compare(hash, pw []byte) error {
	if !bytes.Equal(hash, append([]byte("hashed:"), pw...)) {
		return errors.New("mismatch")
	}
	return nil
}

type fakeUsers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*model.User
}

func newFakeUsers(seed ...model.User) *fakeUsers {
	f := &fakeUsers{byID: map[int64]*model.User{}}
	for _, u := range seed {
		f.byID[u.ID] = &u
		f.nextID = max(f.nextID, u.ID)
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if strings.EqualFold(existing.Email, u.Email) {
			return nil, model.ErrDuplicateEmail
		}
	}
	f.nextID++
	stored := *u
	stored.ID = f.nextID
	stored.Email = strings.ToLower(u.Email)
	f.byID[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeUsers) FindByID(_ context.Context, id int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			out := *u
			return &out, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (f *fakeUsers) UpdateStatus(_ context.Context, id int64, from, to model.UserStatus) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok || u.Status != from {
		return nil, fmt.Errorf("%w: stale", model.ErrInvalidTransition)
	}
	u.Status = to
	out := *u
	return &out, nil
}

func (f *fakeUsers) ListByRoleAndStatus(_ context.Context, role model.Role, status model.UserStatus) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.User
	for id := int64(1); id <= f.nextID; id++ {
		if u, ok := f.byID[id]; ok && u.Role == role && u.Status == status {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeEmployees struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*model.Employee
	users  *fakeUsers
}

func newFakeEmployees(users *fakeUsers, seed ...model.Employee) *fakeEmployees {
	f := &fakeEmployees{byID: map[int64]*model.Employee{}, users: users}
	for _, e := range seed {
		f.byID[e.ID] = &e
		f.nextID = max(f.nextID, e.ID)
	}
	return f
}

func (f *fakeEmployees) Create(_ context.Context, e *model.Employee) (*model.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.UserID == e.UserID {
			return nil, model.ErrDuplicateProfile
		}
	}
	f.nextID++
	stored := *e
	stored.ID = f.nextID
	f.byID[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeEmployees) FindByID(_ context.Context, id int64) (*model.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok {
		return nil, model.ErrEmployeeNotFound
	}
	out := *e
	return &out, nil
}

func (f *fakeEmployees) FindByUserEmail(ctx context.Context, email string) (*model.Employee, error) {
	u, err := f.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, model.ErrEmployeeNotFound
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.byID {
		if e.UserID == u.ID {
			out := *e
			return &out, nil
		}
	}
	return nil, model.ErrEmployeeNotFound
}

func (f *fakeEmployees) List(context.Context) ([]model.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Employee
	for id := int64(1); id <= f.nextID; id++ {
		if e, ok := f.byID[id]; ok {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEmployees) Update(_ context.Context, e *model.Employee) (*model.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[e.ID]; !ok {
		return nil, model.ErrEmployeeNotFound
	}
	stored := *e
	f.byID[e.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeEmployees) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return model.ErrEmployeeNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeAttendance struct {
	mu      sync.Mutex
	records []model.AttendanceRecord
}

func (f *fakeAttendance) Create(_ context.Context, rec *model.AttendanceRecord) (*model.AttendanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.UserID == rec.UserID && r.Date.Equal(rec.Date) {
			return nil, model.ErrDuplicateRecord
		}
	}
	stored := *rec
	stored.ID = int64(len(f.records) + 1)
	f.records = append(f.records, stored)
	return &stored, nil
}

func (f *fakeAttendance) ExistsForDate(_ context.Context, userID int64, date model.Date) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.UserID == userID && r.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttendance) List(context.Context) ([]model.AttendanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.AttendanceRecord(nil), f.records...), nil
}

func (f *fakeAttendance) ListByUser(_ context.Context, userID int64) ([]model.AttendanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.AttendanceRecord
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeLeaves struct {
	mu     sync.Mutex
	byID   map[int64]*model.LeaveRequest
	nextID int64
	users  *fakeUsers
}

func newFakeLeaves(users *fakeUsers) *fakeLeaves {
	return &fakeLeaves{byID: map[int64]*model.LeaveRequest{}, users: users}
}

func (f *fakeLeaves) Create(ctx context.Context, l *model.LeaveRequest) (*model.LeaveRequest, error) {
	f.mu.Lock()
	f.nextID++
	stored := *l
	stored.ID = f.nextID
	f.byID[stored.ID] = &stored
	f.mu.Unlock()
	return f.FindByID(ctx, stored.ID)
}

func (f *fakeLeaves) FindByID(ctx context.Context, id int64) (*model.LeaveRequest, error) {
	f.mu.Lock()
	l, ok := f.byID[id]
	f.mu.Unlock()
	if !ok {
		return nil, model.ErrLeaveNotFound
	}
	out := *l
	if u, err := f.users.FindByID(ctx, l.UserID); err == nil {
		out.User = u
	}
	return &out, nil
}

func (f *fakeLeaves) List(ctx context.Context) ([]model.LeaveRequest, error) {
	var out []model.LeaveRequest
	for id := int64(1); id <= f.nextID; id++ {
		if l, err := f.FindByID(ctx, id); err == nil {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeLeaves) UpdateStatus(ctx context.Context, id int64, status model.LeaveStatus) (*model.LeaveRequest, error) {
	f.mu.Lock()
	l, ok := f.byID[id]
	if ok {
		l.Status = status
	}
	f.mu.Unlock()
	if !ok {
		return nil, model.ErrLeaveNotFound
	}
	return f.FindByID(ctx, id)
}

type fakeSalaries struct {
	mu      sync.Mutex
	records []model.SalaryRecord
}

func (f *fakeSalaries) Create(_ context.Context, s *model.SalaryRecord) (*model.SalaryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *s
	stored.ID = int64(len(f.records) + 1)
	f.records = append(f.records, stored)
	return &stored, nil
}

func (f *fakeSalaries) FindByID(_ context.Context, id int64) (*model.SalaryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id {
			out := r
			return &out, nil
		}
	}
	return nil, model.ErrSalaryNotFound
}

func (f *fakeSalaries) List(context.Context) ([]model.SalaryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.SalaryRecord(nil), f.records...), nil
}

func (f *fakeSalaries) ListByEmployee(_ context.Context, employeeID int64) ([]model.SalaryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.SalaryRecord
	for _, r := range f.records {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeSalaries) UpdatePayrollStatus(_ context.Context, id int64, status model.PayrollStatus, retryCount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].PayrollStatus = status
			f.records[i].PayrollRetryCount = retryCount
			return nil
		}
	}
	return model.ErrSalaryNotFound
}

type fakeNotifications struct {
	mu   sync.Mutex
	rows []model.Notification
	err  error
}

func (f *fakeNotifications) Create(_ context.Context, n *model.Notification) (*model.Notification, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *n
	stored.ID = int64(len(f.rows) + 1)
	stored.Status = model.DeliveryPending
	f.rows = append(f.rows, stored)
	return &stored, nil
}

func (f *fakeNotifications) FindByID(_ context.Context, id int64) (*model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.rows {
		if n.ID == id {
			out := n
			return &out, nil
		}
	}
	return nil, model.ErrNotificationNotFound
}

func (f *fakeNotifications) UpdateStatus(_ context.Context, id int64, status model.DeliveryStatus, retryCount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Status = status
			f.rows[i].RetryCount = retryCount
			return nil
		}
	}
	return model.ErrNotificationNotFound
}

type fakePublisher struct {
	mu            sync.Mutex
	notifications []messaging.NotificationEvent
	payroll       []messaging.PayrollEvent
	err           error
}

func (p *fakePublisher) PublishNotification(_ context.Context, e messaging.NotificationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.notifications = append(p.notifications, e)
	return nil
}

func (p *fakePublisher) PublishPayroll(_ context.Context, e messaging.PayrollEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.payroll = append(p.payroll, e)
	return nil
}

type sentNotification struct {
	user   model.User
	kind   model.NotificationKind
	detail string
}

type recordingNotifier struct {
	sent []sentNotification
}

func (n *recordingNotifier) Notify(_ context.Context, user model.User, kind model.NotificationKind, detail string) {
	n.sent = append(n.sent, sentNotification{user: user, kind: kind, detail: detail})
}

// countingTx runs fn directly and counts read-write scopes.
type countingTx struct {
	readWrite int
}

func (c *countingTx) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (c *countingTx) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	c.readWrite++
	return fn(ctx)
}
