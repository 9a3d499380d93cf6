package core

import (
	"context"
	"time"

	"hrms.service/internal/core/model"
)

// Clock abstracts the current time so date rules can be tested.
type Clock interface {
	Now() time.Time
}

type realClock struct {
	loc *time.Location
}

// NewClock returns a clock reporting wall time in loc (time.Local when nil).
func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return realClock{loc: loc}
}

func (c realClock) Now() time.Time { return time.Now().In(c.loc) }

// TransactionManager runs fn inside a database transaction.
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func txOrNoop(tx TransactionManager) TransactionManager {
	if tx == nil {
		return noopTransactionManager{}
	}
	return tx
}

// Notifier queues a user-facing notification. Delivery problems are the
// notifier's concern; callers never fail because of them.
type Notifier interface {
	Notify(ctx context.Context, user model.User, kind model.NotificationKind, detail string)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, model.User, model.NotificationKind, string) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}
