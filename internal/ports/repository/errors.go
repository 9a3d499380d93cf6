package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"hrms.service/internal/core/model"
)

const (
	uniqueViolationCode   = "23505"
	valueTooLongCode      = "22001"
	numericOutOfRangeCode = "22003"
)

// translatePgError maps driver errors to domain errors: no rows becomes
// notFound, a unique violation becomes duplicate. Values that do not fit
// their column are validation errors.
func translatePgError(err, notFound, duplicate error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) && notFound != nil {
		return notFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case uniqueViolationCode:
		if duplicate != nil {
			return duplicate
		}
	case valueTooLongCode, numericOutOfRangeCode:
		return fmt.Errorf("%w: %s", model.ErrValidation, pgErr.Message)
	}
	return err
}

func dateArg(d *model.Date) any {
	if d == nil || d.IsZero() {
		return nil
	}
	return d.Time
}

func datePtr(t *time.Time) *model.Date {
	if t == nil {
		return nil
	}
	d := model.DateOf(*t)
	return &d
}

func decimalArg(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func decimalPtr(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
