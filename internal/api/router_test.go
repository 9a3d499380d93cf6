package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms.service/internal/core/model"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

// leavesOnlyEmployees records which employee operation the router reached.
type leavesOnlyEmployees struct {
	called string
}

func (e *leavesOnlyEmployees) List(context.Context) ([]model.Employee, error) {
	e.called = "List"
	return nil, nil
}

func (e *leavesOnlyEmployees) Get(context.Context, int64) (*model.Employee, error) {
	e.called = "Get"
	return &model.Employee{}, nil
}

func (e *leavesOnlyEmployees) Create(context.Context, model.Employee) (*model.Employee, error) {
	e.called = "Create"
	return &model.Employee{}, nil
}

func (e *leavesOnlyEmployees) Update(context.Context, int64, model.EmployeePatch) (*model.Employee, error) {
	e.called = "Update"
	return &model.Employee{}, nil
}

func (e *leavesOnlyEmployees) Delete(context.Context, int64) error {
	e.called = "Delete"
	return nil
}

func (e *leavesOnlyEmployees) SetTotalLeaves(_ context.Context, email string, leaves int) (*model.Employee, error) {
	e.called = "SetTotalLeaves"
	return &model.Employee{TotalLeaves: leaves}, nil
}

func TestHealth(t *testing.T) {
	r := NewRouter(Services{DB: stubPinger{}})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Service is operational.", rec.Body.String())

	r = NewRouter(Services{DB: stubPinger{err: errors.New("down")}})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestTotalLeavesRouteIsNotAnID(t *testing.T) {
	employees := &leavesOnlyEmployees{}
	r := NewRouter(Services{Employees: employees})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/employees/t-leaves", strings.NewReader(`{"email":"w@x.com","leaves":4}`))
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SetTotalLeaves", employees.called)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/employees/7", strings.NewReader(`{"department":"Ops"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Update", employees.called)
}

func TestMiddleware_RequestID(t *testing.T) {
	h := WithRequestLogger(NewRouter(Services{}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	h.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}

func TestMiddleware_CORS(t *testing.T) {
	const origin = "http://localhost:3000"
	h := WithCORS(origin)(WithRequestLogger(NewRouter(Services{})))

	t.Run("allowed origin", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", origin)
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, origin, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("preflight", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/api/attendance", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Content-Type")
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, origin, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
	})

	t.Run("foreign origin", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://evil.example")
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
