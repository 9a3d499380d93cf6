package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hrms.service/internal/core"
	"hrms.service/internal/core/model"
)

type mockUserService struct{ mock.Mock }

func (m *mockUserService) Register(ctx context.Context, in core.RegisterInput) (*model.User, error) {
	args := m.Called(ctx, in)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserService) Login(ctx context.Context, email, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

type mockAttendanceService struct{ mock.Mock }

func (m *mockAttendanceService) Mark(ctx context.Context, cmd model.MarkAttendanceCommand) (*model.AttendanceRecord, error) {
	args := m.Called(ctx, cmd)
	rec, _ := args.Get(0).(*model.AttendanceRecord)
	return rec, args.Error(1)
}

func (m *mockAttendanceService) List(ctx context.Context, userID *int64) ([]model.AttendanceRecord, error) {
	args := m.Called(ctx, userID)
	recs, _ := args.Get(0).([]model.AttendanceRecord)
	return recs, args.Error(1)
}

func (m *mockAttendanceService) ListAll(ctx context.Context) ([]model.AttendanceRecord, error) {
	args := m.Called(ctx)
	recs, _ := args.Get(0).([]model.AttendanceRecord)
	return recs, args.Error(1)
}

func (m *mockAttendanceService) ListByUser(ctx context.Context, userID int64) ([]model.AttendanceRecord, error) {
	args := m.Called(ctx, userID)
	recs, _ := args.Get(0).([]model.AttendanceRecord)
	return recs, args.Error(1)
}

type mockApprovalService struct{ mock.Mock }

func (m *mockApprovalService) Approve(ctx context.Context, userID int64, in core.ApproveInput) (*model.Employee, error) {
	args := m.Called(ctx, userID, in)
	e, _ := args.Get(0).(*model.Employee)
	return e, args.Error(1)
}

func (m *mockApprovalService) Reject(ctx context.Context, userID int64, reason string) (*model.User, error) {
	args := m.Called(ctx, userID, reason)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockApprovalService) ListPending(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func doRequest(h http.HandlerFunc, method, target, body string, vars map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: email", model.ErrValidation), http.StatusBadRequest},
		{model.ErrDuplicateRecord, http.StatusBadRequest},
		{fmt.Errorf("%w: PENDING -> INACTIVE", model.ErrInvalidTransition), http.StatusBadRequest},
		{model.ErrHolidayViolation, http.StatusBadRequest},
		{model.ErrLeaveNotFound, http.StatusNotFound},
		{fmt.Errorf("lookup: %w", model.ErrUserNotFound), http.StatusNotFound},
		{model.ErrInvalidCredentials, http.StatusUnauthorized},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestRegister(t *testing.T) {
	svc := &mockUserService{}
	h := AuthHandler{Service: svc}
	created := time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC)

	svc.On("Register", mock.Anything, core.RegisterInput{
		Email: "a@x.com", Password: "pw", Role: "EMPLOYEE", FirstName: "A", LastName: "B",
	}).Return(&model.User{ID: 1, Email: "a@x.com", PasswordHash: "secret-hash", Role: model.RoleEmployee, Status: model.UserPending, CreatedAt: created}, nil).Once()

	rec := doRequest(h.Register, http.MethodPost, "/auth/api/register",
		`{"email":"a@x.com","password":"pw","role":"EMPLOYEE","firstName":"A","lastName":"B"}`, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"userId":1,"email":"a@x.com","role":"EMPLOYEE","status":"PENDING","createdAt":"2024-03-13T09:00:00Z"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "secret-hash")
	svc.AssertExpectations(t)
}

func TestRegister_Duplicate(t *testing.T) {
	svc := &mockUserService{}
	svc.On("Register", mock.Anything, mock.Anything).Return(nil, model.ErrDuplicateEmail).Once()

	rec := doRequest((&AuthHandler{Service: svc}).Register, http.MethodPost, "/auth/api/register", `{"email":"a@x.com"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email already registered", errorBody(t, rec))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := &mockUserService{}
	svc.On("Login", mock.Anything, "a@x.com", "bad").Return(nil, model.ErrInvalidCredentials).Once()

	rec := doRequest((&AuthHandler{Service: svc}).Login, http.MethodPost, "/auth/api/login", `{"email":"a@x.com","password":"bad"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", errorBody(t, rec))
}

func TestLogin_MalformedBody(t *testing.T) {
	rec := doRequest((&AuthHandler{Service: &mockUserService{}}).Login, http.MethodPost, "/auth/api/login", `{"email":`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarkAttendance_RequestShapes(t *testing.T) {
	today := model.NewDate(2024, time.March, 13)
	tests := []struct {
		name string
		body string
		want model.MarkAttendanceCommand
	}{
		{
			name: "numeric userId and status",
			body: `{"userId":5,"date":"2024-03-13","status":"FULL_DAY"}`,
			want: model.MarkAttendanceCommand{User: model.UserRef{ID: 5}, Date: today, Status: model.AttendanceFullDay},
		},
		{
			name: "string userId and attendance alias",
			body: `{"userId":"5","date":"2024-03-13","attendance":"half day","remarks":"doctor"}`,
			want: model.MarkAttendanceCommand{User: model.UserRef{ID: 5}, Date: today, Status: model.AttendanceHalfDay, Remarks: "doctor"},
		},
		{
			name: "non-numeric userId falls back to email",
			body: `{"userId":"abc","email":"w@x.com","date":"2024-03-13","status":"Present_Full-Day"}`,
			want: model.MarkAttendanceCommand{User: model.UserRef{Email: "w@x.com"}, Date: today, Status: model.AttendanceFullDay},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAttendanceService{}
			svc.On("Mark", mock.Anything, tt.want).Return(&model.AttendanceRecord{ID: 1, UserID: 5, Date: today, Status: tt.want.Status}, nil).Once()

			rec := doRequest((&AttendanceHandler{Service: svc}).Mark, http.MethodPost, "/api/attendance", tt.body, nil)
			assert.Equal(t, http.StatusOK, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestMarkAttendance_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"unknown status", `{"userId":5,"date":"2024-03-13","status":"xyz"}`, "unknown status: xyz"},
		{"missing user", `{"date":"2024-03-13","status":"FULL_DAY"}`, "validation failed: userId or email is required"},
		{"missing status", `{"userId":5,"date":"2024-03-13"}`, "validation failed: status is required"},
		{"bad date", `{"userId":5,"date":"13/03/2024","status":"FULL_DAY"}`, `validation failed: invalid date "13/03/2024", expected YYYY-MM-DD`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAttendanceService{}
			rec := doRequest((&AttendanceHandler{Service: svc}).Mark, http.MethodPost, "/api/attendance/mark", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.message, errorBody(t, rec))
			svc.AssertNotCalled(t, "Mark", mock.Anything, mock.Anything)
		})
	}
}

func TestMarkAttendance_ServiceErrors(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{model.ErrDuplicateRecord, http.StatusBadRequest},
		{model.ErrInvalidDate, http.StatusBadRequest},
		{model.ErrUserNotFound, http.StatusNotFound},
		{errors.New("pool closed"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		svc := &mockAttendanceService{}
		svc.On("Mark", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

		rec := doRequest((&AttendanceHandler{Service: svc}).Mark, http.MethodPost, "/api/attendance",
			`{"userId":5,"date":"2024-03-13","status":"ABSENT"}`, nil)
		assert.Equal(t, tt.code, rec.Code, tt.err.Error())
		if tt.code == http.StatusInternalServerError {
			assert.Equal(t, "Server error", errorBody(t, rec))
		}
	}
}

func TestListAttendance_QueryFilter(t *testing.T) {
	svc := &mockAttendanceService{}
	h := AttendanceHandler{Service: svc}
	id := int64(5)

	svc.On("List", mock.Anything, &id).Return([]model.AttendanceRecord(nil), nil).Once()
	rec := doRequest(h.List, http.MethodGet, "/api/attendance?userId=5", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = doRequest(h.List, http.MethodGet, "/api/attendance?userId=five", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertExpectations(t)
}

func TestApprove(t *testing.T) {
	svc := &mockApprovalService{}
	h := ApprovalHandler{Service: svc}
	salary := decimal.RequireFromString("1500.25")

	svc.On("Approve", mock.Anything, int64(9), mock.MatchedBy(func(in core.ApproveInput) bool {
		return in.Department == "Ops" && in.Salary != nil && in.Salary.Equal(salary)
	})).Return(&model.Employee{ID: 3, UserID: 9, Department: "Ops", Salary: &salary}, nil).Once()

	rec := doRequest(h.Approve, http.MethodPost, "/api/admin/users/9/approve", `{"department":"Ops","salary":"1500.25"}`, map[string]string{"id": "9"})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"salary":1500.25`)
	svc.AssertExpectations(t)
}

func TestApprove_InvalidTransitionAndBadID(t *testing.T) {
	svc := &mockApprovalService{}
	h := ApprovalHandler{Service: svc}
	svc.On("Approve", mock.Anything, int64(9), core.ApproveInput{}).Return(nil, model.ErrInvalidTransition).Once()

	rec := doRequest(h.Approve, http.MethodPost, "/api/admin/users/9/approve", "", map[string]string{"id": "9"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(h.Approve, http.MethodPost, "/api/admin/users/x/approve", "", map[string]string{"id": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertExpectations(t)
}

func TestReject_EmptyBody(t *testing.T) {
	svc := &mockApprovalService{}
	svc.On("Reject", mock.Anything, int64(4), "").Return(&model.User{ID: 4, Status: model.UserRejected}, nil).Once()

	rec := doRequest((&ApprovalHandler{Service: svc}).Reject, http.MethodPost, "/api/admin/users/4/reject", "", map[string]string{"id": "4"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"REJECTED"`)
	svc.AssertExpectations(t)
}
