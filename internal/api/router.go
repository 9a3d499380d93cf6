package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"hrms.service/internal/api/handler"
)

// Pinger reports database reachability for the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services bundles what the HTTP layer depends on.
type Services struct {
	Users      handler.UserService
	Approval   handler.ApprovalService
	Attendance handler.AttendanceService
	Leaves     handler.LeaveService
	Salaries   handler.SalaryService
	Employees  handler.EmployeeService
	Staff      handler.StaffService
	DB         Pinger
}

// NewRouter sets up the gorilla/mux router and defines all API routes.
func NewRouter(s Services) *mux.Router {
	auth := handler.AuthHandler{Service: s.Users}
	approval := handler.ApprovalHandler{Service: s.Approval}
	attendance := handler.AttendanceHandler{Service: s.Attendance}
	leave := handler.LeaveHandler{Service: s.Leaves}
	salary := handler.SalaryHandler{Service: s.Salaries}
	employee := handler.EmployeeHandler{Service: s.Employees}
	staff := handler.StaffHandler{Service: s.Staff}

	r := mux.NewRouter()

	r.HandleFunc("/auth/api/register", auth.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/api/login", auth.Login).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/attendance", attendance.List).Methods(http.MethodGet)
	api.HandleFunc("/attendance/all", attendance.ListAll).Methods(http.MethodGet)
	api.HandleFunc("/attendance/user/{id}", attendance.ListByUser).Methods(http.MethodGet)
	api.HandleFunc("/attendance", attendance.Mark).Methods(http.MethodPost)
	api.HandleFunc("/attendance/mark", attendance.Mark).Methods(http.MethodPost)

	// t-leaves is registered before {id} so it is not taken for an id.
	api.HandleFunc("/employees/t-leaves", employee.SetTotalLeaves).Methods(http.MethodPut)
	api.HandleFunc("/employees", employee.List).Methods(http.MethodGet)
	api.HandleFunc("/employees", employee.Create).Methods(http.MethodPost)
	api.HandleFunc("/employees/{id}", employee.Get).Methods(http.MethodGet)
	api.HandleFunc("/employees/{id}", employee.Update).Methods(http.MethodPut)
	api.HandleFunc("/employees/{id}", employee.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/admins", staff.ListAdmins).Methods(http.MethodGet)
	api.HandleFunc("/admins", staff.CreateAdmin).Methods(http.MethodPost)
	api.HandleFunc("/admins/{id}", staff.GetAdmin).Methods(http.MethodGet)
	api.HandleFunc("/admins/{id}", staff.UpdateAdmin).Methods(http.MethodPut)
	api.HandleFunc("/admins/{id}", staff.DeleteAdmin).Methods(http.MethodDelete)

	api.HandleFunc("/hrmanagers", staff.ListHrManagers).Methods(http.MethodGet)
	api.HandleFunc("/hrmanagers", staff.CreateHrManager).Methods(http.MethodPost)
	api.HandleFunc("/hrmanagers/{id}", staff.GetHrManager).Methods(http.MethodGet)
	api.HandleFunc("/hrmanagers/{id}", staff.UpdateHrManager).Methods(http.MethodPut)
	api.HandleFunc("/hrmanagers/{id}", staff.DeleteHrManager).Methods(http.MethodDelete)

	api.HandleFunc("/admin/pending-employees", approval.ListPending).Methods(http.MethodGet)
	api.HandleFunc("/admin/users/{id}/approve", approval.Approve).Methods(http.MethodPost)
	api.HandleFunc("/admin/users/{id}/reject", approval.Reject).Methods(http.MethodPost)

	api.HandleFunc("/leave", leave.List).Methods(http.MethodGet)
	api.HandleFunc("/leave", leave.Apply).Methods(http.MethodPost)
	api.HandleFunc("/leave/{id}", leave.Respond).Methods(http.MethodPut)

	api.HandleFunc("/salaries", salary.List).Methods(http.MethodGet)
	api.HandleFunc("/salaries", salary.Save).Methods(http.MethodPost)
	api.HandleFunc("/salaries/employee/{id}", salary.ListByEmployee).Methods(http.MethodGet)

	r.HandleFunc("/health", healthHandler(s.DB)).Methods(http.MethodGet)

	return r
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				log.Ctx(r.Context()).Error().Err(err).Msg("health check: database unreachable")
				http.Error(w, "Database unavailable.", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Service is operational."))
	}
}
