// Local stand-in for the payroll system. Logs every salary it receives.
package main

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hrms.service/internal/ports/messaging"
)

func salaryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var event messaging.PayrollEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	log.Info().
		Int64("salary_id", event.SalaryID).
		Int64("employee_id", event.EmployeeID).
		Str("employee_name", event.EmployeeName).
		Str("amount", event.Amount.String()).
		Str("payment_date", event.PaymentDate).
		Msg("Received salary")
	w.WriteHeader(http.StatusOK)
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	addr := ":8081"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	http.HandleFunc("/", salaryHandler)
	log.Info().Str("addr", addr).Msg("Payroll API mock server starting")
	srv := &http.Server{Addr: addr, ReadHeaderTimeout: 5 * time.Second}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("listen")
	}
}
