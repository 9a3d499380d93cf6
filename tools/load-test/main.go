package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

func main() {
	// Configuration
	baseURL := "http://localhost:8080"
	contentType := "application/json"

	numUsers := 2000
	marksPerUser := 2
	concurrency := 50 // Number of concurrent requests to avoid local port exhaustion

	fmt.Printf("Starting load test: %d users (%d marks each) against %s with concurrency %d\n", numUsers, marksPerUser, baseURL, concurrency)

	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)

	var created, duplicates, marked, failed int64

	startTime := time.Now()
	runID := uuid.NewString()[:8]
	today := time.Now().Format("2006-01-02")

	for i := 0; i < numUsers; i++ {
		wg.Add(1)
		sem <- struct{}{}

		email := fmt.Sprintf("load-%s-%d@example.com", runID, i)

		go func(email string) {
			defer wg.Done()
			defer func() { <-sem }()

			register, _ := json.Marshal(map[string]string{
				"email":     email,
				"password":  "load-test-pass",
				"firstName": "Load",
				"lastName":  "Test",
			})
			resp, err := http.Post(baseURL+"/auth/api/register", contentType, bytes.NewReader(register))
			if err != nil {
				atomic.AddInt64(&failed, 1)
				return
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusCreated {
				atomic.AddInt64(&failed, 1)
				return
			}
			atomic.AddInt64(&created, 1)

			mark, _ := json.Marshal(map[string]string{
				"email":  email,
				"status": "FULL_DAY",
				"date":   today,
			})
			// Only the first mark of the day can succeed; the rest must be rejected as duplicates.
			for j := 0; j < marksPerUser; j++ {
				resp, err := http.Post(baseURL+"/api/attendance/mark", contentType, bytes.NewReader(mark))
				if err != nil {
					atomic.AddInt64(&failed, 1)
					continue
				}
				switch {
				case resp.StatusCode >= 200 && resp.StatusCode < 300:
					atomic.AddInt64(&marked, 1)
				case resp.StatusCode == http.StatusBadRequest:
					atomic.AddInt64(&duplicates, 1)
				default:
					atomic.AddInt64(&failed, 1)
				}
				resp.Body.Close()
			}
		}(email)
	}

	wg.Wait()
	duration := time.Since(startTime)
	total := created + marked + duplicates + failed

	fmt.Println("\n--- Load Test Results ---")
	fmt.Printf("Total Duration:   %v\n", duration)
	fmt.Printf("Users Registered: %d\n", created)
	fmt.Printf("Marked:           %d\n", marked)
	fmt.Printf("Rejected:         %d\n", duplicates)
	fmt.Printf("Failed:           %d\n", failed)
	fmt.Printf("Requests/Sec:     %.2f\n", float64(total)/duration.Seconds())
	if marked != created {
		fmt.Printf("WARNING: expected exactly one mark per user, got %d marks for %d users\n", marked, created)
	}
}
