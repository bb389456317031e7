// Command smoke exercises a running API instance end to end: it registers an
// account, creates a student, generates a roadmap, and requests a monitoring
// report. Intended for post-deploy verification, not load testing.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

type step struct {
	Name       string
	Method     string
	Path       string
	Body       map[string]interface{}
	WantStatus int
	Auth       bool
	Save       func(data map[string]interface{}, state *state)
}

type state struct {
	token     string
	studentID string
	roadmapID string
}

type result struct {
	Step     step
	Status   int
	Duration time.Duration
	Error    error
}

func main() {
	var (
		base    string
		timeout time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080/api/v1", "API base URL")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "HTTP client timeout")
	flag.Parse()

	client := &http.Client{Timeout: timeout}
	st := &state{}
	suffix := time.Now().UnixNano()

	steps := []step{
		{
			Name:   "register admin",
			Method: http.MethodPost,
			Path:   "/auth/register",
			Body: map[string]interface{}{
				"email":    fmt.Sprintf("smoke_%d@example.com", suffix),
				"password": "smoke-test-pass",
				"fullName": "Smoke Test",
				"role":     "ADMIN",
			},
			WantStatus: http.StatusCreated,
		},
		{
			Name:   "login",
			Method: http.MethodPost,
			Path:   "/auth/login",
			Body: map[string]interface{}{
				"email":    fmt.Sprintf("smoke_%d@example.com", suffix),
				"password": "smoke-test-pass",
			},
			WantStatus: http.StatusOK,
			Save: func(data map[string]interface{}, st *state) {
				st.token, _ = data["token"].(string)
			},
		},
		{
			Name:   "create student",
			Method: http.MethodPost,
			Path:   "/students",
			Body: map[string]interface{}{
				"name":                 "Smoke Student",
				"age":                  17,
				"grade":                "12th",
				"targetScores":         map[string]float64{"Mathematics": 90, "Physics": 85},
				"currentScores":        map[string]float64{"Mathematics": 70, "Physics": 65},
				"learningStyle":        "visual",
				"availableHoursPerDay": 4,
			},
			WantStatus: http.StatusCreated,
			Auth:       true,
			Save: func(data map[string]interface{}, st *state) {
				st.studentID, _ = data["id"].(string)
			},
		},
		{
			Name:       "generate roadmap",
			Method:     http.MethodPost,
			Path:       "/roadmaps",
			WantStatus: http.StatusCreated,
			Auth:       true,
			Body:       nil, // filled in below once the student ID is known
			Save: func(data map[string]interface{}, st *state) {
				st.roadmapID, _ = data["id"].(string)
			},
		},
		{
			Name:       "generate monitoring report",
			Method:     http.MethodPost,
			Path:       "/monitoring/reports",
			WantStatus: http.StatusCreated,
			Auth:       true,
		},
	}

	var results []result
	failures := 0

	for _, s := range steps {
		switch s.Name {
		case "generate roadmap":
			s.Body = map[string]interface{}{"studentId": st.studentID, "durationWeeks": 4}
		case "generate monitoring report":
			s.Body = map[string]interface{}{"studentId": st.studentID, "currentWeek": 1}
		}

		res := runStep(client, base, s, st)
		if res.Error != nil || res.Status != s.WantStatus {
			failures++
		}
		results = append(results, res)
	}

	printReport(results)

	fmt.Printf("Failures: %d\n", failures)
	if failures > 0 {
		os.Exit(1)
	}
}

func runStep(client *http.Client, base string, s step, st *state) result {
	res := result{Step: s}

	var body io.Reader
	if s.Body != nil {
		raw, err := json.Marshal(s.Body)
		if err != nil {
			res.Error = fmt.Errorf("marshal body: %w", err)
			return res
		}
		body = bytes.NewReader(raw)
	}

	url := strings.TrimRight(base, "/") + s.Path
	req, err := http.NewRequest(s.Method, url, body)
	if err != nil {
		res.Error = err
		return res
	}
	req.Header.Set("Content-Type", "application/json")
	if s.Auth && st.token != "" {
		req.Header.Set("Authorization", "Bearer "+st.token)
	}

	start := time.Now()
	resp, err := client.Do(req)
	res.Duration = time.Since(start)
	if err != nil {
		res.Error = err
		return res
	}
	defer resp.Body.Close()

	res.Status = resp.StatusCode

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		res.Error = fmt.Errorf("read body: %w", err)
		return res
	}

	if s.Save != nil {
		var envelope struct {
			Data map[string]interface{} `json:"data"`
		}
		if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Data != nil {
			s.Save(envelope.Data, st)
		}
	}

	return res
}

func printReport(results []result) {
	fmt.Println("Smoke Test Report")
	fmt.Println("=================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil || res.Status != res.Step.WantStatus {
			status = "FAIL"
		}
		fmt.Printf("[%s] %s %s\n", status, res.Step.Method, res.Step.Path)
		fmt.Printf("  Status: %d (want %d) in %s\n", res.Status, res.Step.WantStatus, res.Duration)
		if res.Error != nil {
			fmt.Printf("  Error: %v\n", res.Error)
		}
	}
}
