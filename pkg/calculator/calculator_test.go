package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bastiangx/citycomplete/pkg/suggest"
)

func TestCollect(t *testing.T) {
	from := suggest.NewFieldBinding("from")
	to := suggest.NewFieldBinding("to")
	from.Commit(suggest.Candidate{ID: "5", Name: "Казань", Region: "Республика Татарстан"})
	to.SetValue("Тула")

	now := time.Date(2025, 3, 1, 10, 30, 0, 0, time.FixedZone("MSK", 3*3600))
	sub := Collect(from, to, " 2.5 ", "", now)

	expected := Submission{
		CityFromID:     "5",
		CityFrom:       "Казань",
		CityFromRegion: "Республика Татарстан",
		CityTo:         "Тула",
		Volume:         "2.5",
		Timestamp:      "2025-03-01T07:30:00Z",
	}
	if sub != expected {
		t.Errorf("Collect = %+v, want %+v", sub, expected)
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		sub         Submission
		expected    []error
		description string
	}{
		{Submission{CityFrom: "Омск", CityTo: "Тула", Weight: "10"}, nil, "Valid with weight only"},
		{Submission{CityFrom: "Омск", CityTo: "Тула", Volume: "1"}, nil, "Valid with volume only"},
		{Submission{CityTo: "Тула", Weight: "10"}, []error{ErrMissingFrom}, "Missing departure"},
		{Submission{CityFrom: " ", Weight: "10"}, []error{ErrMissingFrom, ErrMissingTo}, "Blank cities"},
		{Submission{CityFrom: "Омск", CityTo: "Тула"}, []error{ErrMissingCargo}, "No cargo"},
		{Submission{}, []error{ErrMissingFrom, ErrMissingTo, ErrMissingCargo}, "Everything missing"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			err := tc.sub.Validate()
			if len(tc.expected) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			for _, want := range tc.expected {
				if !errors.Is(err, want) {
					t.Errorf("expected %v in %v", want, err)
				}
			}
		})
	}
}

func TestClientSubmit(t *testing.T) {
	var received Submission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected request %s %s", r.Method, r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Result{Success: true, ID: "abc"})
	}))
	defer srv.Close()

	client := &Client{URL: srv.URL, HTTP: srv.Client()}
	sub := Submission{CityFrom: "Омск", CityTo: "Тула", Weight: "10", Timestamp: "2025-03-01T07:30:00Z"}

	res, err := client.Submit(context.Background(), sub)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !res.Success || res.ID != "abc" {
		t.Errorf("unexpected result %+v", res)
	}
	if received != sub {
		t.Errorf("server got %+v, want %+v", received, sub)
	}
}

func TestClientSubmitInvalidSendsNothing(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := &Client{URL: srv.URL, HTTP: srv.Client()}
	if _, err := client.Submit(context.Background(), Submission{}); !errors.Is(err, ErrMissingFrom) {
		t.Errorf("expected validation error, got %v", err)
	}
	if called {
		t.Error("invalid submission must not reach the server")
	}
}

func TestClientSubmitStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := &Client{URL: srv.URL, HTTP: srv.Client()}
	_, err := client.Submit(context.Background(), Submission{CityFrom: "Омск", CityTo: "Тула", Volume: "1"})
	if err == nil {
		t.Fatal("expected an error for 503")
	}
}
