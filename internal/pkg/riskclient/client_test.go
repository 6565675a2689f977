package riskclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/emre/classtrack/internal/pkg/apperrors"
)

func TestClassifySuccess(t *testing.T) {
	var received Metrics
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret-token" {
			t.Errorf("Authorization = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"risk_level": "High", "predicted_grade": 0.92}`))
	}))
	defer server.Close()

	classifier := NewHTTPClassifier(Config{URL: server.URL, Token: "secret-token", Timeout: 5 * time.Second})

	prediction, err := classifier.Classify(context.Background(), Metrics{
		Attendance: 55,
		Marks:      40,
		Assignment: 70,
		Engagement: 55,
		GPA:        1.6,
	})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	if prediction.RiskLevel != "High" || prediction.Confidence != 0.92 {
		t.Errorf("prediction = %+v", prediction)
	}
	if received.Attendance != 55 || received.GPA != 1.6 {
		t.Errorf("payload = %+v", received)
	}
}

func TestClassifyDefaultsForMissingFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	classifier := NewHTTPClassifier(Config{URL: server.URL})

	prediction, err := classifier.Classify(context.Background(), Metrics{})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if prediction.RiskLevel != "Unknown" || prediction.Confidence != 0 {
		t.Errorf("prediction = %+v, want Unknown/0 defaults", prediction)
	}
}

func TestClassifyUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model offline", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	classifier := NewHTTPClassifier(Config{URL: server.URL})

	_, err := classifier.Classify(context.Background(), Metrics{})
	if err == nil {
		t.Fatal("expected an error for a non-2xx response")
	}
	if !errors.Is(err, apperrors.ErrClassifierUnavailable) {
		t.Errorf("error = %v, want ErrClassifierUnavailable", err)
	}
}

func TestClassifyTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	classifier := NewHTTPClassifier(Config{URL: server.URL})

	_, err := classifier.Classify(context.Background(), Metrics{})
	if err == nil {
		t.Fatal("expected an error when the service is unreachable")
	}
	if !errors.Is(err, apperrors.ErrClassifierTransport) {
		t.Errorf("error = %v, want ErrClassifierTransport", err)
	}
}
