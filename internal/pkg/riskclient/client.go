package riskclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/emre/classtrack/internal/pkg/apperrors"
)

// Metrics is the feature tuple sent to the classification service
type Metrics struct {
	Attendance float64 `json:"attendance"`
	Marks      float64 `json:"marks"`
	Assignment float64 `json:"assignment"`
	Engagement float64 `json:"engagement"`
	GPA        float64 `json:"gpa"`
}

// Prediction is the classifier verdict
type Prediction struct {
	RiskLevel  string
	Confidence float64
}

// Classifier maps student metrics to a risk prediction. Implementations make
// exactly one attempt per call; retrying is the caller's decision.
type Classifier interface {
	Classify(ctx context.Context, metrics Metrics) (Prediction, error)
}

// Config holds the HTTP classifier endpoint settings
type Config struct {
	URL     string
	Token   string
	Timeout time.Duration
}

// HTTPClassifier calls an external classification endpoint over HTTP
type HTTPClassifier struct {
	config Config
	client *http.Client
}

// NewHTTPClassifier creates a classifier client for the configured endpoint
func NewHTTPClassifier(config Config) *HTTPClassifier {
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	return &HTTPClassifier{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

// classifierResponse mirrors the external service's response body
type classifierResponse struct {
	PredictedGrade *float64 `json:"predicted_grade"`
	RiskLevel      *string  `json:"risk_level"`
}

// Classify sends the metrics to the classification endpoint and maps the
// response. Any non-2xx status is a hard failure carrying the upstream status
// and body; transport failures are reported separately.
func (c *HTTPClassifier) Classify(ctx context.Context, metrics Metrics) (Prediction, error) {
	body, err := json.Marshal(metrics)
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to encode classifier payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL, bytes.NewReader(body))
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to build classifier request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Prediction{}, apperrors.NewCustomError(apperrors.ErrClassifierTransport, err.Error())
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Prediction{}, apperrors.NewCustomError(apperrors.ErrClassifierTransport, err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Prediction{}, apperrors.NewCustomError(
			apperrors.ErrClassifierUnavailable,
			fmt.Sprintf("classifier returned status %d: %s", resp.StatusCode, string(respBody)),
		).WithDetails(map[string]interface{}{
			"status": resp.StatusCode,
			"body":   string(respBody),
		})
	}

	var parsed classifierResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return Prediction{}, apperrors.NewCustomError(
			apperrors.ErrClassifierUnavailable,
			fmt.Sprintf("classifier returned malformed body: %s", err),
		)
	}

	// Absent fields fall back to a neutral verdict rather than failing
	prediction := Prediction{
		RiskLevel:  "Unknown",
		Confidence: 0.0,
	}
	if parsed.RiskLevel != nil {
		prediction.RiskLevel = *parsed.RiskLevel
	}
	if parsed.PredictedGrade != nil {
		prediction.Confidence = *parsed.PredictedGrade
	}

	return prediction, nil
}
