package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/moneyhealth/backend/internal/health"
)

// DefaultTimeout bounds every call to the narrative service.
const DefaultTimeout = 45 * time.Second

// maxResponseSize limits how much of a response body is read.
const maxResponseSize = 1 << 20

const (
	pathHealthScore = "/api/ai/health-score"
	pathRecommend   = "/api/ai/recommend"
	pathAssess      = "/api/ai/assess-transaction"
)

var (
	ErrStatus       = errors.New("the narrative service returned an unexpected status")
	ErrContentType  = errors.New("the narrative service did not respond with JSON")
	ErrEmptyBody    = errors.New("the narrative service returned an empty body")
	ErrInvalidBody  = errors.New("the narrative service returned invalid JSON")
	ErrMissingField = errors.New("the narrative service response is missing a required field")
)

// Client talks to the remote narrative service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the service at baseURL. A non-positive
// timeout selects DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// HealthNarrative is the narrated health assessment of a month.
type HealthNarrative struct {
	Score               int      `json:"score" example:"72" minimum:"0" maximum:"100"`
	Rating              string   `json:"rating" example:"Good"`
	Summary             string   `json:"summary" example:"Good financial health."`
	Strengths           []string `json:"strengths"`
	Weaknesses          []string `json:"weaknesses"`
	Recommendations     []string `json:"recommendations"`
	Insights            string   `json:"insights"`
	BenchmarkComparison string   `json:"benchmarkComparison,omitempty"`
	TrendAnalysis       string   `json:"trendAnalysis,omitempty"`
	PersonalizedGoals   []string `json:"personalizedGoals,omitempty"`
	RiskFactors         []string `json:"riskFactors,omitempty"`
	OpportunityAreas    []string `json:"opportunityAreas,omitempty"`
}

// healthResponse shadows the integer score so that a missing or fractional
// score can be detected.
type healthResponse struct {
	Score *float64 `json:"score"`
	HealthNarrative
}

type narrativeRequest struct {
	FinancialData FinancialData `json:"financialData"`
	Prompt        string        `json:"prompt"`
}

type recommendResponse struct {
	Tips []health.Tip `json:"tips"`
}

// TransactionInput is a transaction the user is about to record.
type TransactionInput struct {
	Type     string  `json:"type" example:"expense"`
	Amount   float64 `json:"amount" example:"120.5"`
	Category string  `json:"category" example:"Groceries"`
}

type assessRequest struct {
	FinancialData FinancialData     `json:"financialData"`
	Transaction   TransactionInput  `json:"transaction"`
	Assessment    health.Assessment `json:"assessment"`
	Prompt        string            `json:"prompt"`
}

// AssessmentNarrative is the narrated text of a transaction assessment.
type AssessmentNarrative struct {
	Title          string `json:"title"`
	Message        string `json:"message"`
	Recommendation string `json:"recommendation"`
}

// HealthScore asks the service to narrate the health of a month.
//
// A score outside of [0, 100] is clamped.
func (c *Client) HealthScore(ctx context.Context, data FinancialData, prompt string) (HealthNarrative, error) {
	var r healthResponse
	err := c.post(ctx, pathHealthScore, narrativeRequest{FinancialData: data, Prompt: prompt}, &r)
	if err != nil {
		return HealthNarrative{}, err
	}

	if r.Score == nil {
		return HealthNarrative{}, fmt.Errorf("%w: score", ErrMissingField)
	}

	if r.Summary == "" {
		return HealthNarrative{}, fmt.Errorf("%w: summary", ErrMissingField)
	}

	n := r.HealthNarrative
	n.Score = clampScore(*r.Score)
	return n, nil
}

// Recommend asks the service for tips.
func (c *Client) Recommend(ctx context.Context, data FinancialData, prompt string) ([]health.Tip, error) {
	var r recommendResponse
	err := c.post(ctx, pathRecommend, narrativeRequest{FinancialData: data, Prompt: prompt}, &r)
	if err != nil {
		return nil, err
	}

	if r.Tips == nil {
		return nil, fmt.Errorf("%w: tips", ErrMissingField)
	}

	return r.Tips, nil
}

// AssessTransaction asks the service to narrate a locally computed
// assessment.
func (c *Client) AssessTransaction(ctx context.Context, data FinancialData, t TransactionInput, a health.Assessment, prompt string) (AssessmentNarrative, error) {
	var r AssessmentNarrative
	err := c.post(ctx, pathAssess, assessRequest{FinancialData: data, Transaction: t, Assessment: a, Prompt: prompt}, &r)
	if err != nil {
		return AssessmentNarrative{}, err
	}

	if r.Message == "" {
		return AssessmentNarrative{}, fmt.Errorf("%w: message", ErrMissingField)
	}

	return r, nil
}

// post sends body as JSON to path and decodes the JSON response into target.
func (c *Client) post(ctx context.Context, path string, body, target any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return fmt.Errorf("%w: %q", ErrContentType, resp.Header.Get("Content-Type"))
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return ErrEmptyBody
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	return nil
}

func clampScore(v float64) int {
	if math.IsNaN(v) {
		return 0
	}

	return int(math.Round(math.Max(0, math.Min(100, v))))
}
