// Package advisor narrates health results, either through a remote
// narrative service or locally.
//
// The remote service is optional. Every failure to reach it, or any
// unusable response, falls back to the deterministic local narrative, so
// callers never see an error.
package advisor

import (
	"context"
	"fmt"

	"github.com/moneyhealth/backend/internal/health"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Source tells where a result was produced.
type Source string

const (
	SourceAI    Source = "ai"
	SourceLocal Source = "local"
)

// HealthResult is a health narrative together with its source.
type HealthResult struct {
	HealthNarrative
	Source Source `json:"source" example:"local"`
}

// TipsResult is a list of tips together with its source.
type TipsResult struct {
	Tips   []health.Tip `json:"tips"`
	Source Source       `json:"source" example:"ai"`
}

// AssessmentResult is an assessment together with the source of its text.
type AssessmentResult struct {
	health.Assessment
	Source Source `json:"source" example:"local"`
}

// Report combines the health narrative and the recommendations of a month.
type Report struct {
	Health          HealthResult `json:"health"`
	Recommendations TipsResult   `json:"recommendations"`
}

// Advisor produces narratives, preferring the remote service if one is
// configured.
type Advisor struct {
	client *Client
}

// New returns an Advisor. With a nil client, all results are local.
func New(client *Client) *Advisor {
	return &Advisor{client: client}
}

// Remote reports if a narrative service is configured.
func (a *Advisor) Remote() bool {
	return a != nil && a.client != nil
}

// Health returns the health narrative of a month.
func (a *Advisor) Health(ctx context.Context, in Input) HealthResult {
	if a.Remote() {
		n, err := a.client.HealthScore(ctx, in.Data, healthPrompt(in))
		if err == nil {
			return HealthResult{HealthNarrative: n, Source: SourceAI}
		}
		fallback(pathHealthScore, err)
	}

	return HealthResult{HealthNarrative: localHealth(in), Source: SourceLocal}
}

// Recommend returns the tips for a month.
func (a *Advisor) Recommend(ctx context.Context, in Input) TipsResult {
	if a.Remote() {
		tips, err := a.client.Recommend(ctx, in.Data, recommendPrompt(in))
		if err == nil {
			return TipsResult{Tips: tips, Source: SourceAI}
		}
		fallback(pathRecommend, err)
	}

	tips := in.Tips
	if tips == nil {
		tips = []health.Tip{}
	}

	return TipsResult{Tips: tips, Source: SourceLocal}
}

// Assess narrates a transaction assessment.
//
// The risk level, the warning flag and the ratios always come from the
// local assessment. Only the text is taken from the remote service.
func (a *Advisor) Assess(ctx context.Context, in Input, t TransactionInput, local health.Assessment) AssessmentResult {
	if a.Remote() {
		n, err := a.client.AssessTransaction(ctx, in.Data, t, local, assessPrompt(t, local))
		if err == nil {
			narrated := local
			narrated.Message = n.Message
			if n.Title != "" {
				narrated.Title = n.Title
			}
			if n.Recommendation != "" {
				narrated.Recommendation = n.Recommendation
			}

			return AssessmentResult{Assessment: narrated, Source: SourceAI}
		}
		fallback(pathAssess, err)
	}

	return AssessmentResult{Assessment: local, Source: SourceLocal}
}

// Report fetches the health narrative and the recommendations concurrently.
func (a *Advisor) Report(ctx context.Context, in Input) Report {
	var r Report

	// Neither call returns an error, the group only joins them
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r.Health = a.Health(ctx, in)
		return nil
	})
	g.Go(func() error {
		r.Recommendations = a.Recommend(ctx, in)
		return nil
	})
	_ = g.Wait()

	return r
}

func fallback(endpoint string, err error) {
	fallbacks.WithLabelValues(endpoint).Inc()
	log.Warn().Str("component", "advisor").Str("endpoint", endpoint).Err(err).Msg("narrative service failed, using local result")
}

func healthPrompt(in Input) string {
	return fmt.Sprintf("Assess the financial health for %s. The local health score is %d out of 100 with status %s. Respond with JSON.",
		in.Data.Month, in.Score.Score, in.Score.Status)
}

func recommendPrompt(in Input) string {
	return fmt.Sprintf("Give actionable tips to improve the finances for %s. The month score is %d. Respond with JSON containing a tips array.",
		in.Data.Month, in.Breakdown.Total)
}

func assessPrompt(t TransactionInput, a health.Assessment) string {
	return fmt.Sprintf("Explain the %s risk of a %s transaction of %.2f in category %q. Respond with JSON.",
		a.RiskLevel, t.Type, t.Amount, t.Category)
}
