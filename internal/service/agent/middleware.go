package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	models "campaigner/internal/domain/models/studio"
	studioSvc "campaigner/internal/domain/services/studio"

	"golang.org/x/time/rate"
)

// RateLimited throttles invocations with a token bucket.
// Callers wait for a token; a cancelled context aborts the wait.
type RateLimited struct {
	next    studioSvc.AgentTransport
	limiter *rate.Limiter
}

// NewRateLimited allows perMinute calls per minute with a burst of burst
func NewRateLimited(next studioSvc.AgentTransport, perMinute, burst int) *RateLimited {
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst),
	}
}

// Invoke waits for a token, then delegates
func (r *RateLimited) Invoke(ctx context.Context, prompt, agentID string) (*models.Envelope, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return r.next.Invoke(ctx, prompt, agentID)
}

// Timed bounds each invocation and logs its outcome
type Timed struct {
	next    studioSvc.AgentTransport
	timeout time.Duration
	logger  *slog.Logger
}

// NewTimed wraps next; timeout <= 0 disables the deadline
func NewTimed(next studioSvc.AgentTransport, timeout time.Duration, logger *slog.Logger) *Timed {
	return &Timed{next: next, timeout: timeout, logger: logger}
}

// Invoke delegates under a deadline
func (t *Timed) Invoke(ctx context.Context, prompt, agentID string) (*models.Envelope, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	start := time.Now()
	env, err := t.next.Invoke(ctx, prompt, agentID)
	elapsed := time.Since(start)

	switch {
	case err != nil:
		t.logger.Error("agent invocation raised", "agent_id", agentID, "duration", elapsed, "error", err)
	case env == nil || !env.Success:
		t.logger.Warn("agent reported failure", "agent_id", agentID, "duration", elapsed, "error", env.ErrorText())
	default:
		t.logger.Info("agent invocation completed", "agent_id", agentID, "duration", elapsed)
	}
	return env, err
}
