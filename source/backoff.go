// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package source

import (
	"context"
	"log/slog"
	"time"
)

// BackoffPolicy controls retry behavior for transient source failures.
type BackoffPolicy struct {
	// MaxAttempts is the maximum number of attempts (must be > 0).
	MaxAttempts int

	// BaseDelay is the delay after the first failure; it doubles on each
	// subsequent failure.
	BaseDelay time.Duration

	// Ceiling caps the delay between attempts. Zero means no cap.
	Ceiling time.Duration
}

// DefaultBackoff returns the policy used when none is configured.
func DefaultBackoff() BackoffPolicy {
	return BackoffPolicy{
		MaxAttempts: 3,
		BaseDelay:   500 * time.Millisecond,
		Ceiling:     5 * time.Second,
	}
}

// Delay returns the wait before the given retry. Attempt numbering starts at
// 1; the delay doubles per attempt and is capped at Ceiling.
func (p BackoffPolicy) Delay(attempt int) time.Duration {
	delay := p.BaseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if p.Ceiling > 0 && delay >= p.Ceiling {
			return p.Ceiling
		}
	}
	if p.Ceiling > 0 && delay > p.Ceiling {
		return p.Ceiling
	}
	return delay
}

// Retry runs an operation with exponential backoff.
// Returns the error from the last attempt if all attempts fail.
func (p BackoffPolicy) Retry(ctx context.Context, operation func() error) error {
	if p.MaxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		// Check context before attempting
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		lastErr = operation()
		if lastErr == nil {
			if attempt > 1 {
				slog.Debug("operation succeeded after retry", "attempt", attempt)
			}
			return nil
		}

		slog.Debug("operation failed, will retry", "attempt", attempt, "maxAttempts", p.MaxAttempts, "error", lastErr)

		// Don't sleep after the last attempt
		if attempt == p.MaxAttempts {
			break
		}

		timer := time.NewTimer(p.Delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return lastErr
}
