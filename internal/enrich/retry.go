// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package enrich

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// MinRetries is the smallest allowed RetryPolicy.MaxRetries.
const MinRetries = 2

// Clock abstracts waiting so tests can skip backoff delays.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// RetryPolicy retries transient failures with a fixed backoff.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int
	Backoff    time.Duration
	Clock      Clock
}

// DefaultRetryPolicy returns 2 retries with a 500ms backoff.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: MinRetries, Backoff: 500 * time.Millisecond, Clock: realClock{}}
}

// Validate checks the policy bounds.
func (p RetryPolicy) Validate() error {
	if p.MaxRetries < MinRetries {
		return fmt.Errorf("max retries must be >= %d, got %d", MinRetries, p.MaxRetries)
	}
	if p.Backoff < 0 {
		return fmt.Errorf("backoff must not be negative, got %s", p.Backoff)
	}
	return nil
}

// Do calls fn until it succeeds, returns a non-transient error, the context
// ends or MaxRetries+1 attempts have been made. It returns the number of
// attempts and the last error. A *TransientFetchError returned by fn has its
// Attempt field set.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) (int, error) {
	clock := p.Clock
	if clock == nil {
		clock = realClock{}
	}
	maxAttempts := p.MaxRetries + 1
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var err error
	attempt := 0
	for attempt < maxAttempts {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if err == nil {
				err = ctxErr
			}
			return attempt, err
		}

		attempt++
		err = fn(ctx)
		if err == nil {
			return attempt, nil
		}

		var tfe *TransientFetchError
		if errors.As(err, &tfe) && tfe.Attempt == 0 {
			tfe.Attempt = attempt
		}
		if !IsTransient(err) || attempt == maxAttempts {
			return attempt, err
		}

		select {
		case <-clock.After(p.Backoff):
		case <-ctx.Done():
			return attempt, err
		}
	}
	return attempt, err
}
