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
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/medcite/core"
)

const defaultFetchTimeout = 30 * time.Second

// Orchestrator fans a condition out to all configured sources concurrently
// and gathers whatever arrives before the deadline. Individual source
// failures never fail the whole fetch; they are reported per source.
type Orchestrator struct {
	fetchers []Fetcher
	pool     *ants.Pool
	backoff  BackoffPolicy
	timeout  time.Duration
	logger   *slog.Logger
}

// FetchResult aggregates the outcome of a fan-out fetch.
type FetchResult struct {
	// Records holds everything the sources returned, in completion order.
	Records []*core.RawRecord

	// Failures maps source name to the error that exhausted its retries.
	Failures map[string]error
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator) error

// WithPoolSize sets the worker pool size, bounding how many sources are
// queried at once. Default is the number of fetchers.
func WithPoolSize(size int) OrchestratorOption {
	return func(o *Orchestrator) error {
		if size < 1 {
			size = 1
		}
		if o.pool != nil {
			o.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		o.pool = pool
		return nil
	}
}

// WithBackoff sets the retry policy applied to each source.
func WithBackoff(policy BackoffPolicy) OrchestratorOption {
	return func(o *Orchestrator) error {
		o.backoff = policy
		return nil
	}
}

// WithTimeout sets the overall deadline for a fan-out fetch.
func WithTimeout(timeout time.Duration) OrchestratorOption {
	return func(o *Orchestrator) error {
		if timeout > 0 {
			o.timeout = timeout
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// NewOrchestrator creates an orchestrator over the given fetchers.
func NewOrchestrator(fetchers []Fetcher, opts ...OrchestratorOption) (*Orchestrator, error) {
	if len(fetchers) == 0 {
		return nil, ErrNoFetchers
	}

	pool, err := ants.NewPool(len(fetchers))
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		fetchers: fetchers,
		pool:     pool,
		backoff:  DefaultBackoff(),
		timeout:  defaultFetchTimeout,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(o); optErr != nil {
			o.Release()
			return nil, optErr
		}
	}

	return o, nil
}

// FetchAll queries every source for the condition concurrently and collects
// the results. Sources that fail after retries, or that the deadline cuts
// off, appear in FetchResult.Failures; everything that completed is returned
// regardless.
func (o *Orchestrator) FetchAll(ctx context.Context, condition string) *FetchResult {
	fetchCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	result := &FetchResult{
		Failures: make(map[string]error),
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for _, fetcher := range o.fetchers {
		fetcher := fetcher
		wg.Add(1)

		submitErr := o.pool.Submit(func() {
			defer wg.Done()

			var records []*core.RawRecord
			err := o.backoff.Retry(fetchCtx, func() error {
				var fetchErr error
				records, fetchErr = fetcher.Fetch(fetchCtx, condition)
				return fetchErr
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				o.logger.Warn("source fetch failed", "source", fetcher.Name(), "condition", condition, "err", err)
				result.Failures[fetcher.Name()] = &SourceError{Source: fetcher.Name(), Err: err}
				return
			}
			o.logger.Debug("source fetch completed", "source", fetcher.Name(), "condition", condition, "records", len(records))
			result.Records = append(result.Records, records...)
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			result.Failures[fetcher.Name()] = &SourceError{Source: fetcher.Name(), Err: submitErr}
			mu.Unlock()
		}
	}

	wg.Wait()
	return result
}

// Release releases the worker pool.
// The orchestrator should not be used after calling Release.
func (o *Orchestrator) Release() {
	if o.pool != nil {
		o.pool.Release()
	}
}
