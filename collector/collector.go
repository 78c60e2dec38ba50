// Licensed to Elasticsearch B.V. under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. Elasticsearch B.V. licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Package collector runs one collection pass over the configured
// repositories and accumulates the per-repository records into a batch.
package collector

import (
	"context"
	"errors"
	"time"

	"github.com/arcmetrics/github-stats-monitor/githubapi"
	"github.com/arcmetrics/github-stats-monitor/model"

	"go.uber.org/zap"
)

const defaultPacing = 1 * time.Second

// Fetcher fetches the statistics of a single repository.
type Fetcher interface {
	FetchRepoStats(ctx context.Context, repo string) (model.Record, error)
}

// Result tallies one collection pass. It is used for logging only and
// is not persisted anywhere.
type Result struct {
	Attempted int
	Succeeded int
}

// Collector iterates the configured repositories strictly sequentially.
// The pacing delay between fetch attempts is a deliberate rate limit
// against the GitHub API, not an accidental limitation.
type Collector struct {
	fetcher Fetcher
	pacing  time.Duration
	logger  *zap.SugaredLogger
}

func New(opts ...Option) (*Collector, error) {
	c := Collector{
		pacing: defaultPacing,
	}

	for _, opt := range opts {
		opt(&c)
	}

	if c.fetcher == nil {
		return nil, errors.New("fetcher cannot be empty")
	}

	if c.logger == nil {
		return nil, errors.New("logger cannot be empty")
	}

	return &c, nil
}

// CollectOnce fetches every repository in input order and returns the
// batch of successful records together with the tally. Fetch failures
// are logged and skipped; they never terminate the pass. Cancelling the
// context aborts the remaining repositories.
//
// The pacing delay applies after every attempt, including failures and
// the last repository.
func (c *Collector) CollectOnce(ctx context.Context, repos []string) (model.Batch, Result) {
	var res Result
	batch := make(model.Batch, 0, len(repos))

	for _, repo := range repos {
		if ctx.Err() != nil {
			break
		}
		res.Attempted++

		rec, err := c.fetcher.FetchRepoStats(ctx, repo)
		if err != nil {
			c.logFetchError(repo, err)
		} else {
			batch = append(batch, rec)
			res.Succeeded++
		}

		if !sleepWithContext(ctx, c.pacing) {
			break
		}
	}

	return batch, res
}

func (c *Collector) logFetchError(repo string, err error) {
	switch {
	case errors.Is(err, githubapi.ErrNotFound):
		c.logger.Errorf("Repository not found: %s", repo)
	case errors.Is(err, githubapi.ErrRateLimited):
		c.logger.Errorf("Rate limit exceeded or access denied for %s", repo)
	default:
		c.logger.Errorf("Error fetching stats for %s: %v", repo, err)
	}
}

// sleepWithContext waits for d unless the context is cancelled first.
// It reports whether the full delay elapsed.
func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
