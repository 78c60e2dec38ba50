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

package collector_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/arcmetrics/github-stats-monitor/collector"
	"github.com/arcmetrics/github-stats-monitor/githubapi"
	"github.com/arcmetrics/github-stats-monitor/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeFetcher struct {
	calls   []string
	failing map[string]error
}

func (f *fakeFetcher) FetchRepoStats(_ context.Context, repo string) (model.Record, error) {
	f.calls = append(f.calls, repo)
	if err, ok := f.failing[repo]; ok {
		return model.Record{}, err
	}
	return model.Record{Measurement: model.Measurement, Repo: repo}, nil
}

func newCollector(t *testing.T, f collector.Fetcher) *collector.Collector {
	t.Helper()
	c, err := collector.New(
		collector.WithFetcher(f),
		collector.WithPacing(0),
		collector.WithLogger(zaptest.NewLogger(t).Sugar()),
	)
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	testCases := map[string]struct {
		opts        []collector.Option
		expectedErr bool
	}{
		"empty": {
			expectedErr: true,
		},
		"missing logger": {
			opts: []collector.Option{
				collector.WithFetcher(&fakeFetcher{}),
			},
			expectedErr: true,
		},
		"missing fetcher": {
			opts: []collector.Option{
				collector.WithLogger(zaptest.NewLogger(t).Sugar()),
			},
			expectedErr: true,
		},
		"valid": {
			opts: []collector.Option{
				collector.WithFetcher(&fakeFetcher{}),
				collector.WithLogger(zaptest.NewLogger(t).Sugar()),
			},
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := collector.New(tc.opts...)
			if tc.expectedErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCollectOnceOrderPreserved(t *testing.T) {
	repos := []string{"a/one", "b/two", "c/three", "d/four"}
	fetcher := &fakeFetcher{}
	c := newCollector(t, fetcher)

	batch, res := c.CollectOnce(context.Background(), repos)

	assert.Equal(t, repos, fetcher.calls)
	assert.Equal(t, collector.Result{Attempted: 4, Succeeded: 4}, res)
	require.Len(t, batch, 4)
	for i, rec := range batch {
		assert.Equal(t, repos[i], rec.Repo)
	}
}

func TestCollectOnceSkipsFailures(t *testing.T) {
	repos := []string{"a/ok", "b/missing", "c/limited", "d/broken", "e/ok"}
	fetcher := &fakeFetcher{failing: map[string]error{
		"b/missing": fmt.Errorf("fetching b/missing: %w", githubapi.ErrNotFound),
		"c/limited": fmt.Errorf("fetching c/limited: %w", githubapi.ErrRateLimited),
		"d/broken":  errors.New("connection reset"),
	}}
	c := newCollector(t, fetcher)

	batch, res := c.CollectOnce(context.Background(), repos)

	assert.Equal(t, repos, fetcher.calls)
	assert.Equal(t, collector.Result{Attempted: 5, Succeeded: 2}, res)
	require.Len(t, batch, 2)
	assert.Equal(t, "a/ok", batch[0].Repo)
	assert.Equal(t, "e/ok", batch[1].Repo)
}

func TestCollectOnceAllFailing(t *testing.T) {
	fetcher := &fakeFetcher{failing: map[string]error{
		"x/missing": githubapi.ErrNotFound,
	}}
	c := newCollector(t, fetcher)

	batch, res := c.CollectOnce(context.Background(), []string{"x/missing"})

	assert.Empty(t, batch)
	assert.Equal(t, collector.Result{Attempted: 1, Succeeded: 0}, res)
}

func TestCollectOnceCancellation(t *testing.T) {
	fetcher := &fakeFetcher{}
	c, err := collector.New(
		collector.WithFetcher(fetcher),
		collector.WithPacing(time.Hour),
		collector.WithLogger(zaptest.NewLogger(t).Sugar()),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	batch, res := c.CollectOnce(ctx, []string{"a/one", "b/two"})

	// The first fetch happens, then cancellation interrupts the
	// pacing sleep before the second attempt.
	assert.Equal(t, []string{"a/one"}, fetcher.calls)
	assert.Equal(t, collector.Result{Attempted: 1, Succeeded: 1}, res)
	assert.Len(t, batch, 1)
	assert.Less(t, time.Since(start), time.Minute)
}
