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

package collector

import (
	"time"

	"go.uber.org/zap"
)

type Option func(*Collector)

// WithFetcher sets the per-repository fetcher.
func WithFetcher(f Fetcher) Option {
	return func(c *Collector) {
		c.fetcher = f
	}
}

// WithPacing sets the delay between consecutive fetch attempts.
func WithPacing(d time.Duration) Option {
	return func(c *Collector) {
		c.pacing = d
	}
}

// WithLogger configures a custom zap logger to be used by
// the collector.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Collector) {
		c.logger = logger
	}
}
