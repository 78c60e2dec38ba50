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

package app

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
)

type appConfig struct {
	logLevel     string
	awsConfig    aws.Config
	repos        []string
	arcURL       string
	arcAPIKey    string
	githubAPIURL string
	interval     time.Duration
	pacing       time.Duration
	pacingSet    bool
}

// ConfigOption is used to configure the monitor. Options take
// precedence over the corresponding environment variables.
type ConfigOption func(*appConfig)

// WithLogLevel sets the log level.
func WithLogLevel(level string) ConfigOption {
	return func(c *appConfig) {
		c.logLevel = level
	}
}

// WithAWSConfig sets the AWS config used for the optional Secrets
// Manager and ACM lookups.
func WithAWSConfig(awsConfig aws.Config) ConfigOption {
	return func(c *appConfig) {
		c.awsConfig = awsConfig
	}
}

// WithRepos sets the repositories to monitor, each as "owner/name".
func WithRepos(repos ...string) ConfigOption {
	return func(c *appConfig) {
		c.repos = repos
	}
}

// WithArcURL sets the Arc server base URL.
func WithArcURL(url string) ConfigOption {
	return func(c *appConfig) {
		c.arcURL = url
	}
}

// WithArcAPIKey sets the Arc API key.
func WithArcAPIKey(key string) ConfigOption {
	return func(c *appConfig) {
		c.arcAPIKey = key
	}
}

// WithGitHubAPIURL sets the GitHub API base URL.
func WithGitHubAPIURL(url string) ConfigOption {
	return func(c *appConfig) {
		c.githubAPIURL = url
	}
}

// WithInterval sets the time between collection cycles.
func WithInterval(interval time.Duration) ConfigOption {
	return func(c *appConfig) {
		c.interval = interval
	}
}

// WithPacing sets the delay between consecutive repository fetches
// within a cycle.
func WithPacing(pacing time.Duration) ConfigOption {
	return func(c *appConfig) {
		c.pacing = pacing
		c.pacingSet = true
	}
}
