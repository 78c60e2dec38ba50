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

// Package githubapi fetches repository statistics from the GitHub
// REST API and normalizes them into flat metric records.
package githubapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultAPIURL       = "https://api.github.com"
	defaultFetchTimeout = 10 * time.Second

	acceptHeader = "application/vnd.github.v3+json"
)

var (
	// ErrNotFound is returned when the repository does not exist or
	// is not visible with the configured credentials.
	ErrNotFound = errors.New("repository not found")
	// ErrRateLimited is returned when GitHub rejects the request due
	// to rate limiting or missing permissions.
	ErrRateLimited = errors.New("rate limit exceeded or access denied")
)

// Client is the client used to communicate with the GitHub API.
type Client struct {
	client *http.Client
	apiURL string
	token  string
	logger *zap.SugaredLogger
}

func NewClient(opts ...Option) (*Client, error) {
	c := Client{
		client: &http.Client{
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
			Timeout:   defaultFetchTimeout,
		},
		apiURL: defaultAPIURL,
	}

	for _, opt := range opts {
		opt(&c)
	}

	if c.logger == nil {
		return nil, errors.New("logger cannot be empty")
	}

	c.apiURL = strings.TrimSuffix(c.apiURL, "/")

	return &c, nil
}
