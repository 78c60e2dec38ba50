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

package arcwriter

import (
	"time"

	"go.uber.org/zap"
)

type Option func(*Client)

// WithURL sets the Arc server base URL.
func WithURL(url string) Option {
	return func(c *Client) {
		c.serverURL = url
	}
}

// WithAPIKey sets the key sent in the x-api-key header.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithDatabase sets the Arc database batches are written to.
func WithDatabase(database string) Option {
	return func(c *Client) {
		c.database = database
	}
}

// WithSendTimeout bounds a single write request.
func WithSendTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header on write requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithVerifyCerts controls verification of the Arc server certificate.
func WithVerifyCerts(verify bool) Option {
	return func(c *Client) {
		c.verifyCerts = verify
	}
}

// WithRootCerts sets PEM-encoded root certificates used to verify the
// Arc server certificate instead of the host pool.
func WithRootCerts(pem string) Option {
	return func(c *Client) {
		c.rootCertsPEM = pem
	}
}

// WithLogger configures a custom zap logger to be used by
// the client.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}
