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

// Package arcwriter ships metric batches to the Arc ingestion endpoint
// as gzip-compressed MessagePack.
package arcwriter

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultSendTimeout = 30 * time.Second
	defaultDatabase    = "default"

	writePath = "write/v2/msgpack"
)

// Client is the client used to communicate with the Arc server.
type Client struct {
	bufferPool sync.Pool
	client     *http.Client
	serverURL  string
	apiKey     string
	database   string
	userAgent  string

	verifyCerts  bool
	rootCertsPEM string

	logger *zap.SugaredLogger
}

func NewClient(opts ...Option) (*Client, error) {
	c := Client{
		bufferPool: sync.Pool{New: func() interface{} {
			return &bytes.Buffer{}
		}},
		client: &http.Client{
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
			Timeout:   defaultSendTimeout,
		},
		database:    defaultDatabase,
		verifyCerts: true,
	}

	for _, opt := range opts {
		opt(&c)
	}

	if c.serverURL == "" {
		return nil, errors.New("Arc server URL cannot be empty")
	}

	if c.logger == nil {
		return nil, errors.New("logger cannot be empty")
	}

	// normalize server URL
	if !strings.HasSuffix(c.serverURL, "/") {
		c.serverURL = c.serverURL + "/"
	}

	if err := c.configureTLS(); err != nil {
		return nil, err
	}

	return &c, nil
}

func (c *Client) configureTLS() error {
	if c.verifyCerts && c.rootCertsPEM == "" {
		return nil
	}

	tlsConfig := &tls.Config{}
	if !c.verifyCerts {
		tlsConfig.InsecureSkipVerify = true
	}
	if c.rootCertsPEM != "" {
		pool := x509.NewCertPool()
		if ok := pool.AppendCertsFromPEM([]byte(c.rootCertsPEM)); !ok {
			return errors.New("failed to parse root certificates")
		}
		tlsConfig.RootCAs = pool
	}

	transport, ok := c.client.Transport.(*http.Transport)
	if !ok {
		return errors.New("unexpected transport type")
	}
	transport.TLSClientConfig = tlsConfig
	return nil
}
