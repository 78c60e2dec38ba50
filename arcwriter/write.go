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
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/arcmetrics/github-stats-monitor/model"

	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

// StatusError is returned when Arc responds with a non-2xx status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("arc returned unexpected status %d", e.Code)
}

// WriteBatch encodes the batch as MessagePack, compresses it and posts
// it to the Arc write endpoint. The caller is expected to skip empty
// batches; passing one is an error.
//
// A failed write is final: the batch is dropped and never retried.
func (c *Client) WriteBatch(ctx context.Context, cycleID string, batch model.Batch) error {
	if len(batch) == 0 {
		return errors.New("batch cannot be empty")
	}

	encoded, err := msgpack.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to encode batch: %w", err)
	}

	buf := c.bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		c.bufferPool.Put(buf)
	}()
	gw, err := gzip.NewWriterLevel(buf, gzip.BestSpeed)
	if err != nil {
		return err
	}
	if _, err := gw.Write(encoded); err != nil {
		return fmt.Errorf("failed to compress batch: %w", err)
	}
	if err := gw.Close(); err != nil {
		return fmt.Errorf("failed to write compressed batch to buffer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+writePath, buf)
	if err != nil {
		return fmt.Errorf("failed to create a new request when posting to Arc: %w", err)
	}
	req.Header.Set("Content-Type", "application/msgpack")
	req.Header.Set("Content-Encoding", "gzip")
	req.Header.Set("x-arc-database", c.database)
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}
	if cycleID != "" {
		req.Header.Set("x-arc-request-id", cycleID)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debugf("Sending batch of %d records to Arc (compressed: %d bytes)", len(batch), buf.Len())
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post to Arc: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Infof("Successfully wrote %d records to Arc", len(batch))
		return nil
	}

	logResponseBody(c.logger, resp)
	return &StatusError{Code: resp.StatusCode}
}

func logResponseBody(logger *zap.SugaredLogger, resp *http.Response) {
	b, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		logger.Warnf("failed to write batch to Arc: response status: %s: failed to read response body: %v", resp.Status, err)
		return
	}
	logger.Warnf("failed to write batch to Arc: response status: %s: response body: %s", resp.Status, string(b))
}
