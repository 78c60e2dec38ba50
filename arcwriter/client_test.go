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

package arcwriter_test

import (
	"testing"

	"github.com/arcmetrics/github-stats-monitor/arcwriter"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestClient(t *testing.T) {
	testCases := map[string]struct {
		opts        []arcwriter.Option
		expectedErr bool
	}{
		"empty": {
			expectedErr: true,
		},
		"missing base url": {
			opts: []arcwriter.Option{
				arcwriter.WithLogger(zaptest.NewLogger(t).Sugar()),
			},
			expectedErr: true,
		},
		"missing logger": {
			opts: []arcwriter.Option{
				arcwriter.WithURL("https://example.com"),
			},
			expectedErr: true,
		},
		"invalid root certs": {
			opts: []arcwriter.Option{
				arcwriter.WithURL("https://example.com"),
				arcwriter.WithLogger(zaptest.NewLogger(t).Sugar()),
				arcwriter.WithRootCerts("not a pem block"),
			},
			expectedErr: true,
		},
		"valid": {
			opts: []arcwriter.Option{
				arcwriter.WithURL("https://example.com"),
				arcwriter.WithLogger(zaptest.NewLogger(t).Sugar()),
			},
		},
		"valid without verification": {
			opts: []arcwriter.Option{
				arcwriter.WithURL("https://example.com"),
				arcwriter.WithLogger(zaptest.NewLogger(t).Sugar()),
				arcwriter.WithVerifyCerts(false),
			},
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := arcwriter.NewClient(tc.opts...)
			if tc.expectedErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
