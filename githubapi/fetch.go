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

package githubapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/arcmetrics/github-stats-monitor/model"

	"github.com/tidwall/gjson"
)

// FetchRepoStats fetches the statistics for a single repository given
// as "owner/name" and returns them as a flat metric record.
//
// The open issues listing is fetched with a secondary request to split
// the combined count GitHub reports into issues and pull requests. A
// failure of the secondary request is tolerated: both derived counts
// default to zero and the fetch still succeeds.
func (c *Client) FetchRepoStats(ctx context.Context, repo string) (model.Record, error) {
	body, err := c.get(ctx, c.apiURL+"/repos/"+repo)
	if err != nil {
		return model.Record{}, fmt.Errorf("fetching %s: %w", repo, err)
	}

	openIssues, openPRs := c.countOpenItems(ctx, repo)

	rec := model.Record{
		Measurement: model.Measurement,
		Timestamp:   time.Now().UTC().Format(time.RFC3339Nano),

		Repo:          repo,
		Owner:         strTag(body, "owner.login", model.UnknownOwner),
		Language:      strTag(body, "language", model.NoLanguage),
		DefaultBranch: strTag(body, "default_branch", model.DefaultBranch),

		Stars:        body.Get("stargazers_count").Int(),
		Watchers:     body.Get("watchers_count").Int(),
		Forks:        body.Get("forks_count").Int(),
		OpenIssues:   openIssues,
		OpenPRs:      openPRs,
		TotalIssues:  body.Get("open_issues_count").Int(),
		Subscribers:  body.Get("subscribers_count").Int(),
		SizeKB:       body.Get("size").Int(),
		NetworkCount: body.Get("network_count").Int(),
		IsFork:       boolField(body, "fork"),
		IsArchived:   boolField(body, "archived"),
		HasIssues:    boolField(body, "has_issues"),
		HasWiki:      boolField(body, "has_wiki"),
		HasPages:     boolField(body, "has_pages"),
	}

	c.logger.Infof("Fetched stats for %s: %d stars, %d forks, %d issues, %d PRs",
		repo, rec.Stars, rec.Forks, rec.OpenIssues, rec.OpenPRs)

	return rec, nil
}

// countOpenItems lists the open items of the repository and splits them
// into issues and pull requests. GitHub conflates the two in the issues
// listing; an item is a pull request iff it carries a pull_request key.
func (c *Client) countOpenItems(ctx context.Context, repo string) (int64, int64) {
	body, err := c.get(ctx, c.apiURL+"/repos/"+repo+"/issues?state=open&per_page=100")
	if err != nil {
		c.logger.Warnf("Could not list open items for %s, reporting zero counts: %v", repo, err)
		return 0, 0
	}

	var openIssues, openPRs int64
	for _, item := range body.Array() {
		if item.Get("pull_request").Exists() {
			openPRs++
		} else {
			openIssues++
		}
	}
	return openIssues, openPRs
}

func (c *Client) get(ctx context.Context, url string) (gjson.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return gjson.Result{}, ErrNotFound
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		return gjson.Result{}, ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		return gjson.Result{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to read response body: %w", err)
	}

	return gjson.ParseBytes(b), nil
}

// strTag extracts a string tag value, falling back to a sentinel when
// the key is absent or null upstream.
func strTag(body gjson.Result, path, fallback string) string {
	if res := body.Get(path); res.Type == gjson.String && res.Str != "" {
		return res.Str
	}
	return fallback
}

// boolField encodes an upstream boolean as a 0/1 field value.
func boolField(body gjson.Result, path string) int64 {
	if body.Get(path).Bool() {
		return 1
	}
	return 0
}
