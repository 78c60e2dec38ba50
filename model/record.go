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

// Package model defines the metric record shape shared between the
// collector and the Arc writer.
package model

// Measurement identifies the record type on the wire.
const Measurement = "github_repo_stats"

// Sentinel values used when the upstream API omits a tag.
const (
	UnknownOwner  = "unknown"
	NoLanguage    = "none"
	DefaultBranch = "main"
)

// Record is one flat metric record for a single repository. Arc expects
// a map per record: "m" for the measurement, "t" for the timestamp, and
// the tags and fields as top-level keys. Tags are strings, fields are
// integers (booleans encoded as 0/1).
type Record struct {
	Measurement string `msgpack:"m"`
	Timestamp   string `msgpack:"t"`

	// Tags (dimensions).
	Repo          string `msgpack:"repo"`
	Owner         string `msgpack:"owner"`
	Language      string `msgpack:"language"`
	DefaultBranch string `msgpack:"default_branch"`

	// Fields (metrics).
	Stars        int64 `msgpack:"stars"`
	Watchers     int64 `msgpack:"watchers"`
	Forks        int64 `msgpack:"forks"`
	OpenIssues   int64 `msgpack:"open_issues"`
	OpenPRs      int64 `msgpack:"open_prs"`
	TotalIssues  int64 `msgpack:"total_issues"`
	Subscribers  int64 `msgpack:"subscribers"`
	SizeKB       int64 `msgpack:"size_kb"`
	NetworkCount int64 `msgpack:"network_count"`
	IsFork       int64 `msgpack:"is_fork"`
	IsArchived   int64 `msgpack:"is_archived"`
	HasIssues    int64 `msgpack:"has_issues"`
	HasWiki      int64 `msgpack:"has_wiki"`
	HasPages     int64 `msgpack:"has_pages"`
}

// Batch is the ordered set of records collected within one cycle.
type Batch []Record
