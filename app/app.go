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
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/arcmetrics/github-stats-monitor/arcwriter"
	"github.com/arcmetrics/github-stats-monitor/collector"
	"github.com/arcmetrics/github-stats-monitor/githubapi"
	"github.com/arcmetrics/github-stats-monitor/logger"

	"go.elastic.co/ecszap"
	"go.uber.org/zap"
)

const (
	defaultArcURL   = "http://localhost:8000"
	defaultInterval = 600 * time.Second

	userAgent = "github-stats-monitor"
)

// App is the main application.
type App struct {
	logger    *zap.SugaredLogger
	collector *collector.Collector
	writer    *arcwriter.Client
	repos     []string
	interval  time.Duration
}

// New returns an App or an error if the creation failed. Configuration
// is read from the environment; options override it.
func New(ctx context.Context, opts ...ConfigOption) (*App, error) {
	c := appConfig{}

	for _, opt := range opts {
		opt(&c)
	}

	app := &App{}

	var err error

	if app.logger, err = buildLogger(c.logLevel); err != nil {
		return nil, err
	}

	app.repos = c.repos
	if len(app.repos) == 0 {
		app.repos = parseRepos(os.Getenv("GITHUB_REPOS"))
	}
	if len(app.repos) == 0 {
		return nil, errors.New("no repositories configured: set GITHUB_REPOS (example: GITHUB_REPOS=owner/repo1,owner/repo2)")
	}

	app.interval = c.interval
	if app.interval == 0 {
		if app.interval, err = parseIntervalSeconds(); err != nil {
			return nil, err
		}
	}
	if app.interval <= 0 {
		return nil, fmt.Errorf("interval must be positive, got %s", app.interval)
	}

	arcAPIKey, githubToken := loadAWSOptions(ctx, c.awsConfig, app.logger)
	if c.arcAPIKey != "" {
		arcAPIKey = c.arcAPIKey
	}
	if arcAPIKey == "" {
		return nil, errors.New("Arc API token is required: set ARC_TOKEN or ARC_SECRETS_MANAGER_TOKEN_ID")
	}

	ghOpts := []githubapi.Option{
		githubapi.WithLogger(app.logger),
	}
	if githubToken != "" {
		ghOpts = append(ghOpts, githubapi.WithToken(githubToken))
	}
	githubAPIURL := c.githubAPIURL
	if githubAPIURL == "" {
		githubAPIURL = os.Getenv("GITHUB_API_URL")
	}
	if githubAPIURL != "" {
		ghOpts = append(ghOpts, githubapi.WithAPIURL(githubAPIURL))
	}
	if fetchTimeout, ok, err := parseDurationEnv("GITHUB_FETCH_TIMEOUT"); err != nil || ok {
		if err != nil {
			return nil, err
		}
		ghOpts = append(ghOpts, githubapi.WithFetchTimeout(fetchTimeout))
	}

	fetcher, err := githubapi.NewClient(ghOpts...)
	if err != nil {
		return nil, err
	}

	colOpts := []collector.Option{
		collector.WithFetcher(fetcher),
		collector.WithLogger(app.logger),
	}
	if c.pacingSet {
		colOpts = append(colOpts, collector.WithPacing(c.pacing))
	} else if pacing, ok, err := parseDurationEnv("MONITOR_PACING"); err != nil || ok {
		if err != nil {
			return nil, err
		}
		colOpts = append(colOpts, collector.WithPacing(pacing))
	}

	if app.collector, err = collector.New(colOpts...); err != nil {
		return nil, err
	}

	arcURL := c.arcURL
	if arcURL == "" {
		arcURL = os.Getenv("ARC_URL")
	}
	if arcURL == "" {
		arcURL = defaultArcURL
	}

	arcOpts := []arcwriter.Option{
		arcwriter.WithURL(arcURL),
		arcwriter.WithAPIKey(arcAPIKey),
		arcwriter.WithUserAgent(userAgent),
		arcwriter.WithLogger(app.logger),
	}
	if database := os.Getenv("ARC_DATABASE"); database != "" {
		arcOpts = append(arcOpts, arcwriter.WithDatabase(database))
	}
	if sendTimeout, ok, err := parseDurationEnv("ARC_WRITE_TIMEOUT"); err != nil || ok {
		if err != nil {
			return nil, err
		}
		arcOpts = append(arcOpts, arcwriter.WithSendTimeout(sendTimeout))
	}

	if verifyCertsString := os.Getenv("ARC_VERIFY_SERVER_CERT"); verifyCertsString != "" {
		verifyCerts, err := strconv.ParseBool(verifyCertsString)
		if err != nil {
			return nil, err
		}
		if !verifyCerts {
			app.logger.Infof("Ignoring Certificates.")
		}
		arcOpts = append(arcOpts, arcwriter.WithVerifyCerts(verifyCerts))
	}

	if encodedCertPem := os.Getenv("ARC_SERVER_CA_CERT_PEM"); encodedCertPem != "" {
		certPem := strings.ReplaceAll(encodedCertPem, "\\n", "\n")
		app.logger.Infof("Using CA certificates from environment variable.")
		arcOpts = append(arcOpts, arcwriter.WithRootCerts(certPem))
	}

	if certFile := os.Getenv("ARC_SERVER_CA_CERT_FILE"); certFile != "" {
		cert, err := os.ReadFile(certFile)
		if err != nil {
			return nil, err
		}
		app.logger.Infof("Using CA certificate loaded from file %s", certFile)
		arcOpts = append(arcOpts, arcwriter.WithRootCerts(string(cert)))
	}

	if acmCertArn := os.Getenv("ARC_SERVER_CA_CERT_ACM_ID"); acmCertArn != "" {
		cert, err := loadAcmCertificate(ctx, acmCertArn, c.awsConfig)
		if err != nil {
			return nil, err
		}
		app.logger.Infof("Using CA certificate %s", acmCertArn)
		arcOpts = append(arcOpts, arcwriter.WithRootCerts(*cert))
	}

	if app.writer, err = arcwriter.NewClient(arcOpts...); err != nil {
		return nil, err
	}

	app.logger.Infof("Initialized monitor for %d repositories", len(app.repos))
	app.logger.Infof("Arc URL: %s, interval: %s", arcURL, app.interval)

	return app, nil
}

func parseRepos(s string) []string {
	var repos []string
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			repos = append(repos, r)
		}
	}
	return repos
}

func parseIntervalSeconds() (time.Duration, error) {
	strValue, ok := os.LookupEnv("INTERVAL_SECONDS")
	if !ok {
		return defaultInterval, nil
	}
	seconds, err := strconv.Atoi(strValue)
	if err != nil {
		return 0, fmt.Errorf("failed to parse INTERVAL_SECONDS: %w", err)
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("INTERVAL_SECONDS must be positive, got %d", seconds)
	}
	return time.Duration(seconds) * time.Second, nil
}

func parseDurationEnv(flag string) (time.Duration, bool, error) {
	strValue, ok := os.LookupEnv(flag)
	if !ok {
		return 0, false, nil
	}

	d, err := time.ParseDuration(strValue)
	if err != nil {
		return 0, false, fmt.Errorf("failed to parse %s: %w", flag, err)
	}

	return d, true, nil
}

func buildLogger(level string) (*zap.SugaredLogger, error) {
	if level == "" {
		level = "info"
	}

	l, err := logger.ParseLogLevel(level)
	if err != nil {
		return nil, err
	}

	return logger.New(
		logger.WithEncoderConfig(ecszap.NewDefaultEncoderConfig().ToZapCoreEncoderConfig()),
		logger.WithLevel(l),
	)
}
