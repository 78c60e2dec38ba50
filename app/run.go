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
	"time"

	"github.com/google/uuid"
)

// Run runs the monitoring loop until the context is cancelled. Each
// cycle is isolated: collection or transmission failures are logged
// and the loop waits the full interval after the cycle finishes, so a
// slow cycle never eats into the idle time between cycles.
func (app *App) Run(ctx context.Context) error {
	app.logger.Infof("Starting continuous monitoring (interval: %s)", app.interval)

	for {
		app.runCycle(ctx)

		app.logger.Debugf("Sleeping for %s until the next cycle", app.interval)
		timer := time.NewTimer(app.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			app.logger.Info("Received a signal, exiting...")
			return nil
		case <-timer.C:
		}
	}
}

// runCycle performs one collection pass and ships the resulting batch.
// It never returns an error: every failure is local to the cycle.
func (app *App) runCycle(ctx context.Context) {
	cycleID := uuid.New().String()
	log := app.logger.With("cycle.id", cycleID)

	log.Infof("Starting collection cycle for %d repositories", len(app.repos))

	batch, res := app.collector.CollectOnce(ctx, app.repos)
	if ctx.Err() != nil {
		log.Debug("Cycle interrupted by shutdown, dropping collected data")
		return
	}

	if len(batch) == 0 {
		log.Warnf("No data collected in this cycle (%d/%d successful)", res.Succeeded, res.Attempted)
		return
	}

	if err := app.writer.WriteBatch(ctx, cycleID, batch); err != nil {
		log.Errorf("Failed to write batch to Arc, dropping %d records: %v", len(batch), err)
		return
	}

	log.Infof("Collection cycle complete: %d/%d successful", res.Succeeded, res.Attempted)
}
