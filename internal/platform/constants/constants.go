// Copyright (c) 2026 Carlex. All rights reserved.
// Author: minh.dao.autos@gmail.com

// Package constants centralizes timeouts and limits shared across the
// batch tooling so individual jobs don't drift apart.
package constants

import "time"

const (
	// GlobalStatementTimeout bounds any single SQL statement. Batch jobs
	// issue bounded queries, so anything slower indicates a missing index
	// or a runaway merge.
	GlobalStatementTimeout = 30 * time.Second

	// StartupTimeout bounds initial connections so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	StartupTimeout = 30 * time.Second

	// MinBatchSize and MaxBatchSize bound the per-round-trip row count.
	MinBatchSize = 50
	MaxBatchSize = 500

	// CheckpointKeyPrefix namespaces job checkpoints in Redis.
	CheckpointKeyPrefix = "job:checkpoint:"
)

// Job names used for checkpoint keys and log scoping.
const (
	JobResolve = "resolve"
	JobDedup   = "dedup"
	JobCleanup = "cleanup"
)
