package ingester

import "time"

const (
	defaultWorkerCount = 8
	defaultHeightLimit = 500

	inputScriptsFlushThreshold = 10_000

	backoffSleepDuration      = 10 * time.Second
	maxBackoffSleepDuration   = 5 * time.Minute
	idleSleepDuration         = 5 * time.Second
	postBatchSleepDuration    = time.Second
	blockBatcherCapacity      = 500
	blockBatcherFlushInterval = 10 * time.Second
	blockBatcherFlushRPS      = 20
)
