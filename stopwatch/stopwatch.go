/*
Package stopwatch is used to time things.
Create a stopwatch with Start,
then on success record the timing with Finish.

Start logs "<operation>_started" at debug level,
and Finish logs "<operation>_finished" at info level with an "elapsed" field
holding seconds as a float.
*/
package stopwatch

import (
	"context"
	"log/slog"
	"time"
)

type Stopwatch struct {
	ctx       context.Context
	start     time.Time
	operation string
	logger    *slog.Logger
}

func Start(ctx context.Context, logger *slog.Logger, operation string) *Stopwatch {
	sw := &Stopwatch{
		ctx:       ctx,
		start:     time.Now(),
		operation: operation,
		logger:    logger,
	}

	sw.logger.DebugContext(ctx, operation+"_started")
	return sw
}

type FinishOpts struct {
	Logger *slog.Logger
	// Fields are added to the finish record, like a count of what was processed.
	Fields []any
}

func (sw *Stopwatch) FinishWith(opts FinishOpts) {
	logger := sw.logger
	if opts.Logger != nil {
		logger = opts.Logger
	}
	args := append([]any{"elapsed", time.Since(sw.start).Seconds()}, opts.Fields...)
	logger.InfoContext(sw.ctx, sw.operation+"_finished", args...)
}

func (sw *Stopwatch) Finish() {
	sw.FinishWith(FinishOpts{})
}
