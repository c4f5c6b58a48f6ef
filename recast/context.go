package recast

import (
	"fmt"
	"time"
)

// LogCategory classifies a message logged through a Context.
type LogCategory int

const (
	LogProgress LogCategory = 1 + iota // A progress log entry.
	LogWarning                         // A warning log entry.
	LogError                           // An error log entry.
)

// TimerLabel identifies one of the performance counters tracked by a
// Context during a build.
type TimerLabel int32

const (
	TimerTotal TimerLabel = iota
	TimerTemp
	TimerRasterizeTriangles
	TimerBuildCompactHeightfield
	TimerBuildContours
	TimerBuildContoursTrace
	TimerBuildContoursSimplify
	TimerFilterBorder
	TimerFilterWalkable
	TimerMedianArea
	TimerFilterLowObstacles
	TimerBuildPolymesh
	TimerMergePolymesh
	TimerErodeArea
	TimerBuildDistanceField
	TimerBuildDistanceFieldDist
	TimerBuildDistanceFieldBlur
	TimerBuildRegions
	TimerBuildRegionsWatershed
	TimerBuildRegionsExpand
	TimerBuildRegionsFlood
	TimerBuildRegionsFilter
	TimerBuildLayers
	TimerBuildPolyMeshDetail
	TimerMergePolyMeshDetail
	maxTimers
)

const maxMessages = 1000

// Context carries the ambient logging and timing facilities threaded
// through every stage of the pipeline. It has no effect on the geometry
// produced; it exists purely to give callers visibility into where time is
// spent and what a stage complained about.
//
// A Context is not safe for concurrent use: the pipeline is single
// threaded, and so is its bookkeeping.
type Context struct {
	logEnabled   bool
	timerEnabled bool

	startTime [maxTimers]time.Time
	accTime   [maxTimers]time.Duration

	messages    [maxMessages]string
	numMessages int
}

// NewContext returns a Context with logging and timers enabled according to
// state.
func NewContext(state bool) *Context {
	return &Context{logEnabled: state, timerEnabled: state}
}

// EnableLog enables or disables logging.
func (ctx *Context) EnableLog(state bool) { ctx.logEnabled = state }

// EnableTimer enables or disables the performance timers.
func (ctx *Context) EnableTimer(state bool) { ctx.timerEnabled = state }

// ResetLog clears all log entries.
func (ctx *Context) ResetLog() {
	if ctx.logEnabled {
		ctx.numMessages = 0
	}
}

// ResetTimers clears all performance timers.
func (ctx *Context) ResetTimers() {
	if ctx.timerEnabled {
		for i := range ctx.accTime {
			ctx.accTime[i] = 0
		}
	}
}

// Log appends a formatted message under category to the log, if logging is
// enabled.
func (ctx *Context) Log(category LogCategory, format string, v ...interface{}) {
	if !ctx.logEnabled || ctx.numMessages >= maxMessages {
		return
	}
	var prefix string
	switch category {
	case LogProgress:
		prefix = "PROG "
	case LogWarning:
		prefix = "WARN "
	case LogError:
		prefix = "ERR "
	}
	ctx.messages[ctx.numMessages] = prefix + fmt.Sprintf(format, v...)
	ctx.numMessages++
}

// Progressf logs a progress message.
func (ctx *Context) Progressf(format string, v ...interface{}) { ctx.Log(LogProgress, format, v...) }

// Warningf logs a warning message.
func (ctx *Context) Warningf(format string, v ...interface{}) { ctx.Log(LogWarning, format, v...) }

// Errorf logs an error message.
func (ctx *Context) Errorf(format string, v ...interface{}) { ctx.Log(LogError, format, v...) }

// DumpLog prints header followed by every logged message, to stdout.
func (ctx *Context) DumpLog(header string, args ...interface{}) {
	fmt.Printf(header+"\n", args...)
	for i := 0; i < ctx.numMessages; i++ {
		fmt.Println(ctx.messages[i])
	}
}

// LogCount returns the number of messages currently in the log.
func (ctx *Context) LogCount() int { return ctx.numMessages }

// LogText returns the i'th logged message.
func (ctx *Context) LogText(i int32) string { return ctx.messages[i] }

// StartTimer starts the timer identified by label.
func (ctx *Context) StartTimer(label TimerLabel) {
	if ctx.timerEnabled {
		ctx.startTime[label] = time.Now()
	}
}

// StopTimer stops the timer identified by label and accumulates the
// elapsed time since the matching StartTimer call.
func (ctx *Context) StopTimer(label TimerLabel) {
	if !ctx.timerEnabled {
		return
	}
	ctx.accTime[label] += time.Since(ctx.startTime[label])
}

// AccumulatedTime returns the total time spent in the timer identified by
// label, or zero if timers are disabled.
func (ctx *Context) AccumulatedTime(label TimerLabel) time.Duration {
	if !ctx.timerEnabled {
		return 0
	}
	return ctx.accTime[label]
}
