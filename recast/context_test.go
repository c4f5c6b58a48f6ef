package recast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContextLog(t *testing.T) {
	ctx := NewContext(true)
	assert.Equal(t, 0, ctx.LogCount())

	ctx.Progressf("step %d", 1)
	ctx.Warningf("careful")
	ctx.Errorf("boom")
	assert.Equal(t, 3, ctx.LogCount())
	assert.Contains(t, ctx.LogText(0), "step 1")
	assert.Contains(t, ctx.LogText(1), "careful")
	assert.Contains(t, ctx.LogText(2), "boom")

	ctx.ResetLog()
	assert.Equal(t, 0, ctx.LogCount())
}

func TestContextLogDisabled(t *testing.T) {
	ctx := NewContext(false)
	ctx.Progressf("should not be recorded")
	assert.Equal(t, 0, ctx.LogCount())
}

func TestContextTimer(t *testing.T) {
	ctx := NewContext(true)
	ctx.StartTimer(TimerTotal)
	time.Sleep(time.Millisecond)
	ctx.StopTimer(TimerTotal)

	assert.True(t, ctx.AccumulatedTime(TimerTotal) > 0)

	ctx.ResetTimers()
	assert.Equal(t, time.Duration(0), ctx.AccumulatedTime(TimerTotal))
}

func TestContextTimerDisabled(t *testing.T) {
	ctx := NewContext(false)
	ctx.StartTimer(TimerTotal)
	ctx.StopTimer(TimerTotal)
	assert.Equal(t, time.Duration(0), ctx.AccumulatedTime(TimerTotal))
}
