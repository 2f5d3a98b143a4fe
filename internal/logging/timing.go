package logging

import (
	"time"
)

// TimingContext is a started measurement, finished by End or EndWithCount.
type TimingContext struct {
	name      string
	startTime time.Time
}

// Start begins timing an operation.
//
// Example:
//
//	ctx := logging.Start("list pods")
//	pods, err := client.CoreV1().Pods("").List(ctx, opts)
//	logging.EndWithCount(ctx, len(pods.Items))
func Start(name string) TimingContext {
	return TimingContext{name: name, startTime: time.Now()}
}

// End logs the duration of a measurement at debug level.
func End(ctx TimingContext) {
	if !IsEnabled() {
		return
	}
	d := time.Since(ctx.startTime)
	Debug(ctx.name, "duration", d.String(), "ms", d.Milliseconds())
}

// EndWithCount logs the duration of a measurement with an item count.
func EndWithCount(ctx TimingContext, count int) {
	if !IsEnabled() {
		return
	}
	d := time.Since(ctx.startTime)
	Debug(ctx.name, "duration", d.String(), "ms", d.Milliseconds(), "count", count)
}

// Elapsed returns the time since Start.
func (c TimingContext) Elapsed() time.Duration {
	return time.Since(c.startTime)
}
