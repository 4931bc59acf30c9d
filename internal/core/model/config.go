package model

import (
	"fmt"
	"time"
)

// TimeIntervalConfig defines one interval training setup.
type TimeIntervalConfig struct {
	Work      time.Duration
	Rest      time.Duration
	Intervals int
}

// DefaultQuickStart is the interval offered before the user picks anything.
func DefaultQuickStart() TimeIntervalConfig {
	return TimeIntervalConfig{
		Work:      30 * time.Second,
		Rest:      30 * time.Second,
		Intervals: 10,
	}
}

// Validate reports whether the config can drive a timer session.
func (config TimeIntervalConfig) Validate() error {
	if config.Intervals < 1 {
		return fmt.Errorf("intervals must be at least 1, got %d", config.Intervals)
	}
	if config.Work < 0 {
		return fmt.Errorf("work duration must not be negative, got %s", config.Work)
	}
	if config.Rest < 0 {
		return fmt.Errorf("rest duration must not be negative, got %s", config.Rest)
	}
	return nil
}

// DisplayWork formats the work duration as mm:ss.
func (config TimeIntervalConfig) DisplayWork() string {
	return FormatClock(config.Work)
}

// DisplayRest formats the rest duration as mm:ss.
func (config TimeIntervalConfig) DisplayRest() string {
	return FormatClock(config.Rest)
}

// FormatClock renders a duration as zero padded minutes and seconds.
// Whole hours roll over, matching the minute display of the timer screen.
func FormatClock(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	return fmt.Sprintf("%02d:%02d", DisplayMinutes(value), DisplaySeconds(value))
}

// DisplayMillis returns the millisecond part of a countdown display.
func DisplayMillis(value time.Duration) int64 {
	return value.Milliseconds() % 1000
}

// DisplaySeconds returns the second part of a countdown display.
func DisplaySeconds(value time.Duration) int64 {
	return value.Milliseconds() / 1000 % 60
}

// DisplayMinutes returns the minute part of a countdown display.
func DisplayMinutes(value time.Duration) int64 {
	return value.Milliseconds() / (1000 * 60) % 60
}
