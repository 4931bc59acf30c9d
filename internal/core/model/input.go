package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	maxIntervals = 1000
	maxMinutes   = 99
	maxSeconds   = 59
)

// IntervalInput holds the raw text of the interval form fields.
type IntervalInput struct {
	Intervals   string
	WorkMinutes string
	WorkSeconds string
	RestMinutes string
	RestSeconds string
}

// InputFromConfig fills the form fields from an existing config.
func InputFromConfig(config TimeIntervalConfig) IntervalInput {
	workSeconds := int64(config.Work / time.Second)
	restSeconds := int64(config.Rest / time.Second)
	return IntervalInput{
		Intervals:   strconv.Itoa(config.Intervals),
		WorkMinutes: strconv.FormatInt(workSeconds/60, 10),
		WorkSeconds: strconv.FormatInt(workSeconds%60, 10),
		RestMinutes: strconv.FormatInt(restSeconds/60, 10),
		RestSeconds: strconv.FormatInt(restSeconds%60, 10),
	}.Normalize()
}

// Normalize clamps every field into its allowed range.
// A duration with zero minutes keeps at least one second.
func (input IntervalInput) Normalize() IntervalInput {
	workMinutes := clampField(input.WorkMinutes, 0, maxMinutes, 2)
	restMinutes := clampField(input.RestMinutes, 0, maxMinutes, 2)
	return IntervalInput{
		Intervals:   clampField(input.Intervals, 1, maxIntervals, 1),
		WorkMinutes: workMinutes,
		WorkSeconds: clampField(input.WorkSeconds, minSeconds(workMinutes), maxSeconds, 2),
		RestMinutes: restMinutes,
		RestSeconds: clampField(input.RestSeconds, minSeconds(restMinutes), maxSeconds, 2),
	}
}

// Config converts the fields into a TimeIntervalConfig.
// Call Normalize first; unparsable fields are an error here.
func (input IntervalInput) Config() (TimeIntervalConfig, error) {
	intervals, err := parseField(input.Intervals)
	if err != nil {
		return TimeIntervalConfig{}, fmt.Errorf("parse intervals: %w", err)
	}
	work, err := fieldsDuration(input.WorkMinutes, input.WorkSeconds)
	if err != nil {
		return TimeIntervalConfig{}, fmt.Errorf("parse work time: %w", err)
	}
	rest, err := fieldsDuration(input.RestMinutes, input.RestSeconds)
	if err != nil {
		return TimeIntervalConfig{}, fmt.Errorf("parse rest time: %w", err)
	}
	return TimeIntervalConfig{Work: work, Rest: rest, Intervals: intervals}, nil
}

// ParseClock splits "mm:ss" (or plain seconds) into form fields.
func ParseClock(value string) (minutes string, seconds string) {
	value = strings.TrimSpace(value)
	if before, after, found := strings.Cut(value, ":"); found {
		return before, after
	}
	return "0", value
}

func fieldsDuration(minutes, seconds string) (time.Duration, error) {
	parsedMinutes, err := parseField(minutes)
	if err != nil {
		return 0, err
	}
	parsedSeconds, err := parseField(seconds)
	if err != nil {
		return 0, err
	}
	return time.Duration(parsedMinutes*60+parsedSeconds) * time.Second, nil
}

func minSeconds(minutes string) int {
	if value, err := parseField(minutes); err == nil && value == 0 {
		return 1
	}
	return 0
}

func clampField(value string, minValue, maxValue, digits int) string {
	parsed, err := parseField(value)
	if err != nil {
		parsed = minValue
	}
	if parsed < minValue {
		parsed = minValue
	}
	if parsed > maxValue {
		parsed = maxValue
	}
	return fmt.Sprintf("%0*d", digits, parsed)
}

func parseField(value string) (int, error) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, value)
	return strconv.Atoi(cleaned)
}
