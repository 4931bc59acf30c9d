package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// ValidationError represents a single invalid setting.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the accepted log levels.
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidPlayers returns the accepted sound player kinds.
func ValidPlayers() []string {
	return []string{PlayerAuto, PlayerSpeaker, PlayerBell, PlayerNone}
}

// ValidBackends returns the accepted storage backends.
func ValidBackends() []string {
	return []string{BackendYAML, BackendSQLite, BackendMemory}
}

// Validate returns every invalid setting in the Config.
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	const maxTick = time.Second
	if c.Timer.TickIntervalMs <= 0 || c.Timer.TickInterval() > maxTick {
		errors = append(errors, ValidationError{
			Field:   "timer.tick_interval_ms",
			Value:   c.Timer.TickIntervalMs,
			Message: "must be between 1 and 1000",
		})
	}
	if c.Timer.PrepareDurationMs <= 0 {
		errors = append(errors, ValidationError{
			Field:   "timer.prepare_duration_ms",
			Value:   c.Timer.PrepareDurationMs,
			Message: "must be positive",
		})
	}

	if !slices.Contains(ValidPlayers(), c.Sound.Player) {
		errors = append(errors, ValidationError{
			Field:   "sound.player",
			Value:   c.Sound.Player,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidPlayers(), ", ")),
		})
	}
	if c.Sound.BufferMs < 10 || c.Sound.BufferMs > 1000 {
		errors = append(errors, ValidationError{
			Field:   "sound.buffer_ms",
			Value:   c.Sound.BufferMs,
			Message: "must be between 10 and 1000",
		})
	}

	if !slices.Contains(ValidBackends(), c.Storage.Backend) {
		errors = append(errors, ValidationError{
			Field:   "storage.backend",
			Value:   c.Storage.Backend,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidBackends(), ", ")),
		})
	}

	level := strings.ToLower(c.Logging.Level)
	if level != "" && !slices.Contains(ValidLogLevels(), level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
