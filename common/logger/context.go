package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within a context.
// Handlers and services enrich the context once; every slog call below picks them up.
type LogFields struct {
	UserID        *int64  // Authenticated caller
	CompanyID     *int64  // Company acting or being acted upon
	ApplicationID *int64  // Application conversation
	TicketID      *int64  // Support ticket
	MessageID     *string // Redis stream message ID (worker)
	Component     string  // Component name, e.g. "joywork.service.ticket"
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, new LogFields) LogFields {
	result := existing

	if new.UserID != nil {
		result.UserID = new.UserID
	}
	if new.CompanyID != nil {
		result.CompanyID = new.CompanyID
	}
	if new.ApplicationID != nil {
		result.ApplicationID = new.ApplicationID
	}
	if new.TicketID != nil {
		result.TicketID = new.TicketID
	}
	if new.MessageID != nil {
		result.MessageID = new.MessageID
	}
	if new.Component != "" {
		result.Component = new.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{TicketID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}

// Truncate truncates a string to maxLen bytes, appending "..." if truncated.
// Message bodies are truncated before they reach a log line.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
