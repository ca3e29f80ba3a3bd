package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldCollaborator names the external service a log line is about (gemini, adzuna, newsapi...).
	FieldCollaborator = "collaborator"
	// FieldEndpoint is the model or API endpoint used by the collaborator.
	FieldEndpoint = "endpoint"
	// FieldDegraded marks log lines emitted when fallback data replaced a collaborator answer.
	FieldDegraded = "degraded"
	// FieldReason carries the cause of a degradation.
	FieldReason = "reason"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches the provided fields to the logger, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields returns the fields identifying a collaborator and its endpoint.
// Empty values are ignored to keep log entries compact.
func CommonFields(collaborator, endpoint string) []zap.Field {
	return StringFields(
		StringField{Key: FieldCollaborator, Value: collaborator},
		StringField{Key: FieldEndpoint, Value: endpoint},
	)
}

// WithCommonFields attaches the collaborator fields to the provided logger.
func WithCommonFields(logger *zap.Logger, collaborator, endpoint string) *zap.Logger {
	return WithFields(logger, CommonFields(collaborator, endpoint)...)
}

// DegradedFields describes a fallback substitution.
func DegradedFields(reason string) []zap.Field {
	fields := []zap.Field{zap.Bool(FieldDegraded, true)}
	return append(fields, StringFields(StringField{Key: FieldReason, Value: reason})...)
}
