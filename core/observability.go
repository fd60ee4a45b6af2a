package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

func (v *Vault) observeOperation(
	ctx context.Context,
	startedAt time.Time,
	operation string,
	err error,
	fields map[string]any,
) {
	if v == nil {
		return
	}
	operation = normalizeOperation(operation)
	if operation == "" {
		operation = "unknown"
	}
	status := "success"
	if err != nil {
		status = "failure"
	}

	contextFields := cloneFields(fields)
	contextFields["event_type"] = operation
	contextFields["status"] = status
	contextFields["duration_ms"] = time.Since(startedAt).Milliseconds()
	if err != nil {
		contextFields["error"] = err.Error()
	}

	tags := map[string]string{
		"operation": operation,
		"status":    status,
	}
	for _, key := range []string{"token_id", "holder", "caller"} {
		if value := strings.TrimSpace(fmt.Sprint(contextFields[key])); value != "" && value != "<nil>" {
			tags[key] = value
		}
	}

	v.recordCounter(ctx, "vault."+operation+".total", 1, tags)
	v.recordHistogram(ctx, "vault."+operation+".duration_ms", float64(time.Since(startedAt).Milliseconds()), tags)

	if err != nil {
		v.logError(ctx, operation+" failed", contextFields)
		return
	}
	v.logInfo(ctx, operation+" succeeded", contextFields)
}

func (v *Vault) logInfo(ctx context.Context, message string, fields map[string]any) {
	v.logWithLevel(ctx, "info", message, fields)
}

func (v *Vault) logError(ctx context.Context, message string, fields map[string]any) {
	v.logWithLevel(ctx, "error", message, fields)
}

func (v *Vault) logWithLevel(ctx context.Context, level string, message string, fields map[string]any) {
	if v == nil || v.logger == nil {
		return
	}
	logger := v.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		logger = fieldsLogger.WithFields(cloneFields(fields))
	}
	args := flattenFields(fields)
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		logger.Error(message, args...)
	default:
		logger.Info(message, args...)
	}
}

func (v *Vault) recordCounter(ctx context.Context, name string, value int64, tags map[string]string) {
	if v == nil || v.metricsRecorder == nil {
		return
	}
	v.metricsRecorder.IncCounter(ctx, strings.TrimSpace(name), value, cloneTags(tags))
}

func (v *Vault) recordHistogram(ctx context.Context, name string, value float64, tags map[string]string) {
	if v == nil || v.metricsRecorder == nil {
		return
	}
	v.metricsRecorder.ObserveHistogram(ctx, strings.TrimSpace(name), value, cloneTags(tags))
}

func cloneFields(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return map[string]any{}
	}
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return copied
}

func flattenFields(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}
	return args
}

func normalizeOperation(operation string) string {
	operation = strings.TrimSpace(strings.ToLower(operation))
	operation = strings.ReplaceAll(operation, " ", "_")
	operation = strings.ReplaceAll(operation, "-", "_")
	return operation
}
