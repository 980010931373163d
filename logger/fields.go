package logger

// Standard field key constants for structured logging.
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldPulled    = "pulled"
	FieldStopped   = "stopped"
	FieldTerminal  = "terminal"
	FieldStages    = "stages"
)

// Fields builds a map[string]any from alternating key-value pairs.
// Non-string keys and a trailing unpaired key are skipped.
//
//	logger.Info("done", logger.Fields("terminal", "copy", "stages", 2))
func Fields(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for an operation that failed.
func ErrorFields(op string, err error) map[string]any {
	return map[string]any{
		FieldOperation: op,
		FieldError:     err.Error(),
	}
}
