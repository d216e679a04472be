package service

import (
	"encoding/json"
	"log"
	"time"
)

// logEvent writes one JSON line to the standard logger. Used for events
// that must not be silent but also must not fail the request, such as
// compensation failures.
func logEvent(fields map[string]any) {
	fields["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	if _, ok := fields["level"]; !ok {
		fields["level"] = "info"
	}
	b, err := json.Marshal(fields)
	if err != nil {
		log.Printf("failed to marshal event log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}

// logStorageFailure records a best-effort blob operation that failed.
// These are deliberate non-fatal paths; the log line is the only trace.
func logStorageFailure(event, key string, err error) {
	logEvent(map[string]any{
		"level":       "error",
		"event":       event,
		"storage_key": key,
		"error":       err.Error(),
	})
}
