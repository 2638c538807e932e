// Package script persists recorded requests as executable bash scripts of
// curl invocations. In group mode each recorded request appends one command
// block to the script, otherwise the script is rewritten with a single block
// on every call.
package script

import (
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/reqsink/reqsink/pkg/snapshot"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const timeLayout = "2006-01-02 15:04:05"

// Headers that curl computes on its own.
// The snapshot already drops host and content-length.
var skipHeaders = map[string]bool{
	"connection":      true,
	"accept-encoding": true,
}

// Header returns the shell script preamble for the named script.
func Header(name string, now time.Time) string {
	var b strings.Builder
	b.WriteString("#!/bin/bash\n")
	b.WriteString(fmt.Sprintf("# Auto-generated curl commands for %s\n", name))
	b.WriteString(fmt.Sprintf("# Generated: %s\n", now.Format(timeLayout)))
	b.WriteString("#\n")
	b.WriteString(fmt.Sprintf("# Usage: bash %s.sh\n", name))
	b.WriteString("#\n\n")
	return b.String()
}

// Command formats one curl invocation for the snapshot, preceded by a
// comment line with method, path and timestamp. Commands with more than
// three parts are split across lines with trailing continuation markers.
func Command(snap *snapshot.Snapshot, now time.Time) string {
	lines := []string{
		fmt.Sprintf("# %s %s - %s", snap.Method, snap.Path, now.Format(timeLayout)),
	}

	parts := []string{"curl"}

	if snap.Method != "GET" {
		parts = append(parts, fmt.Sprintf("-X %s", snap.Method))
	}

	parts = append(parts, fmt.Sprintf(`"%s"`, snap.URL))

	for _, kv := range snap.Headers {
		if skipHeaders[kv.Key] {
			continue
		}
		parts = append(parts, fmt.Sprintf(`-H "%s: %s"`, kv.Key, escapeDouble(kv.Value)))
	}

	if snap.HasBody() {
		parts = append(parts, fmt.Sprintf("-d '%s'", escapeSingle(bodyData(snap))))
	}

	if len(parts) <= 3 {
		lines = append(lines, strings.Join(parts, " "))
	} else {
		lines = append(lines, parts[0]+" \\")
		for _, part := range parts[1 : len(parts)-1] {
			lines = append(lines, fmt.Sprintf("  %s \\", part))
		}
		lines = append(lines, fmt.Sprintf("  %s", parts[len(parts)-1]))
	}

	return strings.Join(lines, "\n")
}

// bodyData returns the payload for the -d flag.
// JSON bodies are re-serialized compactly, unlike in collections.
func bodyData(snap *snapshot.Snapshot) string {
	if !snap.JSON {
		return string(snap.Body)
	}

	var parsed any
	if err := json.Unmarshal(snap.Body, &parsed); err != nil {
		return string(snap.Body)
	}
	compact, err := json.Marshal(parsed)
	if err != nil {
		return string(snap.Body)
	}
	return string(compact)
}

// escapeDouble escapes a value for inclusion in double quotes.
func escapeDouble(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `"`, `\"`)
}

// escapeSingle escapes a value for inclusion in single quotes,
// closing and reopening the quote around each embedded one.
func escapeSingle(value string) string {
	return strings.ReplaceAll(value, `'`, `'\''`)
}
