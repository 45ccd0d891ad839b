package diagnostic

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Reasons cargo tags its JSON messages with
const (
	ReasonCompilerMessage     = "compiler-message"
	ReasonCompilerArtifact    = "compiler-artifact"
	ReasonBuildScriptExecuted = "build-script-executed"
	ReasonBuildFinished       = "build-finished"
)

func isCargoReason(reason string) bool {
	switch reason {
	case ReasonCompilerMessage, ReasonCompilerArtifact, ReasonBuildScriptExecuted, ReasonBuildFinished:
		return true
	}
	return false
}

// message is the subset of a cargo JSON message the collector reads
type message struct {
	Reason  string           `json:"reason"`
	Message *compilerMessage `json:"message,omitempty"`
	Success *bool            `json:"success,omitempty"`
}

type compilerMessage struct {
	Code     *diagnosticCode `json:"code"`
	Level    string          `json:"level"`
	Rendered *string         `json:"rendered"`
}

type diagnosticCode struct {
	Code string `json:"code"`
}

func (m *compilerMessage) code() string {
	if m == nil || m.Code == nil {
		return ""
	}
	return m.Code.Code
}

func (m *compilerMessage) rendered() string {
	if m == nil || m.Rendered == nil {
		return ""
	}
	return *m.Rendered
}

// decodeMessage parses one line of the stream. ok is false for lines
// that are not JSON objects at all, which cargo run interleaves freely.
func decodeMessage(line []byte) (msg message, ok bool, err error) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 || line[0] != '{' {
		return message{}, false, nil
	}
	if err := json.Unmarshal(line, &msg); err != nil {
		return message{}, true, fmt.Errorf("failed to decode message: %w", err)
	}
	return msg, true, nil
}
