// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/json"
)

var traceEnabled bool

// InitLogger sets up Apex with a handler and a log level from the MPCTL_LOG
// env variable. defaultLevel is used when MPCTL_LOG is unset. Setting
// MPCTL_LOG_FORMAT=json selects the JSON handler, which suits CloudWatch.
func InitLogger(defaultLevel ...string) {
	envLevel := strings.ToLower(os.Getenv("MPCTL_LOG"))
	if envLevel == "" && len(defaultLevel) == 1 {
		envLevel = defaultLevel[0]
	}
	if envLevel == "" {
		envLevel = "error"
	}
	traceEnabled = envLevel == "trace"

	log.SetLevel(parseLevel(envLevel))

	if strings.ToLower(os.Getenv("MPCTL_LOG_FORMAT")) == "json" {
		log.SetHandler(json.New(os.Stdout))
		return
	}
	log.SetHandler(&CustomHandler{})
}

// parseLevel maps an MPCTL_LOG value to an Apex level. Unknown values fall
// back to error.
func parseLevel(level string) log.Level {
	switch level {
	case "trace", "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.ErrorLevel
	}
}

// CustomHandler formats log messages as "<timestamp> <L> <message>" and writes
// them to Writer, or stdout when Writer is nil.
type CustomHandler struct {
	Writer io.Writer
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	w := h.Writer
	if w == nil {
		w = os.Stdout
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := e.Message
	level := "?"
	if strings.HasPrefix(message, "TRACE: ") {
		level = "T"
		message = message[7:]
	} else {
		switch e.Level {
		case log.DebugLevel:
			level = "D"
		case log.InfoLevel:
			level = "I"
		case log.WarnLevel:
			level = "W"
		case log.ErrorLevel:
			level = "E"
		case log.FatalLevel:
			level = "F"
		}
	}

	if err, ok := e.Fields["error"]; ok {
		message = fmt.Sprintf("%s: %v", message, err)
	}

	fmt.Fprintf(w, "%s %s %s\n", timestamp, level, message)
	return nil
}

// Tracef logs at Trace level (below Debug).
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug("TRACE: " + fmt.Sprintf(format, args...))
	}
}

// Debugf logs at Debug level.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Infof logs at Info level.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Warnf logs at Warn level.
func Warnf(format string, args ...interface{}) {
	log.Warn(fmt.Sprintf(format, args...))
}

// Errorf logs at Error level.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// WithError returns an entry with error.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}
