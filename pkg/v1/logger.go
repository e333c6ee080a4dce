package v1

import (
	"fmt"
	"log"
	"sync"

	"github.com/fatih/color"
)

// LogType defines the category of the log.
type LogType string

const (
	LogTypeStage      LogType = "Stage"
	LogTypeDB         LogType = "DB"
	LogTypeRedis      LogType = "Redis"
	LogTypeRequest    LogType = "Request"
	LogTypeMock       LogType = "Mock"
	LogTypeApp        LogType = "App"
	LogTypeUI         LogType = "UI"
	LogTypeScreenshot LogType = "Screenshot"
	LogTypeFile       LogType = "File"
	LogTypeLedger     LogType = "Ledger"
	LogTypeBaseline   LogType = "Baseline"
	LogTypeExpect     LogType = "Expect"
	LogTypeError      LogType = "Error"
	LogTypeInfo       LogType = "Info"
)

// LogEntry represents a single log event.
type LogEntry struct {
	Type    LogType
	Summary string
	Detail  string
}

// LogHandler is a function that handles log entries (e.g., UI updater).
type LogHandler func(entry LogEntry)

var (
	logHandlers []LogHandler
	logMu       sync.Mutex
)

var tagColors = map[LogType]func(format string, a ...interface{}) string{
	LogTypeStage:      color.CyanString,
	LogTypeExpect:     color.GreenString,
	LogTypeError:      color.RedString,
	LogTypeUI:         color.MagentaString,
	LogTypeScreenshot: color.BlueString,
	LogTypeApp:        color.YellowString,
}

func tag(t LogType) string {
	if paint, ok := tagColors[t]; ok {
		return paint("[%s]", t)
	}
	return fmt.Sprintf("[%s]", t)
}

// RegisterLogHandler adds a handler for log events.
func RegisterLogHandler(h LogHandler) {
	logMu.Lock()
	defer logMu.Unlock()
	logHandlers = append(logHandlers, h)
}

// Log records a log entry and notifies handlers.
func Log(t LogType, summary string, detail string) {
	if detail != "" {
		log.Printf("%s %s - %s", tag(t), summary, detail)
	} else {
		log.Printf("%s %s", tag(t), summary)
	}

	entry := LogEntry{
		Type:    t,
		Summary: summary,
		Detail:  detail,
	}

	logMu.Lock()
	defer logMu.Unlock()
	for _, h := range logHandlers {
		// Handlers should handle their own concurrency (e.g. fyne.Do)
		h(entry)
	}
}

// Logf is a helper to log formatted simple info.
func Logf(t LogType, format string, v ...interface{}) {
	Log(t, fmt.Sprintf(format, v...), "")
}
