package logx

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Format selects the output encoding
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// Fields carries structured key/value pairs attached to a log line
type Fields map[string]interface{}

// Config configures a Logger
type Config struct {
	Level      Level
	Format     Format
	Output     io.Writer
	TimeFormat string
	Service    string
}

// DefaultConfig returns the default logger configuration
func DefaultConfig() *Config {
	return &Config{
		Level:      LevelInfo,
		Format:     FormatConsole,
		Output:     os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
	}
}

// LoadFromEnv builds a config from LOG_LEVEL / LOG_FORMAT / LOG_SERVICE
func LoadFromEnv() *Config {
	cfg := DefaultConfig()
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Level = ParseLevel(v)
	}
	if v := os.Getenv("LOG_FORMAT"); strings.EqualFold(v, "json") {
		cfg.Format = FormatJSON
	}
	if v := os.Getenv("LOG_SERVICE"); v != "" {
		cfg.Service = v
	}
	return cfg
}

// Logger is the main logger instance
type Logger struct {
	mu       sync.Mutex
	config   *Config
	writer   io.Writer
	exitFunc func(int)
}

// NewLogger creates a new logger with the given config
func NewLogger(config *Config) *Logger {
	if config == nil {
		config = DefaultConfig()
	}
	writer := config.Output
	if writer == nil {
		writer = os.Stdout
	}
	return &Logger{
		config:   config,
		writer:   writer,
		exitFunc: os.Exit,
	}
}

// SetLevel changes the minimum level that is emitted
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.config.Level = level
}

// SetOutput redirects log output
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer = w
}

// WithFields creates a new entry with fields
func (l *Logger) WithFields(fields Fields) *Entry {
	e := newEntry(l)
	return e.WithFields(fields)
}

// WithField creates a new entry with a single field
func (l *Logger) WithField(key string, value interface{}) *Entry {
	return l.WithFields(Fields{key: value})
}

// WithError creates a new entry with an error field
func (l *Logger) WithError(err error) *Entry {
	return l.WithFields(Fields{"error": err})
}

func (l *Logger) log(level Level, msg string, fields Fields) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.config.Level {
		return
	}

	now := time.Now()
	var line string
	switch l.config.Format {
	case FormatJSON:
		line = l.formatJSON(now, level, msg, fields)
	default:
		line = l.formatConsole(now, level, msg, fields)
	}
	fmt.Fprintln(l.writer, line)
}

func (l *Logger) formatConsole(t time.Time, level Level, msg string, fields Fields) string {
	var b strings.Builder
	b.WriteString(t.Format(l.config.TimeFormat))
	b.WriteString(" | ")
	b.WriteString(fmt.Sprintf("%-5s", level.String()))
	b.WriteString(" | ")
	if l.config.Service != "" {
		b.WriteString(l.config.Service)
		b.WriteString(" | ")
	}
	b.WriteString(msg)

	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(fmt.Sprintf(" %s=%v", k, fields[k]))
		}
	}
	return b.String()
}

func (l *Logger) formatJSON(t time.Time, level Level, msg string, fields Fields) string {
	record := make(map[string]interface{}, len(fields)+4)
	for k, v := range fields {
		if err, ok := v.(error); ok {
			record[k] = err.Error()
			continue
		}
		record[k] = v
	}
	record["time"] = t.Format(time.RFC3339)
	record["level"] = level.String()
	record["message"] = msg
	if l.config.Service != "" {
		record["service"] = l.config.Service
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Sprintf(`{"level":"ERROR","message":"logx: marshal failed: %v"}`, err)
	}
	return string(data)
}

func (l *Logger) exit(code int) {
	l.exitFunc(code)
}

// Entry is a log line under construction, carrying accumulated fields
type Entry struct {
	logger *Logger
	fields Fields
}

func newEntry(l *Logger) *Entry {
	return &Entry{logger: l, fields: make(Fields)}
}

// WithFields adds fields to the entry
func (e *Entry) WithFields(fields Fields) *Entry {
	for k, v := range fields {
		e.fields[k] = v
	}
	return e
}

// WithField adds a single field to the entry
func (e *Entry) WithField(key string, value interface{}) *Entry {
	e.fields[key] = value
	return e
}

// WithError adds an error field to the entry
func (e *Entry) WithError(err error) *Entry {
	e.fields["error"] = err
	return e
}

func (e *Entry) Trace(msg string) { e.logger.log(LevelTrace, msg, e.fields) }
func (e *Entry) Debug(msg string) { e.logger.log(LevelDebug, msg, e.fields) }
func (e *Entry) Info(msg string)  { e.logger.log(LevelInfo, msg, e.fields) }
func (e *Entry) Warn(msg string)  { e.logger.log(LevelWarn, msg, e.fields) }
func (e *Entry) Error(msg string) { e.logger.log(LevelError, msg, e.fields) }

func (e *Entry) Tracef(format string, args ...interface{}) {
	e.logger.log(LevelTrace, fmt.Sprintf(format, args...), e.fields)
}

func (e *Entry) Debugf(format string, args ...interface{}) {
	e.logger.log(LevelDebug, fmt.Sprintf(format, args...), e.fields)
}

func (e *Entry) Infof(format string, args ...interface{}) {
	e.logger.log(LevelInfo, fmt.Sprintf(format, args...), e.fields)
}

func (e *Entry) Warnf(format string, args ...interface{}) {
	e.logger.log(LevelWarn, fmt.Sprintf(format, args...), e.fields)
}

func (e *Entry) Errorf(format string, args ...interface{}) {
	e.logger.log(LevelError, fmt.Sprintf(format, args...), e.fields)
}
