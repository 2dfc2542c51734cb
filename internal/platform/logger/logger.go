package logger

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

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return FormatJSON
	}
	return FormatText
}

// Fields son los pares clave/valor que acompañan cada línea.
type Fields = map[string]any

type Logger interface {
	With(fields Fields) Logger

	Debug(msg string, fields Fields)
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, fields Fields)
}

type Options struct {
	Level  Level
	Format Format
	App    string

	// Output por defecto es os.Stderr (stdout queda libre para la CLI).
	Output io.Writer
}

// sink es compartido por todos los loggers derivados con With.
type sink struct {
	mu     sync.Mutex
	out    io.Writer
	level  Level
	format Format
	now    func() time.Time
}

type stdLogger struct {
	sink *sink
	base Fields
}

func New(opts Options) Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	format := opts.Format
	if format == "" {
		format = FormatText
	}

	base := Fields{}
	if app := strings.TrimSpace(opts.App); app != "" {
		base["app"] = app
	}

	return &stdLogger{
		sink: &sink{out: out, level: opts.Level, format: format, now: time.Now},
		base: base,
	}
}

// NewFromEnv crea logger desde env:
// - LOG_LEVEL=debug|info|warn|error (default info)
// - LOG_FORMAT=text|json (default text)
// - APP_NAME=pet-adoption-hub (opcional)
func NewFromEnv() Logger {
	return New(Options{
		Level:  ParseLevel(os.Getenv("LOG_LEVEL")),
		Format: ParseFormat(os.Getenv("LOG_FORMAT")),
		App:    os.Getenv("APP_NAME"),
	})
}

// Nop descarta todo; pensado para tests y componentes sin logger inyectado.
func Nop() Logger { return nopLogger{} }

// OrNop devuelve l o un Nop si l es nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return Nop()
	}
	return l
}

func (l *stdLogger) With(fields Fields) Logger {
	if len(fields) == 0 {
		return l
	}
	return &stdLogger{sink: l.sink, base: merge(l.base, fields)}
}

func (l *stdLogger) Debug(msg string, fields Fields) { l.log(Debug, msg, fields) }
func (l *stdLogger) Info(msg string, fields Fields)  { l.log(Info, msg, fields) }
func (l *stdLogger) Warn(msg string, fields Fields)  { l.log(Warn, msg, fields) }
func (l *stdLogger) Error(msg string, fields Fields) { l.log(Error, msg, fields) }

func (l *stdLogger) log(lvl Level, msg string, fields Fields) {
	s := l.sink
	if lvl < s.level {
		return
	}

	entry := merge(l.base, fields)
	entry["ts"] = s.now().Format(time.RFC3339Nano)
	entry["level"] = lvl.String()
	entry["msg"] = msg

	var line string
	switch s.format {
	case FormatJSON:
		b, err := json.Marshal(entry)
		if err != nil {
			line = formatText(entry)
		} else {
			line = string(b)
		}
	default:
		line = formatText(entry)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = io.WriteString(s.out, line+"\n")
}

func merge(base, extra Fields) Fields {
	out := make(Fields, len(base)+len(extra)+3)
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		if strings.TrimSpace(k) == "" {
			continue
		}
		if err, ok := v.(error); ok && err != nil {
			v = err.Error()
		}
		out[k] = v
	}
	return out
}

func formatText(m Fields) string {
	// Orden estable: ts, level, msg primero y luego el resto alfabético.
	keys := make([]string, 0, len(m))
	for k := range m {
		switch k {
		case "ts", "level", "msg":
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+3)
	for _, k := range []string{"ts", "level", "msg"} {
		if v, ok := m[k]; ok {
			parts = append(parts, fmt.Sprintf("%s=%v", k, v))
		}
	}
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, m[k]))
	}
	return strings.Join(parts, " ")
}

type nopLogger struct{}

func (n nopLogger) With(Fields) Logger    { return n }
func (nopLogger) Debug(string, Fields) {}
func (nopLogger) Info(string, Fields)  {}
func (nopLogger) Warn(string, Fields)  {}
func (nopLogger) Error(string, Fields) {}
