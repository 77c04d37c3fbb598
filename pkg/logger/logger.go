package logger

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a level name to a LogLevel. Unknown names yield INFO and ok=false.
func ParseLevel(name string) (level LogLevel, ok bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return DEBUG, true
	case "INFO":
		return INFO, true
	case "WARN", "WARNING":
		return WARN, true
	case "ERROR":
		return ERROR, true
	case "FATAL":
		return FATAL, true
	}
	return INFO, false
}

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

// Logger writes leveled messages. Loggers derived with With share the
// parent's output, lock and settings, so setters on any of them apply to all.
type Logger struct {
	*shared
	prefix string
}

type shared struct {
	mu         sync.Mutex
	out        io.Writer
	level      LogLevel
	colorize   bool
	showCaller bool
	showTime   bool
	timeFormat string
	exit       func(int)
}

var (
	defaultLogger *Logger
	once          sync.Once
)

type Config struct {
	Level      LogLevel
	Prefix     string
	Colorize   bool
	ShowCaller bool
	ShowTime   bool
	TimeFormat string
	Output     io.Writer
}

// DefaultConfig logs INFO and above to stdout, with colors only when stdout
// is a terminal.
func DefaultConfig() Config {
	return Config{
		Level:      INFO,
		Colorize:   IsTerminal(os.Stdout),
		ShowTime:   true,
		TimeFormat: "2006-01-02 15:04:05",
		Output:     os.Stdout,
	}
}

// IsTerminal reports whether w is a terminal (including Cygwin/MSYS ptys).
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = "2006-01-02 15:04:05"
	}

	return &Logger{
		shared: &shared{
			out:        cfg.Output,
			level:      cfg.Level,
			colorize:   cfg.Colorize,
			showCaller: cfg.ShowCaller,
			showTime:   cfg.ShowTime,
			timeFormat: cfg.TimeFormat,
			exit:       os.Exit,
		},
		prefix: cfg.Prefix,
	}
}

// GetLogger returns the process-wide logger. LOG_LEVEL sets its level and
// NO_COLOR disables colors.
func GetLogger() *Logger {
	once.Do(func() {
		cfg := DefaultConfig()
		if level, ok := ParseLevel(os.Getenv("LOG_LEVEL")); ok {
			cfg.Level = level
		}
		if os.Getenv("NO_COLOR") != "" {
			cfg.Colorize = false
		}
		defaultLogger = New(cfg)
	})
	return defaultLogger
}

func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) Level() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
}

func (l *Logger) SetColorize(colorize bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.colorize = colorize
}

func (l *Logger) SetShowCaller(show bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.showCaller = show
}

// With returns a logger with prefix appended that writes through this one.
func (l *Logger) With(prefix string) *Logger {
	p := prefix
	if l.prefix != "" {
		p = l.prefix + " " + prefix
	}
	return &Logger{shared: l.shared, prefix: p}
}

func (l *Logger) formatMessage(level LogLevel, msg string, args ...any) string {
	var parts []string

	if l.showTime {
		parts = append(parts, time.Now().Format(l.timeFormat))
	}

	levelStr := fmt.Sprintf("[%s]", level.String())
	if l.colorize {
		switch level {
		case DEBUG:
			levelStr = colorGray + levelStr + colorReset
		case INFO:
			levelStr = colorBlue + levelStr + colorReset
		case WARN:
			levelStr = colorYellow + levelStr + colorReset
		case ERROR, FATAL:
			levelStr = colorRed + levelStr + colorReset
		}
	}
	parts = append(parts, levelStr)

	if l.showCaller {
		// log -> Infof -> caller
		if _, file, line, ok := runtime.Caller(3); ok {
			if idx := strings.LastIndex(file, "/"); idx >= 0 {
				file = file[idx+1:]
			}
			parts = append(parts, fmt.Sprintf("%s:%d", file, line))
		}
	}

	if l.prefix != "" {
		parts = append(parts, l.prefix)
	}

	if len(args) > 0 {
		parts = append(parts, fmt.Sprintf(msg, args...))
	} else {
		parts = append(parts, msg)
	}

	return strings.Join(parts, " ")
}

func (l *Logger) log(level LogLevel, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	fmt.Fprintln(l.out, l.formatMessage(level, msg, args...))

	if level == FATAL {
		l.exit(1)
	}
}

func (l *Logger) Debugf(format string, args ...any) {
	l.log(DEBUG, format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.log(INFO, format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.log(WARN, format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.log(ERROR, format, args...)
}

// Fatalf logs at FATAL level and exits the process.
func (l *Logger) Fatalf(format string, args ...any) {
	l.log(FATAL, format, args...)
}

// Package-level helpers on the default logger.

func Debugf(format string, args ...any) { GetLogger().Debugf(format, args...) }
func Infof(format string, args ...any)  { GetLogger().Infof(format, args...) }
func Warnf(format string, args ...any)  { GetLogger().Warnf(format, args...) }
func Errorf(format string, args ...any) { GetLogger().Errorf(format, args...) }
func Fatalf(format string, args ...any) { GetLogger().Fatalf(format, args...) }
