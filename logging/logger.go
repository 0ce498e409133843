package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// GlobalLogger describes a Logger that is disabled by default and is instantiated when the fuzzing engine is created.
// Each package should create its own sub-logger so that log output remains attributable to its source.
var GlobalLogger = NewLogger(zerolog.Disabled, false)

// Logger describes a logging object which can emit log events to console and to any number of arbitrary io.Writer
// channels in structured or unstructured format.
type Logger struct {
	// level describes the log level below which events are discarded.
	level zerolog.Level

	// multiLogger describes a logger used to output structured logs to any arbitrary channel(s).
	multiLogger zerolog.Logger

	// consoleLogger describes a logger used to output human-readable logs to console.
	consoleLogger zerolog.Logger

	// writers describes the list of io.Writer objects where structured log output will go.
	writers []io.Writer
}

// LogFormat describes what format to log in.
type LogFormat string

const (
	// STRUCTURED describes that logging should be done in structured JSON format.
	STRUCTURED LogFormat = "structured"
	// UNSTRUCTURED describes that logging should be done in an unstructured, human-readable format.
	UNSTRUCTURED LogFormat = "unstructured"
)

// NewLogger will create a new Logger object with a specific log level. The Logger can output to console, if enabled,
// and output logs to any number of arbitrary io.Writer channels.
func NewLogger(level zerolog.Level, consoleEnabled bool, writers ...io.Writer) *Logger {
	// The two base loggers are disabled by default. Instances are still created so that downstream
	// calls never dereference a nil logger.
	baseMultiLogger := zerolog.New(os.Stdout).Level(zerolog.Disabled)
	baseConsoleLogger := zerolog.New(os.Stdout).Level(zerolog.Disabled)

	if len(writers) > 0 {
		baseMultiLogger = zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger()
	}

	if consoleEnabled {
		consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout}
		baseConsoleLogger = zerolog.New(consoleWriter).Level(level)
	}

	return &Logger{
		level:         level,
		multiLogger:   baseMultiLogger,
		consoleLogger: baseConsoleLogger,
		writers:       writers,
	}
}

// NewSubLogger will create a new Logger with unique context in the form of a key-value pair. The expected use of this
// function is for each package to have its own unique logger so that parsing of logs is "grep-able" based on some key.
func (l *Logger) NewSubLogger(key string, value string) *Logger {
	subMultiLogger := l.multiLogger.With().Str(key, value).Logger()
	subConsoleLogger := l.consoleLogger.With().Str(key, value).Logger()
	return &Logger{
		level:         l.level,
		multiLogger:   subMultiLogger,
		consoleLogger: subConsoleLogger,
		writers:       l.writers,
	}
}

// AddWriter will add a writer to the list of channels where log output will be sent.
func (l *Logger) AddWriter(writer io.Writer, format LogFormat) {
	for _, w := range l.writers {
		if writer == w {
			return
		}
	}

	// For unstructured output, wrap the base writer into a console writer so that we get
	// human-readable output with no ANSI coloring.
	if format == UNSTRUCTURED {
		writer = zerolog.ConsoleWriter{Out: writer, NoColor: true}
	}

	l.writers = append(l.writers, writer)
	l.multiLogger = zerolog.New(zerolog.MultiLevelWriter(l.writers...)).Level(l.level).With().Timestamp().Logger()
}

// Level will get the log level of the Logger.
func (l *Logger) Level() zerolog.Level {
	return l.level
}

// SetLevel will update the log level of the Logger.
func (l *Logger) SetLevel(level zerolog.Level) {
	l.level = level
	l.multiLogger = l.multiLogger.Level(level)
	l.consoleLogger = l.consoleLogger.Level(level)
}

// Trace emits a trace-level log message.
func (l *Logger) Trace(args ...any) {
	l.log(zerolog.TraceLevel, args...)
}

// Debug emits a debug-level log message.
func (l *Logger) Debug(args ...any) {
	l.log(zerolog.DebugLevel, args...)
}

// Info emits an info-level log message.
func (l *Logger) Info(args ...any) {
	l.log(zerolog.InfoLevel, args...)
}

// Warn emits a warning-level log message.
func (l *Logger) Warn(args ...any) {
	l.log(zerolog.WarnLevel, args...)
}

// Error emits an error-level log message.
func (l *Logger) Error(args ...any) {
	l.log(zerolog.ErrorLevel, args...)
}

// Panic emits a panic-level log message and then panics with the formatted message.
func (l *Logger) Panic(args ...any) {
	message, errs := buildMessage(args...)
	l.multiLogger.Panic().Errs("errors", errs).Msg(message)
	l.consoleLogger.Panic().Errs("errors", errs).Msg(message)
}

// log emits a log message at the given level to both the console logger and the multi logger. Any error values in
// args are separated into a structured "errors" field.
func (l *Logger) log(level zerolog.Level, args ...any) {
	message, errs := buildMessage(args...)
	l.multiLogger.WithLevel(level).Errs("errors", errs).Msg(message)
	l.consoleLogger.WithLevel(level).Errs("errors", errs).Msg(message)
}

// buildMessage concatenates all non-error arguments into a single message string and collects error arguments
// separately so that they can be logged as structured fields.
func buildMessage(args ...any) (string, []error) {
	var (
		builder strings.Builder
		errs    []error
	)
	for _, arg := range args {
		if err, ok := arg.(error); ok {
			errs = append(errs, err)
			continue
		}
		builder.WriteString(fmt.Sprintf("%v", arg))
	}
	return builder.String(), errs
}
