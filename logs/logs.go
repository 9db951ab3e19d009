// Package logs builds the slog logger shared by the compiler and the command line driver.
package logs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"

	"github.com/ava12/minisculus/config"
)

// Logger fans records out to the terminal, an optional log file, and an optional systemd journal.
type Logger struct {
	*slog.Logger
	Level *slog.LevelVar
	file  *os.File
}

// ParseLevel converts "debug", "info", "warn", or "error" to slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	e := level.UnmarshalText([]byte(name))
	return level, e
}

// New creates a Logger writing text or JSON records to terminal.
// A nil terminal disables terminal output.
func New(cfg config.Log, terminal io.Writer) (*Logger, error) {
	l := &Logger{Level: new(slog.LevelVar)}
	if cfg.Level != "" {
		level, e := ParseLevel(cfg.Level)
		if e != nil {
			return nil, e
		}
		l.Level.Set(level)
	}

	opts := &slog.HandlerOptions{Level: l.Level}
	var handlers []slog.Handler
	var terminalHandler slog.Handler

	if terminal != nil {
		if cfg.Format == "json" {
			terminalHandler = slog.NewJSONHandler(terminal, opts)
		} else {
			terminalHandler = slog.NewTextHandler(terminal, opts)
		}
		handlers = append(handlers, terminalHandler)
	}

	if cfg.File != "" {
		f, e := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if e != nil {
			return nil, fmt.Errorf("opening log file: %w", e)
		}
		l.file = f
		handlers = append(handlers, slog.NewJSONHandler(f, opts))
	}

	if cfg.Journal {
		journalHandler, e := slogjournal.NewHandler(&slogjournal.Options{
			Level: l.Level,
			ReplaceGroup: func(key string) string {
				return toJournalKey(key)
			},
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if e != nil {
			if terminalHandler != nil {
				record := slog.NewRecord(time.Now(), slog.LevelWarn, "new systemd journal handler", 0)
				record.Add("error", e)
				_ = terminalHandler.Handle(context.Background(), record)
			}
		} else {
			handlers = append(handlers, journalHandler)
		}
	}

	l.Logger = slog.New(slogmulti.Fanout(handlers...))
	return l, nil
}

// Close closes the log file if there is one.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	e := l.file.Close()
	l.file = nil
	return e
}

func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	str = strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
	return str
}
