// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger sets up Apex with a custom handler and a log level from the
// PRIMEGEN_LOG env variable. If PRIMEGEN_LOG_FILE is set, output goes to a
// rotating file there instead of stdout.
func InitLogger() {
	level := strings.ToUpper(os.Getenv("PRIMEGEN_LOG"))
	if level == "" {
		level = "ERROR"
	}

	var w io.Writer = os.Stdout
	if file := os.Getenv("PRIMEGEN_LOG_FILE"); file != "" {
		w = &lumberjack.Logger{
			Filename:   file,
			LocalTime:  true,
			MaxSize:    10, //nolint:mnd
			MaxAge:     7,  //nolint:mnd
			MaxBackups: 3,  //nolint:mnd
			Compress:   true,
		}
	}

	log.SetHandler(NewCustomHandler(w))

	l, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		l = log.ErrorLevel
	}
	log.SetLevel(l)
}

// CustomHandler formats log messages and writes them to W.
type CustomHandler struct {
	mu sync.Mutex
	W  io.Writer
}

// NewCustomHandler returns a CustomHandler writing to w.
func NewCustomHandler(w io.Writer) *CustomHandler {
	return &CustomHandler{W: w}
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	timestamp := e.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	level := strings.ToUpper(e.Level.String())

	line := fmt.Sprintf("%s %.1s %s", timestamp.Format("2006-01-02 15:04:05"), level, e.Message)

	// Fields are emitted in a stable order so log lines diff cleanly.
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		line += fmt.Sprintf(" %s=%v", name, e.Fields[name])
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.W, line)
	return err
}
