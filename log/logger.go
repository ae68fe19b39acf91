package log

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

var DefaultLogger *log.Logger
var defaultFilter *logFilter

type Level string

const (
	LDebug    = Level("debug")
	LProgress = Level("progress")
	LStep     = Level("step")
	LInfo     = Level("info")
	LWarn     = Level("warn")
	LError    = Level("error")
	LFatal    = Level("fatal")
)

// rank orders the levels, lines are written if their rank is at least
// the rank of the minimum level.
var rank = map[Level]int{
	LDebug:    0,
	LProgress: 1,
	LStep:     2,
	LInfo:     3,
	LWarn:     4,
	LError:    5,
	LFatal:    6,
}

func init() {
	defaultFilter = newLogFilter(os.Stderr, LProgress)
	DefaultLogger = log.New(defaultFilter, "", 0)
}

// logFilter is the io.Writer of DefaultLogger. It drops lines below
// minLevel and prefixes all others with the time and the run time.
type logFilter struct {
	start    time.Time
	writer   io.Writer
	minLevel Level
}

func newLogFilter(w io.Writer, minLevel Level) *logFilter {
	return &logFilter{start: time.Now(), writer: w, minLevel: minLevel}
}

// lineLevel returns the first [bracketed] word of line.
func lineLevel(line []byte) Level {
	open := bytes.IndexByte(line, '[')
	if open < 0 {
		return ""
	}
	end := bytes.IndexByte(line[open:], ']')
	if end < 0 {
		return ""
	}
	return Level(line[open+1 : open+end])
}

// Check reports whether line passes the filter. Lines without a known
// level always pass.
func (f *logFilter) Check(line []byte) bool {
	r, ok := rank[lineLevel(line)]
	return !ok || r >= rank[f.minLevel]
}

func (f *logFilter) Write(p []byte) (int, error) {
	if !f.Check(p) {
		return len(p), nil
	}
	now := time.Now()
	elapsed := now.Sub(f.start).Truncate(time.Second)
	h := int(elapsed / time.Hour)
	m := int(elapsed/time.Minute) % 60
	sec := int(elapsed/time.Second) % 60

	line := make([]byte, 0, len(p)+40)
	line = append(line, '[')
	line = now.AppendFormat(line, time.RFC3339)
	line = append(line, fmt.Sprintf("] %d:%02d:%02d ", h, m, sec)...)
	line = append(line, p...)
	if _, err := f.writer.Write(line); err != nil {
		return 0, err
	}
	return len(p), nil
}

// SetMinLevel drops all lines below lvl.
func SetMinLevel(lvl Level) {
	defaultFilter.minLevel = lvl
}

// SetQuiet only lets warnings and errors through.
func SetQuiet(quiet bool) {
	if quiet {
		SetMinLevel(LWarn)
	} else {
		SetMinLevel(LProgress)
	}
}

// SetOutput redirects the default logger, mainly for tests.
func SetOutput(w io.Writer) {
	defaultFilter.writer = w
}

func Println(v ...interface{}) {
	DefaultLogger.Println(v...)
}

func Printf(format string, v ...interface{}) {
	DefaultLogger.Printf(format, v...)
}

func Fatal(v ...interface{}) {
	DefaultLogger.Fatal("[fatal] " + fmt.Sprint(v...))
}

func Fatalf(format string, v ...interface{}) {
	DefaultLogger.Fatalf("[fatal] "+format, v...)
}

// Step logs the start of name and returns a func that logs its duration.
func Step(name string) func() {
	start := time.Now()
	Println("[step] Starting:", name)
	return func() {
		Printf("[step] Finished: %s in %s", name, time.Since(start))
	}
}
