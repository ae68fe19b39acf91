package log

import (
	"bytes"
	"os"
	"regexp"
	"strings"
	"testing"
)

func TestFilter(t *testing.T) {
	buf := &bytes.Buffer{}
	f := newLogFilter(buf, LInfo)

	for _, tc := range []struct {
		line  string
		write bool
	}{
		{"[debug] foo\n", false},
		{"[progress] 100 nodes\n", false},
		{"[step] Starting: x\n", false},
		{"[info] foo\n", true},
		{"[warn] foo\n", true},
		{"[fatal] foo\n", true},
		{"no level\n", true},
		{"[unknown] level\n", true},
	} {
		buf.Reset()
		n, err := f.Write([]byte(tc.line))
		if err != nil {
			t.Fatal(err)
		}
		if n != len(tc.line) {
			t.Errorf("%q: short write %d", tc.line, n)
		}
		if written := buf.Len() > 0; written != tc.write {
			t.Errorf("%q: written %v, expected %v", tc.line, written, tc.write)
		}
		if tc.write && !strings.HasSuffix(buf.String(), tc.line) {
			t.Errorf("%q: unexpected output %q", tc.line, buf.String())
		}
	}
}

func TestSetQuiet(t *testing.T) {
	buf := &bytes.Buffer{}
	SetOutput(buf)
	defer SetOutput(os.Stderr)
	defer SetQuiet(false)

	SetQuiet(true)
	Printf("[info] hidden")
	Printf("[warn] shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("info written in quiet mode", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("warn not written in quiet mode", buf.String())
	}
}

func TestWritePrefix(t *testing.T) {
	buf := &bytes.Buffer{}
	f := newLogFilter(buf, LDebug)
	if _, err := f.Write([]byte("[debug] x\n")); err != nil {
		t.Fatal(err)
	}
	prefix := regexp.MustCompile(`^\[\d{4}-\d\d-\d\dT[^\]]+\] 0:00:00 \[debug\] x\n$`)
	if !prefix.Match(buf.Bytes()) {
		t.Errorf("unexpected line %q", buf.String())
	}
}
