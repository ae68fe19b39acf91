package stats

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/omniscale/osmcsv/log"
)

func TestStatistics(t *testing.T) {
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	defer log.SetOutput(os.Stderr)

	now := time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewStatistics(time.Second, nil)
	s.now = func() time.Time { return now }
	s.c.start, s.c.lastReport = now, now

	s.AddNodes(1)
	s.AddTags(3, 1)
	s.AddWays(1)
	s.AddWayNodes(5)
	if buf.Len() != 0 {
		t.Error("progress reported before interval", buf.String())
	}

	now = now.Add(2 * time.Second)
	s.AddNodes(1)
	if !strings.Contains(buf.String(), "[progress] Nodes:") {
		t.Error("progress not reported", buf.String())
	}

	expected := Counts{Nodes: 2, Ways: 1, Tags: 3, DroppedTags: 1, WayNodes: 5}
	if s.Counts() != expected {
		t.Error(s.Counts())
	}
	if s.Elapsed() != 2*time.Second {
		t.Error(s.Elapsed())
	}
}

func TestMetrics(t *testing.T) {
	m := NewMetrics("")
	s := NewStatistics(0, m)
	s.AddNodes(2)
	s.AddWays(1)
	s.AddTags(4, 2)
	s.AddWayNodes(3)
	m.SetRows("nodes", 2)
	m.SetValidated(true)
	m.SetDuration(1500 * time.Millisecond)

	fname := filepath.Join(t.TempDir(), "osmcsv.prom")
	if err := m.WriteTextfile(fname); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{
		`osmcsv_elements_total{type="node"} 2`,
		`osmcsv_elements_total{type="way"} 1`,
		`osmcsv_tags_total{state="dropped"} 2`,
		`osmcsv_tags_total{state="written"} 4`,
		`osmcsv_way_nodes_total 3`,
		`osmcsv_rows{table="nodes"} 2`,
		`osmcsv_validation_enabled 1`,
		`osmcsv_run_duration_seconds 1.5`,
		`osmcsv_run_info{run_id="` + m.RunID() + `"} 1`,
	} {
		if !strings.Contains(string(b), line+"\n") {
			t.Errorf("%s not found in\n%s", line, b)
		}
	}

	if len(m.RunID()) != 36 || m.RunID() == NewMetrics("").RunID() {
		t.Error("unexpected run id", m.RunID())
	}

	// nil metrics are ignored
	var nilMetrics *Metrics
	nilMetrics.SetRows("nodes", 1)
	if nilMetrics.RunID() != "" {
		t.Error(nilMetrics.RunID())
	}
	if err := nilMetrics.WriteTextfile(fname); err != nil {
		t.Error(err)
	}
}

func TestFormatBytes(t *testing.T) {
	for _, tc := range []struct {
		n        int64
		expected string
	}{
		{0, "0.0 bytes"},
		{1023, "1023.0 bytes"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{419 * 1024 * 1024, "419.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
		{2048 * 1024 * 1024 * 1024 * 1024, "2048.0 TB"},
	} {
		if s := FormatBytes(tc.n); s != tc.expected {
			t.Errorf("%d: %q != %q", tc.n, s, tc.expected)
		}
	}
}
