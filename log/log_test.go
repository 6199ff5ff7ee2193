// log/log_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func decodeRecords(t *testing.T, b []byte) []map[string]any {
	t.Helper()
	var recs []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(b))
	sc.Buffer(nil, 1<<20)
	for sc.Scan() {
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("%s: %v", sc.Text(), err)
		}
		recs = append(recs, m)
	}
	return recs
}

func TestParseLevel(t *testing.T) {
	for _, test := range []struct {
		s   string
		lvl slog.Level
		ok  bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	} {
		lvl, ok := ParseLevel(test.s)
		if lvl != test.lvl || ok != test.ok {
			t.Errorf("%s: got %v %v, expected %v %v", test.s, lvl, ok, test.lvl, test.ok)
		}
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWriter(&buf, "info")

	lg.Debug("hidden")
	lg.Debugf("hidden %d", 2)
	lg.Info("shown", slog.Int("n", 1))
	lg.Warnf("warning %s", "here")
	lg.With(slog.String("airport", "KJFK")).Error("failed")

	recs := decodeRecords(t, buf.Bytes())
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d: %s", len(recs), buf.String())
	}
	if recs[0]["msg"] != "shown" || recs[0]["n"] != float64(1) {
		t.Errorf("unexpected first record %v", recs[0])
	}
	if recs[1]["msg"] != "warning here" || recs[1]["level"] != "WARN" {
		t.Errorf("unexpected second record %v", recs[1])
	}
	if recs[2]["airport"] != "KJFK" {
		t.Errorf("With attribute missing: %v", recs[2])
	}

	cs, ok := recs[0]["callstack"].([]any)
	if !ok || len(cs) == 0 {
		t.Fatalf("missing callstack in %v", recs[0])
	}
	if fr, ok := cs[0].(map[string]any); !ok || fr["file"] != "log_test.go" {
		t.Errorf("callstack should start in the caller: %v", cs[0])
	}
}

func TestNilLogger(t *testing.T) {
	var lg *Logger
	lg.Debug("x")
	lg.Infof("y %d", 1)
	if lg.With("a", 1) != nil {
		t.Errorf("With on nil Logger should return nil")
	}
}

func TestNewLogFile(t *testing.T) {
	dir := t.TempDir()
	lg := New("debug", dir)

	if lg.LogDir != dir || lg.LogFile != filepath.Join(dir, "tracongen.slog") {
		t.Errorf("unexpected log paths %q %q", lg.LogDir, lg.LogFile)
	}
	lg.Debug("after startup")

	b, err := os.ReadFile(lg.LogFile)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	s := string(b)
	for _, msg := range []string{"Hello logging", "System information", "after startup"} {
		if !strings.Contains(s, msg) {
			t.Errorf("log file is missing %q", msg)
		}
	}
}
