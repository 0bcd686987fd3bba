package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"roster-calendar/internal/dto"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func setupFixtures(t *testing.T) (dir, assistant, staff string) {
	t.Helper()
	dir = t.TempDir()
	assistant = writeFixture(t, dir, "asistan.csv", "TARİH;NÖBET;AMELİYAT 1\n05.03.2024;Ali;Tahir\n06.03.2024;Tahir;Ali\n")
	staff = writeFixture(t, dir, "uzman.csv", "TARİH / GÜN;Dr. Aslan;Dr. Kaya\n05.03.2024;Ameliyat;Nöbet\n")
	return dir, assistant, staff
}

func TestRun_ICSToFile(t *testing.T) {
	dir, assistant, staff := setupFixtures(t)
	out := filepath.Join(dir, "out.ics")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-assistant", assistant, "-staff", staff, "-name", "Tahir", "-out", out}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit = %d, stderr = %s", code, stderr.String())
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "BEGIN:VEVENT") || !strings.Contains(string(data), "SUMMARY:AMELİYAT 1 - Dr. Aslan") {
		t.Errorf("unexpected calendar:\n%s", data)
	}
}

func TestRun_JSONToStdout(t *testing.T) {
	_, assistant, staff := setupFixtures(t)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-assistant", assistant, "-staff", staff, "-name", "Tahir", "-format", "json", "-out", "-"}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit = %d, stderr = %s", code, stderr.String())
	}

	var resp dto.CalendarPreviewResponse
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.EntryCount != 2 || resp.Statistics.OnCall != 1 || resp.Statistics.Surgery != 1 {
		t.Errorf("unexpected response %+v", resp)
	}
	if !strings.Contains(stderr.String(), "Tahir: 2 entries") {
		t.Errorf("summary missing: %s", stderr.String())
	}
}

func TestRun_NotFound(t *testing.T) {
	_, assistant, _ := setupFixtures(t)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-assistant", assistant, "-name", "Zeynep", "-out", "-"}, &stdout, &stderr)
	if code != exitNotFound {
		t.Errorf("exit = %d, want %d", code, exitNotFound)
	}
	if stdout.Len() != 0 {
		t.Error("nothing should be written when the name is not found")
	}
}

func TestRun_UsageErrors(t *testing.T) {
	_, assistant, _ := setupFixtures(t)

	tests := [][]string{
		{"-name", "Tahir"},
		{"-assistant", assistant},
		{"-assistant", assistant, "-name", "Tahir", "-format", "pdf"},
		{"-assistant", "/does/not/exist.csv", "-name", "Tahir"},
	}
	for _, args := range tests {
		var stdout, stderr bytes.Buffer
		if code := run(context.Background(), args, &stdout, &stderr); code != exitError {
			t.Errorf("run(%v) = %d, want %d", args, code, exitError)
		}
	}
}
