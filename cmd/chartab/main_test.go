package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/chartab/internal/config"
	"github.com/verte-zerg/chartab/internal/dataset"
	"github.com/verte-zerg/chartab/internal/model"
)

func TestValidateConfig(t *testing.T) {
	valid := model.Config{DataURL: dataset.DefaultURL, Column: "payment", Timeout: time.Second}
	if err := validateConfig(valid, "info"); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	cases := map[string]struct {
		cfg   model.Config
		level string
	}{
		"no source":  {model.Config{Column: "payment", Timeout: time.Second}, "info"},
		"no column":  {model.Config{DataURL: "x", Timeout: time.Second}, "info"},
		"no timeout": {model.Config{DataURL: "x", Column: "payment"}, "info"},
		"bad level":  {valid, "loud"},
	}
	for name, tc := range cases {
		if err := validateConfig(tc.cfg, tc.level); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestResolveSourcePrefersFile(t *testing.T) {
	src := resolveSource(model.Config{DataURL: "https://example.com/a.csv", DataFile: "rides.csv", Column: "payment"})
	if _, ok := src.(*dataset.FileSource); !ok {
		t.Fatalf("expected file source, got %T", src)
	}
	src = resolveSource(model.Config{DataURL: "https://example.com/a.csv", Column: "payment", Timeout: time.Second})
	httpSrc, ok := src.(*dataset.HTTPSource)
	if !ok || httpSrc.URL != "https://example.com/a.csv" || httpSrc.Timeout != time.Second {
		t.Fatalf("unexpected source %#v", src)
	}
}

func TestApplyDurationConfig(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	var timeout time.Duration
	cmd.Flags().DurationVar(&timeout, "timeout", time.Second, "")

	value := "3s"
	if err := applyDurationConfig(cmd, "timeout", &timeout, &value); err != nil {
		t.Fatalf("applyDurationConfig failed: %v", err)
	}
	if timeout != 3*time.Second {
		t.Fatalf("expected 3s, got %s", timeout)
	}

	bad := "soon"
	if err := applyDurationConfig(cmd, "timeout", &timeout, &bad); err == nil {
		t.Fatalf("expected parse error")
	}

	if err := cmd.Flags().Set("timeout", "7s"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if err := applyDurationConfig(cmd, "timeout", &timeout, &value); err != nil {
		t.Fatalf("applyDurationConfig failed: %v", err)
	}
	if timeout != 7*time.Second {
		t.Fatalf("flag should win over config, got %s", timeout)
	}
}

func TestDataReportOutputs(t *testing.T) {
	res := dataset.Result{Source: "rides.csv", Origin: dataset.OriginRemote}
	counts := model.PaymentCounts{"card": 3, "cash": 1}
	report, err := buildDataReport(res, counts)
	if err != nil {
		t.Fatalf("buildDataReport failed: %v", err)
	}
	if report.MostCommon.Payment != "card" || report.Records != 4 || len(report.Counts) != 2 {
		t.Fatalf("unexpected report %+v", report)
	}

	var text bytes.Buffer
	if err := writeDataText(&text, report); err != nil {
		t.Fatalf("writeDataText failed: %v", err)
	}
	for _, want := range []string{"Source: rides.csv (remote)", "Most Common Payment: card", "Total Rides: 3", "cash         1"} {
		if !strings.Contains(text.String(), want) {
			t.Fatalf("text output missing %q:\n%s", want, text.String())
		}
	}

	var out bytes.Buffer
	if err := writeDataYAML(&out, report); err != nil {
		t.Fatalf("writeDataYAML failed: %v", err)
	}
	var decoded dataReport
	if err := yaml.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if decoded.MostCommon != report.MostCommon || len(decoded.Counts) != 2 {
		t.Fatalf("unexpected yaml:\n%s", out.String())
	}
	if strings.Contains(out.String(), "warning") {
		t.Fatalf("empty warning should be omitted:\n%s", out.String())
	}
}

func TestBuildDataReportEmpty(t *testing.T) {
	if _, err := buildDataReport(dataset.Result{}, model.PaymentCounts{}); err == nil {
		t.Fatalf("expected error for empty counts")
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("template should decode: %v", err)
	}
	if cfg.Data.URL != nil || cfg.Log.Level != nil {
		t.Fatalf("template values should be commented out: %+v", cfg)
	}
}

func TestSnapshotIsOptIn(t *testing.T) {
	if defaultSnapshot {
		t.Fatalf("snapshot cache should be off by default")
	}
	if !strings.Contains(defaultConfigTemplate(), "# snapshot = false") {
		t.Fatalf("template should document snapshot as off:\n%s", defaultConfigTemplate())
	}
}
