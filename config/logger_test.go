package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestMinLevel(t *testing.T) {
	tests := []struct {
		name string
		want zapcore.Level
		ok   bool
	}{
		{"debug", zapcore.DebugLevel, true},
		{"normal", zapcore.InfoLevel, true},
		{"none", zapcore.InvalidLevel, false},
		{"", zapcore.InvalidLevel, false},
	}
	for _, tt := range tests {
		got, ok := minLevel(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("minLevel(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLoggingConfig_PrepareFile(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "bsc.log")
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "normal", Destination: dst, Mode: "overwrite"},
	}

	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	log.Debug("hidden")
	log.Info("compiled", zap.String("page", "home"))
	_ = log.Sync()

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if strings.Contains(string(data), "hidden") {
		t.Error("debug entry must not get into normal level log")
	}
	if !strings.Contains(string(data), "compiled") || !strings.Contains(string(data), "home") {
		t.Errorf("log file content:\n%s", data)
	}
}

func TestLoggingConfig_PrepareNone(t *testing.T) {
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "none"},
	}
	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger with all outputs off should not be enabled")
	}
}

func TestOpenLog(t *testing.T) {
	name := filepath.Join(t.TempDir(), "a.log")
	for _, step := range []struct {
		mode, text, want string
	}{
		{"overwrite", "one", "one"},
		{"append", "two", "onetwo"},
		{"overwrite", "three", "three"},
	} {
		f, err := openLog(name, step.mode)
		if err != nil {
			t.Fatalf("openLog(%s) error = %v", step.mode, err)
		}
		if _, err := f.WriteString(step.text); err != nil {
			t.Fatal(err)
		}
		f.Close()
		data, _ := os.ReadFile(name)
		if string(data) != step.want {
			t.Errorf("after %s got %q, want %q", step.mode, data, step.want)
		}
	}
}

func TestConsoleEnc_FlattensErrors(t *testing.T) {
	enc := consoleEnc{zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())}
	err := multierr.Combine(errors.New("first"), errors.New("second"))

	buf, e := enc.Clone().EncodeEntry(zapcore.Entry{Message: "failed"}, []zapcore.Field{zap.Error(err)})
	if e != nil {
		t.Fatalf("EncodeEntry() error = %v", e)
	}
	out := buf.String()
	if strings.Contains(out, "errorVerbose") || strings.Contains(out, "errorCauses") {
		t.Errorf("console output must not carry verbose error details: %s", out)
	}
	if !strings.Contains(out, "first; second") {
		t.Errorf("error message missing: %s", out)
	}
}
