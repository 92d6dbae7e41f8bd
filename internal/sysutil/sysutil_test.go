package sysutil

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLogLevel(t *testing.T) {
	want := map[string]zerolog.Level{
		"trace":    zerolog.TraceLevel,
		" Debug ":  zerolog.DebugLevel,
		"INFO":     zerolog.InfoLevel,
		"warn":     zerolog.WarnLevel,
		"Warning":  zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"fatal":    zerolog.FatalLevel,
		"panic":    zerolog.PanicLevel,
		"disabled": zerolog.Disabled,
		"":         zerolog.InfoLevel,
		"verbose":  zerolog.InfoLevel,
	}
	before := zerolog.GlobalLevel()
	for in, lvl := range want {
		if got := ParseLogLevel(in); got != lvl {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, lvl)
		}
	}
	if zerolog.GlobalLevel() != before {
		t.Fatal("ParseLogLevel must not change the global level")
	}
}

func TestSetLogLevel(t *testing.T) {
	before := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(before) })

	SetLogLevel("error")
	if zerolog.GlobalLevel() != zerolog.ErrorLevel {
		t.Fatalf("level = %v after SetLogLevel(error)", zerolog.GlobalLevel())
	}
	SetLogLevel("nonsense")
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Fatalf("unknown level should reset to info, got %v", zerolog.GlobalLevel())
	}
}

func TestIsTruthy(t *testing.T) {
	for v, want := range map[string]bool{
		"1": true, "true": true, "TRUE": true, " yes ": true, "Y": true, "On": true,
		"": false, "0": false, "false": false, "no": false, "off": false, "n": false, "enabled": false,
	} {
		if got := IsTruthy(v); got != want {
			t.Errorf("IsTruthy(%q) = %v, want %v", v, got, want)
		}
	}
}

func TestFirstNonEmpty(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{" ", "\t"}, ""},
		{[]string{"", " v1.2.0 ", "dev"}, " v1.2.0 "},
		{[]string{"v2", "dev"}, "v2"},
	}
	for _, tc := range tests {
		if got := FirstNonEmpty(tc.in...); got != tc.want {
			t.Errorf("FirstNonEmpty(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
