// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
	"time"
)

func TestColorScheme_IsValid(t *testing.T) {
	tests := []struct {
		value ColorScheme
		want  bool
	}{
		{ColorSchemeAuto, true},
		{ColorSchemeDark, true},
		{ColorSchemeLight, true},
		{"", false},
		{"Dark", false},
		{"neon", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			valid, errs := tt.value.IsValid()
			if valid != tt.want {
				t.Fatalf("IsValid() = %v, want %v", valid, tt.want)
			}
			if !tt.want && !errors.Is(errs[0], ErrInvalidColorScheme) {
				t.Errorf("error should wrap ErrInvalidColorScheme, got %v", errs[0])
			}
		})
	}
}

func TestFileName_Validate(t *testing.T) {
	tests := []struct {
		value FileName
		ok    bool
	}{
		{"folder.ico", true},
		{"Desktop.ini", true},
		{"", false},
		{"   ", false},
		{"icons/folder.ico", false},
		{`icons\folder.ico`, false},
		{"NUL", false},
		{"con.ico", false},
		{"what?.ini", false},
	}

	for _, tt := range tests {
		errs := tt.value.validate("binding.icon_file")
		if (len(errs) == 0) != tt.ok {
			t.Errorf("validate(%q) errors = %v, want ok=%v", tt.value, errs, tt.ok)
		}
		if !tt.ok && !errors.Is(errs[0], ErrInvalidFileName) {
			t.Errorf("validate(%q) should wrap ErrInvalidFileName", tt.value)
		}
	}
}

func TestConfig_IsValid_CollectsFieldErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Binding.IconFile = ""
	cfg.Refresh.HelperCommand = []string{" ", "-show"}
	cfg.Refresh.HelperTimeout = 0
	cfg.Refresh.ViewRefreshDelay = -time.Second
	cfg.UI.ColorScheme = "neon"
	cfg.Watch.Debounce = 0

	valid, errs := cfg.IsValid()
	if valid {
		t.Fatal("IsValid() should fail")
	}

	var cfgErr *InvalidConfigError
	if !errors.As(errs[0], &cfgErr) {
		t.Fatalf("expected *InvalidConfigError, got %T", errs[0])
	}
	if len(cfgErr.FieldErrors) != 6 {
		t.Errorf("FieldErrors = %d (%v), want 6", len(cfgErr.FieldErrors), cfgErr.FieldErrors)
	}
	if !errors.Is(cfg.Validate(), ErrInvalidConfig) {
		t.Error("Validate() should wrap ErrInvalidConfig")
	}

	sentinels := []error{ErrInvalidFileName, ErrInvalidHelperCommand, ErrInvalidDuration, ErrInvalidColorScheme}
	for _, s := range sentinels {
		found := false
		for _, fe := range cfgErr.FieldErrors {
			if errors.Is(fe, s) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no field error wraps %v", s)
		}
	}
}

func TestRefreshConfig_EmptyHelperDisablesStep(t *testing.T) {
	cfg := DefaultConfig().Refresh
	cfg.HelperCommand = nil

	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("empty helper command should be valid, got %v", errs)
	}
}
