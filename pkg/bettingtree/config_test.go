package bettingtree

import "testing"

func TestBettingConfig_ValidateRejectsEmptyBetSizes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BetSizes = nil
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected error for empty bet_sizes")
	}
}

func TestBettingConfig_ValidateRejectsNonPositivePot(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PotSize = 0
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected error for non-positive pot_size")
	}
}

func TestBettingConfig_ValidateRejectsNonPositiveMinRaise(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinRaiseSize = 0
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected error for non-positive min_raise_size")
	}
}

func TestBettingConfig_ValidateRejectsNegativeCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxBetsPerStreet[Flop] = -1
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected error for negative per-street cap")
	}
}

func TestBettingConfig_ValidateAcceptsDefaults(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("expected default config to validate, got %v", err)
	}
}
