package recast

import "testing"

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BMax = [3]float32{10, 10, 10}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig() should validate, got error: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	base := func() *Config {
		cfg := DefaultConfig()
		cfg.BMax = [3]float32{10, 10, 10}
		return cfg
	}

	t.Run("zero cell size rejected", func(t *testing.T) {
		cfg := base()
		cfg.Cs = 0
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected an error for Cs <= 0")
		}
	})

	t.Run("inverted bounds rejected", func(t *testing.T) {
		cfg := base()
		cfg.BMin = [3]float32{5, 0, 0}
		cfg.BMax = [3]float32{1, 10, 10}
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected an error for BMin > BMax")
		}
	})

	t.Run("walkable height below minimum rejected", func(t *testing.T) {
		cfg := base()
		cfg.WalkableHeight = 2
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected an error for WalkableHeight < 3")
		}
	})

	t.Run("too many verts per poly rejected", func(t *testing.T) {
		cfg := base()
		cfg.MaxVertsPerPoly = MaxVertsPerPolygon + 1
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected an error for MaxVertsPerPoly > MaxVertsPerPolygon")
		}
	})
}
