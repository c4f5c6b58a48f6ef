package recast

import (
	"testing"

	"gopkg.in/yaml.v2"
)

func TestConfigYAMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BMin = [3]float32{-10, 0, -10}
	cfg.BMax = [3]float32{10, 5, 10}
	cfg.Width, cfg.Height = 64, 64

	out, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var got Config
	if err := yaml.Unmarshal(out, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if got != *cfg {
		t.Fatalf("round-tripped config %+v does not match original %+v", got, *cfg)
	}
}

func TestConfigYAMLFieldNames(t *testing.T) {
	cfg := DefaultConfig()
	out, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var m map[string]interface{}
	if err := yaml.Unmarshal(out, &m); err != nil {
		t.Fatalf("Unmarshal into map failed: %v", err)
	}

	for _, key := range []string{"cell_size", "cell_height", "walkable_slope_angle", "max_verts_per_poly"} {
		if _, ok := m[key]; !ok {
			t.Fatalf("expected YAML key %q in marshaled config", key)
		}
	}
}
