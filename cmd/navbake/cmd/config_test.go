package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v2"

	"github.com/waypointfield/navbake/recast"
)

func TestLoadConfigFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "navbake.yml")

	written := recast.DefaultConfig()
	written.BMin = [3]float32{-5, 0, -5}
	written.BMax = [3]float32{5, 5, 5}

	buf, err := yaml.Marshal(written)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("loadConfigFile failed: %v", err)
	}
	if *got != *written {
		t.Fatalf("loaded config %+v does not match written config %+v", *got, *written)
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	if _, err := loadConfigFile(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatalf("expected an error loading a nonexistent config file")
	}
}
