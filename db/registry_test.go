package db

import (
	"testing"

	"github.com/atlatec/pozo-report-api/config"
)

func testConfig() config.Config {
	return config.Config{
		Port:              8080,
		DefaultConnection: "bd_MTC_PozaRica",
		Connections: []config.Connection{
			{Name: "bd_MTC_PozaRica", Host: "localhost", Port: 1433, Database: "pozarica"},
			{Name: "bd_Bellota", Host: "localhost", Port: 1433, Database: "bellota"},
		},
	}
}

func TestRegistryAllowList(t *testing.T) {
	reg, err := NewRegistry(testConfig())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	defer reg.Close()

	for _, name := range []string{"bd_MTC_PozaRica", "bd_Bellota"} {
		if !reg.IsValid(name) {
			t.Errorf("IsValid(%q) = false, want true", name)
		}
		store, ok := reg.Resolve(name)
		if !ok || store == nil {
			t.Errorf("Resolve(%q) failed", name)
		} else if store.Name() != name {
			t.Errorf("Resolve(%q).Name() = %q", name, store.Name())
		}
	}

	for _, name := range []string{"", "bd_Otra", "BD_MTC_POZARICA"} {
		if reg.IsValid(name) {
			t.Errorf("IsValid(%q) = true, want false", name)
		}
		if _, ok := reg.Resolve(name); ok {
			t.Errorf("Resolve(%q) succeeded, want miss", name)
		}
	}
}

func TestRegistryAvailableOrder(t *testing.T) {
	reg, err := NewRegistry(testConfig())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	defer reg.Close()

	got := reg.Available()
	want := []string{"bd_MTC_PozaRica", "bd_Bellota"}
	if len(got) != len(want) {
		t.Fatalf("Available() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Available()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegistryDefault(t *testing.T) {
	reg, err := NewRegistry(testConfig())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	defer reg.Close()

	def := reg.Default()
	if def == nil || def.Name() != "bd_MTC_PozaRica" {
		t.Fatalf("Default() = %v, want bd_MTC_PozaRica", def)
	}
}
