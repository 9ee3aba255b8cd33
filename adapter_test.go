package pcanbus

import (
	"errors"
	"testing"

	"github.com/roffe/pcanbus/pkg/evloop"
)

func TestPCANAdapterRegistered(t *testing.T) {
	names := ListAdapterNames()
	found := false
	for _, name := range names {
		if name == PCANAdapterName {
			found = true
		}
	}
	if !found {
		t.Fatalf("ListAdapterNames() = %v, missing %q", names, PCANAdapterName)
	}
	if err := RegisterAdapter(&AdapterInfo{Name: PCANAdapterName}); err == nil {
		t.Error("duplicate registration succeeded")
	}
	for _, a := range ListAdapters() {
		if a.Name == PCANAdapterName && len(a.Channels) != 32 {
			t.Errorf("pcan adapter lists %d channels, want 32", len(a.Channels))
		}
	}
}

func TestNewAdapter(t *testing.T) {
	if _, err := NewAdapter(PCANAdapterName, &AdapterConfig{}); !errors.Is(err, ErrNilLoop) {
		t.Errorf("NewAdapter without loop error = %v, want ErrNilLoop", err)
	}
	if _, err := NewAdapter("nope", &AdapterConfig{Loop: evloop.New()}); err == nil {
		t.Error("unknown adapter accepted")
	}
}

func TestNewBackendFromConfig(t *testing.T) {
	cfg := &AdapterConfig{Channel: "pci2", Bitrate: 250000, Loop: evloop.New(), Bus: NewDevice()}
	b, err := newBackendFromConfig(cfg, newFakeDriver())
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if ChannelName(b.Channel()) != "pci2" {
		t.Errorf("channel = %s, want pci2", ChannelName(b.Channel()))
	}
	if v, _ := b.Bus().ConfigurationParameter(BitRateKey); v != 250000 {
		t.Errorf("bitrate = %v, want 250000", v)
	}

	cfg.Bitrate = 12345
	if _, err := newBackendFromConfig(cfg, newFakeDriver()); !IsKind(err, ConfigurationError) {
		t.Errorf("unsupported bitrate error = %v, want ConfigurationError", err)
	}
}
