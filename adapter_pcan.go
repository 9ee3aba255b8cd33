package pcanbus

import (
	"github.com/roffe/pcanbus/pkg/pcan"
)

const PCANAdapterName = "pcan"

func init() {
	if err := RegisterAdapter(&AdapterInfo{
		Name:        PCANAdapterName,
		Description: "PEAK-System CAN adapter",
		Channels:    ChannelNames(),
		CanCreate:   CanCreate,
		New:         newPCAN,
	}); err != nil {
		panic(err)
	}
}

// CanCreate reports whether the PCAN runtime library can be loaded. The
// probe runs once per process.
func CanCreate() (bool, error) {
	return pcan.CanCreate()
}

func newPCAN(cfg *AdapterConfig) (*Backend, error) {
	lib, err := pcan.Load()
	if err != nil {
		return nil, err
	}
	return newBackendFromConfig(cfg, lib)
}

func newBackendFromConfig(cfg *AdapterConfig, drv Driver) (*Backend, error) {
	b := NewBackend(cfg.Channel, cfg.Bus, drv, cfg.Loop, WithDebug(cfg.Debug))
	if cfg.Bitrate != 0 {
		if err := b.SetConfigurationParameter(BitRateKey, cfg.Bitrate); err != nil {
			return nil, err
		}
	}
	return b, nil
}
