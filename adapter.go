package pcanbus

import (
	"fmt"
	"sort"
	"strings"

	"github.com/roffe/pcanbus/pkg/evloop"
)

type AdapterInfo struct {
	Name        string
	Description string
	Channels    []string
	// CanCreate reports whether the adapter's runtime is present.
	CanCreate func() (bool, error)
	New       func(*AdapterConfig) (*Backend, error)
}

func (a *AdapterInfo) String() string {
	return fmt.Sprintf("%s | %s, channels: %d", a.Name, a.Description, len(a.Channels))
}

type AdapterConfig struct {
	Debug   bool
	Channel string
	Bitrate int
	// Loop runs the backend's pumps. Required.
	Loop *evloop.Loop
	// Bus receives frames, errors and state. A new Device is created when nil.
	Bus Bus
}

var adapterMap = make(map[string]*AdapterInfo)

func NewAdapter(adapterName string, cfg *AdapterConfig) (*Backend, error) {
	if cfg.Loop == nil {
		return nil, ErrNilLoop
	}
	if cfg.Bus == nil {
		cfg.Bus = NewDevice()
	}
	if adapter, found := adapterMap[adapterName]; found {
		return adapter.New(cfg)
	}
	return nil, fmt.Errorf("unknown adapter %q", adapterName)
}

func RegisterAdapter(adapter *AdapterInfo) error {
	if _, found := adapterMap[adapter.Name]; !found {
		adapterMap[adapter.Name] = adapter
		return nil
	}
	return fmt.Errorf("adapter %s already registered", adapter.Name)
}

func ListAdapterNames() []string {
	var out []string
	for name := range adapterMap {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i]) < strings.ToLower(out[j]) })
	return out
}

func ListAdapters() []AdapterInfo {
	var out []AdapterInfo
	for _, name := range ListAdapterNames() {
		out = append(out, *adapterMap[name])
	}
	return out
}
