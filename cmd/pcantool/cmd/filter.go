package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/roffe/pcanbus"
)

// idFilter passes frames whose identifier is in the set. An empty set
// passes everything.
type idFilter struct {
	mu  sync.Mutex
	ids map[uint32]struct{}
}

func (f *idFilter) Set(ids []uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = make(map[uint32]struct{}, len(ids))
	for _, id := range ids {
		f.ids[id] = struct{}{}
	}
}

func (f *idFilter) Allows(id uint32) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.ids) == 0 {
		return true
	}
	_, ok := f.ids[id]
	return ok
}

// Apply returns the frames that pass and the number dropped.
func (f *idFilter) Apply(frames []pcanbus.Frame) ([]pcanbus.Frame, int) {
	var out []pcanbus.Frame
	for _, fr := range frames {
		if f.Allows(fr.ID) {
			out = append(out, fr)
		}
	}
	return out, len(frames) - len(out)
}

// parseFilter reads a comma separated identifier list. Identifiers with a
// 0x prefix are hex, others decimal.
func parseFilter(s string) ([]uint32, error) {
	var out []uint32
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		var (
			id  uint64
			err error
		)
		if strings.HasPrefix(strings.ToLower(p), "0x") {
			id, err = strconv.ParseUint(p[2:], 16, 32)
		} else {
			id, err = strconv.ParseUint(p, 10, 32)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid identifier %q", p)
		}
		out = append(out, uint32(id))
	}
	return out, nil
}
