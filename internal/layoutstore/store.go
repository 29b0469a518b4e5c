package layoutstore

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"cryptodash/internal/jsonutil"
	"cryptodash/internal/layout"
)

// Keys under which the two layout blobs are stored.
const (
	OrderKey = "dashboardWidgets"
	SizesKey = "widgetSizes"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Store persists the dashboard's widget order and size map as two JSON
// blobs in a KV backend.
type Store struct {
	kv KV
}

// New creates a store over kv.
func New(kv KV) *Store {
	return &Store{kv: kv}
}

// Open creates a store for the named backend rooted at dir.
// An empty backend selects the file backend.
func Open(backend, dir string) (*Store, error) {
	switch backend {
	case "", BackendFile:
		return New(NewFileKV(dir)), nil
	case BackendSQLite:
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
		kv, err := OpenSQLiteKV(filepath.Join(dir, SQLiteFile))
		if err != nil {
			return nil, err
		}
		return New(kv), nil
	case BackendMemory:
		return New(NewMemoryKV()), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

// Load returns the saved order and sizes. Each blob independently falls back
// to the built-in default when absent, unreadable or malformed; Load never
// fails. Duplicate ids in the stored order are dropped (first wins) and
// stored sizes below one grid unit are ignored.
func (s *Store) Load() ([]string, layout.Sizes) {
	return s.loadOrder(), s.loadSizes()
}

func (s *Store) loadOrder() []string {
	raw, ok := s.get(OrderKey)
	if !ok {
		return layout.DefaultOrderList()
	}
	var order []string
	if err := jsonutil.UnmarshalWithContext([]byte(raw), &order, OrderKey); err != nil || order == nil {
		return layout.DefaultOrderList()
	}
	seen := make(map[string]bool, len(order))
	out := make([]string, 0, len(order))
	for _, id := range order {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func (s *Store) loadSizes() layout.Sizes {
	raw, ok := s.get(SizesKey)
	if !ok {
		return layout.DefaultSizeMap()
	}
	var sizes layout.Sizes
	if err := jsonutil.UnmarshalWithContext([]byte(raw), &sizes, SizesKey); err != nil || sizes == nil {
		return layout.DefaultSizeMap()
	}
	for id, size := range sizes {
		if !size.Valid() {
			delete(sizes, id)
		}
	}
	return sizes
}

func (s *Store) get(key string) (string, bool) {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		log.Printf("layoutstore.Load: %v", err)
		return "", false
	}
	return raw, ok
}

// Save writes order and sizes. The two writes are independent snapshots;
// a failure of the first does not prevent the second.
func (s *Store) Save(order []string, sizes layout.Sizes) error {
	if order == nil {
		order = []string{}
	}
	if sizes == nil {
		sizes = layout.Sizes{}
	}
	orderJSON, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode %s: %w", OrderKey, err)
	}
	sizesJSON, err := json.Marshal(sizes)
	if err != nil {
		return fmt.Errorf("encode %s: %w", SizesKey, err)
	}
	errOrder := s.kv.Set(OrderKey, string(orderJSON))
	errSizes := s.kv.Set(SizesKey, string(sizesJSON))
	if errOrder != nil {
		return errOrder
	}
	return errSizes
}

// Clear removes both blobs so the next Load returns defaults.
func (s *Store) Clear() error {
	if err := s.kv.Delete(OrderKey); err != nil {
		return err
	}
	return s.kv.Delete(SizesKey)
}

// Close releases the backend if it holds resources.
func (s *Store) Close() error {
	if c, ok := s.kv.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
