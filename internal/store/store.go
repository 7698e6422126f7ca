// Package store persists category ledgers as one JSON file per category.
// Files are fully rewritten on every save; a missing file means an empty
// ledger while an unreadable or malformed one is a hard error.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/susu3304/stockbot/internal/stock"
)

// ErrCorrupt marks a ledger file that exists but cannot be decoded. Callers
// must surface it instead of treating the ledger as empty.
var ErrCorrupt = errors.New("corrupt ledger file")

type Store struct {
	dir string
}

// New returns a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if dir == "" {
		dir = "./data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(c stock.Category) string {
	return filepath.Join(s.dir, string(c)+".json")
}

// Load reads the persisted ledger for a category. A missing file yields an
// empty ledger.
func (s *Store) Load(c stock.Category) (*stock.Ledger, error) {
	data, err := os.ReadFile(s.path(c))
	if errors.Is(err, fs.ErrNotExist) {
		return stock.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s ledger: %w", c, err)
	}
	ledger := stock.NewLedger()
	if err := json.Unmarshal(data, ledger); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path(c), err)
	}
	return ledger, nil
}

// LoadAll reads every category ledger, keyed by category.
func (s *Store) LoadAll() (map[stock.Category]*stock.Ledger, error) {
	ledgers := make(map[stock.Category]*stock.Ledger, len(stock.Categories()))
	for _, c := range stock.Categories() {
		ledger, err := s.Load(c)
		if err != nil {
			return nil, err
		}
		ledgers[c] = ledger
	}
	return ledgers, nil
}

// Save rewrites the category file. The ledger is written to a temp file in
// the same directory and moved into place so a concurrent reader never sees
// a partial write.
func (s *Store) Save(c stock.Category, ledger *stock.Ledger) error {
	raw, err := json.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("encode %s ledger: %w", c, err)
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return fmt.Errorf("encode %s ledger: %w", c, err)
	}
	pretty.WriteByte('\n')

	tmp, err := os.CreateTemp(s.dir, string(c)+"-*.json")
	if err != nil {
		return fmt.Errorf("write %s ledger: %w", c, err)
	}
	if _, err := tmp.Write(pretty.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s ledger: %w", c, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s ledger: %w", c, err)
	}
	// atomically move into place
	if err := os.Rename(tmp.Name(), s.path(c)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s ledger: %w", c, err)
	}
	return nil
}
