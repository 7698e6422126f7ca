package store

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/susu3304/stockbot/internal/stock"
)

func testMovement(t *testing.T, c stock.Category, direction, resource, quantity, location string) stock.Movement {
	t.Helper()
	m, err := stock.NewMovement(c, direction, resource, quantity, location, "")
	if err != nil {
		t.Fatalf("NewMovement() error = %v", err)
	}
	return m
}

func TestLoadAbsentIsEmpty(t *testing.T) {
	st, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ledger, err := st.Load(stock.Weapons)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for absent file", err)
	}
	if !ledger.Empty() {
		t.Errorf("ledger = %v, want empty", ledger.Entries(stock.Filter{}))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ledger := stock.NewLedger()
	ledger.Apply(testMovement(t, stock.Drugs, "entrada", "Coca", "40", "Guarida"))
	ledger.Apply(testMovement(t, stock.Drugs, "entrada", "Meta", "5", "Bodega"))
	ledger.Apply(testMovement(t, stock.Drugs, "salida", "Coca", "15", "Guarida"))

	if err := st.Save(stock.Drugs, ledger); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := st.Load(stock.Drugs)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(loaded.Entries(stock.Filter{}), ledger.Entries(stock.Filter{})) {
		t.Errorf("round trip changed ledger: got %v, want %v",
			loaded.Entries(stock.Filter{}), ledger.Entries(stock.Filter{}))
	}
}

func TestLoadCorruptFails(t *testing.T) {
	dir := t.TempDir()
	st, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "fondos.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err = st.Load(stock.Funds)
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("Load() error = %v, want ErrCorrupt", err)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	st, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ledger := stock.NewLedger()
	ledger.Apply(testMovement(t, stock.Weapons, "entrada", "Colt", "2", "Oficina"))
	if err := st.Save(stock.Weapons, ledger); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "armas.json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("data dir contains %v, want only armas.json", names)
	}
}

func TestLoadAll(t *testing.T) {
	st, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ledger := stock.NewLedger()
	ledger.Apply(testMovement(t, stock.Weapons, "entrada", "AK47", "10", "Bodega"))
	if err := st.Save(stock.Weapons, ledger); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	ledgers, err := st.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(ledgers) != len(stock.Categories()) {
		t.Fatalf("LoadAll() returned %d ledgers, want %d", len(ledgers), len(stock.Categories()))
	}
	if got := ledgers[stock.Weapons].Count("AK47", "Bodega"); got != 10 {
		t.Errorf("weapons count = %d, want 10", got)
	}
	if !ledgers[stock.Drugs].Empty() || !ledgers[stock.Funds].Empty() {
		t.Error("unsaved categories should load empty")
	}
}
