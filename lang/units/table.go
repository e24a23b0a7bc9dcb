package units

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/BurntSushi/toml"
)

// Errors of unit tables.
var (
	ErrInvalidTable = errors.New("invalid unit table")
	ErrUnknownUnit  = errors.New("unknown unit")
)

//go:embed units.toml
var builtinUnits string

// Dimension is a physical dimension, e.g. "distance".
type Dimension string

// Unit is a unit of measurement. Factor converts a value in this unit to the
// base unit of the dimension.
type Unit struct {
	Symbol    string    `toml:"symbol"`
	Name      string    `toml:"name"`
	Dimension Dimension `toml:"dimension"`
	Factor    float64   `toml:"factor"`
}

func (u Unit) String() string {
	return u.Symbol
}

// Table is a set of units, indexed by symbol.
type Table struct {
	units   map[string]Unit
	symbols []string // longest first
}

type tableFile struct {
	Units []Unit `toml:"unit"`
}

// ParseTable reads a unit table in TOML format.
func ParseTable(r io.Reader) (*Table, error) {
	var tf tableFile
	md, err := toml.NewDecoder(r).Decode(&tf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown keys %v", ErrInvalidTable, undecoded)
	}
	return NewTable(tf.Units...)
}

// LoadTable reads a unit table from a TOML file.
func LoadTable(path string) (*Table, error) {
	var tf tableFile
	md, err := toml.DecodeFile(path, &tf)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTable, path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: %s: unknown keys %v", ErrInvalidTable, path, undecoded)
	}
	return NewTable(tf.Units...)
}

// NewTable creates a table from a list of units. Symbols must consist of letters
// and must be unique, and factors must be positive.
func NewTable(units ...Unit) (*Table, error) {
	t := &Table{units: make(map[string]Unit, len(units))}
	for _, u := range units {
		switch {
		case u.Symbol == "" || strings.IndexFunc(u.Symbol, isNotLetter) >= 0:
			return nil, fmt.Errorf("%w: illegal unit symbol %q", ErrInvalidTable, u.Symbol)
		case u.Symbol == "in":
			return nil, fmt.Errorf("%w: unit symbol 'in' is reserved", ErrInvalidTable)
		case u.Dimension == "":
			return nil, fmt.Errorf("%w: unit %q has no dimension", ErrInvalidTable, u.Symbol)
		case u.Factor <= 0:
			return nil, fmt.Errorf("%w: unit %q has factor %g", ErrInvalidTable, u.Symbol, u.Factor)
		}
		if _, dup := t.units[u.Symbol]; dup {
			return nil, fmt.Errorf("%w: duplicate unit %q", ErrInvalidTable, u.Symbol)
		}
		t.units[u.Symbol] = u
		t.symbols = append(t.symbols, u.Symbol)
	}
	sort.Slice(t.symbols, func(i, j int) bool {
		si, sj := t.symbols[i], t.symbols[j]
		if len(si) != len(sj) {
			return len(si) > len(sj)
		}
		return si < sj
	})
	tracer().Debugf("unit table with %d units", len(t.units))
	return t, nil
}

var builtin struct {
	once  sync.Once
	table *Table
}

// DefaultTable returns the built-in unit table.
func DefaultTable() *Table {
	builtin.once.Do(func() {
		t, err := ParseTable(strings.NewReader(builtinUnits))
		if err != nil {
			panic(fmt.Sprintf("units: built-in table: %v", err))
		}
		builtin.table = t
	})
	return builtin.table
}

// Lookup finds a unit by symbol.
func (t *Table) Lookup(symbol string) (Unit, error) {
	u, ok := t.units[symbol]
	if !ok {
		return Unit{}, fmt.Errorf("%w: %s", ErrUnknownUnit, symbol)
	}
	return u, nil
}

// Units lists the units of the table, ordered by dimension and factor.
func (t *Table) Units() []Unit {
	units := make([]Unit, 0, len(t.units))
	for _, u := range t.units {
		units = append(units, u)
	}
	sort.Slice(units, func(i, j int) bool {
		if units[i].Dimension != units[j].Dimension {
			return units[i].Dimension < units[j].Dimension
		}
		if units[i].Factor != units[j].Factor {
			return units[i].Factor < units[j].Factor
		}
		return units[i].Symbol < units[j].Symbol
	})
	return units
}

func isNotLetter(r rune) bool {
	return r != '_' && !unicode.IsLetter(r)
}
