package dellin

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// TerminalDirectory maps Dellin KLADR city codes to terminal IDs. The data
// comes from the carrier's terminals_v3.json directory dump, loaded at
// startup and reloaded nightly. Reload keeps the previous snapshot on any
// failure, so a broken file never empties the directory.
type TerminalDirectory struct {
	path string

	mu     sync.RWMutex
	cities []directoryCity
}

type directoryFile struct {
	City []directoryCity `json:"city"`
}

type directoryCity struct {
	Code      string `json:"code"`
	Terminals struct {
		Terminal []directoryTerminal `json:"terminal"`
	} `json:"terminals"`
}

type directoryTerminal struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// GiveoutCargo is absent for most terminals in the dump; absence means
	// the terminal does hand out cargo.
	GiveoutCargo *bool `json:"giveoutCargo"`
	Express      bool  `json:"express"`
}

func (t directoryTerminal) handsOutCargo() bool {
	return t.GiveoutCargo == nil || *t.GiveoutCargo
}

// NewTerminalDirectory loads the directory from path.
func NewTerminalDirectory(path string) (*TerminalDirectory, error) {
	d := &TerminalDirectory{path: path}
	if err := d.Reload(); err != nil {
		return nil, err
	}
	return d, nil
}

// Reload re-reads the directory file. On error the currently loaded
// snapshot stays in place.
func (d *TerminalDirectory) Reload() error {
	raw, err := os.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("read terminals directory %s: %w", d.path, err)
	}

	var file directoryFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse terminals directory %s: %w", d.path, err)
	}

	d.mu.Lock()
	d.cities = file.City
	d.mu.Unlock()
	return nil
}

// Lookup returns the first usable terminal ID for the city and mode.
// Express shipments only depart from terminals flagged express; terminals
// that do not hand out cargo are never eligible.
func (d *TerminalDirectory) Lookup(cityCode, mode string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, city := range d.cities {
		if city.Code != cityCode {
			continue
		}
		for _, terminal := range city.Terminals.Terminal {
			if !terminal.handsOutCargo() {
				continue
			}
			if mode == ModeExpress && !terminal.Express {
				continue
			}
			return terminal.ID, true
		}
		return "", false
	}
	return "", false
}
