// Package persist encodes and decodes grid snapshots to and from YAML,
// the same serialization format the config package uses for tunables
// (spec.md §6 "Persistence format").
package persist

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/latticesoup/latticesoup/config"
	"github.com/latticesoup/latticesoup/gridsim"
	"github.com/latticesoup/latticesoup/material"
	"github.com/latticesoup/latticesoup/vecf"
)

// SnapshotVersion is incremented when the on-disk format changes.
const SnapshotVersion = 1

// Snapshot is the serializable form of one tick's complete simulation
// state: grid dimensions, one record per non-empty cell, and the
// tunables in effect at capture time.
type Snapshot struct {
	Version int   `yaml:"version"`
	Tick    int32 `yaml:"tick"`

	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	Cells []CellRecord `yaml:"cells"`

	Tunables config.Tunables `yaml:"tunables"`
}

// CellRecord holds one non-empty cell's state. Material is serialized
// by its tag name rather than its numeric Kind, so the format survives
// a reordering of the material enum (spec.md §4.1).
type CellRecord struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`

	Material string  `yaml:"material"`
	Fill     float64 `yaml:"fill"`

	VelX float64 `yaml:"vel_x"`
	VelY float64 `yaml:"vel_y"`
	ComX float64 `yaml:"com_x"`
	ComY float64 `yaml:"com_y"`
}

// Encode builds a Snapshot from a grid's current state. Air cells at
// zero fill are omitted; the decoder restores them implicitly by
// leaving the grid at its zero value everywhere else.
func Encode(g *gridsim.Grid, tick int32, tun config.Tunables) *Snapshot {
	snap := &Snapshot{
		Version:  SnapshotVersion,
		Tick:     tick,
		Width:    g.Width(),
		Height:   g.Height(),
		Tunables: tun,
	}

	g.Each(func(x, y int, c *gridsim.Cell) {
		if c.IsEmpty() {
			return
		}
		snap.Cells = append(snap.Cells, CellRecord{
			X:        x,
			Y:        y,
			Material: c.Material.String(),
			Fill:     c.Fill,
			VelX:     c.Velocity.X,
			VelY:     c.Velocity.Y,
			ComX:     c.COM.X,
			ComY:     c.COM.Y,
		})
	})

	return snap
}

// Decode rebuilds a grid from a Snapshot. Returns an error if a cell
// record names an unrecognized material or falls outside the declared
// dimensions.
func Decode(snap *Snapshot) (*gridsim.Grid, error) {
	g := gridsim.NewGrid(snap.Width, snap.Height, false)

	for _, rec := range snap.Cells {
		if !g.InBounds(rec.X, rec.Y) {
			return nil, fmt.Errorf("persist: cell record (%d,%d) out of bounds for %dx%d grid", rec.X, rec.Y, snap.Width, snap.Height)
		}
		kind, ok := material.FromString(rec.Material)
		if !ok {
			return nil, fmt.Errorf("persist: unrecognized material %q at (%d,%d)", rec.Material, rec.X, rec.Y)
		}
		cell := g.At(rec.X, rec.Y)
		cell.Set(kind, rec.Fill)
		cell.Velocity = vecf.Vec{X: rec.VelX, Y: rec.VelY}
		cell.COM = vecf.Vec{X: rec.ComX, Y: rec.ComY}
	}

	return g, nil
}

// Save encodes a snapshot and writes it to path as YAML.
func Save(snap *Snapshot, path string) error {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("persist: marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("persist: write snapshot: %w", err)
	}
	return nil
}

// Load reads and decodes a snapshot file from path.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("persist: read snapshot: %w", err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("persist: unmarshal snapshot: %w", err)
	}
	return &snap, nil
}
