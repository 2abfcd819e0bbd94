package arena

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

// Tiles on the "walls" layer become solid blocks; objects in the
// "PlayerSpawn" group become spawn points. One tile = one world unit.
const (
	wallLayerName  = "walls"
	spawnGroupName = "PlayerSpawn"
)

// Load parses a TMX file into a Layout. It takes an fs.FS so callers can
// pass embed.FS or os.DirFS.
func Load(fsys fs.FS, tmxPath string) (*Layout, error) {
	m, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	layout := &Layout{
		Name:  strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		Width: float64(m.Width),
		Depth: float64(m.Height),
	}

	for _, layer := range m.Layers {
		if layer.Name != wallLayerName {
			continue
		}
		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width; x++ {
				if layer.Tiles[y*m.Width+x].IsNil() {
					continue
				}
				layout.Walls = append(layout.Walls, Wall{
					X: float64(x),
					Z: float64(y),
					W: 1,
					D: 1,
				})
			}
		}
		break
	}

	// Spawn coordinates in Tiled are pixels; convert to tile units.
	tileW := float64(m.TileWidth)
	tileH := float64(m.TileHeight)
	for _, og := range m.ObjectGroups {
		if og.Name != spawnGroupName {
			continue
		}
		for _, o := range og.Objects {
			layout.Spawns = append(layout.Spawns, Spawn{
				X:   o.X / tileW,
				Z:   o.Y / tileH,
				Idx: o.Properties.GetInt("spawnIndex"),
			})
		}
	}

	sort.Slice(layout.Spawns, func(i, j int) bool {
		return layout.Spawns[i].Idx < layout.Spawns[j].Idx
	})

	return layout, nil
}

// Builtin returns the default arena used when no map file is supplied: a
// 32x32 bordered square with two cover blocks and four corner spawns.
func Builtin() *Layout {
	const size = 32.0
	l := &Layout{
		Name:  "arena01",
		Width: size,
		Depth: size,
	}

	// Border walls.
	l.Walls = append(l.Walls,
		Wall{X: 0, Z: 0, W: size, D: 1},
		Wall{X: 0, Z: size - 1, W: size, D: 1},
		Wall{X: 0, Z: 1, W: 1, D: size - 2},
		Wall{X: size - 1, Z: 1, W: 1, D: size - 2},
	)

	// Interior cover.
	l.Walls = append(l.Walls,
		Wall{X: 10, Z: 14, W: 4, D: 2},
		Wall{X: 20, Z: 10, W: 2, D: 6},
	)

	l.Spawns = []Spawn{
		{X: 4, Z: 4, Idx: 0},
		{X: size - 4, Z: size - 4, Idx: 1},
		{X: size - 4, Z: 4, Idx: 2},
		{X: 4, Z: size - 4, Idx: 3},
	}
	return l
}
