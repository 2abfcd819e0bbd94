package arena

import (
	"testing"
	"testing/fstest"
)

const arenaTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="4" height="4" tilewidth="16" tileheight="16">
 <tileset firstgid="1" name="tiles" tilewidth="16" tileheight="16" tilecount="1" columns="1">
  <image source="tiles.png" width="16" height="16"/>
 </tileset>
 <layer id="1" name="walls" width="4" height="4">
  <data encoding="csv">
1,1,1,1,
1,0,0,1,
1,0,0,1,
1,1,1,1
</data>
 </layer>
 <objectgroup id="2" name="PlayerSpawn">
  <object id="1" x="16" y="16">
   <properties><property name="spawnIndex" type="int" value="1"/></properties>
  </object>
  <object id="2" x="32" y="32">
   <properties><property name="spawnIndex" type="int" value="0"/></properties>
  </object>
 </objectgroup>
</map>
`

func TestLoadParsesWallsAndSpawns(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"maps/test.tmx": &fstest.MapFile{Data: []byte(arenaTMX)},
	}

	l, err := Load(fsys, "maps/test.tmx")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if l.Name != "test" {
		t.Fatalf("Name = %q, want %q", l.Name, "test")
	}
	if l.Width != 4 || l.Depth != 4 {
		t.Fatalf("dimensions = %vx%v, want 4x4", l.Width, l.Depth)
	}

	// The border ring of a 4x4 map is 12 tiles.
	if len(l.Walls) != 12 {
		t.Fatalf("walls = %d, want 12", len(l.Walls))
	}
	for _, w := range l.Walls {
		if w.X == 1 && w.Z == 1 {
			t.Fatalf("interior tile treated as wall")
		}
	}

	// Spawns come back sorted by index, pixel coordinates divided by tile
	// size.
	if len(l.Spawns) != 2 {
		t.Fatalf("spawns = %d, want 2", len(l.Spawns))
	}
	if l.Spawns[0].Idx != 0 || l.Spawns[0].X != 2 || l.Spawns[0].Z != 2 {
		t.Fatalf("spawn 0 = %+v", l.Spawns[0])
	}
	if l.Spawns[1].Idx != 1 || l.Spawns[1].X != 1 || l.Spawns[1].Z != 1 {
		t.Fatalf("spawn 1 = %+v", l.Spawns[1])
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(fstest.MapFS{}, "nope.tmx"); err == nil {
		t.Fatalf("expected an error for a missing map")
	}
}

func TestBuiltinLayout(t *testing.T) {
	t.Parallel()

	l := Builtin()
	if len(l.Spawns) != 4 {
		t.Fatalf("builtin spawns = %d, want 4", len(l.Spawns))
	}
	for i, sp := range l.Spawns {
		if sp.Idx != i {
			t.Fatalf("spawn %d has index %d", i, sp.Idx)
		}
		if sp.X <= 1 || sp.X >= l.Width-1 || sp.Z <= 1 || sp.Z >= l.Depth-1 {
			t.Fatalf("spawn %d outside the playable area: %+v", i, sp)
		}
	}
	if len(l.Walls) == 0 {
		t.Fatalf("builtin arena has no walls")
	}
}
