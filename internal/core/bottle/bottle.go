// Package bottle manages named wine prefixes: a persisted store of bottle
// entities and the lifecycle operations (boot, registry writes, existence
// probe) built on the wine supervisor.
package bottle

import "github.com/csabika98/Mythic/internal/core/wine"

// Settings holds the per-bottle toggles applied when running anything
// inside the bottle.
type Settings struct {
	// DXVK translates Direct3D to Vulkan instead of wine's own GL path.
	DXVK bool `yaml:"dxvk" json:"dxvk"`
	// Esync uses eventfd-based synchronization in the wineserver.
	Esync bool `yaml:"esync" json:"esync"`
	// Retina renders at native pixel density on high-dpi displays.
	Retina bool `yaml:"retina" json:"retina"`
}

// Environment returns the wine environment variables implied by the
// settings. Retina is not expressed here; it is a registry key written at
// boot (see Manager.SetRetina).
func (s Settings) Environment() map[string]string {
	env := make(map[string]string)
	if s.Esync {
		env["WINEESYNC"] = "1"
	}
	if s.DXVK {
		env["WINEDLLOVERRIDES"] = "d3d10core,d3d11,d3d9,dxgi=n,b"
	}
	return env
}

// Bottle is a named, isolated wine prefix.
type Bottle struct {
	Name     string   `yaml:"name" json:"name"`
	Path     string   `yaml:"path" json:"path"`
	Settings Settings `yaml:"settings" json:"settings"`
	// Busy is true while a boot or command is in flight on this bottle.
	// A failed boot can leave a provisional entry with Busy still set;
	// readers must tolerate that.
	Busy bool `yaml:"busy" json:"busy"`
}

// Command builds a wine invocation running args inside the bottle, with
// the bottle's settings contributing to the environment. Caller overrides
// in env win on collision.
func (b Bottle) Command(identifier string, args []string, env map[string]string) wine.Command {
	merged := b.Settings.Environment()
	for k, v := range env {
		merged[k] = v
	}
	return wine.Command{
		Args:       args,
		Identifier: identifier,
		Prefix:     b.Path,
		Env:        merged,
	}
}
