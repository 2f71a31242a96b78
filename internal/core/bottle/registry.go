package bottle

import (
	"context"
	"fmt"

	"github.com/csabika98/Mythic/internal/core/wine"
)

// Registry value types accepted by wine's reg.exe
const (
	RegSz    = "REG_SZ"
	RegDword = "REG_DWORD"
)

// macDriverKey is the registry key controlling wine's macOS display driver
const macDriverKey = `HKEY_CURRENT_USER\Software\Wine\Mac Driver`

// AddRegistryKey writes a registry value inside the bottle. The bottle
// must pass the existence probe; supervisor failures propagate unchanged.
func (m *Manager) AddRegistryKey(ctx context.Context, b Bottle, key, name, value, valueType string) error {
	if !Exists(b.Path) {
		return fmt.Errorf("%w: %s", wine.ErrPrefixNotFound, b.Path)
	}

	cmd := b.Command("reg-add-"+b.Name, []string{
		"reg", "add", key,
		"/v", name,
		"/t", valueType,
		"/d", value,
		"/f",
	}, nil)

	_, _, err := m.runtime.Execute(ctx, cmd)
	return err
}

// QueryRegistryKey reads a registry value inside the bottle. reg.exe
// writes UTF-16LE output, so the result is decoded before it is returned.
func (m *Manager) QueryRegistryKey(ctx context.Context, b Bottle, key, name string) (string, error) {
	if !Exists(b.Path) {
		return "", fmt.Errorf("%w: %s", wine.ErrPrefixNotFound, b.Path)
	}

	cmd := b.Command("reg-query-"+b.Name, []string{
		"reg", "query", key,
		"/v", name,
	}, nil)

	stdout, _, err := m.runtime.Execute(ctx, cmd)
	if err != nil {
		return "", err
	}
	return wine.DecodeOutput(stdout), nil
}

// SetRetina toggles wine's high-density rendering mode for the bottle.
// Both directions write the key: enabling sets RetinaMode=y, disabling
// sets RetinaMode=n. The store entry is updated to the resolved setting.
func (m *Manager) SetRetina(ctx context.Context, b Bottle, enabled bool) error {
	value := "n"
	if enabled {
		value = "y"
	}

	if err := m.AddRegistryKey(ctx, b, macDriverKey, "RetinaMode", value, RegSz); err != nil {
		return err
	}

	b.Settings.Retina = enabled
	return m.store.Put(ctx, b)
}
