package commands

import (
	"fmt"
	"strings"

	"github.com/csabika98/Mythic/internal/core/bottle"
	"github.com/csabika98/Mythic/internal/core/config"
	"github.com/csabika98/Mythic/internal/core/wine"
)

// sharedTable is the process table for this invocation. run, ps and kill
// all operate on the same instance.
var sharedTable = wine.NewProcessTable()

// createManager is a helper building the bottle manager and its
// dependencies from the persisted configuration
func createManager() (*bottle.Manager, error) {
	log := CreateLogger()

	configManager := config.NewManager()
	cfg, err := configManager.Load()
	if err != nil {
		return nil, err
	}

	runtime := wine.New(cfg.Wine.Binary, sharedTable, log.With("component", "wine"))
	store := bottle.NewStore(configManager.StorePath(), log.With("component", "store"))
	return bottle.NewManager(store, runtime, cfg.Bottles.Directory, log.With("component", "bottle")), nil
}

// parseEnvVars turns KEY=VALUE pairs into a map
func parseEnvVars(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	env := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid environment variable %q, expected KEY=VALUE", pair)
		}
		env[key] = value
	}
	return env, nil
}

// parseTrigger turns a "stream:substring" spec into a trigger. The stream
// part is optional and defaults to stdout.
func parseTrigger(spec string) (*wine.Trigger, error) {
	if spec == "" {
		return nil, nil
	}

	stream := wine.StreamStdout
	substring := spec
	if head, tail, ok := strings.Cut(spec, ":"); ok {
		switch head {
		case "stdout":
			stream, substring = wine.StreamStdout, tail
		case "stderr":
			stream, substring = wine.StreamStderr, tail
		default:
			// No recognized stream prefix; the colon belongs to the
			// substring itself.
		}
	}

	if substring == "" {
		return nil, fmt.Errorf("invalid trigger %q, expected [stdout:|stderr:]substring", spec)
	}
	return &wine.Trigger{Stream: stream, Substring: substring}, nil
}
