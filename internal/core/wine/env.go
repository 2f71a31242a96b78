package wine

import (
	"fmt"
	"os"
	"sort"
)

// composeEnv builds the child environment: the parent environment first,
// then the prefix pin, then caller overrides in sorted key order for
// deterministic output. os/exec keeps the last value for a duplicated key,
// so a later entry wins on collision, WINEPREFIX included if a caller
// insists on overriding it.
func composeEnv(prefix string, overrides map[string]string) []string {
	env := os.Environ()
	env = append(env, "WINEPREFIX="+prefix)

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		env = append(env, fmt.Sprintf("%s=%s", k, overrides[k]))
	}
	return env
}
