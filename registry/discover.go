package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// manifestNames are the configuration files that qualify a plugins
// subdirectory as a device, in lookup order.
var manifestNames = []string{"config.yaml", "config.yml", "config.json"}

// Discover scans dir for device subdirectories and registers each one that
// carries a configuration manifest. The device name is the lowercased
// subdirectory name; the wrapper constructor comes from the registration
// table when one is known under that name, otherwise the device is
// registered as a generic engine-only device.
//
// A candidate that fails to load is logged and skipped, never aborting
// discovery of the others. Already-registered names are left untouched.
func (r *Registry) Discover(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("%w: read plugins directory %s: %v", ErrConfig, dir, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		name := normalizeName(entry.Name())
		if _, ok := r.devices.Load(name); ok {
			continue
		}

		manifest := findManifest(filepath.Join(dir, entry.Name()))
		if manifest == "" {
			r.logger.Debug("plugin candidate has no config manifest, skipping", "dir", entry.Name())
			continue
		}

		cfg, err := LoadDeviceConfig(manifest)
		if err != nil {
			r.logger.Warn("failed to load device config, skipping", "device", name, "error", err)
			continue
		}

		fn, ok := r.constructors.Load(name)
		if !ok {
			r.logger.Debug("no registered wrapper for device, using generic", "device", name)
			fn = NewGenericDevice
		}

		if r.Register(name, fn, cfg) {
			r.logger.Info("discovered device", "device", name, "method", cfg.Method)
		}
	}

	return nil
}

func findManifest(dir string) string {
	for _, name := range manifestNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}

	return ""
}
