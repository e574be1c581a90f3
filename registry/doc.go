// Package registry maps device names to wrapper constructors and stored
// transport configurations, and builds connected device instances from them.
//
// Wrapper constructors form an explicit, compiled-in registration table:
// device packages call Register (or RegisterConstructor) at application
// start. There is no reflective class lookup and no hidden process-wide
// registry; callers construct a Registry value and pass it where needed.
//
// The Discover step complements the table by scanning a plugins directory.
// Each subdirectory holding a config.yaml or config.json manifest is
// registered as a device: with the constructor from the table when one is
// known under the directory name, otherwise as a generic engine-only device.
// A candidate that fails to load is logged and skipped; it never aborts
// discovery of the others.
//
// After discovery the registry is read-mostly and safe for concurrent
// lookups. Re-running discovery concurrently with readers is safe as well,
// but writers should be externally synchronized if deterministic contents
// matter.
package registry
