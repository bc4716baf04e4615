// Package config loads and watches the server configuration file (config.yaml).
//
// Top-level sections:
//   - server: http_port (default 8080), log_level, auth{mode,key_env,header},
//     cors_origins
//   - telemetry: tick_interval (2s), history_size (20), backfill_step (5s),
//     seed (0 = time based), per-field generation ranges
//   - limits: optional limit table; absent means the factory table
//   - alerts: cooldown (1m), rules on derived metrics, webhook targets
//
// Load(path) applies defaults before unmarshalling, then validates.
//
// Watch(ctx, path, onChange) uses fsnotify to detect file changes and calls
// onChange with the newly parsed Config. A reload that fails to parse or
// validate is logged and dropped, leaving the previous config in force.
// WatchFile exposes the same directory watch for other files, such as a
// standalone limits file.
package config
