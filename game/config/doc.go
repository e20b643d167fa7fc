// Package config provides configuration management for Hare & Hounds.
//
// The config package handles:
//   - Loading game configurations from JSON files
//   - Configuration validation through engine.ValidateGameConfig
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Game configurations are stored as JSON files in the configs directory.
// Each configuration defines the countdown length, the tick period, an
// optional fixed seed for the starting placement and the messages shown for
// each outcome. Board size and hound count are fixed by the rules.
//
// Available Configurations:
//   - classic: one minute, the original game
//   - blitz: fifteen seconds
//   - marathon: five minutes with a pinned seed for repeatable games
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("blitz")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
//
// When no valid file exists the built-in classic configuration is the default.
package config
