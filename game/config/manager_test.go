package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wricardo/hare-hounds/game/engine"
)

func createValidConfig(name string) *engine.GameConfig {
	config := engine.DefaultConfig()
	config.Name = name
	config.Description = "Test configuration"
	config.TimeLimit = 30
	return config
}

func writeConfigFile(t *testing.T, dir, name string, config *engine.GameConfig) {
	t.Helper()
	data, err := json.MarshalIndent(config, "", "  ")
	require.NoError(t, err)

	filename := name
	if filepath.Ext(filename) == "" {
		filename = name + ".json"
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), data, 0644))
}

func TestNewManager(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "classic", createValidConfig("Classic"))

		manager, err := NewManager(dir)
		require.NoError(t, err)
		require.Equal(t, "Classic", manager.GetDefault().Name, "classic.json is the default")
	})

	t.Run("non-existent directory", func(t *testing.T) {
		_, err := NewManager("/non/existent/path")
		require.Error(t, err)
	})

	t.Run("first valid file when classic is missing", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "zeta", createValidConfig("Zeta"))
		writeConfigFile(t, dir, "alpha", createValidConfig("Alpha"))

		manager, err := NewManager(dir)
		require.NoError(t, err)
		require.Equal(t, "Alpha", manager.GetDefault().Name)
	})

	t.Run("built-in default for empty directory", func(t *testing.T) {
		manager, err := NewManager(t.TempDir())
		require.NoError(t, err)

		defaultConfig := manager.GetDefault()
		require.NotNil(t, defaultConfig)
		require.NoError(t, engine.ValidateGameConfig(defaultConfig))
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig("Classic"))

	blitz := createValidConfig("Blitz")
	blitz.TimeLimit = 15
	writeConfigFile(t, dir, "blitz", blitz)

	manager, err := NewManager(dir)
	require.NoError(t, err)

	t.Run("load existing config", func(t *testing.T) {
		config, err := manager.LoadConfig("blitz")
		require.NoError(t, err)
		require.Equal(t, "Blitz", config.Name)
		require.Equal(t, 15, config.TimeLimit)
	})

	t.Run("load with .json extension", func(t *testing.T) {
		config, err := manager.LoadConfig("blitz.json")
		require.NoError(t, err)
		require.Equal(t, "Blitz", config.Name)
	})

	t.Run("load from cache", func(t *testing.T) {
		config1, _ := manager.LoadConfig("blitz")
		config2, err := manager.LoadConfig("blitz.json")
		require.NoError(t, err)
		require.Same(t, config1, config2)
	})

	t.Run("load non-existent config", func(t *testing.T) {
		_, err := manager.LoadConfig("non-existent")
		require.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("reject path traversal", func(t *testing.T) {
		for _, name := range []string{"../classic", "sub/blitz", "", ".hidden"} {
			_, err := manager.LoadConfig(name)
			require.ErrorIs(t, err, ErrInvalidName, name)
		}
	})

	t.Run("load invalid config", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "invalid.json"), []byte(`{"name": ""}`), 0644))

		_, err := manager.LoadConfig("invalid")
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("load malformed JSON", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "malformed.json"), []byte(`{"name": "Malformed", invalid json}`), 0644))

		_, err := manager.LoadConfig("malformed")
		require.ErrorContains(t, err, "failed to parse config file")
	})
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()

	for _, id := range []string{"marathon", "classic", "blitz"} {
		writeConfigFile(t, dir, id, createValidConfig("Config "+id))
	}
	os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("readme"), 0644)
	os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{}`), 0644)

	manager, err := NewManager(dir)
	require.NoError(t, err)

	configList, err := manager.ListConfigs()
	require.NoError(t, err)
	require.Len(t, configList, 3)

	for i, id := range []string{"blitz", "classic", "marathon"} {
		info := configList[i]
		require.Equal(t, id, info.ConfigID)
		require.Equal(t, id+".json", info.Filename)
		require.Equal(t, 30, info.TimeLimit)
	}
}

func TestManager_SaveConfig(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir)
	require.NoError(t, err)

	config := createValidConfig("Saved")
	require.NoError(t, manager.SaveConfig("saved", config))
	require.FileExists(t, filepath.Join(dir, "saved.json"))

	loaded, err := engine.LoadGameConfig(filepath.Join(dir, "saved.json"))
	require.NoError(t, err)
	require.Equal(t, "Saved", loaded.Name)
	require.Equal(t, 30, loaded.TimeLimit)

	invalid := createValidConfig("Bad")
	invalid.TimeLimit = 0
	require.ErrorIs(t, manager.SaveConfig("bad", invalid), ErrInvalidConfig)
	require.ErrorIs(t, manager.SaveConfig("../escape", config), ErrInvalidName)
}

func TestManager_SaveConfigReplacesDefault(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig("Classic"))

	manager, err := NewManager(dir)
	require.NoError(t, err)

	updated := createValidConfig("Classic v2")
	require.NoError(t, manager.SaveConfig("classic.json", updated))
	require.Same(t, updated, manager.GetDefault())

	// saving another config leaves the default alone
	require.NoError(t, manager.SaveConfig("blitz", createValidConfig("Blitz")))
	require.Same(t, updated, manager.GetDefault())
}

func TestManager_SetDefaultAndRefresh(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig("Classic"))
	writeConfigFile(t, dir, "blitz", createValidConfig("Blitz"))

	manager, err := NewManager(dir)
	require.NoError(t, err)

	require.NoError(t, manager.SetDefault("blitz.json"))
	require.Equal(t, "Blitz", manager.GetDefault().Name)
	require.ErrorIs(t, manager.SetDefault("missing"), ErrConfigNotFound)
	require.Equal(t, "Blitz", manager.GetDefault().Name)

	writeConfigFile(t, dir, "blitz", createValidConfig("Blitz v2"))
	writeConfigFile(t, dir, "classic", createValidConfig("Classic v2"))

	// the cache still serves the old files
	cached, err := manager.LoadConfig("classic")
	require.NoError(t, err)
	require.Equal(t, "Classic", cached.Name)

	manager.RefreshCache()

	require.Equal(t, "Blitz v2", manager.GetDefault().Name, "SetDefault survives a refresh")
	fresh, err := manager.LoadConfig("classic")
	require.NoError(t, err)
	require.Equal(t, "Classic v2", fresh.Name)
}

func TestManager_RefreshFallsBackWhenDefaultRemoved(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig("Classic"))
	writeConfigFile(t, dir, "blitz", createValidConfig("Blitz"))

	manager, err := NewManager(dir)
	require.NoError(t, err)
	require.NoError(t, manager.SetDefault("blitz"))

	require.NoError(t, os.Remove(filepath.Join(dir, "blitz.json")))
	manager.RefreshCache()

	require.Equal(t, "Classic", manager.GetDefault().Name)
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 5; i++ {
		name := "config" + string(rune('0'+i))
		writeConfigFile(t, dir, name, createValidConfig(name))
	}

	manager, err := NewManager(dir)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 50)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			configName := "config" + string(rune('0'+((id%5)+1)))
			if _, err := manager.LoadConfig(configName); err != nil {
				errs <- err
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err, "concurrent LoadConfig")
	}
	require.Equal(t, 5, manager.Count())
}

// Count returns the number of cached configurations
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.configs)
}
