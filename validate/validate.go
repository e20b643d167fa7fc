// Package validate checks game configuration JSON files before they are
// served. It checks:
//   - JSON structure, with unknown keys rejected
//   - Required fields, time limit bounds and tick interval
//   - Required message keys
//   - Message templates render with the arguments the engine passes them
//   - Playability: the hare can cover the board within the time limit
package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/hare-hounds/game/engine"
)

// Result captures the outcome of validating a single file. Info holds the
// summary lines of a valid file, Warnings never make a file invalid.
type Result struct {
	File     string
	Valid    bool
	Errors   []string
	Warnings []string
	Info     []string
}

// ValidateFile loads and validates a single configuration JSON file
func ValidateFile(filePath string) Result {
	result := Result{
		File:  filepath.Base(filePath),
		Valid: true,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config engine.GameConfig
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	id := strings.TrimSuffix(result.File, ".json")
	if id != strings.ToLower(id) || strings.ContainsAny(id, " \t") {
		result.warn("Config id %q should be lowercase without spaces", id)
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		result.fail("%s", strings.TrimPrefix(err.Error(), "config validation: "))
		return result
	}

	validateTemplates(&config, &result)
	validatePlayability(&config, &result)

	if result.Valid {
		result.Info = append(result.Info,
			fmt.Sprintf("✓ Name: %s", config.Name),
			fmt.Sprintf("✓ Time limit: %ds", config.TimeLimit),
			fmt.Sprintf("✓ Tick interval: %s", config.TickInterval()),
		)
		if config.Seed != 0 {
			result.Info = append(result.Info, fmt.Sprintf("✓ Fixed seed: %d", config.Seed))
		}
	}

	return result
}

// ValidateDir validates every *.json file in dir, sorted by file name
func ValidateDir(dir string) ([]Result, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing configs: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no config files found in %s", dir)
	}
	sort.Strings(files)

	results := make([]Result, 0, len(files))
	for _, file := range files {
		results = append(results, ValidateFile(file))
	}
	return results, nil
}

// validateTemplates renders the victory message with sample values. A verb
// that does not match its argument shows up as %! in the output. The share
// message is rendered by engine.ValidateGameConfig.
func validateTemplates(config *engine.GameConfig, result *Result) {
	victory := fmt.Sprintf(config.Messages.Victory, 12, 9)
	if strings.Contains(victory, "%!") {
		result.fail("messages.victory does not render: %q", victory)
	}

	if config.Messages.Share == "" {
		result.warn("messages.share is not set, the default share text is used")
	}
}

// validatePlayability warns when the countdown is shorter than the fewest
// ticks a hare needs, one per row on an untouched board
func validatePlayability(config *engine.GameConfig, result *Result) {
	minMoves := engine.BoardSize - 1
	if config.TimeLimit < minMoves {
		result.warn("Time limit %ds is shorter than the %d moves needed to reach the top row at one move per tick",
			config.TimeLimit, minMoves)
	}
}

func (r *Result) fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Print writes a human readable report of results and returns the number of
// invalid files
func Print(w io.Writer, results []Result) int {
	invalid := 0
	for _, r := range results {
		if r.Valid {
			fmt.Fprintf(w, "✅ %s: VALID\n", r.File)
			for _, line := range r.Info {
				fmt.Fprintf(w, "   %s\n", line)
			}
		} else {
			invalid++
			fmt.Fprintf(w, "❌ %s: INVALID\n", r.File)
			for _, line := range r.Errors {
				fmt.Fprintf(w, "   - %s\n", line)
			}
		}
		for _, line := range r.Warnings {
			fmt.Fprintf(w, "   ⚠ %s\n", line)
		}
	}
	fmt.Fprintf(w, "\n%d file(s) checked, %d invalid\n", len(results), invalid)
	return invalid
}
