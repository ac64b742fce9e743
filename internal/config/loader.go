package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadLevels loads the level pack.
// Search order: customPath -> ~/.colorblast/levels.yaml -> ./configs/levels.yaml -> embedded default.
// A customPath that is a directory is loaded with LoadDir.
func LoadLevels(customPath string) (LevelPack, error) {
	// Try custom path first
	if customPath != "" {
		info, err := os.Stat(customPath)
		if err != nil {
			return LevelPack{}, fmt.Errorf("failed to read levels %s: %w", customPath, err)
		}
		if info.IsDir() {
			return LoadDir(customPath)
		}
		pack, err := LoadFile(customPath)
		if err != nil {
			return LevelPack{}, err
		}
		if err := pack.Validate(); err != nil {
			return LevelPack{}, fmt.Errorf("invalid levels %s: %w", customPath, err)
		}
		return pack, nil
	}

	// Try user config directory
	if userPath := userConfigPath("levels.yaml"); userPath != "" {
		if pack, err := LoadFile(userPath); err == nil && pack.Validate() == nil {
			return pack, nil
		}
	}

	// Try local configs directory
	if pack, err := LoadFile(filepath.Join("configs", "levels.yaml")); err == nil && pack.Validate() == nil {
		return pack, nil
	}

	// Use embedded default YAML
	var pack LevelPack
	if err := yaml.Unmarshal(defaultLevelsYAML, &pack); err != nil || pack.Validate() != nil {
		return DefaultPack(), nil // Fallback to hardcoded if embed fails
	}
	return pack, nil
}

// LoadFile reads and parses a single level pack without validating it.
func LoadFile(path string) (LevelPack, error) {
	var pack LevelPack
	data, err := os.ReadFile(path)
	if err != nil {
		return pack, fmt.Errorf("failed to read levels %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return pack, fmt.Errorf("failed to parse levels %s: %w", path, err)
	}
	return pack, nil
}

// LoadDir merges every YAML level pack under root. Levels are sorted by ID.
// Files without a palette use the default palette; the first palette found wins.
// Files that fail to parse are skipped.
func LoadDir(root string) (LevelPack, error) {
	var pack LevelPack

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		part, err := LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}
		if len(pack.Palette.Colors) == 0 && len(part.Palette.Colors) > 0 {
			pack.Palette = part.Palette
		}
		pack.Levels = append(pack.Levels, part.Levels...)
		return nil
	})
	if err != nil {
		return LevelPack{}, fmt.Errorf("walking directory %s: %w", root, err)
	}

	if len(pack.Palette.Colors) == 0 {
		pack.Palette = DefaultPalette()
	}

	// Sort by ID for determinism
	sort.Slice(pack.Levels, func(i, j int) bool {
		return pack.Levels[i].ID < pack.Levels[j].ID
	})

	if err := pack.Validate(); err != nil {
		return LevelPack{}, fmt.Errorf("invalid levels in %s: %w", root, err)
	}
	return pack, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".colorblast", filename)
}
