package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/wricardo/mcp-training/pebblesgame/game/engine"
	"github.com/wricardo/mcp-training/pebblesgame/game/service"
)

var (
	ErrPresetNotFound = service.ErrPresetNotFound
	ErrInvalidPreset  = errors.New("invalid preset")
	ErrNoPresetDir    = errors.New("no presets directory configured")
)

// DefaultPreset is used when a session names no preset
const DefaultPreset = "classic"

//go:embed defaults.yaml
var builtinYAML []byte

// extensions are tried in order when resolving a preset id to a file
var extensions = []string{".yaml", ".yml", ".json"}

// Manager handles preset loading and caching
type Manager struct {
	presetDir     string
	builtins      map[string]*engine.Preset
	defaultID     string
	defaultPreset *engine.Preset
	presets       map[string]*engine.Preset
	mu            sync.RWMutex
}

// NewManager creates a preset manager. An empty presetDir serves the builtin
// presets only.
func NewManager(presetDir string) (*Manager, error) {
	if presetDir != "" {
		if _, err := os.Stat(presetDir); os.IsNotExist(err) {
			return nil, fmt.Errorf("presets directory does not exist: %s", presetDir)
		}
	}

	builtins, err := parseBuiltins(builtinYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to load builtin presets: %w", err)
	}

	m := &Manager{
		presetDir: presetDir,
		builtins:  builtins,
		defaultID: DefaultPreset,
		presets:   make(map[string]*engine.Preset),
	}

	if err := m.loadDefaultPreset(); err != nil {
		return nil, fmt.Errorf("failed to load default preset: %w", err)
	}

	return m, nil
}

func parseBuiltins(data []byte) (map[string]*engine.Preset, error) {
	var list []*engine.Preset
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	out := make(map[string]*engine.Preset, len(list))
	for _, p := range list {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name, err)
		}
		out[p.Name] = p
	}
	return out, nil
}

// LoadPreset loads a preset by id. Files in the presets directory take
// precedence over builtins.
func (m *Manager) LoadPreset(name string) (*engine.Preset, error) {
	id := presetID(name)
	if id == "" {
		return nil, ErrPresetNotFound
	}

	m.mu.RLock()
	// Check cache first
	if preset, exists := m.presets[id]; exists {
		m.mu.RUnlock()
		return preset, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if preset, exists := m.presets[id]; exists {
		return preset, nil
	}

	preset, err := m.readPresetFile(id)
	switch {
	case err == nil:
	case errors.Is(err, ErrPresetNotFound):
		builtin, ok := m.builtins[id]
		if !ok {
			return nil, err
		}
		preset = builtin
	default:
		return nil, err
	}

	m.presets[id] = preset
	return preset, nil
}

// readPresetFile parses <dir>/<id>.{yaml,yml,json}
func (m *Manager) readPresetFile(id string) (*engine.Preset, error) {
	if m.presetDir == "" {
		return nil, ErrPresetNotFound
	}

	for _, ext := range extensions {
		preset, err := ParsePresetFile(filepath.Join(m.presetDir, id+ext))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		return preset, err
	}
	return nil, ErrPresetNotFound
}

// ParsePresetFile reads and validates a single preset file. JSON is used for
// .json files and YAML for everything else. A missing name defaults to the
// preset id derived from the file name.
func ParsePresetFile(path string) (*engine.Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}

	var preset engine.Preset
	if strings.EqualFold(filepath.Ext(path), ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&preset)
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(&preset); errors.Is(err, io.EOF) {
			err = nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse preset %s: %w", filepath.Base(path), err)
	}
	if preset.Name == "" {
		preset.Name = presetID(filepath.Base(path))
	}
	if err := preset.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPreset, err)
	}
	return &preset, nil
}

// ListPresets returns every available preset sorted by id
func (m *Manager) ListPresets() ([]*service.PresetInfo, error) {
	files := map[string]string{}
	if m.presetDir != "" {
		entries, err := os.ReadDir(m.presetDir)
		if err != nil {
			return nil, fmt.Errorf("failed to read presets directory: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !hasPresetExt(entry.Name()) {
				continue
			}
			id := presetID(entry.Name())
			if _, seen := files[id]; !seen {
				files[id] = entry.Name()
			}
		}
	}

	ids := make([]string, 0, len(files)+len(m.builtins))
	for id := range files {
		ids = append(ids, id)
	}
	for id := range m.builtins {
		if _, overridden := files[id]; !overridden {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	presets := make([]*service.PresetInfo, 0, len(ids))
	for _, id := range ids {
		preset, err := m.LoadPreset(id)
		if err != nil {
			// Skip invalid presets
			continue
		}
		presets = append(presets, &service.PresetInfo{
			Filename:          files[id],
			PresetID:          id, // This is the identifier to use for session creation
			Name:              preset.Name,
			Description:       preset.Description,
			PebblesCount:      preset.PebblesCount,
			MaxPebblesPerTurn: preset.MaxPebblesPerTurn,
			Difficulty:        preset.Difficulty,
			Builtin:           files[id] == "",
		})
	}
	return presets, nil
}

// GetDefault returns the default preset
func (m *Manager) GetDefault() *engine.Preset {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultPreset
}

// SetDefault sets the default preset by id
func (m *Manager) SetDefault(name string) error {
	preset, err := m.LoadPreset(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultID = presetID(name)
	m.defaultPreset = preset
	return nil
}

// RefreshCache drops cached presets so edited files are read again
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.presets = make(map[string]*engine.Preset)
	m.mu.Unlock()

	return m.loadDefaultPreset()
}

func (m *Manager) loadDefaultPreset() error {
	m.mu.RLock()
	id := m.defaultID
	m.mu.RUnlock()

	preset, err := m.LoadPreset(id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.defaultPreset = preset
	m.mu.Unlock()
	return nil
}

// SavePreset writes a preset to the presets directory as YAML
func (m *Manager) SavePreset(preset *engine.Preset) error {
	if err := preset.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPreset, err)
	}
	if m.presetDir == "" {
		return fmt.Errorf("%w: %w", ErrNoPresetDir, engine.ErrValidation)
	}

	id := presetID(preset.Name)
	if id == "" || strings.ContainsAny(id, `/\`) || id == ".." {
		return fmt.Errorf("%w: %w: bad preset name %q", ErrInvalidPreset, engine.ErrValidation, preset.Name)
	}

	data, err := yaml.Marshal(preset)
	if err != nil {
		return fmt.Errorf("failed to marshal preset: %w", err)
	}

	path := filepath.Join(m.presetDir, id+".yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write preset file: %w", err)
	}

	// Update cache
	m.mu.Lock()
	m.presets[id] = preset
	m.mu.Unlock()

	return nil
}

// presetID strips a known extension and normalizes case
func presetID(name string) string {
	name = strings.TrimSpace(name)
	for _, ext := range extensions {
		if strings.HasSuffix(strings.ToLower(name), ext) {
			name = name[:len(name)-len(ext)]
			break
		}
	}
	return strings.ToLower(name)
}

func hasPresetExt(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}
