package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrUnknownKey is returned for keys outside the settings registry
var ErrUnknownKey = errors.New("config: unknown key")

// Persistence location inside the gdata store
const (
	settingsObject   = "settings"
	settingsProperty = "duck"
)

// Store is the flat key/value settings bag
// A nil gdata manager keeps settings in memory only
type Store struct {
	mu      sync.RWMutex
	values  map[string]string
	manager *gdata.Manager
	logger  *zap.Logger

	subMu  sync.Mutex
	subs   map[int]func(Settings)
	nextID int
}

// Manager is the gdata store backing persistence
type Manager = gdata.Manager

// OpenPersistence opens the per-user data directory for appName
func OpenPersistence(appName string) (*gdata.Manager, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open settings storage: %w", err)
	}
	return m, nil
}

// NewStore creates a store and loads persisted values
// A failed load is logged and the store starts from defaults
func NewStore(manager *gdata.Manager, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		values:  make(map[string]string),
		manager: manager,
		logger:  logger.Named("config"),
		subs:    make(map[int]func(Settings)),
	}
	if err := s.load(); err != nil {
		s.logger.Warn("failed to load saved settings, using defaults", zap.Error(err))
	}
	return s
}

func (s *Store) load() error {
	if s.manager == nil || !s.manager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}
	data, err := s.manager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	values, err := decode(data)
	if err != nil {
		return err
	}
	s.merge(values)
	return nil
}

// Get returns the raw value for key, or its default when unset
func (s *Store) Get(key string) (string, error) {
	def, ok := registry[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[key]; ok {
		return v, nil
	}
	return def.def, nil
}

// Set stores a raw value; typed readers validate it later
func (s *Store) Set(key, value string) error {
	return s.Apply(map[string]string{key: value})
}

// Apply stores several values and notifies subscribers once
// Unknown keys fail the whole batch
func (s *Store) Apply(values map[string]string) error {
	for k := range values {
		if _, ok := registry[k]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownKey, k)
		}
	}
	if len(values) == 0 {
		return nil
	}
	s.merge(values)
	s.notify()
	return nil
}

func (s *Store) merge(values map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range values {
		if _, ok := registry[k]; !ok {
			s.logger.Warn("ignoring unknown setting", zap.String("key", k))
			continue
		}
		s.values[k] = strings.TrimSpace(v)
	}
}

// Persist saves explicitly set values; memory-only stores succeed silently
func (s *Store) Persist() error {
	if s.manager == nil {
		return nil
	}
	s.mu.RLock()
	data, err := yaml.Marshal(s.values)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := s.manager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	s.logger.Debug("settings saved", zap.Int("keys", len(s.values)))
	return nil
}

// Settings returns a typed snapshot
func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return resolve(s.values)
}

// Keys returns every known key in sorted order
func Keys() []string {
	return slices.Sorted(maps.Keys(registry))
}

// OnChange subscribes fn to settings changes; the returned func unsubscribes
// fn runs on the goroutine that changed the store
func (s *Store) OnChange(fn func(Settings)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify() {
	snapshot := s.Settings()
	s.subMu.Lock()
	fns := make([]func(Settings), 0, len(s.subs))
	for _, id := range slices.Sorted(maps.Keys(s.subs)) {
		fns = append(fns, s.subs[id])
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(snapshot)
	}
}

// LoadFile applies a YAML file of key: value pairs
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	values, err := decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	known := make(map[string]string, len(values))
	for k, v := range values {
		if _, ok := registry[k]; !ok {
			s.logger.Warn("ignoring unknown setting", zap.String("key", k), zap.String("file", path))
			continue
		}
		known[k] = v
	}
	return s.Apply(known)
}

// ApplyEnv applies DESKDUCK_* overrides from environ (os.Environ format)
func (s *Store) ApplyEnv(environ []string) error {
	byName := make(map[string]string, len(registry))
	for k := range registry {
		byName[EnvName(k)] = k
	}
	values := make(map[string]string)
	for _, kv := range environ {
		name, v, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		if key, ok := byName[name]; ok {
			values[key] = v
		}
	}
	return s.Apply(values)
}

// decode reads a flat YAML mapping, stringifying scalar values
func decode(data []byte) (map[string]string, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	values := make(map[string]string, len(raw))
	for k, v := range raw {
		switch v := v.(type) {
		case nil:
		case map[string]any, []any:
			return nil, fmt.Errorf("setting %q: nested values are not supported", k)
		case float64:
			values[k] = formatFloat(v)
		default:
			values[k] = fmt.Sprint(v)
		}
	}
	return values, nil
}
