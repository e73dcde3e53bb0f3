package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// Prefs is one named key-value preference namespace persisted as a JSON
// file. Each namespace has its own file so clearing one (say the credential
// vault) never touches another (the account registry).
//
// Every mutation persists synchronously; a process crash loses at most the
// write in flight.
type Prefs struct {
	path string

	mu     sync.RWMutex
	values map[string]string
}

// NewPrefs loads (or lazily creates) the namespace file <dir>/<name>.json.
func NewPrefs(dir, name string) (*Prefs, error) {
	p := &Prefs{
		path:   filepath.Join(dir, name+".json"),
		values: make(map[string]string),
	}
	if err := p.load(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Prefs) load() error {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read preferences file: %w", err)
	}

	var values map[string]string
	if err = json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("decode preferences file: %w", err)
	}
	if values == nil {
		values = make(map[string]string)
	}

	p.values = values
	return nil
}

// persist is called with p.mu held.
func (p *Prefs) persist() error {
	dir := filepath.Dir(p.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create preferences dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(p.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	// Write-then-rename so a crash mid-write never leaves a torn file.
	tmp := p.path + ".tmp"
	if err = os.WriteFile(tmp, payload, 0o600); err != nil {
		return fmt.Errorf("write preferences file: %w", err)
	}
	if err = os.Rename(tmp, p.path); err != nil {
		return fmt.Errorf("replace preferences file: %w", err)
	}

	return nil
}

// GetString returns the value for key, or [ErrPrefKeyNotFound].
func (p *Prefs) GetString(key string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	v, ok := p.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrPrefKeyNotFound, key)
	}
	return v, nil
}

// PutString stores key=value and persists the namespace.
func (p *Prefs) PutString(key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.values[key] = value
	return p.persist()
}

func (p *Prefs) GetBool(key string) (bool, error) {
	raw, err := p.GetString(key)
	if err != nil {
		return false, err
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("preference %s is not a bool: %w", key, err)
	}
	return v, nil
}

func (p *Prefs) PutBool(key string, value bool) error {
	return p.PutString(key, strconv.FormatBool(value))
}

func (p *Prefs) GetInt64(key string) (int64, error) {
	raw, err := p.GetString(key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("preference %s is not an int64: %w", key, err)
	}
	return v, nil
}

func (p *Prefs) PutInt64(key string, value int64) error {
	return p.PutString(key, strconv.FormatInt(value, 10))
}

// Remove deletes key if present and persists the namespace.
func (p *Prefs) Remove(key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.values[key]; !ok {
		return nil
	}
	delete(p.values, key)
	return p.persist()
}

// Clear drops every key in the namespace and persists the now-empty file.
func (p *Prefs) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.values = make(map[string]string)
	return p.persist()
}

// Keys returns a snapshot of all keys in the namespace.
func (p *Prefs) Keys() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of stored keys.
func (p *Prefs) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.values)
}
