package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultDraftDebounce = 500 * time.Millisecond
	DefaultStatusRevert  = 3 * time.Second
	DefaultHTTPTimeout   = 30 * time.Second
)

type GlobalConfig struct {
	Store StoreConfig `json:"store,omitempty"`

	// DraftDebounceMs is the quiet period before the draft is persisted.
	DraftDebounceMs int `json:"draftDebounceMs,omitempty"`
	// StatusRevertMs is how long a transient status stays before reverting to "Edit".
	StatusRevertMs int `json:"statusRevertMs,omitempty"`
	// HTTPTimeoutMs bounds a single endpoint post.
	HTTPTimeoutMs int `json:"httpTimeoutMs,omitempty"`

	LogLevel string `json:"logLevel,omitempty"`
	// LogFile receives TUI logs (the terminal is owned by the UI). Defaults to
	// <config dir>/quickcap.log.
	LogFile string `json:"logFile,omitempty"`

	Inbox InboxConfig `json:"inbox,omitempty"`
}

type StoreConfig struct {
	// Backend is one of: sqlite|redis|memory (default sqlite).
	Backend string `json:"backend,omitempty"`
	// Path is the SQLite file (default <config dir>/quickcap.sqlite).
	Path  string      `json:"path,omitempty"`
	Redis RedisConfig `json:"redis,omitempty"`
}

type RedisConfig struct {
	Addr     string `json:"addr,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db,omitempty"`
	// Prefix namespaces every key (default "quickcap:").
	Prefix string `json:"prefix,omitempty"`
}

// InboxConfig configures `quickcap serve`, the receiving side of endpoint mode.
type InboxConfig struct {
	Addr string `json:"addr,omitempty"`
	// Dir is the daily-notes directory received captures are appended to.
	Dir      string `json:"dir,omitempty"`
	AuthType string `json:"authType,omitempty"`
	Token    string `json:"token,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

func (c *GlobalConfig) DraftDebounce() time.Duration {
	if c == nil || c.DraftDebounceMs <= 0 {
		return DefaultDraftDebounce
	}
	return time.Duration(c.DraftDebounceMs) * time.Millisecond
}

func (c *GlobalConfig) StatusRevert() time.Duration {
	if c == nil || c.StatusRevertMs <= 0 {
		return DefaultStatusRevert
	}
	return time.Duration(c.StatusRevertMs) * time.Millisecond
}

func (c *GlobalConfig) HTTPTimeout() time.Duration {
	if c == nil || c.HTTPTimeoutMs <= 0 {
		return DefaultHTTPTimeout
	}
	return time.Duration(c.HTTPTimeoutMs) * time.Millisecond
}

func (c *GlobalConfig) LogPath() (string, error) {
	if c != nil && strings.TrimSpace(c.LogFile) != "" {
		return strings.TrimSpace(c.LogFile), nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "quickcap.log"), nil
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.quickcap).
	if v := strings.TrimSpace(os.Getenv("QUICKCAP_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".quickcap"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AtomicWriteFile writes b to path through a temp file in dir and a rename, so readers
// never observe a half-written file.
func AtomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func SaveConfig(cfg *GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	// Keep a copy of the previous config so an accidental overwrite is recoverable.
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = AtomicWriteFile(dir, "config.json.bak.*.tmp", path+".bak", prev, 0o600)
	}

	// 0600: the config can carry inbox and redis credentials.
	return AtomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}
