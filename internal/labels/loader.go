package labels

import (
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML label sources file:
//
//	replace_defaults: false
//	sources:
//	  scam_addresses:
//	    - https://example.org/scams.txt
type FileConfig struct {
	// ReplaceDefaults drops DefaultSources instead of extending them.
	ReplaceDefaults bool    `yaml:"replace_defaults"`
	Sources         Sources `yaml:"sources"`
}

// Resolve returns the sources the file asks for, on top of base unless ReplaceDefaults is set.
func (c *FileConfig) Resolve(base Sources) Sources {
	if c == nil {
		return base
	}
	if c.ReplaceDefaults {
		return Sources{}.Extend(c.Sources)
	}
	return base.Extend(c.Sources)
}

// Loader reads the label sources file and watches it for changes.
type Loader struct {
	logger   *logrus.Logger
	path     string
	mu       sync.RWMutex
	current  *FileConfig
	onChange []func(*FileConfig)
}

// NewLoader creates a Loader and performs the initial load.
func NewLoader(logger *logrus.Logger, path string) (*Loader, error) {
	l := &Loader{logger: logger, path: path}
	cfg, err := l.load()
	if err != nil {
		return nil, err
	}
	l.current = cfg
	return l, nil
}

// Config returns the latest successfully loaded file.
func (l *Loader) Config() *FileConfig {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// OnChange registers a callback invoked after every successful reload.
func (l *Loader) OnChange(fn func(*FileConfig)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// Watch starts a goroutine that reloads the file whenever it is written or recreated. A file that fails
// to parse is logged and the previous config stays active. Call stop to release the watcher.
func (l *Loader) Watch() (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("label sources watcher: %w", err)
	}
	err = w.Add(l.path)
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("label sources watcher add %s: %w", l.path, err)
	}

	done := make(chan struct{})
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				_, err := l.Reload()
				if err != nil {
					l.logger.WithField("path", l.path).WithError(err).Error("Failed to reload label sources, keeping the previous ones")
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				l.logger.WithError(err).Warn("Label sources watcher error")
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }, nil
}

// Reload forces an immediate re-read of the file and notifies the OnChange callbacks.
func (l *Loader) Reload() (*FileConfig, error) {
	cfg, err := l.load()
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.current = cfg
	callbacks := slices.Clone(l.onChange)
	l.mu.Unlock()

	l.logger.WithFields(logrus.Fields{
		"path": l.path,
		"urls": cfg.Sources.Count(),
	}).Info("Label sources loaded")
	for fn := range slices.Values(callbacks) {
		fn(cfg)
	}
	return cfg, nil
}

func (l *Loader) load() (*FileConfig, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read label sources %s: %w", l.path, err)
	}

	var cfg FileConfig
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse label sources %s: %w", l.path, err)
	}
	if cfg.Sources == nil {
		cfg.Sources = Sources{}
	}
	return &cfg, nil
}
