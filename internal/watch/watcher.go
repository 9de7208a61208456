// Package watch monitors stylesheet files and reruns checks when they
// change. Changes are debounced so editor save bursts trigger a single
// callback.
package watch

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher monitors file system changes and triggers callbacks
type FileWatcher struct {
	watcher    *fsnotify.Watcher
	debouncer  *Debouncer
	roots      []string
	extensions []string
	ignored    []string
	onChange   func([]string) error
	stopChan   chan struct{}
	wg         sync.WaitGroup
}

// Options configures a FileWatcher
type Options struct {
	// Roots are the files or directories to watch. Directories are
	// watched recursively.
	Roots []string

	// Extensions filters events to files with these extensions
	// (e.g. ".scss"). Empty matches everything.
	Extensions []string

	// Ignored are glob patterns matched against base names
	Ignored []string

	// Debounce is the quiet period before the callback fires
	Debounce time.Duration
}

// NewFileWatcher creates a new file watcher instance
func NewFileWatcher(opts Options, onChange func([]string) error) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	debounce := opts.Debounce
	if debounce == 0 {
		debounce = 100 * time.Millisecond
	}

	fw := &FileWatcher{
		watcher:    watcher,
		debouncer:  NewDebouncer(debounce),
		roots:      opts.Roots,
		extensions: opts.Extensions,
		ignored:    opts.Ignored,
		onChange:   onChange,
		stopChan:   make(chan struct{}),
	}

	fw.debouncer.SetCallback(func(files []string) {
		if err := fw.onChange(files); err != nil {
			log.Printf("Error handling file changes: %v", err)
		}
	})

	return fw, nil
}

// Start begins watching the file system
func (fw *FileWatcher) Start() error {
	dirs, err := fw.findDirectories()
	if err != nil {
		return fmt.Errorf("failed to find directories: %w", err)
	}

	for _, dir := range dirs {
		if err := fw.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
		log.Printf("[Watch] Watching directory: %s", dir)
	}

	fw.wg.Add(1)
	go fw.watch()

	return nil
}

// Stop stops the file watcher
func (fw *FileWatcher) Stop() error {
	select {
	case <-fw.stopChan:
		// Already stopped
		return nil
	default:
		close(fw.stopChan)
	}

	fw.wg.Wait()
	fw.debouncer.Stop()
	return fw.watcher.Close()
}

// watch is the main event loop
func (fw *FileWatcher) watch() {
	defer fw.wg.Done()

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if fw.shouldIgnore(event.Name) {
				continue
			}

			// Only handle Write and Create events
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				if fw.matchesExtension(event.Name) {
					log.Printf("[Watch] File changed: %s", event.Name)
					fw.debouncer.Add(event.Name)
				}
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[Watch] Error: %v", err)

		case <-fw.stopChan:
			return
		}
	}
}

// findDirectories expands the configured roots into the set of directories
// to register with fsnotify. fsnotify does not watch recursively, so
// directory roots are walked.
func (fw *FileWatcher) findDirectories() ([]string, error) {
	roots := fw.roots
	if len(roots) == 0 {
		roots = []string{"."}
	}

	seen := make(map[string]struct{})
	dirs := make([]string, 0)

	add := func(dir string) {
		if _, ok := seen[dir]; !ok {
			seen[dir] = struct{}{}
			dirs = append(dirs, dir)
		}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			add(filepath.Dir(root))
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if fw.shouldIgnore(path) && path != root {
				return filepath.SkipDir
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return dirs, nil
}

// shouldIgnore checks if a file path should be ignored
func (fw *FileWatcher) shouldIgnore(path string) bool {
	baseName := filepath.Base(path)

	// Hidden files and directories
	if strings.HasPrefix(baseName, ".") && baseName != "." {
		return true
	}

	for _, pattern := range fw.ignored {
		if matched, _ := filepath.Match(pattern, baseName); matched {
			return true
		}
	}

	return false
}

// matchesExtension checks if a file carries one of the watched extensions
func (fw *FileWatcher) matchesExtension(path string) bool {
	if len(fw.extensions) == 0 {
		return true
	}

	ext := filepath.Ext(path)
	for _, want := range fw.extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}

	return false
}

// Debouncer collects file changes and triggers callbacks after a delay
type Debouncer struct {
	duration time.Duration
	timer    *time.Timer
	files    map[string]struct{}
	mutex    sync.Mutex
	callback func([]string)
	stopChan chan struct{}
}

// NewDebouncer creates a new debouncer instance
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{
		duration: duration,
		files:    make(map[string]struct{}),
		stopChan: make(chan struct{}),
	}
}

// Add adds a file to the debouncer
func (d *Debouncer) Add(file string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.files[file] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.duration, func() {
		d.flush()
	})
}

// flush triggers the callback with accumulated files
func (d *Debouncer) flush() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if len(d.files) == 0 {
		return
	}

	files := make([]string, 0, len(d.files))
	for file := range d.files {
		files = append(files, file)
	}

	d.files = make(map[string]struct{})

	if d.callback != nil {
		d.callback(files)
	}
}

// SetCallback sets the callback function
func (d *Debouncer) SetCallback(callback func([]string)) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.callback = callback
}

// Stop stops the debouncer
func (d *Debouncer) Stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	select {
	case <-d.stopChan:
		// Already stopped
	default:
		close(d.stopChan)
	}
}
