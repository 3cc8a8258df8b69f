// Package importer watches a drop-folder for plain-text shopping lists.
// Files dropped there are ingested line by line and deleted.
package importer

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounceDelay is how long a file must sit quiet before it is ingested, so
// partially-written files aren't picked up mid-copy.
const debounceDelay = 500 * time.Millisecond

// Line is one parsed line of an imported list.
type Line struct {
	Label    string
	Quantity int
}

// Importer watches a folder and hands parsed files to the apply callback.
type Importer struct {
	watcher  *fsnotify.Watcher
	dir      string
	apply    func(lines []Line)
	log      *zap.Logger
	debounce map[string]*time.Timer
	mu       sync.Mutex
	running  bool
}

// New creates an Importer over dir. The apply callback receives the parsed
// lines of each ingested file; it is called from a watcher goroutine.
func New(dir string, apply func(lines []Line), logger *zap.Logger) (*Importer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	return &Importer{
		watcher:  watcher,
		dir:      dir,
		apply:    apply,
		log:      logger,
		debounce: make(map[string]*time.Timer),
	}, nil
}

// Start creates the folder if needed, ingests any files already present, and
// begins watching for new ones.
func (im *Importer) Start() error {
	im.mu.Lock()
	if im.running {
		im.mu.Unlock()
		return nil
	}
	im.running = true
	im.mu.Unlock()

	if err := os.MkdirAll(im.dir, 0o755); err != nil {
		return fmt.Errorf("creating import dir: %w", err)
	}
	if err := im.watcher.Add(im.dir); err != nil {
		return fmt.Errorf("watching import dir: %w", err)
	}

	go im.handleEvents()

	// Process files that were dropped while the app wasn't running.
	entries, err := os.ReadDir(im.dir)
	if err != nil {
		return fmt.Errorf("listing import dir: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() && isListFile(entry.Name()) {
			im.scheduleIngest(filepath.Join(im.dir, entry.Name()))
		}
	}

	return nil
}

// Stop stops watching and cancels pending ingests.
func (im *Importer) Stop() {
	im.mu.Lock()
	defer im.mu.Unlock()

	im.running = false
	for _, timer := range im.debounce {
		timer.Stop()
	}
	im.debounce = make(map[string]*time.Timer)
	im.watcher.Close()
}

func (im *Importer) handleEvents() {
	for {
		select {
		case event, ok := <-im.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !isListFile(event.Name) {
				continue
			}
			im.scheduleIngest(event.Name)

		case err, ok := <-im.watcher.Errors:
			if !ok {
				return
			}
			im.log.Warn("import watcher error", zap.Error(err))
		}
	}
}

// scheduleIngest (re)arms the debounce timer for a path.
func (im *Importer) scheduleIngest(path string) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if !im.running {
		return
	}
	if timer, ok := im.debounce[path]; ok {
		timer.Stop()
	}
	im.debounce[path] = time.AfterFunc(debounceDelay, func() {
		im.mu.Lock()
		delete(im.debounce, path)
		running := im.running
		im.mu.Unlock()
		if !running {
			return
		}
		im.ingestFile(path)
	})
}

func (im *Importer) ingestFile(path string) {
	lines, err := ParseFile(path)
	if err != nil {
		im.log.Warn("failed to ingest import file", zap.String("path", path), zap.Error(err))
		return
	}

	if len(lines) > 0 {
		im.apply(lines)
	}

	if err := os.Remove(path); err != nil {
		im.log.Warn("failed to remove ingested file", zap.String("path", path), zap.Error(err))
	}
	im.log.Info("ingested import file", zap.String("path", path), zap.Int("lines", len(lines)))
}

// ParseFile reads a list file and returns its parsed lines.
func ParseFile(path string) ([]Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	var lines []Line
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line, ok := ParseLine(scanner.Text()); ok {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

// ParseLine parses one line of an imported list: an optional leading quantity
// followed by the label, e.g. "2 milk" or just "bread". Blank lines and
// #-comments are skipped.
func ParseLine(s string) (Line, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "#") {
		return Line{}, false
	}

	fields := strings.Fields(s)
	if qty, err := strconv.Atoi(fields[0]); err == nil && qty >= 1 && len(fields) > 1 {
		return Line{Label: strings.Join(fields[1:], " "), Quantity: qty}, true
	}
	return Line{Label: s, Quantity: 1}, true
}

func isListFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".txt")
}
