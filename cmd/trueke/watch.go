package main

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// fileWatcher reports writes to a single file. It watches the parent
// directory so editors that replace the file are still seen.
type fileWatcher struct {
	w       *fsnotify.Watcher
	path    string
	log     *zap.Logger
	changed chan struct{}
	done    chan struct{}
}

type fileChangedMsg struct{}

func watchFile(path string, log *zap.Logger) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	fw := &fileWatcher{
		w:       w,
		path:    abs,
		log:     log,
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go fw.run()
	return fw, nil
}

func (fw *fileWatcher) run() {
	defer close(fw.done)
	defer close(fw.changed)
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != fw.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			fw.log.Debug("data file changed", zap.String("path", ev.Name), zap.Stringer("op", ev.Op))
			// Coalesce bursts into one pending notification.
			select {
			case fw.changed <- struct{}{}:
			default:
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			fw.log.Warn("watch error", zap.Error(err))
		}
	}
}

// wait returns a command that delivers the next change notification.
func (fw *fileWatcher) wait() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-fw.changed; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

func (fw *fileWatcher) Close() error {
	err := fw.w.Close()
	<-fw.done
	return err
}
