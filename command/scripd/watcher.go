// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path"
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"

	"github.com/scrip-coop/scripd/stipend"
)

const (
	FileWatcherLoggerPrefix  = "file-watcher"
	PolicyReloadLoggerPrefix = "policy-reload"
)

// WatcherChannel - events from the configuration file watcher
type WatcherChannel struct {
	change chan struct{}
	remove chan struct{}
}

type fileWatcher struct {
	log      *logger.L
	watcher  *fsnotify.Watcher
	channels WatcherChannel
	filePath string
}

func newFileWatcher(targetFile string, log *logger.L, channels WatcherChannel) (*fileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher error: %s", err)
		return nil, err
	}

	filePath, err := filepath.Abs(filepath.Clean(targetFile))
	if nil != err {
		log.Errorf("parse file: %s error: %s", targetFile, err)
		return nil, err
	}

	if _, err := os.Stat(filePath); nil != err {
		return nil, err
	}

	return &fileWatcher{
		log:      log,
		watcher:  watcher,
		channels: channels,
		filePath: filePath,
	}, nil
}

func (w *fileWatcher) Start() error {
	err := w.watcher.Add(w.filePath)
	if nil != err {
		w.log.Errorf("watcher add error: %s, abort", err)
		return err
	}

	go func() {
		for {
			event := <-w.watcher.Events
			w.log.Debugf("file event: %v", event)
			change := w.channels.change
			remove := w.channels.remove

			if watcherEventFileRemove(event) {
				w.log.Errorf("file: %s removed, stop", w.filePath)
				w.sendEvent(remove, "remove")
				return
			}

			if path.Base(event.Name) != path.Base(filepath.Clean(w.filePath)) {
				w.log.Debugf("file: %s not match, discard event", event.Name)
				continue
			}

			if watcherEventFileChange(event) {
				w.log.Info("sending config change event…")
				w.sendEvent(change, "change")
			}
		}
	}()

	return nil
}

func (w *fileWatcher) isChannelFull(ch chan<- struct{}) bool {
	return len(ch) == cap(ch)
}

func (w *fileWatcher) sendEvent(ch chan<- struct{}, name string) {
	if !w.isChannelFull(ch) {
		ch <- struct{}{}
	} else {
		w.log.Infof("event channel: %s full, discard event", name)
	}
}

func watcherEventFileRemove(event fsnotify.Event) bool {
	return "" == event.Name || fsnotify.Remove == event.Op&fsnotify.Remove
}

func watcherEventFileChange(event fsnotify.Event) bool {
	return fsnotify.Write == event.Op&fsnotify.Write ||
		fsnotify.Chmod == event.Op&fsnotify.Chmod
}

// startPolicyReload - re-read the configuration when it changes and
// apply the stipend policy values
//
// only the stipend policy is hot-reloadable; every other change needs
// a restart. on file removal reloading is disabled until restart.
func startPolicyReload(log *logger.L, fileName string, channels WatcherChannel) {
	go func() {
		for {
			select {
			case <-channels.change:
				options, err := getConfiguration(fileName)
				if nil != err {
					log.Errorf("failed to read configuration from: %q error: %s", fileName, err)
					continue
				}
				if err := stipend.SetPolicy(options.Stipend); nil != err {
					log.Errorf("set policy error: %s", err)
					continue
				}
				log.Infof("stipend policy applied: %+v", stipend.CurrentPolicy())

			case <-channels.remove:
				log.Warn("configuration file removed, reload disabled")
				return
			}
		}
	}()
}
