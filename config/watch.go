package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher 监听配置文件变化，变化后重新加载并回调。
// 监听的是所在目录：编辑器常用 rename 方式保存，直接监听文件会丢事件。
type Watcher struct {
	Path     string
	Cooldown time.Duration // 两次回调的最小间隔，合并连续写入

	fw *fsnotify.Watcher
}

// NewWatcher 创建并立即注册监听，返回后即可保证后续写入能被捕获。
func NewWatcher(path string, cooldown time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch config dir: %w", err)
	}
	if cooldown <= 0 {
		cooldown = 200 * time.Millisecond
	}
	return &Watcher{Path: abs, Cooldown: cooldown, fw: fw}, nil
}

// Run 阻塞直到 ctx 结束。加载失败的变更交给 onError（可为 nil），不会触发 onUpdate。
func (w *Watcher) Run(ctx context.Context, onUpdate func(AppConfig), onError func(error)) error {
	defer w.fw.Close()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.Path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if pending == nil {
				pending = time.After(w.Cooldown)
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			if onError != nil {
				onError(err)
			}
		case <-pending:
			pending = nil
			cfg, err := LoadWithEnvOverrides(w.Path)
			if err != nil {
				if onError != nil {
					onError(err)
				}
				continue
			}
			if onUpdate != nil {
				onUpdate(cfg)
			}
		}
	}
}
