package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/ashwinyue/osint-framework/internal/logger"
)

const defaultReloadDebounce = 200 * time.Millisecond

// Provider 持有当前目录快照，支持手动重载和文件监听
type Provider struct {
	logger   *zap.Logger
	loader   *Loader
	path     string
	extraDir string

	current    atomic.Pointer[Catalog]
	generation atomic.Uint64

	reloadMu sync.Mutex

	subsMu sync.Mutex
	subs   []func(*Catalog)
}

// NewProvider 加载初始快照
func NewProvider(loader *Loader, path, extraDir string, l *zap.Logger) *Provider {
	p := &Provider{
		logger:   logger.OrNop(l).Named("catalog_provider"),
		loader:   loader,
		path:     path,
		extraDir: extraDir,
	}
	p.current.Store(loader.Load(path, extraDir))
	return p
}

// Snapshot 返回当前快照，调用方不得修改
func (p *Provider) Snapshot() *Catalog {
	return p.current.Load()
}

// Generation 快照版本号，每次重载加一，在新快照生效后递增
func (p *Provider) Generation() uint64 {
	return p.generation.Load()
}

// OnReload 注册重载回调，在新快照生效后调用
func (p *Provider) OnReload(fn func(*Catalog)) {
	p.subsMu.Lock()
	p.subs = append(p.subs, fn)
	p.subsMu.Unlock()
}

// Reload 重新读取目录文件并替换快照
func (p *Provider) Reload() *Catalog {
	p.reloadMu.Lock()
	defer p.reloadMu.Unlock()

	next := p.loader.Load(p.path, p.extraDir)
	p.current.Store(next)
	p.generation.Add(1)

	p.subsMu.Lock()
	subs := slices.Clone(p.subs)
	p.subsMu.Unlock()
	for _, fn := range subs {
		fn(next)
	}
	return next
}

// Watch 监听目录文件所在目录及 extraDir，变更后去抖重载，ctx 结束时停止
func (p *Provider) Watch(ctx context.Context, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = defaultReloadDebounce
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	// 监听目录而不是文件，编辑器保存时常用 rename 替换文件
	dirs := []string{filepath.Dir(p.path)}
	if p.extraDir != "" {
		dirs = append(dirs, p.extraDir)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	go p.runWatcher(ctx, watcher, debounce)
	return nil
}

func (p *Provider) runWatcher(ctx context.Context, watcher *fsnotify.Watcher, debounce time.Duration) {
	defer watcher.Close()

	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !p.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}
			timerC = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Warn("catalog watcher error", zap.Error(err))
		case <-timerC:
			timerC = nil
			c := p.Reload()
			p.logger.Info("catalog reloaded from file change",
				zap.Int("tools", c.Len()), zap.Bool("degraded", c.Degraded))
		}
	}
}

func (p *Provider) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(event.Name)
	if name == filepath.Clean(p.path) {
		return true
	}
	return p.extraDir != "" &&
		filepath.Dir(name) == filepath.Clean(p.extraDir) &&
		strings.HasSuffix(name, ".toml")
}
