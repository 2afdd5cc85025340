package configwatcher

import (
	"path/filepath"
	"sync"
	"time"

	"post_place_backend/internal/config"
	"post_place_backend/pkg/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounceDelay = time.Second

// ConfigReloader 配置重载成功后的回调
type ConfigReloader func(cfg *config.Config)

// WatchConfig 监听配置目录，写入事件防抖后重载并通知回调。
// 编辑器保存通常触发多个事件，防抖避免重复加载半写状态的文件。
func WatchConfig(configPath string, reloader ConfigReloader) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Log.Error("创建配置监听失败", zap.Error(err))
		return
	}
	defer watcher.Close()

	absPath, err := filepath.Abs(configPath)
	if err == nil {
		err = watcher.Add(absPath)
	}
	if err != nil {
		logger.Log.Error("监听配置文件失败", zap.String("path", configPath), zap.Error(err))
		return
	}

	var mu sync.Mutex
	var pending *time.Timer

	reload := func() {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			logger.Log.Error("重载配置失败", zap.Error(err))
			return
		}
		logger.Log.Info("配置已重载", zap.String("path", configPath))
		reloader(cfg)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			mu.Lock()
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(debounceDelay, reload)
			mu.Unlock()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Log.Error("配置监听错误", zap.Error(err))
		}
	}
}
