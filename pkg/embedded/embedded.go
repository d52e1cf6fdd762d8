// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）和 mobile/embed.go。
// 本包按路径前缀把 "assets/" 和 "data/" 分派到对应的文件系统。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotInitialized Init 之前访问资源
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

var (
	mu       sync.RWMutex
	assetsFS fs.FS
	dataFS   fs.FS
)

// Init 设置 assets/ 和 data/ 对应的文件系统
// 桌面端和移动端传入 embed.FS，测试可以传入 fstest.MapFS
func Init(assets, data fs.FS) {
	mu.Lock()
	defer mu.Unlock()
	assetsFS = assets
	dataFS = data
}

// Reset 清除初始化状态（测试使用）
func Reset() {
	Init(nil, nil)
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	mu.RLock()
	defer mu.RUnlock()
	return assetsFS != nil || dataFS != nil
}

// resolve 标准化路径并选择对应的文件系统
// 路径必须以 "assets/" 或 "data/" 开头
func resolve(path string) (fs.FS, string, error) {
	mu.RLock()
	assets, data := assetsFS, dataFS
	mu.RUnlock()

	if assets == nil && data == nil {
		return nil, "", ErrNotInitialized
	}

	// embed.FS 使用正斜杠且不接受 "./" 前缀
	path = strings.TrimPrefix(filepath.ToSlash(path), "./")

	var fsys fs.FS
	switch {
	case strings.HasPrefix(path, "assets/"):
		fsys = assets
	case strings.HasPrefix(path, "data/"):
		fsys = data
	default:
		return nil, "", fmt.Errorf("unknown resource path prefix: %s (must start with 'assets/' or 'data/')", path)
	}
	if fsys == nil {
		return nil, "", fmt.Errorf("%s: %w", path, fs.ErrNotExist)
	}
	return fsys, path, nil
}

// Open 打开嵌入的文件
func Open(path string) (fs.File, error) {
	fsys, name, err := resolve(path)
	if err != nil {
		return nil, err
	}
	return fsys.Open(name)
}

// ReadFile 读取嵌入的文件内容
func ReadFile(path string) ([]byte, error) {
	fsys, name, err := resolve(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(fsys, name)
}

// Exists 检查文件是否存在（目录不算）
func Exists(path string) bool {
	fsys, name, err := resolve(path)
	if err != nil {
		return false
	}
	info, err := fs.Stat(fsys, name)
	return err == nil && !info.IsDir()
}
