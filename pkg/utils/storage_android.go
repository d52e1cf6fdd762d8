//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// androidDataRoot 是 Android 应用私有数据目录的根
const androidDataRoot = "/data/data"

// EnsureStorageDir 确保 gdata 使用的 saves 目录存在并可写
// gdata 在 Android 上不会预先创建子目录，需要在 gdata.Open 之前调用。
func EnsureStorageDir() error {
	root := androidAppDir()
	if root == "" {
		return fmt.Errorf("cannot resolve android package name")
	}

	savesDir := filepath.Join(root, "saves")
	if err := os.MkdirAll(savesDir, 0o755); err != nil {
		return fmt.Errorf("create saves directory %s: %w", savesDir, err)
	}

	marker := filepath.Join(savesDir, ".writable")
	if err := os.WriteFile(marker, nil, 0o644); err != nil {
		return fmt.Errorf("saves directory %s is not writable: %w", savesDir, err)
	}
	return os.Remove(marker)
}

// androidAppDir 返回 /data/data/{package}，无法识别包名时返回空字符串
func androidAppDir() string {
	cmdline, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return ""
	}
	// cmdline 以 NUL 分隔，第一个字段就是包名
	name, _, _ := bytes.Cut(cmdline, []byte{0})
	name = bytes.TrimSpace(name)
	if len(name) == 0 {
		return ""
	}
	return filepath.Join(androidDataRoot, string(name))
}
