//go:build !android

package utils

// EnsureStorageDir 桌面端和 iOS 由 gdata 自己创建存储目录
func EnsureStorageDir() error {
	return nil
}
