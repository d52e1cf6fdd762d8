//go:build !mobile

// Package mobile 的普通构建占位
//
// 真正的绑定代码在 mobile.go 和 embed.go 中，只在 -tags mobile 时编译，
// 这样 go build ./... 和 go test ./... 不会因为缺少 ebitenmobile 而失败。
package mobile

// Dummy 让 ebitenmobile 能识别这个包
func Dummy() {}
