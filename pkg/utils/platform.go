//go:build !mobile

package utils

import "os"

// IsMobile 是否按触屏设备显示提示文字
// 桌面端默认 false，设置 MEATPOP_MOBILE_EMULATE=1 可以在桌面上模拟
func IsMobile() bool {
	return os.Getenv("MEATPOP_MOBILE_EMULATE") == "1"
}
