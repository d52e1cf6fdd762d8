// Package utils 提供游戏开发中常用的工具函数
//
// coordinates.go 提供坐标转换工具，用于把指针事件的客户端坐标映射到画布像素坐标。
//
// # 坐标系统概述
//
//   - **客户端坐标**：指针事件上报的坐标（ebiten 逻辑屏幕坐标，或终端的字符格坐标）
//   - **画布坐标**：游戏逻辑使用的像素坐标，原点在画布左上角
//
// 画布在客户端中的显示区域（Rect）与画布逻辑尺寸不一定相同，
// 转换时按"逻辑尺寸 / 显示尺寸"的比例缩放：
//
//	canvasX = (clientX - rect.X) * (canvasWidth / rect.Width)
//	canvasY = (clientY - rect.Y) * (canvasHeight / rect.Height)
package utils

import "math"

// Rect 轴对齐矩形（左上角 + 宽高）
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Contains 检查点是否在矩形内（左闭右开）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Center 返回矩形中心点
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// ClientToCanvas 将客户端坐标转换为画布像素坐标
//
// 参数：
//   - clientX, clientY: 指针事件坐标
//   - rect: 画布在客户端坐标系中的显示区域
//   - canvasWidth, canvasHeight: 画布逻辑尺寸
//
// 返回：
//   - 画布坐标；显示区域宽或高为 0 时返回相对偏移（比例按 1 处理）
func ClientToCanvas(clientX, clientY float64, rect Rect, canvasWidth, canvasHeight float64) (float64, float64) {
	scaleX, scaleY := 1.0, 1.0
	if rect.Width > 0 {
		scaleX = canvasWidth / rect.Width
	}
	if rect.Height > 0 {
		scaleY = canvasHeight / rect.Height
	}
	return (clientX - rect.X) * scaleX, (clientY - rect.Y) * scaleY
}

// CanvasToClient 是 ClientToCanvas 的逆变换（用于终端前端把画布坐标映射回字符格）
func CanvasToClient(canvasX, canvasY float64, rect Rect, canvasWidth, canvasHeight float64) (float64, float64) {
	scaleX, scaleY := 1.0, 1.0
	if canvasWidth > 0 {
		scaleX = rect.Width / canvasWidth
	}
	if canvasHeight > 0 {
		scaleY = rect.Height / canvasHeight
	}
	return rect.X + canvasX*scaleX, rect.Y + canvasY*scaleY
}

// Distance 计算两点之间的欧氏距离
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x1-x2, y1-y2)
}
