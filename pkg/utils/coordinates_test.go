package utils

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestClientToCanvas(t *testing.T) {
	tests := []struct {
		name           string
		clientX        float64
		clientY        float64
		rect           Rect
		canvasW        float64
		canvasH        float64
		wantX, wantY   float64
	}{
		{
			name:    "1:1 显示，有偏移",
			clientX: 112, clientY: 62,
			rect:    Rect{X: 12, Y: 12, Width: 640, Height: 360},
			canvasW: 640, canvasH: 360,
			wantX:   100, wantY: 50,
		},
		{
			name:    "显示尺寸为逻辑尺寸一半",
			clientX: 50, clientY: 25,
			rect:    Rect{Width: 320, Height: 180},
			canvasW: 640, canvasH: 360,
			wantX:   100, wantY: 50,
		},
		{
			name:    "终端字符格",
			clientX: 40, clientY: 10,
			rect:    Rect{X: 0, Y: 0, Width: 80, Height: 20},
			canvasW: 640, canvasH: 360,
			wantX:   320, wantY: 180,
		},
		{
			name:    "零尺寸区域按 1:1 处理",
			clientX: 30, clientY: 40,
			rect:    Rect{X: 10, Y: 10},
			canvasW: 640, canvasH: 360,
			wantX:   20, wantY: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := ClientToCanvas(tt.clientX, tt.clientY, tt.rect, tt.canvasW, tt.canvasH)
			if !almostEqual(x, tt.wantX) || !almostEqual(y, tt.wantY) {
				t.Errorf("ClientToCanvas() = (%f, %f), want (%f, %f)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestCanvasToClientRoundTrip(t *testing.T) {
	rect := Rect{X: 3, Y: 1, Width: 97, Height: 29}
	cx, cy := CanvasToClient(321.5, 77.25, rect, 640, 360)
	x, y := ClientToCanvas(cx, cy, rect, 640, 360)
	if !almostEqual(x, 321.5) || !almostEqual(y, 77.25) {
		t.Errorf("round trip mismatch: (%f, %f)", x, y)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 100, Height: 40}

	if !r.Contains(10, 10) {
		t.Error("top-left corner should be inside")
	}
	if r.Contains(110, 20) {
		t.Error("right edge should be outside")
	}
	if r.Contains(50, 9.99) {
		t.Error("point above should be outside")
	}

	cx, cy := r.Center()
	if cx != 60 || cy != 30 {
		t.Errorf("Center() = (%f, %f), want (60, 30)", cx, cy)
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(0, 0, 3, 4); !almostEqual(d, 5) {
		t.Errorf("Distance = %f, want 5", d)
	}
}
