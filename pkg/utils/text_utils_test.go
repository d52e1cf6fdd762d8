package utils

import (
	"strings"
	"testing"
)

// TestWrapText 测试文本换行功能
func TestWrapText(t *testing.T) {
	font, err := NewUIFace(20)
	if err != nil {
		t.Skipf("无法创建字体: %v", err)
	}

	tests := []struct {
		name      string
		input     string
		maxWidth  float64
		wantLines int // 期望的最少行数
	}{
		{"短文本不换行", "Level 1 — Try again", 1000, 1},
		{"显式换行", "Congratulations! You win!\nPromo Code: BallGameWinner", 1000, 2},
		{"长文本自动换行", "Level 3 complete! Starting Level 4 with more meatballs than before", 200, 2},
		{"超长单词强制断行", strings.Repeat("W", 40), 100, 2},
		{"空文本", "", 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := WrapText(tt.input, font, tt.maxWidth)
			if len(lines) < tt.wantLines {
				t.Errorf("WrapText() returned %d lines, want at least %d: %q", len(lines), tt.wantLines, lines)
			}
			for i, line := range lines {
				if strings.Contains(line, "\n") {
					t.Errorf("line %d still contains a newline: %q", i, line)
				}
				if len(line) > 1 && MeasureText(line, font) > tt.maxWidth {
					t.Errorf("line %d is %.1fpx wide, limit %.1f: %q", i, MeasureText(line, font), tt.maxWidth, line)
				}
			}
		})
	}
}

// TestWrapTextKeepsWords 断行后所有单词按顺序保留
func TestWrapTextKeepsWords(t *testing.T) {
	font, err := NewUIFace(20)
	if err != nil {
		t.Skipf("无法创建字体: %v", err)
	}

	input := "pop every meatball before the timer runs out"
	lines := WrapText(input, font, 150)
	if got := strings.Join(lines, " "); got != input {
		t.Errorf("joined lines = %q, want %q", got, input)
	}
}

func TestWrapTextNilFont(t *testing.T) {
	lines := WrapText("a\nb", nil, 100)
	if len(lines) != 2 || lines[0] != "a" || lines[1] != "b" {
		t.Errorf("WrapText with nil font = %q", lines)
	}
}
