package utils

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	uiFaceOnce   sync.Once
	uiFaceSource *text.GoTextFaceSource
	uiFaceErr    error
)

// NewUIFace 返回内置 Go Regular 字体的指定字号
// 字体源只解析一次，之后的调用共享同一个 source
func NewUIFace(size float64) (*text.GoTextFace, error) {
	uiFaceOnce.Do(func() {
		uiFaceSource, uiFaceErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	})
	if uiFaceErr != nil {
		return nil, fmt.Errorf("failed to load UI font: %w", uiFaceErr)
	}
	return &text.GoTextFace{Source: uiFaceSource, Size: size}, nil
}

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本，"\n" 处强制换行
//   - font: 字体
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 换行规则:
//   - 优先在空格处断行
//   - 如果单词太长超过最大宽度，强制断行
func WrapText(textStr string, font *text.GoTextFace, maxWidth float64) []string {
	if textStr == "" || font == nil || maxWidth <= 0 {
		return strings.Split(textStr, "\n")
	}

	var lines []string
	for _, paragraph := range strings.Split(textStr, "\n") {
		lines = append(lines, wrapParagraph(paragraph, font, maxWidth)...)
	}
	return lines
}

// wrapParagraph 对不含换行符的一段文本断行
func wrapParagraph(paragraph string, font *text.GoTextFace, maxWidth float64) []string {
	if measureTextWidth(paragraph, font) <= maxWidth {
		return []string{paragraph}
	}

	var lines []string
	currentLine := ""
	for _, word := range strings.Fields(paragraph) {
		candidate := word
		if currentLine != "" {
			candidate = currentLine + " " + word
		}
		if measureTextWidth(candidate, font) <= maxWidth {
			currentLine = candidate
			continue
		}

		if currentLine != "" {
			lines = append(lines, currentLine)
		}
		// 单词本身超宽，按字符拆开
		if measureTextWidth(word, font) > maxWidth {
			parts := breakWord(word, font, maxWidth)
			lines = append(lines, parts[:len(parts)-1]...)
			currentLine = parts[len(parts)-1]
		} else {
			currentLine = word
		}
	}

	if currentLine != "" || len(lines) == 0 {
		lines = append(lines, currentLine)
	}
	return lines
}

// breakWord 按字符把超宽单词拆成多行，至少返回一个元素
func breakWord(word string, font *text.GoTextFace, maxWidth float64) []string {
	var parts []string
	current := ""
	for len(word) > 0 {
		r, size := utf8.DecodeRuneInString(word)
		word = word[size:]

		next := current + string(r)
		if current != "" && measureTextWidth(next, font) > maxWidth {
			parts = append(parts, current)
			next = string(r)
		}
		current = next
	}
	return append(parts, current)
}

// MeasureText 测量单行文本宽度
func MeasureText(textStr string, font *text.GoTextFace) float64 {
	return measureTextWidth(textStr, font)
}

// measureTextWidth 测量文本宽度
func measureTextWidth(textStr string, font *text.GoTextFace) float64 {
	if textStr == "" || font == nil {
		return 0
	}

	width, _ := text.Measure(textStr, font, 0)
	return width
}
