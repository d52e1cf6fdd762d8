package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// RenderPCM 将 streamer 全部读出并转换为 16 位小端立体声 PCM
// 采样值超出 [-1, 1] 的部分会被截断
func RenderPCM(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			for c := 0; c < 2; c++ {
				v := toInt16(buf[i][c])
				out = append(out, byte(v), byte(v>>8))
			}
		}
		if !ok || n == 0 {
			break
		}
	}
	return out
}

func toInt16(v float64) int16 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int16(math.Round(v * math.MaxInt16))
}
