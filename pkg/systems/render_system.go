package systems

import (
	"image"
	"image/color"
	"math"

	"github.com/decker502/meatpop/pkg/components"
	"github.com/decker502/meatpop/pkg/config"
	"github.com/decker502/meatpop/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 画布配色
var (
	backgroundBottom = color.NRGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff} // #0f172a
	backgroundTop    = color.NRGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 0xff} // #1e293b
	fallbackFill     = color.NRGBA{R: 0x9d, G: 0x4b, B: 0x00, A: 0xff} // #9d4b00，贴图未就绪时的纯色
	rimColor         = color.NRGBA{R: 255, G: 255, B: 255, A: 153}     // rgba(255,255,255,0.6)
	flashCenter      = color.NRGBA{R: 255, G: 250, B: 230, A: 255}     // 透明度另算
	flashEdge        = color.NRGBA{R: 255, G: 220, B: 120, A: 0}
)

const (
	rimWidth       = 2
	circleSegments = 48
	flashPeakAlpha = 0.9
)

// RenderSystem 画布渲染系统
// 纯读取：不修改任何组件，闪光的老化由 FlashSystem 负责
type RenderSystem struct {
	entityManager *ecs.EntityManager
	flash         config.FlashConfig
	whitePixel    *ebiten.Image // 纯色三角形的源图
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, flash config.FlashConfig) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		flash:         flash,
	}
}

// Draw 将当前状态绘制到画布
//
// 参数:
//   - canvas: 目标画布（逻辑尺寸即画布尺寸）
//   - texture: 肉丸贴图，为 nil 时使用纯色填充
func (s *RenderSystem) Draw(canvas *ebiten.Image, texture *ebiten.Image) {
	s.ensureWhitePixel()

	b := canvas.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	vs, is := gradientQuad(w, h, backgroundBottom, backgroundTop)
	canvas.DrawTriangles(vs, is, s.whitePixel, &ebiten.DrawTrianglesOptions{})

	s.drawTargets(canvas, texture)
	s.drawFlashes(canvas)
}

func (s *RenderSystem) drawTargets(canvas *ebiten.Image, texture *ebiten.Image) {
	targets := ecs.GetEntitiesWith2[*components.PositionComponent, *components.TargetComponent](s.entityManager)

	for _, id := range targets {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		target, _ := ecs.GetComponent[*components.TargetComponent](s.entityManager, id)
		angle := 0.0
		if spin, ok := ecs.GetComponent[*components.SpinComponent](s.entityManager, id); ok {
			angle = spin.Angle
		}

		if texture != nil {
			tb := texture.Bounds()
			vs, is := texturedFan(pos.X, pos.Y, target.Radius, angle, tb, circleSegments)
			canvas.DrawTriangles(vs, is, texture, &ebiten.DrawTrianglesOptions{
				Filter:    ebiten.FilterLinear,
				AntiAlias: true,
			})
		} else {
			vs, is := solidFan(pos.X, pos.Y, target.Radius, fallbackFill, fallbackFill, circleSegments)
			canvas.DrawTriangles(vs, is, s.whitePixel, &ebiten.DrawTrianglesOptions{AntiAlias: true})
		}

		// 无论是否有贴图都画边框
		vector.StrokeCircle(canvas, float32(pos.X), float32(pos.Y), float32(target.Radius), rimWidth, rimColor, true)
	}
}

func (s *RenderSystem) drawFlashes(canvas *ebiten.Image) {
	flashes := ecs.GetEntitiesWith2[*components.PositionComponent, *components.PopFlashComponent](s.entityManager)

	for _, id := range flashes {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		flash, _ := ecs.GetComponent[*components.PopFlashComponent](s.entityManager, id)

		radius, alpha := FlashStyle(s.flash, flash.Progress())
		center := flashCenter
		center.A = uint8(math.Round(255 * flashPeakAlpha * alpha))

		vs, is := solidFan(pos.X, pos.Y, radius, center, flashEdge, circleSegments)
		canvas.DrawTriangles(vs, is, s.whitePixel, &ebiten.DrawTrianglesOptions{})
	}
}

// ensureWhitePixel 延迟创建 1x1 白色源图（取 3x3 图的中心，避免采样到边缘）
func (s *RenderSystem) ensureWhitePixel() {
	if s.whitePixel != nil {
		return
	}
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	s.whitePixel = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// FlashStyle 根据进度 t ∈ [0, 1] 计算闪光半径和透明度系数
// 半径从 StartRadius 线性增长 GrowRadius，透明度从 1 线性降到 0
func FlashStyle(cfg config.FlashConfig, t float64) (radius, alpha float64) {
	t = math.Max(0, math.Min(1, t))
	return cfg.StartRadius + cfg.GrowRadius*t, 1 - t
}

// CoverScale 贴图铺满直径为 d 的圆所需的缩放比例
func CoverScale(diameter, srcW, srcH float64) float64 {
	return math.Max(diameter/srcW, diameter/srcH)
}

// textureCoord 画布上相对圆心的偏移 (dx, dy) 对应的贴图坐标
// 贴图绕圆心旋转 angle 并按 scale 缩放后居中绘制，这里做逆变换
func textureCoord(dx, dy, angle, scale float64, src image.Rectangle) (float32, float32) {
	cos, sin := math.Cos(-angle), math.Sin(-angle)
	ix := (dx*cos - dy*sin) / scale
	iy := (dx*sin + dy*cos) / scale
	cx := float64(src.Min.X) + float64(src.Dx())/2
	cy := float64(src.Min.Y) + float64(src.Dy())/2
	return float32(cx + ix), float32(cy + iy)
}

// premultiply 转换为 ebiten 顶点使用的预乘 alpha 颜色分量
func premultiply(c color.NRGBA) (r, g, b, a float32) {
	a = float32(c.A) / 255
	return float32(c.R) / 255 * a, float32(c.G) / 255 * a, float32(c.B) / 255 * a, a
}

// fan 生成以 (cx, cy) 为中心、半径 r 的扇形三角形
// shade 为每个顶点填充颜色或贴图坐标，dx/dy 为相对圆心的偏移
func fan(cx, cy, r float64, segments int, shade func(v *ebiten.Vertex, dx, dy float64, rim bool)) ([]ebiten.Vertex, []uint16) {
	vs := make([]ebiten.Vertex, 0, segments+1)
	is := make([]uint16, 0, segments*3)

	center := ebiten.Vertex{DstX: float32(cx), DstY: float32(cy)}
	shade(&center, 0, 0, false)
	vs = append(vs, center)

	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		dx, dy := r*math.Cos(a), r*math.Sin(a)
		v := ebiten.Vertex{DstX: float32(cx + dx), DstY: float32(cy + dy)}
		shade(&v, dx, dy, true)
		vs = append(vs, v)
	}

	for i := 0; i < segments; i++ {
		next := (i + 1) % segments
		is = append(is, 0, uint16(i+1), uint16(next+1))
	}
	return vs, is
}

// solidFan 纯色（或中心到边缘渐变）的圆
func solidFan(cx, cy, r float64, center, edge color.NRGBA, segments int) ([]ebiten.Vertex, []uint16) {
	cr, cg, cb, ca := premultiply(center)
	er, eg, eb, ea := premultiply(edge)
	return fan(cx, cy, r, segments, func(v *ebiten.Vertex, _, _ float64, rim bool) {
		v.SrcX, v.SrcY = 1.5, 1.5
		if rim {
			v.ColorR, v.ColorG, v.ColorB, v.ColorA = er, eg, eb, ea
		} else {
			v.ColorR, v.ColorG, v.ColorB, v.ColorA = cr, cg, cb, ca
		}
	})
}

// texturedFan 贴图裁剪为圆形，旋转 angle 并按 cover 规则缩放
func texturedFan(cx, cy, r, angle float64, src image.Rectangle, segments int) ([]ebiten.Vertex, []uint16) {
	scale := CoverScale(2*r, float64(src.Dx()), float64(src.Dy()))
	return fan(cx, cy, r, segments, func(v *ebiten.Vertex, dx, dy float64, _ bool) {
		v.SrcX, v.SrcY = textureCoord(dx, dy, angle, scale, src)
		v.ColorR, v.ColorG, v.ColorB, v.ColorA = 1, 1, 1, 1
	})
}

// gradientQuad 铺满画布的竖直渐变，底部 bottom，顶部 top
func gradientQuad(w, h float64, bottom, top color.NRGBA) ([]ebiten.Vertex, []uint16) {
	br, bg, bb, ba := premultiply(bottom)
	tr, tg, tb, ta := premultiply(top)
	vertex := func(x, y float64, r, g, b, a float32) ebiten.Vertex {
		return ebiten.Vertex{
			DstX: float32(x), DstY: float32(y),
			SrcX: 1.5, SrcY: 1.5,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		}
	}
	vs := []ebiten.Vertex{
		vertex(0, 0, tr, tg, tb, ta),
		vertex(w, 0, tr, tg, tb, ta),
		vertex(0, h, br, bg, bb, ba),
		vertex(w, h, br, bg, bb, ba),
	}
	return vs, []uint16{0, 1, 2, 1, 3, 2}
}
