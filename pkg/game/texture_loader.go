package game

import (
	"context"
	"image"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultTextureSource 内置的肉丸贴图
const DefaultTextureSource = "assets/meatball.png"

// textureResult 一次成功加载的结果
type textureResult struct {
	img        image.Image
	generation uint64
}

// TextureLoader 异步加载目标贴图
//
// 加载在独立 goroutine 中完成，结果通过原子变量发布；
// 游戏循环每帧调用 Ready()/Image() 轮询，永不阻塞。
// HTTP(S) 来源每次请求都会追加 cache-buster 参数，本地文件不会。
type TextureLoader struct {
	source    string
	resources *ResourceManager
	client    *http.Client
	now       func() time.Time

	status   atomicStatus
	inFlight atomic.Bool
	result   atomic.Pointer[textureResult]
	gen      atomic.Uint64
	wg       sync.WaitGroup
}

// NewTextureLoader 创建贴图加载器
// source 为空时使用内置贴图
func NewTextureLoader(source string, resources *ResourceManager) *TextureLoader {
	if source == "" {
		source = DefaultTextureSource
	}
	return &TextureLoader{
		source:    source,
		resources: resources,
		client:    defaultHTTPClient(),
		now:       time.Now,
	}
}

// Source 返回贴图来源
func (tl *TextureLoader) Source() string {
	return tl.source
}

// Ensure 如果贴图尚未加载成功且没有正在进行的加载，则发起一次加载
// 返回是否真正发起了加载
func (tl *TextureLoader) Ensure(ctx context.Context) bool {
	if tl.status.Load() == AssetReady {
		return false
	}
	if !tl.inFlight.CompareAndSwap(false, true) {
		return false
	}

	tl.status.Store(AssetPending)
	tl.wg.Add(1)
	go tl.load(ctx)
	return true
}

func (tl *TextureLoader) load(ctx context.Context) {
	defer tl.wg.Done()
	defer tl.inFlight.Store(false)

	var (
		data []byte
		err  error
	)
	if IsRemoteSource(tl.source) {
		data, err = fetchRemote(ctx, tl.client, WithCacheBuster(tl.source, tl.now()))
	} else {
		data, err = tl.resources.ReadAsset(tl.source)
	}
	if err != nil {
		log.Printf("[TextureLoader] Failed to load %s: %v", tl.source, err)
		tl.status.Store(AssetFailed)
		return
	}

	img, err := DecodeImage(data)
	if err != nil {
		log.Printf("[TextureLoader] Failed to decode %s: %v", tl.source, err)
		tl.status.Store(AssetFailed)
		return
	}

	tl.result.Store(&textureResult{img: img, generation: tl.gen.Add(1)})
	tl.status.Store(AssetReady)
	log.Printf("[TextureLoader] %s loaded (%dx%d)", tl.source, img.Bounds().Dx(), img.Bounds().Dy())
}

// Status 当前加载状态
func (tl *TextureLoader) Status() AssetStatus {
	return tl.status.Load()
}

// Ready 贴图是否可用
func (tl *TextureLoader) Ready() bool {
	return tl.status.Load() == AssetReady
}

// Image 返回已加载的贴图和它的代数
// 代数在每次成功加载后递增，调用方据此判断是否需要重新上传到 GPU
func (tl *TextureLoader) Image() (image.Image, uint64) {
	if !tl.Ready() {
		return nil, 0
	}
	r := tl.result.Load()
	if r == nil {
		return nil, 0
	}
	return r.img, r.generation
}

// Badge 右上角的诊断文字
func (tl *TextureLoader) Badge() string {
	switch tl.status.Load() {
	case AssetReady:
		return "IMG: OK"
	case AssetFailed:
		return "IMG: FAIL"
	}
	return "IMG: …"
}

// Wait 等待正在进行的加载结束（用于测试和退出）
func (tl *TextureLoader) Wait() {
	tl.wg.Wait()
}
