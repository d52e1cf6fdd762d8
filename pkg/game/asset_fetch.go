package game

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// AssetStatus 异步资源的加载状态
type AssetStatus int32

const (
	// AssetPending 尚未加载或正在加载
	AssetPending AssetStatus = iota
	// AssetReady 加载成功
	AssetReady
	// AssetFailed 加载失败
	AssetFailed
)

// String 返回状态名称（用于日志）
func (s AssetStatus) String() string {
	switch s {
	case AssetPending:
		return "pending"
	case AssetReady:
		return "ready"
	case AssetFailed:
		return "failed"
	}
	return "unknown"
}

// atomicStatus 供加载 goroutine 和游戏循环共享的状态
type atomicStatus struct {
	v atomic.Int32
}

func (s *atomicStatus) Load() AssetStatus   { return AssetStatus(s.v.Load()) }
func (s *atomicStatus) Store(st AssetStatus) { s.v.Store(int32(st)) }

// maxAssetSize 单个远程资源的大小上限
const maxAssetSize = 16 << 20

// IsRemoteSource 判断资源来源是否为 HTTP(S) 地址
func IsRemoteSource(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// WithCacheBuster 为远程地址追加 cb=<纳秒时间戳> 查询参数，本地路径原样返回
func WithCacheBuster(source string, now time.Time) string {
	if !IsRemoteSource(source) {
		return source
	}
	u, err := url.Parse(source)
	if err != nil {
		return source
	}
	q := u.Query()
	q.Set("cb", strconv.FormatInt(now.UnixNano(), 10))
	u.RawQuery = q.Encode()
	return u.String()
}

// fetchRemote 下载远程资源
func fetchRemote(ctx context.Context, client *http.Client, source string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", source, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: HTTP %d", source, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	if len(data) > maxAssetSize {
		return nil, fmt.Errorf("asset %s exceeds %d bytes", source, maxAssetSize)
	}
	return data, nil
}

// defaultHTTPClient 资源下载使用的 HTTP 客户端
func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 15 * time.Second}
}
