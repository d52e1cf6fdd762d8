package game

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/decker502/meatpop/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// ErrUnsupportedSound 无法识别的音频格式
var ErrUnsupportedSound = errors.New("unsupported audio format")

// ResourceManager is responsible for locating and decoding game assets.
//
// Assets are looked up in the embedded file system first (paths starting with
// "assets/" or "data/"), then on disk. Sounds are decoded to 16-bit
// little-endian stereo PCM at the manager's sample rate so they can be handed
// to an audio.Context directly.
//
// Thread Safety Note:
// ResourceManager holds no mutable state; ReadAsset, DecodeImage and
// DecodeSound may be called from loader goroutines.
type ResourceManager struct {
	sampleRate int
}

// NewResourceManager creates a ResourceManager that decodes sounds at sampleRate.
// sampleRate must match the audio.Context used for playback (48000 in the app).
func NewResourceManager(sampleRate int) *ResourceManager {
	return &ResourceManager{sampleRate: sampleRate}
}

// SampleRate returns the sample rate used for decoding.
func (rm *ResourceManager) SampleRate() int {
	return rm.sampleRate
}

// ReadAsset reads a local asset.
// Embedded files win over files on disk so the released binary is self-contained;
// any other path (absolute or relative) is read from disk.
func (rm *ResourceManager) ReadAsset(path string) ([]byte, error) {
	if embedded.IsInitialized() && embedded.Exists(path) {
		data, err := embedded.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded asset %s: %w", path, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset %s: %w", path, err)
	}
	return data, nil
}

// DecodeImage decodes a PNG or JPEG image.
func DecodeImage(data []byte) (image.Image, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("empty %s image", format)
	}
	return img, nil
}

// DecodeSound decodes an OGG Vorbis, WAV or MP3 file to PCM.
// The format is picked from name's extension (name may be a path or URL);
// names without a known extension are tried as OGG.
func (rm *ResourceManager) DecodeSound(name string, data []byte) ([]byte, error) {
	reader := bytes.NewReader(data)

	var stream io.Reader
	switch ext := soundExt(name); ext {
	case ".ogg", "":
		decoded, err := vorbis.DecodeWithSampleRate(rm.sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG sound %s: %w", name, err)
		}
		stream = decoded
	case ".wav":
		decoded, err := wav.DecodeWithSampleRate(rm.sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV sound %s: %w", name, err)
		}
		stream = decoded
	case ".mp3":
		decoded, err := mp3.DecodeWithSampleRate(rm.sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 sound %s: %w", name, err)
		}
		stream = decoded
	default:
		return nil, fmt.Errorf("%w: %s (supported: .ogg, .wav, .mp3)", ErrUnsupportedSound, ext)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read decoded sound %s: %w", name, err)
	}
	return pcm, nil
}

// soundExt returns the lower-case extension of a path or URL, ignoring query strings.
func soundExt(name string) string {
	if u, err := url.Parse(name); err == nil && u.Path != "" {
		name = u.Path
	}
	return strings.ToLower(path.Ext(name))
}
