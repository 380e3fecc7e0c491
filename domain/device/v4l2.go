package device

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"sync"

	"golang.org/x/image/draw"
)

// V4L2Provider exposes Linux /dev/video* cameras. Frames are grabbed one at a
// time through ffmpeg, which keeps the dependency surface small at the cost of
// per-frame process startup; good enough for still photography.
type V4L2Provider struct {
	width  int
	height int

	mu   sync.Mutex
	open map[string]bool
}

// NewV4L2Provider creates a provider grabbing frames at the given size.
func NewV4L2Provider(width, height int) *V4L2Provider {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	return &V4L2Provider{width: width, height: height, open: make(map[string]bool)}
}

// AcquireByFacing always fails: V4L2 does not report a facing direction, so
// webcams are only reachable through raw-identity enumeration.
func (p *V4L2Provider) AcquireByFacing(_ context.Context, f Facing) (Stream, Identity, error) {
	return nil, Identity{}, fmt.Errorf("v4l2: no device facing %s", f)
}

func (p *V4L2Provider) AcquireByID(ctx context.Context, id string) (Stream, Identity, error) {
	if !v4l2DevicePattern.MatchString(id) {
		return nil, Identity{}, fmt.Errorf("v4l2: unknown device %s", id)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.open[id] {
		return nil, Identity{}, fmt.Errorf("v4l2: %s: %w", id, ErrStreamBusy)
	}
	cmd := exec.CommandContext(ctx, "v4l2-ctl", "--device", id, "--info")
	if err := cmd.Run(); err != nil {
		return nil, Identity{}, fmt.Errorf("v4l2: device %s unavailable: %w", id, err)
	}
	p.open[id] = true
	ident := Identity{ID: id, Label: "Camera " + strconv.Itoa(deviceNumber(id)), Facing: FacingUnknown}
	return &v4l2Stream{provider: p, device: id, live: true}, ident, nil
}

func (p *V4L2Provider) ListIDs(_ context.Context) ([]Identity, error) {
	matches, err := filepath.Glob("/dev/video*")
	if err != nil {
		return nil, fmt.Errorf("v4l2: device scan failed: %w", err)
	}
	sort.Slice(matches, func(i, j int) bool {
		return deviceNumber(matches[i]) < deviceNumber(matches[j])
	})
	idents := make([]Identity, 0, len(matches))
	for _, m := range matches {
		if !v4l2DevicePattern.MatchString(m) {
			continue
		}
		idents = append(idents, Identity{ID: m, Label: "Camera " + strconv.Itoa(deviceNumber(m)), Facing: FacingUnknown})
	}
	return idents, nil
}

var (
	v4l2DevicePattern = regexp.MustCompile(`^/dev/video\d+$`)
	v4l2NumberPattern = regexp.MustCompile(`video(\d+)`)
)

func deviceNumber(device string) int {
	m := v4l2NumberPattern.FindStringSubmatch(device)
	if len(m) < 2 {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

type v4l2Stream struct {
	provider *V4L2Provider
	device   string
	live     bool
}

// Frame grabs a single frame via ffmpeg and decodes the MJPEG output.
func (s *v4l2Stream) Frame(ctx context.Context) (*image.RGBA, error) {
	if !s.live {
		return nil, ErrNoStream
	}
	cmd := exec.CommandContext(ctx,
		"ffmpeg",
		"-f", "v4l2",
		"-video_size", fmt.Sprintf("%dx%d", s.provider.width, s.provider.height),
		"-i", s.device,
		"-vframes", "1",
		"-f", "image2",
		"-c:v", "mjpeg",
		"-",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("v4l2: frame grab failed: %w (stderr: %s)", err, stderr.String())
	}
	img, err := jpeg.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("v4l2: jpeg decode failed: %w", err)
	}
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	out := image.NewRGBA(img.Bounds())
	draw.Copy(out, out.Bounds().Min, img, img.Bounds(), draw.Src, nil)
	return out, nil
}

func (s *v4l2Stream) Live() bool { return s.live }

func (s *v4l2Stream) Close() error {
	if !s.live {
		return nil
	}
	s.live = false
	s.provider.mu.Lock()
	delete(s.provider.open, s.device)
	s.provider.mu.Unlock()
	return nil
}
