package regionfx

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// stubAccelerator records the frames offered to it and returns a
// configurable result.
type stubAccelerator struct {
	compositeErr error
	initErr      error

	frames   []AccelFrame
	provider any
	closed   bool
}

func (s *stubAccelerator) Name() string { return "stub" }
func (s *stubAccelerator) Init() error  { return s.initErr }
func (s *stubAccelerator) Close()       { s.closed = true }

func (s *stubAccelerator) SetDeviceProvider(provider any) error {
	s.provider = provider
	return nil
}

func (s *stubAccelerator) Composite(_ *Pixmap, frame AccelFrame) error {
	s.frames = append(s.frames, frame)
	return s.compositeErr
}

// swapAccelerator installs a for the duration of the test, restoring the
// previous registration afterwards.
func swapAccelerator(t *testing.T, a GPUAccelerator) {
	t.Helper()
	accelMu.Lock()
	old := accel
	accel = a
	accelMu.Unlock()
	t.Cleanup(func() {
		accelMu.Lock()
		accel = old
		accelMu.Unlock()
	})
}

// clearDeviceProvider resets the stored provider after the test.
func clearDeviceProvider(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		deviceMu.Lock()
		deviceProvider = nil
		deviceMu.Unlock()
	})
}

// nullDeviceProvider is a DeviceProvider without HAL access, like
// render.NullDeviceHandle in gg.
type nullDeviceProvider struct{}

func (nullDeviceProvider) Device() gpucontext.Device   { return nil }
func (nullDeviceProvider) Queue() gpucontext.Queue     { return nil }
func (nullDeviceProvider) Adapter() gpucontext.Adapter { return nil }

func (nullDeviceProvider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

func (nullDeviceProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

func TestCompositeOffersFrameToAccelerator(t *testing.T) {
	stub := &stubAccelerator{}
	swapAccelerator(t, stub)

	c := NewCompositor(NewPixmapSource(gradientPixmap(8, 8)))
	c.SetEffectRect(NewRect(2, 2, 4, 4))
	c.SetEffect(InvertEffect{})

	dst := NewPixmap(8, 8)
	if err := c.Composite(dst); err != nil {
		t.Fatalf("Composite: %v", err)
	}

	if len(stub.frames) != 1 {
		t.Fatalf("accelerator saw %d frames, want 1", len(stub.frames))
	}
	frame := stub.frames[0]
	if frame.TargetWidth != 8 || frame.TargetHeight != 8 {
		t.Errorf("frame target = %dx%d, want 8x8", frame.TargetWidth, frame.TargetHeight)
	}
	if want := Normalize(8, 8, c.EffectRect()); frame.Region != want {
		t.Errorf("frame region = %+v, want %+v", frame.Region, want)
	}
	if !frame.Blending {
		t.Error("frame blending should be resolved on with an effect attached")
	}
	if frame.CaptureWidth != 4 || frame.CaptureHeight != 4 {
		t.Errorf("frame capture = %dx%d, want 4x4", frame.CaptureWidth, frame.CaptureHeight)
	}

	// The accelerator claimed the frame: no software pass touched dst, but
	// the pass schedule is still counted.
	if !bytes.Equal(dst.Data(), NewPixmap(8, 8).Data()) {
		t.Error("software passes ran despite the accelerator claiming the frame")
	}
	stats := c.Stats()
	if stats.BackgroundPasses != 1 || stats.ExtractPasses != 1 || stats.EffectPasses != 1 {
		t.Errorf("stats = %+v, want one pass of each kind", stats)
	}
}

func TestCompositeNoEffectAcceleratorFrame(t *testing.T) {
	stub := &stubAccelerator{}
	swapAccelerator(t, stub)

	c := NewCompositor(NewPixmapSource(gradientPixmap(8, 8)))
	c.SetEffectRect(NewRect(2, 2, 4, 4))

	if err := c.Composite(NewPixmap(8, 8)); err != nil {
		t.Fatalf("Composite: %v", err)
	}

	frame := stub.frames[0]
	if frame.Blending {
		t.Error("frame blending should be off without an effect")
	}
	if frame.CaptureWidth != 0 || frame.CaptureHeight != 0 {
		t.Errorf("frame capture = %dx%d, want 0x0 without an effect",
			frame.CaptureWidth, frame.CaptureHeight)
	}
	if stats := c.Stats(); stats.ExtractPasses != 0 {
		t.Errorf("extract passes = %d, want 0 without an effect", stats.ExtractPasses)
	}
}

func TestCompositeFallsBackWhenAcceleratorDeclines(t *testing.T) {
	c := NewCompositor(NewPixmapSource(gradientPixmap(8, 8)))
	c.SetEffectRect(NewRect(2, 2, 4, 4))
	c.SetEffect(InvertEffect{})

	want := NewPixmap(8, 8)
	if err := c.Composite(want); err != nil {
		t.Fatalf("software Composite: %v", err)
	}

	stub := &stubAccelerator{compositeErr: ErrFallbackToCPU}
	swapAccelerator(t, stub)

	got := NewPixmap(8, 8)
	if err := c.Composite(got); err != nil {
		t.Fatalf("Composite with declining accelerator: %v", err)
	}

	if len(stub.frames) != 1 {
		t.Fatalf("accelerator saw %d frames, want 1", len(stub.frames))
	}
	if !bytes.Equal(got.Data(), want.Data()) {
		t.Error("fallback output differs from the software passes")
	}
}

func TestCompositeSurvivesAcceleratorError(t *testing.T) {
	c := NewCompositor(NewPixmapSource(gradientPixmap(8, 8)))
	c.SetEffectRect(NewRect(2, 2, 4, 4))
	c.SetEffect(InvertEffect{})

	want := NewPixmap(8, 8)
	if err := c.Composite(want); err != nil {
		t.Fatalf("software Composite: %v", err)
	}

	swapAccelerator(t, &stubAccelerator{compositeErr: errors.New("device lost")})

	got := NewPixmap(8, 8)
	if err := c.Composite(got); err != nil {
		t.Fatalf("Composite with failing accelerator: %v", err)
	}
	if !bytes.Equal(got.Data(), want.Data()) {
		t.Error("output after accelerator failure differs from the software passes")
	}
}

func TestRegisterAcceleratorNil(t *testing.T) {
	if err := RegisterAccelerator(nil); err == nil {
		t.Error("registering a nil accelerator should fail")
	}
}

func TestRegisterAcceleratorInitFailure(t *testing.T) {
	swapAccelerator(t, nil)

	stub := &stubAccelerator{initErr: errors.New("no backend")}
	if err := RegisterAccelerator(stub); err == nil {
		t.Error("registration should report the Init error")
	}
	if Accelerator() != nil {
		t.Error("failed registration must not install the accelerator")
	}
}

func TestRegisterAcceleratorReplacesAndCloses(t *testing.T) {
	first := &stubAccelerator{}
	swapAccelerator(t, first)

	second := &stubAccelerator{}
	if err := RegisterAccelerator(second); err != nil {
		t.Fatalf("RegisterAccelerator: %v", err)
	}
	if !first.closed {
		t.Error("replaced accelerator was not closed")
	}
	if Accelerator() != second {
		t.Error("replacement accelerator not installed")
	}
}

func TestRegisterAcceleratorForwardsStoredProvider(t *testing.T) {
	swapAccelerator(t, nil)
	clearDeviceProvider(t)

	provider := nullDeviceProvider{}
	SetDeviceProvider(provider)

	stub := &stubAccelerator{}
	if err := RegisterAccelerator(stub); err != nil {
		t.Fatalf("RegisterAccelerator: %v", err)
	}
	if stub.provider != any(provider) {
		t.Error("provider attached before registration was not forwarded")
	}
}

func TestSetDeviceProviderForwardsToAccelerator(t *testing.T) {
	stub := &stubAccelerator{}
	swapAccelerator(t, stub)
	clearDeviceProvider(t)

	provider := nullDeviceProvider{}
	SetDeviceProvider(provider)
	if stub.provider != any(provider) {
		t.Error("provider was not forwarded to the registered accelerator")
	}

	SetDeviceProvider(nil)
	if !stub.closed {
		t.Error("detaching the provider should close the accelerator's device resources")
	}
	if DeviceProvider() != nil {
		t.Error("detached provider still stored")
	}
}
