package encode

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/user/storyshow/pkg/adapters/logger"
	"github.com/user/storyshow/pkg/mocks"
	"github.com/user/storyshow/pkg/pipeline"
	"github.com/user/storyshow/pkg/ports"
)

func testFrames(n, stepMs, w, h int) pipeline.Frames {
	frames := make(pipeline.Frames, n)
	for i := range frames {
		frames[i] = pipeline.ComposedFrame{
			Index:       i,
			TimestampMs: i * stepMs,
			Image:       image.NewRGBA(image.Rect(0, 0, w, h)),
		}
	}
	return frames
}

func TestStage_Execute(t *testing.T) {
	mockEncoder := &mocks.VideoEncoder{}
	stage := NewStage(mockEncoder, logger.NewNoop())

	input := pipeline.EncodeInput{
		Frames:     testFrames(3, 100, 64, 36),
		Width:      64,
		Height:     36,
		FPS:        10,
		OutputPath: "/tmp/out.mp4",
		Quality:    20,
		Bitrate:    1000,
		Preset:     "fast",
		Threads:    2,
	}

	result, err := stage.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !mockEncoder.BeginCalled {
		t.Error("expected Begin to be called")
	}
	if !mockEncoder.EndCalled {
		t.Error("expected End to be called")
	}
	if mockEncoder.AbortCalled {
		t.Error("expected Abort not to be called")
	}

	want := ports.EncoderOptions{OutputPath: "/tmp/out.mp4", Quality: 20, Bitrate: 1000, Preset: "fast", Threads: 2}
	if mockEncoder.BeginOptions != want {
		t.Errorf("expected options %+v, got %+v", want, mockEncoder.BeginOptions)
	}
	if mockEncoder.BeginWidth != 64 || mockEncoder.BeginHeight != 36 {
		t.Errorf("expected 64x36, got %dx%d", mockEncoder.BeginWidth, mockEncoder.BeginHeight)
	}

	if len(mockEncoder.EncodeFrameCalls) != 3 {
		t.Errorf("expected 3 EncodeFrame calls, got %d", len(mockEncoder.EncodeFrameCalls))
	}
	if result.FrameCount != 3 {
		t.Errorf("expected FrameCount 3, got %d", result.FrameCount)
	}
	if result.DurationMs != 300 {
		t.Errorf("expected duration 300ms, got %d", result.DurationMs)
	}
	if result.Path != "/tmp/out.mp4" {
		t.Errorf("expected path /tmp/out.mp4, got %s", result.Path)
	}
}

func TestStage_Execute_EmptyFrames(t *testing.T) {
	tests := []struct {
		name   string
		frames pipeline.FrameSequence
	}{
		{"nil", nil},
		{"empty", pipeline.Frames{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockEncoder := &mocks.VideoEncoder{}
			stage := NewStage(mockEncoder, logger.NewNoop())

			_, err := stage.Execute(context.Background(), pipeline.EncodeInput{Frames: tt.frames, FPS: 30})
			if !errors.Is(err, ErrNoFrames) {
				t.Errorf("expected ErrNoFrames, got %v", err)
			}
			if mockEncoder.BeginCalled {
				t.Error("expected Begin not to be called")
			}
		})
	}
}

func TestStage_Execute_ContextCancelled(t *testing.T) {
	mockEncoder := &mocks.VideoEncoder{}
	stage := NewStage(mockEncoder, logger.NewNoop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := stage.Execute(ctx, pipeline.EncodeInput{Frames: testFrames(2, 100, 8, 8), FPS: 10})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if !mockEncoder.AbortCalled {
		t.Error("expected Abort on cancellation")
	}
}

func TestStage_Execute_BeginError(t *testing.T) {
	boom := errors.New("no ffmpeg")
	mockEncoder := &mocks.VideoEncoder{
		BeginFunc: func(int, int, float64, ports.EncoderOptions) error { return boom },
	}
	stage := NewStage(mockEncoder, logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.EncodeInput{Frames: testFrames(1, 0, 8, 8), FPS: 10})
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped begin error, got %v", err)
	}
	if len(mockEncoder.EncodeFrameCalls) != 0 {
		t.Error("expected no frames after Begin failure")
	}
}

func TestStage_Execute_FrameErrorAborts(t *testing.T) {
	boom := errors.New("broken pipe")
	mockEncoder := &mocks.VideoEncoder{
		EncodeFrameFunc: func(img image.Image, ts int) error {
			if ts >= 200 {
				return boom
			}
			return nil
		},
	}
	stage := NewStage(mockEncoder, logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.EncodeInput{Frames: testFrames(5, 100, 8, 8), FPS: 10})
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped frame error, got %v", err)
	}
	if !mockEncoder.AbortCalled {
		t.Error("expected Abort after frame error")
	}
	if mockEncoder.EndCalled {
		t.Error("expected End not to be called")
	}
	if n := mockEncoder.FrameCount(); n != 3 {
		t.Errorf("expected encoding to stop after 3 frames, got %d", n)
	}
}

func TestStage_Execute_EndError(t *testing.T) {
	boom := errors.New("moov")
	mockEncoder := &mocks.VideoEncoder{
		EndFunc: func() error { return boom },
	}
	stage := NewStage(mockEncoder, logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.EncodeInput{Frames: testFrames(2, 100, 8, 8), FPS: 10})
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped end error, got %v", err)
	}
	if !mockEncoder.AbortCalled {
		t.Error("expected Abort after End failure")
	}
}

func TestStage_Execute_FrameTimestamps(t *testing.T) {
	mockEncoder := &mocks.VideoEncoder{}
	stage := NewStage(mockEncoder, logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.EncodeInput{Frames: testFrames(4, 500, 8, 8), FPS: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []int{0, 500, 1000, 1500}
	for i, call := range mockEncoder.EncodeFrameCalls {
		if call.TimestampMs != expected[i] {
			t.Errorf("call %d: expected timestamp %d, got %d", i, expected[i], call.TimestampMs)
		}
	}
}
