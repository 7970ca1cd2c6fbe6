package orchestrator

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/user/storyshow/pkg/adapters/logger"
	"github.com/user/storyshow/pkg/mocks"
	"github.com/user/storyshow/pkg/pipeline"
	"github.com/user/storyshow/pkg/ports"
	"github.com/user/storyshow/pkg/stages/plan"
	"github.com/user/storyshow/pkg/storyerr"
	"github.com/user/storyshow/pkg/timeline"
)

// harness wires the real plan stage to recording fakes for the others.
type harness struct {
	fs    *mocks.FileSystem
	calls []string

	encodeInputs []pipeline.EncodeInput
	muxInputs    []pipeline.MuxInput
	verifyInputs []pipeline.VerifyInput
	planFilters  []string

	compositeErr error
	encodeErr    error
	muxErr       error
	verifyErr    error
}

func newHarness() *harness {
	return &harness{fs: mocks.NewFileSystem()}
}

func (h *harness) orchestrator(withVerify bool) *Orchestrator {
	planStage := plan.NewStage(mocks.NewDebugSink(false), logger.NewNoop())

	planner := pipeline.StageFunc[pipeline.PlanInput, pipeline.PlanResult](
		func(ctx context.Context, in pipeline.PlanInput) (pipeline.PlanResult, error) {
			h.calls = append(h.calls, "plan")
			h.planFilters = append(h.planFilters, in.Options.Filter)
			return planStage.Execute(ctx, in)
		})

	compositor := pipeline.StageFunc[pipeline.CompositeInput, pipeline.CompositeResult](
		func(ctx context.Context, in pipeline.CompositeInput) (pipeline.CompositeResult, error) {
			h.calls = append(h.calls, "composite")
			if h.compositeErr != nil {
				return pipeline.CompositeResult{}, h.compositeErr
			}
			frames := make(pipeline.Frames, in.Plan.FrameCount())
			for i := range frames {
				frames[i] = pipeline.ComposedFrame{Index: i, Image: image.NewRGBA(image.Rect(0, 0, 4, 4))}
			}
			return pipeline.CompositeResult{Frames: frames}, nil
		})

	encoder := pipeline.StageFunc[pipeline.EncodeInput, pipeline.EncodeResult](
		func(ctx context.Context, in pipeline.EncodeInput) (pipeline.EncodeResult, error) {
			h.calls = append(h.calls, "encode")
			h.encodeInputs = append(h.encodeInputs, in)
			if h.encodeErr != nil {
				return pipeline.EncodeResult{}, h.encodeErr
			}
			h.fs.WriteFile(in.OutputPath, []byte("video"))
			return pipeline.EncodeResult{Path: in.OutputPath, FrameCount: in.Frames.Len(), DurationMs: 1000}, nil
		})

	muxer := pipeline.StageFunc[pipeline.MuxInput, pipeline.MuxResult](
		func(ctx context.Context, in pipeline.MuxInput) (pipeline.MuxResult, error) {
			h.calls = append(h.calls, "mux")
			h.muxInputs = append(h.muxInputs, in)
			if h.muxErr != nil {
				return pipeline.MuxResult{}, h.muxErr
			}
			h.fs.WriteFile(in.OutputPath, []byte("video+audio"))
			return pipeline.MuxResult{Path: in.OutputPath, Tracks: len(in.Tracks)}, nil
		})

	var verifier pipeline.Stage[pipeline.VerifyInput, pipeline.VerifyResult]
	if withVerify {
		verifier = pipeline.StageFunc[pipeline.VerifyInput, pipeline.VerifyResult](
			func(ctx context.Context, in pipeline.VerifyInput) (pipeline.VerifyResult, error) {
				h.calls = append(h.calls, "verify")
				h.verifyInputs = append(h.verifyInputs, in)
				if h.verifyErr != nil {
					return pipeline.VerifyResult{}, h.verifyErr
				}
				return pipeline.VerifyResult{Info: ports.MediaInfo{Width: in.Width, Height: in.Height, HasVideo: true}}, nil
			})
	}

	return New(planner, compositor, encoder, muxer, verifier, h.fs, logger.NewNoop())
}

// remaining returns the files left in the fake filesystem.
func (h *harness) remaining() []string {
	var out []string
	for p := range h.fs.GetAllFiles() {
		out = append(out, p)
	}
	return out
}

func storyMovie(t *testing.T, pages int) *timeline.Movie {
	t.Helper()
	m := timeline.New("story", timeline.WithAssets(&mocks.AssetResolver{Assets: map[string]string{
		"bear.png":  "/assets/bear.png",
		"voice.mp3": "/assets/voice.mp3",
	}}))
	for i := 0; i < pages; i++ {
		p, err := m.Page(timeline.PageDuration(1), timeline.PageBackground("skyblue"))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := p.Elem(timeline.Image("bear.png"), timeline.Place(timeline.Centered())); err != nil {
			t.Fatal(err)
		}
		if _, err := p.Elem(timeline.Audio("voice.mp3")); err != nil {
			t.Fatal(err)
		}
	}
	return m
}

func testOptions() RenderOptions {
	opts := DefaultRenderOptions()
	opts.Plan.Resolution = "480p"
	opts.Plan.FPS = 10
	opts.TempDir = "/tmp/work"
	return opts
}

func TestOrchestrator_Render(t *testing.T) {
	h := newHarness()
	o := h.orchestrator(true)

	result, err := o.Render(context.Background(), storyMovie(t, 2), "/out/story.mp4", testOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"plan", "composite", "encode", "mux", "verify"}
	if strings.Join(h.calls, ",") != strings.Join(want, ",") {
		t.Errorf("expected stages %v, got %v", want, h.calls)
	}

	if result.Skipped {
		t.Error("expected a rendered result")
	}
	if result.FrameCount != 20 {
		t.Errorf("expected 20 frames, got %d", result.FrameCount)
	}
	if result.AudioTracks != 2 {
		t.Errorf("expected 2 audio tracks, got %d", result.AudioTracks)
	}
	if result.Plan.Duration != 2 {
		t.Errorf("expected 2s plan, got %v", result.Plan.Duration)
	}

	enc := h.encodeInputs[0]
	if enc.Width != 640 || enc.Height != 480 || enc.FPS != 10 {
		t.Errorf("unexpected encode geometry %dx%d@%v", enc.Width, enc.Height, enc.FPS)
	}
	if !strings.HasPrefix(enc.OutputPath, "/tmp/work/") {
		t.Errorf("expected encode into the temp dir, got %s", enc.OutputPath)
	}

	mx := h.muxInputs[0]
	if mx.VideoPath != enc.OutputPath || mx.Duration != 2 {
		t.Errorf("unexpected mux input %+v", mx)
	}
	if !strings.HasPrefix(mx.OutputPath, "/out/") {
		t.Errorf("expected the final mux next to the output, got %s", mx.OutputPath)
	}

	v := h.verifyInputs[0]
	if v.Path != mx.OutputPath || !v.HasAudio || v.Width != 640 {
		t.Errorf("unexpected verify input %+v", v)
	}

	data, ok := h.fs.GetFile("/out/story.mp4")
	if !ok || string(data) != "video+audio" {
		t.Errorf("expected muxed output, got %q (exists=%v)", data, ok)
	}
	if files := h.remaining(); len(files) != 1 {
		t.Errorf("expected only the output to remain, got %v", files)
	}
}

func TestOrchestrator_Render_Skipped(t *testing.T) {
	tests := []struct {
		name   string
		pages  int
		filter string
	}{
		{"empty movie", 0, ""},
		{"filter selects nothing", 2, "9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			o := h.orchestrator(true)

			opts := testOptions()
			opts.Plan.Filter = tt.filter
			result, err := o.Render(context.Background(), storyMovie(t, tt.pages), "/out/story.mp4", opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !result.Skipped {
				t.Error("expected Skipped")
			}
			if len(h.calls) != 1 {
				t.Errorf("expected only the plan stage to run, got %v", h.calls)
			}
			if files := h.remaining(); len(files) != 0 {
				t.Errorf("expected no files, got %v", files)
			}
		})
	}
}

func TestOrchestrator_Render_StageErrors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name   string
		setup  func(h *harness)
		prefix string
		last   string
	}{
		{"composite", func(h *harness) { h.compositeErr = boom }, "composite stage: ", "composite"},
		{"encode", func(h *harness) { h.encodeErr = boom }, "encode stage: ", "encode"},
		{"mux", func(h *harness) { h.muxErr = boom }, "mux stage: ", "mux"},
		{"verify", func(h *harness) { h.verifyErr = boom }, "verify stage: ", "verify"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			tt.setup(h)
			o := h.orchestrator(true)

			_, err := o.Render(context.Background(), storyMovie(t, 1), "/out/story.mp4", testOptions())
			if !errors.Is(err, boom) {
				t.Fatalf("expected wrapped error, got %v", err)
			}
			if !errors.Is(err, storyerr.ErrRender) {
				t.Errorf("expected ErrRender, got %v", err)
			}
			if !strings.HasPrefix(err.Error(), tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, err.Error())
			}
			if got := h.calls[len(h.calls)-1]; got != tt.last {
				t.Errorf("expected pipeline to stop at %s, got %v", tt.last, h.calls)
			}
			if files := h.remaining(); len(files) != 0 {
				t.Errorf("expected temp files removed and no output, got %v", files)
			}
		})
	}
}

func TestOrchestrator_Render_EncodeNotRetried(t *testing.T) {
	h := newHarness()
	h.encodeErr = errors.New("ffmpeg crashed")
	o := h.orchestrator(false)

	if _, err := o.Render(context.Background(), storyMovie(t, 1), "/out/story.mp4", testOptions()); err == nil {
		t.Fatal("expected error")
	}
	if len(h.encodeInputs) != 1 {
		t.Errorf("expected a single encode attempt, got %d", len(h.encodeInputs))
	}
}

func TestOrchestrator_Render_ConfigError(t *testing.T) {
	h := newHarness()
	o := h.orchestrator(true)

	opts := testOptions()
	opts.Plan.Resolution = "4k"
	_, err := o.Render(context.Background(), storyMovie(t, 1), "/out/story.mp4", opts)
	if !errors.Is(err, storyerr.ErrConfig) {
		t.Errorf("expected ErrConfig, got %v", err)
	}
}

func TestOrchestrator_Render_VerifyDisabled(t *testing.T) {
	h := newHarness()
	o := h.orchestrator(true)

	opts := testOptions()
	opts.Verify = false
	if _, err := o.Render(context.Background(), storyMovie(t, 1), "/out/story.mp4", opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(h.verifyInputs) != 0 {
		t.Error("expected verify stage to be skipped")
	}
}

func TestOrchestrator_RenderEachPage(t *testing.T) {
	h := newHarness()
	o := h.orchestrator(false)

	opts := testOptions()
	opts.Plan.Filter = "1,3"
	results, err := o.RenderEachPage(context.Background(), storyMovie(t, 3), "/out/story.mp4", opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for i, want := range []string{"/out/story-1.mp4", "/out/story-3.mp4"} {
		if results[i].OutputPath != want {
			t.Errorf("result %d: expected %s, got %s", i, want, results[i].OutputPath)
		}
		if _, ok := h.fs.GetFile(want); !ok {
			t.Errorf("expected %s to be written", want)
		}
		if results[i].Plan.Duration != 1 {
			t.Errorf("result %d: expected a single 1s page, got %v", i, results[i].Plan.Duration)
		}
	}
	if strings.Join(h.planFilters, " ") != "1 3" {
		t.Errorf("expected per-page filters, got %v", h.planFilters)
	}
}

func TestOrchestrator_RenderEachPage_OwnDurationsAndClips(t *testing.T) {
	durations := []float64{1, 2, 0.5}
	m := timeline.New("story", timeline.WithAssets(&mocks.AssetResolver{Assets: map[string]string{
		"bear.png":  "/assets/bear.png",
		"voice.mp3": "/assets/voice.mp3",
	}}))
	for _, d := range durations {
		p, err := m.Page(timeline.PageDuration(d), timeline.PageBackground("skyblue"))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := p.Elem(timeline.Image("bear.png")); err != nil {
			t.Fatal(err)
		}
		if _, err := p.Elem(timeline.Audio("voice.mp3")); err != nil {
			t.Fatal(err)
		}
	}

	h := newHarness()
	o := h.orchestrator(false)
	results, err := o.RenderEachPage(context.Background(), m, "/out/story.mp4", testOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		page := i + 1
		if want := PageOutput("/out/story.mp4", page); r.OutputPath != want {
			t.Errorf("page %d: expected %s, got %s", page, want, r.OutputPath)
		}
		if _, ok := h.fs.GetFile(r.OutputPath); !ok {
			t.Errorf("page %d: expected %s to be written", page, r.OutputPath)
		}
		if r.Plan.Duration != durations[i] {
			t.Errorf("page %d: expected duration %v, got %v", page, durations[i], r.Plan.Duration)
		}
		if want := int(durations[i] * 10); h.encodeInputs[i].Frames.Len() != want {
			t.Errorf("page %d: expected %d frames, got %d", page, want, h.encodeInputs[i].Frames.Len())
		}
		if len(r.Plan.Video) != 2 || len(r.Plan.Audio) != 1 {
			t.Errorf("page %d: expected 2 video and 1 audio clip, got %d and %d", page, len(r.Plan.Video), len(r.Plan.Audio))
		}
		for _, c := range append(append([]timeline.Clip{}, r.Plan.Video...), r.Plan.Audio...) {
			if c.Page != page {
				t.Errorf("page %d: clip from page %d leaked in", page, c.Page)
			}
			if c.Start != 0 || c.End != durations[i] {
				t.Errorf("page %d: expected clip [0,%v), got [%v,%v)", page, durations[i], c.Start, c.End)
			}
		}
	}
}

func TestOrchestrator_RenderEachPage_NothingSelected(t *testing.T) {
	h := newHarness()
	o := h.orchestrator(false)

	results, err := o.RenderEachPage(context.Background(), storyMovie(t, 0), "/out/story.mp4", testOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 || len(h.calls) != 0 {
		t.Errorf("expected nothing rendered, got %v", h.calls)
	}
}

func TestOrchestrator_RenderEachPage_BadFilter(t *testing.T) {
	h := newHarness()
	o := h.orchestrator(false)

	opts := testOptions()
	opts.Plan.Filter = "x"
	if _, err := o.RenderEachPage(context.Background(), storyMovie(t, 1), "/out/story.mp4", opts); !errors.Is(err, storyerr.ErrConfig) {
		t.Errorf("expected ErrConfig, got %v", err)
	}
}

func TestPageOutput(t *testing.T) {
	tests := []struct {
		output string
		page   int
		want   string
	}{
		{"out/story.mp4", 3, "out/story-3.mp4"},
		{"story", 1, "story-1"},
		{"a.b/c.mov", 12, "a.b/c-12.mov"},
	}
	for _, tt := range tests {
		if got := PageOutput(tt.output, tt.page); got != tt.want {
			t.Errorf("PageOutput(%q, %d) = %q, want %q", tt.output, tt.page, got, tt.want)
		}
	}
}
