package summarizer

import (
	"fmt"
	"strings"
)

// MarkdownFormatter renders a Summary as a Markdown report.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the function used to translate labels.
func WithTranslator(t func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = t
	}
}

// WithVersion adds the tool version to the footer.
func WithVersion(v string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = v
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Render Summary"))

	title := s.Movie.Title
	if title == "" {
		title = "-"
	}
	fmt.Fprintf(&b, "## %s\n\n", t("Movie"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	fmt.Fprintf(&b, "| %s | %s |\n", t("Title"), title)
	if s.Movie.Filter != "" {
		fmt.Fprintf(&b, "| %s | %s |\n", t("Pages"), s.Movie.Filter)
	}
	b.WriteString("\n")

	if len(s.Movie.Pages) > 0 {
		fmt.Fprintf(&b, "| # | %s | %s | %s |\n|---|---|---|---|\n", t("Name"), t("Start"), t("End"))
		for _, p := range s.Movie.Pages {
			fmt.Fprintf(&b, "| %d | %s | %.2fs | %.2fs |\n", p.Number, p.Name, p.StartSec, p.EndSec)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## %s\n\n", t("Settings"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	if s.Settings.Preset != "" {
		fmt.Fprintf(&b, "| %s | %s |\n", t("Preset"), s.Settings.Preset)
	}
	if s.Settings.Quality != "" {
		fmt.Fprintf(&b, "| %s | %s |\n", t("Quality"), s.Settings.Quality)
	}
	if s.Settings.AspectRatio != "" {
		fmt.Fprintf(&b, "| %s | %s @ %s |\n", t("Canvas"), s.Settings.AspectRatio, s.Settings.Resolution)
	}
	if s.Settings.FPS > 0 {
		fmt.Fprintf(&b, "| FPS | %g |\n", s.Settings.FPS)
	}
	if s.Settings.Upscaler > 1 {
		fmt.Fprintf(&b, "| %s | %gx |\n", t("Upscaler"), s.Settings.Upscaler)
	}
	if s.Settings.CRF > 0 {
		fmt.Fprintf(&b, "| CRF | %d |\n", s.Settings.CRF)
	}
	if s.Settings.Codec != "" {
		fmt.Fprintf(&b, "| %s | %s |\n", t("Codec"), s.Settings.Codec)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Output"))
	if s.Video.Skipped {
		fmt.Fprintf(&b, "%s\n\n", t("Nothing was rendered: no pages selected."))
	} else {
		v := s.Video
		fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
		fmt.Fprintf(&b, "| %s | %s |\n", t("File"), v.OutputPath)
		fmt.Fprintf(&b, "| %s | %dx%d |\n", t("Size"), v.CanvasWidth, v.CanvasHeight)
		fmt.Fprintf(&b, "| %s | %d |\n", t("Frames"), v.FrameCount)
		fmt.Fprintf(&b, "| %s | %s |\n", t("Duration"), formatMs(v.DurationMs))
		fmt.Fprintf(&b, "| %s | %d |\n", t("Audio Tracks"), v.AudioTracks)
		if v.VideoCodec != "" || v.AudioCodec != "" {
			fmt.Fprintf(&b, "| %s | %s / %s |\n", t("Codecs"), orDash(v.VideoCodec), orDash(v.AudioCodec))
		}
		if v.FileSize > 0 {
			fmt.Fprintf(&b, "| %s | %s |\n", t("File Size"), formatBytes(v.FileSize))
		}
		b.WriteString("\n")
	}

	if s.Timing.ElapsedMs > 0 {
		fmt.Fprintf(&b, "%s: %s\n\n", t("Render Time"), formatMs(s.Timing.ElapsedMs))
	}

	b.WriteString("---\n\n")
	footer := fmt.Sprintf("%s %s", t("Generated at"), s.GeneratedAt.Format("2006-01-02 15:04:05"))
	if f.version != "" {
		footer += fmt.Sprintf(" (storyshow %s)", f.version)
	}
	b.WriteString(footer + "\n")

	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatMs(ms int) string {
	return fmt.Sprintf("%.2fs", float64(ms)/1000)
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMG"[exp])
}
