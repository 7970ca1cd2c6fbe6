package ttscommand

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	s, err := Parse("  say -v {voice}  -o {output} ")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if s.Command != "say" || len(s.Args) != 4 {
		t.Errorf("unexpected synthesizer %+v", s)
	}

	if _, err := Parse("   "); !errors.Is(err, ErrNoCommand) {
		t.Errorf("expected ErrNoCommand, got %v", err)
	}
}

func TestSynthesizer_Expand(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		want       []string
		wantInline bool
	}{
		{
			name:       "inline text",
			args:       []string{"--voice={voice}", "--text", "{text}", "-o", "{output}"},
			want:       []string{"--voice=Arthur", "--text", "hello bear", "-o", "/tmp/a.mp3"},
			wantInline: true,
		},
		{
			name: "stdin text",
			args: []string{"-v", "{voice}", "-o", "{output}"},
			want: []string{"-v", "Arthur", "-o", "/tmp/a.mp3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, inline := New("tts", tt.args...).Expand("hello bear", "Arthur", "/tmp/a.mp3")
			if inline != tt.wantInline {
				t.Errorf("expected inline=%v, got %v", tt.wantInline, inline)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("arg %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestSynthesizer_Synthesize(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	t.Run("inline", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "inline.txt")
		s := New("sh", "-c", `printf '%s:%s' "$1" "$2" > "$3"`, "sh", "{voice}", "{text}", "{output}")

		if err := s.Synthesize(context.Background(), "hi there", "Arthur", out); err != nil {
			t.Fatalf("Synthesize failed: %v", err)
		}
		data, _ := os.ReadFile(out)
		if string(data) != "Arthur:hi there" {
			t.Errorf("unexpected output %q", data)
		}
	})

	t.Run("stdin", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "stdin.txt")
		s := New("sh", "-c", `cat > "$1"`, "sh", "{output}")

		if err := s.Synthesize(context.Background(), "from stdin", "Arthur", out); err != nil {
			t.Fatalf("Synthesize failed: %v", err)
		}
		data, _ := os.ReadFile(out)
		if string(data) != "from stdin" {
			t.Errorf("unexpected output %q", data)
		}
	})

	t.Run("failure", func(t *testing.T) {
		s := New("sh", "-c", "echo nope >&2; exit 3")
		if err := s.Synthesize(context.Background(), "x", "v", "/dev/null"); err == nil {
			t.Error("expected error")
		}
	})
}

func TestSynthesizer_NoCommand(t *testing.T) {
	if err := (&Synthesizer{}).Synthesize(context.Background(), "x", "v", "o"); !errors.Is(err, ErrNoCommand) {
		t.Errorf("expected ErrNoCommand, got %v", err)
	}
}
