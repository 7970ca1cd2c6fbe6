package sysinfo

import "testing"

func TestResources_Workers(t *testing.T) {
	const fullHD = 1920 * 1080 * 4 * framesPerWorker

	tests := []struct {
		name string
		res  Resources
		want int
	}{
		{"cpu bound", Resources{LogicalCPUs: 8, AvailableBytes: 1 << 40}, 8},
		{"memory bound", Resources{LogicalCPUs: 8, AvailableBytes: 2 * 3 * fullHD}, 3},
		{"tiny memory", Resources{LogicalCPUs: 8, AvailableBytes: 1024}, 1},
		{"unknown memory", Resources{LogicalCPUs: 4}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.res.Workers(1920, 1080); got != tt.want {
				t.Errorf("expected %d workers, got %d", tt.want, got)
			}
		})
	}
}

func TestResources_WorkersUnknownCPU(t *testing.T) {
	if got := (Resources{}).Workers(640, 480); got < 1 {
		t.Errorf("expected at least 1 worker, got %d", got)
	}
}

func TestRecommendedWorkers(t *testing.T) {
	if got := RecommendedWorkers(1920, 1080); got < 1 {
		t.Errorf("expected at least 1 worker, got %d", got)
	}
}
