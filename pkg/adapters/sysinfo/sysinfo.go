// Package sysinfo sizes the frame worker pool from the host's resources.
package sysinfo

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// framesPerWorker is how many full frames one worker keeps alive: the
// canvas, one transformed layer and its slot in the output batch.
const framesPerWorker = 4

// memoryShare is the fraction of available memory frame buffers may use.
const memoryShare = 0.5

// Resources is a snapshot of the host.
type Resources struct {
	LogicalCPUs    int
	AvailableBytes uint64
}

// Detect reads the host's CPU count and available memory. Fields that cannot
// be read are left zero.
func Detect() Resources {
	var r Resources
	if n, err := cpu.Counts(true); err == nil {
		r.LogicalCPUs = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		r.AvailableBytes = vm.Available
	}
	return r
}

// Workers returns the number of parallel frame workers for width x height
// frames: one per CPU, fewer when memory would not hold their buffers, and
// never less than one.
func (r Resources) Workers(width, height int) int {
	n := r.LogicalCPUs
	if n <= 0 {
		n = runtime.NumCPU()
	}
	frameBytes := uint64(width) * uint64(height) * 4
	if r.AvailableBytes > 0 && frameBytes > 0 {
		budget := uint64(float64(r.AvailableBytes) * memoryShare)
		if byMem := int(budget / (frameBytes * framesPerWorker)); byMem < n {
			n = byMem
		}
	}
	if n < 1 {
		n = 1
	}
	return n
}

// RecommendedWorkers is Detect().Workers(width, height).
func RecommendedWorkers(width, height int) int {
	return Detect().Workers(width, height)
}
