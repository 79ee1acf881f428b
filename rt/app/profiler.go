package app

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Profiler keeps the last frame's CPU timings per scope, a few counters and
// a rolling frame rate.
type Profiler struct {
	Scopes     map[string]time.Duration
	StartTimes map[string]time.Time
	Counts     map[string]int
	Order      []string

	FPS        float64
	frameCount int
	frameTime  time.Duration
	lastFrame  time.Time
}

func NewProfiler() *Profiler {
	return &Profiler{
		Scopes:     make(map[string]time.Duration),
		StartTimes: make(map[string]time.Time),
		Counts:     make(map[string]int),
		Order:      make([]string, 0),
	}
}

func (p *Profiler) BeginScope(name string) {
	p.StartTimes[name] = time.Now()
	for _, n := range p.Order {
		if n == name {
			return
		}
	}
	p.Order = append(p.Order, name)
}

func (p *Profiler) EndScope(name string) {
	if start, ok := p.StartTimes[name]; ok {
		p.Scopes[name] = time.Since(start)
	}
}

func (p *Profiler) SetCount(name string, count int) {
	p.Counts[name] = count
}

// Frame records a presented frame at now. FPS is refreshed once per second
// of accumulated frame time.
func (p *Profiler) Frame(now time.Time) {
	if !p.lastFrame.IsZero() {
		p.frameCount++
		p.frameTime += now.Sub(p.lastFrame)
		if p.frameTime >= time.Second {
			p.FPS = float64(p.frameCount) / p.frameTime.Seconds()
			p.frameCount = 0
			p.frameTime = 0
		}
	}
	p.lastFrame = now
}

func (p *Profiler) StatsString() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "FPS: %.1f\n", p.FPS)
	for _, name := range p.Order {
		ms := float64(p.Scopes[name].Microseconds()) / 1000.0
		fmt.Fprintf(&sb, "%-10s %.2f ms\n", name, ms)
	}

	keys := make([]string, 0, len(p.Counts))
	for k := range p.Counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, "%-10s %d\n", k, p.Counts[k])
	}
	return strings.TrimRight(sb.String(), "\n")
}
