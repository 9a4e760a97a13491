// Package log provides logging utilities including debug mode with render profiling.
// Enable debug mode by setting TEXTPANEL_DEBUG=1 environment variable.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Debug mode configuration
var (
	DebugEnabled bool
	DebugLog     *log.Logger
	debugLogFile *os.File
)

var debugLogFileName = filepath.Join(os.TempDir(), "textpanel-debug.log")

// InitDebug initializes debug logging if TEXTPANEL_DEBUG=1 is set.
// Initialize calls it; tests may call it directly.
func InitDebug() {
	if os.Getenv("TEXTPANEL_DEBUG") != "1" {
		// No-op logger so callers never see a nil DebugLog
		DebugLog = log.New(io.Discard, "", 0)
		return
	}

	DebugEnabled = true

	f, err := os.OpenFile(debugLogFileName, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		ErrorLog.Printf("could not open debug log file: %s", err)
		DebugLog = log.New(io.Discard, "", 0)
		return
	}

	DebugLog = log.New(f, "DEBUG:", log.Ldate|log.Ltime|log.Lmicroseconds)
	debugLogFile = f

	DebugLog.Println("Debug mode enabled")
	DebugLog.Printf("Debug log: %s", debugLogFileName)
}

// CloseDebug closes the debug log file.
func CloseDebug() {
	if debugLogFile != nil {
		GetProfiler().LogStats()
		_ = debugLogFile.Close()
		debugLogFile = nil
		fmt.Fprintln(os.Stderr, "wrote debug logs to "+debugLogFileName)
	}
}

// Debug logs a debug message if debug mode is enabled.
func Debug(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf(format, v...)
	}
}

// RenderProfiler tracks how long each panel primitive takes and how many
// documents were rendered.
type RenderProfiler struct {
	mu          sync.RWMutex
	primitives  map[string]*PrimitiveMetrics
	renderCount int64
	renderLines int64
}

// PrimitiveMetrics tracks metrics for a single primitive (header, options, ...).
type PrimitiveMetrics struct {
	Name      string
	Calls     int64
	Failures  int64
	TotalTime time.Duration
	MaxTime   time.Duration
}

var profiler = &RenderProfiler{
	primitives: make(map[string]*PrimitiveMetrics),
}

// GetProfiler returns the global render profiler.
func GetProfiler() *RenderProfiler {
	return profiler
}

// StartRender begins timing a primitive.
// The returned function must be called with the primitive's error (nil on success).
func (p *RenderProfiler) StartRender(primitive string) func(err error) {
	if !DebugEnabled {
		return func(error) {}
	}

	start := time.Now()
	return func(err error) {
		p.record(primitive, time.Since(start), err)
	}
}

func (p *RenderProfiler) record(primitive string, elapsed time.Duration, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.primitives[primitive]
	if !ok {
		m = &PrimitiveMetrics{Name: primitive}
		p.primitives[primitive] = m
	}

	m.Calls++
	m.TotalTime += elapsed
	if elapsed > m.MaxTime {
		m.MaxTime = elapsed
	}
	if err != nil {
		m.Failures++
		if DebugLog != nil {
			DebugLog.Printf("[RENDER:%s] failed: %v", primitive, err)
		}
	}
}

// RecordDocument records one full document render of the given line count.
func (p *RenderProfiler) RecordDocument(lines int) {
	if !DebugEnabled {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.renderCount++
	p.renderLines += int64(lines)
}

// GetStats returns a summary of render statistics.
func (p *RenderProfiler) GetStats() string {
	if !DebugEnabled {
		return ""
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	var sb strings.Builder
	sb.WriteString("\n=== Render Profile ===\n")
	sb.WriteString(fmt.Sprintf("Documents rendered: %d (%d lines)\n", p.renderCount, p.renderLines))

	sb.WriteString("\n--- Primitives ---\n")

	var sorted []*PrimitiveMetrics
	for _, m := range p.primitives {
		sorted = append(sorted, m)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].TotalTime == sorted[j].TotalTime {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].TotalTime > sorted[j].TotalTime
	})

	for _, m := range sorted {
		avg := m.TotalTime / time.Duration(m.Calls)
		sb.WriteString(fmt.Sprintf("  %s: calls=%d failures=%d total=%v avg=%v max=%v\n",
			m.Name, m.Calls, m.Failures, m.TotalTime, avg, m.MaxTime))
	}

	return sb.String()
}

// LogStats logs the current render statistics.
func (p *RenderProfiler) LogStats() {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Print(p.GetStats())
	}
}

// Reset clears all profiling data.
func (p *RenderProfiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.primitives = make(map[string]*PrimitiveMetrics)
	p.renderCount = 0
	p.renderLines = 0
}

// RenderTrace logs render events.
func RenderTrace(component, format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		msg := fmt.Sprintf(format, v...)
		DebugLog.Printf("[RENDER:%s] %s", component, msg)
	}
}

// StoreTrace logs view store events.
func StoreTrace(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf("[STORE] "+format, v...)
	}
}
