// Package tracker provides rolling-window telemetry for a running process.
//
// Three trackers share one contract:
//
//   - CPUTracker: background loop, rolling average CPU utilisation (0-100)
//   - MemoryTracker: background loop, rolling average resident memory
//   - FPSTracker: driven by Update, current and average frames per second
//
// PerformanceTracker composes them and fans calls out to the enabled ones.
//
// # Basic Usage
//
//	pt, err := tracker.NewPerformanceTrackerWithConfig(tracker.DefaultPerformanceConfig())
//	if err != nil {
//	    return err
//	}
//	defer pt.Close()
//
//	for frame := range frames {
//	    pt.Update(frame.Elapsed)
//	    fmt.Printf("CPU: %.1f%% Memory: %.1f MB\n",
//	        pt.CPU().CPUPercent(), pt.Memory().MemoryUsageMB())
//	}
//
// # Background Loops
//
// CPU and memory samples come from a goroutine polling at its own interval
// (at least one second), independent of the tick rate. Update re-arms a loop
// that has finished; StartTracking and StopTracking control it explicitly.
// Stopping is cooperative: the loop exits at its next checkpoint.
//
// # Thread Safety
//
// Derived metrics are guarded by a per-tracker lock and may be read from any
// goroutine while the background loop writes them.
package tracker
