package model

import (
	"sync/atomic"
)

// CameraState is the lifecycle of the live preview.
type CameraState int32

const (
	CameraStopped CameraState = iota
	CameraRunning
	CameraPaused
)

func (s CameraState) String() string {
	switch s {
	case CameraStopped:
		return "stopped"
	case CameraRunning:
		return "running"
	case CameraPaused:
		return "paused"
	default:
		return "unknown"
	}
}

// CameraModel tracks the preview state. The zero value is stopped and usable.
// Concurrency-safe via an atomic because UI callbacks and worker completions may race.
type CameraModel struct{ state atomic.Int32 }

// State reports the current preview state.
func (m *CameraModel) State() CameraState {
	if m == nil {
		return CameraStopped
	}
	return CameraState(m.state.Load())
}

// SetState stores the preview state.
func (m *CameraModel) SetState(s CameraState) {
	if m == nil {
		return
	}
	m.state.Store(int32(s))
}

// Live reports whether frames should flow into the preview.
func (m *CameraModel) Live() bool { return m.State() == CameraRunning }
