package presenter

import (
	"image"

	"github.com/okvist/text-reader-go/domain/capture"
	"github.com/okvist/text-reader-go/ui/model"
)

// FrameSource supplies the most recent frame captured from the device.
type FrameSource interface {
	Running() bool
	LatestFrame() capture.Snapshot
}

// FrameView is the UI surface showing the current frame.
type FrameView interface {
	UpdateFrame(img image.Image)
}

// PreviewPresenter copies live frames from the capture service into the frame
// model and pushes visible changes to the view. While the camera is paused the
// service keeps grabbing but the displayed frame stays frozen.
type PreviewPresenter struct {
	Source FrameSource
	Camera *model.CameraModel
	Frames *model.FrameModel
	View   FrameView

	lastSequence   uint64
	lastGeneration uint64
}

func NewPreviewPresenter(source FrameSource, camera *model.CameraModel, frames *model.FrameModel, view FrameView) *PreviewPresenter {
	return &PreviewPresenter{Source: source, Camera: camera, Frames: frames, View: view}
}

// ProcessFrame runs once per UI tick.
func (p *PreviewPresenter) ProcessFrame() {
	if p == nil || p.Frames == nil || p.View == nil {
		return
	}
	if p.Source != nil && p.Camera.Live() && p.Source.Running() {
		snapshot := p.Source.LatestFrame()
		if snapshot.Image != nil && snapshot.Sequence != p.lastSequence {
			p.lastSequence = snapshot.Sequence
			p.Frames.SetFrame(snapshot.Image)
		}
	}
	// Upload to the view only when something visible changed; photo updates
	// are the expensive part of the tick.
	if gen := p.Frames.Generation(); gen != p.lastGeneration {
		p.lastGeneration = gen
		if img := p.Frames.Displayed(); img != nil {
			p.View.UpdateFrame(img)
		}
	}
}
