package presenter

// Loop aggregates the feature presenters and drives periodic updates.
//
// Each tick first applies finished recognition results, then refreshes the
// preview, then invokes a scheduler callback. The zero value is usable
// (methods are nil-safe).
type Loop struct {
	OCR      *OCRPresenter
	Preview  *PreviewPresenter
	Schedule func()
}

func NewLoop(ocr *OCRPresenter, preview *PreviewPresenter, schedule func()) *Loop {
	return &Loop{OCR: ocr, Preview: preview, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	if l.OCR != nil {
		l.OCR.ProcessResults()
	}
	if l.Preview != nil {
		l.Preview.ProcessFrame()
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
