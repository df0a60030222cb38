package config

import (
	"encoding/json"
	"os"
)

// Config holds runtime configuration for capture, preprocessing and OCR.
// Fields may be loaded from a JSON file; a missing file falls back to defaults.
type Config struct {
	Debug bool `json:"debug"`

	// Capture parameters
	CaptureIndex      int `json:"capture_index"`
	CaptureIntervalMs int `json:"capture_interval_ms"`

	// OCR engine parameters
	Language          string `json:"language"`
	PageSegMode       int    `json:"page_seg_mode"`
	OCRTimeoutSeconds int    `json:"ocr_timeout_seconds"`
	TessdataPrefix    string `json:"tessdata_prefix"`

	// Preprocessing parameters
	BilateralDiameter   int     `json:"bilateral_diameter"`
	BilateralSigmaColor float64 `json:"bilateral_sigma_color"`
	BilateralSigmaSpace float64 `json:"bilateral_sigma_space"`
	AdaptiveBlockSize   int     `json:"adaptive_block_size"`
	AdaptiveBias        int     `json:"adaptive_bias"`

	// Overlay parameters
	MinConfidence float64 `json:"min_confidence"`

	// Last directory used in load/save dialogs, persisted for convenience.
	LastDir string `json:"last_dir"`
}

// DefaultConfig returns a Config populated with standard defaults.
// PageSegMode 6 is Tesseract's "single uniform block of text".
func DefaultConfig() *Config {
	return &Config{
		Debug:               false,
		CaptureIndex:        0,
		CaptureIntervalMs:   30,
		Language:            "eng",
		PageSegMode:         6,
		OCRTimeoutSeconds:   30,
		BilateralDiameter:   5,
		BilateralSigmaColor: 50,
		BilateralSigmaSpace: 50,
		AdaptiveBlockSize:   31,
		AdaptiveBias:        10,
		MinConfidence:       0.10,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.CaptureIndex < 0 {
		c.CaptureIndex = 0
	}
	if c.CaptureIntervalMs <= 0 {
		c.CaptureIntervalMs = 30
	}
	if c.Language == "" {
		c.Language = "eng"
	}
	if c.PageSegMode < 0 || c.PageSegMode > 13 {
		c.PageSegMode = 6
	}
	if c.OCRTimeoutSeconds <= 0 {
		c.OCRTimeoutSeconds = 30
	}
	if c.BilateralDiameter <= 0 {
		c.BilateralDiameter = 5
	}
	if c.BilateralDiameter%2 == 0 {
		c.BilateralDiameter++
	}
	if c.BilateralSigmaColor <= 0 {
		c.BilateralSigmaColor = 50
	}
	if c.BilateralSigmaSpace <= 0 {
		c.BilateralSigmaSpace = 50
	}
	if c.AdaptiveBlockSize < 3 {
		c.AdaptiveBlockSize = 31
	}
	if c.AdaptiveBlockSize%2 == 0 {
		c.AdaptiveBlockSize++
	}
	if c.AdaptiveBias < 0 {
		c.AdaptiveBias = 10
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		c.MinConfidence = 0.10
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
