package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/anastasop/photostack"
)

var errBadColor = errors.New("bad color")

// stackConfig is the YAML file with the appearance of the stack.
// Missing fields keep the default settings.
type stackConfig struct {
	BorderWidth    *int     `yaml:"border_width"`
	ShowBorder     *bool    `yaml:"show_border"`
	RotationOffset *float64 `yaml:"rotation_offset"`
	HighlightColor string   `yaml:"highlight_color"`
	BorderImage    string   `yaml:"border_image"`
}

// loadConfig reads the stack configuration from the YAML file at path.
func loadConfig(path string) ([]photostack.Option, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) ([]photostack.Option, error) {
	var sc stackConfig
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var opts []photostack.Option
	if sc.BorderWidth != nil {
		opts = append(opts, photostack.WithBorderWidth(*sc.BorderWidth))
	}
	if sc.ShowBorder != nil {
		opts = append(opts, photostack.WithShowBorder(*sc.ShowBorder))
	}
	if sc.RotationOffset != nil {
		opts = append(opts, photostack.WithRotationOffset(*sc.RotationOffset))
	}
	if sc.HighlightColor != "" {
		c, err := parseColor(sc.HighlightColor)
		if err != nil {
			return nil, fmt.Errorf("config: highlight_color: %w", err)
		}
		opts = append(opts, photostack.WithHighlightColor(c))
	}
	if sc.BorderImage != "" {
		img, err := loadImage(sc.BorderImage)
		if err != nil {
			return nil, fmt.Errorf("config: border_image: %w", err)
		}
		opts = append(opts, photostack.WithBorderImage(img))
	}
	return opts, nil
}

// parseColor parses #rrggbb or #rrggbbaa.
func parseColor(s string) (color.Color, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return nil, fmt.Errorf("%q: %w", s, errBadColor)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", s, errBadColor)
	}
	return color.NRGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
