// Package layout implements program subcommands: threading source text
// through configured containers and verifying results.
package layout

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"tflow/config"
	"tflow/flow"
	"tflow/markup"
	"tflow/measure"
	"tflow/page"
)

// Oracle is measuring oracle with everything subcommands need from it.
type Oracle interface {
	flow.Oracle[*page.Box]
	Measurements() int
	Lines(b *page.Box) []string
}

// renderer is implemented by oracles able to draw boxes for previews.
type renderer interface {
	Render(b *page.Box) image.Image
}

// NewSheet places configured containers on a new sheet.
func NewSheet(cfg *config.LayoutConfig) (*page.Sheet, error) {
	boxes := make([]*page.Box, 0, len(cfg.Containers))
	for _, c := range cfg.Containers {
		boxes = append(boxes, &page.Box{Name: c.Name, Width: c.Width, Height: c.Height, Template: c.Template})
	}
	sheet, err := page.NewSheet(boxes...)
	if err != nil {
		return nil, fmt.Errorf("unable to place containers: %w", err)
	}
	return sheet, nil
}

// NewOracle creates oracle requested by configuration. Returned function
// releases oracle resources.
func NewOracle(cfg *config.LayoutConfig) (Oracle, func() error, error) {
	switch cfg.Oracle {
	case config.OracleKindGrid:
		return measure.NewGrid(), func() error { return nil }, nil
	case config.OracleKindFont:
		f, err := measure.NewFont(cfg.Font.Path, cfg.Font.Size, cfg.Font.Spacing)
		if err != nil {
			return nil, nil, err
		}
		return f, f.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported oracle %v", cfg.Oracle)
	}
}

// NewSettings builds layout settings for the sheet.
func NewSettings(cfg *config.LayoutConfig, sheet *page.Sheet, log *zap.Logger) flow.Settings[*page.Box] {
	s := flow.DefaultSettings[*page.Box]()
	s.Template = sheet.Template()
	s.RemoveUnusedTemplate = cfg.RemoveUnusedTemplate
	s.RemoveUnusedContainers = cfg.RemoveUnusedContainers
	s.Marker = cfg.Marker
	s.MaxClones = cfg.MaxClones
	if cfg.StrictTags {
		s.Scanner = markup.NewStrictScanner(log)
	}
	return s
}
