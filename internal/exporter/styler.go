package exporter

import (
	"goto-endpoint/internal/model"

	"github.com/xuri/excelize/v2"
)

// Styler handles Excel styling
type Styler struct {
	File *excelize.File

	// Pre-defined styles
	HeaderStyle     int
	ControllerStyle int
	DefaultStyle    int

	// One font color per HTTP verb, keyed by model.Method*
	methodStyles map[string]int
}

// verb colors used in the Method column
var methodColors = map[string]string{
	model.MethodGet:     "#2E7D32", // Green
	model.MethodPost:    "#1565C0", // Blue
	model.MethodPut:     "#EF6C00", // Orange
	model.MethodPatch:   "#6A1B9A", // Purple
	model.MethodDelete:  "#D32F2F", // Red
	model.MethodHead:    "#455A64",
	model.MethodOptions: "#455A64",
}

// NewStyler creates a new Styler and explicitly registers styles
func NewStyler(f *excelize.File) (*Styler, error) {
	s := &Styler{File: f, methodStyles: make(map[string]int)}
	var err error

	// Header Style: Bold, Gray Background, Center Aligned
	s.HeaderStyle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#000000"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    createBorder(),
	})
	if err != nil {
		return nil, err
	}

	// Controller Style: Blue Text on a light band (group header)
	s.ControllerStyle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#0000FF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#F1F5FB"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    createBorder(),
	})
	if err != nil {
		return nil, err
	}

	// Default Style
	s.DefaultStyle, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    createBorder(),
	})
	if err != nil {
		return nil, err
	}

	for method, color := range methodColors {
		style, err := f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: color},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    createBorder(),
		})
		if err != nil {
			return nil, err
		}
		s.methodStyles[method] = style
	}

	// ANY: Gray Italic, the verb was not pinned down in source
	s.methodStyles[model.MethodAny], err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Color: "#757575", Italic: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    createBorder(),
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

// MethodStyle returns the style of the Method cell for a verb
func (s *Styler) MethodStyle(method string) int {
	if style, ok := s.methodStyles[method]; ok {
		return style
	}
	return s.DefaultStyle
}

func createBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "D4D4D4", Style: 1},
		{Type: "top", Color: "D4D4D4", Style: 1},
		{Type: "bottom", Color: "D4D4D4", Style: 1},
		{Type: "right", Color: "D4D4D4", Style: 1},
	}
}
