package modeler

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gekko3d/modeler/rt/core"
	"github.com/gekko3d/modeler/rt/editor"
)

// Label ids used by the status panel.
const (
	LabelTitle     = "title"
	LabelMode      = "mode"
	LabelSelection = "selection"
	LabelFile      = "file"
	LabelStatus    = "status"
	LabelHelp      = "help"
	LabelStats     = "stats"
)

const (
	uiMarginX = 12.0
	uiMarginY = 12.0
)

var (
	uiTextColor    = [4]float32{1, 1, 1, 1}
	uiHeaderColor  = [4]float32{1, 1, 0, 1}
	uiDimColor     = [4]float32{0.7, 0.7, 0.7, 1}
	uiWarningColor = [4]float32{1, 0.5, 0.3, 1}
)

const helpText = `G move  R rotate  S scale
V add vertex  T triangle
Ctrl+click pick triangle
Ctrl+R flip  Del delete
P mesh preview  Esc select
Ctrl+N new  Ctrl+O open
Ctrl+S save  F1 editor`

type Label struct {
	ID      string
	Text    string
	Color   [4]float32
	Visible bool
}

// StatusPanel is the text column on the left of the viewport. Labels are
// addressed by id; their text follows the editor through change events.
type StatusPanel struct {
	editor     *editor.Editor
	labels     map[string]*Label
	order      []string
	Scale      float32
	LineHeight float32
}

func NewStatusPanel(ed *editor.Editor, scale, lineHeight float32) *StatusPanel {
	p := &StatusPanel{
		editor:     ed,
		labels:     make(map[string]*Label),
		Scale:      scale,
		LineHeight: lineHeight,
	}
	p.add(LabelTitle, "Gekko Modeler", uiHeaderColor, true)
	p.add(LabelMode, "", uiTextColor, true)
	p.add(LabelSelection, "", uiTextColor, true)
	p.add(LabelFile, "", uiDimColor, true)
	p.add(LabelStatus, "", uiWarningColor, false)
	p.add(LabelHelp, helpText, uiDimColor, true)
	p.add(LabelStats, "", uiDimColor, false)

	ed.Subscribe(p.OnChange)
	p.Refresh()
	return p
}

func (p *StatusPanel) add(id, text string, color [4]float32, visible bool) {
	p.labels[id] = &Label{ID: id, Text: text, Color: color, Visible: visible}
	p.order = append(p.order, id)
}

func (p *StatusPanel) Label(id string) (Label, bool) {
	l, ok := p.labels[id]
	if !ok {
		return Label{}, false
	}
	return *l, true
}

// SetText reports false for an unknown id.
func (p *StatusPanel) SetText(id, text string) bool {
	l, ok := p.labels[id]
	if !ok {
		return false
	}
	l.Text = text
	return true
}

func (p *StatusPanel) SetVisible(id string, visible bool) bool {
	l, ok := p.labels[id]
	if !ok {
		return false
	}
	l.Visible = visible
	return true
}

func (p *StatusPanel) OnChange(c editor.Change) {
	switch c {
	case editor.ChangeMode:
		p.refreshMode()
	case editor.ChangeSelection:
		p.refreshSelection()
	case editor.ChangeModel:
		p.refreshSelection()
		p.refreshFile()
	case editor.ChangeFile:
		p.refreshFile()
		p.refreshStatus()
	}
}

func (p *StatusPanel) Refresh() {
	p.refreshMode()
	p.refreshSelection()
	p.refreshFile()
	p.refreshStatus()
}

func (p *StatusPanel) refreshMode() {
	p.SetText(LabelMode, "Mode: "+p.editor.Mode().String())
}

func (p *StatusPanel) refreshSelection() {
	p.SetText(LabelSelection, describeSelection(p.editor.Selection(), len(p.editor.Staged())))
}

func (p *StatusPanel) refreshFile() {
	name := "untitled"
	if path := p.editor.FilePath(); path != "" {
		name = filepath.Base(path)
	}
	if p.editor.Model().Dirty() {
		name += " *"
	}
	p.SetText(LabelFile, "File: "+name)
}

func (p *StatusPanel) refreshStatus() {
	s := p.editor.Status()
	p.SetText(LabelStatus, s)
	p.SetVisible(LabelStatus, s != "")
}

func describeSelection(s *editor.Selection, staged int) string {
	var parts []string
	switch s.Kind() {
	case editor.SelectionCustom:
		parts = append(parts, fmt.Sprintf("%d vertex(es)", s.CustomCount()))
	case editor.SelectionMesh:
		mesh, _ := s.MeshID()
		if idx, ok := s.VertexIndex(); ok {
			parts = append(parts, fmt.Sprintf("mesh %d vertex %d", mesh, idx))
		} else if face, ok := s.FaceIndex(); ok {
			parts = append(parts, fmt.Sprintf("mesh %d face %d", mesh, face))
		} else {
			parts = append(parts, fmt.Sprintf("mesh %d", mesh))
		}
	}
	if n := len(s.Triangles()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d triangle(s)", n))
	}
	if staged > 0 {
		parts = append(parts, fmt.Sprintf("%d/3 picked", staged))
	}
	if len(parts) == 0 {
		return "Selection: none"
	}
	return "Selection: " + strings.Join(parts, ", ")
}

// Items lays the visible labels out top to bottom, one text item per line.
func (p *StatusPanel) Items() []core.TextItem {
	var items []core.TextItem
	y := float32(uiMarginY)
	for _, id := range p.order {
		l := p.labels[id]
		if !l.Visible || l.Text == "" {
			continue
		}
		for _, line := range strings.Split(l.Text, "\n") {
			items = append(items, core.TextItem{
				Text:     line,
				Position: [2]float32{uiMarginX, y},
				Scale:    p.Scale,
				Color:    l.Color,
			})
			y += p.LineHeight
		}
		y += p.LineHeight / 2
	}
	return items
}
