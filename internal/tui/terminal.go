package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/zeusync/sceneedit/internal/core/mode"
	"github.com/zeusync/sceneedit/internal/core/models"
	"github.com/zeusync/sceneedit/internal/core/observability/log"
	"github.com/zeusync/sceneedit/internal/editor"
	"github.com/zeusync/sceneedit/internal/gui"
	"github.com/zeusync/sceneedit/internal/ui"
)

const (
	DefaultFrameInterval = 50 * time.Millisecond
	eventBuffer          = 100
	help                 = "c/s spawn  t test  e/p toggle  r restart  q quit"
)

var glyphs = map[models.EntityKind]rune{
	models.EntityCube:   '■',
	models.EntitySphere: '●',
}

type sprite struct {
	col, row int
	glyph    rune
	color    models.Color
	selected bool
}

type frame struct {
	sprites []sprite
	hud     gui.State
}

// Terminal draws the scene from above and turns keys and mouse input into
// editor intents.
type Terminal struct {
	screen   tcell.Screen
	ed       *editor.Editor
	pointer  *Pointer
	hud      *gui.StateView
	gesture  gesture
	status   string
	interval time.Duration
	logger   log.Log
}

func New(screen tcell.Screen, ed *editor.Editor, pointer *Pointer, logger log.Log) *Terminal {
	return &Terminal{
		screen:   screen,
		ed:       ed,
		pointer:  pointer,
		hud:      gui.NewStateView(),
		interval: DefaultFrameInterval,
		logger:   logger.Named("tui"),
	}
}

// Init prepares the screen and attaches the HUD to the editor.
func (t *Terminal) Init(ctx context.Context) error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	t.screen.EnableMouse()
	t.screen.HideCursor()

	w, h := t.screen.Size()
	err := t.ed.Do(ctx, func(ed *editor.Editor) error {
		t.pointer.Resize(w, h)
		t.pointer.Attach(ed.Entities.Entities)
		ed.GUI.AddView(t.hud)
		return nil
	})
	if err != nil {
		t.screen.Fini()
	}
	return err
}

// Run handles input and redraws until the user quits or ctx is done. The
// screen is finalised on return.
func (t *Terminal) Run(ctx context.Context) error {
	defer t.screen.Fini()

	events := make(chan tcell.Event, eventBuffer)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !t.handle(ctx, ev) {
				t.logger.Info("quit requested")
				return nil
			}
		case <-ticker.C:
			f, err := t.capture(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}
			t.draw(f)
		}
	}
}

func (t *Terminal) handle(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.handleKey(ctx, ev)
	case *tcell.EventMouse:
		t.handleMouse(ctx, ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		t.ed.Loop.Post(func() { t.pointer.Resize(w, h) })
		t.screen.Sync()
	}
	return true
}

func (t *Terminal) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	var intent func(*editor.Editor) error
	switch ev.Rune() {
	case 'q':
		return false
	case 'c':
		intent = generate(ctx, models.EntityCube)
	case 's':
		intent = generate(ctx, models.EntitySphere)
	case 't':
		intent = func(ed *editor.Editor) error {
			return ed.GUI.SetTestMode(ctx, ed.Modes.Mode() != mode.Test)
		}
	case 'e':
		intent = toggle(ctx, models.BehaviourExplode)
	case 'p':
		intent = toggle(ctx, models.BehaviourPoints)
	case 'r':
		intent = func(ed *editor.Editor) error { return ed.GUI.Restart(ctx) }
	default:
		return true
	}

	t.status = ""
	if err := t.ed.Do(ctx, intent); err != nil {
		t.logger.Debug("intent rejected", log.String("key", string(ev.Rune())), log.Error(err))
		t.status = err.Error()
	}
	return true
}

func (t *Terminal) handleMouse(ctx context.Context, ev *tcell.EventMouse) {
	col, row := ev.Position()
	phase, ok := t.gesture.update(col, row, ev.Buttons()&tcell.Button1 != 0)

	t.ed.Loop.Post(func() {
		t.pointer.MoveTo(col, row)
		if ok {
			t.ed.UI.Pointer(ctx, ui.PointerEvent{Phase: phase})
		}
	})
}

func generate(ctx context.Context, kind models.EntityKind) func(*editor.Editor) error {
	return func(ed *editor.Editor) error {
		_, err := ed.GUI.Generate(ctx, kind)
		return err
	}
}

func toggle(ctx context.Context, kind models.BehaviourKind) func(*editor.Editor) error {
	return func(ed *editor.Editor) error {
		selected := ed.Selector().Selected()
		on := selected == nil || !selected.Behaviours().Contains(kind)
		return ed.GUI.ToggleBehaviour(ctx, kind, on)
	}
}

// capture copies what is drawn out of the loop thread.
func (t *Terminal) capture(ctx context.Context) (frame, error) {
	var f frame
	err := t.ed.Do(ctx, func(ed *editor.Editor) error {
		projection := t.pointer.Projection()
		selected := ed.Selector().Selected()
		for _, e := range ed.Entities.Entities() {
			col, row := projection.Cell(e.Position())
			glyph, ok := glyphs[e.Kind()]
			if !ok {
				glyph = '?'
			}
			f.sprites = append(f.sprites, sprite{
				col:      col,
				row:      row,
				glyph:    glyph,
				color:    e.Color(),
				selected: e == selected,
			})
		}
		f.hud = t.hud.Snapshot()
		return nil
	})
	return f, err
}

func (t *Terminal) draw(f frame) {
	t.screen.Clear()

	for _, s := range f.sprites {
		r, g, b := s.color.RGB8()
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
		if s.selected {
			style = style.Bold(true).Underline(true)
		}
		t.screen.SetContent(s.col, s.row, s.glyph, nil, style)
	}

	w, h := t.screen.Size()
	t.drawText(0, h-1, w, hudLine(f.hud, t.status), tcell.StyleDefault.Reverse(true))
	t.screen.Show()
}

func (t *Terminal) drawText(x, y, width int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= width {
			return
		}
		t.screen.SetContent(col, y, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		t.screen.SetContent(col, y, ' ', nil, style)
	}
}

func hudLine(s gui.State, status string) string {
	var b strings.Builder
	fmt.Fprintf(&b, " %s | points %d", s.ModeLabel, s.Points)

	if s.MenuVisible {
		for _, kind := range models.BehaviourKinds() {
			mark := ' '
			if s.Toggles[gui.BehaviourWidget(kind)] {
				mark = 'x'
			}
			fmt.Fprintf(&b, " [%c] %s", mark, kind)
		}
	}

	if status != "" {
		fmt.Fprintf(&b, " | %s", status)
	}
	fmt.Fprintf(&b, " | %s", help)
	return b.String()
}
