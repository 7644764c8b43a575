package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"

	"github.com/rectalogic/terp/internal/config"
	"github.com/rectalogic/terp/internal/logging"
	"github.com/rectalogic/terp/internal/project"
	"github.com/rectalogic/terp/internal/state"
)

const appID = "com.rectalogic.terp"

// TitleSuffix appends the project path to a window title.
func TitleSuffix(title, projectPath string) string {
	if projectPath == "" {
		return title
	}
	return title + " - " + projectPath
}

// Editor is the two pane drawing window.
type Editor struct {
	Window   fyne.Window
	Session  *state.Session
	Source   *Canvas
	Target   *Canvas
	Animator *Animator
	Brushes  *Brushes
	path     string
}

// NewEditor wires an editor window for s into a. projectPath is where Save
// writes; an empty path disables saving.
func NewEditor(a fyne.App, cfg config.Config, s *state.Session, projectPath string) (*Editor, error) {
	source, err := cfg.SourceBrush.Appearance()
	if err != nil {
		return nil, err
	}
	target, err := cfg.TargetBrush.Appearance()
	if err != nil {
		return nil, err
	}

	e := &Editor{
		Window:  a.NewWindow(TitleSuffix("Terp", projectPath)),
		Session: s,
		Brushes: NewBrushes(source, target),
		path:    projectPath,
	}
	e.Source = NewCanvas(state.Source, s, e.Brushes.For)
	e.Target = NewCanvas(state.Target, s, e.Brushes.For)
	e.Source.OnChanged = e.Refresh
	e.Target.OnChanged = e.Refresh
	e.Animator = NewAnimator(s, cfg.Animation.Period.Duration, e.Refresh)

	toolbar := NewToolbar(e.Brushes, Actions{
		Undo:    e.Undo,
		Clear:   e.Clear,
		Animate: e.Animator.Toggle,
		Save:    e.Save,
	})
	split := container.NewHSplit(e.Source, e.Target)
	e.Window.SetContent(container.NewBorder(toolbar, nil, nil, nil, split))
	e.Window.Resize(fyne.NewSize(cfg.Editor.Width, cfg.Editor.Height))
	e.Window.Canvas().SetOnTypedKey(e.typedKey)
	return e, nil
}

func (e *Editor) typedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeySpace:
		e.Animator.Toggle()
	case fyne.KeyZ:
		e.Undo()
	case fyne.KeyS:
		e.Save()
	}
}

// Refresh redraws both panes.
func (e *Editor) Refresh() {
	e.Source.Refresh()
	e.Target.Refresh()
}

func (e *Editor) Undo() {
	if e.Session.Undo() {
		e.Refresh()
	}
}

func (e *Editor) Clear() {
	e.Animator.Stop()
	e.Session.Clear()
	e.Refresh()
}

func (e *Editor) Save() {
	if e.path == "" {
		return
	}
	if err := project.Save(e.Session, e.path); err != nil {
		logging.L().Error("save project", "path", e.path, "err", err)
		dialog.ShowError(err, e.Window)
		return
	}
	logging.L().Info("saved project", "path", e.path, "strokes", e.Session.Len())
}

// RunEditor opens the editor and blocks until it is closed.
func RunEditor(cfg config.Config, s *state.Session, projectPath string) error {
	e, err := NewEditor(app.NewWithID(appID), cfg, s, projectPath)
	if err != nil {
		return err
	}
	e.Window.ShowAndRun()
	return nil
}

// Player is the read only animation window.
type Player struct {
	Window   fyne.Window
	Session  *state.Session
	View     *Canvas
	Animator *Animator
}

// NewPlayer shows the source side of s animating continuously.
func NewPlayer(a fyne.App, cfg config.Config, s *state.Session, projectPath string) *Player {
	p := &Player{
		Window:  a.NewWindow(TitleSuffix("Terp Player", projectPath)),
		Session: s,
		View:    NewPlayerCanvas(state.Source, s),
	}
	p.Animator = NewAnimator(s, cfg.Animation.Period.Duration, p.View.Refresh)
	p.Window.SetContent(p.View)
	p.Window.Resize(fyne.NewSize(cfg.Player.Width, cfg.Player.Height))
	p.Window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeySpace {
			p.Animator.Toggle()
		}
	})
	return p
}

// Replace loads encoded project data into the player. Safe to call from
// any goroutine.
func (p *Player) Replace(data []byte) {
	fyne.Do(func() {
		t := p.Session.Progress()
		if err := project.LoadBytes(p.Session, data); err != nil {
			logging.L().Warn("reload project", "err", err)
			return
		}
		p.Session.SetProgress(t)
		p.View.Refresh()
	})
}

// RunPlayer opens the player and blocks until it is closed. watch, if not
// nil, runs for the lifetime of the window and may call Replace.
func RunPlayer(cfg config.Config, s *state.Session, projectPath string, watch func(context.Context, *Player) error) error {
	a := app.NewWithID(appID)
	p := NewPlayer(a, cfg, s, projectPath)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if watch != nil {
		go func() {
			if err := watch(ctx, p); err != nil {
				logging.L().Error("player source", "err", err)
			}
		}()
	}
	p.Window.SetOnClosed(cancel)
	p.Animator.Start()
	p.Window.ShowAndRun()
	return nil
}
