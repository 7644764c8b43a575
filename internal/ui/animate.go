package ui

import (
	"time"

	"fyne.io/fyne/v2"

	"github.com/rectalogic/terp/internal/state"
)

// Animator ping-pongs the session progress between 0 and 1.
type Animator struct {
	session *state.Session
	anim    *fyne.Animation
	running bool
	onTick  func()
}

// NewAnimator builds an animator whose one-way trip lasts period. onTick
// runs after every progress change.
func NewAnimator(session *state.Session, period time.Duration, onTick func()) *Animator {
	a := &Animator{session: session, onTick: onTick}
	a.anim = fyne.NewAnimation(period, a.tick)
	a.anim.Curve = fyne.AnimationEaseInOut
	a.anim.AutoReverse = true
	a.anim.RepeatCount = fyne.AnimationRepeatForever
	return a
}

func (a *Animator) tick(t float32) {
	a.session.SetProgress(t)
	if a.onTick != nil {
		a.onTick()
	}
}

func (a *Animator) Running() bool {
	return a.running
}

func (a *Animator) Start() {
	if a.running {
		return
	}
	a.running = true
	a.anim.Start()
}

// Stop halts the animation and puts every stroke back at its own side.
func (a *Animator) Stop() {
	if !a.running {
		return
	}
	a.running = false
	a.anim.Stop()
	a.tick(0)
}

func (a *Animator) Toggle() {
	if a.running {
		a.Stop()
	} else {
		a.Start()
	}
}
