package morph

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultLabelFade is how long, in seconds, a full label crossfade takes.
const DefaultLabelFade = 0.4

// FadingLabel is an outgoing label and its current opacity.
type FadingLabel struct {
	Text  string
	Alpha float64

	tween *gween.Tween
}

// LabelFade crossfades a region label when the content set changes: the
// outgoing text fades out while the incoming text fades in. Interrupting a
// fade keeps every outgoing label fading from the opacity it had reached.
// Call Update(dt) each frame.
type LabelFade struct {
	Current string
	// Previous is the most visible outgoing label, or "" when none is left.
	Previous string

	fadeIn       *gween.Tween
	currentAlpha float64
	outgoing     []FadingLabel

	// Done is true when no fade is in progress.
	Done bool
}

// newLabelFade returns a fade that shows label at full opacity.
func newLabelFade(label string) *LabelFade {
	return &LabelFade{Current: label, currentAlpha: 1, Done: true}
}

// Set starts a crossfade to label. duration is the time a fade across the
// full opacity range takes; partial fades take proportionally less, so every
// label changes opacity at the same rate. Setting the label already shown is
// a no-op. A label that is still fading out is brought back from its current
// opacity.
func (f *LabelFade) Set(label string, duration float32, fn ease.TweenFunc) {
	if label == f.Current {
		return
	}
	if fn == nil {
		fn = ease.OutQuad
	}

	var from float64
	for i, o := range f.outgoing {
		if o.Text == label {
			from = o.Alpha
			f.outgoing = append(f.outgoing[:i], f.outgoing[i+1:]...)
			break
		}
	}

	if f.Current != "" && f.currentAlpha > 0 {
		a := float32(f.currentAlpha)
		f.outgoing = append(f.outgoing, FadingLabel{
			Text:  f.Current,
			Alpha: f.currentAlpha,
			tween: gween.New(a, 0, duration*a, fn),
		})
	}

	f.Current = label
	f.currentAlpha = from
	f.fadeIn = gween.New(float32(from), 1, duration*float32(1-from), fn)
	f.Done = false
	f.refreshPrevious()
}

// Update advances the crossfade by dt seconds.
func (f *LabelFade) Update(dt float32) {
	if f.Done {
		return
	}
	if f.fadeIn != nil {
		in, inDone := f.fadeIn.Update(dt)
		f.currentAlpha = float64(in)
		if inDone {
			f.currentAlpha = 1
			f.fadeIn = nil
		}
	}

	kept := f.outgoing[:0]
	for _, o := range f.outgoing {
		a, done := o.tween.Update(dt)
		if done {
			continue
		}
		o.Alpha = float64(a)
		kept = append(kept, o)
	}
	clear(f.outgoing[len(kept):])
	f.outgoing = kept

	f.refreshPrevious()
	f.Done = f.fadeIn == nil && len(f.outgoing) == 0
}

func (f *LabelFade) refreshPrevious() {
	f.Previous = ""
	var best float64
	for _, o := range f.outgoing {
		if o.Alpha > best || f.Previous == "" {
			f.Previous, best = o.Text, o.Alpha
		}
	}
}

// Alphas returns the opacity of the current label and of Previous.
func (f *LabelFade) Alphas() (current, previous float64) {
	for _, o := range f.outgoing {
		if o.Text == f.Previous {
			return f.currentAlpha, o.Alpha
		}
	}
	return f.currentAlpha, 0
}

// Outgoing returns every label still fading out, oldest first. The slice is
// only valid until the next Set or Update.
func (f *LabelFade) Outgoing() []FadingLabel {
	return f.outgoing
}
