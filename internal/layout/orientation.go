// Package layout classifies the window shape so screens can pick between
// their portrait and landscape style tables.
package layout

import (
	"math"
	"sync"
)

// Orientation is the coarse window shape.
type Orientation int

const (
	Landscape Orientation = iota
	Portrait
)

func (o Orientation) String() string {
	if o == Portrait {
		return "PORTRAIT"
	}
	return "LANDSCAPE"
}

// Classify returns Portrait when the window is strictly taller than wide.
func Classify(width, height int) Orientation {
	if height > width {
		return Portrait
	}
	return Landscape
}

// Pick selects the portrait or landscape variant of a precomputed table.
func Pick[T any](o Orientation, portrait, landscape T) T {
	if o == Portrait {
		return portrait
	}
	return landscape
}

// Dimensions is a window size in terminal cells. A cell is roughly twice as tall
// as it is wide, so Square scales rows by the cell aspect before comparing.
type Dimensions struct {
	Cols   int
	Rows   int
	Aspect float64
}

// Square returns the size in square units: columns and aspect-corrected rows.
func (d Dimensions) Square() (width, height int) {
	aspect := d.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return d.Cols, int(math.Round(float64(d.Rows) * aspect))
}

func (d Dimensions) Orientation() Orientation {
	return Classify(d.Square())
}

// DimensionSource notifies subscribers whenever the window is resized.
type DimensionSource interface {
	Subscribe(fn func(Dimensions)) (unsubscribe func())
}

// Tracker follows a dimension source and keeps the current orientation.
type Tracker struct {
	mu          sync.RWMutex
	dims        Dimensions
	orientation Orientation
	seen        bool
	onChange    func(Orientation)
}

// NewTracker subscribes to src when it is non-nil. Trackers without a source
// are fed directly via Observe. onChange, if set, runs on every orientation
// flip, the first observation included.
func NewTracker(src DimensionSource, onChange func(Orientation)) (*Tracker, func()) {
	t := &Tracker{onChange: onChange}
	if src == nil {
		return t, func() {}
	}
	unsub := src.Subscribe(func(d Dimensions) { t.Observe(d) })
	return t, unsub
}

// Observe records new dimensions and reports whether the orientation changed.
// The first observation always counts as a change.
func (t *Tracker) Observe(d Dimensions) (Orientation, bool) {
	o := d.Orientation()
	t.mu.Lock()
	changed := !t.seen || o != t.orientation
	t.dims = d
	t.orientation = o
	t.seen = true
	t.mu.Unlock()

	if changed && t.onChange != nil {
		t.onChange(o)
	}
	return o, changed
}

func (t *Tracker) Orientation() Orientation {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.orientation
}

func (t *Tracker) Dimensions() Dimensions {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.dims
}

// Broadcaster is a DimensionSource fed by whoever owns the window events.
type Broadcaster struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Dimensions)
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: map[int]func(Dimensions){}}
}

func (b *Broadcaster) Subscribe(fn func(Dimensions)) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers d to every subscriber in the caller's goroutine.
func (b *Broadcaster) Publish(d Dimensions) {
	b.mu.Lock()
	fns := make([]func(Dimensions), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn(d)
	}
}
