package annotate

import "context"

// Warmed wraps an annotator whose model data loads in the background.
// Annotate blocks until loading completes; readiness is a one-time gate,
// not a recurring synchronization point.
type Warmed struct {
	ready chan struct{}
	inner Annotator
	err   error
}

// Warm starts loading in a goroutine and returns immediately. The load
// function builds the annotator (reading model data, dialing a service);
// its error is reported by every subsequent Annotate call.
func Warm(load func() (Annotator, error)) *Warmed {
	w := &Warmed{ready: make(chan struct{})}
	go func() {
		w.inner, w.err = load()
		close(w.ready)
	}()
	return w
}

// Annotate waits for the wrapped annotator to finish loading, then
// delegates to it.
func (w *Warmed) Annotate(ctx context.Context, text string) (Annotation, error) {
	select {
	case <-w.ready:
	case <-ctx.Done():
		return Annotation{}, ctx.Err()
	}
	if w.err != nil {
		return Annotation{}, w.err
	}
	return w.inner.Annotate(ctx, text)
}

// Ready reports whether loading has completed, without blocking.
func (w *Warmed) Ready() bool {
	select {
	case <-w.ready:
		return true
	default:
		return false
	}
}
