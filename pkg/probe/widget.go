package probe

import (
	"context"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Widget owns the endpoint input and the single result slot of a connectivity
// probe, and guarantees that at most one probe is in flight at any time.
type Widget struct {
	prober *Prober

	lock        sync.Mutex
	endpoint    string
	inFlight    bool
	result      *Result
	closed      bool
	cancel      context.CancelFunc
	subscribers map[*subscriber]struct{}
}

type subscriber struct {
	ch chan Status
}

// offer replaces a pending, unread status so slow subscribers always observe
// the latest one. Callers must hold the widget lock.
func (s *subscriber) offer(status Status) {
	select {
	case s.ch <- status:
		return
	default:
	}
	select {
	case <-s.ch:
	default:
	}
	s.ch <- status
}

func NewWidget(prober *Prober, initialEndpoint string) *Widget {
	if prober == nil {
		prober = NewProber(nil)
	}
	return &Widget{
		prober:      prober,
		endpoint:    initialEndpoint,
		subscribers: make(map[*subscriber]struct{}),
	}
}

// SetEndpoint edits the endpoint input. Edits are rejected while a probe is
// in flight, mirroring a disabled input field.
func (w *Widget) SetEndpoint(endpoint string) bool {
	w.lock.Lock()
	defer w.lock.Unlock()

	if w.inFlight || w.closed {
		return false
	}

	w.endpoint = endpoint
	w.notify()
	return true
}

func (w *Widget) Endpoint() string {
	w.lock.Lock()
	defer w.lock.Unlock()

	return w.endpoint
}

func (w *Widget) Status() Status {
	w.lock.Lock()
	defer w.lock.Unlock()

	return w.status()
}

func (w *Widget) status() Status {
	s := Status{State: StateIdle, Endpoint: w.endpoint}
	switch {
	case w.inFlight:
		s.State = StateInFlight
	case w.result != nil:
		r := *w.result
		s.State = StateCompleted
		s.Result = &r
	}
	return s
}

// Submit starts a probe against the current endpoint input and returns the
// status it left the widget in. It returns false without doing anything if a
// probe is already in flight or the widget is closed. An empty input
// completes synchronously with a validation error and never enters the
// in-flight state.
func (w *Widget) Submit(ctx context.Context) (Status, bool) {
	w.lock.Lock()
	defer w.lock.Unlock()

	if w.inFlight || w.closed {
		log.WithFields(log.Fields{"kind": "probe"}).Debug("submit ignored; probe already in flight")
		return w.status(), false
	}

	raw := w.endpoint
	if strings.TrimSpace(raw) == "" {
		r := failure(KindValidation, "", 0, MessageMissingEndpoint)
		w.result = &r
		w.notify()
		return w.status(), true
	}

	probeCtx, cancel := context.WithCancel(ctx)
	w.inFlight = true
	w.result = nil
	w.cancel = cancel
	w.notify()
	submitted := w.status()

	go func() {
		defer cancel()
		res := w.prober.Run(probeCtx, raw)
		w.complete(res)
	}()

	return submitted, true
}

func (w *Widget) complete(res Result) {
	w.lock.Lock()
	defer w.lock.Unlock()

	if w.closed {
		log.WithFields(log.Fields{"kind": "probe", "url": res.TargetURL}).Debug("discarding result of abandoned probe")
		return
	}

	w.inFlight = false
	w.cancel = nil
	w.result = &res
	w.notify()
}

// Subscribe returns a channel carrying the current status followed by every
// subsequent change, and a function that ends the subscription.
func (w *Widget) Subscribe() (<-chan Status, func()) {
	w.lock.Lock()
	defer w.lock.Unlock()

	sub := &subscriber{ch: make(chan Status, 1)}
	sub.offer(w.status())
	if !w.closed {
		w.subscribers[sub] = struct{}{}
	}

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			w.lock.Lock()
			defer w.lock.Unlock()
			delete(w.subscribers, sub)
		})
	}
}

// Wait blocks until no probe is in flight and returns the resulting status.
func (w *Widget) Wait(ctx context.Context) (Status, error) {
	ch, cancel := w.Subscribe()
	defer cancel()

	for {
		select {
		case s := <-ch:
			if s.State != StateInFlight {
				return s, nil
			}
		case <-ctx.Done():
			return w.Status(), ctx.Err()
		}
	}
}

// Close tears the widget down. An in-flight probe is abandoned and its result
// discarded; further submissions are ignored.
func (w *Widget) Close() {
	w.lock.Lock()
	defer w.lock.Unlock()

	if w.closed {
		return
	}

	w.closed = true
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.subscribers = make(map[*subscriber]struct{})
}

func (w *Widget) notify() {
	s := w.status()
	for sub := range w.subscribers {
		sub.offer(s)
	}
}
