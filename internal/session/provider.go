package session

import "sync"

// Source is a push-based identity provider. It invokes the callback with the
// signed-in user id, or "" when nobody is signed in, every time the auth
// state changes. The returned func stops delivery.
type Source interface {
	Listen(func(userID string)) (stop func())
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(func(userID string)) func()

func (f SourceFunc) Listen(cb func(userID string)) func() { return f(cb) }

// Provider adapts a Source into an explicit Session with the lifecycle
// init -> listening -> authenticated | anonymous.
type Provider struct {
	src Source

	mu      sync.Mutex
	current Session
	subs    map[int]func(Session)
	nextID  int
	started bool
	stopped bool
	stop    func()
}

func NewProvider(src Source) *Provider {
	return &Provider{
		src:     src,
		current: Session{State: StateInit},
		subs:    make(map[int]func(Session)),
	}
}

// Start begins listening. Calling Start more than once has no effect.
func (p *Provider) Start() {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	p.transition(Session{State: StateListening})
	stop := p.src.Listen(func(userID string) {
		if userID == "" {
			p.transition(Anonymous())
			return
		}
		p.transition(Authenticated(userID))
	})

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		stop()
		return
	}
	p.stop = stop
	p.mu.Unlock()
}

func (p *Provider) Current() Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Subscribe registers fn for every transition and calls it once with the
// current session.
func (p *Provider) Subscribe(fn func(Session)) (unsubscribe func()) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = fn
	cur := p.current
	p.mu.Unlock()

	fn(cur)
	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

func (p *Provider) Stop() {
	p.mu.Lock()
	stop := p.stop
	p.stop = nil
	p.stopped = true
	p.mu.Unlock()
	if stop != nil {
		stop()
	}
}

func (p *Provider) transition(s Session) {
	p.mu.Lock()
	p.current = s
	fns := make([]func(Session), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}
