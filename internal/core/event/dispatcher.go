package event

// Subscription identifies a registered subscriber so it can be removed later.
type Subscription uint32

type subscriber[T any] struct {
	id Subscription
	fn func(T)
}

// Dispatcher delivers events of one type to its subscribers synchronously,
// in subscription order. The zero value is ready to use.
// Single-goroutine access only (game loop) — no locks needed.
type Dispatcher[T any] struct {
	subs []subscriber[T]
	next Subscription
}

// Subscribe registers a handler and returns its subscription token.
func (d *Dispatcher[T]) Subscribe(fn func(T)) Subscription {
	d.next++
	d.subs = append(d.subs, subscriber[T]{id: d.next, fn: fn})
	return d.next
}

// Unsubscribe removes a previously registered handler. Returns false if the
// token is unknown.
func (d *Dispatcher[T]) Unsubscribe(id Subscription) bool {
	for i, s := range d.subs {
		if s.id == id {
			d.subs = append(d.subs[:i], d.subs[i+1:]...)
			return true
		}
	}
	return false
}

func (d *Dispatcher[T]) HasSubscribers() bool { return len(d.subs) > 0 }

// Clear drops all subscribers.
func (d *Dispatcher[T]) Clear() {
	d.subs = nil
}

// Publish delivers the event to every subscriber in subscription order.
func (d *Dispatcher[T]) Publish(ev T) {
	for _, s := range d.subs {
		s.fn(ev)
	}
}

type voteSubscriber[T any] struct {
	id Subscription
	fn func(T) bool
}

// VoteDispatcher delivers a vetoable event. Subscribers are consulted in
// subscription order; the aggregate result is the logical AND of their votes
// and delivery stops at the first subscriber that returns false. With no
// subscribers the vote trivially passes. The zero value is ready to use.
type VoteDispatcher[T any] struct {
	subs []voteSubscriber[T]
	next Subscription
}

// Subscribe registers a voting handler and returns its subscription token.
func (d *VoteDispatcher[T]) Subscribe(fn func(T) bool) Subscription {
	d.next++
	d.subs = append(d.subs, voteSubscriber[T]{id: d.next, fn: fn})
	return d.next
}

// Unsubscribe removes a previously registered handler. Returns false if the
// token is unknown.
func (d *VoteDispatcher[T]) Unsubscribe(id Subscription) bool {
	for i, s := range d.subs {
		if s.id == id {
			d.subs = append(d.subs[:i], d.subs[i+1:]...)
			return true
		}
	}
	return false
}

func (d *VoteDispatcher[T]) HasSubscribers() bool { return len(d.subs) > 0 }

// Clear drops all subscribers.
func (d *VoteDispatcher[T]) Clear() {
	d.subs = nil
}

// Publish delivers the event, short-circuiting on the first negative vote.
func (d *VoteDispatcher[T]) Publish(ev T) bool {
	for _, s := range d.subs {
		if !s.fn(ev) {
			return false
		}
	}
	return true
}
