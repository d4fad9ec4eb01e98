package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrSubscriberFull = errors.New("subscriber channel is full")

// SimpleBroker is an in-process Broker. Sends to ordinary subscribers
// never block: a message for a subscriber whose channel is full is
// dropped and reported. Subscribers registered with SubscribeBlocking
// receive every message, and Publish waits for them.
type SimpleBroker struct {
	subscribers map[string]chan<- Message
	blocking    map[string]bool
	dropped     int
	mu          sync.RWMutex
}

func NewBroker() *SimpleBroker {
	return &SimpleBroker{
		subscribers: make(map[string]chan<- Message),
		blocking:    make(map[string]bool),
	}
}

func (b *SimpleBroker) Publish(msg Message) error {
	b.mu.Lock()
	recipients := msg.To
	if len(recipients) == 0 {
		for id := range b.subscribers {
			if id != msg.From {
				recipients = append(recipients, id)
			}
		}
	}

	var errs []error
	var waiting []chan<- Message
	for _, id := range recipients {
		ch, ok := b.subscribers[id]
		if !ok {
			continue
		}
		if b.blocking[id] {
			waiting = append(waiting, ch)
			continue
		}
		select {
		case ch <- msg:
		default:
			b.dropped++
			errs = append(errs, fmt.Errorf("%w: %s", ErrSubscriberFull, id))
		}
	}
	b.mu.Unlock()

	// Blocking sends happen outside the lock so a slow consumer does
	// not stall Subscribe and Unsubscribe.
	for _, ch := range waiting {
		ch <- msg
	}
	return errors.Join(errs...)
}

func (b *SimpleBroker) Subscribe(id string, ch chan<- Message) error {
	return b.subscribe(id, ch, false)
}

// SubscribeBlocking registers ch for lossless delivery. The subscriber
// must keep draining ch until it unsubscribes, and may close ch only
// once no Publish call is in flight.
func (b *SimpleBroker) SubscribeBlocking(id string, ch chan<- Message) error {
	return b.subscribe(id, ch, true)
}

func (b *SimpleBroker) subscribe(id string, ch chan<- Message, blocking bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subscribers[id]; exists {
		return fmt.Errorf("%s is already subscribed", id)
	}
	b.subscribers[id] = ch
	if blocking {
		b.blocking[id] = true
	}
	return nil
}

func (b *SimpleBroker) Unsubscribe(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subscribers[id]; !exists {
		return fmt.Errorf("%s is not subscribed", id)
	}
	delete(b.subscribers, id)
	delete(b.blocking, id)
	return nil
}

// Dropped returns how many deliveries were skipped because a
// subscriber's channel was full.
func (b *SimpleBroker) Dropped() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dropped
}

func (b *SimpleBroker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = make(map[string]chan<- Message)
	b.blocking = make(map[string]bool)
	b.dropped = 0
}

// Consume calls handle for every message received on ch until ch is
// closed or ctx is done.
func Consume(ctx context.Context, ch <-chan Message, handle func(Message)) {
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			handle(msg)
		case <-ctx.Done():
			return
		}
	}
}
