package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/store"
)

var (
	// ErrBlankName rejects add/edit intents whose name is empty after trimming.
	ErrBlankName = errors.New("name cannot be blank")
	// ErrUnknownItem is returned when an id or position is not in the cache.
	ErrUnknownItem = errors.New("item not in list")
	// ErrClosed is returned for intents issued after Close.
	ErrClosed = errors.New("controller closed")
)

// Controller owns the in-memory copy of the list and orchestrates every
// store call through a single worker goroutine.
type Controller struct {
	store  store.Store
	logger *slog.Logger

	qmu     sync.Mutex
	queue   []op
	closed  bool
	wake    chan struct{}
	stopped chan struct{}

	mu    sync.RWMutex
	cache []model.ShoppingItem
	subs  map[chan []model.ShoppingItem]struct{}
}

type op struct {
	name    string
	id      string
	run     func(ctx context.Context) error
	pending *Pending
}

// New starts a controller over s and queues the initial load.
func New(s store.Store, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		store:   s,
		logger:  logger.With("component", "controller"),
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
		cache:   []model.ShoppingItem{},
		subs:    make(map[chan []model.ShoppingItem]struct{}),
	}
	go c.loop()
	c.Refresh()
	return c
}

// ---------------------------------------------------
// Intents
// ---------------------------------------------------

// Refresh re-reads the store and replaces the cache wholesale.
func (c *Controller) Refresh() *Pending {
	return c.enqueue("refresh", c.refresh)
}

// Add persists a new, not-yet-bought item then refreshes.
func (c *Controller) Add(name string) *Pending {
	if model.IsBlank(name) {
		return failed(ErrBlankName)
	}
	item := model.NewItem(name)
	return c.enqueue("add", func(ctx context.Context) error {
		if _, err := c.store.Insert(ctx, item); err != nil {
			return fmt.Errorf("add: %w", err)
		}
		return c.refresh(ctx)
	})
}

// ToggleBought flips the bought state of the item with id and patches the
// cache in place without a refresh.
func (c *Controller) ToggleBought(id int64) *Pending {
	return c.enqueue("toggle", func(ctx context.Context) error {
		return c.toggle(ctx, id)
	})
}

// ToggleBoughtAt toggles the item at position in the cache. The position
// is resolved to an id when the operation runs, not when it is queued.
func (c *Controller) ToggleBoughtAt(position int) *Pending {
	return c.enqueue("toggle", func(ctx context.Context) error {
		c.mu.RLock()
		if position < 0 || position >= len(c.cache) {
			n := len(c.cache)
			c.mu.RUnlock()
			return fmt.Errorf("toggle: position %d of %d: %w", position, n, ErrUnknownItem)
		}
		id := c.cache[position].ID
		c.mu.RUnlock()
		return c.toggle(ctx, id)
	})
}

// Delete removes item from the store then refreshes.
func (c *Controller) Delete(item model.ShoppingItem) *Pending {
	return c.enqueue("delete", func(ctx context.Context) error {
		if err := c.store.Delete(ctx, item); err != nil {
			return fmt.Errorf("delete: %w", err)
		}
		return c.refresh(ctx)
	})
}

// Edit renames item then refreshes. The bought state is taken from the
// cache when the item is there, so a queued toggle is not undone.
func (c *Controller) Edit(item model.ShoppingItem, newName string) *Pending {
	if model.IsBlank(newName) {
		return failed(ErrBlankName)
	}
	return c.enqueue("edit", func(ctx context.Context) error {
		current := item
		if cached, ok := c.lookup(item.ID); ok {
			current = cached
		}
		if err := c.store.Update(ctx, current.Renamed(newName)); err != nil {
			return fmt.Errorf("edit: %w", err)
		}
		return c.refresh(ctx)
	})
}

// ---------------------------------------------------
// Cache access
// ---------------------------------------------------

// Items returns a copy of the cached list, newest first.
func (c *Controller) Items() []model.ShoppingItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone(c.cache)
}

// Stats reports bought and total counts of the cached list.
func (c *Controller) Stats() (bought, total int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return model.Stats(c.cache)
}

// Subscribe returns a channel carrying the latest cache snapshot. It holds
// at most one value; a slow reader only ever sees the newest list. The
// current snapshot is delivered immediately. The channel is closed by the
// returned cancel func or by Close.
func (c *Controller) Subscribe() (<-chan []model.ShoppingItem, func()) {
	ch := make(chan []model.ShoppingItem, 1)

	c.mu.Lock()
	if c.subs == nil {
		c.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	c.subs[ch] = struct{}{}
	ch <- clone(c.cache)
	c.mu.Unlock()

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.subs[ch]; ok {
			delete(c.subs, ch)
			close(ch)
		}
	}
}

// Close stops accepting intents, lets queued ones finish and closes all
// subscriptions. It does not close the store.
func (c *Controller) Close() error {
	c.qmu.Lock()
	already := c.closed
	c.closed = true
	c.qmu.Unlock()

	if !already {
		c.signal()
	}
	<-c.stopped

	c.mu.Lock()
	for ch := range c.subs {
		close(ch)
	}
	c.subs = nil
	c.mu.Unlock()
	return nil
}

// ---------------------------------------------------
// Worker
// ---------------------------------------------------

func (c *Controller) enqueue(name string, run func(ctx context.Context) error) *Pending {
	p := newPending()

	c.qmu.Lock()
	if c.closed {
		c.qmu.Unlock()
		p.finish(ErrClosed)
		return p
	}
	c.queue = append(c.queue, op{name: name, id: uuid.NewString(), run: run, pending: p})
	c.qmu.Unlock()

	c.signal()
	return p
}

func (c *Controller) signal() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *Controller) loop() {
	defer close(c.stopped)
	for {
		c.qmu.Lock()
		for len(c.queue) == 0 {
			if c.closed {
				c.qmu.Unlock()
				return
			}
			c.qmu.Unlock()
			<-c.wake
			c.qmu.Lock()
		}
		next := c.queue[0]
		c.queue[0] = op{}
		c.queue = c.queue[1:]
		c.qmu.Unlock()

		c.execute(next)
	}
}

func (c *Controller) execute(o op) {
	logger := c.logger.With("op", o.name, "op_id", o.id)
	start := time.Now()

	// Operations are never cancelled once dequeued.
	err := o.run(context.Background())
	if err != nil {
		logger.Error("operation failed", "error", err)
	} else {
		logger.Debug("operation done", "took", time.Since(start))
	}
	o.pending.finish(err)
}

// The helpers below run on the worker goroutine only.

func (c *Controller) refresh(ctx context.Context) error {
	items, err := c.store.List(ctx)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	c.mu.Lock()
	c.cache = items
	c.publishLocked()
	c.mu.Unlock()
	return nil
}

func (c *Controller) toggle(ctx context.Context, id int64) error {
	item, ok := c.lookup(id)
	if !ok {
		return fmt.Errorf("toggle: id %d: %w", id, ErrUnknownItem)
	}
	updated := item.Toggled()
	if err := c.store.Update(ctx, updated); err != nil {
		return fmt.Errorf("toggle: %w", err)
	}

	// Patch whatever position the item holds now.
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.cache {
		if c.cache[i].ID == id {
			c.cache[i] = updated
			c.publishLocked()
			break
		}
	}
	return nil
}

func (c *Controller) lookup(id int64) (model.ShoppingItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.cache {
		if it.ID == id {
			return it, true
		}
	}
	return model.ShoppingItem{}, false
}

// publishLocked must be called with c.mu held for writing. Each channel is
// drained first, so the send never blocks.
func (c *Controller) publishLocked() {
	for ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- clone(c.cache)
	}
}

func clone(items []model.ShoppingItem) []model.ShoppingItem {
	out := make([]model.ShoppingItem, len(items))
	copy(out, items)
	return out
}
