// Package keybus routes key presses to handlers that components subscribe
// for as long as they are mounted. Each subscription hands back a release
// function; nothing stays registered once its owner is torn down.
package keybus

import (
	"sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Handler reacts to a matched key press and may return a command.
type Handler func(msg tea.KeyMsg) tea.Cmd

type subscription struct {
	id      uint64
	binding key.Binding
	handle  Handler
}

// Bus dispatches key presses to subscribers. The zero value is ready to use.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscription
}

// Subscribe registers h for presses matching binding. The returned release
// func removes the subscription and is safe to call more than once.
func (b *Bus) Subscribe(binding key.Binding, h Handler) (release func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, binding: binding, handle: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

// Dispatch runs every handler whose binding matches msg, in subscription
// order, and batches their commands. handled is false when nothing matched.
func (b *Bus) Dispatch(msg tea.KeyMsg) (cmd tea.Cmd, handled bool) {
	b.mu.Lock()
	matched := make([]Handler, 0, len(b.subs))
	for _, sub := range b.subs {
		if key.Matches(msg, sub.binding) {
			matched = append(matched, sub.handle)
		}
	}
	b.mu.Unlock()

	if len(matched) == 0 {
		return nil, false
	}
	cmds := make([]tea.Cmd, 0, len(matched))
	for _, h := range matched {
		if c := h(msg); c != nil {
			cmds = append(cmds, c)
		}
	}
	switch len(cmds) {
	case 0:
		return nil, true
	case 1:
		return cmds[0], true
	}
	return tea.Batch(cmds...), true
}

// Len reports the number of live subscriptions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subs {
		if sub.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}
