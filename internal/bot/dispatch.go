package bot

import (
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// dispatcher runs interactions on a fixed number of workers. Interactions are
// queued in arrival order; stop refuses new work and waits for queued and
// running interactions to finish.
type dispatcher struct {
	jobs   chan *discordgo.InteractionCreate
	handle func(*discordgo.InteractionCreate)

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func newDispatcher(workers int, handle func(*discordgo.InteractionCreate)) *dispatcher {
	if workers < 1 {
		workers = 1
	}
	d := &dispatcher{
		jobs:   make(chan *discordgo.InteractionCreate, workers*4),
		handle: handle,
	}
	d.wg.Add(workers)
	for n := 0; n < workers; n++ {
		go d.work()
	}
	return d
}

func (d *dispatcher) work() {
	defer d.wg.Done()
	for i := range d.jobs {
		d.handle(i)
	}
}

// submit queues an interaction, blocking while the queue is full.
// It reports false once the dispatcher has been stopped.
func (d *dispatcher) submit(i *discordgo.InteractionCreate) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return false
	}
	d.jobs <- i
	return true
}

func (d *dispatcher) stop() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()

	d.wg.Wait()
	slog.Debug("Dispatcher drained")
}
