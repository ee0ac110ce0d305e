package engine

import (
	"errors"

	"github.com/vantling/shipforge/internal/blueprint"
	"github.com/vantling/shipforge/internal/engine/dispatch"
	"github.com/vantling/shipforge/internal/engine/history"
	"github.com/vantling/shipforge/internal/logging"
	"github.com/vantling/shipforge/internal/scene"
)

// ErrNoDocument indicates an operation that needs an open document.
var ErrNoDocument = errors.New("no document open")

// Engine is the facade tying the editing pieces together for one session:
// the scene, its history, and the request queue feeding it. The host process
// owns exactly one Engine and calls Tick once per processing cycle from a
// single goroutine; producers anywhere may call Enqueue.
type Engine struct {
	scene   *scene.Scene
	history *history.History
	queue   *dispatch.Queue
	log     *logging.Logger
}

// New creates an engine with no document open.
func New(opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Engine{
		history: history.New(cfg.log.WithComponent("history")),
		queue:   dispatch.NewQueue(cfg.log.WithComponent("dispatch")),
		log:     cfg.log,
	}
}

// Open replaces the current document. The history is cleared first so no log
// entry can refer to the discarded scene, and pending queued requests are
// dropped for the same reason.
func (e *Engine) Open(bp *blueprint.Blueprint) {
	e.history.Clear()
	e.queue.Discard()
	e.scene = scene.New(bp)
	e.log.Debug("opened document %q with %d components", bp.Data.Alias, e.scene.ComponentCount())
}

// OpenFile loads a blueprint file and opens it.
func (e *Engine) OpenFile(path string) error {
	bp, err := blueprint.Load(path)
	if err != nil {
		return err
	}
	e.Open(bp)
	return nil
}

// SaveFile writes the current document to path.
func (e *Engine) SaveFile(path string) error {
	if e.scene == nil {
		return ErrNoDocument
	}
	return blueprint.Save(path, e.scene.Blueprint())
}

// Scene returns the open document, or nil before the first Open.
func (e *Engine) Scene() *scene.Scene { return e.scene }

// History returns the session history.
func (e *Engine) History() *history.History { return e.history }

// Queue returns the request queue.
func (e *Engine) Queue() *dispatch.Queue { return e.queue }

// Enqueue submits a request for the next Tick. Safe from any goroutine.
func (e *Engine) Enqueue(r dispatch.Request) {
	e.queue.Enqueue(r)
}

// Tick drains the request queue once against the open document and returns
// the number of requests processed. With no document open, pending requests
// are discarded with a diagnostic rather than applied to stale state.
func (e *Engine) Tick() int {
	if e.scene == nil {
		return e.queue.Discard()
	}
	return e.queue.Drain(e.history, e.scene)
}
