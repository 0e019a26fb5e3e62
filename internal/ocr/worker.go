package ocr

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gocv.io/x/gocv"

	"loot-lens/internal/itemdb"
	"loot-lens/pkg/geometry"
)

// Queue sizes. Tasks are dropped when the queue is full because a
// fresher frame is always coming; results are drained completely every
// detection tick, so the result buffer never fills in practice.
const (
	taskQueueSize   = 4
	resultQueueSize = 16
)

// Task is one OCR request. Both Mats must be initialized, an absent
// secondary region is a valid empty Mat. The Mats are owned by the
// worker once submitted and are closed after processing.
type Task struct {
	ID        int64
	Primary   gocv.Mat
	Secondary gocv.Mat
	Panel     geometry.Box
}

// Close releases the task's image buffers. Callers use it when a
// submit is rejected.
func (t *Task) Close() {
	t.Primary.Close()
	t.Secondary.Close()
}

// Result is the outcome of one OCR task. Name and Row are zero when no
// line of the crop matched the item database.
type Result struct {
	TaskID        int64
	Name          string
	Row           *itemdb.Row
	Panel         geometry.Box
	UsedSecondary bool
	Err           error
}

// Recognizer turns a name region into text lines. *Engine is the real
// implementation.
type Recognizer interface {
	Lines(roi gocv.Mat) ([]string, error)
	Close() error
}

// ResolveFunc matches an OCR line against the item database.
type ResolveFunc func(name string) (*itemdb.Row, bool)

// Worker runs OCR on a dedicated goroutine so recognition latency
// never stalls the capture loop. The Tesseract client is confined to
// that goroutine.
type Worker struct {
	tasks   chan Task
	results chan Result
	done    chan struct{}

	newEngine func() (Recognizer, error)
	resolve   ResolveFunc
}

// NewWorker creates a worker. newEngine runs during Start so an
// unusable engine aborts startup; the engine itself is then confined
// to the worker goroutine.
func NewWorker(newEngine func() (Recognizer, error), resolve ResolveFunc) *Worker {
	return &Worker{
		tasks:     make(chan Task, taskQueueSize),
		results:   make(chan Result, resultQueueSize),
		done:      make(chan struct{}),
		newEngine: newEngine,
		resolve:   resolve,
	}
}

// Start brings up the engine and launches the worker goroutine. An
// engine that cannot initialize is returned as an error so the caller
// can abort startup.
func (w *Worker) Start() error {
	engine, err := w.newEngine()
	if err != nil {
		return err
	}
	go w.run(engine)
	return nil
}

// Submit queues a task without blocking. It returns false when the
// queue is full; the caller keeps ownership of the task in that case.
func (w *Worker) Submit(t Task) bool {
	select {
	case w.tasks <- t:
		return true
	default:
		return false
	}
}

// Results returns the channel recognition outcomes arrive on.
func (w *Worker) Results() <-chan Result {
	return w.results
}

// Stop shuts the worker down and waits for it to release the engine.
// No Submit may follow.
func (w *Worker) Stop() {
	close(w.tasks)
	<-w.done
}

func (w *Worker) run(engine Recognizer) {
	defer close(w.done)
	defer func() {
		if err := engine.Close(); err != nil {
			log.Warn().Err(err).Msg("closing OCR engine")
		}
	}()

	for task := range w.tasks {
		res := w.process(engine, task)
		task.Close()

		select {
		case w.results <- res:
		default:
			// Consumer gone or stalled for many ticks. Losing a
			// result only delays the overlay by one OCR cycle.
			log.Warn().Int64("task", res.TaskID).Msg("dropping OCR result, queue full")
		}
	}
}

// process tries every recognized line of the primary region against
// the database, then falls back to the secondary region. A panic or
// error in recognition is isolated into the result.
func (w *Worker) process(engine Recognizer, task Task) (res Result) {
	res = Result{TaskID: task.ID, Panel: task.Panel}

	// The Tesseract and OpenCV bindings cross into native code; a
	// panic there must not take the worker down.
	defer func() {
		if r := recover(); r != nil {
			res = Result{TaskID: task.ID, Panel: task.Panel, Err: fmt.Errorf("recognition panic: %v", r)}
		}
	}()

	if !task.Primary.Empty() {
		lines, err := engine.Lines(task.Primary)
		if err != nil {
			res.Err = err
			return res
		}
		for _, line := range lines {
			if row, ok := w.resolve(line); ok {
				res.Name = line
				res.Row = row
				return res
			}
		}
	}

	if !task.Secondary.Empty() {
		lines, err := engine.Lines(task.Secondary)
		if err != nil {
			res.Err = err
			return res
		}
		for _, line := range lines {
			if row, ok := w.resolve(line); ok {
				res.Name = line
				res.Row = row
				res.UsedSecondary = true
				return res
			}
		}
	}

	return res
}
