package mailer

import (
	"context"
	"errors"
	"sync"
	"time"

	"medspace-api/internal/utils"
	"medspace-api/pkg/logger"
	"medspace-api/pkg/metrics"

	"github.com/google/uuid"
)

var (
	ErrQueueFull = errors.New("mail queue is full")
	ErrClosed    = errors.New("mail dispatcher is shut down")
)

// Queue accepts messages for asynchronous delivery and returns a job id.
type Queue interface {
	Enqueue(msg Message) (string, error)
}

// Result is the outcome of one queued delivery.
type Result struct {
	JobID     string
	Message   Message
	Err       error
	Queued    time.Time
	Delivered time.Time
}

// ResultHook observes every finished delivery. Hooks run on the worker goroutine.
type ResultHook func(Result)

type DispatcherConfig struct {
	Workers     int
	QueueSize   int
	SendTimeout time.Duration
}

type job struct {
	id     string
	msg    Message
	queued time.Time
}

// Dispatcher hands messages to a fixed pool of workers so request handlers never wait on SMTP.
type Dispatcher struct {
	sender Sender
	cfg    DispatcherConfig
	hooks  []ResultHook

	jobs   chan job
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
	ctx    context.Context
	cancel context.CancelFunc
}

var _ Queue = (*Dispatcher)(nil)

func NewDispatcher(sender Sender, cfg DispatcherConfig, hooks ...ResultHook) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		sender: sender,
		cfg:    cfg,
		hooks:  append([]ResultHook{logResult}, hooks...),
		jobs:   make(chan job, cfg.QueueSize),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches the workers.
func (d *Dispatcher) Start() {
	for i := 0; i < d.cfg.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	logger.GlobalLogger.Printf("mail dispatcher started with %d workers", d.cfg.Workers)
}

func (d *Dispatcher) Enqueue(msg Message) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return "", ErrClosed
	}

	j := job{id: uuid.New().String(), msg: msg, queued: time.Now()}
	select {
	case d.jobs <- j:
		metrics.MailQueueDepth.Inc()
		return j.id, nil
	default:
		utils.RecordMailDelivery(msg.Kind, ErrQueueFull)
		return "", ErrQueueFull
	}
}

// Shutdown stops accepting work and waits for queued messages to drain.
// When ctx expires first, in-flight sends are cancelled and the rest of the queue is dropped.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		logger.GlobalLogger.Println("mail dispatcher drained")
		return nil
	case <-ctx.Done():
		d.cancel()
		<-done
		return ctx.Err()
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.jobs {
		metrics.MailQueueDepth.Dec()
		if d.ctx.Err() != nil {
			d.report(Result{JobID: j.id, Message: j.msg, Err: d.ctx.Err(), Queued: j.queued, Delivered: time.Now()})
			continue
		}
		d.deliver(j)
	}
}

func (d *Dispatcher) deliver(j job) {
	ctx := d.ctx
	if d.cfg.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.SendTimeout)
		defer cancel()
	}

	err := d.sender.Send(ctx, j.msg)
	d.report(Result{JobID: j.id, Message: j.msg, Err: err, Queued: j.queued, Delivered: time.Now()})
}

func (d *Dispatcher) report(res Result) {
	utils.RecordMailDelivery(res.Message.Kind, res.Err)
	for _, hook := range d.hooks {
		hook(res)
	}
}

func logResult(res Result) {
	if res.Err != nil {
		logger.GlobalLogger.Errorf("mail job %s (%s to %s) failed: %v", res.JobID, res.Message.Kind, res.Message.To, res.Err)
		return
	}
	logger.GlobalLogger.Debugf("mail job %s (%s to %s) delivered in %v", res.JobID, res.Message.Kind, res.Message.To, res.Delivered.Sub(res.Queued))
}
