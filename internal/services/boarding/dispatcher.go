package boarding

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aherrington/merchant-api/internal/domain"
)

const (
	// DefaultWorkers is the worker-pool size when none is configured.
	DefaultWorkers = 4
	// MaxWorkers caps the pool regardless of configuration.
	MaxWorkers = 10

	// DefaultTimeout bounds a single outbound boarding attempt.
	DefaultTimeout = 15 * time.Second

	queueDepth = 64
)

type jobKind string

const (
	kindMerchant jobKind = "merchant"
	kindPayment  jobKind = "payment"
)

type job struct {
	kind    jobKind
	gateway Gateway
	run     func(ctx context.Context) Outcome
}

// Dispatcher runs boarding attempts on a bounded worker pool. Jobs are
// routed to a worker by entity ID, so save- and delete-triggered boarding
// for the same payment execute in submission order on one goroutine;
// there is no ordering across distinct IDs. Enqueueing never blocks the
// caller: when a worker's queue is full the job is dropped and counted.
type Dispatcher struct {
	resolver *Resolver
	logger   *zap.Logger
	timeout  time.Duration
	queues   []chan job

	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewDispatcher starts the worker pool. A non-positive workers value
// selects DefaultWorkers; values above MaxWorkers are clamped.
func NewDispatcher(resolver *Resolver, workers int, timeout time.Duration, logger *zap.Logger) *Dispatcher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	d := &Dispatcher{
		resolver: resolver,
		logger:   logger,
		timeout:  timeout,
		queues:   make([]chan job, workers),
	}
	for i := range d.queues {
		d.queues[i] = make(chan job, queueDepth)
		d.wg.Add(1)
		go d.worker(d.queues[i])
	}
	return d
}

// BoardMerchant enqueues a merchant boarding attempt. The caller's save
// operation has already committed; nothing here can fail it.
func (d *Dispatcher) BoardMerchant(merchant *domain.Merchant) {
	gateway, err := d.resolver.Resolve(merchant.GatewayType)
	if err != nil {
		d.logger.Error("merchant boarding skipped",
			zap.String("merchant_id", merchant.ID),
			zap.String("gateway_type", string(merchant.GatewayType)),
			zap.Error(err),
		)
		boardingFailuresTotal.WithLabelValues("unresolved", string(kindMerchant)).Inc()
		return
	}
	d.enqueue(merchant.ID, job{
		kind:    kindMerchant,
		gateway: gateway,
		run: func(ctx context.Context) Outcome {
			return gateway.BoardMerchant(ctx, merchant)
		},
	})
}

// BoardPayment enqueues a payment boarding attempt. Jobs for the same
// payment ID are serialized.
func (d *Dispatcher) BoardPayment(payment *domain.Payment) {
	gateway, err := d.resolver.Resolve(payment.Merchant.GatewayType)
	if err != nil {
		d.logger.Error("payment boarding skipped",
			zap.String("payment_id", payment.ID),
			zap.String("gateway_type", string(payment.Merchant.GatewayType)),
			zap.Error(err),
		)
		boardingFailuresTotal.WithLabelValues("unresolved", string(kindPayment)).Inc()
		return
	}
	d.enqueue(payment.ID, job{
		kind:    kindPayment,
		gateway: gateway,
		run: func(ctx context.Context) Outcome {
			return gateway.BoardPayment(ctx, payment)
		},
	})
}

// Close drains the queues and stops the workers. Safe to call more than
// once; jobs enqueued after Close panic, so stop accepting traffic first.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		for _, q := range d.queues {
			close(q)
		}
	})
	d.wg.Wait()
}

func (d *Dispatcher) enqueue(key string, j job) {
	q := d.queues[d.queueIndex(key)]
	select {
	case q <- j:
	default:
		d.logger.Warn("boarding queue full, dropping job",
			zap.String("kind", string(j.kind)),
			zap.String("gateway", j.gateway.Name()),
			zap.String("key", key),
		)
		boardingDroppedTotal.Inc()
	}
}

func (d *Dispatcher) queueIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.queues)))
}

func (d *Dispatcher) worker(q <-chan job) {
	defer d.wg.Done()
	for j := range q {
		d.execute(j)
	}
}

func (d *Dispatcher) execute(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	start := time.Now()
	outcome := j.run(ctx)
	labels := []string{outcome.Gateway, string(j.kind)}

	boardingAttemptsTotal.WithLabelValues(labels...).Inc()
	boardingDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())

	if outcome.Failed() {
		boardingFailuresTotal.WithLabelValues(labels...).Inc()
		d.logger.Error("boarding attempt failed",
			zap.String("gateway", outcome.Gateway),
			zap.String("kind", string(j.kind)),
			zap.Bool("retriable", outcome.Retriable),
			zap.Error(outcome.Err),
		)
		return
	}
	d.logger.Info("boarding attempt succeeded",
		zap.String("gateway", outcome.Gateway),
		zap.String("kind", string(j.kind)),
		zap.String("reference", outcome.Reference),
	)
}
