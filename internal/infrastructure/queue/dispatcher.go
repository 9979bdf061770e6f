package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/Mamatha1607/connectly-group-chat-application/internal/api/metrics"
	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes notification deliveries to a fixed set of workers using
// consistent hashing on the recipient id, guaranteeing per-user notification
// ordering. Failed deliveries are logged and counted, never retried.
type Dispatcher struct {
	workers []chan ports.NotificationDelivery
	service ports.NotificationService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.NotificationService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.NotificationDelivery, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.NotificationDelivery, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a delivery to the worker responsible for its recipient.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(delivery ports.NotificationDelivery) {
	d.workers[d.shardIndex(delivery.UserID)] <- delivery
}

// EnqueueBatch enqueues multiple deliveries preserving per-user ordering.
func (d *Dispatcher) EnqueueBatch(deliveries []ports.NotificationDelivery) {
	for _, delivery := range deliveries {
		d.Enqueue(delivery)
	}
}

// shardIndex maps a recipient id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.NotificationDelivery) {
	gauge := metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case delivery, ok := <-ch:
			if !ok {
				return
			}
			gauge.Set(float64(len(ch)))
			if err := d.service.Deliver(ctx, delivery.UserID, delivery.Notification); err != nil {
				metrics.NotificationsErrorsTotal.Inc()
				d.log.Error().Err(err).
					Str("user_id", delivery.UserID).
					Str("type", delivery.Notification.Type).
					Int("worker_id", id).
					Msg("notification delivery failed")
				continue
			}
			metrics.NotificationsDeliveredTotal.WithLabelValues(delivery.Notification.Type).Inc()
		}
	}
}
