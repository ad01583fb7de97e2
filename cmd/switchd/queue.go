package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/sweeney/switchd/internal/logic"
	"github.com/sweeney/switchd/internal/mqtt"
)

// publishQueueSize bounds the events waiting for a slow broker.
const publishQueueSize = 256

type publishJob struct {
	event  logic.Event
	system *mqtt.SystemEvent
}

// publishQueue hands events to a goroutine that publishes them in order, so
// a stalled broker never holds up device polling.
type publishQueue struct {
	publisher mqtt.Publisher
	jobs      chan publishJob
	done      chan struct{}
}

func newPublishQueue(publisher mqtt.Publisher, size int) *publishQueue {
	q := &publishQueue{
		publisher: publisher,
		jobs:      make(chan publishJob, size),
		done:      make(chan struct{}),
	}
	go q.drain()
	return q
}

func (q *publishQueue) drain() {
	defer close(q.done)
	for job := range q.jobs {
		if job.system != nil {
			if err := q.publisher.PublishSystem(*job.system); err != nil {
				log.WithError(err).Warnf("%s publish error", job.system.Event)
			}
			continue
		}
		if err := q.publisher.Publish(job.event); err != nil {
			log.WithError(err).WithField("input", job.event.Input).Warn("publish error")
		}
	}
}

func (q *publishQueue) enqueue(job publishJob) bool {
	select {
	case q.jobs <- job:
		return true
	default:
		return false
	}
}

// Publish queues a switch event. It reports false, and drops the event, when
// the queue is full.
func (q *publishQueue) Publish(event logic.Event) bool {
	if !q.enqueue(publishJob{event: event}) {
		log.WithField("input", event.Input).Warnf("publish queue full, dropping %s", event.Flags)
		return false
	}
	return true
}

// PublishSystem queues a lifecycle event, dropping it when the queue is full.
func (q *publishQueue) PublishSystem(event mqtt.SystemEvent) bool {
	if !q.enqueue(publishJob{system: &event}) {
		log.Warnf("publish queue full, dropping %s", event.Event)
		return false
	}
	return true
}

// Close stops accepting events and waits until the queued ones are published.
func (q *publishQueue) Close() {
	close(q.jobs)
	<-q.done
}
