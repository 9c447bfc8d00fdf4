package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/enerlink/enerlink/internal/metrics"
	"github.com/enerlink/enerlink/internal/models"
)

// RecordJob is one system-generated activity entry waiting to be written.
type RecordJob struct {
	Actor       models.ActorContext
	ClientID    *string
	PointID     *string
	ContractID  *string
	EventKind   string
	EntityKind  string
	EntityID    string
	EntityLabel string
	Diff        map[string]any
}

// Recorder buffers activity entries and writes them via a single worker
// goroutine, so entity writes never block on the log insert.
type Recorder struct {
	store ActivityStore
	log   *logrus.Logger
	jobs  chan *RecordJob
}

// NewRecorder creates a Recorder with the given queue capacity.
func NewRecorder(store ActivityStore, log *logrus.Logger, queueSize int) *Recorder {
	if queueSize <= 0 {
		queueSize = 1000
	}

	return &Recorder{
		store: store,
		log:   log,
		jobs:  make(chan *RecordJob, queueSize),
	}
}

// Enqueue adds a record job. Non-blocking; drops the job if the queue is full.
func (r *Recorder) Enqueue(job *RecordJob) {
	select {
	case r.jobs <- job:
		metrics.ActivityQueueDepth.Set(float64(len(r.jobs)))
	default:
		metrics.ActivityDropped.Inc()
		r.log.WithFields(logrus.Fields{
			"event_kind":  job.EventKind,
			"entity_kind": job.EntityKind,
		}).Warn("activity queue full, dropping entry")
	}
}

// Run processes record jobs until the context is cancelled, then drains
// remaining jobs so accepted entries are not lost on shutdown.
func (r *Recorder) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			r.drain()
			return
		case job := <-r.jobs:
			r.process(job)
		}
	}
}

func (r *Recorder) drain() {
	for {
		select {
		case job := <-r.jobs:
			r.process(job)
		default:
			return
		}
	}
}

func (r *Recorder) process(job *RecordJob) {
	metrics.ActivityQueueDepth.Set(float64(len(r.jobs)))

	entry := models.ActivityEntry{
		ClientID:     job.ClientID,
		PointID:      job.PointID,
		ContractID:   job.ContractID,
		UserID:       job.Actor.UserID,
		ActorName:    job.Actor.Name,
		ActorSurname: job.Actor.Surname,
		ActorEmail:   job.Actor.Email,
		EventKind:    job.EventKind,
		EntityKind:   job.EntityKind,
		EntityID:     job.EntityID,
		EntityLabel:  job.EntityLabel,
		Diff:         job.Diff,
	}

	if _, err := r.store.Insert(context.Background(), entry); err != nil {
		r.log.WithError(err).Warn("activity record failed")
	}
}
