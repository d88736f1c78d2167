package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-bank-client/internal/logger"
	"github.com/sbilibin2017/gw-bank-client/internal/models"
	"github.com/segmentio/kafka-go"
	"golang.org/x/sync/singleflight"
)

// DefaultReportInterval is the fixed delay between two polls of a report job.
const DefaultReportInterval = 3 * time.Second

var (
	// ErrNoTaskHandle is returned when a submission did not yield a task id.
	ErrNoTaskHandle = errors.New("report submission returned no task id")
	// ErrReportAttemptsExhausted is returned when the poll limit is reached.
	ErrReportAttemptsExhausted = errors.New("report not ready within the allowed number of polls")
	// ErrArtifactMissing is returned when a finished job has nothing to download.
	ErrArtifactMissing = errors.New("report finished without an artifact")
	// ErrReportStatusMissing is returned for a JSON poll response without status.
	ErrReportStatusMissing = errors.New("report status missing")
)

// ReportFailedError is returned when the backend reports the job as failed.
type ReportFailedError struct {
	Status string
}

func (e *ReportFailedError) Error() string {
	return "report generation failed with status " + e.Status
}

//go:generate mockgen -source=report.go -destination=mock_report.go -package=services

// ReportAPI defines the report job endpoints of the bank backend.
type ReportAPI interface {
	SubmitReport(ctx context.Context, credential string) (*models.ReportTask, error)
	CheckReport(ctx context.Context, credential, taskID string) (*models.ReportPoll, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// ReportOptions bounds a report job.
type ReportOptions struct {
	Interval    time.Duration // delay between polls, DefaultReportInterval when zero
	MaxAttempts int           // polls before giving up, 0 for no limit
	Deadline    time.Duration // wall clock budget of a job, 0 for none
}

// ReportPoller submits a statement job and polls it until it produces an
// artifact or fails. At most one job runs at a time; concurrent callers of
// Run share the job in flight.
type ReportPoller struct {
	api         ReportAPI
	sessions    SessionProvider
	kafkaWriter KafkaWriter
	opts        ReportOptions

	wait func(ctx context.Context, d time.Duration) error
	now  func() time.Time

	group singleflight.Group

	mu   sync.RWMutex
	snap models.ReportSnapshot
}

// NewReportPoller creates a new ReportPoller. kafkaWriter may be nil.
func NewReportPoller(api ReportAPI, sessions SessionProvider, kafkaWriter KafkaWriter, opts ReportOptions) *ReportPoller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultReportInterval
	}
	return &ReportPoller{
		api:         api,
		sessions:    sessions,
		kafkaWriter: kafkaWriter,
		opts:        opts,
		wait:        sleepContext,
		now:         time.Now,
		snap:        models.ReportSnapshot{State: models.ReportStateIdle},
	}
}

// Run generates a statement and returns its artifact. The job stops when ctx
// of the caller that started it is done. Callers joining a running job stop
// waiting when their own ctx is done.
func (p *ReportPoller) Run(ctx context.Context) (*models.Artifact, error) {
	ch := p.group.DoChan("statement", func() (interface{}, error) {
		return p.run(ctx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.Artifact), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Status returns a snapshot of the current or last job.
func (p *ReportPoller) Status() models.ReportSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}

func (p *ReportPoller) run(ctx context.Context) (*models.Artifact, error) {
	state, err := p.sessions.State()
	if err != nil {
		return nil, err
	}
	credential := state.Credential()

	p.mu.Lock()
	p.snap = models.ReportSnapshot{State: models.ReportStateSubmitted, StartedAt: p.now()}
	p.mu.Unlock()

	if p.opts.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.Deadline)
		defer cancel()
	}

	task, err := p.api.SubmitReport(ctx, credential)
	if err != nil {
		return p.fail(ctx, state, fmt.Errorf("submitting report: %w", err))
	}
	if task == nil || strings.TrimSpace(task.TaskID) == "" {
		return p.fail(ctx, state, ErrNoTaskHandle)
	}
	taskID := strings.TrimSpace(task.TaskID)

	p.mu.Lock()
	p.snap.TaskID = taskID
	p.snap.State = models.ReportStatePolling
	p.mu.Unlock()
	logger.Log.Infow("report job submitted", "task_id", taskID)

	for {
		if p.exhausted() {
			return p.fail(ctx, state, ErrReportAttemptsExhausted)
		}

		poll, err := p.check(ctx, credential, taskID)
		if err != nil {
			return p.fail(ctx, state, err)
		}
		if poll.Artifact != nil {
			return p.ready(ctx, poll.Artifact)
		}

		status := strings.ToLower(strings.TrimSpace(poll.Status))
		switch {
		case status == models.ReportStatusPending:
			if err := p.wait(ctx, p.opts.Interval); err != nil {
				return p.fail(ctx, state, fmt.Errorf("waiting for report: %w", err))
			}
			p.mu.Lock()
			p.snap.Waits++
			p.mu.Unlock()
		case status == "":
			return p.fail(ctx, state, fmt.Errorf("%w: %w", models.ErrMalformedResponse, ErrReportStatusMissing))
		case isFailureStatus(status):
			return p.fail(ctx, state, &ReportFailedError{Status: poll.Status})
		default:
			return p.finish(ctx, state, credential, taskID, poll)
		}
	}
}

// finish resolves the artifact of a job that reported success without
// sending it: the announced location is used, otherwise the endpoint is asked
// once more if the attempt budget allows.
func (p *ReportPoller) finish(ctx context.Context, state *AppState, credential, taskID string, poll *models.ReportPoll) (*models.Artifact, error) {
	if poll.Location != "" {
		return p.ready(ctx, &models.Artifact{Location: poll.Location})
	}
	if p.exhausted() {
		return p.fail(ctx, state, ErrReportAttemptsExhausted)
	}

	again, err := p.check(ctx, credential, taskID)
	if err != nil {
		return p.fail(ctx, state, err)
	}
	switch {
	case again.Artifact != nil:
		return p.ready(ctx, again.Artifact)
	case again.Location != "":
		return p.ready(ctx, &models.Artifact{Location: again.Location})
	}
	return p.fail(ctx, state, ErrArtifactMissing)
}

func (p *ReportPoller) exhausted() bool {
	return p.opts.MaxAttempts > 0 && p.Status().Polls >= p.opts.MaxAttempts
}

func (p *ReportPoller) check(ctx context.Context, credential, taskID string) (*models.ReportPoll, error) {
	p.mu.Lock()
	p.snap.Polls++
	p.mu.Unlock()

	poll, err := p.api.CheckReport(ctx, credential, taskID)
	if err != nil {
		return nil, fmt.Errorf("checking report: %w", err)
	}
	if poll == nil {
		return nil, fmt.Errorf("checking report: %w", models.ErrMalformedResponse)
	}
	return poll, nil
}

func (p *ReportPoller) ready(ctx context.Context, artifact *models.Artifact) (*models.Artifact, error) {
	p.mu.Lock()
	p.snap.State = models.ReportStateArtifactReady
	p.snap.Artifact = artifact
	snap := p.snap
	p.mu.Unlock()

	logger.Log.Infow("report ready", "task_id", snap.TaskID, "polls", snap.Polls, "bytes", len(artifact.Data), "location", artifact.Location)
	p.publish(ctx, snap)
	return artifact, nil
}

func (p *ReportPoller) fail(ctx context.Context, state *AppState, err error) (*models.Artifact, error) {
	if errors.Is(err, models.ErrUnauthorized) {
		p.sessions.Expire(ctx, state)
		err = ErrSessionExpired
	}

	p.mu.Lock()
	p.snap.State = models.ReportStateFailed
	p.snap.Error = err.Error()
	snap := p.snap
	p.mu.Unlock()

	logger.Log.Errorw("report generation failed", "task_id", snap.TaskID, "polls", snap.Polls, "err", err)
	p.publish(ctx, snap)
	return nil, err
}

// publish sends the terminal state of a job to Kafka.
func (p *ReportPoller) publish(ctx context.Context, snap models.ReportSnapshot) {
	if p.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "task_id", snap.TaskID)
		return
	}

	event := models.ReportEvent{
		EventID:   uuid.NewString(),
		TaskID:    snap.TaskID,
		State:     snap.State,
		Polls:     snap.Polls,
		Error:     snap.Error,
		Timestamp: p.now().Unix(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal report event for Kafka", "task_id", snap.TaskID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(snap.TaskID),
		Value: data,
	}

	// The job may have ended because ctx was cancelled; the event still goes out.
	if err := p.kafkaWriter.WriteMessages(context.WithoutCancel(ctx), msg); err != nil {
		logger.Log.Errorw("Failed to publish report event to Kafka", "task_id", snap.TaskID, "error", err)
	} else {
		logger.Log.Infow("Report event published to Kafka", "task_id", snap.TaskID, "state", snap.State)
	}
}

func isFailureStatus(status string) bool {
	switch status {
	case "error", "failed", "failure":
		return true
	}
	return false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
