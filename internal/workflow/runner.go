package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pancakes/admin-service/internal/events"
	"github.com/pancakes/admin-service/internal/metrics"
	"github.com/pancakes/admin-service/internal/models"
	"github.com/pancakes/admin-service/internal/validation"
	"go.uber.org/zap"
)

// Recorder persists audit entries. Implementations must not fail the caller.
type Recorder interface {
	Record(ctx context.Context, entry models.AuditEntry)
}

type Actor struct {
	ID        string
	IPAddress string
	UserAgent string
}

// Result is what an executor reports on success.
type Result struct {
	Data any
	// Message replaces Action.SuccessMessage when set.
	Message string
	// Status replaces 200 when set (e.g. 201 for creations).
	Status int
	// Details is stored with the audit entry.
	Details any
	// Event adds fields to the published admin_action event.
	Event map[string]any
}

type Invocation struct {
	Action   Action
	TargetID string
	Actor    Actor
	Validate func() validation.Result
	Execute  func(ctx context.Context) (Result, error)
}

type Outcome struct {
	Status  int
	Kind    Kind
	Success bool
	Message string
	Data    any
	Errors  []string
}

type Runner struct {
	recorder  Recorder
	publisher events.Publisher
	log       *zap.Logger
}

func NewRunner(recorder Recorder, publisher events.Publisher, log *zap.Logger) *Runner {
	return &Runner{recorder: recorder, publisher: publisher, log: log}
}

// Run executes inv in the fixed order validate, actor, execute, classify,
// audit. Any failing step ends the run and nothing is audited.
func (r *Runner) Run(ctx context.Context, inv Invocation) Outcome {
	start := time.Now()
	out := r.run(ctx, inv)
	metrics.AdminActionsTotal.WithLabelValues(inv.Action.Name, out.Kind.String()).Inc()
	metrics.AdminActionDuration.WithLabelValues(inv.Action.Name).Observe(time.Since(start).Seconds())
	return out
}

func (r *Runner) run(ctx context.Context, inv Invocation) Outcome {
	if inv.Validate != nil {
		if res := inv.Validate(); !res.Valid {
			return r.fail(inv, &ValidationError{Errors: res.Errors})
		}
	}

	if strings.TrimSpace(inv.Actor.ID) == "" {
		return r.fail(inv, ErrMissingActor)
	}

	result, err := r.execute(ctx, inv)
	decision := Classify(err)
	if !decision.ShouldAudit {
		return r.fail(inv, err)
	}

	// действие уже применено: аудит и событие не должны зависеть от отмены запроса
	bg := context.WithoutCancel(ctx)
	now := time.Now().UTC()
	r.recorder.Record(bg, models.AuditEntry{
		ActorID:    inv.Actor.ID,
		Action:     inv.Action.Name,
		TargetType: inv.Action.TargetType,
		TargetID:   inv.TargetID,
		Details:    r.marshalDetails(inv, result.Details),
		IPAddress:  inv.Actor.IPAddress,
		UserAgent:  inv.Actor.UserAgent,
	})
	r.publish(bg, inv, result, now)

	msg := result.Message
	if msg == "" {
		msg = inv.Action.message(KindSuccess)
	}
	status := result.Status
	if status == 0 {
		status = decision.Status
	}
	return Outcome{Status: status, Kind: KindSuccess, Success: true, Message: msg, Data: result.Data}
}

func (r *Runner) execute(ctx context.Context, inv Invocation) (result Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("executor panic: %v", p)
		}
	}()
	return inv.Execute(ctx)
}

func (r *Runner) fail(inv Invocation, err error) Outcome {
	d := Classify(err)
	out := Outcome{Status: d.Status, Kind: d.Kind, Message: inv.Action.message(d.Kind)}
	var verr *ValidationError
	if errors.As(err, &verr) {
		out.Errors = verr.Errors
	}

	fields := []zap.Field{
		zap.String("action", inv.Action.Name),
		zap.String("target_type", inv.Action.TargetType),
		zap.String("target_id", inv.TargetID),
		zap.String("actor_id", inv.Actor.ID),
		zap.String("outcome", d.Kind.String()),
	}
	if d.Kind == KindUnexpected {
		r.log.Error("admin action failed unexpectedly", append(fields, zap.Error(err))...)
	} else {
		r.log.Debug("admin action rejected", append(fields, zap.NamedError("reason", err))...)
	}
	return out
}

func (r *Runner) marshalDetails(inv Invocation, details any) json.RawMessage {
	if details == nil {
		return nil
	}
	b, err := json.Marshal(details)
	if err != nil {
		r.log.Warn("failed to marshal audit details",
			zap.String("action", inv.Action.Name),
			zap.String("target_id", inv.TargetID),
			zap.Error(err),
		)
		return nil
	}
	return b
}

func (r *Runner) publish(ctx context.Context, inv Invocation, result Result, at time.Time) {
	if r.publisher == nil {
		return
	}
	payload := map[string]any{
		"action":      inv.Action.Name,
		"target_type": inv.Action.TargetType,
		"target_id":   inv.TargetID,
		"actor_id":    inv.Actor.ID,
		"timestamp":   at.Format(time.RFC3339),
	}
	for k, v := range result.Event {
		if _, reserved := payload[k]; !reserved {
			payload[k] = v
		}
	}
	event := events.Event{Type: events.EventAdminAction, Payload: payload}
	if err := r.publisher.Publish(ctx, events.StreamAdmin, event); err != nil {
		r.log.Warn("failed to publish admin action event",
			zap.String("action", inv.Action.Name),
			zap.String("target_id", inv.TargetID),
			zap.Error(err),
		)
	}
}

// StatusFor exposes the classifier status for callers outside a Run (e.g. read endpoints).
func StatusFor(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return Classify(err).Status
}
