package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("export")

//go:generate mockgen -destination=mocks/mock_sink.go -package=mocks . Sink

// Sink keeps a copy of an exported snapshot.
type Sink interface {
	Name() string
	Save(ctx context.Context, id string, snap Snapshot, payload []byte) error
}

// Archiver hands every exported snapshot to the configured sinks.
type Archiver struct {
	sinks []Sink
	newID func() string
}

// NewArchiver creates an Archiver. With no sinks Archive only assigns an ID.
func NewArchiver(sinks ...Sink) *Archiver {
	return &Archiver{
		sinks: sinks,
		newID: uuid.NewString,
	}
}

// Enabled reports whether any sink is configured.
func (a *Archiver) Enabled() bool {
	return len(a.sinks) > 0
}

// Archive encodes snap once and saves it to every sink. A failing sink does
// not stop the others; all failures are returned together.
func (a *Archiver) Archive(ctx context.Context, snap Snapshot) (string, error) {
	id := a.newID()
	ctx, span := tracer.Start(ctx, "export.Archive", trace.WithAttributes(
		attribute.String("snapshot.id", id),
		attribute.Int("export.sinks", len(a.sinks)),
	))
	defer span.End()

	payload, err := Encode(snap)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to encode snapshot")
		return "", err
	}

	var errs []error
	for _, sink := range a.sinks {
		if err := sink.Save(ctx, id, snap, payload); err != nil {
			slog.ErrorContext(ctx, "failed to archive snapshot", "snapshot.id", id, "sink", sink.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s sink: %w", sink.Name(), err))
			continue
		}
		slog.DebugContext(ctx, "snapshot archived", "snapshot.id", id, "sink", sink.Name())
	}

	if err := errors.Join(errs...); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to archive snapshot")
		return id, err
	}
	return id, nil
}
