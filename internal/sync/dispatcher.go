package sync

import (
	"context"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Reconciler merges one incoming change event into every cache that might
// hold a stale copy of the affected entity. Returned errors describe a
// dropped event; they never abort the batch the event arrived in.
type Reconciler interface {
	Apply(ctx context.Context, evt ChangeEvent) error
}

// Dispatcher routes change events to the reconciler registered for their
// entity type. It holds no state beyond the routing table.
type Dispatcher struct {
	reconcilers map[EntityType]Reconciler
	tracer      trace.Tracer
}

// NewDispatcher creates a dispatcher with an empty routing table.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		reconcilers: make(map[EntityType]Reconciler),
		tracer:      otel.Tracer("tavern/sync"),
	}
}

// Register binds a reconciler to an entity type, replacing any previous
// binding.
func (d *Dispatcher) Register(t EntityType, r Reconciler) {
	d.reconcilers[t] = r
}

// DispatchEvent routes a single change event. Unknown entity types and
// reconciler failures are logged and the event is dropped; neither is fatal.
func (d *Dispatcher) DispatchEvent(ctx context.Context, evt ChangeEvent) {
	ctx, span := d.tracer.Start(ctx, "sync.dispatch",
		trace.WithAttributes(
			attribute.String("entity.type", string(evt.EntityType)),
			attribute.String("entity.action", string(evt.Action)),
		))
	defer span.End()

	r, ok := d.reconcilers[evt.EntityType]
	if !ok {
		log.Printf("sync: no reconciler for entity type %q, dropping %s event", evt.EntityType, evt.Action)
		return
	}
	if err := r.Apply(ctx, evt); err != nil {
		log.Printf("sync: dropping %s %s event: %v", evt.EntityType, evt.Action, err)
	}
}

// DispatchBatch routes every change in array order, synchronously, so later
// changes in the batch can depend on earlier ones. One bad event never stops
// the rest of the batch.
func (d *Dispatcher) DispatchBatch(ctx context.Context, batch ChangeBatch) {
	ctx, span := d.tracer.Start(ctx, "sync.dispatch_batch",
		trace.WithAttributes(
			attribute.String("batch.correlation_id", batch.CorrelationID),
			attribute.Int("batch.size", len(batch.Changes)),
		))
	defer span.End()

	for _, evt := range batch.Changes {
		d.DispatchEvent(ctx, evt)
	}
}
