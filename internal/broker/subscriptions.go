package broker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/MikeSquared-Agency/SpecHunter/internal/hermes"
	"github.com/MikeSquared-Agency/SpecHunter/internal/store"
)

// SetupSubscriptions mirrors catalog items published by other processes into
// the local catalog. With a shared Postgres catalog the item is already
// present and the event is skipped.
func (b *Broker) SetupSubscriptions() error {
	return b.hermes.Subscribe(hermes.SubjectCatalogAll, b.handleCatalogEvent)
}

func (b *Broker) handleCatalogEvent(subject string, data []byte) {
	var evt hermes.CatalogItemEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		b.logger.Warn("invalid catalog event", "subject", subject, "error", err)
		return
	}
	if evt.Origin == b.instanceID {
		return
	}

	ctx, cancel := context.WithTimeout(b.baseCtx, settleTimeout)
	defer cancel()

	if _, err := b.catalog.GetItem(ctx, evt.ItemID); err == nil {
		return
	} else if !errors.Is(err, store.ErrItemNotFound) {
		b.logger.Warn("catalog lookup for mirrored item failed", "item_id", evt.ItemID, "error", err)
		return
	}

	item := &store.Item{
		ID:       evt.ItemID,
		Brand:    evt.Brand,
		Name:     evt.Name,
		Price:    evt.Price,
		Category: evt.Category,
		Source:   store.SourceMirror,
		Specs:    evt.Specs,
		Scores:   scoresFromMap(evt.Scores),
	}
	if err := item.Validate(); err != nil {
		b.logger.Warn("rejected mirrored item", "item_id", evt.ItemID, "error", err)
		return
	}
	if err := b.catalog.AppendItem(ctx, item); err != nil {
		b.logger.Error("failed to mirror catalog item", "item_id", evt.ItemID, "error", err)
		return
	}
	b.metrics.CatalogAppended(item.Source)
	b.logger.Info("mirrored catalog item", "item_id", item.ID, "origin", evt.Origin, "origin_source", evt.Source)
}

func scoresToMap(s store.Scores) map[string]float64 {
	return map[string]float64{
		"performance": s.Performance,
		"battery":     s.Battery,
		"portability": s.Portability,
		"display":     s.Display,
		"features":    s.Features,
	}
}

func scoresFromMap(m map[string]float64) store.Scores {
	return store.Scores{
		Performance: m["performance"],
		Battery:     m["battery"],
		Portability: m["portability"],
		Display:     m["display"],
		Features:    m["features"],
	}
}
