// Package jsonfeed reads the raw event pool written by the scrapers and
// writes the published agenda.
package jsonfeed

import (
	"context"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/event-agenda/internal/domain/category"
	"github.com/riskibarqy/event-agenda/internal/domain/event"
	"github.com/riskibarqy/event-agenda/internal/domain/place"
	"github.com/riskibarqy/event-agenda/internal/platform/logging"
	"github.com/riskibarqy/event-agenda/internal/usecase"
)

type Codec struct {
	validator *validator.Validate
	logger    *logging.Logger
}

func NewCodec(logger *logging.Logger) (*Codec, error) {
	if logger == nil {
		logger = logging.Default()
	}

	v := validator.New()
	if err := v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		_, err := category.Parse(fl.Field().String())
		return err == nil
	}); err != nil {
		return nil, fmt.Errorf("register category validation: %w", err)
	}
	if err := v.RegisterValidation("latlon", func(fl validator.FieldLevel) bool {
		_, _, ok := place.Place{LatLon: fl.Field().String()}.Coordinates()
		return ok
	}); err != nil {
		return nil, fmt.Errorf("register latlon validation: %w", err)
	}
	return &Codec{validator: v, logger: logger}, nil
}

// DecodeEvents reads a JSON array of events. A payload that is not a JSON
// array of events fails the read; records that do not validate are logged
// and skipped.
func (c *Codec) DecodeEvents(ctx context.Context, r io.Reader) ([]event.Event, error) {
	var items []eventDTO
	decoder := sonic.ConfigDefault.NewDecoder(r)
	if err := decoder.Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	out := make([]event.Event, 0, len(items))
	for i, item := range items {
		if err := c.validator.StructCtx(ctx, item); err != nil {
			c.logger.ErrorContext(ctx, "skip invalid event", "index", i, "event_id", item.ID, "error", err)
			continue
		}
		out = append(out, item.toDomain())
	}
	return out, nil
}

// EncodeEvents writes events as an indented JSON array.
func (c *Codec) EncodeEvents(w io.Writer, events []event.Event) error {
	items := make([]eventDTO, 0, len(events))
	for _, e := range events {
		items = append(items, eventToDTO(e))
	}

	encoder := sonic.ConfigDefault.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(items); err != nil {
		return fmt.Errorf("encode events: %w", err)
	}
	return nil
}
