package kafka

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/lovoo/goka"
	"github.com/trustedwear/storefront/internal/core/domain"
	"github.com/trustedwear/storefront/internal/core/port"
	"github.com/trustedwear/storefront/pkg/schema"
)

var _ port.TrendingProcessor = (*TrendingProcessor)(nil)

// A clientEventCodec used for serde [schema.ClientEventV1]
type clientEventCodec struct {
	serde Serde
}

func newClientEventCodec(s Serde) clientEventCodec {
	return clientEventCodec{s}
}

func (c clientEventCodec) Encode(v any) ([]byte, error) {
	const op = "clientEventCodec.Encode"
	if _, ok := v.(schema.ClientEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c clientEventCodec) Decode(data []byte) (any, error) {
	const op = "clientEventCodec.Decode"
	var s schema.ClientEventV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, err
}

// A counterValue is the per-product add-to-cart unit count.
type counterValue int64

// A counterValueCodec used for serde [counterValue]
type counterValueCodec struct{}

func (counterValueCodec) Encode(v any) ([]byte, error) {
	const op = "counterValueCodec.Encode"
	cv, ok := v.(counterValue)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return strconv.AppendInt([]byte(nil), int64(cv), 10), nil
}

func (counterValueCodec) Decode(data []byte) (any, error) {
	const op = "counterValueCodec.Decode"
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return nil, opErr(err, op)
	}
	return counterValue(n), nil
}

// A TrendingProcessor consumes the client events stream and keeps a
// per-product add-to-cart counter in the group table.
type TrendingProcessor struct {
	opPrefix string
	gp       *goka.Processor
}

func NewTrendingProc(
	seedBrokers []string,
	inputStream string,
	group string,
	eventSerde Serde,
) (*TrendingProcessor, error) {
	const op = "NewTrendingProc"

	p := &TrendingProcessor{opPrefix: "TrendingProcessor"}

	gg := goka.DefineGroup(goka.Group(group),
		goka.Input(
			goka.Stream(inputStream),
			newClientEventCodec(eventSerde),
			p.processFn,
		),
		goka.Persist(counterValueCodec{}),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNoLogProcOpt())
	if err != nil {
		return nil, opErr(err, op)
	}

	p.gp = gp
	return p, nil
}

func (p *TrendingProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer wg.Done()

	go p.runProc(ctx, stopFn)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p *TrendingProcessor) Close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

func (p *TrendingProcessor) runProc(
	ctx context.Context, stopFn context.CancelFunc,
) {
	const op = "runProc"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer stopFn()

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *TrendingProcessor) waitForReady(ctx context.Context) {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
	}
}

func (p *TrendingProcessor) processFn(ctx goka.Context, msg any) {
	const op = "processFn"

	event, _ := msg.(schema.ClientEventV1)
	if event.EventType != string(domain.EventCartAdd) {
		return
	}

	var count counterValue
	if v := ctx.Value(); v != nil {
		count, _ = v.(counterValue)
	}
	count += counterValue(event.Quantity)
	ctx.SetValue(count)

	slog.Info("trending counter updated",
		"op", makeOp(p.opPrefix, op),
		"productID", event.ProductID,
		"count", int64(count),
	)
}
