package kafka

import (
	"context"
	"log/slog"

	"github.com/lovoo/goka"
)

// A TrendingView reads the trending group table and serves per-product
// add-to-cart counts to the presentation layer.
type TrendingView struct {
	gv *goka.View
}

func NewTrendingView(
	seedBrokers []string, group string,
) (*TrendingView, error) {
	const op = "NewTrendingView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(group)),
		counterValueCodec{},
	)
	if err != nil {
		return nil, opErr(err, op)
	}
	return &TrendingView{gv}, nil
}

func (v *TrendingView) Run(ctx context.Context) {
	const op = "TrendingView.Run"
	log := slog.With("op", op)

	err := v.gv.Run(ctx)
	if err != nil {
		log.Error("unexpected fail on run", "err", err)
	}
}

// Count reports the add-to-cart unit count of one product, zero when the
// product has no entry yet.
func (v *TrendingView) Count(productID string) (int64, error) {
	const op = "TrendingView.Count"

	val, err := v.gv.Get(productID)
	if err != nil {
		return 0, opErr(err, op)
	}
	if val == nil {
		return 0, nil
	}

	count, ok := val.(counterValue)
	if !ok {
		return 0, opErr(ErrInvalidValueType, op)
	}
	return int64(count), nil
}

// Counts snapshots the whole table.
func (v *TrendingView) Counts() (map[string]int64, error) {
	const op = "TrendingView.Counts"

	it, err := v.gv.Iterator()
	if err != nil {
		return nil, opErr(err, op)
	}
	defer it.Release()

	counts := make(map[string]int64)
	for it.Next() {
		val, err := it.Value()
		if err != nil {
			return nil, opErr(err, op)
		}
		count, ok := val.(counterValue)
		if !ok {
			return nil, opErr(ErrInvalidValueType, op)
		}
		counts[it.Key()] = int64(count)
	}
	return counts, nil
}
