package folio

import (
	"go.uber.org/zap"
)

// Reporter computes reports over an immutable ledger snapshot.
//
// The realization tree and the price graph are built once, every report
// allocates its own result. A Reporter is safe for concurrent use.
type Reporter struct {
	ledger *Ledger
	tree   *Tree
	prices *PriceGraph
	logger *zap.Logger
}

// ReporterOption configures a Reporter.
type ReporterOption func(*Reporter)

// WithLogger sets the logger used to trace conversion fallbacks.
func WithLogger(logger *zap.Logger) ReporterOption {
	return func(r *Reporter) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithPriceGraph replaces the price graph built from the ledger.
func WithPriceGraph(g *PriceGraph) ReporterOption {
	return func(r *Reporter) {
		if g != nil {
			r.prices = g
		}
	}
}

// NewReporter realizes the ledger and builds its price graph.
func NewReporter(l *Ledger, opts ...ReporterOption) *Reporter {
	r := &Reporter{
		ledger: l,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.tree = Realize(l)
	if r.prices == nil {
		r.prices = NewPriceGraph(l)
	}
	r.logger.Debug("ledger realized",
		zap.String("ledger", l.Name()),
		zap.Int("directives", l.Len()),
		zap.Int("errors", len(l.errors)),
	)
	return r
}

// Ledger returns the snapshot the reports are computed on.
func (r *Reporter) Ledger() *Ledger { return r.ledger }

// Tree returns the realization tree of the ledger.
func (r *Reporter) Tree() *Tree { return r.tree }

// Prices returns the price graph of the ledger.
func (r *Reporter) Prices() *PriceGraph { return r.prices }
