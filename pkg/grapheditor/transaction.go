package grapheditor

import "github.com/dd0wney/cluso-grapheditor/pkg/metrics"

// txGuard opens a transaction on the first mutation of a group and closes it
// exactly once.
type txGuard struct {
	tx      Transactor
	metrics *metrics.Registry
	open    bool
}

func (g *txGuard) begin() {
	if g.open {
		return
	}
	g.tx.BeginTransaction(true)
	g.open = true
	g.metrics.RecordTransaction()
}

func (g *txGuard) end() {
	if !g.open {
		return
	}
	g.tx.EndTransaction()
	g.open = false
}
