package oriter

import (
	"testing"
	"time"

	"github.com/arcfts/searchcore/searchctx"
)

func TestBudgetTickReportsCutoffAfterDeadline(t *testing.T) {
	b := searchctx.NewBudget(1) // effectively already past deadline
	time.Sleep(2 * time.Millisecond)
	// Tick samples the clock only once every 65,536 calls, so tick
	// through up to two sampling windows and expect the 1ns budget to
	// report cutoff at the first sample.
	for i := 0; i < 1<<17; i++ {
		if b.Tick() {
			return
		}
	}
	t.Fatal("expected budget to report cutoff within two sampling windows")
}
