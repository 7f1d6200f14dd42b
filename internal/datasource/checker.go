package datasource

import (
	"context"

	"casecheck/internal/diag"
	"casecheck/internal/sem"
)

// Check runs the checker over every usage in the model, sequentially. The
// driver parallelizes per usage itself; this helper serves tests and simple
// hosts. Diagnostics from distinct usages are independent, so ordering is a
// presentation concern only.
func Check(ctx context.Context, model *sem.Model, r diag.Reporter) {
	c := &Checker{Sem: model, Reporter: r}
	for _, usage := range model.Usages() {
		c.CheckUsage(ctx, usage)
	}
}
