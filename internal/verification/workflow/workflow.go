// Package workflow implements the verification checklist state machine.
//
// Every operation is a pure function over a models.Session value: inputs are
// never mutated, results are fresh copies, and nothing here performs I/O.
// Callers supply the current time and persist the returned session.
package workflow

import "vkyc/internal/verification/catalog"

// Workflow binds a catalog to a submit policy.
type Workflow struct {
	catalog *catalog.Catalog
	policy  SubmitPolicy
}

// New constructs a Workflow. A nil policy defaults to MinimumEvaluated{Min: 1}.
func New(c *catalog.Catalog, policy SubmitPolicy) *Workflow {
	if policy == nil {
		policy = MinimumEvaluated{Min: 1}
	}
	return &Workflow{catalog: c, policy: policy}
}

// Catalog returns the catalog sessions are built from.
func (w *Workflow) Catalog() *catalog.Catalog { return w.catalog }

// Policy returns the configured submit policy.
func (w *Workflow) Policy() SubmitPolicy { return w.policy }
