package attendance

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Plan is the minimal set of writes that converges the store to the desired
// present set for one day.
type Plan struct {
	ToCreate []string `json:"to_create"`
	ToDelete []string `json:"to_delete"`
}

func (p Plan) Empty() bool {
	return len(p.ToCreate) == 0 && len(p.ToDelete) == 0
}

// BuildPlan diffs the desired present set against the currently registered
// member ids. Members present in both sets produce no write, which is what
// makes a second reconcile with unchanged input a no-op.
func BuildPlan(desired map[string]bool, current []string) Plan {
	registered := make(map[string]bool, len(current))
	for _, id := range current {
		registered[id] = true
	}

	var plan Plan
	for id, present := range desired {
		if present && !registered[id] {
			plan.ToCreate = append(plan.ToCreate, id)
		}
	}
	for _, id := range current {
		if !desired[id] {
			plan.ToDelete = append(plan.ToDelete, id)
		}
	}

	sort.Strings(plan.ToCreate)
	sort.Strings(plan.ToDelete)
	return plan
}

// Reconciler converges persisted attendance marks for a day to a desired
// present set. Marks are never mutated in place; the plan is a symmetric
// difference, so applying it is commutative and safe to retry.
type Reconciler struct {
	store Store
	log   *logrus.Logger
}

func NewReconciler(store Store, log *logrus.Logger) *Reconciler {
	return &Reconciler{store: store, log: log}
}

// Reconcile fetches the registered set, builds the plan and dispatches every
// create and delete together. Each operation is independent: one failure is
// collected and reported but does not block the others.
func (r *Reconciler) Reconcile(ctx context.Context, day time.Time, desired map[string]bool) (Plan, error) {
	current, err := r.store.FetchByDate(ctx, day)
	if err != nil {
		return Plan{}, fmt.Errorf("could not load attendance: %w", err)
	}

	registered := make([]string, 0, len(current))
	for _, mark := range current {
		registered = append(registered, mark.MemberID)
	}

	plan := BuildPlan(desired, registered)
	if plan.Empty() {
		return plan, nil
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		merr *multierror.Error
	)
	collect := func(err error) {
		mu.Lock()
		merr = multierror.Append(merr, err)
		mu.Unlock()
	}

	for _, id := range plan.ToCreate {
		wg.Add(1)
		go func(memberID string) {
			defer wg.Done()
			err := r.store.Insert(ctx, memberID, day)
			// A duplicate mark means another writer already converged
			// this member; the desired state holds either way.
			if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
				marksTotal.WithLabelValues("create", "failure").Inc()
				collect(fmt.Errorf("mark %s present: %w", memberID, err))
				return
			}
			marksTotal.WithLabelValues("create", "success").Inc()
		}(id)
	}

	for _, id := range plan.ToDelete {
		wg.Add(1)
		go func(memberID string) {
			defer wg.Done()
			if err := r.store.DeleteByMemberAndDay(ctx, memberID, day); err != nil {
				marksTotal.WithLabelValues("delete", "failure").Inc()
				collect(fmt.Errorf("unmark %s: %w", memberID, err))
				return
			}
			marksTotal.WithLabelValues("delete", "success").Inc()
		}(id)
	}

	wg.Wait()

	if err := merr.ErrorOrNil(); err != nil {
		r.log.WithError(err).WithField("date", day.Format("2006-01-02")).
			Warn("attendance reconcile finished with failures")
		return plan, err
	}
	return plan, nil
}
