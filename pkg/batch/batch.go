// Package batch fans a per-item operation out over a set of ids with bounded
// parallelism and reports every item's outcome.
package batch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	appErrors "github.com/noah-isme/research-admin-gateway/pkg/errors"
)

// Item is the outcome of one id.
type Item struct {
	ID      string `json:"id"`
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Err     error  `json:"-"`
}

// Report aggregates a run. Items keep the order of the input ids.
type Report struct {
	Total     int    `json:"total"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Items     []Item `json:"items"`
}

// Err returns one aggregated error when any item failed. A run where every
// item failed is not partial: it carries the status shared by the item
// errors, or 502 when they disagree.
func (r Report) Err() error {
	if r.Failed == 0 {
		return nil
	}
	msg := fmt.Sprintf("%d of %d updates failed", r.Failed, r.Total)
	if r.Failed == 1 {
		for _, item := range r.Items {
			if !item.OK {
				msg = fmt.Sprintf("%s: %s", msg, item.Message)
				break
			}
		}
	}
	if r.Succeeded > 0 {
		return appErrors.Clone(appErrors.ErrBatchPartial, msg)
	}
	failed := appErrors.Clone(appErrors.ErrBatchFailed, msg)
	if status := r.sharedStatus(); status != 0 {
		failed.Status = status
	}
	return failed
}

func (r Report) sharedStatus() int {
	status := 0
	for _, item := range r.Items {
		if item.OK || item.Err == nil {
			continue
		}
		s := appErrors.FromError(item.Err).Status
		if status != 0 && s != status {
			return 0
		}
		status = s
	}
	return status
}

// FailedIDs lists the ids whose call failed.
func (r Report) FailedIDs() []string {
	out := make([]string, 0, r.Failed)
	for _, item := range r.Items {
		if !item.OK {
			out = append(out, item.ID)
		}
	}
	return out
}

// SucceededIDs lists the ids whose call succeeded.
func (r Report) SucceededIDs() []string {
	out := make([]string, 0, r.Succeeded)
	for _, item := range r.Items {
		if item.OK {
			out = append(out, item.ID)
		}
	}
	return out
}

// Func performs the operation for one id.
type Func func(ctx context.Context, id string) error

// Run calls fn once per id with at most concurrency calls in flight. A
// failing call never cancels its siblings; cancelling ctx stops ids that
// have not started yet, which are reported as failed.
func Run(ctx context.Context, ids []string, concurrency int, fn Func) Report {
	if concurrency <= 0 {
		concurrency = 1
	}
	items := make([]Item, len(ids))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			items[i] = Item{ID: id}
			if err := ctx.Err(); err != nil {
				items[i].Err = err
				items[i].Message = "cancelled before the update was sent"
				return nil
			}
			if err := fn(ctx, id); err != nil {
				items[i].Err = err
				items[i].Message = appErrors.Message(err)
				return nil
			}
			items[i].OK = true
			return nil
		})
	}
	_ = g.Wait()

	report := Report{Total: len(ids), Items: items}
	for _, item := range items {
		if item.OK {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}
	return report
}
