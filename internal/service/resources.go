package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/research-admin-gateway/internal/models"
	"github.com/noah-isme/research-admin-gateway/internal/query"
	appErrors "github.com/noah-isme/research-admin-gateway/pkg/errors"
)

// Query resources. List and detail reads are cached separately so a
// mutation can invalidate both.
const (
	resourceStudents    = "students"
	resourceStudent     = "student"
	resourceProposals   = "proposals"
	resourceProposal    = "proposal"
	resourceBooks       = "books"
	resourceBook        = "book"
	resourceFaculty     = "faculty"
	resourceCampuses    = "campuses"
	resourceSchools     = "schools"
	resourceDepartments = "departments"
	resourceCourses     = "courses"
)

// mutate runs fn through the query client so the named resources are
// invalidated after a successful backend write.
func mutate(ctx context.Context, queries *query.Client, fn func(context.Context) error, resources ...string) error {
	if queries == nil {
		return fn(ctx)
	}
	return queries.Mutate(ctx, query.MutationOptions{Invalidates: resources}, fn)
}

func validate(v *validator.Validate, req interface{}, message string) error {
	if err := v.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
	}
	return nil
}

func requireID(id, what string) error {
	if strings.TrimSpace(id) == "" {
		return appErrors.Clone(appErrors.ErrValidation, what+" id is required")
	}
	return nil
}

// statusLabel is the display name of a current status, or "none".
func statusLabel(name string) string {
	if name == "" {
		return "none"
	}
	return name
}

func sameStatus(a, b string) bool {
	return strings.EqualFold(strings.Join(strings.Fields(a), " "), strings.Join(strings.Fields(b), " "))
}

// tabAll is the tab that shows every row.
const tabAll = "all"

// tabCounts counts rows per tab and under "all".
func tabCounts[T any](rows []T, tabOf func(T) string) map[string]int {
	counts := map[string]int{tabAll: len(rows)}
	for _, row := range rows {
		counts[tabOf(row)]++
	}
	return counts
}

// currentStatus resolves the current record of a history. A history with
// more than one current record is reported as a warning, never repaired.
func currentStatus(logger *zap.Logger, kind, id string, history []models.StatusRecord) (*models.StatusRecord, []string) {
	current, count := models.CurrentStatus(history)
	if count <= 1 {
		return current, nil
	}
	logger.Warn("status history has several current records",
		zap.String("kind", kind), zap.String("id", id), zap.Int("count", count))
	return current, []string{fmt.Sprintf("%s: %d status records are flagged current", appErrors.ErrMultipleCurrent.Message, count)}
}
