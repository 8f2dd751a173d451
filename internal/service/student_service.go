package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/research-admin-gateway/internal/dto"
	"github.com/noah-isme/research-admin-gateway/internal/models"
	"github.com/noah-isme/research-admin-gateway/internal/query"
	"github.com/noah-isme/research-admin-gateway/internal/table"
)

type studentUpstream interface {
	ListStudents(ctx context.Context) ([]models.Student, error)
	GetStudent(ctx context.Context, id string) (*models.Student, error)
	CreateStudent(ctx context.Context, req dto.StudentRequest) (*models.Student, error)
	UpdateStudent(ctx context.Context, id string, req dto.StudentRequest) (*models.Student, error)
	DeleteStudent(ctx context.Context, id string) error
	UpdateStudentStatus(ctx context.Context, id string, req dto.StatusUpdateRequest) (*models.Student, error)
	AssignSupervisor(ctx context.Context, id string, req dto.AssignSupervisorRequest) (*models.Student, error)
}

// StudentColumns are the searchable and sortable columns of the students table.
var StudentColumns = []table.Column[models.Student]{
	{Key: "registrationNumber", Header: "Registration No.", Value: func(s models.Student) string { return s.RegistrationNumber }, Searchable: true, Sortable: true, Exportable: true},
	{Key: "firstName", Header: "First name", Value: func(s models.Student) string { return s.FirstName }, Searchable: true, Sortable: true, Exportable: true},
	{Key: "lastName", Header: "Last name", Value: func(s models.Student) string { return s.LastName }, Searchable: true, Sortable: true, Exportable: true},
	{Key: "email", Header: "Email", Value: func(s models.Student) string { return s.Email }, Searchable: true, Sortable: true, Exportable: true},
	{Key: "status", Header: "Status", Value: func(s models.Student) string { return models.CurrentStatusName(s.Statuses) }, Sortable: true, Exportable: true},
	{Key: "createdAt", Header: "Created", Value: func(s models.Student) string { return s.CreatedAt.UTC().Format("2006-01-02T15:04:05") }, Sortable: true},
}

// StudentService serves the students page.
type StudentService struct {
	api       studentUpstream
	queries   *query.Client
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(api studentUpstream, queries *query.Client, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{api: api, queries: queries, validator: validate, logger: logger}
}

// List filters, searches and paginates students. Stats cover the filtered
// set before pagination.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) (*dto.StudentTable, *models.Pagination, query.Freshness, error) {
	students, fresh, err := query.Load(ctx, s.queries, resourceStudents, "", s.api.ListStudents)
	if err != nil {
		return nil, nil, fresh, err
	}

	rows := table.Where(students, func(st models.Student) bool {
		if filter.SchoolID != "" && st.SchoolID != filter.SchoolID {
			return false
		}
		if filter.CampusID != "" && st.CampusID != filter.CampusID {
			return false
		}
		if filter.Status != "" && !sameStatus(models.CurrentStatusName(st.Statuses), filter.Status) {
			return false
		}
		return true
	})
	rows = table.Filter(rows, StudentColumns, filter.Search)

	stats := dto.StudentStats{Total: len(rows), ByStatus: map[string]int{}}
	for _, st := range rows {
		stats.ByStatus[statusLabel(models.CurrentStatusName(st.Statuses))]++
	}

	sorted := table.Sort(rows, StudentColumns, filter.SortBy, filter.SortOrder)
	pagination := table.Paginate(len(sorted), filter.Page, filter.PageSize)
	page := table.Slice(sorted, pagination)

	out := &dto.StudentTable{Rows: make([]dto.StudentRow, 0, len(page)), Stats: stats}
	for _, st := range page {
		out.Rows = append(out.Rows, studentRow(st))
	}
	return out, &pagination, fresh, nil
}

func studentRow(st models.Student) dto.StudentRow {
	supervisors := 0
	for _, sup := range st.Supervisors {
		if sup.IsCurrent {
			supervisors++
		}
	}
	return dto.StudentRow{
		ID:                 st.ID,
		RegistrationNumber: st.RegistrationNumber,
		FullName:           st.FullName(),
		Email:              st.Email,
		SchoolID:           st.SchoolID,
		CampusID:           st.CampusID,
		Status:             models.CurrentStatusName(st.Statuses),
		Supervisors:        supervisors,
	}
}

// Get returns one student with the current status resolved. A history with
// more than one current record is reported, not repaired.
func (s *StudentService) Get(ctx context.Context, id string) (*dto.StudentDetail, query.Freshness, error) {
	if err := requireID(id, "student"); err != nil {
		return nil, query.Freshness{}, err
	}
	student, fresh, err := query.Load(ctx, s.queries, resourceStudent, id, func(ctx context.Context) (*models.Student, error) {
		return s.api.GetStudent(ctx, id)
	})
	if err != nil {
		return nil, fresh, err
	}
	detail := &dto.StudentDetail{Student: *student}
	detail.CurrentStatus, detail.HistoryWarnings = currentStatus(s.logger, "student", id, student.Statuses)
	return detail, fresh, nil
}

// Create validates and forwards a new student.
func (s *StudentService) Create(ctx context.Context, req dto.StudentRequest) (*models.Student, error) {
	if err := validate(s.validator, req, "invalid student payload"); err != nil {
		return nil, err
	}
	var created *models.Student
	err := mutate(ctx, s.queries, func(ctx context.Context) error {
		var err error
		created, err = s.api.CreateStudent(ctx, req)
		return err
	}, resourceStudents, resourceStudent)
	if err != nil {
		return nil, err
	}
	s.logger.Info("student created", zap.String("student_id", created.ID))
	return created, nil
}

// Update validates and forwards changes to a student.
func (s *StudentService) Update(ctx context.Context, id string, req dto.StudentRequest) (*models.Student, error) {
	if err := requireID(id, "student"); err != nil {
		return nil, err
	}
	if err := validate(s.validator, req, "invalid student payload"); err != nil {
		return nil, err
	}
	var updated *models.Student
	err := mutate(ctx, s.queries, func(ctx context.Context) error {
		var err error
		updated, err = s.api.UpdateStudent(ctx, id, req)
		return err
	}, resourceStudents, resourceStudent)
	return updated, err
}

// Delete removes a student at the backend.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	if err := requireID(id, "student"); err != nil {
		return err
	}
	return mutate(ctx, s.queries, func(ctx context.Context) error {
		return s.api.DeleteStudent(ctx, id)
	}, resourceStudents, resourceStudent)
}

// UpdateStatus appends a status record; the backend clears the previous
// current flag.
func (s *StudentService) UpdateStatus(ctx context.Context, id string, req dto.StatusUpdateRequest) (*models.Student, error) {
	if err := requireID(id, "student"); err != nil {
		return nil, err
	}
	if err := validate(s.validator, req, "invalid status update"); err != nil {
		return nil, err
	}
	var updated *models.Student
	err := mutate(ctx, s.queries, func(ctx context.Context) error {
		var err error
		updated, err = s.api.UpdateStudentStatus(ctx, id, req)
		return err
	}, resourceStudents, resourceStudent)
	return updated, err
}

// AssignSupervisor links a supervisor to the student.
func (s *StudentService) AssignSupervisor(ctx context.Context, id string, req dto.AssignSupervisorRequest) (*models.Student, error) {
	if err := requireID(id, "student"); err != nil {
		return nil, err
	}
	if err := validate(s.validator, req, "invalid supervisor assignment"); err != nil {
		return nil, err
	}
	var updated *models.Student
	err := mutate(ctx, s.queries, func(ctx context.Context) error {
		var err error
		updated, err = s.api.AssignSupervisor(ctx, id, req)
		return err
	}, resourceStudents, resourceStudent)
	return updated, err
}
