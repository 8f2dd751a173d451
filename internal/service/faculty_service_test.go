package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/research-admin-gateway/internal/dto"
	"github.com/noah-isme/research-admin-gateway/internal/models"
	appErrors "github.com/noah-isme/research-admin-gateway/pkg/errors"
)

type mockFacultyAPI struct {
	callLog
	members []models.FacultyMember
	err     error
}

func (m *mockFacultyAPI) ListFaculty(ctx context.Context) ([]models.FacultyMember, error) {
	m.hit("list")
	if m.err != nil {
		return nil, m.err
	}
	return m.members, nil
}

func (m *mockFacultyAPI) CreateFaculty(ctx context.Context, req dto.FacultyRequest) (*models.FacultyMember, error) {
	m.hit("create")
	return &models.FacultyMember{ID: "new", Name: req.Name, Role: req.Role}, nil
}

func (m *mockFacultyAPI) UpdateFaculty(ctx context.Context, id string, req dto.FacultyRequest) (*models.FacultyMember, error) {
	m.hit("update")
	return &models.FacultyMember{ID: id, Name: req.Name, Role: req.Role}, nil
}

func (m *mockFacultyAPI) DeleteFaculty(ctx context.Context, id string) error {
	m.hit("delete")
	return m.err
}

func TestFacultyServiceListFiltersRoleAndSortsByName(t *testing.T) {
	api := &mockFacultyAPI{members: []models.FacultyMember{
		{ID: "1", Name: "Prof. Wanjiru", Role: models.FacultyRoleSupervisor, SchoolID: "sci"},
		{ID: "2", Name: "Dr. Achieng", Role: models.FacultyRoleSupervisor, SchoolID: "sci"},
		{ID: "3", Name: "Dr. Otieno", Role: models.FacultyRoleFaculty, SchoolID: "eng"},
	}}
	svc := NewFacultyService(api, newTestQueries(), nil, nil)

	members, pagination, _, err := svc.List(scoped("u1"), models.FacultyFilter{Role: models.FacultyRoleSupervisor})
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "2", members[0].ID)
	assert.Equal(t, 2, pagination.TotalCount)

	members, _, _, err = svc.List(scoped("u1"), models.FacultyFilter{Search: "otieno", SchoolID: "eng"})
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, 1, api.count("list"))
}

func TestFacultyServiceCreateValidatesRole(t *testing.T) {
	api := &mockFacultyAPI{}
	svc := NewFacultyService(api, newTestQueries(), nil, nil)

	_, err := svc.Create(context.Background(), dto.FacultyRequest{Name: "X", Email: "x@uni.ac", Role: "dean"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	member, err := svc.Create(context.Background(), dto.FacultyRequest{Name: "X", Email: "x@uni.ac", Role: models.FacultyRoleSupervisor})
	require.NoError(t, err)
	assert.Equal(t, "new", member.ID)
	assert.Equal(t, 1, api.count("create"))
}

func TestFacultyServiceListErrorWithoutCache(t *testing.T) {
	api := &mockFacultyAPI{err: appErrors.Clone(appErrors.ErrUpstreamUnavailable, "")}
	svc := NewFacultyService(api, newTestQueries(), nil, nil)

	_, _, _, err := svc.List(scoped("u1"), models.FacultyFilter{})
	require.Error(t, err)
	assert.Equal(t, "no response received from server", appErrors.Message(err))
}
