package service

import (
	"testing"

	"promanager-backend/internal/repository"
	"promanager-backend/internal/types"

	"github.com/stretchr/testify/assert"
)

func TestCapabilityMatrix(t *testing.T) {
	svc := NewPermissionService()

	admin := &repository.Member{ID: "m1", Role: types.RoleAdmin}
	chef := &repository.Member{ID: "m2", Role: types.RoleChefProjet}
	membre := &repository.Member{ID: "m3", Role: types.RoleMembre}

	assert.True(t, svc.CanManageProjects(admin))
	assert.True(t, svc.CanManageProjects(chef))
	assert.False(t, svc.CanManageProjects(membre))
	assert.False(t, svc.CanManageProjects(nil))

	assert.True(t, svc.CanManageMembers(chef))
	assert.False(t, svc.CanManageMembers(membre))

	assert.True(t, svc.CanContribute(membre))
	assert.False(t, svc.CanContribute(nil))
}

func TestCanChangeTaskStatusOwnership(t *testing.T) {
	svc := NewPermissionService()

	chef := &repository.Member{ID: "m2", Role: types.RoleChefProjet}
	membre := &repository.Member{ID: "m3", Role: types.RoleMembre}

	mine := &repository.Task{ID: "t1", AssigneeID: &membre.ID}
	other := &repository.Task{ID: "t2"}

	assert.True(t, svc.CanChangeTaskStatus(chef, other))
	assert.True(t, svc.CanChangeTaskStatus(membre, mine))
	assert.False(t, svc.CanChangeTaskStatus(membre, other))
	assert.False(t, svc.CanChangeTaskStatus(nil, mine))
	assert.False(t, svc.CanChangeTaskStatus(membre, nil))
}
