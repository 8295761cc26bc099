package service

import (
	"promanager-backend/internal/repository"
	"promanager-backend/internal/types"
)

// PermissionService implements the capability matrix:
//
//	                                ADMIN  CHEF_PROJET  MEMBRE
//	read (list/get)                 yes    yes          yes
//	create/modify/delete project    yes    yes          no
//	create/modify/delete task       yes    yes          no
//	manage project membership       yes    yes          no
//	change a task's status          any    any          own assignment only
//	create file/comment             yes    yes          yes
//
// Reads are never role-gated; AccessScope restricts which rows come back,
// not whether the read is allowed. A caller without a resolvable member
// profile is denied every mutation.
type PermissionService interface {
	CanManageProjects(member *repository.Member) bool
	CanManageMembers(member *repository.Member) bool
	CanChangeTaskStatus(member *repository.Member, task *repository.Task) bool
	CanContribute(member *repository.Member) bool
}

type permissionService struct{}

func NewPermissionService() PermissionService {
	return &permissionService{}
}

// CanManageProjects covers project and task create/modify/delete.
func (s *permissionService) CanManageProjects(member *repository.Member) bool {
	if member == nil {
		return false
	}
	return member.Role == types.RoleAdmin || member.Role == types.RoleChefProjet
}

// CanManageMembers covers project membership changes and member archival.
func (s *permissionService) CanManageMembers(member *repository.Member) bool {
	return s.CanManageProjects(member)
}

// CanChangeTaskStatus allows ADMIN and CHEF_PROJET on any task; a MEMBRE
// may only move a task currently assigned to them.
func (s *permissionService) CanChangeTaskStatus(member *repository.Member, task *repository.Task) bool {
	if member == nil || task == nil {
		return false
	}
	if member.Role == types.RoleAdmin || member.Role == types.RoleChefProjet {
		return true
	}
	return task.AssigneeID != nil && *task.AssigneeID == member.ID
}

// CanContribute covers file and comment creation, open to every role.
func (s *permissionService) CanContribute(member *repository.Member) bool {
	return member != nil
}
