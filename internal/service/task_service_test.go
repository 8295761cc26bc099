package service

import (
	"context"
	"testing"
	"time"

	"promanager-backend/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskCreateDefaultsAndValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	userChef, chef := f.addAccount("bob", types.RoleChefProjet)
	p := f.addProject(chef, "Alpha")

	task, err := f.taskSvc.Create(ctx, userChef.ID, &CreateTaskRequest{
		ProjectID: p.ID,
		Name:      "T1",
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 0, 7),
	})
	require.NoError(t, err)
	assert.Equal(t, types.StatusPending, task.Status)
	assert.Equal(t, types.PriorityMedium, task.Priority)
	assert.Nil(t, task.AssigneeID)

	_, err = f.taskSvc.Create(ctx, userChef.ID, &CreateTaskRequest{
		ProjectID: p.ID,
		Name:      "T2",
		Status:    "Archivé",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.taskSvc.Create(ctx, userChef.ID, &CreateTaskRequest{ProjectID: p.ID})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTaskCreateRequiresManagerRole(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, chef := f.addAccount("bob", types.RoleChefProjet)
	userMembre, membre := f.addAccount("dan", types.RoleMembre)
	p := f.addProject(chef, "Alpha")
	f.projRepo.AddMember(ctx, p.ID, membre.ID)

	_, err := f.taskSvc.Create(ctx, userMembre.ID, &CreateTaskRequest{ProjectID: p.ID, Name: "T1"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAssignTaskAnyRoleTargetMustExist(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, chef := f.addAccount("bob", types.RoleChefProjet)
	userMembre, membre := f.addAccount("dan", types.RoleMembre)
	p := f.addProject(chef, "Alpha")
	f.projRepo.AddMember(ctx, p.ID, membre.ID)
	task := f.addTask(p, "T1", types.StatusPending, nil)

	// A MEMBRE may assign; the target need not participate in the project
	// under the default policy.
	updated, msg, err := f.taskSvc.Assign(ctx, userMembre.ID, task.ID, membre.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.AssigneeID)
	assert.Equal(t, membre.ID, *updated.AssigneeID)
	assert.Equal(t, "Tâche assignée à dan", msg)

	_, _, err = f.taskSvc.Assign(ctx, userMembre.ID, task.ID, "no-such-member")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = f.taskSvc.Assign(ctx, userMembre.ID, "no-such-task", membre.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssignTaskMembershipPolicyToggle(t *testing.T) {
	f := newFixture()
	f.cfg.AssigneeMembershipCheck = true
	ctx := context.Background()

	userChef, chef := f.addAccount("bob", types.RoleChefProjet)
	_, outsider := f.addAccount("carol", types.RoleMembre)
	_, membre := f.addAccount("dan", types.RoleMembre)

	p := f.addProject(chef, "Alpha")
	f.projRepo.AddMember(ctx, p.ID, membre.ID)
	task := f.addTask(p, "T1", types.StatusPending, nil)

	// Outsider is rejected only when the policy toggle is on.
	_, _, err := f.taskSvc.Assign(ctx, userChef.ID, task.ID, outsider.ID)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = f.taskSvc.Assign(ctx, userChef.ID, task.ID, membre.ID)
	assert.NoError(t, err)

	// The creator always passes the check.
	_, _, err = f.taskSvc.Assign(ctx, userChef.ID, task.ID, chef.ID)
	assert.NoError(t, err)
}

func TestAssignArchivedMemberStillAllowed(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	userAdmin, _ := f.addAccount("alice", types.RoleAdmin)
	_, chef := f.addAccount("bob", types.RoleChefProjet)
	_, membre := f.addAccount("dan", types.RoleMembre)

	p := f.addProject(chef, "Alpha")
	task := f.addTask(p, "T1", types.StatusPending, nil)

	_, err := f.memberSvc.Archive(ctx, userAdmin.ID, membre.ID)
	require.NoError(t, err)

	_, _, err = f.taskSvc.Assign(ctx, userAdmin.ID, task.ID, membre.ID)
	assert.NoError(t, err)
}

func TestChangeStatusValidationBeforePermission(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, chef := f.addAccount("bob", types.RoleChefProjet)
	userMembre, membre := f.addAccount("dan", types.RoleMembre)
	p := f.addProject(chef, "Alpha")
	f.projRepo.AddMember(ctx, p.ID, membre.ID)
	task := f.addTask(p, "T1", types.StatusInProgress, nil)

	// Misspelled status is a validation error even for a caller who would
	// also fail the permission gate.
	_, _, err := f.taskSvc.ChangeStatus(ctx, userMembre.ID, task.ID, "Annulee")
	assert.ErrorIs(t, err, ErrInvalidInput)

	stored, _ := f.taskRepo.FindByID(ctx, task.ID)
	assert.Equal(t, types.StatusInProgress, stored.Status)
}

func TestChangeStatusMembreOwnAssignmentOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	userChef, chef := f.addAccount("bob", types.RoleChefProjet)
	userMembre, membre := f.addAccount("dan", types.RoleMembre)
	p := f.addProject(chef, "Alpha")
	f.projRepo.AddMember(ctx, p.ID, membre.ID)

	unassigned := f.addTask(p, "T1", types.StatusPending, nil)
	mine := f.addTask(p, "T2", types.StatusInProgress, membre)

	_, _, err := f.taskSvc.ChangeStatus(ctx, userMembre.ID, unassigned.ID, types.StatusDone)
	assert.ErrorIs(t, err, ErrForbidden)

	_, msg, err := f.taskSvc.ChangeStatus(ctx, userMembre.ID, mine.ID, types.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, "Statut changé à Terminé", msg)

	// Chef and admin may move any task.
	_, _, err = f.taskSvc.ChangeStatus(ctx, userChef.ID, unassigned.ID, types.StatusCancelled)
	assert.NoError(t, err)
}

func TestChangeStatusAnyTransitionAllowed(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	userChef, chef := f.addAccount("bob", types.RoleChefProjet)
	p := f.addProject(chef, "Alpha")
	task := f.addTask(p, "T1", types.StatusDone, nil)

	// No transition graph: Done back to Pending is legal.
	updated, _, err := f.taskSvc.ChangeStatus(ctx, userChef.ID, task.ID, types.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, types.StatusPending, updated.Status)
}

func TestUnassignClearsAssignee(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	userChef, chef := f.addAccount("bob", types.RoleChefProjet)
	_, membre := f.addAccount("dan", types.RoleMembre)
	p := f.addProject(chef, "Alpha")
	task := f.addTask(p, "T1", types.StatusPending, membre)

	updated, err := f.taskSvc.Unassign(ctx, userChef.ID, task.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.AssigneeID)
}

func TestTaskUpdateClearsAssigneeWithEmptyString(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	userChef, chef := f.addAccount("bob", types.RoleChefProjet)
	_, membre := f.addAccount("dan", types.RoleMembre)
	p := f.addProject(chef, "Alpha")
	task := f.addTask(p, "T1", types.StatusPending, membre)

	empty := ""
	updated, err := f.taskSvc.Update(ctx, userChef.ID, task.ID, &UpdateTaskRequest{AssigneeID: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.AssigneeID)
}
