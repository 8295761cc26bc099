package service

import (
	"context"
	"testing"
	"time"

	"promanager-backend/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// End-to-end flows exercised through the service layer only, the way the
// HTTP handlers drive it.

func TestChefWorkflowProjectTaskDashboard(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	userChef, _ := f.addAccount("amelie", types.RoleChefProjet)
	_, membre := f.addAccount("bruno", types.RoleMembre)

	project, err := f.projectSvc.Create(ctx, userChef.ID, &CreateProjectRequest{
		Name:      "Portail client",
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 2, 0),
	})
	require.NoError(t, err)

	_, err = f.projectSvc.AddMember(ctx, userChef.ID, project.ID, membre.ID)
	require.NoError(t, err)

	task, err := f.taskSvc.Create(ctx, userChef.ID, &CreateTaskRequest{
		ProjectID: project.ID,
		Name:      "Cadrage",
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 0, 14),
	})
	require.NoError(t, err)
	assert.Nil(t, task.AssigneeID)

	stats, err := f.dashSvc.Chef(ctx, userChef.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ProjetsCount)
	assert.Equal(t, 1, stats.TachesTotal)
	assert.Equal(t, 0, stats.TachesTerminees)
}

func TestMembreCompletesOwnTaskWorkflow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	userChef, _ := f.addAccount("amelie", types.RoleChefProjet)
	userMembre, membre := f.addAccount("bruno", types.RoleMembre)

	project, err := f.projectSvc.Create(ctx, userChef.ID, &CreateProjectRequest{
		Name:      "Portail client",
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 2, 0),
	})
	require.NoError(t, err)
	_, err = f.projectSvc.AddMember(ctx, userChef.ID, project.ID, membre.ID)
	require.NoError(t, err)

	task, err := f.taskSvc.Create(ctx, userChef.ID, &CreateTaskRequest{
		ProjectID: project.ID,
		Name:      "Cadrage",
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 0, 14),
	})
	require.NoError(t, err)

	_, _, err = f.taskSvc.Assign(ctx, userChef.ID, task.ID, membre.ID)
	require.NoError(t, err)

	updated, msg, err := f.taskSvc.ChangeStatus(ctx, userMembre.ID, task.ID, types.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, types.StatusDone, updated.Status)
	assert.Equal(t, "Statut changé à Terminé", msg)

	stats, err := f.dashSvc.Membre(ctx, userMembre.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TachesTerminees)
}

func TestOutOfScopeTaskListingStaysEmpty(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	userChef, chef := f.addAccount("amelie", types.RoleChefProjet)
	userOther, _ := f.addAccount("claire", types.RoleMembre)

	p := f.addProject(chef, "Portail client")
	f.addTask(p, "Cadrage", types.StatusPending, nil)

	tasks, err := f.taskSvc.List(ctx, userOther.ID, p.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	// The owner still sees it.
	tasks, err = f.taskSvc.List(ctx, userChef.ID, p.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}
