package service

import (
	"context"
	"testing"
	"time"

	"promanager-backend/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCreateAnyRoleWithinScope(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, chef := f.addAccount("bob", types.RoleChefProjet)
	userMembre, membre := f.addAccount("dan", types.RoleMembre)
	p := f.addProject(chef, "Alpha")
	f.projRepo.AddMember(ctx, p.ID, membre.ID)

	file, err := f.fileSvc.Create(ctx, userMembre.ID, &CreateFileRequest{
		ProjectID: p.ID,
		Name:      "cahier-des-charges.pdf",
	})
	require.NoError(t, err)
	assert.False(t, file.SharedOn.IsZero())
}

func TestFileCreateOutOfScopeLooksLikeMissing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, chef := f.addAccount("bob", types.RoleChefProjet)
	userOther, _ := f.addAccount("carol", types.RoleMembre)
	p := f.addProject(chef, "Alpha")

	_, err := f.fileSvc.Create(ctx, userOther.ID, &CreateFileRequest{
		ProjectID: p.ID,
		Name:      "cahier-des-charges.pdf",
	})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.fileSvc.Create(ctx, userOther.ID, &CreateFileRequest{
		ProjectID: "no-such-project",
		Name:      "x.pdf",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileCreateValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	userChef, chef := f.addAccount("bob", types.RoleChefProjet)
	p := f.addProject(chef, "Alpha")

	_, err := f.fileSvc.Create(ctx, userChef.ID, &CreateFileRequest{ProjectID: p.ID})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFileCreateKeepsExplicitSharedOn(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	userChef, chef := f.addAccount("bob", types.RoleChefProjet)
	p := f.addProject(chef, "Alpha")

	sharedOn := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	file, err := f.fileSvc.Create(ctx, userChef.ID, &CreateFileRequest{
		ProjectID: p.ID,
		Name:      "compte-rendu.pdf",
		SharedOn:  sharedOn,
	})
	require.NoError(t, err)
	assert.True(t, file.SharedOn.Equal(sharedOn))
}

func TestFileListAndDeleteScoped(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	userChef, chef := f.addAccount("bob", types.RoleChefProjet)
	userOther, _ := f.addAccount("carol", types.RoleMembre)
	p := f.addProject(chef, "Alpha")

	file, err := f.fileSvc.Create(ctx, userChef.ID, &CreateFileRequest{ProjectID: p.ID, Name: "notes.txt"})
	require.NoError(t, err)

	files, err := f.fileSvc.List(ctx, userChef.ID, "")
	require.NoError(t, err)
	assert.Len(t, files, 1)

	files, err = f.fileSvc.List(ctx, userOther.ID, "")
	require.NoError(t, err)
	assert.Empty(t, files)

	err = f.fileSvc.Delete(ctx, userOther.ID, file.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, f.fileSvc.Delete(ctx, userChef.ID, file.ID))
	err = f.fileSvc.Delete(ctx, userChef.ID, file.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
