package seed

import (
	"context"
	"log"
	"time"

	"promanager-backend/internal/repository"
	"promanager-backend/internal/types"

	"golang.org/x/crypto/bcrypt"
)

// SeedData creates a small realistic data set for development: one admin,
// one chef de projet, two members, a project and a few tasks.
func SeedData(repos *repository.Repositories) {
	ctx := context.Background()

	existing, _ := repos.UserRepo.FindByEmail(ctx, "sophie.martin@promanager.fr")
	if existing != nil {
		log.Println("[Seed] Data already exists, skipping...")
		return
	}

	log.Println("[Seed] 🌱 Creating initial data...")

	password, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	// 1. SOPHIE - Administrator
	sophie := &repository.User{
		Email:    "sophie.martin@promanager.fr",
		Password: string(password),
		Name:     "Sophie Martin",
	}
	repos.UserRepo.Create(ctx, sophie)

	// 2. KARIM - Chef de projet
	karim := &repository.User{
		Email:    "karim.benali@promanager.fr",
		Password: string(password),
		Name:     "Karim Benali",
	}
	repos.UserRepo.Create(ctx, karim)

	// 3. LUCIE - Member
	lucie := &repository.User{
		Email:    "lucie.durand@promanager.fr",
		Password: string(password),
		Name:     "Lucie Durand",
	}
	repos.UserRepo.Create(ctx, lucie)

	// 4. THOMAS - Member
	thomas := &repository.User{
		Email:    "thomas.petit@promanager.fr",
		Password: string(password),
		Name:     "Thomas Petit",
	}
	repos.UserRepo.Create(ctx, thomas)

	sophieMember := &repository.Member{UserID: sophie.ID, Name: sophie.Name, Role: types.RoleAdmin}
	karimMember := &repository.Member{UserID: karim.ID, Name: karim.Name, Role: types.RoleChefProjet}
	lucieMember := &repository.Member{UserID: lucie.ID, Name: lucie.Name, Role: types.RoleMembre}
	thomasMember := &repository.Member{UserID: thomas.ID, Name: thomas.Name, Role: types.RoleMembre}
	repos.MemberRepo.Create(ctx, sophieMember)
	repos.MemberRepo.Create(ctx, karimMember)
	repos.MemberRepo.Create(ctx, lucieMember)
	repos.MemberRepo.Create(ctx, thomasMember)

	now := time.Now()
	project := &repository.Project{
		Name:        "Refonte du site vitrine",
		Description: "Migration du site vitrine vers la nouvelle charte graphique",
		StartDate:   now.AddDate(0, 0, -14),
		EndDate:     now.AddDate(0, 1, 0),
		Status:      types.StatusInProgress,
		CreatedBy:   karimMember.ID,
	}
	repos.ProjectRepo.Create(ctx, project)
	repos.ProjectRepo.AddMember(ctx, project.ID, lucieMember.ID)
	repos.ProjectRepo.AddMember(ctx, project.ID, thomasMember.ID)

	maquettes := &repository.Task{
		Name:       "Maquettes des pages principales",
		StartDate:  now.AddDate(0, 0, -14),
		EndDate:    now.AddDate(0, 0, -2),
		Status:     types.StatusDone,
		Priority:   types.PriorityHigh,
		ProjectID:  project.ID,
		AssigneeID: &lucieMember.ID,
	}
	repos.TaskRepo.Create(ctx, maquettes)

	integration := &repository.Task{
		Name:       "Intégration de la page d'accueil",
		StartDate:  now.AddDate(0, 0, -5),
		EndDate:    now.AddDate(0, 0, 7),
		Status:     types.StatusInProgress,
		Priority:   types.PriorityUrgent,
		ProjectID:  project.ID,
		AssigneeID: &thomasMember.ID,
	}
	repos.TaskRepo.Create(ctx, integration)

	recette := &repository.Task{
		Name:      "Recette fonctionnelle",
		StartDate: now.AddDate(0, 0, 10),
		EndDate:   now.AddDate(0, 0, 20),
		Status:    types.StatusPending,
		Priority:  types.PriorityMedium,
		ProjectID: project.ID,
	}
	repos.TaskRepo.Create(ctx, recette)

	log.Println("[Seed] ✅ Initial data created")
}
