package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	UserRepo    UserRepository
	MemberRepo  MemberRepository
	ProjectRepo ProjectRepository
	TaskRepo    TaskRepository
	FileRepo    FileRepository
	CommentRepo CommentRepository
}

func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepo:    NewUserRepository(pool),
		MemberRepo:  NewMemberRepository(pool),
		ProjectRepo: NewProjectRepository(pool),
		TaskRepo:    NewTaskRepository(pool),
		FileRepo:    NewFileRepository(pool),
		CommentRepo: NewCommentRepository(pool),
	}
}
