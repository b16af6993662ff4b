package services

import (
	"context"

	"github.com/kanbanboard/kanban-api/database"
)

// AccessService decides what a principal may do with a project and the
// entities under it. Two relationships exist: the project's owner has
// full rights, a member may read everything and work with tasks but
// cannot change the column structure or manage memberships.
type AccessService struct {
	store *database.Store
}

func NewAccessService(store *database.Store) *AccessService {
	return &AccessService{store: store}
}

// CanRead reports whether the user may read the project's columns,
// tasks, logs and member list.
func (s *AccessService) CanRead(ctx context.Context, project *database.Project, userID int64) (bool, error) {
	if project.OwnerID == userID {
		return true, nil
	}
	return s.store.IsMember(ctx, project.ProjectID, userID)
}

// CanWorkWithTasks reports whether the user may create, update or
// delete tasks within the project's columns. Members hold the same
// task rights as the owner.
func (s *AccessService) CanWorkWithTasks(ctx context.Context, project *database.Project, userID int64) (bool, error) {
	return s.CanRead(ctx, project, userID)
}

// CanManage reports whether the user may change the project's column
// structure or its memberships. Owner only.
func (s *AccessService) CanManage(project *database.Project, userID int64) bool {
	return project.OwnerID == userID
}
