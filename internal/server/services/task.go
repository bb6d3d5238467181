package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/dbx"
	"github.com/dmitrijs2005/todoapi/internal/logging"
	"github.com/dmitrijs2005/todoapi/internal/server/auth"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	"github.com/dmitrijs2005/todoapi/internal/server/repositories/repomanager"
)

// TaskService manages todo items on behalf of an authenticated caller.
// Tasks of other users fail with common.ErrForbidden, missing tasks with
// common.ErrorNotFound.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *TaskService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &TaskService{db: db, repomanager: m, logger: logger.With("module", "tasks")}
}

// List returns the caller's tasks. The result is never nil.
func (s *TaskService) List(ctx context.Context, caller *auth.Identity, skip, limit int) ([]*models.Task, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	skip, limit, err := page(skip, limit)
	if err != nil {
		return nil, err
	}

	items, err := s.repomanager.Tasks(s.db).ListByUser(ctx, caller.UserID, skip, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*models.Task{}
	}
	return items, nil
}

func (s *TaskService) Get(ctx context.Context, caller *auth.Identity, id string) (*models.Task, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	task, err := s.repomanager.Tasks(s.db).Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckOwnership(caller, task.UserID); err != nil {
		s.logger.Warn(ctx, "foreign task access", "user_id", caller.UserID, "task_id", id)
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Create(ctx context.Context, caller *auth.Identity, in models.TaskCreate) (*models.Task, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if err := validateTaskCreate(in); err != nil {
		return nil, err
	}

	task, err := s.repomanager.Tasks(s.db).Create(ctx, &models.Task{
		UserID:      caller.UserID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "task created", "user_id", caller.UserID, "task_id", task.ID)
	return task, nil
}

// Update applies a partial update. The row is locked between the ownership
// check and the write.
func (s *TaskService) Update(ctx context.Context, caller *auth.Identity, id string, upd models.TaskUpdate) (*models.Task, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if err := validateTaskUpdate(upd); err != nil {
		return nil, err
	}

	var updated *models.Task
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		task, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := auth.CheckOwnership(caller, task.UserID); err != nil {
			return err
		}

		upd.Apply(task)
		updated, err = repo.Update(ctx, task)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, caller *auth.Identity, id string) error {
	if err := requireCaller(caller); err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		task, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := auth.CheckOwnership(caller, task.UserID); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
}

func requireCaller(caller *auth.Identity) error {
	if caller == nil {
		return &auth.Rejection{Reason: common.ErrMissingToken}
	}
	return nil
}
