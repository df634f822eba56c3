// Package service contains locker and folder request handlers and their rules
package service

import (
	"recordkeeper/internal/core/mediator"
	"recordkeeper/internal/modkit/repokit"
	"recordkeeper/internal/services/api/storage/domain"
	"recordkeeper/internal/services/api/storage/repo"
)

// Svc handles locker and folder requests
type Svc struct {
	Repo     repo.Repo
	binder   repokit.Binder[repo.Repo]
	db       repokit.TxRunner
	attempts int
}

// Options control service behavior
type Options struct {
	TxAttempts int
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opt Options) *Svc {
	if db == nil {
		panic("storage.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("storage.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:     binder.Bind(db),
		binder:   binder,
		db:       db,
		attempts: max(opt.TxAttempts, 1),
	}
}

// Register implements mediator.Registrar
func (s *Svc) Register(r *mediator.Registry) {
	mediator.ValidateWith[domain.AddLocker](r, addLockerRules)
	mediator.Authorize(r, authorizeAddLocker)
	mediator.Handle(r, s.AddLocker)

	mediator.ValidateWith[domain.UpdateLocker](r, updateLockerRules)
	mediator.Authorize(r, authorizeUpdateLocker)
	mediator.Handle(r, s.UpdateLocker)

	mediator.ValidateWith[domain.RemoveLocker](r, removeLockerRules)
	mediator.Authorize(r, authorizeRemoveLocker)
	mediator.Handle(r, s.RemoveLocker)

	mediator.ValidateWith[domain.GetLockerByID](r, getLockerRules)
	mediator.Authorize(r, authorizeGetLocker)
	mediator.Handle(r, s.GetLockerByID)

	mediator.ValidateWith[domain.GetAllLockers](r, getAllLockersRules)
	mediator.Authorize(r, authorizeGetAllLockers)
	mediator.Handle(r, s.GetAllLockers)

	mediator.ValidateWith[domain.AddFolder](r, addFolderRules)
	mediator.Authorize(r, authorizeAddFolder)
	mediator.Handle(r, s.AddFolder)

	mediator.ValidateWith[domain.UpdateFolder](r, updateFolderRules)
	mediator.Authorize(r, authorizeUpdateFolder)
	mediator.Handle(r, s.UpdateFolder)

	mediator.ValidateWith[domain.RemoveFolder](r, removeFolderRules)
	mediator.Authorize(r, authorizeRemoveFolder)
	mediator.Handle(r, s.RemoveFolder)

	mediator.ValidateWith[domain.GetFolderByID](r, getFolderRules)
	mediator.Authorize(r, authorizeGetFolder)
	mediator.Handle(r, s.GetFolderByID)

	mediator.ValidateWith[domain.GetAllFolders](r, getAllFoldersRules)
	mediator.Authorize(r, authorizeGetAllFolders)
	mediator.Handle(r, s.GetAllFolders)
}
