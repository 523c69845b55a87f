package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"tujenge.backend/internal/domain/entities"
	"tujenge.backend/internal/usecases"
)

func TestAuditUsecase_Record_CapturesActorAndDetails(t *testing.T) {
	auditRepo := new(MockAuditLogRepository)
	uc := usecases.NewAuditUsecase(auditRepo)

	var entry *entities.AuditLog
	auditRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		entry = args.Get(1).(*entities.AuditLog)
	}).Return(nil).Once()

	actorID := uuid.New()
	uc.Record(context.Background(), usecases.Actor{ID: &actorID, Email: "staff@tujenge.co.tz", IP: "10.0.0.1"},
		entities.AuditActionApprove, "loan", "some-loan-id", map[string]string{"status": "approved"})

	assert.NotNil(t, entry)
	assert.Equal(t, &actorID, entry.ActorID)
	assert.Equal(t, "staff@tujenge.co.tz", entry.ActorEmail.String)
	assert.Equal(t, "10.0.0.1", entry.IPAddress.String)
	assert.Equal(t, entities.AuditActionApprove, entry.Action)
	assert.Contains(t, entry.Details.String, `"status":"approved"`)
}

func TestAuditUsecase_Record_SwallowsRepoErrors(t *testing.T) {
	auditRepo := new(MockAuditLogRepository)
	uc := usecases.NewAuditUsecase(auditRepo)

	auditRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	assert.NotPanics(t, func() {
		uc.Record(context.Background(), usecases.Actor{}, entities.AuditActionCreate, "customer", "", nil)
	})
	auditRepo.AssertExpectations(t)
}

func TestAuditUsecase_List_Passthrough(t *testing.T) {
	auditRepo := new(MockAuditLogRepository)
	uc := usecases.NewAuditUsecase(auditRepo)

	logs := []*entities.AuditLog{{ID: uuid.New()}}
	filter := entities.AuditFilter{ResourceType: "loan"}
	auditRepo.On("List", context.Background(), filter, 20, 0).Return(logs, 1, nil).Once()

	out, total, err := uc.List(context.Background(), filter, 20, 0)
	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, out, 1)
}
