package statement_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mvisser/banknote/internal/record"
	"github.com/mvisser/banknote/internal/statement"
)

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	records := []record.Record{
		{ID: 0, Date: time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), Amount: 10, Type: record.TypeDebit},
	}

	repo := statement.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, batch *statement.Batch) error {
			batch.CreatedAt = time.Now()
			return nil
		})

	svc := statement.NewService(repo)
	batch, err := svc.Create(context.Background(), "export.csv", records)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, batch.ID)
	assert.Equal(t, "export.csv", batch.Filename)
	assert.Equal(t, records, batch.Records)
}

func TestService_Create_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := statement.NewMockRepository(ctrl)
	repo.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).Return(errors.New("db error"))

	svc := statement.NewService(repo)
	_, err := svc.Create(context.Background(), "export.csv", nil)
	assert.Error(t, err)
}

func TestService_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := statement.NewMockRepository(ctrl)
	repo.EXPECT().GetBatch(gomock.Any(), id).Return(nil, statement.ErrNotFound)

	svc := statement.NewService(repo)
	_, err := svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, statement.ErrNotFound)
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	infos := []statement.BatchInfo{
		{ID: uuid.New(), Filename: "a.csv", RecordCount: 3},
		{ID: uuid.New(), Filename: "b.csv", RecordCount: 7},
	}

	repo := statement.NewMockRepository(ctrl)
	repo.EXPECT().ListBatches(gomock.Any()).Return(infos, nil)

	svc := statement.NewService(repo)
	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, infos, got)
}
