package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pressroom/internal/apperr"
	"pressroom/internal/domain/models"
	"pressroom/internal/storage"
	"pressroom/internal/transport/http/dto"
)

type MockProviderRepository struct {
	mock.Mock
}

func (m *MockProviderRepository) ListProviders(ctx context.Context) ([]models.AiProvider, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AiProvider), args.Error(1)
}

func (m *MockProviderRepository) SaveProvider(ctx context.Context, provider models.AiProvider) (primitive.ObjectID, error) {
	args := m.Called(ctx, provider)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockProviderRepository) UpdateProviderFields(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	args := m.Called(ctx, id, updates)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("missing name is rejected", func(t *testing.T) {
		repo := new(MockProviderRepository)
		svc := NewProviderService(testLogger(), repo)

		_, err := svc.CreateProvider(ctx, dto.CreateProviderRequest{Description: "no name"})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		repo.AssertNotCalled(t, "SaveProvider", mock.Anything, mock.Anything)
	})

	t.Run("create returns the new document id", func(t *testing.T) {
		repo := new(MockProviderRepository)
		svc := NewProviderService(testLogger(), repo)

		id := primitive.NewObjectID()
		repo.On("SaveProvider", ctx, mock.MatchedBy(func(p models.AiProvider) bool {
			return p.Name == "openai" && p.IsActive
		})).Return(id, nil)

		got, err := svc.CreateProvider(ctx, dto.CreateProviderRequest{Name: "openai", IsActive: true})
		require.NoError(t, err)
		assert.Equal(t, id.Hex(), got.ID)
		repo.AssertExpectations(t)
	})
}

func TestUpdateProvider(t *testing.T) {
	ctx := context.Background()

	strPtr := func(s string) *string { return &s }
	boolPtr := func(b bool) *bool { return &b }

	t.Run("malformed id is a validation error", func(t *testing.T) {
		repo := new(MockProviderRepository)
		svc := NewProviderService(testLogger(), repo)

		err := svc.UpdateProvider(ctx, dto.UpdateProviderRequest{ID: "not-hex", Name: strPtr("x")})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("empty patch is rejected", func(t *testing.T) {
		repo := new(MockProviderRepository)
		svc := NewProviderService(testLogger(), repo)

		err := svc.UpdateProvider(ctx, dto.UpdateProviderRequest{ID: primitive.NewObjectID().Hex()})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		repo.AssertNotCalled(t, "UpdateProviderFields", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("only supplied fields reach storage", func(t *testing.T) {
		repo := new(MockProviderRepository)
		svc := NewProviderService(testLogger(), repo)

		id := primitive.NewObjectID()
		repo.On("UpdateProviderFields", ctx, id, map[string]interface{}{"isActive": false}).Return(nil)

		err := svc.UpdateProvider(ctx, dto.UpdateProviderRequest{ID: id.Hex(), IsActive: boolPtr(false)})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("unknown id maps to not found", func(t *testing.T) {
		repo := new(MockProviderRepository)
		svc := NewProviderService(testLogger(), repo)

		id := primitive.NewObjectID()
		repo.On("UpdateProviderFields", ctx, id, mock.Anything).Return(storage.ErrProviderNotFound)

		err := svc.UpdateProvider(ctx, dto.UpdateProviderRequest{ID: id.Hex(), Name: strPtr("x")})
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}
