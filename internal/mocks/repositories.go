package mocks

import (
	"context"

	"github.com/wp-content-migrator/internal/models"
	"github.com/wp-content-migrator/internal/repository"
)

// MockPostRepository is an in-memory implementation of PostRepository
type MockPostRepository struct {
	Posts       []*models.LegacyPost
	Statuses    map[int64]models.MigrationStatus
	UpdateError error
	UpdateCalls int
}

func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{
		Statuses: make(map[int64]models.MigrationStatus),
	}
}

func (m *MockPostRepository) StreamPending(ctx context.Context, callback func(*models.LegacyPost) error) error {
	for _, post := range m.Posts {
		if m.Statuses[post.ID] == models.StatusDone {
			continue
		}
		if err := callback(post); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockPostRepository) UpdateStatus(ctx context.Context, id int64, status models.MigrationStatus) error {
	m.UpdateCalls++
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.Statuses[id] = status
	return nil
}

func (m *MockPostRepository) CountPending(ctx context.Context) (int, error) {
	count := 0
	for _, post := range m.Posts {
		if m.Statuses[post.ID] != models.StatusDone {
			count++
		}
	}
	return count, nil
}

// MockMediaRepository is an in-memory implementation of MediaRepository
type MockMediaRepository struct {
	Media       []*models.LegacyMedia
	Statuses    map[int64]models.MigrationStatus
	UpdateError error
	UpdateCalls int
}

func NewMockMediaRepository() *MockMediaRepository {
	return &MockMediaRepository{
		Statuses: make(map[int64]models.MigrationStatus),
	}
}

func (m *MockMediaRepository) StreamPending(ctx context.Context, callback func(*models.LegacyMedia) error) error {
	for _, media := range m.Media {
		if m.Statuses[media.ID] == models.StatusDone {
			continue
		}
		if err := callback(media); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockMediaRepository) UpdateStatus(ctx context.Context, id int64, status models.MigrationStatus) error {
	m.UpdateCalls++
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.Statuses[id] = status
	return nil
}

func (m *MockMediaRepository) CountPending(ctx context.Context) (int, error) {
	count := 0
	for _, media := range m.Media {
		if m.Statuses[media.ID] != models.StatusDone {
			count++
		}
	}
	return count, nil
}

// MockPictureRepository is an in-memory implementation of PictureRepository
type MockPictureRepository struct {
	Pictures map[int64]*models.Picture
	GetCalls int
}

func NewMockPictureRepository() *MockPictureRepository {
	return &MockPictureRepository{
		Pictures: make(map[int64]*models.Picture),
	}
}

func (m *MockPictureRepository) GetByID(ctx context.Context, id int64) (*models.Picture, error) {
	m.GetCalls++
	picture, ok := m.Pictures[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return picture, nil
}
