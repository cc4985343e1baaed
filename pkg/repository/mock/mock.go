package mock

import (
	"context"
	"sync"

	"github.com/garnizeh/learnprofile/internal/models"
	"github.com/garnizeh/learnprofile/pkg/repository"
)

// Test helpers and mocks
type Mocks struct {
	UserRepo        *mockUserRepo
	LearningResults *mockLearningStyleResultRepo
	Personality     *mockPersonalityResultRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		UserRepo:        &mockUserRepo{},
		LearningResults: &mockLearningStyleResultRepo{},
		Personality:     &mockPersonalityResultRepo{},
	}
}

type mockUserRepo struct {
	mu        sync.Mutex
	Users     []*models.User
	CreateErr error
	GetErr    error
}

func (m *mockUserRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	for _, existing := range m.Users {
		if existing.Email == u.Email {
			return 0, repository.ErrDuplicateEmail
		}
		if existing.Username == u.Username {
			return 0, repository.ErrDuplicateUsername
		}
	}
	stored := *u
	stored.ID = int64(len(m.Users) + 1)
	m.Users = append(m.Users, &stored)
	u.ID = stored.ID
	return stored.ID, nil
}

func (m *mockUserRepo) find(match func(*models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, u := range m.Users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.ID == id })
}

func (m *mockUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.Username == username })
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.Email == email })
}

type mockLearningStyleResultRepo struct {
	mu        sync.Mutex
	Rows      []models.LearningStyleResult
	CreateErr error
	GetErr    error
}

func (m *mockLearningStyleResultRepo) CreateLearningStyleResult(ctx context.Context, r *models.LearningStyleResult) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	r.ID = int64(len(m.Rows) + 1)
	m.Rows = append(m.Rows, *r)
	return r.ID, nil
}

func (m *mockLearningStyleResultRepo) GetLatestLearningStyleResult(ctx context.Context, userID int64) (*models.LearningStyleResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for i := len(m.Rows) - 1; i >= 0; i-- {
		if m.Rows[i].UserID == userID {
			cp := m.Rows[i]
			return &cp, nil
		}
	}
	return nil, nil
}

type mockPersonalityResultRepo struct {
	mu        sync.Mutex
	Rows      []models.PersonalityResult
	CreateErr error
	GetErr    error
}

func (m *mockPersonalityResultRepo) CreatePersonalityResult(ctx context.Context, r *models.PersonalityResult) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	r.ID = int64(len(m.Rows) + 1)
	m.Rows = append(m.Rows, *r)
	return r.ID, nil
}

func (m *mockPersonalityResultRepo) GetLatestPersonalityResult(ctx context.Context, userID int64) (*models.PersonalityResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for i := len(m.Rows) - 1; i >= 0; i-- {
		if m.Rows[i].UserID == userID {
			cp := m.Rows[i]
			return &cp, nil
		}
	}
	return nil, nil
}
