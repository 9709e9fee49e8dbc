package usecase_test

import (
	"context"
	"time"

	"go-jobmatch-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}
func (m *MockUserRepo) CountPublishedResumes(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}
func (m *MockUserRepo) CountActiveVacancies(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type MockBlackListRepo struct {
	mock.Mock
}

func (m *MockBlackListRepo) ExistsBetween(ctx context.Context, userA, userB string) (bool, error) {
	args := m.Called(ctx, userA, userB)
	return args.Bool(0), args.Error(1)
}
func (m *MockBlackListRepo) Exists(ctx context.Context, userID, blockedUserID string) (bool, error) {
	args := m.Called(ctx, userID, blockedUserID)
	return args.Bool(0), args.Error(1)
}
func (m *MockBlackListRepo) CreateWithCascade(ctx context.Context, entry *domain.BlackListEntry) error {
	return m.Called(ctx, entry).Error(0)
}
func (m *MockBlackListRepo) Delete(ctx context.Context, userID, blockedUserID string) error {
	return m.Called(ctx, userID, blockedUserID).Error(0)
}
func (m *MockBlackListRepo) ListBlocked(ctx context.Context, userID string, limit, offset int) ([]domain.BlockedUser, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.BlockedUser), args.Get(1).(int64), args.Error(2)
}

type MockInvitationRepo struct {
	mock.Mock
}

func (m *MockInvitationRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	return m.Called(ctx, inv).Error(0)
}
func (m *MockInvitationRepo) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}
func (m *MockInvitationRepo) ActiveExists(ctx context.Context, studentID, employerID string, vacancyID *string, invType string) (bool, error) {
	args := m.Called(ctx, studentID, employerID, vacancyID, invType)
	return args.Bool(0), args.Error(1)
}
func (m *MockInvitationRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	return m.Called(ctx, id, status, at).Error(0)
}
func (m *MockInvitationRepo) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockInvitationRepo) ListForUser(ctx context.Context, userID, role string, filter domain.InvitationFilter, limit, offset int) ([]domain.Invitation, int64, error) {
	args := m.Called(ctx, userID, role, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Invitation), args.Get(1).(int64), args.Error(2)
}

type MockVacancyRepo struct {
	mock.Mock
}

func (m *MockVacancyRepo) GetByID(ctx context.Context, id string) (*domain.Vacancy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vacancy), args.Error(1)
}
func (m *MockVacancyRepo) ListByEmployer(ctx context.Context, employerID string, limit, offset int) ([]domain.Vacancy, int64, error) {
	args := m.Called(ctx, employerID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Vacancy), args.Get(1).(int64), args.Error(2)
}

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}
func (m *MockNotificationRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Get(1).(int64), args.Error(2)
}
func (m *MockNotificationRepo) UnreadCount(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockNotificationRepo) MarkRead(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}
func (m *MockNotificationRepo) MarkMultipleRead(ctx context.Context, userID string, ids []string) error {
	return m.Called(ctx, userID, ids).Error(0)
}
func (m *MockNotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

// Mock Usecases used as collaborators

type MockGate struct {
	mock.Mock
}

func (m *MockGate) CanCommunicate(ctx context.Context, userA, userB string) error {
	return m.Called(ctx, userA, userB).Error(0)
}
func (m *MockGate) ToggleBlock(ctx context.Context, userID, blockedUserID string, shouldBlock bool) error {
	return m.Called(ctx, userID, blockedUserID, shouldBlock).Error(0)
}
func (m *MockGate) ListBlocked(ctx context.Context, userID string, page, pageSize int) ([]domain.BlockedUser, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.BlockedUser), args.Get(1).(int64), args.Error(2)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, input *domain.SendNotificationInput) {
	m.Called(ctx, input)
}
func (m *MockNotifier) List(ctx context.Context, userID string, page, pageSize int) ([]domain.Notification, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Get(1).(int64), args.Error(2)
}
func (m *MockNotifier) UnreadCount(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockNotifier) MarkRead(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}
func (m *MockNotifier) MarkMultipleRead(ctx context.Context, userID string, ids []string) error {
	return m.Called(ctx, userID, ids).Error(0)
}
func (m *MockNotifier) MarkAllRead(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

// Test fixtures

func strPtr(s string) *string { return &s }

func testStudent(id string) *domain.User {
	return &domain.User{
		ID:                id,
		Email:             id + "@student.test",
		Role:              domain.RoleStudent,
		FirstName:         strPtr("Ivan"),
		LastName:          strPtr("Petrov"),
		City:              strPtr("Berlin"),
		RegistrationStage: domain.StageProfileFilled,
	}
}

func testEmployer(id string) *domain.User {
	return &domain.User{
		ID:                id,
		Email:             id + "@employer.test",
		Role:              domain.RoleEmployer,
		CompanyName:       strPtr("Acme GmbH"),
		City:              strPtr("Berlin"),
		RegistrationStage: domain.StageProfileFilled,
	}
}

func testAdmin(id string) *domain.User {
	return &domain.User{
		ID:                id,
		Email:             id + "@admin.test",
		Role:              domain.RoleAdmin,
		RegistrationStage: domain.StageFullyActivated,
	}
}
