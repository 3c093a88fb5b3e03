package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/liorkima5-coder/CityPulseAI/internal/domain"
	"github.com/liorkima5-coder/CityPulseAI/internal/events"
	"github.com/liorkima5-coder/CityPulseAI/internal/repository"
	"github.com/liorkima5-coder/CityPulseAI/internal/triage"
	apperrors "github.com/liorkima5-coder/CityPulseAI/pkg/util"
)

type mockTicketRepo struct {
	mock.Mock
}

func (m *mockTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *mockTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*domain.Ticket); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTicketRepo) List(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	args := m.Called(ctx, filter)
	if t, ok := args.Get(0).([]domain.Ticket); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTicketRepo) ListWithCoordinates(ctx context.Context) ([]domain.Ticket, error) {
	args := m.Called(ctx)
	if t, ok := args.Get(0).([]domain.Ticket); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTicketRepo) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockTicketRepo) UpdateNotes(ctx context.Context, id string, notes string) error {
	args := m.Called(ctx, id, notes)
	return args.Error(0)
}

func (m *mockTicketRepo) CountByStatus(ctx context.Context) (map[domain.TicketStatus]int, error) {
	args := m.Called(ctx)
	if counts, ok := args.Get(0).(map[domain.TicketStatus]int); ok {
		return counts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTicketRepo) ListContacts(ctx context.Context) ([]repository.ContactRow, error) {
	args := m.Called(ctx)
	if rows, ok := args.Get(0).([]repository.ContactRow); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTicketRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	args := m.Called(ctx, categoryID)
	return args.Int(0), args.Error(1)
}

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *mockCategoryRepo) Update(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*domain.Category); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if c, ok := args.Get(0).([]domain.Category); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

type stubResolver struct {
	result *domain.Coordinates
	calls  int
}

func (s *stubResolver) Resolve(ctx context.Context, address string) *domain.Coordinates {
	s.calls++
	return s.result
}

type stubUploader struct {
	url   string
	err   error
	calls int
}

func (s *stubUploader) Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

type stubVerifier struct {
	err   error
	calls int
}

func (s *stubVerifier) Verify(ctx context.Context, token string) error {
	s.calls++
	return s.err
}

func validInput() IntakeInput {
	return IntakeInput{
		FullName:     "Dana Levi",
		Phone:        "050-1234567",
		Email:        "dana@example.com",
		IssueAddress: "Jaffa Street 12",
		CategoryID:   "cat-1",
		Description:  "streetlight is broken",
		CaptchaToken: "token",
	}
}

func newIntakeFixture(t *testing.T) (*IntakeService, *mockTicketRepo, *mockCategoryRepo, *stubResolver, *stubUploader, *stubVerifier) {
	t.Helper()
	tickets := new(mockTicketRepo)
	categories := new(mockCategoryRepo)
	resolver := &stubResolver{result: &domain.Coordinates{Lat: 31.78, Lng: 35.21}}
	uploader := &stubUploader{url: "https://files.example.com/object/public/ticket-images/x.jpg"}
	verifier := &stubVerifier{}

	svc := NewIntakeService(IntakeDependencies{
		TicketRepo:   tickets,
		CategoryRepo: categories,
		Classifier:   triage.NewClassifier(triage.DefaultKeywords()),
		Resolver:     resolver,
		Uploader:     uploader,
		Verifier:     verifier,
		Dispatcher:   events.NewInMemoryDispatcher(zap.NewNop()),
		Logger:       zap.NewNop(),
	})
	return svc, tickets, categories, resolver, uploader, verifier
}

func TestSubmitTicketMissingCaptchaToken(t *testing.T) {
	svc, tickets, categories, resolver, _, verifier := newIntakeFixture(t)

	input := validInput()
	input.CaptchaToken = "  "

	_, err := svc.SubmitTicket(context.Background(), input)
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VERIFICATION_REQUIRED", domainErr.Code)

	// Rejection happens before any side effect.
	assert.Zero(t, verifier.calls)
	assert.Zero(t, resolver.calls)
	tickets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	categories.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestSubmitTicketRejectedCaptcha(t *testing.T) {
	svc, tickets, _, resolver, _, verifier := newIntakeFixture(t)
	verifier.err = errors.New("token rejected")

	_, err := svc.SubmitTicket(context.Background(), validInput())
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VERIFICATION_REQUIRED", domainErr.Code)
	assert.Zero(t, resolver.calls)
	tickets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitTicketMissingFields(t *testing.T) {
	svc, tickets, _, _, _, _ := newIntakeFixture(t)

	input := validInput()
	input.Phone = ""
	input.Description = "   "

	_, err := svc.SubmitTicket(context.Background(), input)
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Equal(t, []string{"phone", "description"}, domainErr.Details["fields"])
	tickets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitTicketUnknownCategory(t *testing.T) {
	svc, tickets, categories, _, _, _ := newIntakeFixture(t)
	categories.On("GetByID", mock.Anything, "cat-1").Return(nil, errors.New("no rows"))

	_, err := svc.SubmitTicket(context.Background(), validInput())
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	tickets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitTicketTriagesAndPersists(t *testing.T) {
	svc, tickets, categories, _, _, verifier := newIntakeFixture(t)
	categories.On("GetByID", mock.Anything, "cat-1").Return(&domain.Category{ID: "cat-1"}, nil)
	tickets.On("Create", mock.Anything, mock.Anything).Return(nil)

	input := validInput()
	input.Description = "יש בור מסוכן בכביש, דחוף"

	ticket, err := svc.SubmitTicket(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusNew, ticket.Status)
	assert.Equal(t, domain.TicketPriorityCritical, ticket.Priority)
	assert.Equal(t, domain.SentimentNegative, ticket.Sentiment)
	require.NotNil(t, ticket.Location)
	assert.InDelta(t, 31.78, ticket.Location.Lat, 0.001)
	assert.Equal(t, 1, verifier.calls)
	tickets.AssertCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitTicketGeocodeFailureStillPersists(t *testing.T) {
	svc, tickets, categories, resolver, _, _ := newIntakeFixture(t)
	resolver.result = nil
	categories.On("GetByID", mock.Anything, "cat-1").Return(&domain.Category{ID: "cat-1"}, nil)
	tickets.On("Create", mock.Anything, mock.Anything).Return(nil)

	ticket, err := svc.SubmitTicket(context.Background(), validInput())
	require.NoError(t, err)

	assert.Nil(t, ticket.Location)
	assert.Equal(t, domain.TicketStatusNew, ticket.Status)
	assert.Equal(t, 1, resolver.calls)
}

func TestSubmitTicketPhotoUploadFailureAborts(t *testing.T) {
	svc, tickets, categories, _, uploader, _ := newIntakeFixture(t)
	uploader.err = errors.New("bucket unavailable")
	categories.On("GetByID", mock.Anything, "cat-1").Return(&domain.Category{ID: "cat-1"}, nil)

	input := validInput()
	input.Photo = &PhotoInput{FileName: "pothole.jpg", ContentType: "image/jpeg", Content: []byte{0xFF}}

	_, err := svc.SubmitTicket(context.Background(), input)
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "STORAGE_ERROR", domainErr.Code)
	tickets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitTicketPhotoURLAttached(t *testing.T) {
	svc, tickets, categories, _, uploader, _ := newIntakeFixture(t)
	categories.On("GetByID", mock.Anything, "cat-1").Return(&domain.Category{ID: "cat-1"}, nil)
	tickets.On("Create", mock.Anything, mock.Anything).Return(nil)

	input := validInput()
	input.Photo = &PhotoInput{FileName: "pothole.jpg", ContentType: "image/jpeg", Content: []byte{0xFF}}

	ticket, err := svc.SubmitTicket(context.Background(), input)
	require.NoError(t, err)

	require.NotNil(t, ticket.PhotoURL)
	assert.Equal(t, uploader.url, *ticket.PhotoURL)
	assert.Equal(t, 1, uploader.calls)
}

func TestSubmitTicketPersistenceFailure(t *testing.T) {
	svc, tickets, categories, _, _, _ := newIntakeFixture(t)
	categories.On("GetByID", mock.Anything, "cat-1").Return(&domain.Category{ID: "cat-1"}, nil)
	tickets.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	_, err := svc.SubmitTicket(context.Background(), validInput())
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "PERSISTENCE_ERROR", domainErr.Code)
}

func TestSubmitTicketNotificationFailureIsAbsorbed(t *testing.T) {
	tickets := new(mockTicketRepo)
	categories := new(mockCategoryRepo)
	categories.On("GetByID", mock.Anything, "cat-1").Return(&domain.Category{ID: "cat-1"}, nil)
	tickets.On("Create", mock.Anything, mock.Anything).Return(nil)

	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	dispatcher.Subscribe(events.EventTicketCreated, func(ctx context.Context, event events.Event) error {
		return errors.New("smtp down")
	})

	svc := NewIntakeService(IntakeDependencies{
		TicketRepo:   tickets,
		CategoryRepo: categories,
		Classifier:   triage.NewClassifier(triage.DefaultKeywords()),
		Resolver:     &stubResolver{},
		Uploader:     &stubUploader{},
		Verifier:     &stubVerifier{},
		Dispatcher:   dispatcher,
		Logger:       zap.NewNop(),
	})

	ticket, err := svc.SubmitTicket(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusNew, ticket.Status)
}

func TestSubmitStaffTicketSkipsVerification(t *testing.T) {
	svc, tickets, categories, _, _, verifier := newIntakeFixture(t)
	verifier.err = errors.New("would fail if called")
	categories.On("GetByID", mock.Anything, "cat-1").Return(&domain.Category{ID: "cat-1"}, nil)
	tickets.On("Create", mock.Anything, mock.Anything).Return(nil)

	input := validInput()
	input.CaptchaToken = ""

	_, err := svc.SubmitStaffTicket(context.Background(), input)
	require.NoError(t, err)
	assert.Zero(t, verifier.calls)
}
