package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/liorkima5-coder/CityPulseAI/internal/domain"
	"github.com/liorkima5-coder/CityPulseAI/internal/events"
	"github.com/liorkima5-coder/CityPulseAI/internal/geo"
	"github.com/liorkima5-coder/CityPulseAI/internal/repository"
	"github.com/liorkima5-coder/CityPulseAI/internal/storage"
	"github.com/liorkima5-coder/CityPulseAI/internal/triage"
	"github.com/liorkima5-coder/CityPulseAI/internal/verify"
	apperrors "github.com/liorkima5-coder/CityPulseAI/pkg/util"
)

// PhotoInput carries an optional photo attachment.
type PhotoInput struct {
	FileName    string
	ContentType string
	Content     []byte
}

// IntakeInput is a raw citizen submission before triage.
type IntakeInput struct {
	FullName     string
	Phone        string
	Email        string
	IssueAddress string
	CategoryID   string
	Description  string
	CaptchaToken string
	Photo        *PhotoInput
}

// IntakeService runs the triage pipeline: verification, photo upload,
// best-effort address resolution, keyword classification, persistence, and a
// best-effort confirmation notification.
type IntakeService struct {
	tickets    repository.TicketRepository
	categories repository.CategoryRepository
	classifier *triage.Classifier
	resolver   geo.Resolver
	uploader   storage.Uploader
	verifier   verify.Verifier
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// IntakeDependencies bundles collaborators for the intake service.
type IntakeDependencies struct {
	TicketRepo   repository.TicketRepository
	CategoryRepo repository.CategoryRepository
	Classifier   *triage.Classifier
	Resolver     geo.Resolver
	Uploader     storage.Uploader
	Verifier     verify.Verifier
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewIntakeService constructs the service.
func NewIntakeService(deps IntakeDependencies) *IntakeService {
	return &IntakeService{
		tickets:    deps.TicketRepo,
		categories: deps.CategoryRepo,
		classifier: deps.Classifier,
		resolver:   deps.Resolver,
		uploader:   deps.Uploader,
		verifier:   deps.Verifier,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// SubmitTicket handles a public citizen submission. The verification token
// is a hard precondition; geocoding and the confirmation email are not.
func (s *IntakeService) SubmitTicket(ctx context.Context, input IntakeInput) (*domain.Ticket, error) {
	if strings.TrimSpace(input.CaptchaToken) == "" {
		return nil, apperrors.NewVerificationRequired("human verification token required")
	}
	if s.verifier != nil {
		if err := s.verifier.Verify(ctx, input.CaptchaToken); err != nil {
			return nil, apperrors.NewVerificationRequired("human verification failed")
		}
	}
	return s.submit(ctx, input)
}

// SubmitStaffTicket handles manual intake from the console. Staff sessions
// are already authenticated, so no verification token is involved; the rest
// of the pipeline (geocoding, classification, notification) is identical.
func (s *IntakeService) SubmitStaffTicket(ctx context.Context, input IntakeInput) (*domain.Ticket, error) {
	return s.submit(ctx, input)
}

func (s *IntakeService) submit(ctx context.Context, input IntakeInput) (*domain.Ticket, error) {
	if err := validateIntake(input); err != nil {
		return nil, err
	}
	if _, err := s.categories.GetByID(ctx, input.CategoryID); err != nil {
		return nil, apperrors.NewValidationError("unknown category", map[string]any{"category_id": input.CategoryID})
	}

	// Photo upload is transactional: if a photo was supplied and cannot be
	// stored, no ticket is created at all.
	var photoURL *string
	if input.Photo != nil {
		url, err := s.uploadPhoto(ctx, input.Photo)
		if err != nil {
			return nil, apperrors.NewStorageError(err)
		}
		photoURL = &url
	}

	// Geocoding is enrichment only. A nil result leaves the ticket without
	// coordinates and the submission proceeds.
	location := s.resolver.Resolve(ctx, input.IssueAddress)
	if location == nil {
		s.logger.Info("ticket submitted without coordinates", zap.String("address", input.IssueAddress))
	}

	priority, sentiment := s.classifier.Classify(input.Description)

	ticket := &domain.Ticket{
		FullName:     strings.TrimSpace(input.FullName),
		Phone:        strings.TrimSpace(input.Phone),
		Email:        strings.TrimSpace(input.Email),
		IssueAddress: strings.TrimSpace(input.IssueAddress),
		CategoryID:   input.CategoryID,
		Description:  strings.TrimSpace(input.Description),
		PhotoURL:     photoURL,
		Location:     location,
		Priority:     priority,
		Sentiment:    sentiment,
		Status:       domain.TicketStatusNew,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}

	// Notification handlers run synchronously behind the dispatcher; their
	// failures are logged there and never reach the submitter.
	s.publish(ctx, events.Event{
		Type: events.EventTicketCreated,
		Payload: events.TicketCreatedPayload{
			TicketID:     ticket.ID,
			FullName:     ticket.FullName,
			Phone:        ticket.Phone,
			Email:        ticket.Email,
			IssueAddress: ticket.IssueAddress,
			Description:  ticket.Description,
			Priority:     ticket.Priority,
		},
	})

	return ticket, nil
}

func (s *IntakeService) uploadPhoto(ctx context.Context, photo *PhotoInput) (string, error) {
	ext := ""
	if idx := strings.LastIndex(photo.FileName, "."); idx >= 0 {
		ext = photo.FileName[idx:]
	}
	objectName := uuid.NewString() + ext

	contentType := photo.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return s.uploader.Upload(ctx, objectName, contentType, photo.Content)
}

func (s *IntakeService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func validateIntake(input IntakeInput) error {
	required := []struct {
		field string
		value string
	}{
		{"full_name", input.FullName},
		{"phone", input.Phone},
		{"email", input.Email},
		{"issue_address", input.IssueAddress},
		{"category_id", input.CategoryID},
		{"description", input.Description},
	}
	missing := []string{}
	for _, entry := range required {
		if strings.TrimSpace(entry.value) == "" {
			missing = append(missing, entry.field)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError(
			fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")),
			map[string]any{"fields": missing})
	}
	return nil
}
