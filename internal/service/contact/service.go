package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/callguard/internal/domain"
	"github.com/seu-repo/callguard/internal/observability/telemetry"
	"github.com/seu-repo/callguard/internal/ports"
)

// Service owns the contact book. Every mutation drops the whole search
// result cache before returning, since cached name and phone lookups embed
// contact-derived names.
type Service struct {
	contacts ports.ContactRepository
	cache    ports.Cache
	log      *zap.Logger
}

func NewService(contacts ports.ContactRepository, cache ports.Cache, log *zap.Logger) ports.ContactService {
	return &Service{contacts: contacts, cache: cache, log: log}
}

func (s *Service) Create(ctx context.Context, ownerID string, contact *domain.Contact) error {
	if err := validate(contact); err != nil {
		return err
	}

	normalized := domain.NormalizePhone(contact.PhoneNumber)
	exists, err := s.contacts.Exists(ctx, ownerID, normalized)
	if err != nil {
		return fmt.Errorf("%w: checking contact uniqueness: %v", domain.ErrDataUnavailable, err)
	}
	if exists {
		return fmt.Errorf("%w: number already saved in this contact list", domain.ErrInvalidInput)
	}

	contact.ID = uuid.New().String()
	contact.UserID = ownerID
	contact.PhoneNumber = normalized
	contact.CreatedAt = time.Now().UTC()
	contact.UpdatedAt = contact.CreatedAt

	if err := s.contacts.Save(ctx, contact); err != nil {
		return fmt.Errorf("%w: saving contact: %v", domain.ErrDataUnavailable, err)
	}

	s.invalidateSearchResults(ctx)
	return nil
}

func (s *Service) Update(ctx context.Context, ownerID string, contact *domain.Contact) error {
	if contact.ID == "" {
		return fmt.Errorf("%w: contact id is required", domain.ErrInvalidInput)
	}
	if err := validate(contact); err != nil {
		return err
	}

	existing, err := s.owned(ctx, ownerID, contact.ID)
	if err != nil {
		return err
	}

	normalized := domain.NormalizePhone(contact.PhoneNumber)
	if normalized != existing.PhoneNumber {
		taken, err := s.contacts.Exists(ctx, ownerID, normalized)
		if err != nil {
			return fmt.Errorf("%w: checking contact uniqueness: %v", domain.ErrDataUnavailable, err)
		}
		if taken {
			return fmt.Errorf("%w: number already saved in this contact list", domain.ErrInvalidInput)
		}
	}

	existing.Name = contact.Name
	existing.PhoneNumber = normalized
	existing.Email = contact.Email
	existing.Notes = contact.Notes
	existing.Tags = contact.Tags
	existing.UpdatedAt = time.Now().UTC()

	if err := s.contacts.Save(ctx, existing); err != nil {
		return fmt.Errorf("%w: saving contact: %v", domain.ErrDataUnavailable, err)
	}
	*contact = *existing

	s.invalidateSearchResults(ctx)
	return nil
}

func (s *Service) Delete(ctx context.Context, ownerID, contactID string) error {
	if _, err := s.owned(ctx, ownerID, contactID); err != nil {
		return err
	}
	if err := s.contacts.Delete(ctx, contactID); err != nil {
		return fmt.Errorf("%w: deleting contact: %v", domain.ErrDataUnavailable, err)
	}

	s.invalidateSearchResults(ctx)
	return nil
}

func (s *Service) Get(ctx context.Context, ownerID, contactID string) (*domain.Contact, error) {
	return s.owned(ctx, ownerID, contactID)
}

func (s *Service) List(ctx context.Context, ownerID string, filter ports.ContactFilter) ([]domain.Contact, error) {
	contacts, err := s.contacts.ListByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: listing contacts: %v", domain.ErrDataUnavailable, err)
	}
	return contacts, nil
}

// owned fetches a contact and enforces ownership. A contact owned by someone
// else is indistinguishable from a missing one.
func (s *Service) owned(ctx context.Context, ownerID, contactID string) (*domain.Contact, error) {
	contact, err := s.contacts.FindByID(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading contact: %v", domain.ErrDataUnavailable, err)
	}
	if contact == nil || contact.UserID != ownerID {
		return nil, domain.ErrNotFound
	}
	return contact, nil
}

func (s *Service) invalidateSearchResults(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, "search_results_*"); err != nil {
		s.log.Warn("Failed to invalidate search result cache", zap.Error(err))
		return
	}
	telemetry.CacheInvalidationsTotal.WithLabelValues("search").Inc()
}

func validate(contact *domain.Contact) error {
	if contact == nil {
		return fmt.Errorf("%w: contact payload is required", domain.ErrInvalidInput)
	}
	if contact.Name == "" {
		return fmt.Errorf("%w: contact name is required", domain.ErrInvalidInput)
	}
	if !domain.ValidPhone(contact.PhoneNumber) {
		return fmt.Errorf("%w: invalid phone number", domain.ErrInvalidInput)
	}
	return nil
}
