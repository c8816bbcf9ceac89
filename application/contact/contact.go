package contact

import (
	"context"
	"errors"
	"time"

	"github.com/olekhymko/contacts-api/constant"
	"github.com/olekhymko/contacts-api/model"
	contactrepo "github.com/olekhymko/contacts-api/repository/contact"
	txrepo "github.com/olekhymko/contacts-api/repository/tx"
	cerr "github.com/olekhymko/contacts-api/utils/errors"
	"github.com/olekhymko/contacts-api/utils/logger"
	"go.uber.org/zap"
)

const defaultListLimit = 100

type ContactApp interface {
	ListContacts(ctx context.Context, userID uint64, skip, limit int) ([]*model.ContactResponse, error)
	GetContact(ctx context.Context, userID, contactID uint64) (*model.ContactResponse, error)
	SearchContacts(ctx context.Context, userID uint64, filter *model.ContactSearchFilter) ([]*model.ContactResponse, error)
	CreateContact(ctx context.Context, userID uint64, req *model.CreateContactRequest) (*model.ContactResponse, error)
	UpdateContact(ctx context.Context, userID, contactID uint64, req *model.UpdateContactRequest) (*model.ContactResponse, error)
	UpdateContactBirthday(ctx context.Context, userID, contactID uint64, req *model.UpdateBirthdayRequest) (*model.ContactResponse, error)
	RemoveContact(ctx context.Context, userID, contactID uint64) (*model.ContactResponse, error)
	UpcomingBirthdays(ctx context.Context, userID uint64, days int) ([]*model.ContactResponse, error)
}

type contactAppImpl struct {
	txRepo      txrepo.TxRepository
	contactRepo contactrepo.ContactRepository
	now         func() time.Time
}

func NewContactApp(txRepo txrepo.TxRepository, contactRepo contactrepo.ContactRepository) ContactApp {
	return &contactAppImpl{txRepo: txRepo, contactRepo: contactRepo, now: time.Now}
}

// NewContactAppWithClock pins "today" for the upcoming-birthday window.
func NewContactAppWithClock(txRepo txrepo.TxRepository, contactRepo contactrepo.ContactRepository, now func() time.Time) ContactApp {
	return &contactAppImpl{txRepo: txRepo, contactRepo: contactRepo, now: now}
}

func (s *contactAppImpl) ListContacts(ctx context.Context, userID uint64, skip, limit int) ([]*model.ContactResponse, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	contacts, err := s.contactRepo.List(ctx, userID, skip, limit)
	if err != nil {
		logger.Error("[ListContacts] err contactRepo.List", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	return model.ToContactResponses(contacts), nil
}

func (s *contactAppImpl) GetContact(ctx context.Context, userID, contactID uint64) (*model.ContactResponse, error) {
	contact, err := s.contactRepo.GetByID(ctx, userID, contactID)
	if err != nil {
		logger.Error("[GetContact] err contactRepo.GetByID", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if contact == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}
	return model.ToContactResponse(contact), nil
}

// SearchContacts keeps the union semantics of the repository: a contact
// matching several terms is returned once per match. Both an empty result
// and a filter-less call surface the "no contacts found" signal.
func (s *contactAppImpl) SearchContacts(ctx context.Context, userID uint64, filter *model.ContactSearchFilter) ([]*model.ContactResponse, error) {
	if !filter.HasFilters() {
		return nil, cerr.SetCustomError(constant.ErrNoContactsFound)
	}

	contacts, err := s.contactRepo.Search(ctx, userID, filter)
	if err != nil {
		logger.Error("[SearchContacts] err contactRepo.Search", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if len(contacts) == 0 {
		return nil, cerr.SetCustomError(constant.ErrNoContactsFound)
	}
	return model.ToContactResponses(contacts), nil
}

func (s *contactAppImpl) CreateContact(ctx context.Context, userID uint64, req *model.CreateContactRequest) (*model.ContactResponse, error) {
	birthday, err := parseBirthday(req.Birthday)
	if err != nil {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	existing, err := s.contactRepo.GetByEmail(ctx, userID, req.Email)
	if err != nil {
		logger.Error("[CreateContact] err contactRepo.GetByEmail", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if existing != nil {
		return nil, cerr.SetCustomError(constant.ErrContactExists)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CreateContact] begin tx", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	entity := &model.ContactEntity{
		UserID:      userID,
		Name:        req.Name,
		Surname:     req.Surname,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Birthday:    birthday,
		ExtraInfo:   req.ExtraInfo,
	}

	entity, err = s.contactRepo.CreateTx(ctx, tx, entity)
	if err != nil {
		// The unique key fires when two identical creates race past the probe
		if errors.Is(err, contactrepo.ErrDuplicateEmail) {
			return nil, cerr.SetCustomError(constant.ErrContactExists)
		}
		logger.Error("[CreateContact] err contactRepo.CreateTx", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CreateContact] commit tx", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	committed = true

	return model.ToContactResponse(entity), nil
}

func (s *contactAppImpl) UpdateContact(ctx context.Context, userID, contactID uint64, req *model.UpdateContactRequest) (*model.ContactResponse, error) {
	birthday, err := parseBirthday(req.Birthday)
	if err != nil {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	update := &model.ContactUpdate{
		Name:        req.Name,
		Surname:     req.Surname,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Birthday:    birthday,
		ExtraInfo:   req.ExtraInfo,
	}

	contact, err := s.contactRepo.UpdateGeneral(ctx, userID, contactID, update)
	if err != nil {
		if errors.Is(err, contactrepo.ErrDuplicateEmail) {
			return nil, cerr.SetCustomError(constant.ErrContactExists)
		}
		logger.Error("[UpdateContact] err contactRepo.UpdateGeneral", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if contact == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}
	return model.ToContactResponse(contact), nil
}

func (s *contactAppImpl) UpdateContactBirthday(ctx context.Context, userID, contactID uint64, req *model.UpdateBirthdayRequest) (*model.ContactResponse, error) {
	contact, err := s.contactRepo.UpdateBirthday(ctx, userID, contactID, req.Year, req.Month, req.Day)
	if err != nil {
		if errors.Is(err, contactrepo.ErrInvalidDate) {
			return nil, cerr.SetCustomError(constant.ErrInvalidDate)
		}
		logger.Error("[UpdateContactBirthday] err contactRepo.UpdateBirthday", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if contact == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}
	return model.ToContactResponse(contact), nil
}

func (s *contactAppImpl) RemoveContact(ctx context.Context, userID, contactID uint64) (*model.ContactResponse, error) {
	contact, err := s.contactRepo.Remove(ctx, userID, contactID)
	if err != nil {
		logger.Error("[RemoveContact] err contactRepo.Remove", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if contact == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}
	return model.ToContactResponse(contact), nil
}

// UpcomingBirthdays projects each stored birthday onto the current year and
// keeps those falling inside [today, today+days]. The window does not wrap
// past December 31: a late-December query will not see a January birthday.
func (s *contactAppImpl) UpcomingBirthdays(ctx context.Context, userID uint64, days int) ([]*model.ContactResponse, error) {
	if days < 0 {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	contacts, err := s.contactRepo.ListWithBirthdays(ctx, userID)
	if err != nil {
		logger.Error("[UpcomingBirthdays] err contactRepo.ListWithBirthdays", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	window := time.Duration(days) * 24 * time.Hour

	upcoming := make([]model.ContactEntity, 0)
	for _, c := range contacts {
		if c.Birthday == nil {
			continue
		}
		projected := time.Date(today.Year(), c.Birthday.Month(), c.Birthday.Day(), 0, 0, 0, 0, time.UTC)
		diff := projected.Sub(today)
		if diff >= 0 && diff <= window {
			upcoming = append(upcoming, c)
		}
	}

	return model.ToContactResponses(upcoming), nil
}

func parseBirthday(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := time.Parse(model.DateLayout, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
