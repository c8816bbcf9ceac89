package contact_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	appcontact "github.com/olekhymko/contacts-api/application/contact"
	"github.com/olekhymko/contacts-api/constant"
	contactmocks "github.com/olekhymko/contacts-api/mocks/repository/contact"
	txmocks "github.com/olekhymko/contacts-api/mocks/repository/tx"
	"github.com/olekhymko/contacts-api/model"
	contactrepo "github.com/olekhymko/contacts-api/repository/contact"
	cerr "github.com/olekhymko/contacts-api/utils/errors"
	"github.com/stretchr/testify/mock"
)

func strPtr(s string) *string { return &s }

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func assertErrCode(t *testing.T, err error, code constant.ErrorType) {
	t.Helper()
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[code] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[code])
	}
}

func TestContactApp_CreateContact(t *testing.T) {
	type fields struct {
		txRepo      *txmocks.TxRepository
		contactRepo *contactmocks.ContactRepository
	}
	type args struct {
		ctx    context.Context
		userID uint64
		req    *model.CreateContactRequest
	}
	tests := []struct {
		name     string
		fields   fields
		args     args
		mockCall func(f fields)
		want     *model.ContactResponse
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: create contact with birthday",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				contactRepo: contactmocks.NewContactRepository(t),
			},
			args: args{
				ctx:    context.Background(),
				userID: 1,
				req: &model.CreateContactRequest{
					Name:        "John",
					Surname:     "Doe",
					Email:       "john@example.com",
					PhoneNumber: "+380501234567",
					Birthday:    strPtr("2000-02-28"),
				},
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.contactRepo.On("GetByEmail", mock.Anything, uint64(1), "john@example.com").Return(nil, nil).Once()
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.contactRepo.On("CreateTx", mock.Anything, tx, mock.MatchedBy(func(c *model.ContactEntity) bool {
					return c.UserID == 1 && c.Email == "john@example.com" && c.Birthday != nil
				})).Return(&model.ContactEntity{
					ID:          10,
					UserID:      1,
					Name:        "John",
					Surname:     "Doe",
					Email:       "john@example.com",
					PhoneNumber: "+380501234567",
					Birthday:    datePtr(2000, time.February, 28),
				}, nil).Once()
			},
			want: &model.ContactResponse{
				ID:       10,
				Name:     "John",
				Email:    "john@example.com",
				Birthday: strPtr("2000-02-28"),
			},
			wantErr: false,
		},
		{
			name: "error: duplicate email caught by probe",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				contactRepo: contactmocks.NewContactRepository(t),
			},
			args: args{
				ctx:    context.Background(),
				userID: 1,
				req: &model.CreateContactRequest{
					Name:        "John",
					Surname:     "Doe",
					Email:       "john@example.com",
					PhoneNumber: "+380501234567",
				},
			},
			mockCall: func(f fields) {
				f.contactRepo.On("GetByEmail", mock.Anything, uint64(1), "john@example.com").
					Return(&model.ContactEntity{ID: 10, UserID: 1, Email: "john@example.com"}, nil).Once()
			},
			want:    nil,
			wantErr: true,
			errCode: constant.ErrContactExists,
		},
		{
			name: "error: duplicate key fires inside the transaction",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				contactRepo: contactmocks.NewContactRepository(t),
			},
			args: args{
				ctx:    context.Background(),
				userID: 1,
				req: &model.CreateContactRequest{
					Name:        "John",
					Surname:     "Doe",
					Email:       "john@example.com",
					PhoneNumber: "+380501234567",
				},
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.contactRepo.On("GetByEmail", mock.Anything, uint64(1), "john@example.com").Return(nil, nil).Once()
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.contactRepo.On("CreateTx", mock.Anything, tx, mock.Anything).
					Return(nil, contactrepo.ErrDuplicateEmail).Once()
			},
			want:    nil,
			wantErr: true,
			errCode: constant.ErrContactExists,
		},
		{
			name: "error: malformed birthday",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				contactRepo: contactmocks.NewContactRepository(t),
			},
			args: args{
				ctx:    context.Background(),
				userID: 1,
				req: &model.CreateContactRequest{
					Name:        "John",
					Surname:     "Doe",
					Email:       "john@example.com",
					PhoneNumber: "+380501234567",
					Birthday:    strPtr("28-02-2000"),
				},
			},
			mockCall: nil,
			want:     nil,
			wantErr:  true,
			errCode:  constant.ErrInvalidRequest,
		},
		{
			name: "error: BeginTx returns error",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				contactRepo: contactmocks.NewContactRepository(t),
			},
			args: args{
				ctx:    context.Background(),
				userID: 1,
				req: &model.CreateContactRequest{
					Name:        "John",
					Surname:     "Doe",
					Email:       "john@example.com",
					PhoneNumber: "+380501234567",
				},
			},
			mockCall: func(f fields) {
				f.contactRepo.On("GetByEmail", mock.Anything, uint64(1), "john@example.com").Return(nil, nil).Once()
				f.txRepo.On("BeginTx", mock.Anything).Return(nil, errors.New("tx error")).Once()
			},
			want:    nil,
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appcontact.NewContactApp(tt.fields.txRepo, tt.fields.contactRepo)

			got, err := app.CreateContact(tt.args.ctx, tt.args.userID, tt.args.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateContact() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}

			if got.ID != tt.want.ID || got.Name != tt.want.Name || got.Email != tt.want.Email {
				t.Fatalf("CreateContact() = %+v, want %+v", got, tt.want)
			}
			if got.Birthday == nil || *got.Birthday != *tt.want.Birthday {
				t.Fatalf("CreateContact() birthday = %v, want %v", got.Birthday, *tt.want.Birthday)
			}
		})
	}
}

func TestContactApp_GetContact(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		contactRepo := contactmocks.NewContactRepository(t)
		contactRepo.On("GetByID", mock.Anything, uint64(1), uint64(10)).
			Return(&model.ContactEntity{ID: 10, UserID: 1, Name: "John", Email: "john@example.com"}, nil).Once()

		app := appcontact.NewContactApp(txmocks.NewTxRepository(t), contactRepo)
		got, err := app.GetContact(context.Background(), 1, 10)
		if err != nil {
			t.Fatalf("GetContact() error = %v", err)
		}
		if got.ID != 10 || got.Name != "John" {
			t.Fatalf("GetContact() = %+v", got)
		}
	})

	t.Run("not found", func(t *testing.T) {
		contactRepo := contactmocks.NewContactRepository(t)
		contactRepo.On("GetByID", mock.Anything, uint64(2), uint64(10)).Return(nil, nil).Once()

		app := appcontact.NewContactApp(txmocks.NewTxRepository(t), contactRepo)
		_, err := app.GetContact(context.Background(), 2, 10)
		assertErrCode(t, err, constant.ErrNotFound)
	})
}

func TestContactApp_SearchContacts(t *testing.T) {
	type fields struct {
		contactRepo *contactmocks.ContactRepository
	}
	type args struct {
		userID uint64
		filter *model.ContactSearchFilter
	}
	tests := []struct {
		name     string
		fields   fields
		args     args
		mockCall func(f fields)
		wantIDs  []uint64
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:   "success: substring matches several contacts",
			fields: fields{contactRepo: contactmocks.NewContactRepository(t)},
			args: args{
				userID: 1,
				filter: &model.ContactSearchFilter{Name: strPtr("jo")},
			},
			mockCall: func(f fields) {
				f.contactRepo.On("Search", mock.Anything, uint64(1), mock.Anything).Return([]model.ContactEntity{
					{ID: 10, UserID: 1, Name: "John"},
					{ID: 11, UserID: 1, Name: "Joanna"},
				}, nil).Once()
			},
			wantIDs: []uint64{10, 11},
		},
		{
			name:   "success: contact matching two filters comes back twice",
			fields: fields{contactRepo: contactmocks.NewContactRepository(t)},
			args: args{
				userID: 1,
				filter: &model.ContactSearchFilter{Name: strPtr("john"), Email: strPtr("john")},
			},
			mockCall: func(f fields) {
				f.contactRepo.On("Search", mock.Anything, uint64(1), mock.Anything).Return([]model.ContactEntity{
					{ID: 10, UserID: 1, Name: "John", Email: "john@example.com"},
					{ID: 10, UserID: 1, Name: "John", Email: "john@example.com"},
				}, nil).Once()
			},
			wantIDs: []uint64{10, 10},
		},
		{
			name:   "error: no filters given",
			fields: fields{contactRepo: contactmocks.NewContactRepository(t)},
			args: args{
				userID: 1,
				filter: &model.ContactSearchFilter{},
			},
			mockCall: nil,
			wantErr:  true,
			errCode:  constant.ErrNoContactsFound,
		},
		{
			name:   "error: nothing matched",
			fields: fields{contactRepo: contactmocks.NewContactRepository(t)},
			args: args{
				userID: 1,
				filter: &model.ContactSearchFilter{Name: strPtr("zz")},
			},
			mockCall: func(f fields) {
				f.contactRepo.On("Search", mock.Anything, uint64(1), mock.Anything).Return([]model.ContactEntity{}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNoContactsFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appcontact.NewContactApp(txmocks.NewTxRepository(t), tt.fields.contactRepo)

			got, err := app.SearchContacts(context.Background(), tt.args.userID, tt.args.filter)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SearchContacts() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}

			if len(got) != len(tt.wantIDs) {
				t.Fatalf("SearchContacts() returned %d contacts, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Fatalf("SearchContacts()[%d].ID = %d, want %d", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestContactApp_UpdateContact(t *testing.T) {
	t.Run("success: single field update", func(t *testing.T) {
		contactRepo := contactmocks.NewContactRepository(t)
		contactRepo.On("UpdateGeneral", mock.Anything, uint64(1), uint64(10), mock.MatchedBy(func(u *model.ContactUpdate) bool {
			return u.Name != nil && *u.Name == "Johnny" && u.Surname == nil && u.Email == nil
		})).Return(&model.ContactEntity{ID: 10, UserID: 1, Name: "Johnny", Surname: "Doe", Email: "john@example.com"}, nil).Once()

		app := appcontact.NewContactApp(txmocks.NewTxRepository(t), contactRepo)
		got, err := app.UpdateContact(context.Background(), 1, 10, &model.UpdateContactRequest{Name: strPtr("Johnny")})
		if err != nil {
			t.Fatalf("UpdateContact() error = %v", err)
		}
		if got.Name != "Johnny" || got.Surname != "Doe" {
			t.Fatalf("UpdateContact() = %+v", got)
		}
	})

	t.Run("error: contact not found", func(t *testing.T) {
		contactRepo := contactmocks.NewContactRepository(t)
		contactRepo.On("UpdateGeneral", mock.Anything, uint64(1), uint64(99), mock.Anything).Return(nil, nil).Once()

		app := appcontact.NewContactApp(txmocks.NewTxRepository(t), contactRepo)
		_, err := app.UpdateContact(context.Background(), 1, 99, &model.UpdateContactRequest{Name: strPtr("Johnny")})
		assertErrCode(t, err, constant.ErrNotFound)
	})

	t.Run("error: new email collides with another contact", func(t *testing.T) {
		contactRepo := contactmocks.NewContactRepository(t)
		contactRepo.On("UpdateGeneral", mock.Anything, uint64(1), uint64(10), mock.Anything).
			Return(nil, contactrepo.ErrDuplicateEmail).Once()

		app := appcontact.NewContactApp(txmocks.NewTxRepository(t), contactRepo)
		_, err := app.UpdateContact(context.Background(), 1, 10, &model.UpdateContactRequest{Email: strPtr("taken@example.com")})
		assertErrCode(t, err, constant.ErrContactExists)
	})
}

func TestContactApp_UpdateContactBirthday(t *testing.T) {
	t.Run("success: Feb 29 lands on Feb 28 in a non-leap year", func(t *testing.T) {
		contactRepo := contactmocks.NewContactRepository(t)
		contactRepo.On("UpdateBirthday", mock.Anything, uint64(1), uint64(10), 2023, 2, 29).
			Return(&model.ContactEntity{ID: 10, UserID: 1, Name: "John", Birthday: datePtr(2023, time.February, 28)}, nil).Once()

		app := appcontact.NewContactApp(txmocks.NewTxRepository(t), contactRepo)
		got, err := app.UpdateContactBirthday(context.Background(), 1, 10, &model.UpdateBirthdayRequest{Day: 29, Month: 2, Year: 2023})
		if err != nil {
			t.Fatalf("UpdateContactBirthday() error = %v", err)
		}
		if got.Birthday == nil || *got.Birthday != "2023-02-28" {
			t.Fatalf("UpdateContactBirthday() birthday = %v, want 2023-02-28", got.Birthday)
		}
	})

	t.Run("error: impossible date", func(t *testing.T) {
		contactRepo := contactmocks.NewContactRepository(t)
		contactRepo.On("UpdateBirthday", mock.Anything, uint64(1), uint64(10), 2023, 4, 31).
			Return(nil, contactrepo.ErrInvalidDate).Once()

		app := appcontact.NewContactApp(txmocks.NewTxRepository(t), contactRepo)
		_, err := app.UpdateContactBirthday(context.Background(), 1, 10, &model.UpdateBirthdayRequest{Day: 31, Month: 4, Year: 2023})
		assertErrCode(t, err, constant.ErrInvalidDate)
	})

	t.Run("error: contact not found or has no birthday", func(t *testing.T) {
		contactRepo := contactmocks.NewContactRepository(t)
		contactRepo.On("UpdateBirthday", mock.Anything, uint64(1), uint64(99), 2023, 5, 20).Return(nil, nil).Once()

		app := appcontact.NewContactApp(txmocks.NewTxRepository(t), contactRepo)
		_, err := app.UpdateContactBirthday(context.Background(), 1, 99, &model.UpdateBirthdayRequest{Day: 20, Month: 5, Year: 2023})
		assertErrCode(t, err, constant.ErrNotFound)
	})
}

func TestContactApp_RemoveContact(t *testing.T) {
	t.Run("success: deleted record is returned", func(t *testing.T) {
		contactRepo := contactmocks.NewContactRepository(t)
		contactRepo.On("Remove", mock.Anything, uint64(1), uint64(10)).
			Return(&model.ContactEntity{ID: 10, UserID: 1, Name: "John", Email: "john@example.com"}, nil).Once()

		app := appcontact.NewContactApp(txmocks.NewTxRepository(t), contactRepo)
		got, err := app.RemoveContact(context.Background(), 1, 10)
		if err != nil {
			t.Fatalf("RemoveContact() error = %v", err)
		}
		if got.ID != 10 || got.Email != "john@example.com" {
			t.Fatalf("RemoveContact() = %+v", got)
		}
	})

	t.Run("error: removing twice", func(t *testing.T) {
		contactRepo := contactmocks.NewContactRepository(t)
		contactRepo.On("Remove", mock.Anything, uint64(1), uint64(10)).Return(nil, nil).Once()

		app := appcontact.NewContactApp(txmocks.NewTxRepository(t), contactRepo)
		_, err := app.RemoveContact(context.Background(), 1, 10)
		assertErrCode(t, err, constant.ErrNotFound)
	})
}

func TestContactApp_UpcomingBirthdays(t *testing.T) {
	// Pin "today" so the window is deterministic
	today := func() time.Time { return time.Date(2024, time.June, 1, 15, 30, 0, 0, time.UTC) }

	type args struct {
		days int
	}
	tests := []struct {
		name     string
		now      func() time.Time
		args     args
		contacts []model.ContactEntity
		wantIDs  []uint64
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: keeps birthdays inside the window",
			now:  today,
			args: args{days: 7},
			contacts: []model.ContactEntity{
				{ID: 10, UserID: 1, Name: "John", Birthday: datePtr(1990, time.June, 5)},
				{ID: 11, UserID: 1, Name: "Joanna", Birthday: datePtr(1985, time.June, 10)},
			},
			wantIDs: []uint64{10},
		},
		{
			name: "success: today and the last day are both inside",
			now:  today,
			args: args{days: 7},
			contacts: []model.ContactEntity{
				{ID: 10, UserID: 1, Name: "John", Birthday: datePtr(1990, time.June, 1)},
				{ID: 11, UserID: 1, Name: "Joanna", Birthday: datePtr(1985, time.June, 8)},
			},
			wantIDs: []uint64{10, 11},
		},
		{
			name: "success: birthdays earlier this year are skipped",
			now:  today,
			args: args{days: 7},
			contacts: []model.ContactEntity{
				{ID: 10, UserID: 1, Name: "John", Birthday: datePtr(1990, time.May, 20)},
			},
			wantIDs: []uint64{},
		},
		{
			name: "success: window does not wrap past December 31",
			now:  func() time.Time { return time.Date(2023, time.December, 28, 9, 0, 0, 0, time.UTC) },
			args: args{days: 7},
			contacts: []model.ContactEntity{
				{ID: 10, UserID: 1, Name: "John", Birthday: datePtr(1990, time.January, 2)},
				{ID: 11, UserID: 1, Name: "Joanna", Birthday: datePtr(1985, time.December, 30)},
			},
			wantIDs: []uint64{11},
		},
		{
			name:    "error: negative window",
			now:     today,
			args:    args{days: -1},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			contactRepo := contactmocks.NewContactRepository(t)
			if !tt.wantErr {
				contactRepo.On("ListWithBirthdays", mock.Anything, uint64(1)).Return(tt.contacts, nil).Once()
			}

			app := appcontact.NewContactAppWithClock(txmocks.NewTxRepository(t), contactRepo, tt.now)

			got, err := app.UpcomingBirthdays(context.Background(), 1, tt.args.days)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UpcomingBirthdays() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}

			if len(got) != len(tt.wantIDs) {
				t.Fatalf("UpcomingBirthdays() returned %d contacts, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Fatalf("UpcomingBirthdays()[%d].ID = %d, want %d", i, got[i].ID, id)
				}
			}
		})
	}
}
