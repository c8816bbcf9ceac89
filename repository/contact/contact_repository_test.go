package contact

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/olekhymko/contacts-api/model"
)

var contactColumns = []string{"id", "user_id", "name", "surname", "email", "phone_number", "birthday", "extra_info", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (ContactRepository, sqlmock.Sqlmock, *sqlx.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	sqlxDB := sqlx.NewDb(db, "mysql")
	return NewContactRepository(sqlxDB), mock, sqlxDB
}

func contactRow(id, userID uint64, name, surname, email string, birthday *time.Time) *sqlmock.Rows {
	var b driver.Value
	if birthday != nil {
		b = *birthday
	}
	return sqlmock.NewRows(contactColumns).
		AddRow(id, userID, name, surname, email, "+380501234567", b, "", time.Now(), nil)
}

const getByIDPattern = `(?s)^SELECT .+ FROM contact WHERE true AND id = \? AND user_id = \?$`

func TestGetByID_OwnedContact(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getByIDPattern).
		WithArgs(uint64(10), uint64(1)).
		WillReturnRows(contactRow(10, 1, "John", "Doe", "john@example.com", nil))

	got, err := repo.GetByID(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got == nil || got.ID != 10 || got.UserID != 1 || got.Name != "John" {
		t.Fatalf("unexpected contact: %+v", got)
	}
}

func TestGetByID_ForeignOwnerIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	// The row exists for owner 1; owner 2 must get an empty result, not an error
	mock.ExpectQuery(getByIDPattern).
		WithArgs(uint64(10), uint64(2)).
		WillReturnRows(sqlmock.NewRows(contactColumns))

	got, err := repo.GetByID(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for foreign-owned contact, got %+v", got)
	}
}

func TestList_PassesSkipAndLimit(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT .+ FROM contact WHERE true AND user_id = \? LIMIT \? OFFSET \?$`).
		WithArgs(uint64(1), 5, 20).
		WillReturnRows(contactRow(21, 1, "John", "Doe", "john@example.com", nil))

	got, err := repo.List(context.Background(), 1, 20, 5)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 1 || got[0].ID != 21 {
		t.Fatalf("unexpected contacts: %+v", got)
	}
}

func TestSearch_UnionKeepsDuplicates(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	name := "jo"
	email := "jo"

	// One query per term; contact 10 matches both and must appear twice
	mock.ExpectQuery(`(?s)^SELECT .+ AND user_id = \? AND LOWER\(name\) LIKE \?$`).
		WithArgs(uint64(1), "%jo%").
		WillReturnRows(contactRow(10, 1, "John", "Doe", "john@example.com", nil))
	mock.ExpectQuery(`(?s)^SELECT .+ AND user_id = \? AND LOWER\(email\) LIKE \?$`).
		WithArgs(uint64(1), "%jo%").
		WillReturnRows(contactRow(10, 1, "John", "Doe", "john@example.com", nil))

	got, err := repo.Search(context.Background(), 1, &model.ContactSearchFilter{Name: &name, Email: &email})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(got) != 2 || got[0].ID != 10 || got[1].ID != 10 {
		t.Fatalf("expected duplicate-inclusive union, got %+v", got)
	}
}

func TestSearch_NoFiltersReturnsEmpty(t *testing.T) {
	repo, _, db := newRepoWithMock(t)
	defer db.Close()

	got, err := repo.Search(context.Background(), 1, &model.ContactSearchFilter{})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestCreateTx_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`(?s)^INSERT INTO contact .+ VALUES \(\?, \?, \?, \?, \?, \?, \?, NOW\(\)\)$`).
		WithArgs(uint64(1), "John", "Doe", "john@example.com", "+380501234567", nil, "").
		WillReturnResult(sqlmock.NewResult(42, 1))

	tx, err := db.Beginx()
	if err != nil {
		t.Fatalf("Beginx error: %v", err)
	}

	got, err := repo.CreateTx(context.Background(), tx, &model.ContactEntity{
		UserID:      1,
		Name:        "John",
		Surname:     "Doe",
		Email:       "john@example.com",
		PhoneNumber: "+380501234567",
	})
	if err != nil {
		t.Fatalf("CreateTx error: %v", err)
	}
	if got.ID != 42 {
		t.Fatalf("expected id 42, got %d", got.ID)
	}
}

func TestCreateTx_DuplicateKeyMapsToErrDuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`(?s)^INSERT INTO contact`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	tx, err := db.Beginx()
	if err != nil {
		t.Fatalf("Beginx error: %v", err)
	}

	_, err = repo.CreateTx(context.Background(), tx, &model.ContactEntity{
		UserID: 1,
		Email:  "john@example.com",
	})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUpdateGeneral_SingleFieldTouchesOnlyThatColumn(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getByIDPattern).
		WithArgs(uint64(10), uint64(1)).
		WillReturnRows(contactRow(10, 1, "John", "Doe", "john@example.com", nil))

	mock.ExpectExec(`(?s)^UPDATE contact SET name = \?, updated_at = NOW\(\) WHERE id = \? AND user_id = \?$`).
		WithArgs("Johnny", uint64(10), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(getByIDPattern).
		WithArgs(uint64(10), uint64(1)).
		WillReturnRows(contactRow(10, 1, "Johnny", "Doe", "john@example.com", nil))

	name := "Johnny"
	got, err := repo.UpdateGeneral(context.Background(), 1, 10, &model.ContactUpdate{Name: &name})
	if err != nil {
		t.Fatalf("UpdateGeneral error: %v", err)
	}
	if got.Name != "Johnny" || got.Surname != "Doe" || got.Email != "john@example.com" {
		t.Fatalf("unexpected contact after update: %+v", got)
	}
}

func TestUpdateGeneral_NoFieldsIsReadOnly(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getByIDPattern).
		WithArgs(uint64(10), uint64(1)).
		WillReturnRows(contactRow(10, 1, "John", "Doe", "john@example.com", nil))

	got, err := repo.UpdateGeneral(context.Background(), 1, 10, &model.ContactUpdate{})
	if err != nil {
		t.Fatalf("UpdateGeneral error: %v", err)
	}
	if got == nil || got.Name != "John" {
		t.Fatalf("unexpected contact: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected statements executed: %v", err)
	}
}

func TestUpdateGeneral_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getByIDPattern).
		WithArgs(uint64(99), uint64(1)).
		WillReturnRows(sqlmock.NewRows(contactColumns))

	name := "Johnny"
	got, err := repo.UpdateGeneral(context.Background(), 1, 99, &model.ContactUpdate{Name: &name})
	if err != nil {
		t.Fatalf("UpdateGeneral error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing contact, got %+v", got)
	}
}

func TestUpdateBirthday_Feb29ClampsTo28(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	stored := time.Date(2000, time.February, 28, 0, 0, 0, 0, time.UTC)
	clamped := time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(getByIDPattern).
		WithArgs(uint64(10), uint64(1)).
		WillReturnRows(contactRow(10, 1, "John", "Doe", "john@example.com", &stored))

	mock.ExpectExec(`(?s)^UPDATE contact SET birthday = \?, updated_at = NOW\(\) WHERE id = \? AND user_id = \?$`).
		WithArgs(clamped, uint64(10), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(getByIDPattern).
		WithArgs(uint64(10), uint64(1)).
		WillReturnRows(contactRow(10, 1, "John", "Doe", "john@example.com", &clamped))

	// 2023 is not a leap year; Feb 29 must land on Feb 28
	got, err := repo.UpdateBirthday(context.Background(), 1, 10, 2023, 2, 29)
	if err != nil {
		t.Fatalf("UpdateBirthday error: %v", err)
	}
	if got.Birthday == nil || !got.Birthday.Equal(clamped) {
		t.Fatalf("expected clamped birthday %v, got %+v", clamped, got.Birthday)
	}
}

func TestUpdateBirthday_InvalidDateOutsideClamp(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	stored := time.Date(2000, time.February, 28, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(getByIDPattern).
		WithArgs(uint64(10), uint64(1)).
		WillReturnRows(contactRow(10, 1, "John", "Doe", "john@example.com", &stored))

	_, err := repo.UpdateBirthday(context.Background(), 1, 10, 2023, 4, 31)
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("update must not run on invalid date: %v", err)
	}
}

func TestUpdateBirthday_NoBirthdayIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getByIDPattern).
		WithArgs(uint64(10), uint64(1)).
		WillReturnRows(contactRow(10, 1, "John", "Doe", "john@example.com", nil))

	got, err := repo.UpdateBirthday(context.Background(), 1, 10, 2023, 5, 20)
	if err != nil {
		t.Fatalf("UpdateBirthday error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for contact without birthday, got %+v", got)
	}
}

func TestRemove_ReturnsDeletedRecord(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getByIDPattern).
		WithArgs(uint64(10), uint64(1)).
		WillReturnRows(contactRow(10, 1, "John", "Doe", "john@example.com", nil))

	mock.ExpectExec(`(?s)^DELETE FROM contact WHERE id = \? AND user_id = \?$`).
		WithArgs(uint64(10), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Remove(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if got == nil || got.ID != 10 {
		t.Fatalf("expected deleted record back, got %+v", got)
	}
}

func TestRemove_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getByIDPattern).
		WithArgs(uint64(99), uint64(1)).
		WillReturnRows(sqlmock.NewRows(contactColumns))

	got, err := repo.Remove(context.Background(), 1, 99)
	if err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("delete must not run for missing contact: %v", err)
	}
}

func TestListWithBirthdays_FiltersNullBirthdays(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	b := time.Date(1990, time.June, 5, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`(?s)^SELECT .+ AND user_id = \? AND birthday IS NOT NULL$`).
		WithArgs(uint64(1)).
		WillReturnRows(contactRow(10, 1, "John", "Doe", "john@example.com", &b))

	got, err := repo.ListWithBirthdays(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListWithBirthdays error: %v", err)
	}
	if len(got) != 1 || got[0].Birthday == nil {
		t.Fatalf("unexpected contacts: %+v", got)
	}
}
