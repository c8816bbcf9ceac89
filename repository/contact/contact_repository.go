package contact

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/olekhymko/contacts-api/model"
)

var (
	// ErrDuplicateEmail is returned when a contact with the same email
	// already exists for the owner (unique key on user_id + email).
	ErrDuplicateEmail = errors.New("contact with this email already exists")

	// ErrInvalidDate is returned when a birthday update produces a
	// calendar-invalid date outside the Feb-29 clamp.
	ErrInvalidDate = errors.New("invalid birthday date")
)

const mysqlDuplicateEntry = 1062

type SQL struct {
	conn *sqlx.DB
}

// ContactRepository owns all contact query and mutation logic. Every
// operation is owner-scoped: rows belonging to another user behave as absent.
type ContactRepository interface {
	List(ctx context.Context, ownerID uint64, skip, limit int) ([]model.ContactEntity, error)
	GetByID(ctx context.Context, ownerID, contactID uint64) (*model.ContactEntity, error)
	GetByEmail(ctx context.Context, ownerID uint64, email string) (*model.ContactEntity, error)
	Search(ctx context.Context, ownerID uint64, filter *model.ContactSearchFilter) ([]model.ContactEntity, error)
	CreateTx(ctx context.Context, tx *sqlx.Tx, data *model.ContactEntity) (*model.ContactEntity, error)
	UpdateGeneral(ctx context.Context, ownerID, contactID uint64, update *model.ContactUpdate) (*model.ContactEntity, error)
	UpdateBirthday(ctx context.Context, ownerID, contactID uint64, year, month, day int) (*model.ContactEntity, error)
	Remove(ctx context.Context, ownerID, contactID uint64) (*model.ContactEntity, error)
	ListWithBirthdays(ctx context.Context, ownerID uint64) ([]model.ContactEntity, error)
}

func NewContactRepository(conn *sqlx.DB) ContactRepository {
	return &SQL{conn: conn}
}

const (
	getContactBase = `SELECT id, user_id, name, surname, email, phone_number, birthday, extra_info, created_at, updated_at FROM contact WHERE true`

	insertContactQuery = `INSERT INTO contact (user_id, name, surname, email, phone_number, birthday, extra_info, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, NOW())`

	updateBirthdayQuery = `UPDATE contact SET birthday = ?, updated_at = NOW() WHERE id = ? AND user_id = ?`

	deleteContactQuery = `DELETE FROM contact WHERE id = ? AND user_id = ?`
)

func (s *SQL) List(ctx context.Context, ownerID uint64, skip, limit int) ([]model.ContactEntity, error) {
	query := getContactBase + " AND user_id = ? LIMIT ? OFFSET ?"
	return s.queryContacts(ctx, query, ownerID, limit, skip)
}

func (s *SQL) GetByID(ctx context.Context, ownerID, contactID uint64) (*model.ContactEntity, error) {
	query := getContactBase + " AND id = ? AND user_id = ?"

	var entity model.ContactEntity
	if err := s.conn.QueryRowxContext(ctx, query, contactID, ownerID).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) GetByEmail(ctx context.Context, ownerID uint64, email string) (*model.ContactEntity, error) {
	query := getContactBase + " AND user_id = ? AND email = ?"

	var entity model.ContactEntity
	if err := s.conn.QueryRowxContext(ctx, query, ownerID, email).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// Search runs one query per supplied term and appends the results in order:
// name matches first, then surname, then email. A contact matching two terms
// appears twice. Callers depend on this union shape; do not deduplicate.
func (s *SQL) Search(ctx context.Context, ownerID uint64, filter *model.ContactSearchFilter) ([]model.ContactEntity, error) {
	results := make([]model.ContactEntity, 0)
	if filter == nil {
		return results, nil
	}

	type term struct {
		column string
		value  *string
	}
	terms := []term{
		{column: "name", value: filter.Name},
		{column: "surname", value: filter.Surname},
		{column: "email", value: filter.Email},
	}

	for _, t := range terms {
		if t.value == nil {
			continue
		}
		query := getContactBase + " AND user_id = ? AND LOWER(" + t.column + ") LIKE ?"
		pattern := "%" + strings.ToLower(*t.value) + "%"

		matches, err := s.queryContacts(ctx, query, ownerID, pattern)
		if err != nil {
			return nil, err
		}
		results = append(results, matches...)
	}

	return results, nil
}

func (s *SQL) CreateTx(ctx context.Context, tx *sqlx.Tx, data *model.ContactEntity) (*model.ContactEntity, error) {
	result, err := tx.ExecContext(ctx, insertContactQuery,
		data.UserID, data.Name, data.Surname, data.Email, data.PhoneNumber, data.Birthday, data.ExtraInfo)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	data.ID = uint64(lastID)
	data.CreatedAt = time.Now()
	return data, nil
}

func (s *SQL) UpdateGeneral(ctx context.Context, ownerID, contactID uint64, update *model.ContactUpdate) (*model.ContactEntity, error) {
	contact, err := s.GetByID(ctx, ownerID, contactID)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, nil
	}

	setClauses := make([]string, 0, 6)
	args := make([]any, 0, 8)

	if update.Name != nil {
		setClauses = append(setClauses, "name = ?")
		args = append(args, *update.Name)
	}
	if update.Surname != nil {
		setClauses = append(setClauses, "surname = ?")
		args = append(args, *update.Surname)
	}
	if update.Email != nil {
		setClauses = append(setClauses, "email = ?")
		args = append(args, *update.Email)
	}
	if update.PhoneNumber != nil {
		setClauses = append(setClauses, "phone_number = ?")
		args = append(args, *update.PhoneNumber)
	}
	if update.Birthday != nil {
		setClauses = append(setClauses, "birthday = ?")
		args = append(args, *update.Birthday)
	}
	if update.ExtraInfo != nil {
		setClauses = append(setClauses, "extra_info = ?")
		args = append(args, *update.ExtraInfo)
	}

	if len(setClauses) == 0 {
		return contact, nil
	}

	query := "UPDATE contact SET " + strings.Join(setClauses, ", ") + ", updated_at = NOW() WHERE id = ? AND user_id = ?"
	args = append(args, contactID, ownerID)

	if _, err := s.conn.ExecContext(ctx, query, args...); err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return s.GetByID(ctx, ownerID, contactID)
}

// UpdateBirthday replaces only the year, month and day of the stored
// birthday. Feb 29 on a non-leap year clamps to Feb 28; any other invalid
// combination fails with ErrInvalidDate. A contact without a birthday is
// treated as not found, matching the general absence contract.
func (s *SQL) UpdateBirthday(ctx context.Context, ownerID, contactID uint64, year, month, day int) (*model.ContactEntity, error) {
	contact, err := s.GetByID(ctx, ownerID, contactID)
	if err != nil {
		return nil, err
	}
	if contact == nil || contact.Birthday == nil {
		return nil, nil
	}

	loc := contact.Birthday.Location()
	newDate, ok := buildDate(year, month, day, loc)
	if !ok {
		if month == 2 && day == 29 {
			newDate = time.Date(year, time.February, 28, 0, 0, 0, 0, loc)
		} else {
			return nil, ErrInvalidDate
		}
	}

	if _, err := s.conn.ExecContext(ctx, updateBirthdayQuery, newDate, contactID, ownerID); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, ownerID, contactID)
}

func (s *SQL) Remove(ctx context.Context, ownerID, contactID uint64) (*model.ContactEntity, error) {
	contact, err := s.GetByID(ctx, ownerID, contactID)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, nil
	}

	if _, err := s.conn.ExecContext(ctx, deleteContactQuery, contactID, ownerID); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *SQL) ListWithBirthdays(ctx context.Context, ownerID uint64) ([]model.ContactEntity, error) {
	query := getContactBase + " AND user_id = ? AND birthday IS NOT NULL"
	return s.queryContacts(ctx, query, ownerID)
}

func (s *SQL) queryContacts(ctx context.Context, query string, args ...any) ([]model.ContactEntity, error) {
	rows, err := s.conn.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ContactEntity, 0)
	for rows.Next() {
		var it model.ContactEntity
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// buildDate returns the date and whether the components form a real
// calendar date; time.Date normalizes overflow (Feb 30 becomes Mar 2),
// so the components are checked against the round trip.
func buildDate(year, month, day int, loc *time.Location) (time.Time, bool) {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}
