package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/olekhymko/contacts-api/constant"
	"github.com/olekhymko/contacts-api/model"
	utilsContext "github.com/olekhymko/contacts-api/utils/context"
	"github.com/olekhymko/contacts-api/utils/errors"
	validatorx "github.com/olekhymko/contacts-api/utils/validator"
)

// ListContacts handler
// @Summary List contacts
// @Description List the authenticated user's contacts with skip/limit paging
// @Tags Contacts
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Max rows" default(100)
// @Success 200 {array} model.ContactResponse
// @Security BearerAuth
// @Router /api/contacts/ [get]
func (s *RestHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 100)

	res, err := s.ContactApp.ListContacts(ctx, userID, skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// SearchContacts handler
// @Summary Search contacts
// @Description Case-insensitive substring search over name, surname and email; each supplied term matches independently
// @Tags Contacts
// @Produce json
// @Param name query string false "Name term"
// @Param surname query string false "Surname term"
// @Param email query string false "Email term"
// @Success 200 {array} model.ContactResponse
// @Failure 400 {object} errorResponse
// @Security BearerAuth
// @Router /api/contacts/search [get]
func (s *RestHandler) SearchContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	filter := &model.ContactSearchFilter{
		Name:    queryString(r, "name"),
		Surname: queryString(r, "surname"),
		Email:   queryString(r, "email"),
	}

	res, err := s.ContactApp.SearchContacts(ctx, userID, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UpcomingBirthdays handler
// @Summary Upcoming birthdays
// @Description Contacts whose birthday falls within the next N days of the current year
// @Tags Contacts
// @Produce json
// @Param days query int false "Window in days" default(7)
// @Success 200 {array} model.ContactResponse
// @Security BearerAuth
// @Router /api/contacts/upcoming [get]
func (s *RestHandler) UpcomingBirthdays(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	days := queryInt(r, "days", 7)

	res, err := s.ContactApp.UpcomingBirthdays(ctx, userID, days)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetContact handler
// @Summary Fetch one contact
// @Tags Contacts
// @Produce json
// @Param id path int true "Contact ID"
// @Success 200 {object} model.ContactResponse
// @Failure 404 {object} errorResponse
// @Security BearerAuth
// @Router /api/contacts/{id} [get]
func (s *RestHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	contactID, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.ContactApp.GetContact(ctx, userID, contactID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CreateContact handler
// @Summary Create contact
// @Tags Contacts
// @Accept json
// @Produce json
// @Param request body model.CreateContactRequest true "Contact"
// @Success 201 {object} model.ContactResponse
// @Failure 400 {object} errorResponse
// @Security BearerAuth
// @Router /api/contacts/ [post]
func (s *RestHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.ContactApp.CreateContact(ctx, userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeCreated(w, res)
}

// UpdateContact handler
// @Summary Update contact
// @Description Partial update: absent fields keep their stored values
// @Tags Contacts
// @Accept json
// @Produce json
// @Param id path int true "Contact ID"
// @Param request body model.UpdateContactRequest true "Fields to update"
// @Success 200 {object} model.ContactResponse
// @Failure 404 {object} errorResponse
// @Security BearerAuth
// @Router /api/contacts/{id} [put]
func (s *RestHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	contactID, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.UpdateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.ContactApp.UpdateContact(ctx, userID, contactID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UpdateContactBirthday handler
// @Summary Update contact birthday
// @Description Replace only the date components of the stored birthday
// @Tags Contacts
// @Accept json
// @Produce json
// @Param id path int true "Contact ID"
// @Param request body model.UpdateBirthdayRequest true "New date components"
// @Success 200 {object} model.ContactResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Security BearerAuth
// @Router /api/contacts/{id}/date [put]
func (s *RestHandler) UpdateContactBirthday(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	contactID, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.UpdateBirthdayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.ContactApp.UpdateContactBirthday(ctx, userID, contactID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// RemoveContact handler
// @Summary Delete contact
// @Description Delete the contact and return the removed record
// @Tags Contacts
// @Produce json
// @Param id path int true "Contact ID"
// @Success 200 {object} model.ContactResponse
// @Failure 404 {object} errorResponse
// @Security BearerAuth
// @Router /api/contacts/{id} [delete]
func (s *RestHandler) RemoveContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	contactID, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.ContactApp.RemoveContact(ctx, userID, contactID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func pathID(r *http.Request) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func queryString(r *http.Request, key string) *string {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	return &v
}
