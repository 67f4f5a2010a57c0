// Package inmemory provides map-backed repositories for tests and local runs without MongoDB.
package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"medspace-api/internal/models"
	"medspace-api/internal/repositories"
	"medspace-api/pkg/cache"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepo stores deep copies so callers cannot mutate stored state without Save.
type UserRepo struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User
	// Err, when set, is returned from every call.
	Err error
}

var _ repositories.UserRepository = (*UserRepo)(nil)

func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[primitive.ObjectID]models.User)}
}

func (r *UserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return clone(u), nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	email = cache.NormalizeEmail(email)
	for _, u := range r.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *UserRepo) FindWithPagination(_ context.Context, offset, limit int) ([]models.User, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, 0, r.Err
	}

	all := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, *clone(u))
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID.Hex() > all[j].ID.Hex()
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	if offset >= len(all) {
		return []models.User{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *UserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	user.Email = cache.NormalizeEmail(user.Email)
	if r.emailTaken(user.Email, primitive.NilObjectID) {
		return repositories.ErrDuplicateEmail
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	if user.Appointments == nil {
		user.Appointments = []models.Appointment{}
	}
	if user.MedicalHistory == nil {
		user.MedicalHistory = []string{}
	}
	r.users[user.ID] = *clone(*user)
	return nil
}

func (r *UserRepo) Save(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	user.Email = cache.NormalizeEmail(user.Email)
	if r.emailTaken(user.Email, user.ID) {
		return repositories.ErrDuplicateEmail
	}
	user.UpdatedAt = time.Now().UTC()
	r.users[user.ID] = *clone(*user)
	return nil
}

func (r *UserRepo) Update(_ context.Context, user *models.User, fields ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	stored, ok := r.users[user.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	user.UpdatedAt = time.Now().UTC()
	set, unset, err := repositories.SplitUserFields(user, append(fields, "updatedAt"))
	if err != nil {
		return err
	}
	if email, ok := set["email"].(string); ok && r.emailTaken(email, user.ID) {
		return repositories.ErrDuplicateEmail
	}

	raw, err := bson.Marshal(stored)
	if err != nil {
		return err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return err
	}
	for k, v := range set {
		doc[k] = v
	}
	for k := range unset {
		delete(doc, k)
	}
	raw, err = bson.Marshal(doc)
	if err != nil {
		return err
	}
	var merged models.User
	if err := bson.Unmarshal(raw, &merged); err != nil {
		return err
	}
	r.users[user.ID] = merged
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// Count returns the number of stored users.
func (r *UserRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

func (r *UserRepo) emailTaken(email string, except primitive.ObjectID) bool {
	for id, u := range r.users {
		if u.Email == email && id != except {
			return true
		}
	}
	return false
}

func clone(u models.User) *models.User {
	c := u
	if u.Appointments != nil {
		c.Appointments = append([]models.Appointment{}, u.Appointments...)
	}
	if u.MedicalHistory != nil {
		c.MedicalHistory = append([]string{}, u.MedicalHistory...)
	}
	if u.Address != nil {
		addr := *u.Address
		c.Address = &addr
	}
	if u.DOB != nil {
		dob := *u.DOB
		c.DOB = &dob
	}
	if u.OTPExpiry != nil {
		exp := *u.OTPExpiry
		c.OTPExpiry = &exp
	}
	return &c
}
