package mockauth

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/propauth/pkg/authsdk"
)

var (
	ErrEmailTaken   = errors.New("mockauth: email already registered")
	ErrUserNotFound = errors.New("mockauth: user not found")
)

// Account is a registered user as the backend sees it.
type Account struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	Role      authsdk.Role

	PasswordHash string

	TwoFactorEnabled bool
	TwoFactorSecret  string

	// ResetFingerprint is the fingerprint of the outstanding reset token.
	ResetFingerprint string
	ResetExpiry      time.Time
}

// Profile is the public view served under /client/profile.
func (a Account) Profile() authsdk.User {
	return authsdk.User{
		ID:               a.ID,
		FirstName:        a.FirstName,
		LastName:         a.LastName,
		Email:            a.Email,
		Phone:            a.Phone,
		Address:          a.Address,
		Role:             a.Role,
		TwoFactorEnabled: a.TwoFactorEnabled,
	}
}

// Authorities are the role names carried in tokens.
func (a Account) Authorities() []string {
	return []string{"ROLE_" + a.Role.String()}
}

// Directory is an in-memory account table. Emails match case-insensitively.
// Accounts are returned by value so callers cannot mutate shared state
// outside Update.
type Directory struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]*Account
	byEmail map[string]int64
}

func NewDirectory() *Directory {
	return &Directory{
		byID:    make(map[int64]*Account),
		byEmail: make(map[string]int64),
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create stores a and assigns its ID.
func (d *Directory) Create(a Account) (Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := emailKey(a.Email)
	if _, ok := d.byEmail[key]; ok {
		return Account{}, ErrEmailTaken
	}

	d.nextID++
	a.ID = d.nextID
	d.byID[a.ID] = &a
	d.byEmail[key] = a.ID
	return a, nil
}

func (d *Directory) ByID(id int64) (Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	a, ok := d.byID[id]
	if !ok {
		return Account{}, ErrUserNotFound
	}
	return *a, nil
}

func (d *Directory) ByEmail(email string) (Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	id, ok := d.byEmail[emailKey(email)]
	if !ok {
		return Account{}, ErrUserNotFound
	}
	return *d.byID[id], nil
}

// ByResetFingerprint finds the account holding a reset token.
func (d *Directory) ByResetFingerprint(fp string) (Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if fp == "" {
		return Account{}, ErrUserNotFound
	}
	for _, a := range d.byID {
		if a.ResetFingerprint == fp {
			return *a, nil
		}
	}
	return Account{}, ErrUserNotFound
}

// Update applies fn to the stored account under the write lock. Nothing
// is saved when fn fails. The email and ID cannot be changed.
func (d *Directory) Update(id int64, fn func(*Account) error) (Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	stored, ok := d.byID[id]
	if !ok {
		return Account{}, ErrUserNotFound
	}

	next := *stored
	if err := fn(&next); err != nil {
		return Account{}, err
	}
	next.ID, next.Email = stored.ID, stored.Email

	*stored = next
	return next, nil
}

func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byID)
}
