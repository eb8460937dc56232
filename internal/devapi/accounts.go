package devapi

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	domainauth "github.com/showcase-labs/showcase-console/internal/domain/auth"
	"golang.org/x/crypto/bcrypt"
)

var (
	errEmailNotFound     = errors.New("email not found")
	errPasswordIncorrect = errors.New("password incorrect")
	errEmailTaken        = errors.New("email taken")
)

type account struct {
	ID           string
	Name         string
	Email        string
	Role         domainauth.Role
	PasswordHash []byte
}

// accounts is the in-memory user registry keyed by lower-cased email.
type accounts struct {
	mu     sync.RWMutex
	byMail map[string]*account
	byID   map[string]*account
	cost   int
}

func newAccounts(cost int) *accounts {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	return &accounts{
		byMail: make(map[string]*account),
		byID:   make(map[string]*account),
		cost:   cost,
	}
}

func mailKey(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

// add hashes password and stores the account. An empty id gets a fresh UUID.
func (a *accounts) add(id, name, email, password string, role domainauth.Role) (*account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return nil, err
	}
	if id == "" {
		id = uuid.NewString()
	}
	acct := &account{ID: id, Name: name, Email: strings.TrimSpace(email), Role: role, PasswordHash: hash}

	a.mu.Lock()
	defer a.mu.Unlock()
	key := mailKey(email)
	if _, ok := a.byMail[key]; ok {
		return nil, errEmailTaken
	}
	a.byMail[key] = acct
	a.byID[id] = acct
	return acct, nil
}

func (a *accounts) authenticate(email, password string) (*account, error) {
	a.mu.RLock()
	acct, ok := a.byMail[mailKey(email)]
	a.mu.RUnlock()
	if !ok {
		return nil, errEmailNotFound
	}
	if err := bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(password)); err != nil {
		return nil, errPasswordIncorrect
	}
	return acct, nil
}

func (a *accounts) get(id string) (*account, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	acct, ok := a.byID[id]
	return acct, ok
}
