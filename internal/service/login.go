package service

import (
	"errors"
	"strings"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/config"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/engine"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/game"
)

// LoginRepo is the minimal repository interface required by Login.
type LoginRepo interface {
	GetUserByEmail(email string) (*game.User, error)
}

// GoogleRepo is the repository surface for Google sign-ins, which may have to
// create the account on first contact.
type GoogleRepo interface {
	GetUserByEmail(email string) (*game.User, error)
	GetHouses() ([]game.House, error)
	GetSkillsBySlugs(slugs []string) ([]game.Skill, error)
	CreateUser(u *game.User) error
}

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoHouses           = errors.New("no houses configured")
)

// Login authenticates a password account. Unknown emails, Google-only
// accounts and wrong passwords all return the same error so the endpoint is
// not an account oracle.
func Login(repo LoginRepo, email, password string) (*game.User, error) {
	u, err := repo.GetUserByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if u == nil || u.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if !checkPassword(password, u.PasswordSalt, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// GoogleLogin resolves a verified Google profile to an account, creating one
// on first sign-in. Google accounts skip the interest quiz, so their house is
// drawn at random.
func GoogleLogin(repo GoogleRepo, rolls engine.Roller, defaults config.NewUserDefaults, email, name string) (*game.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := repo.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}

	houses, err := repo.GetHouses()
	if err != nil {
		return nil, err
	}
	if len(houses) == 0 {
		return nil, ErrNoHouses
	}
	house := houses[rolls.IntN(len(houses))]

	loadout, err := repo.GetSkillsBySlugs(defaults.SkillSlugs)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = email[:strings.IndexByte(email, '@')]
	}
	nu := newUser(defaults, email, name, &house, loadout)
	if err := repo.CreateUser(nu); err != nil {
		return nil, err
	}
	return nu, nil
}
