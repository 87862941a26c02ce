package service

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/config"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/game"
	"github.com/google/uuid"
)

// RegisterRepo is the minimal repository interface required by Register.
// Using a small interface simplifies testing.
type RegisterRepo interface {
	GetUserByEmail(email string) (*game.User, error)
	GetInterestsByIDs(ids []uint) ([]game.Interest, error)
	GetHouseByID(id uint) (*game.House, error)
	GetSkillsBySlugs(slugs []string) ([]game.Skill, error)
	CreateUser(u *game.User) error
}

type RegisterRequest struct {
	Email       string
	Name        string
	Password    string
	InterestIDs []uint
}

var (
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrEmptyName       = errors.New("name is required")
	ErrWeakPassword    = errors.New("password must have at least 8 characters")
	ErrEmailTaken      = errors.New("email already registered")
	ErrNoInterests     = errors.New("at least one interest is required")
	ErrUnknownInterest = errors.New("unknown interest")
)

// Register creates an account: validates the payload, sorts the user into a
// house by majority vote over the chosen interests and equips the starting
// skill loadout from the configured defaults.
func Register(repo RegisterRepo, defaults config.NewUserDefaults, req RegisterRequest) (*game.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(req.Password) < 8 {
		return nil, ErrWeakPassword
	}
	ids := uniqueIDs(req.InterestIDs)
	if len(ids) == 0 {
		return nil, ErrNoInterests
	}

	existing, err := repo.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	interests, err := repo.GetInterestsByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(interests) != len(ids) {
		return nil, ErrUnknownInterest
	}

	house, err := majorityHouse(repo, interests)
	if err != nil {
		return nil, err
	}

	hash, salt, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	loadout, err := repo.GetSkillsBySlugs(defaults.SkillSlugs)
	if err != nil {
		return nil, err
	}

	u := newUser(defaults, email, name, house, loadout)
	u.PasswordHash = hash
	u.PasswordSalt = salt
	u.Interests = interests

	if err := repo.CreateUser(u); err != nil {
		return nil, err
	}
	return u, nil
}

// majorityHouse tallies one vote per interest for the house it leans toward.
// The most voted house wins; ties break on the lowest house id so the
// outcome never depends on map order.
func majorityHouse(repo RegisterRepo, interests []game.Interest) (*game.House, error) {
	votes := map[uint]int{}
	for _, in := range interests {
		votes[in.HouseID]++
	}
	var winner uint
	best := -1
	for houseID, n := range votes {
		if n > best || (n == best && houseID < winner) {
			winner, best = houseID, n
		}
	}
	house, err := repo.GetHouseByID(winner)
	if err != nil {
		return nil, err
	}
	if house == nil {
		return nil, fmt.Errorf("interest references missing house %d", winner)
	}
	return house, nil
}

// newUser assembles a fresh level-1 account with the configured starting
// stats and loadout. The caller fills in credentials and interests.
func newUser(defaults config.NewUserDefaults, email, name string, house *game.House, loadout []game.Skill) *game.User {
	return &game.User{
		PublicID:        uuid.NewString(),
		Email:           email,
		Name:            name,
		HouseID:         house.ID,
		House:           *house,
		Element:         house.Element,
		Level:           1,
		AttributePoints: defaults.AttributePoints,
		MaxHealth:       defaults.MaxHealth,
		Stats:           defaults.Stats,
		EquippedSkills:  loadout,
	}
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
