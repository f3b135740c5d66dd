package services

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/rowanvale/strive/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmailTaken         = errors.New("email already exists")
)

// dummyHash keeps the bcrypt comparison on the unknown-email path so login
// timing does not reveal whether an address is registered.
var dummyHash = func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("strive-dummy-credential"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return hash
}()

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", ErrInvalidEmail
	}
	return email, nil
}

func (service *AuthService) Register(email string, password string, displayName string, now time.Time) (models.User, error) {
	normalizedEmail, err := NormalizeEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(normalizedEmail)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	name := strings.TrimSpace(displayName)
	if name == "" {
		name = normalizedEmail[:strings.Index(normalizedEmail, "@")]
	}

	user := models.User{
		Email:        normalizedEmail,
		PasswordHash: string(passwordHash),
		DisplayName:  name,
		Role:         models.RoleUser,
		Theme:        models.DefaultTheme,
		CreatedAt:    now,
	}
	if err := service.users.Create(&user); err != nil {
		// Two registrations can race past the existence check; the unique
		// email index settles it. Anything else is a real storage failure.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}
	return user, nil
}

// VerifyCredentials never distinguishes an unknown email from a wrong
// password; both return ErrInvalidCredentials.
func (service *AuthService) VerifyCredentials(email string, password string) (models.User, error) {
	normalizedEmail, err := NormalizeEmail(email)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	user, err := service.users.FindByNormalizedEmail(normalizedEmail)
	if err != nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return models.User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}
