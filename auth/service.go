package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/fitlyhq/fitly-backend/models"
	"github.com/fitlyhq/fitly-backend/store"
)

// requestTimeout bounds every call to an external collaborator so a slow
// store or mailer fails the request instead of hanging it.
const requestTimeout = 10 * time.Second

// UserStore is the credential store the service persists users through.
type UserStore interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (models.User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.User, error)
}

// Mailer dispatches the password-reset OTP to the user.
type Mailer interface {
	SendOTPEmail(ctx context.Context, email, code string) error
}

// BlobStore persists uploaded profile images and returns the stored key.
type BlobStore interface {
	Upload(ctx context.Context, body io.Reader, key, contentType string) (string, error)
}

// Service orchestrates signup, login, the OTP password-reset flow and the
// authenticated profile operations.
type Service struct {
	users  UserStore
	hasher Hasher
	tokens *TokenManager
	otps   *OTPCache
	mailer Mailer
	blobs  BlobStore
}

// NewService wires the auth service with its collaborators.
func NewService(users UserStore, hasher Hasher, tokens *TokenManager, otps *OTPCache, mailer Mailer, blobs BlobStore) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		otps:   otps,
		mailer: mailer,
		blobs:  blobs,
	}
}

// SignupInput is the validated signup payload.
type SignupInput struct {
	Email    string
	Password string
	FullName string
	Gender   string
	Age      *int
	Height   *float64
	Weight   *float64
	Birthday string
}

// Signup creates a user with a hashed password. Duplicate emails are rejected
// by the store's unique index, so concurrent signups cannot both win.
func (s *Service) Signup(ctx context.Context, in SignupInput) (models.User, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return models.User{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	user, err := s.users.Create(ctx, models.User{
		Email:    in.Email,
		Password: hash,
		FullName: in.FullName,
		Gender:   in.Gender,
		Age:      in.Age,
		Height:   in.Height,
		Weight:   in.Weight,
		Birthday: in.Birthday,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return models.User{}, ErrEmailTaken
		}
		log.Printf("signup: failed to create user: %v", err)
		return models.User{}, Dependency("Failed to create user", err)
	}
	return user, nil
}

// Login checks the credentials and issues a bearer token. Unknown email and
// wrong password return the same error so callers cannot enumerate users.
func (s *Service) Login(ctx context.Context, email, password string) (string, models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", models.User{}, ErrInvalidCredentials
		}
		log.Printf("login: failed to fetch user: %v", err)
		return "", models.User{}, Dependency("Failed to fetch user", err)
	}

	ok, err := s.hasher.Verify(password, user.Password)
	if err != nil {
		return "", models.User{}, Internal(fmt.Errorf("malformed password hash for %s: %w", email, err))
	}
	if !ok {
		return "", models.User{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return "", models.User{}, Internal(err)
	}
	return token, user, nil
}

// VerifyToken validates a bearer token and returns the embedded user id.
func (s *Service) VerifyToken(token string) (string, error) {
	return s.tokens.Verify(token)
}

// RequestPasswordReset issues an OTP for the email and mails it. If the mail
// cannot be sent the OTP is consumed again, so a failed request leaves no
// state behind and the client can simply retry.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		log.Printf("forgot-password: failed to fetch user: %v", err)
		return Dependency("Failed to fetch user", err)
	}

	code, err := s.otps.Issue(email)
	if err != nil {
		return err
	}

	if err := s.mailer.SendOTPEmail(ctx, email, code); err != nil {
		s.otps.Consume(email)
		log.Printf("forgot-password: failed to send OTP email to %s: %v", email, err)
		return ErrNotificationFailed
	}
	return nil
}

// VerifyOTP checks the submitted code against the live entry for the email.
func (s *Service) VerifyOTP(ctx context.Context, email, code string) error {
	return s.otps.Verify(email, code)
}

// ResetPassword persists a new password for the email and consumes the OTP.
// It requires a live OTP entry; the code itself was already checked by
// VerifyOTP, and a consumed entry means the reset already happened.
func (s *Service) ResetPassword(ctx context.Context, email, newPassword string) error {
	if !s.otps.Has(email) {
		return ErrOtpRequired
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if err := s.users.UpdatePassword(ctx, email, hash); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		log.Printf("reset-password: failed to update password: %v", err)
		return Dependency("Failed to update password", err)
	}

	s.otps.Consume(email)
	return nil
}

// GetProfile re-fetches the user's current state; a verified token does not
// guarantee the user still exists.
func (s *Service) GetProfile(ctx context.Context, userID string) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, ErrUserNotFound
		}
		log.Printf("profile: failed to fetch user: %v", err)
		return models.User{}, Dependency("Failed to fetch user", err)
	}
	user.ProfileImage = toFileName(user.ProfileImage)
	return user, nil
}

// UpdateProfile merges the provided fields into the stored user.
func (s *Service) UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (models.User, error) {
	if upd.ProfileImage != nil {
		name := toFileName(*upd.ProfileImage)
		upd.ProfileImage = &name
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	user, err := s.users.UpdateProfile(ctx, userID, upd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, ErrUserNotFound
		}
		log.Printf("profile: failed to update user: %v", err)
		return models.User{}, Dependency("Failed to update user", err)
	}
	return user, nil
}

// UploadProfileImage stores the file in the blob store and records the object
// key on the user. URL construction stays with the presentation layer.
func (s *Service) UploadProfileImage(ctx context.Context, userID string, file io.Reader, filename, contentType string) (models.User, error) {
	if filename == "" {
		return models.User{}, Validation("No file uploaded")
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	key := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filename)
	stored, err := s.blobs.Upload(ctx, file, key, contentType)
	if err != nil {
		log.Printf("profile: failed to upload image: %v", err)
		return models.User{}, Dependency("Failed to store image", err)
	}

	return s.UpdateProfile(ctx, userID, models.ProfileUpdate{ProfileImage: &stored})
}

// DeleteUser removes a user record.
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		log.Printf("delete-user: %v", err)
		return Dependency("Failed to delete user", err)
	}
	return nil
}

// ListUsers returns every user record.
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	users, err := s.users.List(ctx)
	if err != nil {
		log.Printf("list-users: %v", err)
		return nil, Dependency("Failed to list users", err)
	}
	return users, nil
}

// toFileName strips any URL prefix a client may have echoed back, keeping
// only the stored object key.
func toFileName(value string) string {
	if strings.HasPrefix(value, "http") {
		parts := strings.Split(value, "/")
		return parts[len(parts)-1]
	}
	return value
}
