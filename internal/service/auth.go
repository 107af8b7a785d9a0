package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/deppfellow/kringe-music/internal/errs"
	"github.com/deppfellow/kringe-music/internal/model"
	"github.com/deppfellow/kringe-music/internal/session"
	"github.com/deppfellow/kringe-music/internal/sqlerr"
)

const (
	MsgLoginSuccess       = "Вход выполнен успешно!"
	MsgInvalidCredentials = "Неверный email/имя пользователя или пароль"
	MsgRegisterSuccess    = "Регистрация прошла успешно!"
	MsgEmailTaken         = "Этот email уже занят"
	MsgUsernameTaken      = "Это имя пользователя уже занято"
	MsgLogout             = "Выход выполнен"
)

// UserStore is the persistence the auth flow needs.
type UserStore interface {
	FindByLoginOrEmail(ctx context.Context, identifier string) (*model.User, error)
	Taken(ctx context.Context, login, email string) (loginTaken, emailTaken bool, err error)
	Create(ctx context.Context, login, email, passwordHash string) error
}

// WelcomeMailer queues the welcome email for a new user.
type WelcomeMailer interface {
	EnqueueWelcomeEmail(ctx context.Context, to, username string) error
}

type AuthService struct {
	users    UserStore
	sessions *session.Manager
	mailer   WelcomeMailer
	logger   *zerolog.Logger
	cost     int
}

// NewAuthService builds the auth flow. mailer may be nil.
func NewAuthService(users UserStore, sessions *session.Manager, mailer WelcomeMailer, logger *zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		mailer:   mailer,
		logger:   logger,
		cost:     bcrypt.DefaultCost,
	}
}

// Sessions exposes the session manager to the middleware layer.
func (s *AuthService) Sessions() *session.Manager {
	return s.sessions
}

// Login checks the credentials and opens a session.
//
// identifier is a login or an email. An unknown user and a wrong password
// produce the same rejection.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*session.Session, string, error) {
	user, err := s.users.FindByLoginOrEmail(ctx, identifier)
	if err != nil {
		if sqlerr.IsNotFound(err) {
			// compare anyway so unknown logins cost the same as wrong passwords
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			return nil, "", errs.NewRejectedError(MsgInvalidCredentials, nil)
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Info().Str("identifier", identifier).Msg("failed login attempt")
		return nil, "", errs.NewRejectedError(MsgInvalidCredentials, nil)
	}

	return s.sessions.Create(ctx, user.Login, user.Email)
}

// RegisterInput is a validated registration form.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates the account and logs the user in.
//
// Taken usernames or emails are rejected with a message per field and no
// session is created.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*session.Session, string, error) {
	loginTaken, emailTaken, err := s.users.Taken(ctx, in.Username, in.Email)
	if err != nil {
		return nil, "", err
	}
	if rejected := takenError(loginTaken, emailTaken); rejected != nil {
		return nil, "", rejected
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.Create(ctx, in.Username, in.Email, string(hash)); err != nil {
		// a concurrent registration won the race
		switch sqlerr.UniqueColumn(err) {
		case "login":
			return nil, "", takenError(true, false)
		case "email":
			return nil, "", takenError(false, true)
		}
		return nil, "", err
	}

	sess, cookie, err := s.sessions.Create(ctx, in.Username, in.Email)
	if err != nil {
		return nil, "", err
	}

	if s.mailer != nil {
		if err := s.mailer.EnqueueWelcomeEmail(ctx, in.Email, in.Username); err != nil {
			s.logger.Error().Err(err).Str("login", in.Username).Msg("failed to enqueue welcome email")
		}
	}

	return sess, cookie, nil
}

// Logout revokes the session behind cookieValue. Unknown sessions are fine.
func (s *AuthService) Logout(ctx context.Context, cookieValue string) error {
	return s.sessions.Destroy(ctx, cookieValue)
}

// Current resolves cookieValue; nil means anonymous.
func (s *AuthService) Current(ctx context.Context, cookieValue string) (*session.Session, error) {
	return s.sessions.Resolve(ctx, cookieValue)
}

func takenError(loginTaken, emailTaken bool) *errs.HTTPError {
	if !loginTaken && !emailTaken {
		return nil
	}

	fields := errs.FieldErrors{}
	message := MsgUsernameTaken
	if loginTaken {
		fields["username"] = MsgUsernameTaken
	}
	if emailTaken {
		fields["email"] = MsgEmailTaken
		message = MsgEmailTaken
	}
	return errs.NewRejectedError(message, fields)
}

// dummyHash is compared against when the user does not exist.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("kringe-music"), bcrypt.DefaultCost)
	return h
})
