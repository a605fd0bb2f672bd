package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"playbook/internal/integration"
	"playbook/internal/models"
	"playbook/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

const minPasswordLength = 6

// sessionClaims is what the session cookie carries.
type sessionClaims struct {
	Name     string `json:"name"`
	Language string `json:"lang"`
	jwt.RegisteredClaims
}

// AuthService signs viewers in, creates accounts and manages sessions.
type AuthService struct {
	identity IdentityProvider
	users    repository.User
	games    *GameService
	secret   []byte
	ttl      time.Duration
	logger   Logger
	now      func() time.Time
}

func NewAuthService(identity IdentityProvider, users repository.User, games *GameService, secret string, ttl time.Duration, logger Logger) *AuthService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &AuthService{
		identity: identity,
		users:    users,
		games:    games,
		secret:   []byte(secret),
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// Login accepts a username or an e-mail address. Every failure is reported
// as ErrInvalidCredentials so callers cannot tell which part was wrong.
func (s *AuthService) Login(ctx context.Context, login, password string) (*models.Viewer, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	email := login
	if !strings.Contains(login, "@") {
		userID, err := NormalizeUsername(login)
		if err != nil {
			return nil, ErrInvalidCredentials
		}
		account, err := s.identity.LookupUser(ctx, userID)
		if err != nil {
			s.logger.Debug("login %s: lookup failed: %v", userID, err)
			return nil, ErrInvalidCredentials
		}
		email = account.Email
	}

	identity, err := s.identity.SignIn(ctx, email, password)
	if err != nil {
		s.logger.Debug("login %s: sign in failed: %v", login, err)
		return nil, ErrInvalidCredentials
	}

	return &models.Viewer{
		UserID:      identity.UserID,
		DisplayName: displayName(identity),
		Language:    s.preferredLanguage(ctx, identity.UserID),
	}, nil
}

// Signup validates the form, creates the identity account and the profile row.
func (s *AuthService) Signup(ctx context.Context, form models.Signup) (*models.Viewer, error) {
	userID, err := s.validateSignup(form)
	if err != nil {
		return nil, err
	}

	favorite, ok := s.games.ResolveTeam(ctx, form.FavoriteTeam)
	if !ok {
		return nil, fmt.Errorf("%w: unknown favorite team %q", ErrInvalidSignup, form.FavoriteTeam)
	}
	followed := make([]int, 0, len(form.TeamsToFollow))
	for _, name := range form.TeamsToFollow {
		team, ok := s.games.ResolveTeam(ctx, name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown team %q", ErrInvalidSignup, name)
		}
		followed = append(followed, team.ID)
	}

	identity, err := s.identity.CreateAccount(ctx, userID, form)
	if errors.Is(err, integration.ErrAccountExists) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	user := &models.User{
		ID:                identity.UserID,
		FavoriteTeamID:    favorite.ID,
		FollowedTeamIDs:   followed,
		FollowedPlayerIDs: []int{},
		PreferredLanguage: models.BaseLanguage,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("signup: created user %s", user.ID)
	return &models.Viewer{
		UserID:      user.ID,
		DisplayName: displayName(identity),
		Language:    user.PreferredLanguage,
	}, nil
}

func (s *AuthService) validateSignup(form models.Signup) (string, error) {
	switch {
	case strings.TrimSpace(form.FullName) == "":
		return "", fmt.Errorf("%w: full name is required", ErrInvalidSignup)
	case !strings.Contains(form.Email, "@"):
		return "", fmt.Errorf("%w: a valid e-mail is required", ErrInvalidSignup)
	case len(form.Password) < minPasswordLength:
		return "", fmt.Errorf("%w: password must be at least %d characters", ErrInvalidSignup, minPasswordLength)
	case !form.AcceptTerms:
		return "", fmt.Errorf("%w: terms must be accepted", ErrInvalidSignup)
	case strings.TrimSpace(form.FavoriteTeam) == "":
		return "", fmt.Errorf("%w: favorite team is required", ErrInvalidSignup)
	}
	return NormalizeUsername(form.Username)
}

// UpdateLanguage stores the viewer's language preference.
func (s *AuthService) UpdateLanguage(ctx context.Context, viewer models.Viewer, lang models.Language) (*models.Viewer, error) {
	if !lang.Valid() {
		return nil, models.ErrUnsupportedLanguage
	}
	if err := s.users.UpdateLanguage(ctx, viewer.UserID, lang); err != nil {
		return nil, fmt.Errorf("update language: %w", err)
	}
	viewer.Language = lang
	return &viewer, nil
}

// IssueToken signs a session token for viewer.
func (s *AuthService) IssueToken(viewer models.Viewer) (string, time.Time, error) {
	now := s.now()
	expires := now.Add(s.ttl)

	claims := sessionClaims{
		Name:     viewer.DisplayName,
		Language: string(viewer.Language),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   viewer.UserID,
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}
	return token, expires, nil
}

// ParseToken verifies a session token and returns the viewer it was issued for.
func (s *AuthService) ParseToken(tokenString string) (*models.Viewer, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidSession
	}

	lang := models.Language(claims.Language)
	if !lang.Valid() {
		lang = models.BaseLanguage
	}
	return &models.Viewer{UserID: claims.Subject, DisplayName: claims.Name, Language: lang}, nil
}

func (s *AuthService) preferredLanguage(ctx context.Context, userID string) models.Language {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("login %s: profile read failed: %v", userID, err)
		}
		return models.BaseLanguage
	}
	if !user.PreferredLanguage.Valid() {
		return models.BaseLanguage
	}
	return user.PreferredLanguage
}

func displayName(identity *models.Identity) string {
	if identity.DisplayName != "" {
		return identity.DisplayName
	}
	return identity.UserID
}
