package integration

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"playbook/internal/metrics"
	"playbook/internal/models"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("account already exists")
	ErrWrongPassword   = errors.New("wrong password")
)

// IdentityService signs users in and creates accounts in Google Identity Toolkit.
type IdentityService struct {
	relyingParty *identitytoolkit.RelyingpartyService
	metrics      *metrics.Recorder
}

func NewIdentityService(ctx context.Context, recorder *metrics.Recorder, opts ...option.ClientOption) (*IdentityService, error) {
	srv, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Identity Toolkit client: %w", err)
	}
	return &IdentityService{relyingParty: srv.Relyingparty, metrics: recorder}, nil
}

// SignIn checks an e-mail and password pair.
func (s *IdentityService) SignIn(ctx context.Context, email, password string) (*models.Identity, error) {
	start := time.Now()
	resp, err := s.relyingParty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	err = mapIdentityError(err)
	s.record(err, start)
	if err != nil {
		return nil, err
	}

	return &models.Identity{
		UserID:      resp.LocalId,
		Email:       resp.Email,
		DisplayName: resp.DisplayName,
	}, nil
}

// LookupUser finds an account by its user id (the lower-cased username).
func (s *IdentityService) LookupUser(ctx context.Context, userID string) (*models.Identity, error) {
	start := time.Now()
	resp, err := s.relyingParty.GetAccountInfo(&identitytoolkit.IdentitytoolkitRelyingpartyGetAccountInfoRequest{
		LocalId: []string{userID},
	}).Context(ctx).Do()
	err = mapIdentityError(err)
	s.record(err, start)
	if err != nil {
		return nil, err
	}
	if len(resp.Users) == 0 {
		return nil, ErrAccountNotFound
	}

	u := resp.Users[0]
	return &models.Identity{UserID: u.LocalId, Email: u.Email, DisplayName: u.DisplayName}, nil
}

// CreateAccount registers a new account whose id is the normalized username.
func (s *IdentityService) CreateAccount(ctx context.Context, userID string, signup models.Signup) (*models.Identity, error) {
	start := time.Now()
	resp, err := s.relyingParty.SignupNewUser(&identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest{
		LocalId:     userID,
		DisplayName: signup.FullName,
		Email:       signup.Email,
		Password:    signup.Password,
		PhoneNumber: signup.PhoneNumber,
	}).Context(ctx).Do()
	err = mapIdentityError(err)
	s.record(err, start)
	if err != nil {
		return nil, err
	}

	identity := &models.Identity{UserID: resp.LocalId, Email: resp.Email, DisplayName: resp.DisplayName}
	if identity.UserID == "" {
		identity.UserID = userID
	}
	if identity.DisplayName == "" {
		identity.DisplayName = signup.FullName
	}
	return identity, nil
}

func (s *IdentityService) record(err error, start time.Time) {
	if errors.Is(err, ErrAccountNotFound) || errors.Is(err, ErrWrongPassword) {
		err = nil
	}
	s.metrics.RecordExternalCall(metrics.ServiceIdentity, metrics.Outcome(err, nil), time.Since(start))
}

// mapIdentityError turns the toolkit's error codes into sentinels.
func mapIdentityError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	if apiErr.Code == http.StatusNotFound {
		return ErrAccountNotFound
	}

	msg := apiErr.Message
	switch {
	case strings.HasPrefix(msg, "EMAIL_NOT_FOUND"), strings.HasPrefix(msg, "USER_NOT_FOUND"):
		return ErrAccountNotFound
	case strings.HasPrefix(msg, "INVALID_PASSWORD"), strings.HasPrefix(msg, "INVALID_LOGIN_CREDENTIALS"):
		return ErrWrongPassword
	case strings.HasPrefix(msg, "EMAIL_EXISTS"), strings.HasPrefix(msg, "DUPLICATE_LOCAL_ID"):
		return ErrAccountExists
	}
	return err
}
