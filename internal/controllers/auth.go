package controllers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/adamanr/dreamteam/internal/apperror"
	"github.com/adamanr/dreamteam/internal/entity"
	"github.com/adamanr/dreamteam/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const (
	SessionKeyPrefix = "session:"

	msgInvalidCredentials = "Invalid email or password"
	msgSessionExpired     = "Your session has expired. Please log in again."
	msgEmailTaken         = "Email is already in use."
	msgUsernameTaken      = "Username is already in use."
	msgPasswordTooLong    = "Password cannot be longer than 72 bytes."

	emailConstraint    = "employees_email_key"
	usernameConstraint = "employees_username_key"
)

type AuthController struct {
	deps *Dependens
}

func NewAuthController(deps *Dependens) *AuthController {
	return &AuthController{
		deps: deps,
	}
}

// Register creates a regular (non-admin) employee account.
func (c *AuthController) Register(ctx context.Context, req entity.RegisterRequest) (*entity.Employee, error) {
	if err := c.deps.validate(req); err != nil {
		return nil, err
	}

	fields := map[string]string{}

	emailTaken, err := c.deps.Employees.ExistsByEmail(ctx, req.Email)
	if err != nil {
		c.deps.Logger.Error("Error checking email", slog.String("error", err.Error()))
		return nil, err
	}
	if emailTaken {
		fields["email"] = msgEmailTaken
	}

	usernameTaken, err := c.deps.Employees.ExistsByUsername(ctx, req.Username)
	if err != nil {
		c.deps.Logger.Error("Error checking username", slog.String("error", err.Error()))
		return nil, err
	}
	if usernameTaken {
		fields["username"] = msgUsernameTaken
	}

	if len(fields) > 0 {
		c.deps.Logger.Warn("Registration rejected", slog.String("email", req.Email), slog.String("username", req.Username))
		return nil, apperror.Validation(fields)
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		if apperror.GetCode(err) != apperror.CodeValidation {
			c.deps.Logger.Error("Error hashing password", slog.String("error", err.Error()))
		}
		return nil, err
	}

	emp, err := c.deps.Employees.Create(ctx, entity.Employee{
		Email:        req.Email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, duplicateEmployeeError(err)
		}

		c.deps.Logger.Error("Error inserting employee", slog.String("error", err.Error()))
		return nil, err
	}

	c.deps.Logger.Info("Employee registered", slog.Int64("id", emp.ID), slog.String("username", emp.Username))
	return emp, nil
}

// duplicateEmployeeError reports a unique violation that slipped past the
// existence checks (concurrent registration) as the matching field error.
func duplicateEmployeeError(err error) error {
	switch repository.ConstraintName(err) {
	case usernameConstraint:
		return apperror.Validation(map[string]string{"username": msgUsernameTaken})
	default:
		return apperror.Validation(map[string]string{"email": msgEmailTaken})
	}
}

// Login checks the credentials and opens a session. The returned token is
// the value of the session cookie.
func (c *AuthController) Login(ctx context.Context, req entity.LoginRequest) (*entity.Employee, string, error) {
	if err := c.deps.validate(req); err != nil {
		return nil, "", err
	}

	emp, err := c.deps.Employees.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.deps.Logger.Warn("Login with unknown email", slog.String("email", req.Email))
			return nil, "", apperror.Auth(msgInvalidCredentials)
		}

		c.deps.Logger.Error("Error querying employee", slog.String("error", err.Error()))
		return nil, "", err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		c.deps.Logger.Warn("Invalid password", slog.String("email", req.Email))
		return nil, "", apperror.Auth(msgInvalidCredentials)
	}

	token, err := c.createSession(ctx, emp)
	if err != nil {
		return nil, "", err
	}

	return emp, token, nil
}

func (c *AuthController) createSession(ctx context.Context, emp *entity.Employee) (string, error) {
	sessionID := uuid.NewString()
	ttl := c.deps.Config.Redis.SessionTTL
	now := time.Now()

	claims := entity.Claims{
		EmployeeID: emp.ID,
		Username:   emp.Username,
		IsAdmin:    emp.IsAdmin,
		SessionID:  sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(emp.ID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString([]byte(c.deps.Config.Server.SessionSecret))
	if err != nil {
		c.deps.Logger.Error("Error signing session token", slog.String("error", err.Error()))
		return "", err
	}

	if err = c.deps.Redis.Set(ctx, SessionKeyPrefix+sessionID, emp.ID, ttl).Err(); err != nil {
		c.deps.Logger.Error("Error saving session", slog.String("error", err.Error()))
		return "", err
	}

	return tokenStr, nil
}

// Authenticate resolves a session cookie into the request actor. The admin
// flag is read from the employee record, not from the token, so promotions
// take effect on the next request.
func (c *AuthController) Authenticate(ctx context.Context, tokenStr string) (*entity.Actor, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &entity.Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(c.deps.Config.Server.SessionSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		c.deps.Logger.Debug("Error parsing session token", slog.String("error", err.Error()))
		return nil, apperror.Auth(msgSessionExpired)
	}

	claims, ok := token.Claims.(*entity.Claims)
	if !ok || !token.Valid {
		return nil, apperror.Auth(msgSessionExpired)
	}

	if err = c.deps.Redis.Get(ctx, SessionKeyPrefix+claims.SessionID).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			c.deps.Logger.Debug("Session revoked", slog.String("session_id", claims.SessionID))
			return nil, apperror.Auth(msgSessionExpired)
		}

		c.deps.Logger.Error("Error reading session", slog.String("error", err.Error()))
		return nil, err
	}

	emp, err := c.deps.Employees.GetByID(ctx, claims.EmployeeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.Auth(msgSessionExpired)
		}

		c.deps.Logger.Error("Error loading session employee", slog.String("error", err.Error()))
		return nil, err
	}

	return &entity.Actor{
		EmployeeID: emp.ID,
		Username:   emp.Username,
		IsAdmin:    emp.IsAdmin,
		SessionID:  claims.SessionID,
	}, nil
}

func (c *AuthController) Logout(ctx context.Context, actor *entity.Actor) error {
	if actor == nil {
		return apperror.Auth(msgSessionExpired)
	}

	if err := c.deps.Redis.Del(ctx, SessionKeyPrefix+actor.SessionID).Err(); err != nil {
		c.deps.Logger.Error("Error deleting session", slog.String("error", err.Error()))
		return err
	}

	c.deps.Logger.Info("Employee logged out", slog.Int64("id", actor.EmployeeID))
	return nil
}

// CreateAdmin creates the bootstrap admin, or promotes the employee that
// already owns the email. created reports which happened.
func (c *AuthController) CreateAdmin(ctx context.Context, req entity.AdminRequest) (emp *entity.Employee, created bool, err error) {
	if err = c.deps.validate(req); err != nil {
		return nil, false, err
	}

	emp, err = c.deps.Employees.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		if err = c.deps.Employees.SetAdmin(ctx, emp.ID, true); err != nil {
			return nil, false, fmt.Errorf("promote employee %d: %w", emp.ID, err)
		}
		emp.IsAdmin = true
		c.deps.Logger.Info("Employee promoted to admin", slog.Int64("id", emp.ID))
		return emp, false, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, false, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, false, err
	}

	emp, err = c.deps.Employees.Create(ctx, entity.Employee{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		IsAdmin:      true,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, false, duplicateEmployeeError(err)
		}
		return nil, false, err
	}

	c.deps.Logger.Info("Admin created", slog.Int64("id", emp.ID), slog.String("username", emp.Username))
	return emp, true, nil
}

// hashPassword reports a password bcrypt cannot take as a field error on
// the password input.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperror.Validation(map[string]string{"password": msgPasswordTooLong})
	}
	if err != nil {
		return "", err
	}

	return string(hash), nil
}
