package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"topup/internal/core/domain/model/identity"
	"topup/internal/core/domain/model/kernel"
	"topup/internal/core/ports"
	"topup/internal/pkg/errs"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for an unknown username or a wrong password.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", errs.ErrUnauthenticated)

// Authenticator registers accounts and checks passwords against bcrypt hashes.
type Authenticator struct {
	users ports.UserRepository
	cost  int
}

func NewAuthenticator(users ports.UserRepository, cost int) *Authenticator {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Authenticator{users: users, cost: cost}
}

// Register creates an account. A taken username yields errs.ErrConflict.
func (a *Authenticator) Register(
	ctx context.Context,
	username, displayName, password string,
	role identity.Role,
) (identity.Identity, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return identity.Identity{}, errs.NewValueIsInvalidErrorWithCause("password", err)
	}

	user := identity.Identity{
		UserID:      kernel.NewUUID(),
		Username:    username,
		DisplayName: displayName,
		Role:        role,
	}
	if err := a.users.Add(ctx, ports.UserCredentials{Identity: user, PasswordHash: hash}); err != nil {
		return identity.Identity{}, err
	}
	return user, nil
}

// Login returns the identity for a matching username and password.
func (a *Authenticator) Login(ctx context.Context, username, password string) (identity.Identity, error) {
	creds, err := a.users.GetByUsername(ctx, username)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return identity.Identity{}, ErrInvalidCredentials
	}
	if err != nil {
		return identity.Identity{}, err
	}

	if err := bcrypt.CompareHashAndPassword(creds.PasswordHash, []byte(password)); err != nil {
		return identity.Identity{}, ErrInvalidCredentials
	}
	return creds.Identity, nil
}

const (
	sessionName        = "topup-session"
	identityContextKey = "identity"

	sessionUserID      = "user_id"
	sessionUsername    = "username"
	sessionDisplayName = "display_name"
	sessionRole        = "role"
)

// SessionManager keeps the logged-in identity in a gorilla session cookie.
type SessionManager struct {
	store  sessions.Store
	logger *slog.Logger
}

// NewCookieSessionManager builds a manager over a signed cookie store.
func NewCookieSessionManager(key []byte, secure bool, logger *slog.Logger) *SessionManager {
	store := sessions.NewCookieStore(key)
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode
	store.Options.Path = "/"
	return NewSessionManager(store, logger)
}

func NewSessionManager(store sessions.Store, logger *slog.Logger) *SessionManager {
	return &SessionManager{store: store, logger: logger.With("component", "sessions")}
}

// LoadIdentity resolves the session identity for every request. A missing or
// unreadable session is the anonymous identity.
func (m *SessionManager) LoadIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(identityContextKey, m.identityOf(c.Request()))
		return next(c)
	}
}

func (m *SessionManager) identityOf(r *http.Request) identity.Identity {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		m.logger.DebugContext(r.Context(), "Ignoring unreadable session", "error", err)
		return identity.Anonymous
	}

	rawID, _ := session.Values[sessionUserID].(string)
	if rawID == "" {
		return identity.Anonymous
	}
	userID, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return identity.Anonymous
	}
	rawRole, _ := session.Values[sessionRole].(string)
	role, err := identity.ParseRole(rawRole)
	if err != nil {
		return identity.Anonymous
	}

	username, _ := session.Values[sessionUsername].(string)
	displayName, _ := session.Values[sessionDisplayName].(string)
	return identity.Identity{
		UserID:      userID,
		Username:    username,
		DisplayName: displayName,
		Role:        role,
	}
}

// sessionFor returns the request's session. An undecodable cookie yields a
// fresh session that replaces it on save.
func (m *SessionManager) sessionFor(r *http.Request, action string) *sessions.Session {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		m.logger.DebugContext(r.Context(), "Replacing unreadable session", "action", action, "error", err)
	}
	if session == nil {
		session = sessions.NewSession(m.store, sessionName)
	}
	return session
}

// SignIn stores the identity in the session cookie.
func (m *SessionManager) SignIn(c echo.Context, user identity.Identity) error {
	session := m.sessionFor(c.Request(), "sign_in")
	session.Values[sessionUserID] = user.UserID.String()
	session.Values[sessionUsername] = user.Username
	session.Values[sessionDisplayName] = user.DisplayName
	session.Values[sessionRole] = string(user.Role)
	return session.Save(c.Request(), c.Response())
}

// SignOut expires the session cookie.
func (m *SessionManager) SignOut(c echo.Context) error {
	session := m.sessionFor(c.Request(), "sign_out")
	session.Values = map[any]any{}
	session.Options.MaxAge = -1
	return session.Save(c.Request(), c.Response())
}

// IdentityFrom returns the identity LoadIdentity attached to the request.
func IdentityFrom(c echo.Context) identity.Identity {
	if id, ok := c.Get(identityContextKey).(identity.Identity); ok {
		return id
	}
	return identity.Anonymous
}

// Register handles POST /register.
func (s *Server) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	if err := req.normalize(); err != nil {
		return err
	}

	user, err := s.auth.Register(c.Request().Context(), req.Username, req.DisplayName, req.Password, identity.RoleBuyer)
	if err != nil {
		return err
	}

	s.logger.InfoContext(c.Request().Context(), "Account registered", "user_id", user.UserID.String())
	return c.JSON(http.StatusCreated, resultResponse{Success: true})
}

// Login handles POST /login.
func (s *Server) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	if err := req.normalize(); err != nil {
		return err
	}

	user, err := s.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	if err := s.sessions.SignIn(c, user); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return c.JSON(http.StatusOK, resultResponse{Success: true, Role: string(user.Role)})
}

// Logout handles POST /logout.
func (s *Server) Logout(c echo.Context) error {
	if err := s.sessions.SignOut(c); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return c.JSON(http.StatusOK, resultResponse{Success: true})
}
