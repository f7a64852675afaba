package http

import (
	"net/http"

	"topup/internal/core/domain/model/identity"

	"github.com/gorilla/csrf"
	"github.com/labstack/echo/v4"
)

// RequireIdentity rejects anonymous requests with 401.
func RequireIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := identity.RequireAuthenticated(IdentityFrom(c)); err != nil {
			return err
		}
		return next(c)
	}
}

// RequireRole rejects identities without the given role with 403.
func RequireRole(role identity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := identity.RequireRole(IdentityFrom(c), role); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// CSRF protects state-changing requests with gorilla/csrf. Clients read the
// token from GET /csrf and send it back in the X-CSRF-Token header.
func CSRF(key []byte, secure bool, trustedOrigins []string) []echo.MiddlewareFunc {
	protect := csrf.Protect(key,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.TrustedOrigins(trustedOrigins),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"message":"invalid csrf token"}`))
		})),
	)

	chain := make([]echo.MiddlewareFunc, 0, 2)
	if !secure {
		chain = append(chain, func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				c.SetRequest(csrf.PlaintextHTTPRequest(c.Request()))
				return next(c)
			}
		})
	}
	return append(chain, echo.WrapMiddleware(protect))
}

type csrfTokenResponse struct {
	Token string `json:"token"`
}

// CSRFToken handles GET /csrf. The token is empty when protection is off.
func (s *Server) CSRFToken(c echo.Context) error {
	return c.JSON(http.StatusOK, csrfTokenResponse{Token: csrf.Token(c.Request())})
}
