package middleware

import (
	"net/http"

	"acc-portal/internal/auth"
	"acc-portal/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// ConsoleCookie holds the admin console session token.
const ConsoleCookie = "acc_session"

// SetConsoleCookie stores token in an HttpOnly cookie scoped to path.
func SetConsoleCookie(c *gin.Context, token string, maxAge int, path string, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(ConsoleCookie, token, maxAge, path, "", secure, true)
}

// ClearConsoleCookie expires the session cookie.
func ClearConsoleCookie(c *gin.Context, path string, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(ConsoleCookie, "", -1, path, "", secure, true)
}

// ConsoleGuard admits console requests carrying a valid session cookie for
// an admin or editor. Anything else clears the cookie and redirects to
// loginPath.
func ConsoleGuard(issuer *auth.Issuer, loginPath, cookiePath string, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(ConsoleCookie)
		if err != nil || token == "" {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}

		claims, err := issuer.Parse(token)
		if err != nil || (claims.Role != users.RoleAdmin && claims.Role != users.RoleEditor) {
			ClearConsoleCookie(c, cookiePath, secure)
			c.Redirect(http.StatusSeeOther, loginPath+"?expired=1")
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}
