package handler

import (
    "context"  // provides context with cancellation for DB calls
    "errors"   // sentinel error matching
    "log"      // server-side logging of internal failures
    "net/http" // HTTP status codes and primitives
    "strings"  // string manipulation utilities
    "time"     // timeouts for DB calls and event timestamps

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/fmbfi/scholar-portal/internal/config"     // app configuration
    "github.com/fmbfi/scholar-portal/internal/model"      // domain records
    "github.com/fmbfi/scholar-portal/internal/queue"      // broker event payloads
    "github.com/fmbfi/scholar-portal/internal/repository" // DB repositories
    queue_publisher "github.com/fmbfi/scholar-portal/internal/service"
    "github.com/fmbfi/scholar-portal/internal/utils" // helper functions (hashing, token issuing)
)

// genericAuthError is the single message returned for every credential
// failure. Unknown email and wrong password are indistinguishable so the
// endpoint cannot be used to enumerate accounts.
const genericAuthError = "invalid email or password"

// dbTimeout bounds each credential-store call.
const dbTimeout = 5 * time.Second

// AuthHandler bundles dependencies for the credential endpoints:
// registration, login, session introspection, refresh and logout.
type AuthHandler struct {
    Cfg   config.Config
    Users repository.UserStore
}

func NewAuthHandler(cfg config.Config, u repository.UserStore) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registerReq struct {
    Email    string `json:"email"`
    Password string `json:"password"`
}
type loginReq struct {
    Email    string `json:"email"`
    Password string `json:"password"`
}

type tokenPart struct {
    Token   string    `json:"token"`
    Expires time.Time `json:"expires"`
}
type userPart struct {
    ScholarID uint64 `json:"scholarid"`
    Username  string `json:"username"`
    Email     string `json:"email"`
    Role      string `json:"role"`
}
type loginResp struct {
    User     userPart  `json:"user"`
    Token    tokenPart `json:"token"`
    Redirect string    `json:"redirect"`
}

func (h *AuthHandler) sessionTTL() time.Duration {
    return time.Duration(h.Cfg.SessionTTLHours) * time.Hour
}

// issueSession signs a token for the user and attaches the session cookie
// to the response.
func (h *AuthHandler) issueSession(c echo.Context, u model.User) (utils.SessionToken, error) {
    tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, u, h.sessionTTL())
    if err != nil {
        return utils.SessionToken{}, err
    }
    c.SetCookie(utils.NewSessionCookie(tok))
    return tok, nil
}

// Register creates a new account with the default User role. The caller
// is NOT signed in: a separate login (or federated sign-in) is required
// afterwards. A best-effort user.registered event is published for the
// audit consumer.
func (h *AuthHandler) Register(c echo.Context) error {
    var req registerReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if req.Email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    // Races with a concurrent registration for the same email resolve at
    // the unique constraint inside Create, which reports ErrEmailExists.
    uid, err := h.Users.Create(ctx, req.Email, req.Password, model.RoleUser, h.Cfg.BcryptCost)
    if err != nil {
        if errors.Is(err, repository.ErrEmailExists) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "user already exists"})
        }
        log.Printf("register: create user: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
    }

    // Fire-and-forget: registration succeeds even when the broker is down.
    _ = queue_publisher.PublishUserRegistered(ctx, queue.UserRegisteredEvent{
        ScholarID:    uid,
        Email:        req.Email,
        Role:         model.RoleUser,
        RegisteredAt: time.Now().UTC().Format(time.RFC3339),
    })

    return c.JSON(http.StatusCreated, echo.Map{"message": "user registered successfully"})
}

// Login verifies credentials and establishes a session. Every failure
// along the credential path collapses into one generic 401.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if req.Email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    u, err := h.Users.GetByEmail(ctx, req.Email)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": genericAuthError})
        }
        log.Printf("login: query user: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
    }
    if !utils.VerifyPassword(u.PasswordHash, req.Password) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": genericAuthError})
    }

    tok, err := h.issueSession(c, u)
    if err != nil {
        log.Printf("login: issue session: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
    }

    role := model.DefaultRole(u.Role)
    return c.JSON(http.StatusOK, loginResp{
        User:     userPart{ScholarID: u.ScholarID, Username: u.Username, Email: u.Email, Role: role},
        Token:    tokenPart{Token: tok.Token, Expires: tok.Exp},
        Redirect: utils.RoleLanding(role),
    })
}

// Session reports the identity bound to the presented token, or an empty
// object when no valid token accompanies the request. It never fails:
// clients poll it to decide whether to show the signed-in chrome.
func (h *AuthHandler) Session(c echo.Context) error {
    claims, err := h.claimsFromRequest(c)
    if err != nil {
        return c.JSON(http.StatusOK, echo.Map{})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "user": echo.Map{
            "email": claims.Email,
            "role":  claims.Role,
            "name":  claims.Username,
        },
    })
}

// Refresh re-authenticates the presented token against the credential
// store and issues a fresh one. Because the identity is re-read, the new
// token carries the account's CURRENT role; this is the only way a role
// change becomes visible before the old token expires.
func (h *AuthHandler) Refresh(c echo.Context) error {
    claims, err := h.claimsFromRequest(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    u, err := h.Users.GetByID(ctx, claims.ScholarID)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
        }
        log.Printf("refresh: load user: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
    }

    tok, err := h.issueSession(c, u)
    if err != nil {
        log.Printf("refresh: issue session: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
    }

    role := model.DefaultRole(u.Role)
    return c.JSON(http.StatusOK, loginResp{
        User:     userPart{ScholarID: u.ScholarID, Username: u.Username, Email: u.Email, Role: role},
        Token:    tokenPart{Token: tok.Token, Expires: tok.Exp},
        Redirect: utils.RoleLanding(role),
    })
}

// Logout clears the session cookie. There is no server-side session state
// to destroy: the token simply stops being presented and ages out at its
// fixed expiry.
func (h *AuthHandler) Logout(c echo.Context) error {
    c.SetCookie(utils.ClearSessionCookie())
    return c.NoContent(http.StatusNoContent)
}

// claimsFromRequest extracts and verifies the session token carried by
// the request, from either the Authorization header or the session
// cookie. The session and refresh endpoints run without the JWT
// middleware so they parse the token themselves.
func (h *AuthHandler) claimsFromRequest(c echo.Context) (utils.SessionClaims, error) {
    raw := ""
    if auth := c.Request().Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
        raw = strings.TrimPrefix(auth, "Bearer ")
    } else if cookie, err := c.Cookie(utils.SessionCookieName); err == nil {
        raw = cookie.Value
    }
    if raw == "" {
        return utils.SessionClaims{}, utils.ErrInvalidToken
    }
    return utils.ParseSessionToken(h.Cfg.JWTSecret, raw)
}
