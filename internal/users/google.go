package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/mahdi67436/cv-maker-web/internal/shared/auth"
	"github.com/mahdi67436/cv-maker-web/internal/shared/server/respond"
)

// GoogleHandler runs the Google OAuth login flow and hands back an access
// token on the UI redirect.
type GoogleHandler struct {
	svc         *Service
	tokens      *auth.TokenService
	oauthConfig *oauth2.Config
	uiRedirect  string
	stateTTL    time.Duration
	states      *stateStore
}

func NewGoogleHandler(svc *Service, tokens *auth.TokenService, clientID, clientSecret, redirectURL, uiRedirect string) *GoogleHandler {
	return &GoogleHandler{
		svc:    svc,
		tokens: tokens,
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		uiRedirect: uiRedirect,
		stateTTL:   5 * time.Minute,
		states:     newStateStore(),
	}
}

// RegisterRoutes attaches the Google login endpoints to the auth group.
func (h *GoogleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/google/start", h.start)
	rg.GET("/google/callback", h.callback)
}

func (h *GoogleHandler) start(c *gin.Context) {
	if h.oauthConfig.ClientID == "" || h.oauthConfig.ClientSecret == "" || h.oauthConfig.RedirectURL == "" {
		respond.Error(c, http.StatusInternalServerError, "auth_not_configured", "Google auth not configured", nil)
		return
	}

	state := uuid.NewString()
	h.states.put(state, time.Now().Add(h.stateTTL))

	c.Redirect(http.StatusFound, h.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline))
}

func (h *GoogleHandler) callback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "missing state or code", nil)
		return
	}
	if !h.states.consume(state) {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid or expired state", nil)
		return
	}

	ctx := c.Request.Context()
	token, err := h.oauthConfig.Exchange(ctx, code)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "failed to exchange code", nil)
		return
	}

	info, err := h.fetchUserInfo(ctx, token)
	if err != nil || info.Email == "" {
		respond.Error(c, http.StatusBadGateway, "auth_failed", "failed to fetch user profile", nil)
		return
	}

	firstName, lastName, _ := strings.Cut(info.Name, " ")
	user, err := h.svc.LoginWithGoogle(ctx, info.Email, firstName, lastName, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if errors.Is(err, ErrAccountDisabled) {
			respond.Error(c, http.StatusForbidden, "account_disabled", "account is disabled", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to sign in", nil)
		return
	}

	access, err := h.tokens.Sign(user.ID, user.Email, user.FullName(), user.Role, auth.TokenAccess)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}

	redirectURL, err := appendToken(h.uiRedirect, access)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to redirect", nil)
		return
	}
	c.Redirect(http.StatusFound, redirectURL)
}

type googleUserInfo struct {
	Sub     string `json:"sub"`
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (h *GoogleHandler) fetchUserInfo(ctx context.Context, token *oauth2.Token) (googleUserInfo, error) {
	client := h.oauthConfig.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return googleUserInfo{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return googleUserInfo{}, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return googleUserInfo{}, err
	}
	// Some responses use "id" instead of "sub".
	if info.Sub == "" {
		info.Sub = info.ID
	}
	return info, nil
}

type stateStore struct {
	items map[string]time.Time
	mu    sync.Mutex
}

func newStateStore() *stateStore {
	return &stateStore{items: make(map[string]time.Time)}
}

func (s *stateStore) put(state string, exp time.Time) {
	s.mu.Lock()
	s.items[state] = exp
	s.mu.Unlock()
}

func (s *stateStore) consume(state string) bool {
	s.mu.Lock()
	exp, ok := s.items[state]
	if ok {
		delete(s.items, state)
	}
	s.mu.Unlock()
	return ok && time.Now().Before(exp)
}

func appendToken(rawURL, token string) (string, error) {
	if rawURL == "" {
		return "", errors.New("redirect url required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
