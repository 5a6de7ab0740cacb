package http

import (
	"context"
	"net/http"
	"time"

	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/auth"
	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/domain"
	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/log"
)

// Registerer is the minimal interface needed to register a user.
type Registerer interface {
	Register(ctx context.Context, email, password string) (domain.User, error)
}

// EmailVerifier confirms a verification code.
type EmailVerifier interface {
	Verify(ctx context.Context, email, code string) error
}

// LoginService exchanges credentials for a bearer token.
type LoginService interface {
	Login(ctx context.Context, email, password string) (auth.Token, error)
}

// Authenticator resolves a bearer token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.User, error)
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type verifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type tokenForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type messageResponse struct {
	Msg string `json:"msg"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type userResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// HandleRegister creates an unverified account and sends a code.
func HandleRegister(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if _, err := svc.Register(r.Context(), req.Email, req.Password); err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, messageResponse{Msg: "Verification code sent to your email"})
	}
}

// HandleVerify marks an account verified.
func HandleVerify(svc EmailVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := svc.Verify(r.Context(), req.Email, req.Code); err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Msg: "Email verified successfully"})
	}
}

// HandleToken implements the OAuth2 password form: username carries the email.
func HandleToken(svc LoginService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid form body")
			return
		}
		form := tokenForm{
			Username: r.PostForm.Get("username"),
			Password: r.PostForm.Get("password"),
		}
		if !validRequest(w, &form) {
			return
		}

		tok, err := svc.Login(r.Context(), form.Username, form.Password)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, tokenResponse{AccessToken: tok.AccessToken, TokenType: tok.TokenType})
	}
}

// HandleMe returns the authenticated user.
func HandleMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := userFromContext(r.Context())
		if !ok {
			writeUnauthorized(w)
			return
		}
		writeJSON(w, http.StatusOK, userResponse{
			ID:         u.ID,
			Email:      u.Email,
			IsVerified: u.IsVerified,
			CreatedAt:  u.CreatedAt.UTC(),
		})
	}
}

type userCtxKey struct{}

// RequireAuth rejects requests without a valid bearer token and stores the
// user in the request context.
func RequireAuth(svc Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.ExtractBearer(r)
			if token == "" {
				writeUnauthorized(w)
				return
			}
			u, err := svc.Authenticate(r.Context(), token)
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			ctx := context.WithValue(r.Context(), userCtxKey{}, u)
			ctx = log.ContextWithUserID(ctx, u.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func userFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(domain.User)
	return u, ok
}
