package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

const (
	msgMissingToken = "требуется авторизация"
	msgInvalidToken = "недействительный токен"
)

type identityKey struct{}

// Claims токен провайдера идентификации: sub - id пользователя, email и name - профиль
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// AuthConfig параметры проверки токена
type AuthConfig struct {
	Secret   string
	Issuer   string
	Audience string
}

// Authenticator проверяет Bearer токен и кладет личность вызывающего в контекст
type Authenticator struct {
	secret []byte
	parser *jwt.Parser
	logger Logger
}

// NewAuthenticator создает middleware аутентификации (HS256)
func NewAuthenticator(cfg AuthConfig, logger Logger) *Authenticator {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	return &Authenticator{
		secret: []byte(cfg.Secret),
		parser: jwt.NewParser(opts...),
		logger: logger,
	}
}

// Auth отклоняет запросы без действительного токена (401)
func (a *Authenticator) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			handlers.RespondUnauthorized(w, msgMissingToken)
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			handlers.RespondUnauthorized(w, msgInvalidToken)
			return
		}

		identity, err := a.Verify(strings.TrimSpace(token))
		if err != nil {
			a.logger.Warn("%s %s - Invalid token: %v", r.Method, r.URL.Path, err)
			handlers.RespondUnauthorized(w, msgInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// Verify проверяет подпись и срок действия токена и возвращает личность
func (a *Authenticator) Verify(token string) (domain.Identity, error) {
	claims := &Claims{}
	parsed, err := a.parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	})
	if err != nil {
		return domain.Identity{}, err
	}
	if !parsed.Valid {
		return domain.Identity{}, errors.New("token is not valid")
	}
	if claims.Subject == "" {
		return domain.Identity{}, errors.New("token has no subject")
	}

	return domain.Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}

// WithIdentity кладет личность вызывающего в контекст
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity извлекает личность вызывающего из контекста
func GetIdentity(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(domain.Identity)
	if !ok || identity.UserID == "" {
		return domain.Identity{}, false
	}
	return identity, true
}
