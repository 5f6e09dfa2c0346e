package realtime

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/thereayou/skillbridge/pkg/auth"
)

// Identity — личность, привязанная к соединению на все время его жизни
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Authenticator проверяет креденшл при рукопожатии. Использует тот же
// секрет и тот же черный список, что и REST-аутентификация.
type Authenticator struct {
	verifier  TokenVerifier
	blacklist auth.TokenBlacklist
}

func NewAuthenticator(verifier TokenVerifier, blacklist auth.TokenBlacklist) *Authenticator {
	return &Authenticator{verifier: verifier, blacklist: blacklist}
}

// Authenticate извлекает токен из запроса апгрейда и возвращает личность.
// Отказ здесь означает, что соединение не дошло ни до одной комнаты
// и никакого состояния не создано.
func (a *Authenticator) Authenticate(ctx context.Context, r *http.Request) (*Identity, error) {
	token := extractToken(r)
	if token == "" {
		return nil, ErrNoCredential
	}

	if a.blacklist != nil {
		blacklisted, err := a.blacklist.IsBlacklisted(ctx, token)
		if err != nil {
			log.Printf("blacklist check failed: %v", err)
			return nil, ErrInvalidCredential
		}
		if blacklisted {
			return nil, ErrInvalidCredential
		}
	}

	claims, err := a.verifier.Verify(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredCredential
		}
		return nil, ErrInvalidCredential
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidCredential
	}

	return &Identity{
		UserID: userID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

// extractToken ищет токен в порядке приоритета:
// явное поле auth > query-параметр token > заголовок Authorization
func extractToken(r *http.Request) string {
	if token := r.URL.Query().Get("auth"); token != "" {
		return token
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}

	hdr := r.Header.Get("Authorization")
	parts := strings.SplitN(hdr, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}

	return ""
}
