package crypto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/manolaz/mosaic/internal/config"
	"github.com/manolaz/mosaic/internal/domain/models"
	"github.com/manolaz/mosaic/internal/domain/service"
	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/errors"
)

// CheckInManager issues and verifies HS256 check-in tokens. The compact token
// string is what gets rendered as a QR code at the door.
type CheckInManager struct {
	secret []byte
	ttl    time.Duration
}

// NewCheckInManager creates a CheckInManager from configuration.
func NewCheckInManager(cfg *config.CheckInConfig) (*CheckInManager, error) {
	if cfg.Secret == "" {
		return nil, errors.New(constants.ErrCodeInvalidRequest, "check_in.secret is required")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = constants.DefaultCheckInTokenTTL
	}
	return &CheckInManager{secret: []byte(cfg.Secret), ttl: ttl}, nil
}

// IssueToken signs a short-lived token binding ticket, event, and holder.
func (m *CheckInManager) IssueToken(ticketID, eventID, holder string) (string, error) {
	now := time.Now()
	claims := models.CheckInClaims{
		TicketID: ticketID,
		EventID:  eventID,
		Holder:   holder,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    constants.ServiceName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", errors.Wrap(err, constants.ErrCodeCheckIn, "failed to sign check-in token")
	}
	return token, nil
}

// VerifyToken parses and validates a check-in token.
func (m *CheckInManager) VerifyToken(token string) (*models.CheckInClaims, error) {
	claims := &models.CheckInClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Newf(constants.ErrCodeCheckIn, "unexpected signing method %s", t.Method.Alg())
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, constants.ErrCodeCheckIn, "invalid check-in token")
	}
	if !parsed.Valid {
		return nil, errors.New(constants.ErrCodeCheckIn, "invalid check-in token")
	}
	return claims, nil
}

var _ service.CheckInService = (*CheckInManager)(nil)
