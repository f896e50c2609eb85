package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "focusband/companion/internal/errors"
	"focusband/companion/internal/model"
	"focusband/companion/internal/repository"
)

// PairingService registers sender devices and exchanges their shared secret
// for a bearer token used on every summary push.
type PairingService struct {
	devices   *repository.DeviceRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewPairingService(devices *repository.DeviceRepository, jwtSecret string, tokenTTL time.Duration) *PairingService {
	return &PairingService{
		devices:   devices,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

type PairResult struct {
	Token  string       `json:"token"`
	Device model.Device `json:"device"`
}

func (s *PairingService) Register(ctx context.Context, name, secret string) (*model.Device, *apperrors.APIError) {
	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" {
		return nil, apperrors.BadRequest("invalid_name", "device name is required")
	}
	if len(secret) < 6 {
		return nil, apperrors.BadRequest("invalid_secret", "secret must be at least 6 characters")
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("failed to secure device secret")
	}

	device := model.Device{
		ID:         uuid.NewString(),
		Name:       trimmedName,
		SecretHash: string(hashBytes),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.devices.Create(ctx, &device); err != nil {
		return nil, apperrors.Internal("failed to register device")
	}

	device.SecretHash = ""
	return &device, nil
}

func (s *PairingService) Pair(ctx context.Context, deviceID, secret string) (*PairResult, *apperrors.APIError) {
	if deviceID == "" || secret == "" {
		return nil, apperrors.BadRequest("invalid_credentials", "deviceId and secret are required")
	}

	device, err := s.devices.GetByID(ctx, deviceID)
	if err == repository.ErrNotFound {
		return nil, apperrors.Unauthorized("unknown device or wrong secret")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to query device")
	}

	if bcrypt.CompareHashAndPassword([]byte(device.SecretHash), []byte(secret)) != nil {
		return nil, apperrors.Unauthorized("unknown device or wrong secret")
	}

	token, apiErr := s.issueToken(device.ID)
	if apiErr != nil {
		return nil, apiErr
	}

	device.SecretHash = ""
	return &PairResult{Token: token, Device: *device}, nil
}

func (s *PairingService) ParseToken(tokenString string) (string, *apperrors.APIError) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", apperrors.Unauthorized("invalid token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", apperrors.Unauthorized("invalid token")
	}
	return claims.Subject, nil
}

func (s *PairingService) issueToken(deviceID string) (string, *apperrors.APIError) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   deviceID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperrors.Internal("failed to sign token")
	}
	return signed, nil
}
