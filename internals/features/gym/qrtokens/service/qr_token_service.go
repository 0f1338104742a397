// file: internals/features/gym/qrtokens/service/qr_token_service.go
package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const tokenType = "class_qr"

var (
	ErrTokenInvalid = errors.New("QR token tidak valid")
	ErrTokenExpired = errors.New("QR token sudah kedaluwarsa")
)

// VerifyResult mengikuti kontrak verify(token) → {valid, classId, error}.
type VerifyResult struct {
	Valid   bool
	ClassID uuid.UUID
	Reason  string
}

// Service menerbitkan & memverifikasi QR token kelas: JWT HS256 berumur
// pendek yang trainer tampilkan di layar, peserta scan untuk check-in.
type Service struct {
	Secret string
	TTL    time.Duration
}

func New(secret string) *Service {
	return &Service{Secret: secret, TTL: 15 * time.Minute}
}

type classQRClaims struct {
	Type    string `json:"typ"`
	ClassID string `json:"class_id"`
	jwt.RegisteredClaims
}

// Issue membuat token QR untuk satu kelas.
func (s *Service) Issue(classID uuid.UUID) (string, time.Time, error) {
	if strings.TrimSpace(s.Secret) == "" {
		return "", time.Time{}, errors.New("QR_TOKEN_SECRET belum diset")
	}

	expiresAt := time.Now().Add(s.TTL)
	claims := classQRClaims{
		Type:    tokenType,
		ClassID: classID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify memeriksa signature, umur, dan tipe token lalu mengembalikan
// kelas yang di-encode. Tidak pernah error teknis: hasil selalu berupa
// VerifyResult dengan alasan yang bisa ditampilkan.
func (s *Service) Verify(tokenString string) VerifyResult {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return VerifyResult{Reason: "token kosong"}
	}

	claims := &classQRClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(s.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return VerifyResult{Reason: ErrTokenExpired.Error()}
		}
		return VerifyResult{Reason: ErrTokenInvalid.Error()}
	}

	if claims.Type != tokenType {
		return VerifyResult{Reason: "tipe token bukan class_qr"}
	}

	classID, err := uuid.Parse(claims.ClassID)
	if err != nil || classID == uuid.Nil {
		return VerifyResult{Reason: "class_id pada token tidak valid"}
	}

	return VerifyResult{Valid: true, ClassID: classID}
}
