package app

import (
	"errors"
	"fmt"
	"time"

	"bridge/internal/domain"

	"github.com/form3tech-oss/jwt-go"
)

var ErrInvalidReceipt = errors.New("invalid receipt")

// ReceiptService signs scored boards and verifies the signed receipts.
type ReceiptService struct {
	secret string
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewReceiptService(secret, issuer string, ttl time.Duration) *ReceiptService {
	return &ReceiptService{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Receipt is the verified content of a signed result.
type Receipt struct {
	ID            string
	Board         domain.BoardNumber
	Vulnerability domain.Vulnerability
	Result        string
	Score         int
	ExpiresAt     time.Time
}

func (s *ReceiptService) Sign(scored domain.ScoredBoard) (string, error) {
	if s == nil {
		return "", fmt.Errorf("receipt service is nil")
	}
	if s.secret == "" || s.issuer == "" {
		return "", fmt.Errorf("receipt config is incomplete")
	}
	if scored.ID == "" {
		return "", fmt.Errorf("scored board has no id")
	}

	now := s.now()
	claims := jwt.MapClaims{
		"iss":    s.issuer,
		"sub":    fmt.Sprintf("board-%d", scored.Board),
		"jti":    scored.ID,
		"iat":    now.Unix(),
		"exp":    now.Add(s.ttl).Unix(),
		"board":  int64(scored.Board),
		"vul":    scored.Vulnerability.String(),
		"result": scored.Result().String(),
		"score":  scored.Score,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// Verify checks the signature, issuer and expiry of a receipt and returns its content.
func (s *ReceiptService) Verify(tokenString string) (Receipt, error) {
	if s == nil {
		return Receipt{}, fmt.Errorf("receipt service is nil")
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: %v", ErrInvalidReceipt, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Receipt{}, ErrInvalidReceipt
	}
	if !claims.VerifyIssuer(s.issuer, true) {
		return Receipt{}, fmt.Errorf("%w: issuer mismatch", ErrInvalidReceipt)
	}

	board, _ := claims["board"].(float64)
	score, _ := claims["score"].(float64)
	exp, _ := claims["exp"].(float64)
	id, _ := claims["jti"].(string)
	result, _ := claims["result"].(string)
	vulText, _ := claims["vul"].(string)
	vul, err := domain.ParseVulnerability(vulText)
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: %v", ErrInvalidReceipt, err)
	}

	return Receipt{
		ID:            id,
		Board:         domain.BoardNumber(board),
		Vulnerability: vul,
		Result:        result,
		Score:         int(score),
		ExpiresAt:     time.Unix(int64(exp), 0),
	}, nil
}
