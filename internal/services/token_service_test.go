package services

import (
	"testing"
	"time"

	"spendtrack/internal/config"
	"spendtrack/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// TokenServiceTestSuite defines the test suite for JWT handling
type TokenServiceTestSuite struct {
	suite.Suite
	jwtConfig *config.JWTConfig
	service   TokenServiceInterface
}

// SetupTest runs before each test
func (s *TokenServiceTestSuite) SetupTest() {
	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	s.jwtConfig = &config.JWTConfig{
		AccessTokenDuration: 15 * time.Minute,
		PrivateKey:          privateKey,
		PublicKey:           publicKey,
		Issuer:              "spendtrack-test",
	}
	s.service = NewTokenService(s.jwtConfig)
}

// TestTokenServiceSuite runs the test suite
func TestTokenServiceSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}

func (s *TokenServiceTestSuite) TestGenerateAndValidateRoundTrip() {
	token, expiresAt, err := s.service.GenerateAccessToken("owner@example.com")

	s.NoError(err)
	s.NotEmpty(token)
	s.WithinDuration(time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := s.service.ValidateAccessToken(token)

	s.NoError(err)
	s.Equal("owner@example.com", claims.Email)
	s.Equal("owner@example.com", claims.Subject)
	s.Equal("spendtrack-test", claims.Issuer)
	s.Equal(TokenTypeAccess, claims.TokenType)
	s.NotEmpty(claims.ID)
}

func (s *TokenServiceTestSuite) TestGenerateAccessToken_EmptyEmail() {
	token, _, err := s.service.GenerateAccessToken("")

	s.Error(err)
	s.Empty(token)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_Empty() {
	claims, err := s.service.ValidateAccessToken("")

	s.ErrorIs(err, ErrEmptyToken)
	s.Nil(claims)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_Garbage() {
	claims, err := s.service.ValidateAccessToken("not.a.jwt")

	s.ErrorIs(err, ErrInvalidToken)
	s.Nil(claims)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_Expired() {
	expiredConfig := *s.jwtConfig
	expiredConfig.AccessTokenDuration = -time.Minute
	expired := NewTokenService(&expiredConfig)

	token, _, err := expired.GenerateAccessToken("owner@example.com")
	s.Require().NoError(err)

	claims, err := s.service.ValidateAccessToken(token)

	s.ErrorIs(err, ErrExpiredToken)
	s.Nil(claims)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_WrongIssuer() {
	otherConfig := *s.jwtConfig
	otherConfig.Issuer = "someone-else"
	other := NewTokenService(&otherConfig)

	token, _, err := other.GenerateAccessToken("owner@example.com")
	s.Require().NoError(err)

	claims, err := s.service.ValidateAccessToken(token)

	s.ErrorIs(err, ErrInvalidIssuer)
	s.Nil(claims)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_WrongKey() {
	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	otherConfig := *s.jwtConfig
	otherConfig.PrivateKey = privateKey
	otherConfig.PublicKey = publicKey
	other := NewTokenService(&otherConfig)

	token, _, err := other.GenerateAccessToken("owner@example.com")
	s.Require().NoError(err)

	claims, err := s.service.ValidateAccessToken(token)

	s.ErrorIs(err, ErrInvalidToken)
	s.Nil(claims)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_WrongTokenType() {
	now := time.Now()
	claims := models.OwnerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.jwtConfig.Issuer,
			Subject:   "owner@example.com",
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Email:     "owner@example.com",
		TokenType: "refresh",
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.jwtConfig.PrivateKey)
	s.Require().NoError(err)

	parsed, err := s.service.ValidateAccessToken(signed)

	s.ErrorIs(err, ErrInvalidTokenType)
	s.Nil(parsed)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_RejectsHMAC() {
	now := time.Now()
	claims := models.OwnerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.jwtConfig.Issuer,
			Subject:   "owner@example.com",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Email:     "owner@example.com",
		TokenType: TokenTypeAccess,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("shared-secret"))
	s.Require().NoError(err)

	parsed, err := s.service.ValidateAccessToken(signed)

	s.ErrorIs(err, ErrInvalidToken)
	s.Nil(parsed)
}

func (s *TokenServiceTestSuite) TestExtractTokenFromHeader() {
	cases := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"standard bearer", "Bearer abc123", "abc123", false},
		{"lowercase scheme", "bearer abc123", "abc123", false},
		{"empty header", "", "", true},
		{"wrong scheme", "Token abc123", "", true},
		{"bearer with no token", "Bearer ", "", true},
	}
	for _, tc := range cases {
		token, err := s.service.ExtractTokenFromHeader(tc.header)
		if tc.wantErr {
			s.ErrorIs(err, ErrInvalidAuthHeader, tc.name)
		} else {
			s.NoError(err, tc.name)
			s.Equal(tc.want, token, tc.name)
		}
	}
}
