package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"tugas/internal/models"
	"tugas/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// TokenClaims is the verified identity carried by an access token.
type TokenClaims struct {
	UserID string
	Email  string
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 30 * time.Minute, // Token valid for 30 minutes
	}
}

// RegisterUser registers a new user, hashes their password, and saves
// them to the database. Fails with ErrEmailTaken if the email is
// already registered; the existing record is left untouched.
func (s *AuthService) RegisterUser(email, name, password string) (*models.User, error) {
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	// bcrypt generates a fresh salt per call, so hashing the same
	// password twice yields different hashes.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// LoginUser authenticates a user by email and password and returns a
// signed JWT on success. Unknown email and wrong password both yield
// ErrInvalidCredentials.
func (s *AuthService) LoginUser(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	// CompareHashAndPassword is constant-time and returns an error for
	// malformed hashes as well; all failures collapse to one outcome.
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.issueToken(user.ID, user.Email)
}

// issueToken signs a token carrying the user's id and email, expiring
// after the configured validity window.
func (s *AuthService) issueToken(userID, email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    userID,
		"email": email,
		"exp":   time.Now().Add(s.tokenDurat).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT, returning the identity it
// carries. Rejects tokens with a wrong signing method, a bad signature,
// a passed expiry, or missing id/email claims.
func (s *AuthService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	userID, _ := claims["id"].(string)
	email, _ := claims["email"].(string)
	if userID == "" || email == "" {
		return nil, fmt.Errorf("invalid token: missing identity claims")
	}

	return &TokenClaims{UserID: userID, Email: email}, nil
}
