package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/Vikramop/task-mangement-app/models"
	"github.com/Vikramop/task-mangement-app/store"
)

// AuthService handles signup, login, profile updates and the bearer-token
// contract. Tokens are HS256 and carry the user id as their only claim.
type AuthService struct {
	users  UserStore
	secret []byte
}

func NewAuthService(users UserStore, secret string) *AuthService {
	return &AuthService{users: users, secret: []byte(secret)}
}

func (s *AuthService) Signup(ctx context.Context, name, email, password, confirmPassword string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" || email == "" || password == "" || confirmPassword == "" {
		return nil, "", ValidationError("please enter all the fields")
	}
	if password != confirmPassword {
		return nil, "", ValidationError("passwords are not matching")
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, "", ConflictError("user already exists")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return sanitize(user), token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, "", NotFoundError("user not found, please register")
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", AuthError("password do not match")
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return sanitize(user), token, nil
}

// UpdateProfileInput carries the optional profile fields; empty strings mean
// "leave unchanged".
type UpdateProfileInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, in UpdateProfileInput) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, NotFoundError("user not found")
	}
	if err != nil {
		return nil, err
	}

	in.Email = strings.TrimSpace(in.Email)
	if in.Email != "" && in.Email != user.Email {
		_, err := s.users.FindByEmail(ctx, in.Email)
		if err == nil {
			return nil, ConflictError("email already in use")
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	if in.NewPassword != "" || in.OldPassword != "" {
		if in.OldPassword == "" {
			return nil, ValidationError("old password is required to change the password")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.OldPassword)); err != nil {
			return nil, AuthError("old password is incorrect")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = name
	}
	if in.Email != "" {
		user.Email = in.Email
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return sanitize(user), nil
}

func (s *AuthService) GetCurrentUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, NotFoundError("user not found")
	}
	if err != nil {
		return nil, err
	}
	return sanitize(user), nil
}

// IssueToken signs a token whose only claim is the user id. No expiry is set;
// tokens stay valid until the signing secret rotates.
func (s *AuthService) IssueToken(userID primitive.ObjectID) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"_id": userID.Hex(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks the signature and returns the embedded user id.
func (s *AuthService) VerifyToken(tokenString string) (primitive.ObjectID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return primitive.NilObjectID, AuthError("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return primitive.NilObjectID, AuthError("invalid token claims")
	}
	hex, ok := claims["_id"].(string)
	if !ok {
		return primitive.NilObjectID, AuthError("user id not found in token")
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, AuthError("invalid user id in token")
	}
	return id, nil
}

func sanitize(user *models.User) *models.User {
	u := *user
	u.Password = ""
	return &u
}
