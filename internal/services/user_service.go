package services

import (
	"context"
	"errors"
	"time"

	"cardbinder/internal/models"
	"cardbinder/internal/repositories"
	"cardbinder/internal/utils"

	"github.com/google/uuid"
)

type UserService struct {
	userRepo  *repositories.UserRepository
	redisRepo *repositories.RedisRepository
}

func NewUserService(userRepo *repositories.UserRepository, redisRepo *repositories.RedisRepository) *UserService {
	return &UserService{
		userRepo:  userRepo,
		redisRepo: redisRepo,
	}
}

func (s *UserService) Register(user *models.User) (string, string, error) {
	// 1. Reject duplicate emails
	existing, _ := s.userRepo.FindUserByEmail(user.Email)
	if existing != nil {
		return "", "", errors.New("user already exists")
	}

	// 2. Hash password before saving
	hashedPassword, err := utils.Hash(user.Password)
	if err != nil {
		return "", "", err
	}
	user.PasswordHash = string(hashedPassword)
	user.Password = ""

	// 3. Policy: first user becomes admin
	userCount, err := s.userRepo.CountUsers()
	if err != nil {
		return "", "", err
	}
	if userCount == 0 {
		user.Role = "admin"
	} else if user.Role == "" {
		user.Role = "user"
	}

	if err := s.userRepo.Create(user); err != nil {
		return "", "", err
	}

	return s.issueTokens(user.ID)
}

func (s *UserService) Login(email, password string) (string, string, error) {
	user, err := s.userRepo.FindUserByEmail(email)
	if err != nil || user == nil {
		return "", "", errors.New("user not found")
	}

	if err := utils.VerifyPassword(user.PasswordHash, password); err != nil {
		return "", "", errors.New("invalid password")
	}

	if err := s.userRepo.TouchLastLogin(user.ID); err != nil {
		return "", "", err
	}

	return s.issueTokens(user.ID)
}

func (s *UserService) issueTokens(userID uuid.UUID) (string, string, error) {
	accessToken, refreshToken, jti, err := utils.GenerateTokens(userID)
	if err != nil {
		return "", "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.redisRepo.StoreSession(ctx, jti, userID.String()); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (s *UserService) Logout(jti string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.redisRepo.Blacklist(ctx, jti); err != nil {
		return err
	}
	return s.redisRepo.DeleteSession(ctx, jti)
}

// Refresh validates a refresh token against its Redis session and
// issues a fresh pair, rotating the session.
func (s *UserService) Refresh(refreshToken string) (string, string, error) {
	claims, err := utils.VerifyJWT(refreshToken, utils.RefreshTokenSecret)
	if err != nil {
		return "", "", errors.New("invalid refresh token")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	blacklisted, err := s.redisRepo.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return "", "", err
	}
	if blacklisted {
		return "", "", errors.New("refresh token revoked")
	}

	storedUser, err := s.redisRepo.SessionUser(ctx, claims.ID)
	if err != nil {
		return "", "", err
	}
	if storedUser == "" || storedUser != claims.Subject {
		return "", "", errors.New("refresh token not found")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return "", "", errors.New("invalid refresh token")
	}

	// Rotation: the old session dies with the old jti.
	if err := s.redisRepo.DeleteSession(ctx, claims.ID); err != nil {
		return "", "", err
	}

	return s.issueTokens(userID)
}

func (s *UserService) GetUser(userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	user.PasswordHash = ""
	return user, nil
}

// UpdateUserRequest is the PATCH body for user updates.
type UpdateUserRequest struct {
	Email *string `json:"email,omitempty"`
	Role  *string `json:"role,omitempty"`
}

func (s *UserService) UpdateUser(userID, authenticatedUserID uuid.UUID, req UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	authenticatedUser, err := s.userRepo.FindUserByID(authenticatedUserID)
	if err != nil {
		return nil, err
	}
	if authenticatedUser == nil {
		return nil, errors.New("authenticated user not found")
	}

	if req.Role != nil && *req.Role != user.Role {
		if authenticatedUser.Role != "admin" {
			return nil, errors.New("only admins can change user roles")
		}
		if authenticatedUserID == userID && *req.Role != "admin" {
			return nil, errors.New("admin cannot demote themselves")
		}
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *UserService) GetAllUsers() ([]models.User, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}
