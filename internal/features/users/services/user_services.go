package users_services

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"opensourcetogether/internal/config"
	users_dto "opensourcetogether/internal/features/users/dto"
	users_interfaces "opensourcetogether/internal/features/users/interfaces"
	users_models "opensourcetogether/internal/features/users/models"
	users_repositories "opensourcetogether/internal/features/users/repositories"
	"opensourcetogether/internal/util/encryption"
	"opensourcetogether/internal/util/errs"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const sessionLifetime = 30 * 24 * time.Hour

var ErrGithubNotConnected = errs.New(http.StatusUnauthorized, errs.CodeGithubNotConnected, "GitHub account is not connected")

type UserService struct {
	userRepository        *users_repositories.UserRepository
	secretKeyRepository   *users_repositories.SecretKeyRepository
	credentialsRepository *users_repositories.CredentialsRepository
	// audit log is never nil, DI always set it
	auditLogWriter users_interfaces.AuditLogWriter

	cipherOnce sync.Once
	cipher     *encryption.TokenCipher
	cipherErr  error
}

func (s *UserService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

// SignInWithGithub upserts the user behind identity, stores the sealed access
// token and issues a session token.
func (s *UserService) SignInWithGithub(
	identity *users_dto.GithubIdentity,
	accessToken string,
	scope string,
) (*users_dto.SignInResponseDTO, error) {
	user, err := s.userRepository.UpsertByGithubID(&users_models.User{
		GithubID:  identity.ID,
		Login:     identity.Login,
		Name:      identity.Name,
		Email:     identity.Email,
		AvatarURL: identity.AvatarURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	if err := s.StoreGithubCredentials(user.ID, accessToken, scope); err != nil {
		return nil, err
	}

	response, err := s.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User signed in with GitHub: %s", user.Login),
		&user.ID,
		nil,
	)

	return response, nil
}

func (s *UserService) StoreGithubCredentials(userID uuid.UUID, accessToken string, scope string) error {
	cipher, err := s.getCipher()
	if err != nil {
		return err
	}

	sealed, err := cipher.Encrypt(accessToken)
	if err != nil {
		return fmt.Errorf("failed to encrypt access token: %w", err)
	}

	return s.credentialsRepository.Save(&users_models.UserGithubCredentials{
		UserID:               userID,
		EncryptedAccessToken: sealed,
		Scope:                scope,
		UpdatedAt:            time.Now().UTC(),
	})
}

// GetGithubAccessToken returns the decrypted token or ErrGithubNotConnected.
func (s *UserService) GetGithubAccessToken(userID uuid.UUID) (string, error) {
	credentials, err := s.credentialsRepository.GetByUserID(userID)
	if err != nil {
		return "", fmt.Errorf("failed to get github credentials: %w", err)
	}
	if credentials == nil {
		return "", ErrGithubNotConnected
	}

	cipher, err := s.getCipher()
	if err != nil {
		return "", err
	}

	token, err := cipher.Decrypt(credentials.EncryptedAccessToken)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt github credentials: %w", err)
	}

	return token, nil
}

func (s *UserService) SignOut(userID uuid.UUID) {
	s.auditLogWriter.WriteAuditLog("User signed out", &userID, nil)
}

func (s *UserService) GetUserFromToken(token string) (*users_models.User, error) {
	secretKey, err := s.secretKeyRepository.GetSecretKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret key: %w", err)
	}

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, errors.New("invalid token")
	}

	userIDStr, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("invalid token claims")
	}

	user, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	return user, nil
}

func (s *UserService) GenerateAccessToken(user *users_models.User) (*users_dto.SignInResponseDTO, error) {
	secretKey, err := s.secretKeyRepository.GetSecretKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret key: %w", err)
	}

	now := time.Now().UTC()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID.String(),
		"login": user.Login,
		"exp":   now.Add(sessionLifetime).Unix(),
		"iat":   now.Unix(),
	})

	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &users_dto.SignInResponseDTO{
		UserID: user.ID,
		Login:  user.Login,
		Email:  user.Email,
		Token:  tokenString,
	}, nil
}

func (s *UserService) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	user, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, errs.NotFound(errs.CodeUserNotFound, "User not found")
	}

	return user, nil
}

func (s *UserService) GetUsersByIDs(userIDs []uuid.UUID) (map[uuid.UUID]*users_models.User, error) {
	users, err := s.userRepository.GetUsersByIDs(userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	byID := make(map[uuid.UUID]*users_models.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}

	return byID, nil
}

func (s *UserService) getCipher() (*encryption.TokenCipher, error) {
	s.cipherOnce.Do(func() {
		s.cipher, s.cipherErr = encryption.NewTokenCipher(config.GetEnv().TokenEncryptionKey)
	})

	return s.cipher, s.cipherErr
}
