package users_testing

import (
	"fmt"
	"math/rand/v2"

	users_dto "opensourcetogether/internal/features/users/dto"
	users_models "opensourcetogether/internal/features/users/models"
	users_repositories "opensourcetogether/internal/features/users/repositories"
	users_services "opensourcetogether/internal/features/users/services"

	"github.com/google/uuid"
)

// CreateTestUser inserts a user with a random GitHub identity and returns a
// session for it. The user has no stored GitHub token.
func CreateTestUser() *users_dto.SignInResponseDTO {
	userID := uuid.New()
	login := fmt.Sprintf("test-user-%s", userID.String()[:8])

	user := &users_models.User{
		ID:        userID,
		GithubID:  rand.Int64N(1 << 40),
		Login:     login,
		Name:      "Test " + login,
		Email:     login + "@test.com",
		AvatarURL: "https://avatars.githubusercontent.com/u/1",
	}

	userRepository := &users_repositories.UserRepository{}
	if err := userRepository.CreateUser(user); err != nil {
		panic(err)
	}

	response, err := users_services.GetUserService().GenerateAccessToken(user)
	if err != nil {
		panic(err)
	}

	return response
}

// CreateTestUserWithGithubToken is CreateTestUser plus stored GitHub credentials.
func CreateTestUserWithGithubToken(accessToken string) *users_dto.SignInResponseDTO {
	response := CreateTestUser()

	err := users_services.GetUserService().StoreGithubCredentials(response.UserID, accessToken, "public_repo")
	if err != nil {
		panic(err)
	}

	return response
}
