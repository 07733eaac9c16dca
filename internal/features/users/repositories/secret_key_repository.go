package users_repositories

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	users_models "opensourcetogether/internal/features/users/models"
	"opensourcetogether/internal/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SecretKeyRepository keeps the JWT signing secret in the database so every
// instance signs with the same key. The first caller generates it.
type SecretKeyRepository struct {
	mu     sync.RWMutex
	secret string
}

func (r *SecretKeyRepository) GetSecretKey() (string, error) {
	r.mu.RLock()
	if r.secret != "" {
		defer r.mu.RUnlock()
		return r.secret, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.secret != "" {
		return r.secret, nil
	}

	secret, err := r.loadOrCreate()
	if err != nil {
		return "", err
	}

	r.secret = secret
	return secret, nil
}

func (r *SecretKeyRepository) loadOrCreate() (string, error) {
	var key users_models.SecretKey

	err := storage.GetDb().First(&key).Error
	if err == nil {
		return key.Secret, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to load secret key: %w", err)
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate secret key: %w", err)
	}

	// Another instance may insert concurrently; re-read after DO NOTHING.
	if err := storage.GetDb().
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&users_models.SecretKey{ID: 1, Secret: hex.EncodeToString(raw)}).Error; err != nil {
		return "", fmt.Errorf("failed to store secret key: %w", err)
	}

	if err := storage.GetDb().First(&key).Error; err != nil {
		return "", fmt.Errorf("failed to load secret key: %w", err)
	}

	return key.Secret, nil
}
