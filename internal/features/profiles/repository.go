package profiles

import (
	"errors"
	"time"

	"opensourcetogether/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepository struct{}

func (r *ProfileRepository) GetByUserID(userID uuid.UUID) (*Profile, error) {
	var profile Profile

	err := storage.GetDb().
		Preload("TechStacks", func(db *gorm.DB) *gorm.DB { return db.Order("tech_stacks.name ASC") }).
		Preload("SocialLinks").
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &profile, nil
}

// Upsert writes the profile and replaces its tech stacks and social links in
// one transaction.
func (r *ProfileRepository) Upsert(profile *Profile, techStackIDs []uuid.UUID, links []*SocialLink) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		var existing Profile
		err := tx.Select("id", "created_at").Where("user_id = ?", profile.UserID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			profile.ID = uuid.New()
			profile.CreatedAt = now
			profile.UpdatedAt = now
			if err := tx.Omit("TechStacks", "SocialLinks").Create(profile).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			profile.ID = existing.ID
			profile.CreatedAt = existing.CreatedAt
			profile.UpdatedAt = now
			err := tx.Model(&Profile{}).Where("id = ?", profile.ID).Updates(map[string]any{
				"bio":        profile.Bio,
				"job_title":  profile.JobTitle,
				"location":   profile.Location,
				"website":    profile.Website,
				"updated_at": now,
			}).Error
			if err != nil {
				return err
			}
		}

		if err := tx.Where("profile_id = ?", profile.ID).Delete(&ProfileTechStack{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", profile.ID).Delete(&SocialLink{}).Error; err != nil {
			return err
		}

		if len(techStackIDs) > 0 {
			rows := make([]ProfileTechStack, 0, len(techStackIDs))
			for _, id := range techStackIDs {
				rows = append(rows, ProfileTechStack{ProfileID: profile.ID, TechStackID: id})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}

		if len(links) > 0 {
			for _, link := range links {
				link.ID = uuid.New()
				link.ProfileID = profile.ID
			}
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
