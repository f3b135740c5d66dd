package db

import (
	"github.com/rowanvale/strive/internal/models"
	"gorm.io/gorm"
)

type ChallengeRepository struct {
	database *gorm.DB
}

func NewChallengeRepository(database *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{database: database}
}

func (repo *ChallengeRepository) ListCatalog() ([]models.Challenge, error) {
	challenges := make([]models.Challenge, 0)
	if err := repo.database.Order("id ASC").Find(&challenges).Error; err != nil {
		return nil, err
	}
	return challenges, nil
}

func (repo *ChallengeRepository) FindCatalogByID(challengeID uint) (models.Challenge, bool, error) {
	var challenge models.Challenge
	result := repo.database.Where("id = ?", challengeID).Limit(1).Find(&challenge)
	if result.Error != nil {
		return models.Challenge{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Challenge{}, false, nil
	}
	return challenge, true, nil
}

func (repo *ChallengeRepository) ListForUser(userID uint) ([]models.UserChallenge, error) {
	entries := make([]models.UserChallenge, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *ChallengeRepository) FindParticipation(userID uint, challengeID uint) (models.UserChallenge, bool, error) {
	var entry models.UserChallenge
	result := repo.database.
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.UserChallenge{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.UserChallenge{}, false, nil
	}
	return entry, true, nil
}

func (repo *ChallengeRepository) CreateParticipation(entry *models.UserChallenge) error {
	return repo.database.Create(entry).Error
}
