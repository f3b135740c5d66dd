package db

import (
	"time"

	"github.com/rowanvale/strive/internal/models"
	"gorm.io/gorm"
)

type FriendRepository struct {
	database *gorm.DB
}

func NewFriendRepository(database *gorm.DB) *FriendRepository {
	return &FriendRepository{database: database}
}

func (repo *FriendRepository) FindRequestBetween(userA uint, userB uint) (models.FriendRequest, bool, error) {
	var request models.FriendRequest
	result := repo.database.
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
			userA, userB, userB, userA).
		Where("status IN ?", []string{models.FriendRequestPending, models.FriendRequestAccepted}).
		Limit(1).
		Find(&request)
	if result.Error != nil {
		return models.FriendRequest{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.FriendRequest{}, false, nil
	}
	return request, true, nil
}

func (repo *FriendRepository) FindRequestByID(requestID uint) (models.FriendRequest, bool, error) {
	var request models.FriendRequest
	result := repo.database.Where("id = ?", requestID).Limit(1).Find(&request)
	if result.Error != nil {
		return models.FriendRequest{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.FriendRequest{}, false, nil
	}
	return request, true, nil
}

func (repo *FriendRepository) CreateRequest(request *models.FriendRequest) error {
	return repo.database.Create(request).Error
}

func (repo *FriendRepository) ListPendingForUser(userID uint) ([]models.FriendRequest, error) {
	requests := make([]models.FriendRequest, 0)
	if err := repo.database.
		Where("to_user_id = ? AND status = ?", userID, models.FriendRequestPending).
		Order("created_at DESC, id DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// AcceptRequest marks the request accepted and records the friendship in
// both directions, all in one transaction.
func (repo *FriendRepository) AcceptRequest(request *models.FriendRequest, respondedAt time.Time) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.FriendRequest{}).
			Where("id = ? AND status = ?", request.ID, models.FriendRequestPending).
			Updates(map[string]any{
				"status":       models.FriendRequestAccepted,
				"responded_at": respondedAt,
			}).Error; err != nil {
			return err
		}

		pair := []models.Friendship{
			{UserID: request.FromUserID, FriendID: request.ToUserID, CreatedAt: respondedAt},
			{UserID: request.ToUserID, FriendID: request.FromUserID, CreatedAt: respondedAt},
		}
		for index := range pair {
			if err := tx.Create(&pair[index]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (repo *FriendRepository) DeclineRequest(requestID uint, respondedAt time.Time) error {
	return repo.database.Model(&models.FriendRequest{}).
		Where("id = ? AND status = ?", requestID, models.FriendRequestPending).
		Updates(map[string]any{
			"status":       models.FriendRequestDeclined,
			"responded_at": respondedAt,
		}).Error
}

func (repo *FriendRepository) ListFriendIDs(userID uint) ([]uint, error) {
	ids := make([]uint, 0)
	if err := repo.database.Model(&models.Friendship{}).
		Where("user_id = ?", userID).
		Order("friend_id ASC").
		Pluck("friend_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (repo *FriendRepository) AreFriends(userID uint, friendID uint) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Friendship{}).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *FriendRepository) CreateFriendChallenge(challenge *models.FriendChallenge) error {
	return repo.database.Create(challenge).Error
}

func (repo *FriendRepository) FindFriendChallengeByID(challengeID uint) (models.FriendChallenge, bool, error) {
	var challenge models.FriendChallenge
	result := repo.database.Where("id = ?", challengeID).Limit(1).Find(&challenge)
	if result.Error != nil {
		return models.FriendChallenge{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.FriendChallenge{}, false, nil
	}
	return challenge, true, nil
}

func (repo *FriendRepository) ListFriendChallenges(userID uint) ([]models.FriendChallenge, error) {
	challenges := make([]models.FriendChallenge, 0)
	if err := repo.database.
		Where("creator_id = ? OR friend_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&challenges).Error; err != nil {
		return nil, err
	}
	return challenges, nil
}

func (repo *FriendRepository) SaveFriendChallenge(challenge *models.FriendChallenge) error {
	return repo.database.Save(challenge).Error
}
