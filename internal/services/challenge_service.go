package services

import (
	"errors"
	"time"

	"github.com/rowanvale/strive/internal/models"
)

var ErrChallengeNotFound = errors.New("challenge not found")

type ChallengeStore interface {
	ListCatalog() ([]models.Challenge, error)
	FindCatalogByID(challengeID uint) (models.Challenge, bool, error)
	ListForUser(userID uint) ([]models.UserChallenge, error)
	FindParticipation(userID uint, challengeID uint) (models.UserChallenge, bool, error)
	CreateParticipation(entry *models.UserChallenge) error
}

type ChallengeService struct {
	challenges ChallengeStore
}

func NewChallengeService(challenges ChallengeStore) *ChallengeService {
	return &ChallengeService{challenges: challenges}
}

// Join is idempotent: joining a challenge the user already participates in
// returns the existing participation.
func (service *ChallengeService) Join(userID uint, challengeID uint, now time.Time) (models.UserChallenge, error) {
	_, found, err := service.challenges.FindCatalogByID(challengeID)
	if err != nil {
		return models.UserChallenge{}, err
	}
	if !found {
		return models.UserChallenge{}, ErrChallengeNotFound
	}

	existing, joined, err := service.challenges.FindParticipation(userID, challengeID)
	if err != nil {
		return models.UserChallenge{}, err
	}
	if joined {
		return existing, nil
	}

	participation := models.UserChallenge{
		UserID:      userID,
		ChallengeID: challengeID,
		Status:      models.ChallengeInProgress,
		JoinedAt:    now,
	}
	if err := service.challenges.CreateParticipation(&participation); err != nil {
		return models.UserChallenge{}, err
	}
	return participation, nil
}

type ChallengeView struct {
	Challenge     models.Challenge
	Joined        bool
	Participation models.UserChallenge
}

func (service *ChallengeService) ListWithProgress(userID uint) ([]ChallengeView, error) {
	catalog, err := service.challenges.ListCatalog()
	if err != nil {
		return nil, err
	}
	participations, err := service.challenges.ListForUser(userID)
	if err != nil {
		return nil, err
	}

	byChallengeID := make(map[uint]models.UserChallenge, len(participations))
	for _, participation := range participations {
		byChallengeID[participation.ChallengeID] = participation
	}

	views := make([]ChallengeView, 0, len(catalog))
	for _, challenge := range catalog {
		view := ChallengeView{Challenge: challenge}
		if participation, joined := byChallengeID[challenge.ID]; joined {
			view.Joined = true
			view.Participation = participation
		}
		views = append(views, view)
	}
	return views, nil
}
