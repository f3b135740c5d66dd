package db

import "gorm.io/gorm"

type Repositories struct {
	Users         *UserRepository
	Activities    *ActivityRepository
	Challenges    *ChallengeRepository
	Badges        *BadgeRepository
	Notifications *NotificationRepository
	Friends       *FriendRepository
	Events        *EventRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(database),
		Activities:    NewActivityRepository(database),
		Challenges:    NewChallengeRepository(database),
		Badges:        NewBadgeRepository(database),
		Notifications: NewNotificationRepository(database),
		Friends:       NewFriendRepository(database),
		Events:        NewEventRepository(database),
	}
}
