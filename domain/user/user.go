/*
Package user holds accounts: end users with their wallet balance and
integral points, back-office admins and shipping addresses.

User is an aggregate root with private state. Balance, integral and the
social counters are changed with atomic repository updates rather than
through Save, so a stale aggregate never overwrites them.
*/
package user

import (
	"time"
	"unicode/utf8"

	"petcare/domain/shared"

	"github.com/google/uuid"
)

type User struct {
	shared.EventRecorder

	id             string
	username       string
	passwordHash   string
	nickname       string
	avatar         string
	phone          string
	gender         Gender
	bio            string
	openID         string
	balance        int64
	integral       int64
	isActive       bool
	followerCount  int
	followingCount int
	postCount      int
	version        int
	createdAt      time.Time
	updatedAt      time.Time

	isNew bool
}

// NewUser registers a user; passwordHash comes from HashPassword.
func NewUser(username, passwordHash, nickname string) (*User, error) {
	username, err := NormalizeUsername(username)
	if err != nil {
		return nil, err
	}
	if nickname == "" {
		nickname = username
	}
	if utf8.RuneCountInString(nickname) > 32 {
		return nil, ErrInvalidNickname
	}

	now := time.Now()
	u := &User{
		id:           uuid.New().String(),
		username:     username,
		passwordHash: passwordHash,
		nickname:     nickname,
		gender:       GenderUnknown,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
		isNew:        true,
	}
	u.Record(NewUserRegisteredEvent(u.id, u.username))
	return u, nil
}

// ProfileUpdate carries optional profile changes; nil fields are left alone.
type ProfileUpdate struct {
	Nickname *string
	Avatar   *string
	Phone    *string
	Gender   *Gender
	Bio      *string
}

func (u *User) UpdateProfile(p ProfileUpdate) error {
	if p.Nickname != nil {
		if *p.Nickname == "" || utf8.RuneCountInString(*p.Nickname) > 32 {
			return ErrInvalidNickname
		}
		u.nickname = *p.Nickname
	}
	if p.Phone != nil {
		if err := ValidatePhone(*p.Phone); err != nil {
			return err
		}
		u.phone = *p.Phone
	}
	if p.Gender != nil {
		if !p.Gender.IsValid() {
			return ErrInvalidGender
		}
		u.gender = *p.Gender
	}
	if p.Avatar != nil {
		u.avatar = *p.Avatar
	}
	if p.Bio != nil {
		u.bio = *p.Bio
	}
	u.touch()
	return nil
}

// ChangePassword requires the current password.
func (u *User) ChangePassword(oldPlain, newPlain string) error {
	if !CheckPassword(u.passwordHash, oldPlain) {
		return ErrWrongPassword
	}
	hash, err := HashPassword(newPlain)
	if err != nil {
		return err
	}
	u.passwordHash = hash
	u.touch()
	return nil
}

func (u *User) VerifyPassword(plain string) bool {
	return CheckPassword(u.passwordHash, plain)
}

func (u *User) BindOpenID(openID string) {
	u.openID = openID
	u.touch()
}

func (u *User) Activate() {
	u.isActive = true
	u.touch()
}

func (u *User) Deactivate() {
	u.isActive = false
	u.touch()
}

func (u *User) touch() {
	u.updatedAt = time.Now()
}

func (u *User) ID() string             { return u.id }
func (u *User) Username() string       { return u.username }
func (u *User) PasswordHash() string   { return u.passwordHash }
func (u *User) Nickname() string       { return u.nickname }
func (u *User) Avatar() string         { return u.avatar }
func (u *User) Phone() string          { return u.phone }
func (u *User) Gender() Gender         { return u.gender }
func (u *User) Bio() string            { return u.bio }
func (u *User) OpenID() string         { return u.openID }
func (u *User) Balance() int64         { return u.balance }
func (u *User) Integral() int64        { return u.integral }
func (u *User) IsActive() bool         { return u.isActive }
func (u *User) FollowerCount() int     { return u.followerCount }
func (u *User) FollowingCount() int    { return u.followingCount }
func (u *User) PostCount() int         { return u.postCount }
func (u *User) Version() int           { return u.version }
func (u *User) CreatedAt() time.Time   { return u.createdAt }
func (u *User) UpdatedAt() time.Time   { return u.updatedAt }
func (u *User) IsNew() bool            { return u.isNew }

// IncrementVersionForSave is called by the repository after an optimistic update.
func (u *User) IncrementVersionForSave() { u.version++ }

// ClearNewFlag is called by the repository once the row exists.
func (u *User) ClearNewFlag() { u.isNew = false }

type ReconstructionDTO struct {
	ID             string
	Username       string
	PasswordHash   string
	Nickname       string
	Avatar         string
	Phone          string
	Gender         string
	Bio            string
	OpenID         string
	Balance        int64
	Integral       int64
	IsActive       bool
	FollowerCount  int
	FollowingCount int
	PostCount      int
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func RebuildFromDTO(dto ReconstructionDTO) *User {
	return &User{
		id:             dto.ID,
		username:       dto.Username,
		passwordHash:   dto.PasswordHash,
		nickname:       dto.Nickname,
		avatar:         dto.Avatar,
		phone:          dto.Phone,
		gender:         Gender(dto.Gender),
		bio:            dto.Bio,
		openID:         dto.OpenID,
		balance:        dto.Balance,
		integral:       dto.Integral,
		isActive:       dto.IsActive,
		followerCount:  dto.FollowerCount,
		followingCount: dto.FollowingCount,
		postCount:      dto.PostCount,
		version:        dto.Version,
		createdAt:      dto.CreatedAt,
		updatedAt:      dto.UpdatedAt,
	}
}

var _ shared.AggregateRoot = (*User)(nil)
