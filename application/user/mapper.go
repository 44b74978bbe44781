package user

import (
	"petcare/domain/user"
)

func toProfileResponse(u *user.User) *ProfileResponse {
	return &ProfileResponse{
		ID:             u.ID(),
		Username:       u.Username(),
		Nickname:       u.Nickname(),
		Avatar:         u.Avatar(),
		Phone:          u.Phone(),
		Gender:         string(u.Gender()),
		Bio:            u.Bio(),
		OpenIDBound:    u.OpenID() != "",
		Balance:        u.Balance(),
		Integral:       u.Integral(),
		IsActive:       u.IsActive(),
		FollowerCount:  u.FollowerCount(),
		FollowingCount: u.FollowingCount(),
		PostCount:      u.PostCount(),
		CreatedAt:      u.CreatedAt(),
	}
}

func toPublicProfileResponse(u *user.User) *PublicProfileResponse {
	return &PublicProfileResponse{
		ID:             u.ID(),
		Nickname:       u.Nickname(),
		Avatar:         u.Avatar(),
		Gender:         string(u.Gender()),
		Bio:            u.Bio(),
		FollowerCount:  u.FollowerCount(),
		FollowingCount: u.FollowingCount(),
		PostCount:      u.PostCount(),
	}
}

func toAdminResponse(a *user.Admin) *AdminResponse {
	return &AdminResponse{
		ID:        a.ID,
		Username:  a.Username,
		Name:      a.Name,
		IsSuper:   a.IsSuper,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
	}
}

func toAddressResponse(a *user.Address) *AddressResponse {
	return &AddressResponse{
		ID:        a.ID,
		Receiver:  a.Receiver,
		Phone:     a.Phone,
		Province:  a.Province,
		City:      a.City,
		District:  a.District,
		Detail:    a.Detail,
		IsDefault: a.IsDefault,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toAddressInput(req AddressRequest) user.AddressInput {
	return user.AddressInput{
		Receiver:  req.Receiver,
		Phone:     req.Phone,
		Province:  req.Province,
		City:      req.City,
		District:  req.District,
		Detail:    req.Detail,
		IsDefault: req.IsDefault,
	}
}

func toProfileUpdate(req UpdateProfileRequest) user.ProfileUpdate {
	update := user.ProfileUpdate{
		Nickname: req.Nickname,
		Avatar:   req.Avatar,
		Phone:    req.Phone,
		Bio:      req.Bio,
	}
	if req.Gender != nil {
		g := user.Gender(*req.Gender)
		update.Gender = &g
	}
	return update
}
