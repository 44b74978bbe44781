package user

import (
	"context"

	"petcare/domain/user"
)

func (s *ApplicationService) ListAddresses(ctx context.Context, userID string) ([]*AddressResponse, error) {
	addresses, err := s.addressRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*AddressResponse, len(addresses))
	for i, a := range addresses {
		out[i] = toAddressResponse(a)
	}
	return out, nil
}

// GetAddress 地址不属于当前用户时按不存在处理
func (s *ApplicationService) GetAddress(ctx context.Context, userID, addressID string) (*user.Address, error) {
	a, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, user.NewAddressNotFoundError()
	}
	return a, nil
}

// CreateAddress 第一个地址自动成为默认地址
func (s *ApplicationService) CreateAddress(ctx context.Context, userID string, req AddressRequest) (*AddressResponse, error) {
	in := toAddressInput(req)
	var a *user.Address
	err := s.uowFactory.New().Execute(ctx, func(ctx context.Context) error {
		existing, err := s.addressRepo.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(existing) == 0 {
			in.IsDefault = true
		}
		a, err = user.NewAddress(userID, in)
		if err != nil {
			return err
		}
		if a.IsDefault {
			if err := s.addressRepo.ClearDefault(ctx, userID); err != nil {
				return err
			}
		}
		return s.addressRepo.Save(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return toAddressResponse(a), nil
}

func (s *ApplicationService) UpdateAddress(ctx context.Context, userID, addressID string, req AddressRequest) (*AddressResponse, error) {
	var a *user.Address
	err := s.uowFactory.New().Execute(ctx, func(ctx context.Context) error {
		var err error
		a, err = s.GetAddress(ctx, userID, addressID)
		if err != nil {
			return err
		}
		in := toAddressInput(req)
		// 默认地址不能通过编辑取消，只能把别的地址设为默认
		in.IsDefault = in.IsDefault || a.IsDefault
		if err := a.Update(in); err != nil {
			return err
		}
		if a.IsDefault {
			if err := s.addressRepo.ClearDefault(ctx, userID); err != nil {
				return err
			}
		}
		return s.addressRepo.Save(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return toAddressResponse(a), nil
}

func (s *ApplicationService) SetDefaultAddress(ctx context.Context, userID, addressID string) error {
	return s.uowFactory.New().Execute(ctx, func(ctx context.Context) error {
		a, err := s.GetAddress(ctx, userID, addressID)
		if err != nil {
			return err
		}
		if err := s.addressRepo.ClearDefault(ctx, userID); err != nil {
			return err
		}
		a.IsDefault = true
		return s.addressRepo.Save(ctx, a)
	})
}

// DeleteAddress 删除默认地址时把最近更新的另一个地址提升为默认
func (s *ApplicationService) DeleteAddress(ctx context.Context, userID, addressID string) error {
	return s.uowFactory.New().Execute(ctx, func(ctx context.Context) error {
		a, err := s.GetAddress(ctx, userID, addressID)
		if err != nil {
			return err
		}
		if err := s.addressRepo.Delete(ctx, a.ID); err != nil {
			return err
		}
		if !a.IsDefault {
			return nil
		}
		rest, err := s.addressRepo.ListByUser(ctx, userID)
		if err != nil || len(rest) == 0 {
			return err
		}
		rest[0].IsDefault = true
		return s.addressRepo.Save(ctx, rest[0])
	})
}
