package mysql

import (
	"context"
	"errors"

	"petcare/domain/shared"
	"petcare/domain/user"
	"petcare/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type UserRepository struct {
	baseRepository
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{baseRepository{db: db}}
}

// Save writes profile columns under the optimistic lock. Balance, integral
// and counters are never written here.
func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		return r.saveWithTx(tx, u)
	})
}

func (r *UserRepository) saveWithTx(tx *gorm.DB, u *user.User) error {
	userPO := po.FromUserDomain(u)

	if u.IsNew() {
		if err := tx.Create(userPO).Error; err != nil {
			if isDuplicateKeyError(err) {
				return user.NewUsernameTakenError(userPO.Username)
			}
			return err
		}
	} else {
		expectedVersion := u.Version()

		// 严格乐观锁：必须使用聚合当前版本作为更新条件，避免静默覆盖并发写入。
		result := tx.Model(&po.UserPO{}).
			Where("id = ? AND version = ?", u.ID(), expectedVersion).
			Updates(map[string]interface{}{
				"password_hash": userPO.PasswordHash,
				"nickname":      userPO.Nickname,
				"avatar":        userPO.Avatar,
				"phone":         userPO.Phone,
				"gender":        userPO.Gender,
				"bio":           userPO.Bio,
				"open_id":       userPO.OpenID,
				"is_active":     userPO.IsActive,
				"version":       expectedVersion + 1,
				"updated_at":    userPO.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&po.UserPO{}).Where("id = ?", u.ID()).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return user.NewUserNotFoundError()
			}
			return shared.NewConcurrentModificationError("user")
		}

		u.IncrementVersionForSave()
	}
	u.ClearNewFlag()
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	userPO, err := first[po.UserPO](r.getDB(ctx).Where("id = ?", id), "user")
	if err != nil {
		return nil, err
	}
	return userPO.ToDomain(), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	userPO, err := first[po.UserPO](r.getDB(ctx).Where("username = ?", username), "user")
	if err != nil {
		return nil, err
	}
	return userPO.ToDomain(), nil
}

func (r *UserRepository) List(ctx context.Context, filter user.ListFilter, page shared.PageQuery) ([]*user.User, int64, error) {
	query := r.getDB(ctx).Model(&po.UserPO{})
	if filter.Keyword != "" {
		like := likePattern(filter.Keyword)
		query = query.Where("username LIKE ? OR nickname LIKE ? OR phone LIKE ?", like, like, like)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	rows, total, err := paginate[po.UserPO](query, page, "created_at DESC")
	if err != nil {
		return nil, 0, err
	}
	users := make([]*user.User, len(rows))
	for i := range rows {
		users[i] = rows[i].ToDomain()
	}
	return users, total, nil
}

func (r *UserRepository) AdjustBalance(ctx context.Context, id string, delta int64) (int64, error) {
	return r.adjustFunds(ctx, id, "balance", delta, user.NewInsufficientBalanceError)
}

func (r *UserRepository) AdjustIntegral(ctx context.Context, id string, delta int64) (int64, error) {
	return r.adjustFunds(ctx, id, "integral", delta, user.NewInsufficientIntegralError)
}

// adjustFunds applies delta in one conditional UPDATE so concurrent spends
// cannot overdraw, then reads the new value back.
func (r *UserRepository) adjustFunds(ctx context.Context, id, column string, delta int64, insufficient func() error) (int64, error) {
	var after int64
	err := r.inTx(ctx, func(tx *gorm.DB) error {
		result := tx.Model(&po.UserPO{}).
			Where("id = ? AND "+column+" + ? >= 0", id, delta).
			UpdateColumn(column, gorm.Expr(column+" + ?", delta))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&po.UserPO{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return user.NewUserNotFoundError()
			}
			return insufficient()
		}
		return tx.Model(&po.UserPO{}).Where("id = ?", id).Select(column).Scan(&after).Error
	})
	return after, err
}

func (r *UserRepository) AdjustCounter(ctx context.Context, id string, counter user.Counter, delta int) error {
	switch counter {
	case user.CounterFollowers, user.CounterFollowing, user.CounterPosts:
	default:
		return errors.New("unknown user counter: " + string(counter))
	}
	return incrementColumn[po.UserPO](r.getDB(ctx), id, string(counter), int64(delta))
}

var _ user.Repository = (*UserRepository)(nil)

type AdminRepository struct {
	baseRepository
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{baseRepository{db: db}}
}

func (r *AdminRepository) Save(ctx context.Context, a *user.Admin) error {
	err := upsert(r.getDB(ctx), po.FromAdminDomain(a), a.ID)
	if isDuplicateKeyError(err) {
		return shared.NewConflictError("admin", "username already exists: "+a.Username)
	}
	return err
}

func (r *AdminRepository) FindByID(ctx context.Context, id string) (*user.Admin, error) {
	adminPO, err := first[po.AdminPO](r.getDB(ctx).Where("id = ?", id), "admin")
	if err != nil {
		return nil, err
	}
	return adminPO.ToDomain(), nil
}

func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (*user.Admin, error) {
	adminPO, err := first[po.AdminPO](r.getDB(ctx).Where("username = ?", username), "admin")
	if err != nil {
		return nil, err
	}
	return adminPO.ToDomain(), nil
}

func (r *AdminRepository) List(ctx context.Context, page shared.PageQuery) ([]*user.Admin, int64, error) {
	rows, total, err := paginate[po.AdminPO](r.getDB(ctx).Model(&po.AdminPO{}), page, "created_at ASC")
	if err != nil {
		return nil, 0, err
	}
	admins := make([]*user.Admin, len(rows))
	for i := range rows {
		admins[i] = rows[i].ToDomain()
	}
	return admins, total, nil
}

func (r *AdminRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.AdminPO{}).Count(&count).Error
	return count, err
}

var _ user.AdminRepository = (*AdminRepository)(nil)

type AddressRepository struct {
	baseRepository
}

func NewAddressRepository(db *gorm.DB) *AddressRepository {
	return &AddressRepository{baseRepository{db: db}}
}

func (r *AddressRepository) Save(ctx context.Context, a *user.Address) error {
	return upsert(r.getDB(ctx), po.FromAddressDomain(a), a.ID)
}

func (r *AddressRepository) FindByID(ctx context.Context, id string) (*user.Address, error) {
	addressPO, err := first[po.AddressPO](r.getDB(ctx).Where("id = ?", id), "address")
	if err != nil {
		return nil, err
	}
	return addressPO.ToDomain(), nil
}

func (r *AddressRepository) ListByUser(ctx context.Context, userID string) ([]*user.Address, error) {
	var rows []po.AddressPO
	if err := r.getDB(ctx).Where("user_id = ?", userID).
		Order("is_default DESC, updated_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	addresses := make([]*user.Address, len(rows))
	for i := range rows {
		addresses[i] = rows[i].ToDomain()
	}
	return addresses, nil
}

func (r *AddressRepository) Delete(ctx context.Context, id string) error {
	return deleteByID[po.AddressPO](r.getDB(ctx), id, "address")
}

func (r *AddressRepository) ClearDefault(ctx context.Context, userID string) error {
	return r.getDB(ctx).Model(&po.AddressPO{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		UpdateColumn("is_default", false).Error
}

var _ user.AddressRepository = (*AddressRepository)(nil)
