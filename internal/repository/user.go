package repository

import (
	"errors"
	"time"

	"github.com/ZF-u/watchlist/internal/model"
	"github.com/ZF-u/watchlist/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// ownerCacheKey 所有者行的缓存键
const ownerCacheKey = "user:owner"

// ownerCacheTTL 所有者缓存有效期
const ownerCacheTTL = 5 * time.Minute

type UserRepository struct {
	db *gorm.DB
	sf singleflight.Group // 防止缓存失效瞬间并发查询所有者
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindOwner 查找唯一的可授权身份（最小 ID 的用户行）
// 整个应用只在这里决定"谁是所有者"，命中缓存时不触发查询
func (r *UserRepository) FindOwner() (*model.User, error) {
	if v, ok := utils.CacheGet(ownerCacheKey); ok {
		if user, ok := v.(*model.User); ok {
			return user, nil
		}
	}

	v, err, _ := r.sf.Do(ownerCacheKey, func() (interface{}, error) {
		var user model.User
		err := r.db.Order("id ASC").First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return (*model.User)(nil), nil
		}
		if err != nil {
			return nil, err
		}
		utils.CacheSet(ownerCacheKey, &user, ownerCacheTTL)
		return &user, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*model.User), nil
}

// FindByID 根据 ID 查找用户
func (r *UserRepository) FindByID(id int) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// SetPassword 对明文密码加盐哈希后写入用户结构
func (r *UserRepository) SetPassword(user *model.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return nil
}

// CheckPassword 验证密码，哈希格式非法一律按不匹配处理
func (r *UserRepository) CheckPassword(user *model.User, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	return err == nil
}

// UpdateName 更新显示名称
func (r *UserRepository) UpdateName(userID int, name string) error {
	if err := r.db.Model(&model.User{}).Where("id = ?", userID).Update("name", name).Error; err != nil {
		return err
	}
	utils.CacheDelete(ownerCacheKey)
	return nil
}

// UpsertAdmin 创建或更新所有者账户，供 watchlistctl admin 使用
// 已存在所有者时只改登录名和密码，否则以 Admin 为显示名新建
func (r *UserRepository) UpsertAdmin(username, password string) (*model.User, error) {
	owner, err := r.FindOwner()
	if err != nil {
		return nil, err
	}

	if owner == nil {
		owner = &model.User{
			Name:      "Admin",
			CreatedAt: time.Now(),
		}
	}

	owner.Username = username
	if err := r.SetPassword(owner, password); err != nil {
		return nil, err
	}

	if err := r.db.Save(owner).Error; err != nil {
		return nil, err
	}

	utils.CacheDelete(ownerCacheKey)
	return owner, nil
}

// Count 获取用户总数
func (r *UserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Count(&count).Error
	return count, err
}
