package services

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Scoheart/lostfound-backend/internal/dto"
	"github.com/Scoheart/lostfound-backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, NotFound("用户不存在")
	}
	return &user, nil
}

func (s *UserService) UpdateProfile(userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.RealName != nil {
		updates["real_name"] = *req.RealName
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

func (s *UserService) ChangePassword(userID uuid.UUID, req *dto.ChangePasswordRequest) error {
	user, err := s.GetByID(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return BadRequest("原密码不正确")
	}
	if len(req.NewPassword) < 6 {
		return BadRequest("新密码长度不能少于6个字符")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.db.Model(user).Update("password", string(hash)).Error
}

// SetAvatar stores the uploaded avatar URL on the account.
func (s *UserService) SetAvatar(userID uuid.UUID, url string) error {
	return s.db.Model(&models.User{}).Where("id = ?", userID).Update("avatar", url).Error
}

// CreateAccount creates an account with the given role. The handler layer
// restricts which roles each caller may hand out.
func (s *UserService) CreateAccount(username, email, password, role string, extra map[string]interface{}) (*models.User, error) {
	if role != models.RoleResident && role != models.RoleAdmin && role != models.RoleSysadmin {
		return nil, BadRequest("无效的用户角色: " + role)
	}
	if len(password) < 6 {
		return nil, BadRequest("密码长度不能少于6个字符")
	}

	var count int64
	s.db.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return nil, Conflict("用户名已被使用")
	}
	s.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil, Conflict("邮箱已被使用")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:  username,
		Email:     email,
		Password:  string(hash),
		Role:      role,
		IsEnabled: true,
	}
	if phone, ok := extra["phone"].(string); ok {
		user.Phone = phone
	}
	if realName, ok := extra["realName"].(string); ok {
		user.RealName = realName
	}
	if address, ok := extra["address"].(string); ok {
		user.Address = address
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	slog.Info("account created", "user_id", user.ID.String(), "role", role)
	return &user, nil
}

// List returns a filtered page of accounts. roles narrows by role set,
// search matches username/email/realName, enabled filters by status.
func (s *UserService) List(roles []string, search string, enabled *bool, page, size int) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{})
	if len(roles) > 0 {
		query = query.Where("role IN ?", roles)
	}
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + search + "%"
		query = query.Where("username LIKE ? OR email LIKE ? OR real_name LIKE ?", like, like, like)
	}
	if enabled != nil {
		query = query.Where("is_enabled = ?", *enabled)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	err := query.Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// UpdateAccount applies admin edits to an account.
func (s *UserService) UpdateAccount(id uuid.UUID, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Email != nil {
		var count int64
		s.db.Model(&models.User{}).Where("email = ? AND id <> ?", *req.Email, id).Count(&count)
		if count > 0 {
			return nil, Conflict("邮箱已被使用")
		}
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.RealName != nil {
		updates["real_name"] = *req.RealName
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Role != nil {
		if user.Role == models.RoleSysadmin {
			return nil, BadRequest("系统管理员的角色不能被修改")
		}
		if *req.Role != models.RoleResident && *req.Role != models.RoleAdmin {
			return nil, BadRequest("无效的用户角色: " + *req.Role)
		}
		updates["role"] = *req.Role
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return user, nil
}

// SetEnabled enables or disables an account. Sysadmin accounts are immune.
func (s *UserService) SetEnabled(id uuid.UUID, enabled bool) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user.Role == models.RoleSysadmin && !enabled {
		return nil, BadRequest("系统管理员账户不能被禁用")
	}

	if err := s.db.Model(user).Update("is_enabled", enabled).Error; err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	return user, nil
}

// Lock locks an account for the given number of days. Sysadmins are immune.
func (s *UserService) Lock(tx *gorm.DB, id uuid.UUID, days int, reason string) error {
	if tx == nil {
		tx = s.db
	}

	var user models.User
	if err := tx.First(&user, "id = ?", id).Error; err != nil {
		return NotFound("用户不存在")
	}
	if user.Role == models.RoleSysadmin {
		return BadRequest("系统管理员账户不能被锁定")
	}

	end := time.Now().AddDate(0, 0, days)
	err := tx.Model(&user).Updates(map[string]interface{}{
		"is_locked":     true,
		"lock_end_time": end,
		"lock_reason":   reason,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to lock user: %w", err)
	}

	slog.Info("user locked", "user_id", id.String(), "days", days, "reason", reason)
	return nil
}

// Ban bans an account for the given number of days. A ban blocks login until
// its end time passes. Sysadmins are immune.
func (s *UserService) Ban(tx *gorm.DB, id uuid.UUID, days int, reason string) error {
	if tx == nil {
		tx = s.db
	}

	var user models.User
	if err := tx.First(&user, "id = ?", id).Error; err != nil {
		return NotFound("用户不存在")
	}
	if user.Role == models.RoleSysadmin {
		return BadRequest("系统管理员账户不能被封禁")
	}

	end := time.Now().AddDate(0, 0, days)
	err := tx.Model(&user).Updates(map[string]interface{}{
		"is_banned":    true,
		"ban_end_time": end,
		"ban_reason":   reason,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to ban user: %w", err)
	}

	slog.Info("user banned", "user_id", id.String(), "days", days, "reason", reason)
	return nil
}

// Unlock clears an account lock.
func (s *UserService) Unlock(id uuid.UUID) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}
	return s.db.Model(user).Updates(map[string]interface{}{
		"is_locked":     false,
		"lock_end_time": nil,
		"lock_reason":   "",
	}).Error
}

// ResetPassword sets a new password without checking the old one (sysadmin).
func (s *UserService) ResetPassword(id uuid.UUID, newPassword string) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if len(newPassword) < 6 {
		return BadRequest("新密码长度不能少于6个字符")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.db.Model(user).Update("password", string(hash)).Error
}

// Delete removes an account and all content it owns. Sysadmins cannot be
// deleted. onlyRoles, when non-empty, restricts which roles may be deleted
// (the admin panel deletes community admins only).
func (s *UserService) Delete(id uuid.UUID, onlyRoles ...string) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if user.Role == models.RoleSysadmin {
		return BadRequest("系统管理员账户不能被删除")
	}
	if len(onlyRoles) > 0 {
		allowed := false
		for _, r := range onlyRoles {
			if user.Role == r {
				allowed = true
				break
			}
		}
		if !allowed {
			return BadRequest("只能删除该角色的账户: " + strings.Join(onlyRoles, ", "))
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		tx.Where("user_id = ?", id).Delete(&models.LostItem{})
		// claims from other users against this user's found items go first
		tx.Where("found_item_id IN (?)",
			tx.Model(&models.FoundItem{}).Select("id").Where("user_id = ?", id)).
			Delete(&models.ClaimApplication{})
		tx.Where("user_id = ?", id).Delete(&models.FoundItem{})
		tx.Where("applicant_id = ?", id).Delete(&models.ClaimApplication{})
		tx.Where("user_id = ?", id).Delete(&models.ItemComment{})
		tx.Where("user_id = ?", id).Delete(&models.PostComment{})
		tx.Where("user_id = ?", id).Delete(&models.Post{})
		tx.Where("admin_id = ?", id).Delete(&models.Announcement{})
		tx.Where("reporter_id = ? OR reported_user_id = ?", id, id).Delete(&models.Report{})
		return tx.Delete(user).Error
	})
}

// ToAdminDto converts an account to its management view.
func ToAdminDto(u *models.User) dto.AdminUserDto {
	return dto.AdminUserDto{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        u.Role,
		Phone:       u.Phone,
		RealName:    u.RealName,
		Address:     u.Address,
		IsEnabled:   u.IsEnabled,
		IsLocked:    u.Locked(),
		LockEndTime: u.LockEndTime,
		LockReason:  u.LockReason,
		IsBanned:    u.Banned(),
		BanEndTime:  u.BanEndTime,
		BanReason:   u.BanReason,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
