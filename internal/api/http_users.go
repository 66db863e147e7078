package api

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"micromon/internal/auth"
	"micromon/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const minPasswordLength = 6

// ListUsers returns every account without password material.
func (h *HTTPHandler) ListUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	users, err := h.repo.ListUsers(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list users")
		StorageUnavailable(c)
		return
	}

	summaries := make([]entity.UserSummary, 0, len(users))
	for idx := range users {
		summaries = append(summaries, makeUserSummary(&users[idx]))
	}
	c.JSON(http.StatusOK, summaries)
}

// CreateUser registers an account. Validation and the uniqueness check both
// run before the password is hashed, so a rejected request performs no write.
func (h *HTTPHandler) CreateUser(c *gin.Context) {
	var req entity.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = entity.UserRoleUser
	}

	var fieldErrors []FieldError
	if username == "" {
		fieldErrors = append(fieldErrors, FieldError{Field: "username", Message: "username is required"})
	}
	if email == "" {
		fieldErrors = append(fieldErrors, FieldError{Field: "email", Message: "email is required"})
	} else if _, err := mail.ParseAddress(email); err != nil {
		fieldErrors = append(fieldErrors, FieldError{Field: "email", Message: "email is not a valid address"})
	}
	if len(req.Password) < minPasswordLength {
		fieldErrors = append(fieldErrors, FieldError{Field: "password", Message: "password must be at least 6 characters"})
	}
	if !entity.ValidRole(role) {
		fieldErrors = append(fieldErrors, FieldError{Field: "role", Message: "role must be admin, manager or user"})
	}
	if len(fieldErrors) > 0 {
		ValidationFailed(c, fieldErrors...)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	_, err := h.repo.FindUserByUsernameOrEmail(ctx, username, email)
	switch {
	case err == nil:
		Conflict(c, "username or email already in use")
		return
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		logrus.WithError(err).Error("failed to check user uniqueness")
		StorageUnavailable(c)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logrus.WithError(err).Error("failed to hash password for new user")
		StorageUnavailable(c)
		return
	}

	user := &entity.DbUser{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       entity.UserStatusActive,
	}

	if err := h.repo.CreateUser(ctx, user); err != nil {
		// Unique index race between the pre-check and the insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, "username or email already in use")
			return
		}
		logrus.WithError(err).Error("failed to create user")
		StorageUnavailable(c)
		return
	}

	c.JSON(http.StatusCreated, makeUserSummary(user))
}

// UpdateUser applies a partial update. Accounts are never hard-deleted;
// setting status to inactive is the supported way to retire one.
func (h *HTTPHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	updates := make(map[string]interface{})
	var fieldErrors []FieldError

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if _, err := mail.ParseAddress(email); err != nil {
			fieldErrors = append(fieldErrors, FieldError{Field: "email", Message: "email is not a valid address"})
		} else {
			updates["email"] = email
		}
	}
	if req.Role != nil {
		if !entity.ValidRole(*req.Role) {
			fieldErrors = append(fieldErrors, FieldError{Field: "role", Message: "role must be admin, manager or user"})
		} else {
			updates["role"] = *req.Role
		}
	}
	if req.Status != nil {
		if *req.Status != entity.UserStatusActive && *req.Status != entity.UserStatusInactive {
			fieldErrors = append(fieldErrors, FieldError{Field: "status", Message: "status must be active or inactive"})
		} else {
			updates["status"] = *req.Status
		}
	}
	if req.Password != nil {
		if len(*req.Password) < minPasswordLength {
			fieldErrors = append(fieldErrors, FieldError{Field: "password", Message: "password must be at least 6 characters"})
		} else {
			hash, err := auth.HashPassword(*req.Password)
			if err != nil {
				logrus.WithError(err).Error("failed to hash password for update")
				StorageUnavailable(c)
				return
			}
			updates["password_hash"] = hash
		}
	}

	if len(fieldErrors) > 0 {
		ValidationFailed(c, fieldErrors...)
		return
	}
	if len(updates) == 0 {
		ValidationFailed(c, FieldError{Field: "body", Message: "no updatable fields supplied"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	if _, err := h.repo.GetUserByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "user not found")
			return
		}
		logrus.WithError(err).Error("failed to load user for update")
		StorageUnavailable(c)
		return
	}

	if err := h.repo.UpdateUser(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, "email already in use")
			return
		}
		logrus.WithError(err).WithField("user_id", id).Error("failed to update user")
		StorageUnavailable(c)
		return
	}

	user, err := h.repo.GetUserByID(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("user_id", id).Error("failed to reload user after update")
		StorageUnavailable(c)
		return
	}
	c.JSON(http.StatusOK, makeUserSummary(user))
}

func parseIDParam(c *gin.Context) (uint, bool) {
	idValue := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(idValue, 10, 64)
	if err != nil || id == 0 {
		ValidationFailed(c, FieldError{Field: "id", Message: "id must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}
