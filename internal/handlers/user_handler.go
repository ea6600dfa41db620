package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"server-match/internal/managers"
	"server-match/internal/repositories"
	"server-match/internal/schemas"
	"server-match/internal/utils"
)

type UserHdl interface {
	GetAllMembers(c *gin.Context)
	GetMemberByUsername(c *gin.Context)
	UpdateProfile(c *gin.Context)
}

// UserHandler serves the protected member surface: listing, fetch and
// profile update. Everything it returns is a credential-free projection.
type UserHandler struct {
	databaseManager managers.DatabaseMgr
}

func NewUserHandler(databaseManager managers.DatabaseMgr) UserHdl {
	return &UserHandler{databaseManager: databaseManager}
}

// GetAllMembers returns the paginated member list, optionally sorted by the
// 'sort' query parameter.
func (handler *UserHandler) GetAllMembers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, requestTimeout)
	defer cancel()

	offset, limit := utils.ParsePaginationParams(c)
	sort := c.Query(utils.SortParamKey)

	repo := repositories.NewUserRepository(handler.databaseManager.GetPool())
	members, err := repo.GetAll(ctx, sort)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.SendPaginatedResponse(c, members, offset, limit, len(members))
}

// GetMemberByUsername returns one member projection or 404.
func (handler *UserHandler) GetMemberByUsername(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, requestTimeout)
	defer cancel()

	username := c.Param(utils.UsernameKey)

	repo := repositories.NewUserRepository(handler.databaseManager.GetPool())
	member, err := repo.GetMemberByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.WriteAndLogError(c, schemas.UserNotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, member, http.StatusOK)
}

// UpdateProfile updates the caller's own mutable profile fields.
func (handler *UserHandler) UpdateProfile(c *gin.Context) {
	req := c.MustGet(utils.SanitizedPayloadKey.String()).(*schemas.MemberUpdateRequest)
	principal := c.MustGet(utils.ClaimsKey.String()).(*schemas.Principal)

	ctx, cancel := context.WithTimeout(c, requestTimeout)
	defer cancel()

	repo := repositories.NewUserRepository(handler.databaseManager.GetPool())
	repo.StageProfileUpdate(principal.UserID, req)

	saved, err := repo.SaveChanges(ctx)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	if !saved {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, errors.New("failed to update the user"))
		return
	}

	c.Status(http.StatusNoContent)
}
