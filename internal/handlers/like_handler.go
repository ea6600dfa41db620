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

type LikeHdl interface {
	GetLikedIDs(c *gin.Context)
	LikeUser(c *gin.Context)
}

// LikeHandler serves the minimal feedback hook: the liked-identifier list
// that client-side caches refresh against, and the like operation itself.
type LikeHandler struct {
	databaseManager managers.DatabaseMgr
}

func NewLikeHandler(databaseManager managers.DatabaseMgr) LikeHdl {
	return &LikeHandler{databaseManager: databaseManager}
}

// GetLikedIDs returns the ids of every user the caller has liked.
func (handler *LikeHandler) GetLikedIDs(c *gin.Context) {
	principal := c.MustGet(utils.ClaimsKey.String()).(*schemas.Principal)

	ctx, cancel := context.WithTimeout(c, requestTimeout)
	defer cancel()

	repo := repositories.NewUserRepository(handler.databaseManager.GetPool())
	ids, err := repo.GetLikedIDs(ctx, principal.UserID)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.LikedIDsDTO{IDs: ids}, http.StatusOK)
}

// LikeUser records a like for the user named in the path.
func (handler *LikeHandler) LikeUser(c *gin.Context) {
	principal := c.MustGet(utils.ClaimsKey.String()).(*schemas.Principal)

	ctx, cancel := context.WithTimeout(c, requestTimeout)
	defer cancel()

	repo := repositories.NewUserRepository(handler.databaseManager.GetPool())

	target, err := repo.GetByUsername(ctx, c.Param(utils.UsernameKey))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.WriteAndLogError(c, schemas.UserNotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if target.ID == principal.UserID {
		utils.WriteAndLogError(c, schemas.SelfLike, http.StatusBadRequest, errors.New("self like"))
		return
	}

	repo.StageLike(principal.UserID, target.ID)
	saved, err := repo.SaveChanges(ctx)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	if !saved {
		utils.WriteAndLogError(c, schemas.AlreadyLiked, http.StatusConflict, errors.New("like exists"))
		return
	}

	c.Status(http.StatusNoContent)
}
