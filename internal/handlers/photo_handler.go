package handlers

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"server-match/internal/managers"
	"server-match/internal/repositories"
	"server-match/internal/schemas"
	"server-match/internal/utils"
)

type PhotoHdl interface {
	UploadPhoto(c *gin.Context)
	SetMainPhoto(c *gin.Context)
	DeletePhoto(c *gin.Context)
}

// PhotoHandler manages a user's photos: uploads to object storage, the
// set-main discipline and deletion. The invariant "at most one main photo
// per user" is enforced here, in the write path.
type PhotoHandler struct {
	databaseManager managers.DatabaseMgr
	storageManager  managers.StorageMgr
}

func NewPhotoHandler(databaseManager managers.DatabaseMgr, storageManager managers.StorageMgr) PhotoHdl {
	return &PhotoHandler{
		databaseManager: databaseManager,
		storageManager:  storageManager,
	}
}

// UploadPhoto stores the uploaded file in object storage and stages the
// photo row. The user's first photo automatically becomes the main photo.
func (handler *PhotoHandler) UploadPhoto(c *gin.Context) {
	principal := c.MustGet(utils.ClaimsKey.String()).(*schemas.Principal)

	ctx, cancel := context.WithTimeout(c, requestTimeout)
	defer cancel()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.WriteAndLogError(c, schemas.FileError, http.StatusBadRequest, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.WriteAndLogError(c, schemas.FileError, http.StatusBadRequest, err)
		return
	}
	defer file.Close()

	objectName := uuid.New().String() + filepath.Ext(fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")

	url, err := handler.storageManager.Upload(ctx, objectName, file, fileHeader.Size, contentType)
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	repo := repositories.NewUserRepository(handler.databaseManager.GetPool())

	count, err := repo.CountPhotos(ctx, principal.UserID)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	photo := &schemas.Photo{
		UserID:   principal.UserID,
		URL:      url,
		PublicID: objectName,
		IsMain:   count == 0,
	}

	repo.StagePhoto(photo)
	if _, err := repo.SaveChanges(ctx); err != nil {
		// The object is already in storage; without the row it is unreachable.
		if removeErr := handler.storageManager.Remove(ctx, objectName); removeErr != nil {
			utils.LogMessageWithFieldsAndError(c, "warn", "Failed to remove orphaned photo object "+objectName, removeErr)
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	photoDto := &schemas.PhotoDTO{
		ID:     photo.ID,
		URL:    photo.URL,
		IsMain: photo.IsMain,
	}
	utils.WriteAndLogResponse(c, photoDto, http.StatusCreated)
}

// SetMainPhoto flips the main flag to the given photo. Unset-all and
// set-one are staged together and committed by a single SaveChanges, so the
// invariant holds across the commit boundary.
func (handler *PhotoHandler) SetMainPhoto(c *gin.Context) {
	principal := c.MustGet(utils.ClaimsKey.String()).(*schemas.Principal)

	ctx, cancel := context.WithTimeout(c, requestTimeout)
	defer cancel()

	repo := repositories.NewUserRepository(handler.databaseManager.GetPool())

	photo, ok := handler.ownedPhoto(c, ctx, repo, principal)
	if !ok {
		return
	}

	if photo.IsMain {
		utils.WriteAndLogError(c, schemas.AlreadyMainPhoto, http.StatusBadRequest, errors.New("photo already main"))
		return
	}

	repo.StageSetMainPhoto(principal.UserID, photo.ID)
	if _, err := repo.SaveChanges(ctx); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeletePhoto removes a non-main photo from storage and stages the row
// deletion.
func (handler *PhotoHandler) DeletePhoto(c *gin.Context) {
	principal := c.MustGet(utils.ClaimsKey.String()).(*schemas.Principal)

	ctx, cancel := context.WithTimeout(c, requestTimeout)
	defer cancel()

	repo := repositories.NewUserRepository(handler.databaseManager.GetPool())

	photo, ok := handler.ownedPhoto(c, ctx, repo, principal)
	if !ok {
		return
	}

	if photo.IsMain {
		utils.WriteAndLogError(c, schemas.MainPhotoImmutable, http.StatusBadRequest, errors.New("cannot delete main photo"))
		return
	}

	if err := handler.storageManager.Remove(ctx, photo.PublicID); err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	repo.StageDeletePhoto(photo.ID)
	if _, err := repo.SaveChanges(ctx); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ownedPhoto resolves the photo from the path parameter and checks that the
// caller owns it. It writes the error response itself and reports success
// through the boolean.
func (handler *PhotoHandler) ownedPhoto(c *gin.Context, ctx context.Context, repo *repositories.UserRepository, principal *schemas.Principal) (*schemas.Photo, bool) {
	photoID, err := strconv.ParseInt(c.Param(utils.PhotoIdKey), 10, 64)
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return nil, false
	}

	photo, err := repo.GetPhoto(ctx, photoID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.WriteAndLogError(c, schemas.PhotoNotFound, http.StatusNotFound, err)
			return nil, false
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return nil, false
	}

	if photo.UserID != principal.UserID {
		utils.WriteAndLogError(c, schemas.Forbidden, http.StatusForbidden, errors.New("photo owned by another user"))
		return nil, false
	}

	return photo, true
}
