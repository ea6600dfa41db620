// Package handlers contains the HTTP handlers for the account, user, photo
// and like resources.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"server-match/internal/managers"
	"server-match/internal/repositories"
	"server-match/internal/schemas"
	"server-match/internal/utils"
)

// requestTimeout bounds the database work of a single request.
const requestTimeout = 10 * time.Second

var errWrongPassword = errors.New("password verification failed")

type AccountHdl interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
}

// AccountHandler orchestrates the account flow: hashing on registration,
// verification on login, and token issuance on both.
type AccountHandler struct {
	databaseManager   managers.DatabaseMgr
	jwtManager        managers.JWTMgr
	credentialManager managers.CredentialMgr
}

func NewAccountHandler(databaseManager managers.DatabaseMgr, jwtManager managers.JWTMgr, credentialManager managers.CredentialMgr) AccountHdl {
	return &AccountHandler{
		databaseManager:   databaseManager,
		jwtManager:        jwtManager,
		credentialManager: credentialManager,
	}
}

// Register creates a new identity and returns a fresh token. Validation has
// already run in the middleware, so storage and crypto are only touched for
// well-formed requests. Nothing is persisted unless hashing succeeded.
func (handler *AccountHandler) Register(c *gin.Context) {
	req := c.MustGet(utils.SanitizedPayloadKey.String()).(*schemas.RegisterRequest)

	ctx, cancel := context.WithTimeout(c, requestTimeout)
	defer cancel()

	repo := repositories.NewUserRepository(handler.databaseManager.GetPool())

	_, err := repo.GetByUsername(ctx, req.Username)
	if err == nil {
		utils.WriteAndLogError(c, schemas.UsernameTaken, http.StatusConflict, errors.New("username taken"))
		return
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	digest, salt, err := handler.credentialManager.Hash([]byte(req.Password))
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	now := time.Now()
	user := &schemas.User{
		Username:     req.Username,
		KnownAs:      req.Username,
		PasswordHash: digest,
		PasswordSalt: salt,
		CreatedAt:    now,
		LastActive:   now,
	}

	repo.Create(user)
	if _, err := repo.SaveChanges(ctx); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	token, err := handler.jwtManager.Generate(user.ID, user.KnownAs)
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	response := &schemas.AuthResponse{
		ID:       user.ID,
		Username: user.Username,
		KnownAs:  user.KnownAs,
		Token:    token,
	}
	utils.WriteAndLogResponse(c, response, http.StatusCreated)
}

// Login verifies the credentials and returns a fresh token together with the
// main photo URL. An absent user and a wrong password are indistinguishable
// on the wire.
func (handler *AccountHandler) Login(c *gin.Context) {
	req := c.MustGet(utils.SanitizedPayloadKey.String()).(*schemas.LoginRequest)

	ctx, cancel := context.WithTimeout(c, requestTimeout)
	defer cancel()

	repo := repositories.NewUserRepository(handler.databaseManager.GetPool())

	user, err := repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.WriteAndLogError(c, schemas.InvalidCredentials, http.StatusUnauthorized, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if !handler.credentialManager.Verify([]byte(req.Password), user.PasswordHash, user.PasswordSalt) {
		utils.WriteAndLogError(c, schemas.InvalidCredentials, http.StatusUnauthorized, errWrongPassword)
		return
	}

	repo.StageLastActive(user.ID, time.Now())
	if _, err := repo.SaveChanges(ctx); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	photoURL, err := repo.GetMainPhotoURL(ctx, user.ID)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	token, err := handler.jwtManager.Generate(user.ID, user.KnownAs)
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	response := &schemas.AuthResponse{
		ID:       user.ID,
		Username: user.Username,
		KnownAs:  user.KnownAs,
		Token:    token,
		PhotoURL: photoURL,
	}
	utils.WriteAndLogResponse(c, response, http.StatusOK)
}
