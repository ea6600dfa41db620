// Package routing wires the gin engine: common middleware, the public
// account routes and the bearer-guarded resource routes.
package routing

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"server-match/internal/handlers"
	"server-match/internal/managers"
	"server-match/internal/middleware"
	"server-match/internal/schemas"
)

func InitRouter(databaseMgr managers.DatabaseMgr, jwtMgr managers.JWTMgr, credentialMgr managers.CredentialMgr, storageMgr managers.StorageMgr) *gin.Engine {
	router := gin.New()
	setupCommonMiddleware(router)
	setupRoutes(router, databaseMgr, jwtMgr, credentialMgr, storageMgr)

	return router
}

func setupCommonMiddleware(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(middleware.InjectTrace())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"http://localhost:4200", "http://localhost:5173"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Accept", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length", "Content-Type", "X-Trace-Id"},
		MaxAge:        12 * time.Hour,
	}))
	router.Use(middleware.SanitizePath())
	router.Use(middleware.LogRequest())
}

func setupRoutes(router *gin.Engine, databaseMgr managers.DatabaseMgr, jwtMgr managers.JWTMgr, credentialMgr managers.CredentialMgr, storageMgr managers.StorageMgr) {
	// Set up health route
	router.GET("/health", func(c *gin.Context) {
		conn, err := databaseMgr.GetPool().Acquire(c)
		if err != nil {
			c.String(http.StatusInternalServerError, "Database not responding")
			return
		}
		defer conn.Release()
		c.Status(http.StatusOK)
	})

	apiRouter := router.Group("/api")
	{
		accountRouter := apiRouter.Group("/account")
		accountHdl := handlers.NewAccountHandler(databaseMgr, jwtMgr, credentialMgr)
		accountRoutes(accountRouter, accountHdl)

		userRouter := apiRouter.Group("/users")
		userHdl := handlers.NewUserHandler(databaseMgr)
		userRoutes(userRouter, userHdl, jwtMgr)

		photoRouter := apiRouter.Group("/photos")
		photoHdl := handlers.NewPhotoHandler(databaseMgr, storageMgr)
		photoRoutes(photoRouter, photoHdl, jwtMgr)

		likeRouter := apiRouter.Group("/likes")
		likeHdl := handlers.NewLikeHandler(databaseMgr)
		likeRoutes(likeRouter, likeHdl, jwtMgr)
	}
}

func accountRoutes(accountRouter *gin.RouterGroup, accountHdl handlers.AccountHdl) {
	accountRouter.POST("/register", middleware.ValidateAndSanitizeStruct(&schemas.RegisterRequest{}), accountHdl.Register)
	accountRouter.POST("/login", middleware.ValidateAndSanitizeStruct(&schemas.LoginRequest{}), accountHdl.Login)
}

func userRoutes(userRouter *gin.RouterGroup, userHdl handlers.UserHdl, jwtMgr managers.JWTMgr) {
	userRouter.Use(jwtMgr.Middleware())
	userRouter.GET("/", userHdl.GetAllMembers)
	userRouter.GET("/:username", userHdl.GetMemberByUsername)
	userRouter.PUT("/", middleware.ValidateAndSanitizeStruct(&schemas.MemberUpdateRequest{}), userHdl.UpdateProfile)
}

func photoRoutes(photoRouter *gin.RouterGroup, photoHdl handlers.PhotoHdl, jwtMgr managers.JWTMgr) {
	photoRouter.Use(jwtMgr.Middleware())
	photoRouter.POST("/", photoHdl.UploadPhoto)
	photoRouter.PUT("/:photoId/main", photoHdl.SetMainPhoto)
	photoRouter.DELETE("/:photoId", photoHdl.DeletePhoto)
}

func likeRoutes(likeRouter *gin.RouterGroup, likeHdl handlers.LikeHdl, jwtMgr managers.JWTMgr) {
	likeRouter.Use(jwtMgr.Middleware())
	likeRouter.GET("/ids", likeHdl.GetLikedIDs)
	likeRouter.POST("/:username", likeHdl.LikeUser)
}
