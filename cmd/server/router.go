package main

import (
	"github.com/gin-gonic/gin"

	"skillswap/internal/middleware"
)

func APIEndpoints(r *gin.Engine, s *Server) {
	// Auth endpoints
	auth := r.Group("/auth")
	{
		auth.POST("/register", s.AuthH.Register)
		auth.POST("/login", s.AuthH.Login)
		auth.POST("/logout", middleware.AuthMiddleware(s.JWTManager, s.Redis), s.AuthH.Logout)
	}

	// API endpoints
	api := r.Group("/api/v1", middleware.AuthMiddleware(s.JWTManager, s.Redis))
	{
		users := api.Group("/users")
		{
			users.GET("/me", s.UserH.GetMe)
			users.PATCH("/me", s.UserH.UpdateMe)
			users.POST("/me/skills", s.SkillH.AddMySkill)
			users.DELETE("/me/skills/:id", s.SkillH.RemoveMySkill)
			users.GET("/search", s.UserH.SearchUsers)
			users.GET("/:id", s.UserH.GetUser)
		}

		skills := api.Group("/skills")
		{
			skills.GET("", s.SkillH.ListSkills)
			skills.POST("", s.SkillH.CreateSkill)
		}

		requests := api.Group("/requests")
		{
			requests.POST("", s.RequestH.CreateRequest)
			requests.GET("/incoming", s.RequestH.GetIncoming)
			requests.GET("/outgoing", s.RequestH.GetOutgoing)
			requests.PATCH("/:id/accept", s.RequestH.Accept)
			requests.PATCH("/:id/reject", s.RequestH.Reject)
		}

		messages := api.Group("/messages")
		{
			messages.GET("/:recipientId", s.MessageH.GetMessages)
			messages.POST("/:recipientId", s.MessageH.SendMessage)
			messages.PATCH("/:messageId", s.MessageH.UpdateMessage)
			messages.DELETE("/:messageId", s.MessageH.DeleteMessage)
		}
	}

	// WebSocket
	r.GET("/ws", middleware.WSAuthMiddleware(s.JWTManager, s.Redis), s.WSH.HandleWebSocket)
}
