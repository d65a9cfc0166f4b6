// Copyright 2025 Farmer Super App Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/your-org/farmer-super-app/internal/advisor"
	"github.com/your-org/farmer-super-app/internal/chat"
	"github.com/your-org/farmer-super-app/internal/config"
	"github.com/your-org/farmer-super-app/internal/extract"
	"github.com/your-org/farmer-super-app/internal/genai"
	"github.com/your-org/farmer-super-app/internal/i18n"
	"github.com/your-org/farmer-super-app/internal/knowledge"
	"github.com/your-org/farmer-super-app/internal/market"
	"github.com/your-org/farmer-super-app/internal/userstore"
	"github.com/your-org/farmer-super-app/internal/weather"
)

// Server wires the domain services behind the HTTP API.
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	gateway *genai.Gateway
	extract *extract.Service
	advisor *advisor.Service
	market  *market.Client
	weather *weather.Client
	users   *userstore.Store
	history *chat.History
}

// Run starts the HTTP server on the given address.
func (s *Server) Run(addr string) error {
	return s.router().Run(addr)
}

func (s *Server) router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/health", s.handleHealth)

	auth := router.Group("/auth")
	{
		auth.POST("/register", s.handleRegister)
		auth.POST("/login", s.handleLogin)
		auth.POST("/preferences", s.handlePreferences)
		auth.GET("/autologin", s.handleAutoLogin)
	}

	router.POST("/crops/recommend", s.handleCropRecommend)
	router.POST("/fertilizer/advice", s.handleFertilizerAdvice)
	router.POST("/yield/predict", s.handleYieldPredict)
	router.POST("/irrigation/calculate", s.handleIrrigation)
	router.POST("/insurance/premium", s.handleInsurance)

	router.GET("/weather", s.handleWeather)
	router.GET("/market/prices", s.handleMarketPrices)
	router.GET("/market/trend", s.handleMarketTrend)
	router.GET("/knowledge", s.handleKnowledge)

	router.POST("/chat", s.handleChat)
	router.GET("/chat/stream", s.handleChatStream)

	return router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "farmer-super-app",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	City     string `json:"city" binding:"required"`
	Password string `json:"password" binding:"required"`
	Language string `json:"language"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": i18n.T(req.Language, "fill_all")})
		return
	}
	if req.Language == "" {
		req.Language = i18n.DefaultLanguage
	}

	profile := userstore.Profile{
		Phone:    req.Phone,
		Name:     req.Name,
		City:     req.City,
		Password: req.Password,
		Language: req.Language,
	}
	if err := s.users.Register(profile); err != nil {
		if errors.Is(err, userstore.ErrExists) {
			c.JSON(http.StatusConflict, gin.H{"error": i18n.T(req.Language, "already_reg")})
			return
		}
		s.logger.Error("Failed to register farmer", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	if err := s.users.SetLastActive(req.Phone); err != nil {
		s.logger.Warn("Failed to record last active phone", zap.Error(err))
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": i18n.T(req.Language, "success_create"),
		"profile": profile,
	})
}

type loginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": i18n.T("", "fill_all")})
		return
	}

	profile, err := s.users.Authenticate(req.Phone, req.Password)
	switch {
	case errors.Is(err, userstore.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": i18n.T("", "user_not_found")})
		return
	case errors.Is(err, userstore.ErrBadCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": i18n.T("", "bad_login")})
		return
	case err != nil:
		s.logger.Error("Login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"greeting": i18n.T(profile.Language, "namaste"),
		"profile":  profile,
	})
}

type preferencesRequest struct {
	Phone    string   `json:"phone" binding:"required"`
	City     string   `json:"city"`
	Language string   `json:"language"`
	Crop     string   `json:"crop"`
	LandSize *float64 `json:"land_size"`
	SoilN    *int     `json:"soil_n"`
	SoilP    *int     `json:"soil_p"`
	SoilK    *int     `json:"soil_k"`
}

// handlePreferences updates the first-time-setup fields on a profile.
func (s *Server) handlePreferences(c *gin.Context) {
	var req preferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": i18n.T("", "fill_all")})
		return
	}

	profile, err := s.users.Get(req.Phone)
	if errors.Is(err, userstore.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": i18n.T("", "user_not_found")})
		return
	}
	if err != nil {
		s.logger.Error("Failed to load profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile lookup failed"})
		return
	}

	if req.City != "" {
		profile.City = req.City
	}
	if req.Language != "" {
		profile.Language = req.Language
	}
	if req.Crop != "" {
		profile.Crop = req.Crop
	}
	if req.LandSize != nil {
		profile.LandSize = *req.LandSize
	}
	if req.SoilN != nil {
		profile.SoilN = req.SoilN
	}
	if req.SoilP != nil {
		profile.SoilP = req.SoilP
	}
	if req.SoilK != nil {
		profile.SoilK = req.SoilK
	}

	if err := s.users.Update(profile); err != nil {
		s.logger.Error("Failed to update profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// handleAutoLogin restores the most recent session from the stored last
// active phone.
func (s *Server) handleAutoLogin(c *gin.Context) {
	phone := s.users.LastActive()
	if phone == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no previous session"})
		return
	}
	profile, err := s.users.Get(phone)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": i18n.T("", "user_not_found")})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"greeting": i18n.T(profile.Language, "namaste"),
		"profile":  profile,
	})
}

func (s *Server) handleCropRecommend(c *gin.Context) {
	var in advisor.CropInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.advisor.RecommendCrop(c.Request.Context(), in))
}

type fertilizerRequest struct {
	N           int    `json:"n"`
	P           int    `json:"p"`
	K           int    `json:"k"`
	Crop        string `json:"crop"`
	Stage       string `json:"stage"`
	PestIssue   string `json:"pest_issue"`
	Language    string `json:"language"`
	ImageBase64 string `json:"image_base64"`
	ImageMIME   string `json:"image_mime"`
}

func (s *Server) handleFertilizerAdvice(c *gin.Context) {
	var req fertilizerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := extract.FertilizerInput{
		N:         req.N,
		P:         req.P,
		K:         req.K,
		Crop:      req.Crop,
		Stage:     req.Stage,
		PestIssue: req.PestIssue,
		Language:  req.Language,
	}
	image, err := decodeImage(req.ImageBase64, req.ImageMIME)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image payload"})
		return
	}
	in.Image = image

	c.JSON(http.StatusOK, s.extract.FertilizerAdvice(c.Request.Context(), in))
}

type yieldRequest struct {
	State       string  `json:"state"`
	Crop        string  `json:"crop" binding:"required"`
	Season      string  `json:"season"`
	Area        float64 `json:"area" binding:"required"`
	Soil        string  `json:"soil"`
	Weather     string  `json:"weather"`
	City        string  `json:"city"`
	Village     string  `json:"village"`
	SowingDate  string  `json:"sowing_date"`
	Variety     string  `json:"variety"`
	Irrigation  string  `json:"irrigation"`
	Fertilizer  string  `json:"fertilizer"`
	PestControl string  `json:"pest_control"`
	PestName    string  `json:"pest_name"`
	Language    string  `json:"language"`
	ImageBase64 string  `json:"image_base64"`
	ImageMIME   string  `json:"image_mime"`
}

func (s *Server) handleYieldPredict(c *gin.Context) {
	var req yieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := extract.YieldInput{
		State:       req.State,
		Crop:        req.Crop,
		Season:      req.Season,
		Area:        req.Area,
		Soil:        req.Soil,
		Weather:     req.Weather,
		City:        req.City,
		Village:     req.Village,
		SowingDate:  req.SowingDate,
		Variety:     req.Variety,
		Irrigation:  req.Irrigation,
		Fertilizer:  req.Fertilizer,
		PestControl: req.PestControl,
		PestName:    req.PestName,
		Language:    req.Language,
	}
	image, err := decodeImage(req.ImageBase64, req.ImageMIME)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image payload"})
		return
	}
	in.Image = image

	estimate, err := s.extract.YieldEstimate(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, extract.ErrYieldUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI service busy, please retry in a minute"})
			return
		}
		s.logger.Error("Yield prediction failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "yield prediction failed"})
		return
	}
	c.JSON(http.StatusOK, estimate)
}

type irrigationRequest struct {
	Crop      string  `json:"crop" binding:"required"`
	SoilType  string  `json:"soil_type"`
	AreaAcres float64 `json:"area_acres" binding:"required"`
}

func (s *Server) handleIrrigation(c *gin.Context) {
	var req irrigationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, advisor.PlanIrrigation(req.Crop, req.SoilType, req.AreaAcres))
}

type insuranceRequest struct {
	Scheme     string  `json:"scheme" binding:"required"` // "pmfby" or "wbcis"
	Season     string  `json:"season"`
	Peril      string  `json:"peril"`
	SumInsured float64 `json:"sum_insured" binding:"required"`
	Area       float64 `json:"area"` // cultivated area; omitted means one unit
}

func (s *Server) handleInsurance(c *gin.Context) {
	var req insuranceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Scheme {
	case "pmfby":
		c.JSON(http.StatusOK, advisor.PMFBYPremium(req.Season, req.SumInsured, req.Area))
	case "wbcis":
		c.JSON(http.StatusOK, advisor.WBCISPremium(req.Peril, req.SumInsured, req.Area))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "scheme must be pmfby or wbcis"})
	}
}

func (s *Server) handleWeather(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city is required"})
		return
	}
	language := c.DefaultQuery("lang", i18n.DefaultLanguage)

	snapshot, advisory := s.weather.Current(c.Request.Context(), city, i18n.LanguageCode(language))
	if snapshot == nil {
		c.JSON(http.StatusOK, gin.H{
			"error":    i18n.T(language, "weather_err"),
			"advisory": advisory,
		})
		return
	}
	resp := gin.H{"weather": snapshot}
	if advisory != "" {
		resp["advisory"] = advisory
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleMarketPrices(c *gin.Context) {
	state := c.DefaultQuery("state", "Maharashtra")
	district := c.DefaultQuery("district", "Nagpur")
	commodity := c.Query("commodity")
	if commodity == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "commodity is required"})
		return
	}

	quotes, live := s.market.Prices(c.Request.Context(), state, district, commodity)
	c.JSON(http.StatusOK, gin.H{
		"commodity": commodity,
		"district":  district,
		"live":      live,
		"quotes":    quotes,
	})
}

func (s *Server) handleMarketTrend(c *gin.Context) {
	commodity := c.Query("commodity")
	if commodity == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "commodity is required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"commodity": commodity,
		"trend":     s.market.Trend(commodity, 0),
	})
}

func (s *Server) handleKnowledge(c *gin.Context) {
	language := c.DefaultQuery("lang", i18n.DefaultLanguage)
	c.JSON(http.StatusOK, knowledge.ForLanguage(language))
}

type chatRequest struct {
	Phone    string `json:"phone"`
	Message  string `json:"message" binding:"required"`
	Language string `json:"language"`
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	language := s.resolveLanguage(req.Phone, req.Language)

	result := s.gateway.Generate(c.Request.Context(), genai.Request{
		Content:  genai.Text(req.Message),
		Language: language,
	})

	if req.Phone != "" {
		s.history.Append(req.Phone, chat.RoleUser, req.Message)
		s.history.Append(req.Phone, chat.RoleAssistant, result.Text)
	}

	c.JSON(http.StatusOK, gin.H{
		"reply":    result.Text,
		"model":    result.Model,
		"fallback": result.Fallback,
	})
}

// handleChatStream streams the reply as server-sent events, one data frame
// per fragment.
func (s *Server) handleChatStream(c *gin.Context) {
	message := c.Query("message")
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}
	phone := c.Query("phone")
	language := s.resolveLanguage(phone, c.Query("lang"))

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	fragments := s.gateway.GenerateStream(c.Request.Context(), genai.Request{
		Content:  genai.Text(message),
		Language: language,
	})

	var full string
	c.Stream(func(_ io.Writer) bool {
		fragment, ok := <-fragments
		if !ok {
			c.SSEvent("done", "")
			return false
		}
		full += fragment
		c.SSEvent("message", fragment)
		return true
	})

	if phone != "" && full != "" {
		s.history.Append(phone, chat.RoleUser, message)
		s.history.Append(phone, chat.RoleAssistant, full)
	}
}

// resolveLanguage prefers the profile's stored language over the request.
func (s *Server) resolveLanguage(phone, requested string) string {
	if phone != "" {
		if profile, err := s.users.Get(phone); err == nil && profile.Language != "" {
			return profile.Language
		}
	}
	if requested != "" {
		return requested
	}
	return i18n.DefaultLanguage
}

// decodeImage turns an optional base64 payload into a prompt part.
func decodeImage(encoded, mime string) (*genai.Part, error) {
	if encoded == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	if mime == "" {
		mime = "image/jpeg"
	}
	part := genai.ImagePart(mime, data)
	return &part, nil
}
