package api

import (
	"fmt"
	"net/http"
	"strings"

	"brewja/internal/models"

	"github.com/gin-gonic/gin"
)

// State and history

func (s *Server) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.Snapshot())
}

func (s *Server) GetHistory(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.History())
}

// Raw-material inventory handlers

func (s *Server) GetMaterials(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.Materials())
}

func (s *Server) ReceiveMaterial(c *gin.Context) {
	var material models.RawMaterial
	if err := c.ShouldBindJSON(&material); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := s.engine.ReceiveMaterial(material)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) UpdateMaterial(c *gin.Context) {
	var material models.RawMaterial
	if err := c.ShouldBindJSON(&material); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	material.ID = c.Param("id")
	if err := s.engine.UpdateMaterial(material); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, material)
}

func (s *Server) DeleteMaterial(c *gin.Context) {
	if err := s.engine.DeleteMaterial(c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Material deleted"})
}

// Recipe handlers

func (s *Server) GetRecipes(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.Recipes())
}

func (s *Server) SaveRecipe(c *gin.Context) {
	var recipe models.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	saved, err := s.engine.SaveRecipe(recipe)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (s *Server) DeleteRecipe(c *gin.Context) {
	if err := s.engine.DeleteRecipe(c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted"})
}

// Tank and batch handlers

func (s *Server) GetTanks(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.Tanks())
}

func (s *Server) CreateTank(c *gin.Context) {
	var tank models.Tank
	if err := c.ShouldBindJSON(&tank); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := s.engine.CreateTank(tank)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) UpdateTank(c *gin.Context) {
	var tank models.Tank
	if err := c.ShouldBindJSON(&tank); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tank.TankID = c.Param("id")
	if err := s.engine.UpdateTank(tank); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tank)
}

func (s *Server) DeleteTank(c *gin.Context) {
	if err := s.engine.DeleteTank(c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tank deleted"})
}

func (s *Server) StartBatch(c *gin.Context) {
	var req struct {
		RecipeName string  `json:"recipeName"`
		Volume     float64 `json:"volume" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.engine.StartBatch(c.Param("id"), req.RecipeName, req.Volume); err != nil {
		s.fail(c, err)
		return
	}
	s.recordAction(models.ActionBrew)
	c.JSON(http.StatusOK, gin.H{"message": "Batch started"})
}

func (s *Server) SetTankStatus(c *gin.Context) {
	var req struct {
		Status models.TankStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.engine.SetTankStatus(c.Param("id"), req.Status); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

func (s *Server) RecordQualityControl(c *gin.Context) {
	var qc models.QualityControl
	if err := c.ShouldBindJSON(&qc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.engine.RecordQualityControl(c.Param("id"), qc); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quality control recorded"})
}

func (s *Server) FinalizeBatch(c *gin.Context) {
	if err := s.engine.FinalizeBatch(c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	s.recordAction(models.ActionFinish)
	c.JSON(http.StatusOK, gin.H{"message": "Batch finalized, tank is empty"})
}

func (s *Server) PackageToKeg(c *gin.Context) {
	var req struct {
		KegID  string  `json:"kegId" binding:"required"`
		Volume float64 `json:"volume" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.engine.PackageToKeg(c.Param("id"), req.KegID, req.Volume); err != nil {
		s.fail(c, err)
		return
	}
	s.recordAction(models.ActionKeg)
	c.JSON(http.StatusOK, gin.H{"message": "Keg filled"})
}

func (s *Server) PackageToBottles(c *gin.Context) {
	var req struct {
		Count           int     `json:"count" binding:"required"`
		VolumePerBottle float64 `json:"volumePerBottle" binding:"required"`
		LabelName       string  `json:"labelName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.engine.PackageToBottles(c.Param("id"), req.Count, req.VolumePerBottle, req.LabelName); err != nil {
		s.fail(c, err)
		return
	}
	s.recordAction(models.ActionBottle)
	c.JSON(http.StatusOK, gin.H{"message": "Bottles packaged"})
}

// Keg fleet handlers

func (s *Server) GetKegs(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.Kegs())
}

func (s *Server) CreateKeg(c *gin.Context) {
	var keg models.Keg
	if err := c.ShouldBindJSON(&keg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := s.engine.CreateKeg(keg)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) DispatchKeg(c *gin.Context) {
	var req struct {
		Location string `json:"location" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.engine.DispatchKeg(c.Param("id"), req.Location); err != nil {
		s.fail(c, err)
		return
	}
	s.recordAction(models.ActionDispatch)
	c.JSON(http.StatusOK, gin.H{"message": "Keg dispatched"})
}

func (s *Server) ReturnKeg(c *gin.Context) {
	// Body is optional: no body means a full/empty return.
	var req struct {
		RemainingVolume float64 `json:"remainingVolume"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if err := s.engine.ReturnKeg(c.Param("id"), req.RemainingVolume); err != nil {
		s.fail(c, err)
		return
	}
	s.recordAction(models.ActionReturn)
	c.JSON(http.StatusOK, gin.H{"message": "Keg returned"})
}

func (s *Server) BottleFromKeg(c *gin.Context) {
	var req struct {
		Count           int     `json:"count" binding:"required"`
		VolumePerBottle float64 `json:"volumePerBottle" binding:"required"`
		LabelName       string  `json:"labelName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.engine.BottleFromKeg(c.Param("id"), req.Count, req.VolumePerBottle, req.LabelName); err != nil {
		s.fail(c, err)
		return
	}
	s.recordAction(models.ActionBottle)
	c.JSON(http.StatusOK, gin.H{"message": "Bottles filled from keg"})
}

func (s *Server) KegShelfLife(c *gin.Context) {
	days, err := s.engine.KegDaysRemaining(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	if days == nil {
		c.JSON(http.StatusOK, gin.H{"dispatched": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dispatched": true, "daysRemaining": *days, "expired": *days < 0})
}

// Bottled stock handlers

func (s *Server) GetBottles(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.Bottles())
}

func (s *Server) SellBottles(c *gin.Context) {
	var req struct {
		RecipeName string `json:"recipeName" binding:"required"`
		LabelName  string `json:"labelName"`
		Count      int    `json:"count" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.engine.SellBottles(req.RecipeName, req.LabelName, req.Count); err != nil {
		s.fail(c, err)
		return
	}
	s.recordAction(models.ActionSale)
	c.JSON(http.StatusOK, gin.H{"message": "Sale recorded"})
}

// Report and analysis handlers

func (s *Server) ProductionReport(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.ProductionStats())
}

func (s *Server) AnalyzeTank(c *gin.Context) {
	if s.advisor == nil {
		c.JSON(http.StatusOK, gin.H{"analysis": "AI analysis is not configured."})
		return
	}
	for _, tank := range s.engine.Tanks() {
		if tank.TankID == c.Param("id") || tank.ID == c.Param("id") {
			c.JSON(http.StatusOK, gin.H{"analysis": s.advisor.AnalyzeFermentation(c.Request.Context(), tank)})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Tank not found"})
}

func (s *Server) SuggestRecipe(c *gin.Context) {
	if s.advisor == nil {
		c.JSON(http.StatusOK, gin.H{"suggestion": "AI analysis is not configured."})
		return
	}
	summary := inventorySummary(s.engine.Materials())
	c.JSON(http.StatusOK, gin.H{"suggestion": s.advisor.SuggestRecipe(c.Request.Context(), summary)})
}

// inventorySummary flattens the stockroom into a prompt-friendly line.
func inventorySummary(materials []models.RawMaterial) string {
	if len(materials) == 0 {
		return "empty stockroom"
	}
	parts := make([]string, 0, len(materials))
	for _, m := range materials {
		parts = append(parts, fmt.Sprintf("%.1f%s %s (%s)", m.Quantity, m.Unit, m.Name, m.Type))
	}
	return strings.Join(parts, ", ")
}

func (s *Server) recordAction(action models.ActionType) {
	if s.metrics != nil {
		s.metrics.RecordAction(action)
	}
}
