package controllers

import (
	"net/http"

	"menumeters/internal/models"
	"menumeters/internal/services"

	"github.com/gin-gonic/gin"
)

// MetersController serves the latest frames to polling clients.
type MetersController struct {
	board *services.Board
}

func NewMetersController(board *services.Board) *MetersController {
	return &MetersController{board: board}
}

// GetAll returns every meter that currently has a fresh frame
func (mc *MetersController) GetAll(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"frames": mc.board.All()})
}

// GetMeter returns the frame of a single category
func (mc *MetersController) GetMeter(c *gin.Context) {
	category, err := models.ParseCategory(c.Param("category"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	frame, ok := mc.board.Get(category)
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": category.Title() + " meter unavailable"})
		return
	}
	c.JSON(http.StatusOK, frame)
}
