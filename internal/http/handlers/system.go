package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	intconfig "travelbook/internal/config"
	intdb "travelbook/internal/db"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database unreachable: " + err.Error()})
		return
	}
	if !intdb.HasTable(intconfig.DB, "travel_options") {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "schema not ready"})
		return
	}
	var count int
	if err := intconfig.DB.QueryRow("SELECT COUNT(*) FROM travel_options").Scan(&count); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database OK", "travel_options": count})
}
