package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"travelbook/internal/domain/models"
	"travelbook/internal/services"
	"travelbook/internal/utils"
)

// TravelOptionDTO adds the display price on top of the stored cents.
type TravelOptionDTO struct {
	models.TravelOption
	Price string `json:"price"`
}

func travelOptionDTO(t models.TravelOption) TravelOptionDTO {
	return TravelOptionDTO{TravelOption: t, Price: utils.FormatMoney(t.PriceCents)}
}

// GET /api/travel-options?type=&source=&destination=&date=
func ListTravelOptions(c *gin.Context) {
	svc := services.SearchService{}
	filter := models.TravelFilter{
		Type:        c.Query("type"),
		Source:      c.Query("source"),
		Destination: c.Query("destination"),
		Date:        c.Query("date"),
	}

	options, err := svc.Search(filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	out := make([]TravelOptionDTO, 0, len(options))
	for _, t := range options {
		out = append(out, travelOptionDTO(t))
	}
	c.JSON(http.StatusOK, gin.H{"travel_options": out})
}

// GET /api/travel-options/:id
func GetTravelOption(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid id")
		return
	}

	svc := services.SearchService{}
	opt, err := svc.Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, travelOptionDTO(opt))
}

// GET /api/travel-options/popular
func PopularRoutes(c *gin.Context) {
	svc := services.SearchService{}
	routes, err := svc.PopularRoutes()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

// GET /api/suggest?q=&field=
func Suggest(c *gin.Context) {
	svc := services.SearchService{}
	results, err := svc.Suggest(c.Query("field"), c.Query("q"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
