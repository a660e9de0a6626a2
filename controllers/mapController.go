package controllers

import (
	"net/http"

	"civicguard-be/geo"

	"github.com/gin-gonic/gin"
)

// GetChoropleth joins the village boundary polygons with live open-issue
// counts. Villages are colored by their parent panchayat's count, so every
// village in a panchayat shades the same.
func GetChoropleth(c *gin.Context) {
	features, err := boundaries.Features()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Boundary data unavailable"})
		return
	}
	villageToPanchayat, err := locations.VillageToPanchayat()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Location data unavailable"})
		return
	}

	counts := appStore.PanchayatCounts()

	type region struct {
		Village   string          `json:"village"`
		Panchayat string          `json:"panchayat"`
		Count     int             `json:"count"`
		Color     string          `json:"color"`
		Geometry  [][][2]float64 `json:"geometry"`
	}

	regions := make([]region, 0, len(features))
	for _, f := range features {
		village := f.Properties.Name
		panchayat := villageToPanchayat[village]
		count := counts[panchayat]
		regions = append(regions, region{
			Village:   village,
			Panchayat: panchayat,
			Count:     count,
			Color:     geo.ColorForCount(count),
			Geometry:  f.Geometry.Coordinates,
		})
	}

	grades := geo.Grades()
	type legendEntry struct {
		Grade int    `json:"grade"`
		Color string `json:"color"`
	}
	legend := make([]legendEntry, 0, len(grades))
	for _, g := range grades {
		legend = append(legend, legendEntry{Grade: g, Color: geo.ColorForCount(g)})
	}

	c.JSON(http.StatusOK, gin.H{
		"regions": regions,
		"legend":  legend,
	})
}
