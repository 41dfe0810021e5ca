package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storage-diagnostics/internal/api/models"
	"storage-diagnostics/internal/model"
	"storage-diagnostics/internal/units"
)

var flowDescriptions = map[model.FlowCategory]string{
	model.FlowStorageSOC:       "Stored energy",
	model.FlowStorageCharge:    "Power into storage",
	model.FlowStorageDischarge: "Power out of storage, drawn below zero",
	model.FlowPVGeneration:     "Total PV generation",
	model.FlowPVToBattery:      "PV generation sent to storage",
	model.FlowPVToGrid:         "PV generation sent to the grid",
}

var flowSources = map[model.FlowCategory]model.Variable{
	model.FlowStorageSOC:       model.VarStorageSOC,
	model.FlowStorageCharge:    model.VarStorageCharge,
	model.FlowStorageDischarge: model.VarStorageDischarge,
	model.FlowPVGeneration:     model.VarPVGen,
	model.FlowPVToBattery:      model.VarPVGenToCharge,
	model.FlowPVToGrid:         model.VarPVGenToGrid,
}

// ListVariables handles GET /api/v1/variables
func ListVariables(c *gin.Context) {
	catalog := units.All()
	vars := make([]models.VariableInfo, 0, len(catalog))
	for _, e := range catalog {
		vars = append(vars, models.VariableInfo{Name: string(e.Variable), Unit: e.Unit})
	}

	cats := model.FlowCategories()
	flow := make([]models.FlowCategoryInfo, 0, len(cats))
	for _, fc := range cats {
		flow = append(flow, models.FlowCategoryInfo{
			Name:        string(fc),
			Unit:        units.MustOf(flowSources[fc]),
			Description: flowDescriptions[fc],
		})
	}

	c.JSON(http.StatusOK, gin.H{"variables": vars, "flow_categories": flow})
}
