package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"github.com/zzyhdu/tk-tools/internal/freight"
	"github.com/zzyhdu/tk-tools/internal/pricing"
	"github.com/zzyhdu/tk-tools/internal/quote"
	"github.com/zzyhdu/tk-tools/internal/warehouse"
)

type option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type channelsResponse struct {
	Channels        []freight.ChannelInfo `json:"channels"`
	OriginRegions   []option              `json:"originRegions"`
	TargetRateModes []option              `json:"targetRateModes"`
	Units           []quote.Unit          `json:"units"`
	DefaultSKU      quote.SKU             `json:"defaultSku"`
}

type warehouseView struct {
	warehouse.Warehouse
	RegionLabel string `json:"regionLabel"`
}

type warehousesResponse struct {
	Warehouses []warehouseView `json:"warehouses"`
	Count      int             `json:"count"`
}

func (h *Handler) handleChannels(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := channelsResponse{
		Channels: freight.Channels(),
		OriginRegions: lo.Map(freight.OriginRegions(), func(o freight.OriginRegion, _ int) option {
			return option{Value: string(o), Label: o.Label()}
		}),
		TargetRateModes: []option{
			{Value: string(pricing.MarginOnSalePrice), Label: "Margin on sale price"},
			{Value: string(pricing.MarkupOnCost), Label: "Markup on cost"},
		},
		Units:      []quote.Unit{quote.UnitCentimetre, quote.UnitMillimetre, quote.UnitInch},
		DefaultSKU: quote.DefaultSKU(1),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListWarehouses(w http.ResponseWriter, r *http.Request) {
	all := h.directory.All()

	if raw := strings.TrimSpace(r.URL.Query().Get("region")); raw != "" {
		region := warehouse.Region(strings.ToLower(raw))
		if !region.Valid() {
			writeError(w, http.StatusBadRequest, "Invalid region", "unknown region "+raw,
				"Use one of west, central, east")
			return
		}
		all = lo.Filter(all, func(wh warehouse.Warehouse, _ int) bool {
			return wh.Region == region
		})
	}

	views := lo.Map(all, func(wh warehouse.Warehouse, _ int) warehouseView {
		return toWarehouseView(wh)
	})
	writeJSON(w, http.StatusOK, warehousesResponse{Warehouses: views, Count: len(views)})
}

func (h *Handler) handleGetWarehouse(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	wh, ok := h.directory.ByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Warehouse not found", "no warehouse with id "+id,
			"List warehouses via GET /api/warehouses")
		return
	}
	writeJSON(w, http.StatusOK, toWarehouseView(wh))
}

func toWarehouseView(wh warehouse.Warehouse) warehouseView {
	return warehouseView{Warehouse: wh, RegionLabel: wh.Region.Label()}
}
