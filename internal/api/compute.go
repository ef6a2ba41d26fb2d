package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/zzyhdu/tk-tools/internal/export"
	"github.com/zzyhdu/tk-tools/internal/freight"
	"github.com/zzyhdu/tk-tools/internal/packing"
	"github.com/zzyhdu/tk-tools/internal/pricing"
	"github.com/zzyhdu/tk-tools/internal/quote"
)

func newSKUID() string {
	return uuid.NewString()
}

type layoutsRequest struct {
	Dims       packing.Dimensions `json:"dims"`
	Quantity   int                `json:"quantity"`
	MaxResults *int               `json:"maxResults"`
}

type layoutsResponse struct {
	Layouts           []packing.Layout `json:"layouts"`
	Count             int              `json:"count"`
	CalculationTimeMs int64            `json:"calculationTimeMs"`
}

type segmentsRequest struct {
	Layout   string             `json:"layout"`
	Box      packing.BoxDims    `json:"box"`
	UnitDims packing.Dimensions `json:"unitDims"`
}

type segmentsResponse struct {
	Segments []packing.Segment         `json:"segments"`
	Resolved []packing.ResolvedSegment `json:"resolved"`
	Layers   []packing.ResolvedLayer   `json:"layers"`
}

type pricingRequest struct {
	Costs          pricing.CostInputs     `json:"costs"`
	Physical       pricing.PhysicalInputs `json:"physical"`
	Channel        string                 `json:"firstLegChannel"`
	TargetRate     float64                `json:"targetRate"`
	TargetRateMode pricing.TargetRateMode `json:"targetRateMode"`
	ReturnRate     float64                `json:"returnRate"`
	DiscountRate   float64                `json:"discountRate"`
}

type computeRequest struct {
	SKU json.RawMessage `json:"sku"`
}

type computeResponse struct {
	Result   quote.Result   `json:"result"`
	Snapshot quote.Snapshot `json:"snapshot"`
}

type batchRequest struct {
	SKUs []json.RawMessage `json:"skus"`
}

type batchResponse struct {
	Results   []quote.Result   `json:"results"`
	Snapshots []quote.Snapshot `json:"snapshots"`
	Count     int              `json:"count"`
}

func (h *Handler) handleLayouts(w http.ResponseWriter, r *http.Request) {
	var req layoutsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Quantity <= 0 || req.Quantity > packing.MaxQuantity {
		writeError(w, http.StatusBadRequest, "Invalid request",
			fmt.Sprintf("quantity must be between 1 and %d", packing.MaxQuantity))
		return
	}

	maxResults := packing.Unlimited
	if req.MaxResults != nil {
		maxResults = *req.MaxResults
	}

	start := time.Now()
	layouts := packing.Enumerate(req.Dims, req.Quantity, maxResults)
	elapsed := time.Since(start)

	writeJSON(w, http.StatusOK, layoutsResponse{
		Layouts:           layouts,
		Count:             len(layouts),
		CalculationTimeMs: elapsed.Milliseconds(),
	})
}

func (h *Handler) handleSegments(w http.ResponseWriter, r *http.Request) {
	var req segmentsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Layout) == "" {
		writeError(w, http.StatusBadRequest, "Invalid request", "layout is required",
			`Use labels such as "2 × 3 × 4" or "2 × 3 × 1 + 2 × 2 × 1"`)
		return
	}

	segments := packing.ParseSegments(req.Layout)
	if packing.LayerCount(segments) > packing.MaxQuantity {
		writeError(w, http.StatusBadRequest, "Invalid request",
			fmt.Sprintf("layout has more than %d layers", packing.MaxQuantity))
		return
	}

	resolved := packing.ResolveSegments(segments, req.Box, req.UnitDims)
	writeJSON(w, http.StatusOK, segmentsResponse{
		Segments: segments,
		Resolved: resolved,
		Layers:   packing.ExpandResolvedLayers(resolved),
	})
}

func (h *Handler) handleFreightQuote(w http.ResponseWriter, r *http.Request) {
	var req freight.Request
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ChargeableWeightKg < 0 {
		writeError(w, http.StatusBadRequest, "Invalid request", "chargeableWeightKg must not be negative")
		return
	}
	if req.OriginRegion != "" && !req.OriginRegion.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid request", "unknown originRegion "+strconv.Quote(string(req.OriginRegion)))
		return
	}

	tables, err := h.storage.GetRateTables()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, freight.Resolve(req, tables, h.directory))
}

func (h *Handler) handlePricingSummary(w http.ResponseWriter, r *http.Request) {
	var req pricingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.TargetRateMode == "" {
		req.TargetRateMode = pricing.MarginOnSalePrice
	}
	if !req.TargetRateMode.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid request", "unknown targetRateMode",
			fmt.Sprintf("Use %s or %s", pricing.MarginOnSalePrice, pricing.MarkupOnCost))
		return
	}

	summary := pricing.Summarize(pricing.Inputs{
		Channel:        req.Channel,
		Costs:          req.Costs,
		Physical:       req.Physical,
		TargetRate:     req.TargetRate,
		TargetRateMode: req.TargetRateMode,
		Adjustments: pricing.Adjustments{
			ReturnRate:   req.ReturnRate,
			DiscountRate: req.DiscountRate,
		},
	})
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) handleComputeSKU(w http.ResponseWriter, r *http.Request) {
	var req computeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.SKU) == 0 {
		writeError(w, http.StatusBadRequest, "Invalid request", "sku is required")
		return
	}

	sku, err := h.decodeSKU(req.SKU, 1)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	result, err := h.calculator.Compute(r.Context(), sku)
	if err != nil {
		writeQuoteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, computeResponse{
		Result:   result,
		Snapshot: quote.NewSnapshot(sku, result),
	})
}

func (h *Handler) handleComputeBatch(w http.ResponseWriter, r *http.Request) {
	skus, results, ok := h.computeBatch(w, r)
	if !ok {
		return
	}

	snapshots := make([]quote.Snapshot, len(results))
	for i, result := range results {
		snapshots[i] = quote.NewSnapshot(skus[i], result)
	}

	writeJSON(w, http.StatusOK, batchResponse{
		Results:   results,
		Snapshots: snapshots,
		Count:     len(results),
	})
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	skus, results, ok := h.computeBatch(w, r)
	if !ok {
		return
	}

	// Rendered into memory so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, skus, results); err != nil {
		writeInternalError(w, err)
		return
	}

	filename := fmt.Sprintf("quotes-%s.xlsx", h.clock().Format("20060102-150405"))
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// computeBatch decodes and evaluates a batch request, writing the error
// response itself when it reports false.
func (h *Handler) computeBatch(w http.ResponseWriter, r *http.Request) ([]quote.SKU, []quote.Result, bool) {
	var req batchRequest
	if !decodeJSON(w, r, &req) {
		return nil, nil, false
	}

	skus := make([]quote.SKU, 0, len(req.SKUs))
	for i, raw := range req.SKUs {
		sku, err := h.decodeSKU(raw, i+1)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request", fmt.Sprintf("sku %d: %v", i, err))
			return nil, nil, false
		}
		skus = append(skus, sku)
	}

	if dup, found := duplicateID(skus); found {
		writeError(w, http.StatusBadRequest, "Invalid request", "duplicate sku id "+strconv.Quote(dup),
			"Give every SKU in a batch a distinct id or leave it blank")
		return nil, nil, false
	}

	results, err := h.calculator.ComputeBatch(r.Context(), skus)
	if err != nil {
		writeQuoteError(w, err)
		return nil, nil, false
	}
	return skus, results, true
}

// decodeSKU overlays raw on the default SKU for position index, so callers
// only need to send the fields they change. A missing or blank id gets a
// generated one.
func (h *Handler) decodeSKU(raw json.RawMessage, index int) (quote.SKU, error) {
	sku := quote.DefaultSKU(index)
	sku.ID = ""
	if err := json.Unmarshal(raw, &sku); err != nil {
		return quote.SKU{}, errors.New("unable to parse sku")
	}
	sku.ID = strings.TrimSpace(sku.ID)
	if sku.ID == "" {
		sku.ID = h.newID()
	}
	return sku, nil
}

func duplicateID(skus []quote.SKU) (string, bool) {
	ids := lo.Map(skus, func(s quote.SKU, _ int) string { return s.ID })
	dups := lo.FindDuplicates(ids)
	if len(dups) == 0 {
		return "", false
	}
	return dups[0], true
}

func writeQuoteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quote.ErrInvalidSKU):
		writeError(w, http.StatusBadRequest, "Invalid SKU", err.Error())
	case errors.Is(err, quote.ErrEmptyBatch):
		writeError(w, http.StatusBadRequest, "Invalid request", err.Error(), "Send at least one SKU in skus")
	case errors.Is(err, quote.ErrBatchTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "Batch too large", err.Error(), "Split the SKUs into smaller batches")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "Request cancelled", err.Error())
	default:
		writeInternalError(w, err)
	}
}
