// Package web serves the upload form and optimization endpoints over
// HTTP.
package web

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/piwi3910/barcut/internal/engine"
	"github.com/piwi3910/barcut/internal/export"
	"github.com/piwi3910/barcut/internal/importer"
	"github.com/piwi3910/barcut/internal/model"
	"github.com/piwi3910/barcut/internal/report"
)

// Server wires the optimizer behind a gin router. Defaults prefill the
// upload form and stand in for missing form values.
type Server struct {
	Defaults model.CutSettings
}

func NewServer(defaults model.CutSettings) *Server {
	return &Server{Defaults: defaults}
}

// Router builds the HTTP routes.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.GET("/", s.handleIndex)
	r.POST("/optimize", s.handleOptimize)
	r.POST("/download", s.handleDownload)
	r.POST("/api/optimize", s.handleAPIOptimize)
	return r
}

// Run starts the server on the given address.
func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(c.Writer, s.Defaults); err != nil {
		c.String(http.StatusInternalServerError, "template error: %v", err)
	}
}

// resultsPage is the data handed to the results template.
type resultsPage struct {
	Settings    model.CutSettings
	Errors      []string
	Warnings    []string
	Aggregate   []report.AggregateRow
	Groups      []patternGroup
	WorkbookB64 string
}

type patternGroup struct {
	Profile  string
	Patterns []report.PatternRow
}

func (s *Server) handleOptimize(c *gin.Context) {
	settings := s.formSettings(c)

	fileHeader, err := c.FormFile("csv_file")
	if err != nil {
		c.String(http.StatusBadRequest, "no cut list uploaded")
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.String(http.StatusBadRequest, "cannot open upload: %v", err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.String(http.StatusBadRequest, "cannot read upload: %v", err)
		return
	}

	imported := importer.ImportCSVFromBytes(data)
	if len(imported.Parts) == 0 {
		c.String(http.StatusBadRequest, "no usable rows in %s: %v", fileHeader.Filename, imported.Errors)
		return
	}

	results := engine.PackGroups(model.GroupByProfile(imported.Parts), settings)

	var workbook bytes.Buffer
	if err := export.WriteWorkbook(&workbook, results, settings); err != nil {
		c.String(http.StatusInternalServerError, "workbook export failed: %v", err)
		return
	}

	page := resultsPage{
		Settings:    settings,
		Errors:      imported.Errors,
		Warnings:    imported.Warnings,
		Aggregate:   report.AggregateAll(results, settings),
		WorkbookB64: base64.StdEncoding.EncodeToString(workbook.Bytes()),
	}
	for _, res := range results {
		page.Groups = append(page.Groups, patternGroup{
			Profile:  res.Profile,
			Patterns: report.PatternRows(res.Bins, settings),
		})
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := resultsTmpl.Execute(c.Writer, page); err != nil {
		c.String(http.StatusInternalServerError, "template error: %v", err)
	}
}

// handleDownload echoes the workbook carried through the results page as
// an attachment, so no server-side state survives between requests.
func (s *Server) handleDownload(c *gin.Context) {
	payload := c.PostForm("payload")
	if payload == "" {
		c.String(http.StatusBadRequest, "no workbook payload")
		return
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		c.String(http.StatusBadRequest, "bad workbook payload: %v", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="cutting_stock_results.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// apiRequest is the JSON body accepted by the API endpoint. Parts are
// given inline instead of as an uploaded file.
type apiRequest struct {
	StockLengthMM int                 `json:"stock_length_mm"`
	KerfMM        float64             `json:"kerf_mm"`
	Parts         []model.PartRequest `json:"parts"`
}

type apiResponse struct {
	Settings  model.CutSettings     `json:"settings"`
	Results   []engine.GroupResult  `json:"results"`
	Aggregate []report.AggregateRow `json:"aggregate"`
}

func (s *Server) handleAPIOptimize(c *gin.Context) {
	var req apiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request: %v", err)})
		return
	}

	settings := s.Defaults
	if req.StockLengthMM > 0 {
		settings.StockLengthMM = req.StockLengthMM
	}
	if req.KerfMM >= 0 {
		settings.KerfMM = req.KerfMM
	}

	var parts []model.PartRequest
	for _, p := range req.Parts {
		if p.Valid() {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no valid parts"})
		return
	}

	results := engine.PackGroups(model.GroupByProfile(parts), settings)
	c.JSON(http.StatusOK, apiResponse{
		Settings:  settings,
		Results:   results,
		Aggregate: report.AggregateAll(results, settings),
	})
}

// formSettings reads stock parameters from the form, falling back to
// the server defaults on missing or unparseable values.
func (s *Server) formSettings(c *gin.Context) model.CutSettings {
	settings := s.Defaults
	if v := c.PostForm("stock_length"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			settings.StockLengthMM = n
		}
	}
	if v := c.PostForm("cut_kerf"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			settings.KerfMM = f
		}
	}
	return settings
}
