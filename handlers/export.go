package handlers

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/xuri/excelize/v2"
)

// exportTable is the flattened, column-oriented form of one entity
// collection, shared by the Excel and CSV writers.
type exportTable struct {
	Title   string
	Headers []string
	Rows    [][]interface{}
}

func (a *API) exportTableFor(ctx context.Context, entity string) (*exportTable, error) {
	switch entity {
	case "materials":
		materials, err := a.loadMaterials(ctx)
		if err != nil {
			return nil, err
		}
		t := &exportTable{
			Title:   "Raw Materials",
			Headers: []string{"ID", "Name", "Type", "Quantity", "Unit", "Unit Cost", "Transportation Cost", "Storage Cost", "Total Cost Per Unit", "Quality Score", "Carbon Footprint", "Suppliers"},
		}
		for _, m := range materials {
			t.Rows = append(t.Rows, []interface{}{
				m.ID, m.Name, m.Type, m.Quantity, m.Unit,
				m.EconomicData.UnitCost, m.EconomicData.TransportationCost, m.EconomicData.StorageCost,
				m.EconomicData.TotalCostPerUnit, m.Quality.Score, m.EnvironmentalData.CarbonFootprint,
				strings.Join(m.Suppliers, ", "),
			})
		}
		return t, nil
	case "suppliers":
		suppliers, err := a.loadSuppliers(ctx)
		if err != nil {
			return nil, err
		}
		t := &exportTable{
			Title:   "Suppliers",
			Headers: []string{"ID", "Name", "Address", "Latitude", "Longitude", "Certifications", "Transport Mode", "Lead Time", "Risk Score", "Materials"},
		}
		for _, s := range suppliers {
			t.Rows = append(t.Rows, []interface{}{
				s.ID, s.Name, s.Location.Address,
				s.Location.Coordinates.Lat, s.Location.Coordinates.Lng,
				strings.Join(s.Certifications, ", "), s.TransportMode, s.LeadTime, s.RiskScore,
				strings.Join(s.Materials, ", "),
			})
		}
		return t, nil
	case "warehouses":
		warehouses, err := a.loadWarehouses(ctx)
		if err != nil {
			return nil, err
		}
		t := &exportTable{
			Title:   "Warehouses",
			Headers: []string{"ID", "Name", "Type", "Address", "Max Capacity", "Current Utilization", "Unit", "Inbound Transit", "Outbound Transit", "Operational Cost", "Suppliers", "Materials"},
		}
		for _, wh := range warehouses {
			t.Rows = append(t.Rows, []interface{}{
				wh.ID, wh.Name, wh.Type, wh.Location.Address,
				wh.Capacity.MaxCapacity, wh.Capacity.CurrentUtilization, wh.Capacity.Unit,
				wh.TransitTimes.Inbound, wh.TransitTimes.Outbound, wh.OperationalCost,
				strings.Join(wh.Suppliers, ", "), strings.Join(wh.Materials, ", "),
			})
		}
		return t, nil
	default:
		return nil, fmt.Errorf("unknown export entity %q", entity)
	}
}

// ExportExcel streams an entity collection as an .xlsx download.
func (a *API) ExportExcel(w http.ResponseWriter, r *http.Request) {
	entity := mux.Vars(r)["entity"]
	table, err := a.exportTableFor(r.Context(), entity)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f := excelize.NewFile()
	sheetName := table.Title
	index, err := f.NewSheet(sheetName)
	if err != nil {
		http.Error(w, "failed to create sheet", http.StatusInternalServerError)
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
	})
	for col, h := range table.Headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}
	for rowIdx, row := range table.Rows {
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "failed to write Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("%s_%s.xlsx", entity, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

// ExportCSV streams an entity collection as a .csv download.
func (a *API) ExportCSV(w http.ResponseWriter, r *http.Request) {
	entity := mux.Vars(r)["entity"]
	table, err := a.exportTableFor(r.Context(), entity)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	cw.Write(table.Headers)
	for _, row := range table.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = fmt.Sprintf("%v", v)
		}
		cw.Write(record)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		http.Error(w, "failed to write CSV", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("%s_%s.csv", entity, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
